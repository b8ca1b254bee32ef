package main

import (
	"errors"
	"flag"
	"fmt"
	"syscall"

	"golang.org/x/term"

	"github.com/ecoleweb/portail/internal/auth"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	users auth.UserStore
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  createuser -login LOGIN [-name NAME] [-role admin|prof|eleve] - create or update a user")
	fmt.Println("  resetpassword -login LOGIN - reset a user's password")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	createCmd := flag.NewFlagSet("createuser", flag.ExitOnError)
	createLogin := createCmd.String("login", "", "The user's login code. The password will be prompted next.")
	createName := createCmd.String("name", "", "The user's display name.")
	createRole := createCmd.String("role", "eleve", "One of admin, prof, eleve.")

	resetCmd := flag.NewFlagSet("resetpassword", flag.ExitOnError)
	resetLogin := resetCmd.String("login", "", "The user's login code. The password will be prompted next.")

	switch args[1] {
	case "createuser":
		if err := createCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *createLogin == "" {
			createCmd.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword()
		if err != nil {
			return err
		}
		return cli.createUser(*createLogin, *createName, *createRole, pwd)
	case "resetpassword":
		if err := resetCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *resetLogin == "" {
			resetCmd.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword()
		if err != nil {
			return err
		}
		return cli.resetPassword(*resetLogin, pwd)
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) promptPassword() (string, error) {
	fmt.Print("Enter password:")
	pwd, err := readPasswordFunc(syscall.Stdin)
	fmt.Println()
	if err != nil {
		return "", err
	}
	if len(pwd) == 0 {
		return "", errors.New("password must not be empty")
	}
	return string(pwd), nil
}
