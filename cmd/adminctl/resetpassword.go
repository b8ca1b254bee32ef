package main

import (
	"context"

	"github.com/ecoleweb/portail/internal/auth"
)

func (cli *commandLine) resetPassword(login, pwd string) error {
	ctx := context.Background()
	usr, err := cli.users.GetByLoginCode(ctx, login)
	if err != nil {
		return err
	}
	hash, err := auth.HashPassword(pwd)
	if err != nil {
		return err
	}
	return cli.users.SetPassword(ctx, usr.ID, hash)
}
