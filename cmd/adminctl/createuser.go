package main

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/ecoleweb/portail/internal/auth"
	"github.com/ecoleweb/portail/internal/rbac"
)

// createUser updates or creates a user by login code.
func (cli *commandLine) createUser(login, name, roleStr, pwd string) error {
	ctx := context.Background()

	role, err := rbac.ParseRole(roleStr)
	if err != nil {
		return err
	}

	usr, err := cli.users.GetByLoginCode(ctx, login)
	if err != nil {
		if !errors.Is(err, auth.ErrUserNotFound) {
			return err
		}
		usr = auth.User{ID: uuid.NewString(), LoginCode: login}
	}
	if name != "" {
		usr.Name = name
	}
	usr.Role = role
	usr.Active = true

	hash, err := auth.HashPassword(pwd)
	if err != nil {
		return err
	}
	usr.PasswordHash = hash
	return cli.users.UpsertUser(ctx, usr)
}
