package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/lefika/ripota/core"
	"github.com/lefika/ripota/core/user"
)

// addUser updates or creates a user.User.
func (cli *commandLine) addUser(name, email, role, faculty, pwd string) error {
	ctx := context.Background()
	name = core.CleanString(name)
	email = core.CleanString(email, true /* lower */)

	usr, err := cli.usrRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Cause(err) != user.ErrNotFound {
			return err
		}
		now := time.Now().UTC()
		usr = user.User{
			ID:        uuid.NewString(),
			Name:      name,
			Email:     email,
			CreatedAt: now,
			UpdatedAt: now,
		}
		usr.Role = role
		usr.Faculty = faculty
		usr.IsActive = true
		if err = usr.SetPassword(pwd); err != nil {
			return err
		}
		_, err = cli.usrRepo.CreateUser(ctx, usr)
		return err
	}

	usr.Name = name
	usr.Role = role
	usr.Faculty = faculty
	if err = usr.SetPassword(pwd); err != nil {
		return err
	}
	active := true
	_, err = cli.usrRepo.UpdateUser(ctx, usr, &active)
	return err
}
