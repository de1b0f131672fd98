package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/lefika/ripota/core/user"
	inmemdb "github.com/lefika/ripota/storage/database/inmem"
)

var usrRepo user.Repository

func setup(t *testing.T) *commandLine {
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	usrRepo = inmemdb.NewUserRepository(db)

	return &commandLine{usrRepo: usrRepo}
}

func createUser(t *testing.T, name, email, pwd, role string) user.User {
	t.Helper()
	now := time.Now().UTC()
	usr := user.User{
		ID:        "usr-" + email,
		Name:      name,
		Email:     email,
		Role:      role,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := usr.SetPassword(pwd); err != nil {
		t.Fatalf("createUser() failed: %v", err)
	}
	usr, err := usrRepo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("createUser() failed: %v", err)
	}
	return usr
}

type cliTest struct {
	name    string
	args    []string // without program name
	pwd     string
	wantErr error
}

func Test_commandLine_addUser(t *testing.T) {
	cli := setup(t)

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"adduser"}, wantErr: errHelp},
		{name: "missing email", args: []string{"adduser", "-name", "Thabo", "-role", "lecturer"}, wantErr: errHelp},
		{name: "bad role", args: []string{"adduser", "-name", "Thabo", "-email", "t@test.ls", "-role", "admin"}, pwd: "s3cret", wantErr: errHelp},
		{name: "no password", args: []string{"adduser", "-name", "Thabo", "-email", "t@test.ls", "-role", "lecturer"}, wantErr: errHelp},
		{name: "create", args: []string{"adduser", "-name", "Thabo Mokoena", "-email", "t@test.ls", "-role", "lecturer"}, pwd: "s3cret"},
		{name: "update existing", args: []string{"adduser", "-name", "Thabo M.", "-email", "t@test.ls", "-role", "prl"}, pwd: "n3wpwd"},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(int) ([]byte, error) {
			return []byte(tt.pwd), nil
		}

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	usr, err := usrRepo.GetUserByEmail(context.Background(), "t@test.ls")
	if err != nil {
		t.Fatalf("GetUserByEmail() failed: %v", err)
	}
	if usr.Role != user.RolePRL {
		t.Errorf("addUser() role = %s, want %s", usr.Role, user.RolePRL)
	}
	if usr.Name != "Thabo M." {
		t.Errorf("addUser() name = %s, want Thabo M.", usr.Name)
	}
	if err := usr.CheckPassword("n3wpwd"); err != nil {
		t.Error("addUser() failed to update password")
	}
}

func Test_commandLine_resetPassword(t *testing.T) {
	cli := setup(t)

	usr := createUser(t, "Lineo Khumalo", "lineo@test.ls", "0ldpwd", user.RoleStudent)

	tests := []cliTest{
		{name: "no args", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "email but no password", args: []string{"resetpassword", "-email", "lineo@test.ls"}, wantErr: errHelp},
		{name: "user not found", args: []string{"resetpassword", "-email", "lol@test.ls"}, pwd: "lol", wantErr: user.ErrNotFound},
		{name: "reset", args: []string{"resetpassword", "-email", "lineo@test.ls"}, pwd: "n3wpwd"},
		{name: "email is case-insensitive", args: []string{"resetpassword", "-email", "Lineo@Test.LS"}, pwd: "l4st1"},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(int) ([]byte, error) {
			return []byte(tt.pwd), nil
		}

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if err == nil {
				refreshed, err := usrRepo.GetUserByID(context.Background(), usr.ID)
				if err != nil {
					t.Fatalf("GetUserByID() failed: %v", err)
				}
				if bytes.Equal(refreshed.PasswordHash, usr.PasswordHash) {
					t.Error("failed to update new password")
				}
			} else if err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
