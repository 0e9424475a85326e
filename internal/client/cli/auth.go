package cli

import (
	"context"
	"time"

	"github.com/dmitrijs2005/promptmaster/internal/client/models"
	"github.com/dmitrijs2005/promptmaster/internal/common"
)

// Register prompts for a username, an email and a password, creates the
// account and logs in with the returned session.
func (a *App) Register(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.authService.Register(ctx, models.Registration{
		Username: username,
		Email:    email,
		Password: string(password),
	})
	if err != nil {
		return err
	}

	a.printf("Registered and logged in as %s\n", s.Username)
	return nil
}

// Login prompts for credentials and authenticates.
func (a *App) Login(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.authService.Login(ctx, models.Credentials{Username: username, Password: string(password)})
	if err != nil {
		return err
	}

	a.printf("Logged in as %s\n", s.Username)
	return nil
}

// Logout ends the session locally even when the server cannot be reached.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.printf("Logged out\n")
	return nil
}

// WhoAmI refreshes and prints the current user.
func (a *App) WhoAmI(ctx context.Context) error {
	s, err := a.authService.Me(ctx)
	if err != nil {
		return err
	}

	a.printf("Username:   %s\n", s.Username)
	a.printf("Email:      %s\n", s.Email)
	a.printf("Member since: %s\n", s.CreatedAt.Local().Format(time.DateOnly))
	if s.LastLogin != nil {
		a.printf("Last login: %s\n", s.LastLogin.Local().Format(time.DateTime))
	}
	return nil
}
