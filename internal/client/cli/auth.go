package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/marketfeed/internal/client/services"
	"github.com/dmitrijs2005/marketfeed/internal/common"
)

// getSimpleText, getPassword and getConfirm are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var getConfirm = GetConfirm

// Signup prompts for name, email and password (twice) and creates the
// account. A successful signup leaves the user logged in.
func (a *App) Signup(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	confirm, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	u, err := a.authService.Signup(ctx, services.SignupRequest{
		Name:     name,
		Email:    email,
		Password: string(password),
		Confirm:  string(confirm),
	})
	if err != nil {
		return a.fail(ctx, err)
	}

	fmt.Fprintf(a.out, "Welcome, %s!\n", u.DisplayName())
	return nil
}

// Login prompts for credentials and the remember-me choice.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	remember, err := getConfirm(a.reader, "Remember me?", a.out)
	if err != nil {
		return err
	}

	u, err := a.authService.Login(ctx, email, string(password), remember)
	if err != nil {
		return a.fail(ctx, err)
	}

	fmt.Fprintf(a.out, "Logged in as %s\n", u.DisplayName())
	return nil
}

// FederatedLogin signs in with the token given as argument, or waits for
// the sign-in widget to provide one.
func (a *App) FederatedLogin(ctx context.Context, args []string) error {
	var err error
	if token := strings.Join(args, ""); token != "" {
		_, err = a.authService.LoginWithFederatedToken(ctx, token)
	} else {
		fmt.Fprintln(a.out, "Waiting for the sign-in widget...")
		_, err = a.authService.LoginWithProvider(ctx, a.provider)
	}
	if err != nil {
		return a.fail(ctx, err)
	}

	u, err := a.authService.CurrentUser(ctx)
	if err != nil {
		return a.fail(ctx, err)
	}
	fmt.Fprintf(a.out, "Logged in as %s\n", u.DisplayName())
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return a.fail(ctx, err)
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// DeleteAccount removes the signed-in account after confirmation. Posts
// already made stay in the feed.
func (a *App) DeleteAccount(ctx context.Context) error {
	ok, err := getConfirm(a.reader, "Delete your account?", a.out)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}
	if err := a.authService.DeleteAccount(ctx); err != nil {
		return a.fail(ctx, err)
	}
	fmt.Fprintln(a.out, "Account deleted")
	return nil
}

// WhoAmI prints the current user.
func (a *App) WhoAmI(ctx context.Context) error {
	u, err := a.authService.CurrentUser(ctx)
	if err != nil {
		return a.fail(ctx, err)
	}

	kind := "password"
	if u.Federated {
		kind = "federated"
	}
	fmt.Fprintf(a.out, "%s [%s] <%s> %s account", u.DisplayName(), u.Initials(), u.Email, kind)
	if a.session.Persistent() {
		fmt.Fprint(a.out, ", remembered")
	}
	fmt.Fprintln(a.out)
	if u.Avatar != "" {
		fmt.Fprintf(a.out, "avatar: %s\n", truncate(u.Avatar, 48))
	}
	return nil
}
