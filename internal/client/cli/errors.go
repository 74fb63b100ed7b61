package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/marketfeed/internal/common"
)

var userMessages = []struct {
	err error
	msg string
}{
	{common.ErrValidation, "All fields are required."},
	{common.ErrPasswordMismatch, "Passwords do not match."},
	{common.ErrDuplicateUser, "User already exists."},
	{common.ErrInvalidCredentials, "Invalid credentials."},
	{common.ErrInvalidToken, "Federated sign-in failed."},
	{common.ErrProviderUnavailable, "Sign-in widget is not available."},
	{common.ErrNotAuthenticated, "Please log in first."},
	{common.ErrEmailConflict, "Email already in use."},
	{common.ErrNoImpactSelected, "Select market impact."},
	{common.ErrEmptyPost, "Add content or media."},
	{common.ErrPostNotFound, "No such post."},
	{common.ErrEmptyComment, "Comment empty."},
	{common.ErrUnsupportedMedia, "Only images and videos can be attached."},
	{common.ErrMediaTooLarge, "File is too large."},
}

// describe turns err into a line for the user.
func describe(err error) string {
	for _, m := range userMessages {
		if errors.Is(err, m.err) {
			return m.msg
		}
	}
	return fmt.Sprintf("error: %v", err)
}

// fail reports err to the user and hands it back.
func (a *App) fail(ctx context.Context, err error) error {
	fmt.Fprintln(a.out, describe(err))
	a.log.Debug(ctx, "command failed", "error", err)
	return err
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
