package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/marketfeed/internal/client/services"
)

// EditProfile asks for a new name and email. Empty answers keep the
// current values.
func (a *App) EditProfile(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "New name (empty to keep)", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "New email (empty to keep)", a.out)
	if err != nil {
		return err
	}

	u, err := a.profileService.UpdateProfile(ctx, services.ProfileUpdate{Name: name, Email: email})
	if err != nil {
		return a.fail(ctx, err)
	}
	fmt.Fprintf(a.out, "Profile saved: %s <%s>\n", u.DisplayName(), u.Email)
	return nil
}

// Avatar sets the avatar from the image file named in args, prompting for
// the path when none is given.
func (a *App) Avatar(ctx context.Context, args []string) error {
	path := strings.Join(args, " ")
	if path == "" {
		var err error
		if path, err = getSimpleText(a.reader, "Image file", a.out); err != nil {
			return err
		}
	}

	if _, err := a.profileService.SetAvatarFromFile(ctx, path); err != nil {
		return a.fail(ctx, err)
	}
	fmt.Fprintln(a.out, "Avatar updated")
	return nil
}
