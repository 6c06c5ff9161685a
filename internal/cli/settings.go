package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	authdomain "github.com/feelio/feelio-backend/internal/auth/domain"
	"github.com/feelio/feelio-backend/internal/client"
)

func addSettings(topLevel *cobra.Command, e *env) {
	settings := &cobra.Command{
		Use:   "settings",
		Short: "Change your name, avatar, password or theme, or delete your account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := e.session(); err != nil {
				return err
			}
			v, err := e.api.Profile(cmd.Context())
			if err != nil {
				return explain(err)
			}
			title.Fprintln(e.out, displayName(v))
			fmt.Fprintf(e.out, "email   %s\n", v.Profile.Email)
			if v.Profile.AvatarID != nil {
				fmt.Fprintf(e.out, "avatar  %d\n", *v.Profile.AvatarID)
			}
			fmt.Fprintf(e.out, "theme   %s\n", e.app.Theme.Colors().Name)
			return nil
		},
	}

	name := &cobra.Command{
		Use:   "name <new name>",
		Short: "Change your display name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := e.session(); err != nil {
				return err
			}
			n := strings.Join(args, " ")
			v, err := e.api.UpdateProfile(cmd.Context(), &n, nil)
			if err != nil {
				return explain(err)
			}
			success.Fprintf(e.out, "Name changed to %s.\n", displayName(v))
			return nil
		},
	}

	avatar := &cobra.Command{
		Use:   "avatar <index>",
		Short: "Change your avatar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := e.session(); err != nil {
				return err
			}
			idx, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("avatar must be a number")
			}
			if _, err := e.api.UpdateProfile(cmd.Context(), nil, &idx); err != nil {
				return explain(err)
			}
			success.Fprintf(e.out, "Avatar changed to %d.\n", idx)
			return nil
		},
	}

	password := &cobra.Command{
		Use:   "password",
		Short: "E-mail yourself a password reset link",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := e.session(); err != nil {
				return err
			}
			me, err := e.api.Me(cmd.Context())
			if err != nil {
				return explain(err)
			}
			if err := e.api.ResetPassword(cmd.Context(), me.Email); err != nil {
				return err
			}
			success.Fprintf(e.out, "Password reset email sent to %s.\n", me.Email)
			return nil
		},
	}

	var yes bool
	del := &cobra.Command{
		Use:   "delete",
		Short: "Delete your account, profile and every mood",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := e.session(); err != nil {
				return err
			}
			if !yes && !e.confirm("This permanently deletes your account and all of your moods. Continue?") {
				fmt.Fprintln(e.out, "Cancelled.")
				return nil
			}

			err := e.api.DeleteAccount(cmd.Context())
			var ae *client.APIError
			if errors.As(err, &ae) && ae.Message == authdomain.UserMessage(authdomain.ErrRequiresRecentLogin) {
				return fmt.Errorf("%s: run `feelio login` and try again", ae.Message)
			}
			if err != nil {
				return explain(err)
			}
			if err := e.app.Session.Clear(); err != nil {
				return err
			}
			success.Fprintln(e.out, "Your account has been deleted.")
			return nil
		},
	}
	del.Flags().BoolVar(&yes, "yes", false, "skip the confirmation")

	theme := &cobra.Command{
		Use:       "theme [dark|light|toggle]",
		Short:     "Show or change the colour theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"dark", "light", "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			unsubscribe := e.app.Theme.Subscribe(func(dark bool) {
				fmt.Fprintf(e.out, "Theme set to %s.\n", modeName(dark))
			})
			defer unsubscribe()

			if len(args) == 0 {
				fmt.Fprintln(e.out, modeName(e.app.Theme.IsDark()))
				return nil
			}
			switch args[0] {
			case "dark":
				return e.app.Theme.SetDark(true)
			case "light":
				return e.app.Theme.SetDark(false)
			case "toggle":
				_, err := e.app.Theme.Toggle()
				return err
			default:
				return fmt.Errorf("theme must be dark, light or toggle")
			}
		},
	}

	settings.AddCommand(name, avatar, password, del, theme)
	topLevel.AddCommand(settings)
}

func modeName(dark bool) string {
	if dark {
		return "dark"
	}
	return "light"
}
