package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/feelio/feelio-backend/internal/appctx"
	authdomain "github.com/feelio/feelio-backend/internal/auth/domain"
	"github.com/feelio/feelio-backend/internal/client"
)

func addAuth(topLevel *cobra.Command, e *env) {
	var email, password string
	var acceptTerms bool

	signup := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		Example: `
feelio signup --email me@example.com --accept-terms`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !acceptTerms {
				fmt.Fprintln(e.out, "Read the terms with `feelio legal terms`, then pass --accept-terms.")
				return errors.New(authdomain.UserMessage(authdomain.ErrTermsNotAccepted))
			}
			em, pw, err := e.credentials(email, password)
			if err != nil {
				return err
			}
			sess, err := e.api.SignUp(cmd.Context(), em, pw, true)
			if err != nil {
				return err
			}
			return e.signedIn(sess)
		},
	}
	signup.Flags().StringVar(&email, "email", "", "account e-mail")
	signup.Flags().StringVar(&password, "password", "", "account password (prompted when empty)")
	signup.Flags().BoolVar(&acceptTerms, "accept-terms", false, "accept the terms of use")

	login := &cobra.Command{
		Use:   "login",
		Short: "Sign in with e-mail and password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			em, pw, err := e.credentials(email, password)
			if err != nil {
				return err
			}
			sess, err := e.api.SignIn(cmd.Context(), em, pw)
			if err != nil {
				return err
			}
			return e.signedIn(sess)
		},
	}
	login.Flags().StringVar(&email, "email", "", "account e-mail")
	login.Flags().StringVar(&password, "password", "", "account password (prompted when empty)")

	logout := &cobra.Command{
		Use:   "logout",
		Short: "Forget the session stored on this device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.app.Session.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(e.out, "Signed out.")
			return nil
		},
	}

	reset := &cobra.Command{
		Use:   "reset-password",
		Short: "Send a password reset e-mail",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			em, err := e.prompt("Email", email)
			if err != nil {
				return err
			}
			if em == "" {
				return errors.New(authdomain.UserMessage(authdomain.ErrEmailRequired))
			}
			if err := e.api.ResetPassword(cmd.Context(), em); err != nil {
				return err
			}
			success.Fprintf(e.out, "Password reset email sent to %s.\n", em)
			return nil
		},
	}
	reset.Flags().StringVar(&email, "email", "", "account e-mail")

	var name, avatar string
	setup := &cobra.Command{
		Use:   "setup",
		Short: "Choose your name and avatar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := e.session(); err != nil {
				return err
			}
			n, err := e.prompt("Name", name)
			if err != nil {
				return err
			}
			a, err := e.prompt("Avatar (0 or 1)", avatar)
			if err != nil {
				return err
			}
			idx := 0
			if a != "" {
				if idx, err = strconv.Atoi(a); err != nil {
					return fmt.Errorf("avatar must be a number")
				}
			}

			v, err := e.api.SetupProfile(cmd.Context(), n, idx)
			if err != nil {
				return explain(err)
			}
			success.Fprintf(e.out, "Welcome, %s!\n", displayName(v))
			return nil
		},
	}
	setup.Flags().StringVar(&name, "name", "", "display name")
	setup.Flags().StringVar(&avatar, "avatar", "", "avatar index")

	topLevel.AddCommand(signup, login, logout, reset, setup)
}

// credentials prompts for whatever was not passed as a flag. Empty values
// are left for the server to reject with its own message.
func (e *env) credentials(email, password string) (string, string, error) {
	em, err := e.prompt("Email", email)
	if err != nil {
		return "", "", err
	}
	pw, err := e.prompt("Password", password)
	if err != nil {
		return "", "", err
	}
	return em, pw, nil
}

func (e *env) signedIn(sess authdomain.Session) error {
	if err := e.app.Session.Save(appctx.Session{UserID: sess.UID, IDToken: sess.IDToken}); err != nil {
		return err
	}
	e.api.SetToken(sess.IDToken)

	success.Fprintf(e.out, "Signed in as %s.\n", sess.Email)
	if sess.Next == authdomain.NextSetName {
		fmt.Fprintln(e.out, "Pick a name and avatar with `feelio setup`.")
	}
	return nil
}

func displayName(v client.ProfileView) string {
	if v.Profile.Name != nil && *v.Profile.Name != "" {
		return *v.Profile.Name
	}
	return v.Profile.Email
}
