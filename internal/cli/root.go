// Package cli is the feelio terminal client.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/feelio/feelio-backend/internal/appctx"
	"github.com/feelio/feelio-backend/internal/client"
)

// env is built once per invocation and shared by every command.
type env struct {
	cfg Config
	app *appctx.Context
	api *client.Client

	in  *bufio.Reader
	out io.Writer
}

// New builds the root command. load is called before any subcommand runs;
// pass nil to read the environment.
func New(version string, load func() (Config, error)) *cobra.Command {
	if load == nil {
		load = LoadConfig
	}
	e := &env{}

	cmd := &cobra.Command{
		Use:           "feelio",
		Short:         "Record one mood a day and see how your months feel.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			app, err := appctx.Open(cfg.Home)
			if err != nil {
				return err
			}

			opts := []client.Option{client.WithTimezone(cfg.Timezone)}
			if sess, err := app.Session.Load(); err == nil {
				opts = append(opts, client.WithToken(sess.IDToken))
			}

			e.cfg = cfg
			e.app = app
			e.api = client.New(cfg.APIURL, opts...)
			e.in = bufio.NewReader(cmd.InOrStdin())
			e.out = cmd.OutOrStdout()
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd, e)
	return cmd
}

func AddCommands(topLevel *cobra.Command, e *env) {
	addAuth(topLevel, e)
	addMood(topLevel, e)
	addViews(topLevel, e)
	addSettings(topLevel, e)
	addLegal(topLevel, e)
}

// session returns the cached session or a hint to sign in.
func (e *env) session() (appctx.Session, error) {
	sess, err := e.app.Session.Load()
	if errors.Is(err, appctx.ErrSignedOut) {
		return sess, errors.New("you are not signed in, run `feelio login`")
	}
	return sess, err
}

// prompt asks for a value unless one was given on the command line.
func (e *env) prompt(label, given string) (string, error) {
	if given != "" {
		return given, nil
	}
	fmt.Fprintf(e.out, "%s: ", label)
	line, err := e.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("read %s: %w", strings.ToLower(label), err)
	}
	return strings.TrimSpace(line), nil
}

// confirm asks a yes/no question; anything but y or yes is a no.
func (e *env) confirm(question string) bool {
	ans, err := e.prompt(question+" [y/N]", "")
	if err != nil {
		return false
	}
	ans = strings.ToLower(ans)
	return ans == "y" || ans == "yes"
}

// explain turns an expired or missing token into a hint to sign in again.
// Wrong credentials keep the server's message.
func explain(err error) error {
	var ae *client.APIError
	if errors.As(err, &ae) && ae.Status == http.StatusUnauthorized && strings.Contains(ae.Message, "token") {
		return errors.New("your session has expired, run `feelio login`")
	}
	return err
}
