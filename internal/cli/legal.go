package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func addLegal(topLevel *cobra.Command, e *env) {
	legal := &cobra.Command{
		Use:   "legal",
		Short: "Read the privacy policy or the terms of use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	for _, doc := range []struct{ name, short string }{
		{"privacy", "Show the privacy policy"},
		{"terms", "Show the terms of use"},
	} {
		name := doc.name
		legal.AddCommand(&cobra.Command{
			Use:   name,
			Short: doc.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				d, err := e.api.Legal(cmd.Context(), name)
				if err != nil {
					return err
				}
				title.Fprintln(e.out, d.Title)
				fmt.Fprintln(e.out)
				fmt.Fprintln(e.out, d.Body)
				return nil
			},
		})
	}

	topLevel.AddCommand(legal)
}
