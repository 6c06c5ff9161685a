package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/feelio/feelio-backend/internal/client"
	"github.com/feelio/feelio-backend/internal/realtime"
)

func addViews(topLevel *cobra.Command, e *env) {
	var year int
	var monday bool

	cal := &cobra.Command{
		Use:   "calendar",
		Short: "Show a year of moods",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := e.session(); err != nil {
				return err
			}
			if year == 0 {
				year = time.Now().In(e.location()).Year()
			}
			weekStart := time.Sunday
			if monday {
				weekStart = time.Monday
			}

			y, err := e.api.Calendar(cmd.Context(), year, weekStart)
			if err != nil {
				return explain(err)
			}
			title.Fprintf(e.out, "%d\n\n", y.Year)
			for _, m := range y.Months {
				printMonth(e.out, m, y.WeekStart)
				fmt.Fprintln(e.out)
			}
			return nil
		},
	}
	cal.Flags().IntVar(&year, "year", 0, "year to show (default this year)")
	cal.Flags().BoolVar(&monday, "monday", false, "start weeks on Monday")

	var month, svg string
	var size int
	st := &cobra.Command{
		Use:   "stats",
		Short: "Show how a month felt",
		Example: `
feelio stats
feelio stats --month 2024-03 --svg march.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := e.session(); err != nil {
				return err
			}
			at := time.Now().In(e.location())
			if month != "" {
				t, err := time.Parse("2006-01", month)
				if err != nil {
					return fmt.Errorf("--month must look like 2024-03")
				}
				at = t
			}

			s, err := e.api.Stats(cmd.Context(), at.Year(), at.Month(), size)
			if err != nil {
				return explain(err)
			}
			printStats(e.out, s)

			if svg == "" {
				return nil
			}
			img, err := e.api.ChartSVG(cmd.Context(), at.Year(), at.Month(), size, e.app.Theme.Colors().Name)
			if err != nil {
				return explain(err)
			}
			if err := os.WriteFile(svg, img, 0o644); err != nil {
				return fmt.Errorf("write chart: %w", err)
			}
			faint.Fprintf(e.out, "Chart written to %s\n", svg)
			return nil
		},
	}
	st.Flags().StringVar(&month, "month", "", "month to show, YYYY-MM (default this month)")
	st.Flags().StringVar(&svg, "svg", "", "also save the chart as an SVG file")
	st.Flags().IntVar(&size, "size", 0, "chart size in pixels")

	watch := &cobra.Command{
		Use:   "watch",
		Short: "Follow changes to your journal as they happen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := e.session(); err != nil {
				return err
			}
			faint.Fprintln(e.out, "Watching, press Ctrl+C to stop.")
			err := e.api.Watch(cmd.Context(), func(ev realtime.Event) error {
				return e.printEvent(ev)
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return explain(err)
		},
	}

	topLevel.AddCommand(cal, st, watch)
}

func (e *env) printEvent(ev realtime.Event) error {
	at := ev.At.In(e.location()).Format("15:04")
	switch ev.Type {
	case realtime.EventMood:
		fmt.Fprintf(e.out, "%s  mood for %s: %s\n", at, ev.Date, ev.Emotion)
	case realtime.EventProfile:
		fmt.Fprintf(e.out, "%s  profile updated\n", at)
	case realtime.EventAccountDeleted:
		fmt.Fprintf(e.out, "%s  account deleted\n", at)
		if err := e.app.Session.Clear(); err != nil {
			return err
		}
		return client.ErrStopWatching
	}
	return nil
}
