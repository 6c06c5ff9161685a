package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/feelio/feelio-backend/internal/client"
	moods "github.com/feelio/feelio-backend/internal/moods/domain"
	"github.com/feelio/feelio-backend/internal/picker"
)

func addMood(topLevel *cobra.Command, e *env) {
	var date string

	cmd := &cobra.Command{
		Use:   "mood [emotion]",
		Short: "Record how you feel today, or on --date",
		Long: `Pick an emotion by name or number. The first pick highlights it, picking
the same emotion again saves it. Passing the emotion as an argument saves it
straight away.`,
		Example: `
feelio mood
feelio mood calm
feelio mood --date 2024-03-07 sad`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := e.session(); err != nil {
				return err
			}
			day, err := e.moodDate(date)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			existing, err := e.api.Mood(ctx, day)
			switch {
			case err == nil:
				fmt.Fprintf(e.out, "%s: you felt %s.\n", day, paint(existing.Emotion).Sprint(existing.Emotion))
			case client.IsNotFound(err):
			default:
				return explain(err)
			}

			m := picker.NewMachine(func(ctx context.Context, em moods.Emotion) error {
				_, err := e.api.RecordMood(ctx, day, em)
				return explain(err)
			})

			if len(args) == 1 {
				em, err := parsePick(args[0])
				if err != nil {
					return err
				}
				if _, err := m.Tap(ctx, em); err != nil {
					return err
				}
				res, err := m.Tap(ctx, em)
				if err != nil {
					return err
				}
				return e.recorded(day, res.Selected)
			}
			return e.pick(ctx, day, m)
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "day to record, YYYY-MM-DD (default today)")

	topLevel.AddCommand(cmd)
}

// pick runs the interactive two-tap loop. A failed save keeps the
// highlighted emotion so the same pick retries it.
func (e *env) pick(ctx context.Context, day moods.Date, m *picker.Machine) error {
	printPalette(e.out, "")
	for {
		line, err := e.prompt("Pick", "")
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(e.out)
			faint.Fprintln(e.out, "Nothing saved.")
			return nil
		}
		if err != nil {
			return err
		}
		if line == "" {
			continue
		}

		em, err := parsePick(line)
		if err != nil {
			fmt.Fprintln(e.out, err)
			continue
		}

		res, err := m.Tap(ctx, em)
		if err != nil {
			fmt.Fprintf(e.out, "Could not save: %v\n", err)
			continue
		}
		if res.Committed {
			return e.recorded(day, res.Selected)
		}
		fmt.Fprintf(e.out, "%s selected, pick it again to save.\n", paint(res.Selected).Sprint(res.Selected))
	}
}

func (e *env) recorded(day moods.Date, em moods.Emotion) error {
	success.Fprintf(e.out, "Saved %s for %s.\n", em, day)
	return nil
}

// moodDate resolves --date, defaulting to today in the configured zone.
func (e *env) moodDate(s string) (moods.Date, error) {
	if s == "" {
		return moods.DateOf(time.Now().In(e.location())), nil
	}
	d, err := moods.ParseDate(s)
	if err != nil {
		return moods.Date{}, fmt.Errorf("--date must look like 2024-03-07")
	}
	return d, nil
}

func (e *env) location() *time.Location {
	if e.cfg.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(e.cfg.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// parsePick accepts an emotion name or its 1-based number in the palette.
func parsePick(s string) (moods.Emotion, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > moods.PaletteSize {
			return "", fmt.Errorf("pick a number from 1 to %d", moods.PaletteSize)
		}
		return moods.Palette[n-1], nil
	}
	em, err := moods.ParseEmotion(s)
	if err != nil {
		return "", fmt.Errorf("%q is not one of the listed emotions", s)
	}
	return em, nil
}
