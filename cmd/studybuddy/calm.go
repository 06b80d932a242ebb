package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"

	"github.com/spf13/cobra"

	"studybuddy/internal/bootstrap"
	calmdto "studybuddy/internal/modules/calm/dto"
)

const calmHelp = "commands: f finish, q stop without saving, s status"

func newCalmCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "calm",
		Short: "Guided breathing to calm down",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags, bootstrap.Options{Out: cmd.OutOrStdout(), Events: true})
			if err != nil {
				return err
			}
			defer app.Close()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			return runCalm(ctx, app, flags.age, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// runCalm breathes until the learner finishes or stops. Closed input and a
// cancelled ctx both finish, so the exercise still counts.
func runCalm(ctx context.Context, app *bootstrap.App, age string, in io.Reader, w io.Writer) error {
	var mu sync.Mutex
	printf := func(format string, args ...any) {
		mu.Lock()
		defer mu.Unlock()
		_, _ = fmt.Fprintf(w, format, args...)
	}

	start, err := app.CalmCLI.StartCalm(ctx, age)
	if err != nil {
		return err
	}
	printf("%s\ncalm streak %d, one breath every %d s\n%s\n", start.Message, start.Streak, start.CycleSec, calmHelp)

	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			select {
			case <-quit:
				return
			case e, ok := <-app.CalmEvents:
				if !ok {
					return
				}
				if line := calmLine(e); line != "" {
					printf("[%02d:%02d] %s\n", e.ElapsedSec/60, e.ElapsedSec%60, line)
				}
			}
		}
	}()

	done := make(chan struct{})
	defer close(done)
	lines := readLines(in, done)

	finish := func() error {
		out, err := app.CalmCLI.FinishCalm(context.Background())
		if err != nil {
			return err
		}
		printf("%s\n%s\nbreathed %d times in %d min %02d s, calm streak %d\n",
			out.Title, out.Message, out.Breaths, out.DurationSec/60, out.DurationSec%60, out.NewStreak)
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return finish()
		case line, ok := <-lines:
			if !ok {
				return finish()
			}
			switch line {
			case "":
			case "f":
				return finish()
			case "q":
				app.CalmCLI.StopCalm(ctx)
				printf("stopped\n")
				return nil
			case "s":
				snap := app.CalmCLI.CalmSnapshot(ctx)
				printf("%s, %d breaths, %d s\n", snap.Phase, snap.Breaths, snap.ElapsedSec)
			default:
				printf("unknown command %q\n%s\n", line, calmHelp)
			}
		}
	}
}

func calmLine(e calmdto.Event) string {
	switch e.Kind {
	case "breath":
		return e.Phase + "..."
	case "breath_prompt":
		return e.Text
	case "calm_ready":
		return e.Title + " " + e.Text + " (f to finish)"
	}
	return ""
}
