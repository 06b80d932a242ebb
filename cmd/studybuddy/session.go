package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"studybuddy/internal/bootstrap"
	profile "studybuddy/internal/modules/profile/domain"
	sessiondto "studybuddy/internal/modules/session/dto"
)

const consoleHelp = "commands: p pause, r resume, b break, e end, h help, 1-4 answer, bg/fg app state, ? this list"

func newSessionCmd(flags *rootFlags) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Study session lifecycle"}

	var subject string
	var workMin, breakMin int
	run := &cobra.Command{
		Use:   "run --subject <id>",
		Short: "Run a focus session in this terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags, bootstrap.Options{Out: cmd.OutOrStdout(), Events: true})
			if err != nil {
				return err
			}
			defer app.Close()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			return runConsoleSession(ctx, app, sessiondto.StartInput{
				SubjectID:    subject,
				Age:          flags.age,
				WorkMinutes:  workMin,
				BreakMinutes: breakMin,
			}, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	run.Flags().StringVar(&subject, "subject", "", "subject id, e.g. math or reading")
	run.Flags().IntVar(&workMin, "work-min", 0, "focus minutes (0 = age default)")
	run.Flags().IntVar(&breakMin, "break-min", 0, "break minutes (0 = age default)")

	session.AddCommand(run)
	return session
}

// runConsoleSession drives one session from line input. It returns when the
// session ends, the input closes or ctx is cancelled; the latter two end the
// session so it is still recorded.
func runConsoleSession(ctx context.Context, app *bootstrap.App, input sessiondto.StartInput, in io.Reader, w io.Writer) error {
	var mu sync.Mutex
	printf := func(format string, args ...any) {
		mu.Lock()
		defer mu.Unlock()
		_, _ = fmt.Fprintf(w, format, args...)
	}

	start, err := app.SessionCLI.Start(ctx, input.SubjectID, input.Age, input.WorkMinutes, input.BreakMinutes)
	if err != nil {
		return err
	}
	printf("%s  (%d min focus, %d min break)\n%s\n", start.StartMessage, start.WorkSec/60, start.BreakSec/60, consoleHelp)

	ended := make(chan sessiondto.EndOutput, 1)
	go func() {
		for e := range app.Events {
			if line := consoleLine(e); line != "" {
				printf("[%02d:%02d] %s\n", e.ElapsedSec/60, e.ElapsedSec%60, line)
			}
			if e.Kind == "session_ended" && e.Outcome != nil {
				ended <- *e.Outcome
				return
			}
		}
	}()

	done := make(chan struct{})
	defer close(done)
	lines := readLines(in, done)

	finish := func() error {
		out, err := app.SessionCLI.End(context.Background())
		if err != nil {
			return err
		}
		printSummary(printf, out)
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return finish()
		case out := <-ended:
			printSummary(printf, out)
			askFeedback(ctx, app, lines, printf)
			return nil
		case line, ok := <-lines:
			if !ok {
				return finish()
			}
			if err := consoleCommand(ctx, app, line, printf); err != nil {
				printf("%v\n", err)
			}
		}
	}
}

// readLines sends trimmed input lines until the input ends or done closes.
// The channel is closed when the reader returns.
func readLines(in io.Reader, done <-chan struct{}) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- strings.TrimSpace(scanner.Text()):
			case <-done:
				return
			}
		}
	}()
	return lines
}

// askFeedback reads one line naming what helped. A blank line, closed input
// or cancelled ctx skips it.
func askFeedback(ctx context.Context, app *bootstrap.App, lines <-chan string, printf func(string, ...any)) {
	ids := make([]string, 0, len(profile.Helpers()))
	for _, h := range profile.Helpers() {
		ids = append(ids, h.ID)
	}
	printf("what helped today? (%s, blank to skip)\n", strings.Join(ids, ", "))
	var line string
	select {
	case <-ctx.Done():
		return
	case l, ok := <-lines:
		if !ok {
			return
		}
		line = l
	}
	picked := strings.FieldsFunc(line, func(r rune) bool { return r == ',' || r == ' ' })
	if len(picked) == 0 {
		return
	}
	out, err := app.SessionCLI.RecordFeedback(ctx, picked)
	if err != nil {
		printf("%v\n", err)
		return
	}
	printf("thanks! noted %s\n", strings.Join(out.WhatWorked, ", "))
}

func consoleCommand(ctx context.Context, app *bootstrap.App, line string, printf func(string, ...any)) error {
	switch line {
	case "":
		return nil
	case "?":
		printf("%s\n", consoleHelp)
	case "p":
		return app.SessionCLI.Pause(ctx)
	case "r":
		return app.SessionCLI.Resume(ctx)
	case "b":
		out, err := app.SessionCLI.TakeBreak(ctx)
		if err != nil {
			return err
		}
		printf("%s %d min\n", out.Message, out.BreakSec/60)
	case "e":
		_, err := app.SessionCLI.End(ctx)
		return err
	case "h":
		return respond(ctx, app, "help")
	case "bg":
		out, err := app.SessionCLI.Foreground(ctx, false)
		if err != nil {
			return err
		}
		for _, r := range out.Reminders {
			printf("reminder in %ds: %s\n", r.FireOffsetSec, r.PayloadText)
		}
	case "fg":
		out, err := app.SessionCLI.Foreground(ctx, true)
		if err != nil {
			return err
		}
		if out.Action != "" {
			printf("handled %s from a reminder\n", out.Action)
		}
	default:
		n, err := strconv.Atoi(line)
		if err != nil {
			return fmt.Errorf("unknown command %q", line)
		}
		snap, err := app.SessionCLI.Snapshot(ctx)
		if err != nil {
			return err
		}
		if snap.Prompt == nil || n < 1 || n > len(snap.Prompt.Options) {
			return fmt.Errorf("no question option %d", n)
		}
		return respond(ctx, app, snap.Prompt.Options[n-1].Value)
	}
	return nil
}

func respond(ctx context.Context, app *bootstrap.App, value string) error {
	snap, err := app.SessionCLI.Snapshot(ctx)
	if err != nil {
		return err
	}
	promptID := ""
	if snap.Prompt != nil {
		promptID = snap.Prompt.ID
	}
	_, err = app.SessionCLI.Respond(ctx, promptID, value)
	return err
}

func consoleLine(e sessiondto.Event) string {
	switch e.Kind {
	case "check_in_shown", "prompt_shown", "prompt_timed_out", "feedback", "need_help", "welcome_back", "break_over":
		line := e.Text
		if e.Prompt != nil {
			for i, opt := range e.Prompt.Options {
				line += fmt.Sprintf("  [%d] %s", i+1, opt.Label)
			}
		}
		return line
	case "surprise":
		return e.Emoji + " " + e.Text
	case "special", "break_started":
		return e.Title
	case "paused":
		return "paused (r to resume)"
	case "resumed":
		return "back to work"
	case "buddy_faded":
		return "your buddy steps back so you can focus"
	}
	return ""
}

func printSummary(printf func(string, ...any), out sessiondto.EndOutput) {
	if out.Badge != "" {
		printf("%s %s badge (%s focus)\n", out.BadgeEmoji, out.Badge, out.Quality)
	}
	if out.Encouragement != "" {
		printf("%s\n", out.Encouragement)
	}
	printf("%s\n%s\nfocused %d min %02d s, total %d min, streak %d\n",
		out.Celebration, out.CompletionMessage, out.ElapsedSec/60, out.ElapsedSec%60, out.TotalTimeSec/60, out.NewStreak)
	if out.ReportPath != "" {
		printf("report: %s\n", out.ReportPath)
	}
}
