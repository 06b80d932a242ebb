package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"studybuddy/internal/bootstrap"
	sessiondto "studybuddy/internal/modules/session/dto"
	"studybuddy/internal/platform/config"
	uiapp "studybuddy/internal/ui/app"
)

type rootFlags struct {
	dataDir string
	age     string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "studybuddy",
		Short:         "Focus sessions with a study buddy",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", defaultDataDir(), "directory holding settings, progress and session notes")
	root.PersistentFlags().StringVar(&flags.age, "age", "", "age group override: young|elementary|tween|teen")

	root.AddCommand(newTUICmd(flags))
	root.AddCommand(newSessionCmd(flags))
	root.AddCommand(newCalmCmd(flags))
	root.AddCommand(newProfileCmd(flags))
	root.AddCommand(newProgressCmd(flags))
	root.AddCommand(newSettingsCmd(flags))
	root.AddCommand(newRemindCmd(flags))
	root.AddCommand(newParentCmd(flags))
	return root
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "studybuddy")
	}
	return ".studybuddy"
}

func loadConfig(flags *rootFlags) (config.Config, error) {
	if err := os.MkdirAll(flags.dataDir, 0o755); err != nil {
		return config.Config{}, fmt.Errorf("create data dir: %w", err)
	}
	return config.Load(flags.dataDir)
}

func loadApp(flags *rootFlags, opts bootstrap.Options) (*bootstrap.App, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg, opts)
}

func newTUICmd(flags *rootFlags) *cobra.Command {
	var workMin, breakMin int
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Run the study buddy terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			// The terminal belongs to the UI.
			if cfg.Log.File == "" {
				cfg.Log.File = filepath.Join(cfg.DataDir, "studybuddy.log")
			}
			app, err := bootstrap.New(cfg, bootstrap.Options{Out: io.Discard, Events: true})
			if err != nil {
				return err
			}
			defer app.Close()
			return bootstrap.RunTUI(app, uiapp.Options{Age: flags.age, WorkMinutes: workMin, BreakMinutes: breakMin})
		},
	}
	cmd.Flags().IntVar(&workMin, "work-min", 0, "focus minutes for this session (0 = age default)")
	cmd.Flags().IntVar(&breakMin, "break-min", 0, "break minutes for this session (0 = age default)")
	return cmd
}

func newProfileCmd(flags *rootFlags) *cobra.Command {
	profile := &cobra.Command{Use: "profile", Short: "Age profile queries"}
	profile.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the age profile and its subjects",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags, bootstrap.Options{Out: cmd.OutOrStdout()})
			if err != nil {
				return err
			}
			defer app.Close()
			ctx := context.Background()
			age, err := effectiveAge(ctx, app, flags.age)
			if err != nil {
				return err
			}
			p, subjects := app.ProfileCLI.Show(ctx, age)
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "age: %s (%s)\nsession: %d min (max %d)\nbreak: %d min\ncheck-ins: every %d min\nquestions: every %d min\n",
				p.Age, p.DisplayRange, p.SessionMinutes, p.MaxMinutes, p.BreakMinutes, p.CheckInEveryMin, p.InteractionEveryMin)
			for _, s := range subjects {
				_, _ = fmt.Fprintf(w, "%s\t%s %s\t%s\t%s\n", s.ID, s.Emoji, s.Label, s.Category, s.Difficulty)
			}
			for _, b := range app.ProfileCLI.Buddies(ctx, p.Age) {
				_, _ = fmt.Fprintf(w, "buddy %s\t%s %s\n", b.ID, b.Emoji, b.Name)
			}
			return nil
		},
	})
	return profile
}

func newProgressCmd(flags *rootFlags) *cobra.Command {
	progress := &cobra.Command{Use: "progress", Short: "Focus totals and streak"}

	progress.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show total focus time, streak and the last session log",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags, bootstrap.Options{Out: cmd.OutOrStdout()})
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.SessionCLI.Progress(context.Background())
			if err != nil {
				return err
			}
			printProgress(cmd.OutOrStdout(), out)
			return nil
		},
	})

	progress.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Reset streak and total focus time (grown-ups only)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags, bootstrap.Options{Out: cmd.OutOrStdout()})
			if err != nil {
				return err
			}
			defer app.Close()
			ctx := context.Background()
			if err := runGate(ctx, app, flags.age, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
				return err
			}
			if err := app.SessionCLI.ResetProgress(ctx); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "progress reset")
			return nil
		},
	})
	return progress
}

func newSettingsCmd(flags *rootFlags) *cobra.Command {
	settings := &cobra.Command{Use: "settings", Short: "Age, buddy and speech settings"}

	settings.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags, bootstrap.Options{Out: cmd.OutOrStdout()})
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.SessionCLI.Settings(context.Background())
			if err != nil {
				return err
			}
			printSettings(cmd.OutOrStdout(), out)
			return nil
		},
	})

	settings.AddCommand(&cobra.Command{
		Use:   "age <young|elementary|tween|teen>",
		Short: "Select the age group (grown-ups only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(flags, bootstrap.Options{Out: cmd.OutOrStdout()})
			if err != nil {
				return err
			}
			defer app.Close()
			ctx := context.Background()
			if err := runGate(ctx, app, flags.age, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
				return err
			}
			out, err := app.SessionCLI.SelectAge(ctx, args[0])
			if err != nil {
				return err
			}
			printSettings(cmd.OutOrStdout(), out)
			return nil
		},
	})

	settings.AddCommand(&cobra.Command{
		Use:   "buddy <id>",
		Short: "Pick a study buddy for the current age group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(flags, bootstrap.Options{Out: cmd.OutOrStdout()})
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.SessionCLI.SelectBuddy(context.Background(), args[0])
			if err != nil {
				return err
			}
			printSettings(cmd.OutOrStdout(), out)
			return nil
		},
	})

	var mainScreen, calm, celebration string
	var rate, pitch float64
	speech := &cobra.Command{
		Use:   "speech",
		Short: "Change speech settings (grown-ups only)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			input := sessiondto.SpeechSettingsInput{}
			var err error
			if input.MainScreenEnabled, err = onOff("main", mainScreen); err != nil {
				return err
			}
			if input.CalmModeEnabled, err = onOff("calm", calm); err != nil {
				return err
			}
			if input.CelebrationEnabled, err = onOff("celebration", celebration); err != nil {
				return err
			}
			if cmd.Flags().Changed("rate") {
				input.Rate = &rate
			}
			if cmd.Flags().Changed("pitch") {
				input.Pitch = &pitch
			}
			app, err := loadApp(flags, bootstrap.Options{Out: cmd.OutOrStdout()})
			if err != nil {
				return err
			}
			defer app.Close()
			ctx := context.Background()
			if err := runGate(ctx, app, flags.age, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
				return err
			}
			out, err := app.SessionCLI.UpdateSpeech(ctx, input)
			if err != nil {
				return err
			}
			printSettings(cmd.OutOrStdout(), out)
			return nil
		},
	}
	speech.Flags().StringVar(&mainScreen, "main", "", "speech on the main screen: on|off")
	speech.Flags().StringVar(&calm, "calm", "", "speech in calm mode: on|off")
	speech.Flags().StringVar(&celebration, "celebration", "", "speech on the celebration screen: on|off")
	speech.Flags().Float64Var(&rate, "rate", 1, "speech rate multiplier (0, 2]")
	speech.Flags().Float64Var(&pitch, "pitch", 1, "speech pitch multiplier (0, 2]")
	settings.AddCommand(speech)
	return settings
}

func newRemindCmd(flags *rootFlags) *cobra.Command {
	remind := &cobra.Command{Use: "remind", Short: "Reminder notifications"}
	remind.AddCommand(&cobra.Command{
		Use:   "act <RESUME|BREAK|DONE>",
		Short: "Record the action chosen on a reminder notification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(flags, bootstrap.Options{Out: cmd.OutOrStdout()})
			if err != nil {
				return err
			}
			defer app.Close()
			if err := app.SessionCLI.RecordAction(context.Background(), strings.ToUpper(args[0])); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "recorded %s\n", strings.ToUpper(args[0]))
			return nil
		},
	})
	return remind
}

func newParentCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "parent",
		Short: "Answer the grown-up check",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags, bootstrap.Options{Out: cmd.OutOrStdout()})
			if err != nil {
				return err
			}
			defer app.Close()
			if err := runGate(context.Background(), app, flags.age, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "gate passed")
			return nil
		},
	}
}

// runGate asks gate questions until one is answered, the gate locks or the
// input ends.
func runGate(ctx context.Context, app *bootstrap.App, age string, in io.Reader, w io.Writer) error {
	age, err := effectiveAge(ctx, app, age)
	if err != nil {
		return err
	}
	scanner := bufio.NewScanner(in)
	for {
		challenge, err := app.ProfileCLI.OpenGate(ctx, age)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(w, "%s ", challenge.Question)
		if !scanner.Scan() {
			app.ProfileCLI.CancelGate(ctx)
			return fmt.Errorf("grown-up check cancelled")
		}
		res, err := app.ProfileCLI.SubmitGate(ctx, scanner.Text())
		if err != nil {
			return err
		}
		switch {
		case res.Passed:
			return nil
		case res.Locked:
			return fmt.Errorf("too many wrong answers, try again in %d seconds", int(res.LockedFor.Seconds()))
		default:
			_, _ = fmt.Fprintf(w, "not quite, %d tries left\n", res.AttemptsLeft)
		}
	}
}

func effectiveAge(ctx context.Context, app *bootstrap.App, flagAge string) (string, error) {
	if flagAge != "" {
		return flagAge, nil
	}
	settings, err := app.SessionCLI.Settings(ctx)
	if err != nil {
		return "", err
	}
	return settings.Age, nil
}

func onOff(name, raw string) (*bool, error) {
	switch strings.ToLower(raw) {
	case "":
		return nil, nil
	case "on", "true", "yes":
		v := true
		return &v, nil
	case "off", "false", "no":
		v := false
		return &v, nil
	}
	return nil, fmt.Errorf("--%s must be on or off", name)
}

func printProgress(w io.Writer, out sessiondto.ProgressOutput) {
	_, _ = fmt.Fprintf(w, "total focus: %d min %02d s\nstreak: %d\ncalm streak: %d\n",
		out.TotalFocusTimeSec/60, out.TotalFocusTimeSec%60, out.CurrentStreak, out.CalmStreak)
	if !out.LastSessionDate.IsZero() {
		_, _ = fmt.Fprintf(w, "last session: %s\n", out.LastSessionDate.Local().Format("2006-01-02 15:04"))
	}
	for _, e := range out.LastSessionLog {
		_, _ = fmt.Fprintf(w, "  %02d:%02d %s: %s\n", e.AtElapsedSec/60, e.AtElapsedSec%60, e.PromptID, e.ResponseValue)
	}
}

func printSettings(w io.Writer, out sessiondto.SettingsOutput) {
	_, _ = fmt.Fprintf(w, "age: %s\nbuddy: %s (%s)\nspeech main=%t calm=%t celebration=%t rate=%.2f pitch=%.2f\n",
		out.Age, out.BuddyName, out.BuddyID, out.MainScreenEnabled, out.CalmModeEnabled, out.CelebrationEnabled, out.Rate, out.Pitch)
}
