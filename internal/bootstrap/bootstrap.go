package bootstrap

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	calminadapter "studybuddy/internal/modules/calm/adapter/in"
	calmoutadapter "studybuddy/internal/modules/calm/adapter/out"
	calmdto "studybuddy/internal/modules/calm/dto"
	calmout "studybuddy/internal/modules/calm/port/out"
	calmusecase "studybuddy/internal/modules/calm/usecase"
	profileinadapter "studybuddy/internal/modules/profile/adapter/in"
	profileservice "studybuddy/internal/modules/profile/service"
	profileusecase "studybuddy/internal/modules/profile/usecase"
	sessioninadapter "studybuddy/internal/modules/session/adapter/in"
	sessionoutadapter "studybuddy/internal/modules/session/adapter/out"
	sessiondto "studybuddy/internal/modules/session/dto"
	sessionout "studybuddy/internal/modules/session/port/out"
	sessionservice "studybuddy/internal/modules/session/service"
	sessionusecase "studybuddy/internal/modules/session/usecase"
	voiceoutadapter "studybuddy/internal/modules/voice/adapter/out"
	voiceout "studybuddy/internal/modules/voice/port/out"
	voiceservice "studybuddy/internal/modules/voice/service"
	voiceusecase "studybuddy/internal/modules/voice/usecase"
	"studybuddy/internal/platform/clock"
	"studybuddy/internal/platform/config"
	"studybuddy/internal/platform/id"
	"studybuddy/internal/platform/logging"
	"studybuddy/internal/platform/random"
	uiapp "studybuddy/internal/ui/app"
)

const (
	eventBuffer    = 64
	pluginCheckFor = 3 * time.Second
)

type App struct {
	SessionCLI sessioninadapter.CLIHandler
	ProfileCLI profileinadapter.CLIHandler
	CalmCLI    calminadapter.CLIHandler
	// Events carries session events for the TUI. Nil when the app was built
	// without an event channel.
	Events <-chan sessiondto.Event
	// CalmEvents carries breathing exercise events, nil like Events.
	CalmEvents <-chan calmdto.Event
	Log        *zap.Logger

	closers []func()
}

type Options struct {
	// Out receives speech, reminders and haptic bells in console mode.
	Out io.Writer
	// Events enables the buffered channel sink that feeds the TUI.
	Events bool
}

func New(cfg config.Config, opts Options) (*App, error) {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	log, err := logging.New(logging.Options{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
		File:        cfg.Log.File,
	})
	if err != nil {
		return nil, err
	}
	app := &App{Log: log}
	clk := clock.SystemClock{}
	rnd := random.System{}

	kv, err := newKVStore(cfg, app)
	if err != nil {
		app.Close()
		return nil, err
	}

	speaker := newSpeaker(cfg.Voice, out, log, app)
	voiceUC := voiceusecase.NewInteractor(voiceservice.NewVoiceService(speaker, clk, log.Named("voice"), cfg.Timing.MinSpeechInterval, cfg.Voice.Language))

	var notifier sessionout.Notifier = sessionoutadapter.NoopNotifier{}
	if cfg.Notifications.Enabled {
		notifier = sessionoutadapter.NewTerminalNotifier(clk, out)
	}
	var reports sessionout.ReportStore
	if cfg.Reports.Enabled {
		reports = sessionoutadapter.NewVaultReportStore(cfg.SessionsDir())
	}

	sinks := sessionoutadapter.FanoutSink{sessionoutadapter.NewLogSink(log.Named("events"))}
	if opts.Events {
		ch := sessionoutadapter.NewChannelSink(eventBuffer, log.Named("events"))
		sinks = append(sinks, ch)
		app.Events = ch.Events()
	}

	inbox := sessionoutadapter.NewKVActionInbox(kv)
	sessionUC := sessionusecase.NewInteractor(sessionusecase.Deps{
		Clock:    clk,
		Random:   rnd,
		IDs:      id.ULID{},
		Log:      log.Named("session"),
		Store:    kv,
		Notifier: notifier,
		Inbox:    inbox,
		Haptics:  sessionoutadapter.NewBellHaptics(out),
		Reports:  reports,
		Sink:     sinks,
		Voice:    voiceUC,
		Timing:   cfg.Timing,
	})
	progressUC := sessionusecase.NewProgressInteractor(kv, inbox, log.Named("progress"))

	var calmStore calmout.Store = sessionservice.NewProgressStore(kv, log.Named("progress"))
	calmSinks := calmoutadapter.FanoutSink{calmoutadapter.NewLogSink(log.Named("calm"))}
	if opts.Events {
		ch := calmoutadapter.NewChannelSink(eventBuffer, log.Named("calm"))
		calmSinks = append(calmSinks, ch)
		app.CalmEvents = ch.Events()
	}
	calmUC := calmusecase.NewInteractor(calmusecase.Deps{
		Clock:  clk,
		Store:  calmStore,
		Voice:  voiceUC,
		Sink:   calmSinks,
		Log:    log.Named("calm"),
		Timing: cfg.Timing,
	})

	gate := profileservice.NewGateService(clk, rnd, log.Named("gate"), cfg.Timing.GateMaxAttempts, cfg.Timing.GateLockout)
	profileUC := profileusecase.NewInteractor(gate)

	app.SessionCLI = sessioninadapter.NewCLIHandler(sessionUC, progressUC)
	app.ProfileCLI = profileinadapter.NewCLIHandler(profileUC, profileUC)
	app.CalmCLI = calminadapter.NewCLIHandler(calmUC)
	app.closers = append(app.closers,
		func() { app.SessionCLI.Teardown(context.Background()) },
		func() { app.CalmCLI.StopCalm(context.Background()) })
	return app, nil
}

// Close tears down the session and releases storage and plugin processes in
// reverse order of creation. Safe to call more than once.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
	if a.Log != nil {
		_ = a.Log.Sync()
	}
}

func newKVStore(cfg config.Config, app *App) (sessionout.KVStore, error) {
	switch cfg.Storage.Driver {
	case config.DriverRedis:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		store, err := sessionoutadapter.NewRedisKVStore(ctx, sessionoutadapter.RedisOptions{
			Addr:     cfg.Storage.Redis.Addr,
			Password: cfg.Storage.Redis.Password,
			DB:       cfg.Storage.Redis.DB,
		}, cfg.Storage.Prefix)
		if err != nil {
			return nil, fmt.Errorf("new redis store: %w", err)
		}
		app.closers = append(app.closers, func() { _ = store.Close() })
		return store, nil
	case config.DriverMemory:
		return sessionoutadapter.NewMemoryKVStore(), nil
	default:
		store, err := sessionoutadapter.NewSQLiteKVStore(cfg.Storage.SQLitePath, cfg.Storage.Prefix)
		if err != nil {
			return nil, fmt.Errorf("new sqlite store: %w", err)
		}
		app.closers = append(app.closers, func() { _ = store.Close() })
		return store, nil
	}
}

// newSpeaker prefers the configured plugin, then an external command, then
// the console. A plugin that fails its metadata call is skipped.
func newSpeaker(cfg config.Voice, out io.Writer, log *zap.Logger, app *App) voiceout.Speaker {
	if cfg.Plugin != "" {
		plugin := voiceoutadapter.NewPluginSpeaker(cfg.Plugin)
		ctx, cancel := context.WithTimeout(context.Background(), pluginCheckFor)
		meta, err := plugin.Metadata(ctx)
		cancel()
		if err == nil {
			log.Info("voice plugin ready", zap.String("name", meta.Name), zap.String("version", meta.Version))
			app.closers = append(app.closers, plugin.Close)
			return plugin
		}
		plugin.Close()
		log.Warn("voice plugin unavailable, using console", zap.String("plugin", cfg.Plugin), zap.Error(err))
	}
	if cfg.Command != "" {
		speaker, err := voiceoutadapter.NewCommandSpeaker(cfg.Command)
		if err == nil {
			return speaker
		}
		log.Warn("speech command unavailable, using console", zap.String("command", cfg.Command), zap.Error(err))
	}
	return voiceoutadapter.NewConsoleSpeaker(out)
}

func RunTUI(app *App, opts uiapp.Options) error {
	model := uiapp.NewModel(app.SessionCLI, app.SessionCLI, app.ProfileCLI, app.Events, opts)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithReportFocus())
	_, err := program.Run()
	app.SessionCLI.Teardown(context.Background())
	return err
}
