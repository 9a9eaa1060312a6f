package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/skypointsocial/skypoint/infra/auth"
	"github.com/skypointsocial/skypoint/infra/config"
	"github.com/skypointsocial/skypoint/infra/editor"
	"github.com/skypointsocial/skypoint/infra/logging"
	"github.com/skypointsocial/skypoint/infra/querycache"
	"github.com/skypointsocial/skypoint/infra/skypoint"
	"github.com/skypointsocial/skypoint/infra/storage"
	"github.com/skypointsocial/skypoint/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const queryCacheSize = 256

type cliMode int

const (
	cliRun cliMode = iota
	cliVersion
	cliHelp
	cliInvalid
)

type cliOptions struct {
	idToken string
}

func parseCLIArgs(args []string) (cliMode, cliOptions, string) {
	var opts cliOptions
	if len(args) == 0 {
		return cliRun, opts, ""
	}

	switch args[0] {
	case "--version", "-version", "-v":
		return cliVersion, opts, ""
	case "--help", "-h", "help":
		return cliHelp, opts, ""
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--id-token":
			if i+1 >= len(args) || strings.TrimSpace(args[i+1]) == "" {
				return cliInvalid, opts, "--id-token requires a value"
			}
			opts.idToken = strings.TrimSpace(args[i+1])
			i++
		case strings.HasPrefix(arg, "--id-token="):
			opts.idToken = strings.TrimSpace(strings.TrimPrefix(arg, "--id-token="))
			if opts.idToken == "" {
				return cliInvalid, opts, "--id-token requires a value"
			}
		default:
			return cliInvalid, opts, fmt.Sprintf("unexpected argument: %s", strings.Join(args[i:], " "))
		}
	}
	return cliRun, opts, ""
}

func usage() string {
	return "Usage: skypoint [--id-token TOKEN] [--version|-version|-v] [--help|-h]"
}

func resolveVersionInfo(v, c, d, moduleVersion string, settings map[string]string) (string, string, string) {
	if v == "dev" {
		mv := strings.TrimSpace(moduleVersion)
		if mv != "" && mv != "(devel)" {
			v = mv
		}
	}
	if c == "none" {
		rev := strings.TrimSpace(settings["vcs.revision"])
		if rev != "" {
			if len(rev) > 12 {
				rev = rev[:12]
			}
			c = rev
		}
	}
	if d == "unknown" {
		if t := strings.TrimSpace(settings["vcs.time"]); t != "" {
			d = t
		}
	}
	return v, c, d
}

func buildSettingsMap(in []debug.BuildSetting) map[string]string {
	out := make(map[string]string, len(in))
	for _, s := range in {
		out[s.Key] = s.Value
	}
	return out
}

func resolvedRuntimeVersionInfo(v, c, d string) (string, string, string) {
	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return v, c, d
	}
	return resolveVersionInfo(v, c, d, info.Main.Version, buildSettingsMap(info.Settings))
}

func main() {
	mode, opts, msg := parseCLIArgs(os.Args[1:])
	switch mode {
	case cliVersion:
		v, c, d := resolvedRuntimeVersionInfo(version, commit, date)
		fmt.Printf("SkyPoint %s\ncommit: %s\nbuilt: %s\n", v, c, d)
		return
	case cliHelp:
		fmt.Println(usage())
		return
	case cliInvalid:
		fmt.Fprintf(os.Stderr, "%s\n%s\n", msg, usage())
		os.Exit(2)
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "skypoint: %v\n", err)
		os.Exit(1)
	}
}

func run(opts cliOptions) error {
	// 1. Load config from .env and the environment.
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	// 2. Logging goes to a file; the terminal belongs to the UI.
	logger, closer, err := logging.Open(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	defer closer.Close()
	slog.SetDefault(logger)

	// 3. Restore the session.
	state, err := storage.OpenOrReset(cfg.StatePath)
	if err != nil {
		logger.Warn("discarded unreadable state file", slog.String("error", err.Error()))
	}
	store := auth.NewStore(state, logger)
	store.Hydrate()

	// 4. Build infrastructure and services.
	cache, err := querycache.New(queryCacheSize, logger)
	if err != nil {
		return fmt.Errorf("query cache: %w", err)
	}
	client := skypoint.NewClient(cfg.BaseURL, store, logger)

	rootModel := tui.NewApp(tui.Deps{
		Auth:          skypoint.NewAuthService(client, cache),
		Posts:         skypoint.NewPostService(client, cache),
		Comments:      skypoint.NewCommentService(client, cache),
		Account:       skypoint.NewAccountService(client, cache),
		Session:       store,
		Cache:         cache,
		Editor:        editor.NewEnvEditor(),
		PageSize:      cfg.PageSize,
		OAuthProvider: cfg.OAuthProvider,
		IDToken:       opts.idToken,
		Logger:        logger,
	})

	logger.Info("starting",
		slog.String("version", version),
		slog.String("api", cfg.BaseURL),
		slog.Bool("restored_session", store.Authenticated()),
	)

	// 5. Run.
	p := tea.NewProgram(rootModel, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
