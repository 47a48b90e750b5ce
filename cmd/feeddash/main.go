package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/glabrego/feeddash/internal/app"
	"github.com/glabrego/feeddash/internal/config"
	"github.com/glabrego/feeddash/internal/feed"
	"github.com/glabrego/feeddash/internal/storage"
	"github.com/glabrego/feeddash/internal/tui"
	"github.com/glabrego/feeddash/internal/tui/platform"
	"github.com/glabrego/feeddash/internal/tui/term"
	"github.com/glabrego/feeddash/internal/tui/tty"
	"github.com/glabrego/feeddash/internal/watcher"
)

// Version is overwritten at build time using -ldflags.
var Version = "dev"

func main() {
	code := 0
	cmd := newRootCmd(&code)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "feeddash: %v\n", err)
		os.Exit(1)
	}
	os.Exit(code)
}

type flags struct {
	config  string
	lazy    bool
	noMouse bool
	watch   bool
	log     string
}

func newRootCmd(code *int) *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:           "feeddash [feed file...]",
		Short:         "Browse sfeed TSV feed files in the terminal",
		Long:          "feeddash shows feeds in a sidebar and their items in a list. With no files, one feed is read from standard input.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(f.config)
			if err != nil {
				return fmt.Errorf("config error: %w", err)
			}
			if cmd.Flags().Changed("lazy") {
				cfg.Lazy = f.lazy
			}
			if f.noMouse {
				cfg.Mouse = false
			}
			if cmd.Flags().Changed("watch") {
				cfg.Watch = f.watch
			}
			if f.log != "" {
				cfg.LogPath = f.log
			}
			*code, err = run(cmd.Context(), cfg, args)
			return err
		},
	}
	cmd.Version = Version
	cmd.SetVersionTemplate("feeddash version {{.Version}}\n")

	cmd.Flags().StringVar(&f.config, "config", "", "path to a YAML config file")
	cmd.Flags().BoolVar(&f.lazy, "lazy", false, "parse items only when they are shown")
	cmd.Flags().BoolVar(&f.noMouse, "no-mouse", false, "disable mouse reporting")
	cmd.Flags().BoolVar(&f.watch, "watch", false, "reload when a feed file changes")
	cmd.Flags().StringVar(&f.log, "log", "", "write a debug log to this file")
	return cmd
}

func run(ctx context.Context, cfg config.Config, args []string) (int, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	logger, closeLog, err := openLog(cfg.LogPath)
	if err != nil {
		return 1, err
	}
	defer closeLog()

	feeds := make([]*feed.Feed, 0, len(args))
	for _, path := range args {
		feeds = append(feeds, feed.FromPath(path))
	}

	var console *tty.TTY
	if len(feeds) == 0 {
		feeds = append(feeds, feed.Stdin())
		console, err = tty.Open("/dev/tty")
		if err != nil {
			return 1, err
		}
		defer console.Close()
	} else {
		console = tty.New(os.Stdin)
	}
	if !console.IsTerminal() {
		return 1, errors.New("input is not a terminal")
	}

	opts := app.Options{Feeds: feeds, Lazy: cfg.Lazy, Logger: logger}
	closeSeen, err := configureSeen(ctx, cfg, &opts)
	if err != nil {
		return 1, err
	}
	defer closeSeen()

	svc := app.NewService(opts)
	defer svc.Close()

	startCtx, startCancel := context.WithTimeout(ctx, 15*time.Second)
	err = svc.Start(startCtx)
	startCancel()
	if err != nil {
		return 1, err
	}

	m := tui.New(svc, term.NewOutput(os.Stdout), console, platform.NewRunner(), tui.Options{
		Plumber: cfg.Plumber,
		Piper:   cfg.Piper,
		Yanker:  cfg.Yanker,
		Mouse:   cfg.Mouse,
		AutoCmd: cfg.AutoCmd,
		Logger:  logger,
	})

	if cfg.Watch {
		if err := watchFeeds(ctx, feeds, m.Signals(), logger); err != nil {
			return 1, err
		}
	}

	return m.Run(ctx)
}

// configureSeen picks where read state lives: a SQLite database, a plain
// URL file updated by the mark commands, or nowhere.
func configureSeen(ctx context.Context, cfg config.Config, opts *app.Options) (func(), error) {
	switch {
	case cfg.URLFile == "":
		return func() {}, nil
	case storage.IsDatabasePath(cfg.URLFile):
		repo, err := storage.NewRepository(cfg.URLFile)
		if err != nil {
			return nil, fmt.Errorf("storage init error: %w", err)
		}
		initCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := repo.Init(initCtx); err != nil {
			_ = repo.Close()
			return nil, fmt.Errorf("storage schema error: %w", err)
		}
		opts.Seen, opts.Marker = repo, repo
		return func() { _ = repo.Close() }, nil
	default:
		opts.Seen = feed.SeenFile{Path: cfg.URLFile}
		opts.Marker = platform.CommandMarker{
			Runner:    platform.NewRunner("SFEED_URL_FILE=" + cfg.URLFile),
			ReadCmd:   cfg.MarkRead,
			UnreadCmd: cfg.MarkUnread,
		}
		return func() {}, nil
	}
}

func openLog(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	f, err := tea.LogToFile(path, "feeddash")
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	logger.Info("starting", "version", Version, "goos", runtime.GOOS)
	return logger, func() { _ = f.Close() }, nil
}

// watchFeeds turns feed file changes into the same reload a SIGHUP asks for.
func watchFeeds(ctx context.Context, feeds []*feed.Feed, box *tui.Mailbox, logger *slog.Logger) error {
	var paths []string
	for _, f := range feeds {
		if !f.IsStdin() {
			paths = append(paths, f.Path)
		}
	}
	if len(paths) == 0 {
		logger.Warn("nothing to watch when reading standard input")
		return nil
	}
	w, err := watcher.New(paths, watcher.DefaultDebounce, logger)
	if err != nil {
		return fmt.Errorf("watch feeds: %w", err)
	}
	go func() {
		defer w.Close()
		w.Run(ctx, func() { box.Post(syscall.SIGHUP) })
	}()
	return nil
}
