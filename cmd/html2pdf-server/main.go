package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"syscall"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
	"golang.org/x/sync/errgroup"

	html2pdf "github.com/alnah/go-html2pdf"
	"github.com/alnah/go-html2pdf/internal/assets"
	"github.com/alnah/go-html2pdf/internal/config"
	"github.com/alnah/go-html2pdf/internal/fileutil"
	"github.com/alnah/go-html2pdf/internal/hints"
	"github.com/alnah/go-html2pdf/internal/pdfinfo"
	"github.com/alnah/go-html2pdf/internal/server"
	"github.com/alnah/go-html2pdf/internal/session"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run parses the command line, builds the server and blocks until an
// interrupt. Returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	flags, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return ExitUsage
	}
	if flags.common.version {
		fmt.Fprintf(stdout, "html2pdf-server %s\n", Version)
		return ExitSuccess
	}

	// Configure GOMAXPROCS with conditional logging
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if flags.common.verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	cfg, err := resolveConfig(flags, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v%s\n", err, configHint(err, configPath(flags, loadEnvConfig())))
		return exitCodeFor(err)
	}

	logger := newLogger(cfg.Log, stderr)

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := serve(ctx, cfg, logger); err != nil {
		fmt.Fprintf(stderr, "error: %v%s\n", err, serveHint(err, cfg))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// resolveConfig builds the effective configuration.
// Precedence: flags > env vars > config file > defaults.
func resolveConfig(flags *cliFlags, stderr io.Writer) (*config.Config, error) {
	env := loadEnvConfig()
	warnUnknownEnvVars(stderr)

	cfg := config.DefaultConfig()
	if path := configPath(flags, env); path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	applyEnvConfig(env, cfg)
	mergeFlags(flags, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func configPath(flags *cliFlags, env *envConfig) string {
	if flags.common.config != "" {
		return flags.common.config
	}
	return env.ConfigPath
}

// serve wires storage, converters, sessions and HTTP, then runs the server
// and the session reaper until ctx is done or one of them fails.
func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	storage, err := session.NewStorage(cfg.Storage.UploadDir, cfg.Storage.OutputDir)
	if err != nil {
		return err
	}

	opts := converterOptions(cfg)

	// Fail at startup on a bad stylesheet, asset dir or page.
	// NewConverter does not launch the browser.
	check, err := html2pdf.NewConverter(opts...)
	if err != nil {
		return err
	}
	_ = check.Close()

	poolSize := html2pdf.ResolvePoolSize(cfg.Render.Workers)
	pool := html2pdf.NewConverterPool(poolSize, opts...)
	defer func() {
		if err := pool.Close(); err != nil {
			logger.Warn("closing converters", "error", err)
		}
	}()

	manager := session.NewManager(storage, converterPool{pool: pool},
		session.WithInspector(pdfinfo.New()),
		session.WithCatalog(session.CatalogFor(cfg.Server.Locale)),
		session.WithLogger(logger),
		session.WithErrorHint(renderHint),
	)

	pages, err := assets.NewAssetResolver(cfg.Render.AssetDir)
	if err != nil {
		return fmt.Errorf("%w: %v", html2pdf.ErrInvalidAssetPath, err)
	}

	srv, err := server.New(manager,
		server.WithLogger(logger),
		server.WithPages(pages),
		server.WithCatalog(manager.Catalog()),
		server.WithBodyLimit(cfg.Server.MaxUploadBytes),
	)
	if err != nil {
		return err
	}

	reaper := session.NewReaper(storage, cfg.SessionMaxAge(), cfg.SweepInterval(), logger)

	logger.Info("server starting",
		"addr", cfg.Server.Addr,
		"version", Version,
		"workers", poolSize,
		"locale", manager.Catalog().Locale,
		"upload_dir", cfg.Storage.UploadDir,
		"output_dir", cfg.Storage.OutputDir,
		"custom_assets", pages.HasCustomLoader(),
		"session_max_age", cfg.SessionMaxAge(),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx, cfg.Server.Addr)
	})
	g.Go(func() error {
		return reaper.Run(gctx)
	})

	err = g.Wait()
	logger.Info("server stopped")
	return err
}

// converterOptions maps the render and page sections to converter options.
func converterOptions(cfg *config.Config) []html2pdf.Option {
	opts := []html2pdf.Option{
		html2pdf.WithTimeout(cfg.RenderTimeout()),
		html2pdf.WithPage(&html2pdf.PageSettings{
			Size:        strings.ToLower(cfg.Page.Size),
			Orientation: strings.ToLower(cfg.Page.Orientation),
			Margin:      cfg.Page.Margin,
		}),
	}
	if cfg.Render.Stylesheet != "" {
		opts = append(opts, html2pdf.WithStylesheet(cfg.Render.Stylesheet))
	}
	if cfg.Render.AssetDir != "" {
		opts = append(opts, html2pdf.WithAssetPath(cfg.Render.AssetDir))
	}
	return opts
}

// newLogger builds the process logger from the log section.
func newLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// renderHint returns an operator hint for a failed conversion, logged
// alongside the error.
func renderHint(err error) string {
	switch {
	case errors.Is(err, html2pdf.ErrBrowserConnect):
		return hintText(hints.ForBrowserConnect())
	case errors.Is(err, context.DeadlineExceeded):
		return hintText(hints.ForTimeout())
	}
	return ""
}

// hintText strips the terminal formatting of a hint for use as a log value.
func hintText(h string) string {
	return strings.TrimSpace(strings.TrimPrefix(h, "\n  hint:"))
}

func configHint(err error, path string) string {
	if errors.Is(err, config.ErrConfigNotFound) {
		return hints.ForConfigNotFound(path)
	}
	return ""
}

func serveHint(err error, cfg *config.Config) string {
	switch {
	case errors.Is(err, session.ErrStorage):
		dir := cfg.Storage.UploadDir
		if fileutil.DirExists(dir) {
			dir = cfg.Storage.OutputDir
		}
		return hints.ForStorageRoot(dir)
	case errors.Is(err, syscall.EADDRINUSE):
		return hints.ForAddressInUse(cfg.Server.Addr)
	case errors.Is(err, html2pdf.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	}
	return ""
}
