package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-html2pdf/internal/config"
)

// ErrUsage wraps flag parsing failures.
var ErrUsage = errors.New("invalid usage")

// commonFlags holds process-level flags.
type commonFlags struct {
	config  string
	verbose bool
	version bool
}

// serverFlags holds HTTP listener and storage flags.
type serverFlags struct {
	addr      string
	uploadDir string
	outputDir string
	locale    string
	maxUpload int64
}

// renderFlags holds converter flags.
type renderFlags struct {
	workers     int
	timeout     string
	stylesheet  string
	assetDir    string
	pageSize    string
	orientation string
	margin      float64
}

// sessionFlags holds session expiry flags.
type sessionFlags struct {
	maxAge        string
	sweepInterval string
}

// logFlags holds structured logging flags.
type logFlags struct {
	level  string
	format string
}

// cliFlags holds all flags of the server command.
type cliFlags struct {
	common  commonFlags
	server  serverFlags
	render  renderFlags
	session sessionFlags
	log     logFlags
}

// addCommonFlags adds process-level flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file path")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "debug logging and runtime tuning details")
	fs.BoolVar(&f.version, "version", false, "print version and exit")
}

// addServerFlags adds listener and storage flags to a FlagSet.
func addServerFlags(fs *flag.FlagSet, f *serverFlags) {
	fs.StringVarP(&f.addr, "addr", "a", "", "listen address (default \":8080\")")
	fs.StringVar(&f.uploadDir, "upload-dir", "", "upload root directory")
	fs.StringVar(&f.outputDir, "output-dir", "", "output root directory")
	fs.StringVar(&f.locale, "locale", "", "message language: en, ru")
	fs.Int64Var(&f.maxUpload, "max-upload", 0, "request body limit in bytes (default 16 MiB)")
}

// addRenderFlags adds converter flags to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.IntVarP(&f.workers, "workers", "w", 0, "browser instances (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-file render timeout (e.g., 30s, 2m)")
	fs.StringVar(&f.stylesheet, "stylesheet", "", "CSS file replacing the base stylesheet")
	fs.StringVar(&f.assetDir, "asset-dir", "", "directory with styles/ and pages/ overriding embedded assets")
	fs.StringVarP(&f.pageSize, "page-size", "p", "", "fallback page size: letter, a4, legal")
	fs.StringVar(&f.orientation, "orientation", "", "fallback orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "fallback page margin in inches (0.25-3.0)")
}

// addSessionFlags adds session expiry flags to a FlagSet.
func addSessionFlags(fs *flag.FlagSet, f *sessionFlags) {
	fs.StringVar(&f.maxAge, "session-max-age", "", "remove sessions older than this (0 = never)")
	fs.StringVar(&f.sweepInterval, "sweep-interval", "", "how often expired sessions are removed")
}

// addLogFlags adds logging flags to a FlagSet.
func addLogFlags(fs *flag.FlagSet, f *logFlags) {
	fs.StringVar(&f.level, "log-level", "", "log level: debug, info, warn, error")
	fs.StringVar(&f.format, "log-format", "", "log format: text, json")
}

// parseFlags parses the server command line (without the program name).
// Returns flag.ErrHelp when help was requested.
func parseFlags(args []string, stderr io.Writer) (*cliFlags, error) {
	fs := flag.NewFlagSet("html2pdf-server", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &cliFlags{}

	addCommonFlags(fs, &f.common)
	addServerFlags(fs, &f.server)
	addRenderFlags(fs, &f.render)
	addSessionFlags(fs, &f.session)
	addLogFlags(fs, &f.log)

	fs.Usage = func() { printUsage(stderr, fs) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected argument %q", ErrUsage, fs.Arg(0))
	}

	return f, nil
}

// mergeFlags applies explicitly set (non-zero) flags over cfg.
func mergeFlags(f *cliFlags, cfg *config.Config) {
	setString(&cfg.Server.Addr, f.server.addr)
	setString(&cfg.Server.Locale, f.server.locale)
	setString(&cfg.Storage.UploadDir, f.server.uploadDir)
	setString(&cfg.Storage.OutputDir, f.server.outputDir)
	if f.server.maxUpload > 0 {
		cfg.Server.MaxUploadBytes = f.server.maxUpload
	}

	if f.render.workers > 0 {
		cfg.Render.Workers = f.render.workers
	}
	setString(&cfg.Render.Timeout, f.render.timeout)
	setString(&cfg.Render.Stylesheet, f.render.stylesheet)
	setString(&cfg.Render.AssetDir, f.render.assetDir)
	setString(&cfg.Page.Size, f.render.pageSize)
	setString(&cfg.Page.Orientation, f.render.orientation)
	if f.render.margin > 0 {
		cfg.Page.Margin = f.render.margin
	}

	setString(&cfg.Session.MaxAge, f.session.maxAge)
	setString(&cfg.Session.SweepInterval, f.session.sweepInterval)

	setString(&cfg.Log.Level, f.log.level)
	setString(&cfg.Log.Format, f.log.format)
	if f.common.verbose {
		cfg.Log.Level = "debug"
	}
}

func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintf(w, "Usage: html2pdf-server [flags]\n\n")
	fmt.Fprintf(w, "Serves a web UI and API that convert uploaded HTML files to PDF.\n\n")
	fmt.Fprintf(w, "Flags:\n%s\n", fs.FlagUsages())
	fmt.Fprintf(w, "Precedence: flags > HTML2PDF_* environment > config file > defaults.\n")
}
