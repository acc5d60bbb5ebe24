package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/alnah/go-html2pdf/internal/assets"
	"github.com/alnah/go-html2pdf/internal/session"
)

// Sentinel errors.
var (
	ErrIndexPage = errors.New("failed to load index page")
	ErrServe     = errors.New("server stopped unexpectedly")
)

const (
	// DefaultBodyLimit caps the size of a request body.
	DefaultBodyLimit int64 = 16 << 20

	defaultShutdownTimeout = 10 * time.Second
)

// Sessions is the session lifecycle the HTTP surface drives.
// *session.Manager implements it.
type Sessions interface {
	Convert(ctx context.Context, uploads []session.Upload) (*session.Manifest, error)
	Cleanup(id string)
	OpenPDF(id, filename string) (*os.File, error)
	ArchiveAll(id string, w io.Writer) (int, error)
}

// PageLoader loads the HTML pages of the upload UI by name.
// *assets.AssetResolver and *assets.EmbeddedLoader implement it.
type PageLoader interface {
	LoadPage(name string) (string, error)
}

// Server serves the upload UI and the conversion API.
type Server struct {
	echo            *echo.Echo
	sessions        Sessions
	catalog         session.Catalog
	logger          *slog.Logger
	pages           PageLoader
	bodyLimit       int64
	now             func() time.Time
	shutdownTimeout time.Duration
	index           string
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and error logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCatalog sets the locale of error messages and archive names.
func WithCatalog(c session.Catalog) Option {
	return func(s *Server) {
		s.catalog = c
	}
}

// WithPages sets the loader of the UI pages, e.g. a resolver over a custom
// asset directory. Defaults to the embedded pages.
func WithPages(l PageLoader) Option {
	return func(s *Server) {
		if l != nil {
			s.pages = l
		}
	}
}

// WithBodyLimit sets the maximum request body size in bytes.
// Non-positive values keep the default.
func WithBodyLimit(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.bodyLimit = n
		}
	}
}

// WithClock sets the time source used for archive names.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

// WithShutdownTimeout bounds graceful shutdown in Run.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.shutdownTimeout = d
		}
	}
}

// New creates a Server with its routes registered.
func New(sessions Sessions, opts ...Option) (*Server, error) {
	s := &Server{
		sessions:        sessions,
		catalog:         session.CatalogFor(session.LocaleEnglish),
		logger:          slog.New(slog.DiscardHandler),
		pages:           assets.NewEmbeddedLoader(),
		bodyLimit:       DefaultBodyLimit,
		now:             time.Now,
		shutdownTimeout: defaultShutdownTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}

	index, err := s.pages.LoadPage(assets.IndexPageName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIndexPage, err)
	}
	s.index = index

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.handleError

	e.Use(s.requestLogger())
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(fmt.Sprintf("%dB", s.bodyLimit)))

	s.echo = e
	s.RegisterRoutes(e)
	return s, nil
}

// RegisterRoutes registers all routes on e.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	// UI
	e.GET("/", s.handleIndex)
	e.StaticFS("/static", assets.StaticFS())
	e.GET("/health", s.handleHealth)

	// Sessions
	e.POST("/convert", s.handleConvert)
	e.GET("/download/:session_id/:filename", s.handleDownload)
	e.GET("/download-all/:session_id", s.handleDownloadAll)
	e.POST("/cleanup/:session_id", s.handleCleanup)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Run listens on addr until ctx is done, then shuts down gracefully.
// Returns nil after a clean shutdown.
func (s *Server) Run(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.echo.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("%w: %w", ErrServe, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down server")
		return s.echo.Shutdown(shutdownCtx)
	}
}

// handleError renders every failure as {"error": "..."}.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := s.catalog.Internal
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		switch {
		case code == http.StatusRequestEntityTooLarge:
			msg = s.catalog.TooLarge
		case code < http.StatusInternalServerError:
			msg = http.StatusText(code)
		}
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, errorResponse{Error: msg})
	}
	if err != nil {
		s.logger.Warn("writing error response", "error", err)
	}
}

func (s *Server) requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			s.logger.LogAttrs(c.Request().Context(), level, "request", attrs...)
			return nil
		},
	})
}
