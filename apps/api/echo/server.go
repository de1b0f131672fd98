package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/lefika/ripota/core"
	"github.com/lefika/ripota/core/class"
	"github.com/lefika/ripota/core/course"
	"github.com/lefika/ripota/core/monitoring"
	"github.com/lefika/ripota/core/rating"
	"github.com/lefika/ripota/core/report"
	"github.com/lefika/ripota/core/user"
	"github.com/lefika/ripota/storage/cache"
)

type (
	ServerDeps struct {
		Conf           *core.Config
		Logger         core.Logger
		DisableReqLogs bool

		UserSvc       user.Service
		ClassSvc      class.Service
		CourseSvc     course.Service
		ReportSvc     report.Service
		RatingSvc     rating.Service
		MonitoringSvc monitoring.Service
		Cache         *cache.Client

		Validate   *validator.Validate
		Translator ut.Translator
	}

	Server interface {
		http.Handler
		Start()
		Shutdown(context.Context) error
		Close() error
		Errors() <-chan error
		ShutdownSignal() <-chan os.Signal
	}

	server struct {
		deps ServerDeps
		app  *echo.Echo

		errChan     chan error
		shutdownSig chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(deps ServerDeps) Server {
	s := &server{
		deps:        deps,
		app:         echo.New(),
		errChan:     make(chan error, 1),
		shutdownSig: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdownSig, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.deps.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.deps.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	s.app.Use(middleware.CORS())

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.signalShutdown)
	s.app.Debug = conf.Debug
	s.app.HideBanner = true

	s.app.GET("/", home)

	g := s.app.Group("")
	jwt := newJWTMiddleware(conf)

	registerUserRoutes(g, jwt, s.deps)
	registerClassRoutes(g, jwt, s.deps)
	registerCourseRoutes(g, jwt, s.deps)
	registerReportRoutes(g, jwt, s.deps)
	registerRatingRoutes(g, jwt, s.deps)
	registerMonitoringRoutes(g, jwt, s.deps)
}

func (s *server) Start() {
	if err := s.app.Start(s.deps.Conf.Server.Address()); err != nil && err != http.ErrServerClosed {
		s.errChan <- err
	}
}

func (s *server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) Close() error {
	return s.app.Close()
}

func (s *server) Errors() <-chan error {
	return s.errChan
}

func (s *server) ShutdownSignal() <-chan os.Signal {
	return s.shutdownSig
}

// signalShutdown lets the error handler trigger a graceful shutdown on
// unrecoverable errors.
func (s *server) signalShutdown() {
	s.shutdownSig <- syscall.SIGTERM
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to Ripota API!")
}
