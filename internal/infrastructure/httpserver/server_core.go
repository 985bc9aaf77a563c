package httpserver

import (
	"time"

	"github.com/gitfolio/gitfolio/internal/core/ports"
	customMiddleware "github.com/gitfolio/gitfolio/internal/infrastructure/httpserver/middleware"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type ServerConfig struct {
	Host           string
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	TLSCertFile    string
	TLSKeyFile     string
	AllowedOrigins []string
	Environment    string
}

type ServerDeps struct {
	ProfileService       ports.ProfileService
	ProjectsService      ports.ProjectsService
	ContributionsService ports.ContributionsService
	PullRequestService   ports.PullRequestService
	ScreenshotService    ports.ScreenshotService
	IdentityResolver     ports.IdentityResolver
	HealthCheckers       []ports.HealthChecker
}

type Server struct {
	echo            *echo.Echo
	config          *ServerConfig
	logger          *logrus.Logger
	profileSvc      ports.ProfileService
	projectsSvc     ports.ProjectsService
	contributionSvc ports.ContributionsService
	pullRequestSvc  ports.PullRequestService
	screenshotSvc   ports.ScreenshotService
	middleware      *customMiddleware.MiddlewareCollection
	healthCheckers  []ports.HealthChecker
}

func NewServer(serverConfig *ServerConfig, logger *logrus.Logger, deps ServerDeps) *Server {
	e := echo.New()

	server := &Server{
		echo:            e,
		config:          serverConfig,
		logger:          logger,
		profileSvc:      deps.ProfileService,
		projectsSvc:     deps.ProjectsService,
		contributionSvc: deps.ContributionsService,
		pullRequestSvc:  deps.PullRequestService,
		screenshotSvc:   deps.ScreenshotService,
		healthCheckers:  deps.HealthCheckers,
		middleware: customMiddleware.NewMiddlewareCollection(
			deps.IdentityResolver,
			logger,
			GetRequestsTotal(),
			GetRequestDuration(),
		),
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}
