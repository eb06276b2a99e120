package http

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	// Registers the swagger document served by echoSwagger.
	_ "dispatch/internal/generated/docs"
	"dispatch/internal/generated/servers"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

const apiPathPrefix = "/api/"

// RouterConfig collects what the echo instance serves besides the API.
type RouterConfig struct {
	// Username and Password enable basic auth on the API routes when both are set.
	Username string
	Password string

	// Gatherer backs /metrics. Nil uses the default Prometheus registry.
	Gatherer prometheus.Gatherer

	// Spec enables request validation when set.
	Spec *openapi3.T

	Logger *slog.Logger
}

// NewRouter builds the echo instance serving the dispatch API, /health,
// /metrics and /swagger/*.
func NewRouter(server servers.ServerInterface, cfg RouterConfig) (*echo.Echo, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "http")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(requestLogger(logger))

	if cfg.Username != "" && cfg.Password != "" {
		e.Use(basicAuth(cfg.Username, cfg.Password))
	}

	if cfg.Spec != nil {
		validator, err := newRequestValidator(cfg.Spec, skipNonAPI)
		if err != nil {
			return nil, err
		}
		e.Use(validator)
	}

	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	servers.RegisterHandlers(e, server)

	return e, nil
}

func skipNonAPI(c echo.Context) bool {
	return !strings.HasPrefix(c.Request().URL.Path, apiPathPrefix)
}

func basicAuth(username, password string) echo.MiddlewareFunc {
	return middleware.BasicAuthWithConfig(middleware.BasicAuthConfig{
		Skipper: skipNonAPI,
		Validator: func(u, p string, _ echo.Context) (bool, error) {
			userOK := subtle.ConstantTimeCompare([]byte(u), []byte(username)) == 1
			passOK := subtle.ConstantTimeCompare([]byte(p), []byte(password)) == 1
			return userOK && passOK, nil
		},
	})
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError || v.Error != nil {
				level = slog.LevelError
			}

			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("remote_ip", v.RemoteIP),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}

			logger.LogAttrs(context.Background(), level, "Request handled", attrs...)
			return nil
		},
	})
}
