package middleware

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type LoggerOpts func(*middleware.RequestLoggerConfig)

// WithSkipper excludes matching requests, such as health checks, from the log.
func WithSkipper(skip middleware.Skipper) LoggerOpts {
	return func(c *middleware.RequestLoggerConfig) {
		c.Skipper = skip
	}
}

func Logger(opts ...LoggerOpts) echo.MiddlewareFunc {
	o := defaultOpt()
	for _, opt := range opts {
		opt(&o)
	}

	return middleware.RequestLoggerWithConfig(o)
}

// Only the path is logged; query strings carry cursor tokens.
func defaultOpt() middleware.RequestLoggerConfig {
	return middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogLatency:  true,
		LogMethod:   true,
		LogURIPath:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("path", v.URIPath),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			if v.Error == nil {
				slog.LogAttrs(c.Request().Context(), slog.LevelInfo, "REQUEST", attrs...)
			} else {
				attrs = append(attrs, slog.String("err", v.Error.Error()))
				slog.LogAttrs(c.Request().Context(), slog.LevelError, "REQUEST_ERROR", attrs...)
			}
			return nil
		},
	}
}
