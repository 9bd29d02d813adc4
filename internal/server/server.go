package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/peopleops/hrdesk/config"
	"github.com/peopleops/hrdesk/internal/agent"
	"github.com/peopleops/hrdesk/internal/telemetry"
	"github.com/peopleops/hrdesk/internal/vector/pinecone"
	"github.com/peopleops/hrdesk/provider"
	"github.com/peopleops/hrdesk/session/redisstore"
	"github.com/peopleops/hrdesk/tools"
	"github.com/peopleops/hrdesk/tools/clock"
	"github.com/peopleops/hrdesk/tools/holidays"
	"github.com/peopleops/hrdesk/tools/policysearch"
	"github.com/peopleops/hrdesk/web"
)

// Run wires the external collaborators together and serves the API.
func Run(cfg *config.Config) error {
	ctx := context.Background()

	if err := cfg.LLM.Validate(); err != nil {
		return err
	}
	if err := cfg.Vector.Validate(); err != nil {
		return err
	}
	if err := cfg.Redis.Validate(); err != nil {
		return err
	}

	llm, err := provider.NewProvider(ctx, cfg.LLM)
	if err != nil {
		return err
	}
	index, err := pinecone.New(ctx, cfg.Vector)
	if err != nil {
		return fmt.Errorf("vector index: %w", err)
	}
	sessions, err := redisstore.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}

	holidayClient := holidays.NewClient(cfg.Holiday)
	toolSet := []tools.Tool{clock.New()}
	toolSet = append(toolSet, holidays.All(holidayClient)...)
	toolSet = append(toolSet, policysearch.New(llm, index, cfg.Vector.TopK))

	executor := agent.NewExecutor(llm, toolSet)
	log.Printf("initialized agent with tools: %v", executor.Tools())

	e := newEcho()

	h := &ChatHandler{
		Agent:    executor,
		Sessions: sessions,
		Logger:   log.New(log.Writer(), "[API] ", log.LstdFlags),
	}
	h.Register(e)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.StaticFS("/", echo.MustSubFS(web.Static, "static"))

	log.Printf("listening on %s", cfg.Server.Address)
	return e.Start(cfg.Server.Address)
}

// newEcho builds the echo instance with the shared middleware stack and a
// unified JSON error handler.
func newEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	baseLogger := log.New(log.Writer(), "[HTTP] ", log.LstdFlags)
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		baseLogger.Printf("%d %s %s from %s: %v", code, req.Method, req.URL.Path, c.RealIP(), err)
		if !c.Response().Committed {
			_ = c.JSON(code, map[string]interface{}{"error": msg})
		}
	}

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Content-Type"},
	}))
	e.Use(metricsMiddleware)

	return e
}

func metricsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := next(c)
		status := c.Response().Status
		if err != nil {
			// the error handler has not written the response yet
			status = http.StatusInternalServerError
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
		}
		telemetry.HTTPRequests.WithLabelValues(c.Request().Method, c.Path(), strconv.Itoa(status)).Inc()
		return err
	}
}
