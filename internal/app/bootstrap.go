package app

import (
	"fmt"
	"log"
	"strings"

	"portfolio-api/internal/config"
	"portfolio-api/internal/delivery/http/middleware"
	"portfolio-api/internal/delivery/http/routes"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(cfg config.Config, logger *log.Logger) (*App, error) {
	container, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, err
	}

	f := fiber.New(fiber.Config{
		AppName: cfg.App.AppName,
	})

	registerGlobalMiddleware(f, container.Logger)
	routes.Register(f, cfg, container.DB, container.Cache, container.Hub, container.Logger)

	return &App{Fiber: f, Container: container}, nil
}

func Bootstrap(cfg config.Config, logger *log.Logger) (*App, func() error, error) {
	app, err := New(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return app, app.Container.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *log.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
	app.Use(middleware.NewErrorMiddleware(logger).Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
