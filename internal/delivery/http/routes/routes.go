package routes

import (
	"log"

	"portfolio-api/internal/config"
	"portfolio-api/internal/database"
	"portfolio-api/internal/delivery/http/handler"
	v1 "portfolio-api/internal/delivery/http/routes/v1"
	"portfolio-api/internal/infrastructure/cache"
	"portfolio-api/internal/ws"

	"github.com/gofiber/fiber/v3"
)

func Register(app *fiber.App, cfg config.Config, db database.DB, c *cache.Redis, hub *ws.Hub, logger *log.Logger) {
	if app == nil {
		return
	}

	handler.NewHealthHandler(db, c).RegisterRoutes(app)

	api := app.Group("/api")
	v1.Register(api.Group("/v1"), cfg, db, c, hub, logger)
}
