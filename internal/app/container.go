package app

import (
	"context"
	"log"
	"time"

	"portfolio-api/internal/config"
	"portfolio-api/internal/database"
	dbpostgres "portfolio-api/internal/database/postgres"
	"portfolio-api/internal/database/seeder"
	"portfolio-api/internal/infrastructure/cache"
	"portfolio-api/internal/ws"
)

// Container owns the process-wide infrastructure: the connection pool,
// the cache client and the websocket hub. Request-scoped wiring lives in
// the route registration.
type Container struct {
	Config config.Config
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub
	Logger *log.Logger
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := (seeder.Runner{Seeders: []seeder.Seeder{
		seeder.SchemaSeeder{},
		seeder.AdminSeeder{Email: cfg.Admin.Email, Password: cfg.Admin.Password},
		seeder.SkillsSeeder{},
	}}).Run(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	hub := ws.NewHub(logger)
	go hub.Run()
	ws.SetDefaultHub(hub)

	return &Container{
		Config: cfg,
		DB:     db,
		Cache:  cache.NewRedis(cfg.Redis, logger),
		Hub:    hub,
		Logger: logger,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	ws.SetDefaultHub(nil)
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
