package v1

import (
	"log"

	"portfolio-api/internal/config"
	"portfolio-api/internal/database"
	"portfolio-api/internal/delivery/http/handler"
	"portfolio-api/internal/delivery/http/middleware"
	"portfolio-api/internal/importer/github"
	"portfolio-api/internal/infrastructure/cache"
	"portfolio-api/internal/pkg/jwt"
	"portfolio-api/internal/repository"
	"portfolio-api/internal/skillgraph"
	"portfolio-api/internal/usecase"
	ucauth "portfolio-api/internal/usecase/auth"
	"portfolio-api/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// Register wires the full v1 surface: public reads, the auth endpoints
// and the admin group behind the bearer-token middleware.
func Register(r fiber.Router, cfg config.Config, db database.DB, c *cache.Redis, hub *ws.Hub, logger *log.Logger) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)
	authMw := middleware.NewAuthMiddleware(jwtSvc)

	skillRepo := repository.NewPostgresSkillRepository(db)
	projectRepo := repository.NewPostgresProjectRepository(db)
	certRepo := repository.NewPostgresCertificationRepository(db)
	eduRepo := repository.NewPostgresEducationRepository(db)
	adminRepo := repository.NewPostgresAdminRepository(db)

	resolver := skillgraph.NewResolver(skillRepo)
	graph := skillgraph.NewSynchronizer(skillRepo, resolver, []skillgraph.EntityAdapter{
		skillgraph.NewProjectAdapter(projectRepo),
		skillgraph.NewCertificationAdapter(certRepo),
		skillgraph.NewEducationAdapter(eduRepo),
	}, logger)

	skillUC := usecase.NewSkillUsecase(skillRepo, graph, c)
	projectUC := usecase.NewProjectUsecase(projectRepo, graph, c)
	certUC := usecase.NewCertificationUsecase(certRepo, graph, c)
	eduUC := usecase.NewEducationUsecase(eduRepo, graph, c)
	authUC := ucauth.NewService(adminRepo, jwtSvc)

	skillHandler := handler.NewSkillHandler(skillUC)
	projectHandler := handler.NewProjectHandler(projectUC)
	certHandler := handler.NewCertificationHandler(certUC)
	eduHandler := handler.NewEducationHandler(eduUC)
	authHandler := handler.NewAuthHandler(authUC)
	importHandler := handler.NewImportHandler(github.NewImporter(graph, cfg.GitHub.BaseURL, logger))
	wsHandler := ws.NewHandler(hub, logger)

	authHandler.RegisterRoutes(r.Group("/auth"))

	skillHandler.RegisterPublicRoutes(r)
	projectHandler.RegisterPublicRoutes(r)
	certHandler.RegisterPublicRoutes(r)
	eduHandler.RegisterPublicRoutes(r)

	admin := r.Group("/admin", authMw.Middleware())
	skillHandler.RegisterAdminRoutes(admin)
	projectHandler.RegisterAdminRoutes(admin)
	certHandler.RegisterAdminRoutes(admin)
	eduHandler.RegisterAdminRoutes(admin)
	importHandler.RegisterRoutes(admin)

	r.Get("/ws/admin", wsHandler.HandleAdminWS, authMw.Middleware())
}
