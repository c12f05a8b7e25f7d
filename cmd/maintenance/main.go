package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"portfolio-api/internal/config"
	"portfolio-api/internal/database"
	dbpostgres "portfolio-api/internal/database/postgres"
	"portfolio-api/internal/database/seeder"
	"portfolio-api/internal/importer/github"
	"portfolio-api/internal/repository"
	"portfolio-api/internal/skillgraph"
)

// Maintenance runs the offline jobs against the same database the API
// serves: schema seeding, the orphan cleanup sweep and GitHub imports.
func main() {
	var (
		seed    = flag.Bool("seed", false, "run the schema and data seeders")
		cleanup = flag.Bool("cleanup", false, "prune dead skill references and recompute visibility")
		login   = flag.String("github", "", "import skills from this GitHub profile")
		pages   = flag.Int("pages", 1, "repository listing pages to scrape")
		workers = flag.Int("workers", 2, "concurrent repository fetches")
		timeout = flag.Duration("timeout", 5*time.Minute, "overall run timeout")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "", log.LstdFlags)

	if !*seed && !*cleanup && *login == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Fatalf("failed to connect database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Printf("close error: %v", err)
		}
	}()

	if *seed {
		if err := runSeeders(ctx, cfg, db); err != nil {
			logger.Fatalf("seed failed: %v", err)
		}
		logger.Printf("seed | done")
	}

	graph := buildGraph(db, logger)

	if *cleanup {
		report, err := graph.CleanupOrphanedReferences(ctx)
		if err != nil {
			logger.Fatalf("cleanup failed: %v", err)
		}
		logger.Printf("cleanup | deactivated=%d activated=%d errors=%d",
			report.SkillsDeactivated, report.SkillsActivated, report.Errors)
	}

	if *login != "" {
		importer := github.NewImporter(graph, cfg.GitHub.BaseURL, logger)
		report, err := importer.ImportProfile(ctx, *login, *pages, *workers)
		if err != nil {
			logger.Fatalf("github import failed: %v", err)
		}
		logger.Printf("github import | repos=%d synced=%d errors=%d",
			report.Repositories, report.SkillsSynced, report.Errors)
	}
}

func runSeeders(ctx context.Context, cfg config.Config, db database.DB) error {
	return seeder.Runner{Seeders: []seeder.Seeder{
		seeder.SchemaSeeder{},
		seeder.AdminSeeder{Email: cfg.Admin.Email, Password: cfg.Admin.Password},
		seeder.SkillsSeeder{},
	}}.Run(ctx, db)
}

func buildGraph(db database.DB, logger *log.Logger) *skillgraph.Synchronizer {
	skillRepo := repository.NewPostgresSkillRepository(db)
	resolver := skillgraph.NewResolver(skillRepo)
	return skillgraph.NewSynchronizer(skillRepo, resolver, []skillgraph.EntityAdapter{
		skillgraph.NewProjectAdapter(repository.NewPostgresProjectRepository(db)),
		skillgraph.NewCertificationAdapter(repository.NewPostgresCertificationRepository(db)),
		skillgraph.NewEducationAdapter(repository.NewPostgresEducationRepository(db)),
	}, logger)
}
