package main

import (
	"context"
	"log"

	httpadapter "resume-builder/internal/adapter/http"
	repo "resume-builder/internal/adapter/repository"
	"resume-builder/internal/config"
	"resume-builder/internal/infrastructure/migration"
	"resume-builder/internal/usecase"
	"resume-builder/pkg/ai"
	infra "resume-builder/pkg/infrastructure"
	"resume-builder/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zlog := logger.New(cfg.App.Env)

	documents, err := buildRepo(ctx, cfg, zlog)
	if err != nil {
		zlog.Error("document store setup failed", err)
		log.Fatal(err)
	}

	// export engines: the builtin drawer always works, Chrome is optional
	var htmlRenderer usecase.HTMLRenderer
	if cfg.Export.ChromePath != "" {
		htmlRenderer = infra.NewChromedpRenderer(cfg.Export.ChromePath)
	}

	extractor := ai.NewClient(cfg.AI.BaseURL, cfg.AI.Timeout)
	mutator := usecase.NewMutator(zlog)
	exporter := usecase.NewExporter(htmlRenderer, cfg.Export.TplDir, cfg.Export.Dir, zlog)
	uploader := usecase.NewUploader(extractor, zlog)

	app := fiber.New(fiber.Config{
		AppName:   "resume-builder",
		BodyLimit: 20 * 1024 * 1024,
	})
	app.Use(recover.New())
	app.Use(cors.New())

	handler := httpadapter.NewHandler(documents, mutator, exporter, uploader, extractor, zlog)
	handler.Register(app)

	zlog.Info("server listening",
		zap.String("port", cfg.App.Port),
		zap.String("store", cfg.Store.Backend))
	if err := app.Listen(":" + cfg.App.Port); err != nil {
		zlog.Error("server stopped", err)
		log.Fatal(err)
	}
}

// buildRepo selects the document store backend. Memory is the default and
// needs no external services.
func buildRepo(ctx context.Context, cfg config.Config, zlog logger.Logger) (repo.DocumentRepo, error) {
	switch cfg.Store.Backend {
	case "redis":
		client, err := repo.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password)
		if err != nil {
			return nil, err
		}
		zlog.Info("using redis document store", zap.String("addr", cfg.Redis.Addr))
		return repo.NewRedisRepo(client), nil
	case "postgres":
		pool, err := infra.NewPool(ctx, cfg.DB.DSN)
		if err != nil {
			return nil, err
		}
		if err := migration.RunMigrations(ctx, pool, zlog); err != nil {
			return nil, err
		}
		zlog.Info("using postgres document store")
		return repo.NewPostgresRepo(pool), nil
	default:
		zlog.Info("using in-memory document store")
		return repo.NewMemoryRepo(), nil
	}
}
