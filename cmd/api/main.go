package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/njprem/Lombok_Tourism_BackEnd/internal/config"
	"github.com/njprem/Lombok_Tourism_BackEnd/internal/logging"
	"github.com/njprem/Lombok_Tourism_BackEnd/internal/media"
	"github.com/njprem/Lombok_Tourism_BackEnd/internal/repository/minio"
	"github.com/njprem/Lombok_Tourism_BackEnd/internal/repository/ports"
	"github.com/njprem/Lombok_Tourism_BackEnd/internal/repository/postgres"
	"github.com/njprem/Lombok_Tourism_BackEnd/internal/repository/redis"
	"github.com/njprem/Lombok_Tourism_BackEnd/internal/service"
	transport "github.com/njprem/Lombok_Tourism_BackEnd/internal/transport/http"
	"github.com/njprem/Lombok_Tourism_BackEnd/internal/util"
)

func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger.Logger); err != nil {
		logger.WithError(err).Error("api exited with error")
		logger.Close()
		os.Exit(1)
	}
	logger.Info("api exited gracefully")
}

func run(ctx context.Context, cfg config.Config, log *logrus.Logger) error {
	db, err := postgres.New(cfg.Database.URL, postgres.Options{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		applied, err := postgres.Migrate(ctx, db)
		if err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		log.WithField("applied", applied).Info("database migrations checked")
	}

	minioClient, err := minio.NewClient(cfg.Storage.Endpoint, cfg.Storage.AccessKey, cfg.Storage.SecretKey, cfg.Storage.UseSSL)
	if err != nil {
		return fmt.Errorf("init object storage: %w", err)
	}
	storage := minio.NewStorage(minioClient, cfg.Storage.PublicURL, cfg.Storage.UseSSL)
	if err := storage.EnsureBucket(ctx, cfg.Storage.Bucket); err != nil {
		return err
	}

	cache := openCache(ctx, cfg.Cache, log)

	e := buildServer(db, storage, cache, cfg, log)

	errCh := make(chan error, 1)
	go func() {
		log.WithField("port", cfg.Server.Port).Info("http server listening")
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// openCache returns nil when Redis is not configured or unreachable; the catalog then reads straight from Postgres.
func openCache(ctx context.Context, cfg config.CacheConfig, log *logrus.Logger) ports.CatalogCache {
	if cfg.RedisURL == "" {
		return nil
	}
	client, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.WithError(err).Warn("redis unavailable, catalog cache disabled")
		return nil
	}
	return redis.NewCache(client, "lombok:")
}

func buildServer(db *sqlx.DB, storage ports.ObjectStorage, cache ports.CatalogCache, cfg config.Config, log *logrus.Logger) *echo.Echo {
	destinations := postgres.NewDestinationRepo(db)
	districts := postgres.NewDistrictRepo(db)
	categories := postgres.NewCategoryRepo(db)
	gallery := postgres.NewGalleryRepo(db)
	accountRepo := postgres.NewAccountRepo(db)

	processor := media.NewFFMPEGProcessor(cfg.Media.FFMPEGPath, cfg.Media.MaxDimension)
	imageCfg := service.ImageConfig{
		Bucket:       cfg.Storage.Bucket,
		MaxBytes:     cfg.Media.ImageMaxBytes,
		MaxDimension: cfg.Media.MaxDimension,
	}

	catalog := service.NewCatalogService(destinations, categories, districts, gallery, cache, service.CatalogConfig{
		PageSize:      cfg.Catalog.PageSize,
		FeaturedCount: cfg.Catalog.FeaturedCount,
		PopularCount:  cfg.Catalog.PopularCount,
		CacheTTL:      cfg.Cache.TTL,
	}, log)
	accounts := service.NewAccountService(accountRepo, util.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL))

	e := transport.NewRouter(log, cfg.Server.AllowOrigins, cfg.RateLimit)
	transport.RegisterCatalog(e, catalog)
	transport.RegisterAuth(e, accounts)
	transport.RegisterAdmin(e, transport.AdminServices{
		Accounts:     accounts,
		Districts:    service.NewDistrictService(districts, storage, processor, imageCfg, cache, log),
		Categories:   service.NewCategoryService(categories, cache, log),
		Destinations: service.NewDestinationService(destinations, districts, categories, gallery, storage, processor, imageCfg, log),
		Dashboard:    service.NewDashboardService(destinations, cfg.Catalog.TopViewed, cfg.Catalog.RecentCount),
	})
	if cfg.Server.SwaggerEnabled {
		if err := transport.RegisterSwagger(e, "docs/swagger.yaml"); err != nil {
			log.WithError(err).Warn("swagger ui disabled")
		}
	}
	return e
}
