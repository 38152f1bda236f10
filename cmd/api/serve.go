package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jobflix-backend/config"
	_ "jobflix-backend/docs" // Important for Swagger
	v1 "jobflix-backend/internal/delivery/http/v1"
	"jobflix-backend/internal/usecase"
	"jobflix-backend/pkg/audit"
	"jobflix-backend/pkg/cache"
	"jobflix-backend/pkg/filestore"
	"jobflix-backend/pkg/logger"
	"jobflix-backend/pkg/password"
	"jobflix-backend/pkg/redis"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "Port to listen on (overrides PORT)")
	rootCmd.Flags().AddFlagSet(serveCmd.Flags())
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, repos, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer repos.Close()
	if servePort != "" {
		cfg.Port = servePort
	}
	gin.SetMode(cfg.GinMode)
	logger.Log.Info("Starting JobFlix backend", "port", cfg.Port, "storage", repos.Driver)

	if err := migrateAndSeed(ctx, repos, cfg.SeedData); err != nil {
		return err
	}

	connectRedis(cfg)
	defer redis.Close()

	auditLog := audit.New("jobflix-api", cfg.GinMode, cfg.AuditLog)
	defer auditLog.Sync()

	hasher, err := password.NewHasher(cfg.BcryptCost)
	if err != nil {
		return err
	}

	files, err := newFileStore(ctx, cfg)
	if err != nil {
		return err
	}

	catalogUC := usecase.NewCatalogUsecase(repos.Jobs, repos.Companies,
		cache.New(redis.Client(), seconds(cfg.CacheTTLSeconds), "jobflix:"), cfg.FeaturedCompaniesLimit)

	router := v1.NewRouter(v1.RouterDeps{
		JobUC:         usecase.NewJobUsecase(repos.Jobs, repos.Companies, catalogUC, auditLog),
		CompanyUC:     usecase.NewCompanyUsecase(repos.Companies, repos.Jobs, catalogUC, auditLog),
		CatalogUC:     catalogUC,
		ApplicationUC: usecase.NewApplicationUsecase(repos.Applications, repos.Jobs, repos.Users, auditLog),
		BookmarkUC:    usecase.NewBookmarkUsecase(repos.Bookmarks, repos.Jobs, auditLog),
		UserUC:        usecase.NewUserUsecase(repos.Users, hasher, files, auditLog),
		HealthUC:      usecase.NewHealthUsecase(repos, repos.Driver),
		Audit:         auditLog,
		Config:        cfg,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		logger.Log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error("Server forced to shutdown", "error", err)
			return err
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Log.Info("Server exiting")
	return nil
}

// newFileStore uses S3 when a bucket is configured and the local upload dir otherwise.
func newFileStore(ctx context.Context, cfg *config.Config) (filestore.Store, error) {
	if cfg.S3Bucket != "" {
		store, err := filestore.NewS3Store(ctx, filestore.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			Endpoint:        cfg.S3Endpoint,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to init s3 store: %w", err)
		}
		logger.Log.Info("Uploads stored in S3", "bucket", cfg.S3Bucket)
		return store, nil
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return filestore.NewLocalStore(cfg.UploadDir, cfg.PublicBaseURL+"/uploads"), nil
}
