package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/findlocalfirewood/firewood-api/internal/api"
	"github.com/findlocalfirewood/firewood-api/internal/config"
	"github.com/findlocalfirewood/firewood-api/internal/db"
	"github.com/findlocalfirewood/firewood-api/internal/events"
	"github.com/findlocalfirewood/firewood-api/internal/logger"
	"github.com/findlocalfirewood/firewood-api/internal/notify"
	"github.com/findlocalfirewood/firewood-api/internal/repository"
	"github.com/findlocalfirewood/firewood-api/internal/repository/dao"
	"github.com/findlocalfirewood/firewood-api/internal/service"
)

const shutdownTimeout = 10 * time.Second

func Execute() error {
	return rootCmd().Execute()
}

func rootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:          "firewood",
		Short:        "FindLocalFirewood directory API",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), configPath)
		},
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./cmd/app/config.yml", "config file path")

	cmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), configPath)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables",
		RunE: func(_ *cobra.Command, _ []string) error {
			_, postgresDB, err := bootstrap(configPath)
			if err != nil {
				return err
			}
			if err := dao.InitTables(postgresDB); err != nil {
				return fmt.Errorf("dao.InitTables -> %w", err)
			}
			zap.L().Info("migrations applied")

			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "approve <stand-id>",
		Short: "Approve a submitted stand so it is listed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			standID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid stand id %q: %w", args[0], err)
			}

			return approve(cmd.Context(), configPath, standID)
		},
	})

	return cmd
}

func bootstrap(configPath string) (*config.AppConfig, *gorm.DB, error) {
	conf, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger -> %w", err)
	}

	dbURL := os.Getenv("DATABASE_URL")
	var postgresDB *gorm.DB
	if dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database -> %w", err)
	}

	return conf, postgresDB, nil
}

func serve(ctx context.Context, configPath string) error {
	conf, postgresDB, err := bootstrap(configPath)
	if err != nil {
		return err
	}
	defer func() { _ = zap.L().Sync() }()

	if err = dao.InitTables(postgresDB); err != nil {
		return fmt.Errorf("failed to migrate database -> %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s, err := api.NewServer(ctx, conf, postgresDB)
	if err != nil {
		return fmt.Errorf("failed to initialize server -> %w", err)
	}
	defer s.Close()

	go s.Feed.Run(ctx)

	srv := &http.Server{
		Addr:              ":" + conf.API.Port,
		Handler:           s.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info(fmt.Sprintf("starting server at %v", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err = <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start the server -> %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	zap.L().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("srv.Shutdown -> %w", err)
	}

	return nil
}

func approve(ctx context.Context, configPath string, standID uuid.UUID) error {
	conf, postgresDB, err := bootstrap(configPath)
	if err != nil {
		return err
	}

	emitter, err := events.Connect(conf.NATS)
	if err != nil {
		return fmt.Errorf("events.Connect -> %w", err)
	}
	defer func() { _ = emitter.Close() }()

	profileRepo := repository.NewProfileRepository(dao.NewProfileDAO(postgresDB))
	svc := service.NewStandService(
		repository.NewStandRepository(dao.NewStandDAO(postgresDB)),
		repository.NewCheckInRepository(dao.NewVerificationDAO(postgresDB)),
		profileRepo,
		service.NewWizard(conf.Photos.MaxCount),
		conf.CheckIn,
		emitter,
		notify.Nop{},
	)

	stand, err := svc.Approve(ctx, standID)
	if err != nil {
		return fmt.Errorf("svc.Approve -> %w", err)
	}

	zap.L().Info("stand approved", zap.String("stand_id", stand.ID.String()), zap.String("name", stand.Name))

	return nil
}
