package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pinboard/pinboard/config"
	"pinboard/pinboard/controllers"
	"pinboard/pinboard/routes"
	"pinboard/pinboard/services/auth"
	"pinboard/pinboard/sources/psql"
	"pinboard/pinboard/sources/psql/dao"
	"pinboard/pinboard/sources/storage"
	"pinboard/pinboard/utils/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				cfg.HTTPAddr = addr
			}
			return serve(cfg)
		},
	}
	cmd.Flags().String("addr", "", "listen address (overrides HTTP_ADDR)")
	return cmd
}

func serve(cfg config.Config) error {
	if err := logging.InitLogger(logging.Options{Dir: cfg.LogDir, Console: cfg.LogConsole}); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logging.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := psql.NewDatabase(ctx, cfg)
	if err != nil {
		logging.ErrorLogger.Error("database connection error", zap.Error(err))
		return err
	}
	defer db.Close()

	images, err := storage.NewImageStore(ctx, cfg)
	if err != nil {
		logging.ErrorLogger.Error("image store error", zap.Error(err))
		return err
	}

	userDAO := dao.NewUserDAO(db.DB)
	postDAO := dao.NewPostDAO(db.DB)
	boardDAO := dao.NewBoardDAO(db.DB)
	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)

	handler := routes.NewRouter(routes.Deps{
		Auth:   controllers.NewAuthController(userDAO, images, issuer),
		Users:  controllers.NewUserController(userDAO, postDAO, boardDAO, images),
		Posts:  controllers.NewPostController(postDAO, userDAO, images, cfg.PageSize),
		Boards: controllers.NewBoardController(boardDAO, postDAO, userDAO),
		Health: controllers.NewHealthController(db),
		Issuer: issuer,
		Cookie: auth.CookieOptions{
			Name:     cfg.CookieName,
			Secure:   cfg.CookieSecure,
			SameSite: cfg.CookieSameSite,
		},
		CORSOrigins:    cfg.CORSOrigins,
		AuthRateLimit:  cfg.AuthRateLimit,
		MaxUploadBytes: cfg.MaxUploadBytes,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logging.AppLogger.Info("server listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		logging.ErrorLogger.Error("server listen error", zap.Error(err))
		return err
	case sig := <-sigCh:
		logging.AppLogger.Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.ErrorLogger.Error("server shutdown error", zap.Error(err))
		return err
	}
	logging.AppLogger.Info("server shutdown complete")
	return nil
}
