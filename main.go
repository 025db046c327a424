package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"hotelbooking/internal/auth"
	intconfig "hotelbooking/internal/config"
	intdb "hotelbooking/internal/db"
	router "hotelbooking/internal/http"
	"hotelbooking/internal/http/handlers"
	"hotelbooking/internal/http/middleware"
	"hotelbooking/internal/notification"
	"hotelbooking/internal/services"
)

func main() {
	env := intconfig.MustLoadEnv()
	log := intconfig.NewLogger(os.Stdout, env.Log)
	slog.SetDefault(log)
	gin.SetMode(env.App.GinMode)

	if err := run(env, log); err != nil {
		log.Error("server stopped with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(env intconfig.Env, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := intconfig.ConnectDB(ctx, env.DB)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Warn("close database", slog.String("error", err.Error()))
		}
	}()
	log.Info("database connected", slog.String("driver", env.DB.Driver), slog.String("name", env.DB.Name))

	if env.DB.Migrate {
		if err := intdb.Migrate(ctx, db, log); err != nil {
			return err
		}
	}

	tokens := auth.NewTokenManager(env.Auth.JWTSecret, env.Auth.TokenTTL, env.Auth.Issuer)
	users := services.UserService{DB: db, Tokens: tokens, Log: log}
	if err := users.EnsureAdmin(ctx, env.Admin.Email, env.Admin.Password, env.Admin.Name); err != nil {
		return err
	}

	notifier, err := notification.NewTelegramNotifier(env.Telegram.BotToken, env.Telegram.ChatID, log)
	if err != nil {
		return err
	}

	bookings := services.BookingService{DB: db, Notifier: notifier, Log: log}
	handler := &handlers.Handler{
		Bookings: bookings,
		Hotels:   services.HotelService{DB: db, Log: log},
		Rooms:    services.RoomService{DB: db, Log: log},
		Users:    users,
		Stats:    services.StatsService{DB: db},
		Docs:     services.DocsService{DB: db, Log: log},
		Export:   services.ExportService{DB: db},
		DB:       users,
	}

	deps := router.Deps{
		Handler:     handler,
		Tokens:      tokens,
		Log:         log,
		CORSOrigins: env.CORS.AllowedOrigins,
	}
	if env.Auth.LiveRoleCheck {
		deps.RoleLookup = middleware.RoleLookup(users.RoleOf)
	}

	srv := &http.Server{
		Addr:              env.App.Addr,
		Handler:           router.NewRouter(deps),
		ReadHeaderTimeout: env.App.ReadTimeout / 2,
		ReadTimeout:       env.App.ReadTimeout,
		WriteTimeout:      env.App.WriteTimeout,
		IdleTimeout:       env.App.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", slog.String("addr", env.App.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), env.App.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("server stopped")
	return nil
}
