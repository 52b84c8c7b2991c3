package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"

	"stayBooker/internal/config"
	"stayBooker/internal/http-server/handlers/booking/createBooking"
	"stayBooker/internal/http-server/handlers/booking/getBookings"
	"stayBooker/internal/http-server/handlers/place/createPlace"
	"stayBooker/internal/http-server/handlers/place/getAllPlaces"
	"stayBooker/internal/http-server/handlers/place/getPlace"
	"stayBooker/internal/http-server/handlers/place/getUserPlaces"
	"stayBooker/internal/http-server/handlers/place/updatePlace"
	"stayBooker/internal/http-server/handlers/upload/uploadByLink"
	"stayBooker/internal/http-server/handlers/upload/uploadPhotos"
	"stayBooker/internal/http-server/handlers/user/login"
	"stayBooker/internal/http-server/handlers/user/logout"
	"stayBooker/internal/http-server/handlers/user/profile"
	"stayBooker/internal/http-server/handlers/user/register"
	"stayBooker/internal/http-server/middleware/auth"
	"stayBooker/internal/http-server/middleware/mwlogger"
	"stayBooker/internal/lib/hasher"
	"stayBooker/internal/lib/logger/handlers/slogpretty"
	"stayBooker/internal/lib/logger/sl"
	"stayBooker/internal/lib/session"
	"stayBooker/internal/media"
	"stayBooker/internal/services/credentials"
	"stayBooker/internal/storage/mongodb"
	"stayBooker/internal/storage/postgres"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

const (
	initTimeout     = 15 * time.Second
	shutdownTimeout = 10 * time.Second
)

// Store is what the routes need from a storage driver.
type Store interface {
	credentials.UserStorage
	createPlace.PlaceCreator
	getUserPlaces.UserPlacesGetter
	getPlace.PlaceGetter
	updatePlace.PlaceUpdater
	getAllPlaces.PlacesGetter
	createBooking.BookingCreator
	getBookings.BookingsGetter
	io.Closer
}

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting stay booker",
		slog.String("env", cfg.Env),
		slog.String("storage", cfg.Storage.Driver),
	)
	log.Debug("Debug messages are enabled")

	store, err := setupStorage(cfg)
	if err != nil {
		log.Error("failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	bcrypt, err := hasher.NewBcrypt(cfg.Auth.BcryptCost)
	if err != nil {
		log.Error("failed to init password hasher", sl.Err(err))
		os.Exit(1)
	}

	codec, err := session.NewCodec(cfg.Auth.JWTSecret)
	if err != nil {
		log.Error("failed to init session codec", sl.Err(err))
		os.Exit(1)
	}

	users := credentials.New(log, store, bcrypt, codec)

	ingestor, err := media.New(cfg.Uploads.Dir, cfg.Uploads.MaxFiles, &http.Client{
		Timeout: cfg.Uploads.DownloadTimeout,
	})
	if err != nil {
		log.Error("failed to init media ingestor", sl.Err(err))
		os.Exit(1)
	}

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwlogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.HTTPServer.CORSOrigin},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	fs := http.FileServer(http.Dir(ingestor.Dir()))
	router.Handle("/uploads/*", http.StripPrefix("/uploads/", fs))

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		render.PlainText(w, r, "API is live!")
	})
	router.Get("/test", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, "test ok")
	})

	router.Post("/register", register.New(log, users))
	router.Post("/login", login.New(log, users))
	router.Post("/logout", logout.New(log))

	router.Post("/upload-by-link", uploadByLink.New(log, ingestor))
	router.Post("/upload", uploadPhotos.New(log, ingestor, cfg.Uploads.MaxMemory))

	router.Get("/places", getAllPlaces.New(log, store))
	router.Get("/places/{id}", getPlace.New(log, store))

	router.Group(func(r chi.Router) {
		r.Use(auth.New(log, codec))

		r.Get("/profile", profile.New(log, users))

		r.Group(func(r chi.Router) {
			r.Use(auth.Required)

			r.Post("/places", createPlace.New(log, store))
			r.Put("/places", updatePlace.New(log, store))
			r.Get("/user-places", getUserPlaces.New(log, store))

			r.Post("/bookings", createBooking.New(log, store))
			r.Get("/bookings", getBookings.New(log, store))
		})
	})

	log.Info("starting server", slog.String("address", cfg.HTTPServer.Address()))

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address(),
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT, os.Interrupt)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", sl.Err(err))
			stop <- syscall.SIGTERM
		}
	}()

	sign := <-stop

	log.Info("application stopping", slog.String("signal", sign.String()))

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = srv.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server", sl.Err(err))
	}

	log.Info("application stopped")

	if err = store.Close(); err != nil {
		log.Error("failed to close storage", sl.Err(err))
	}

	log.Info("storage closed")
}

func setupStorage(cfg *config.Config) (Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), initTimeout)
	defer cancel()

	if cfg.Storage.Driver == config.DriverPostgres {
		store, err := postgres.InitDB(ctx, &cfg.Database)
		if err != nil {
			return nil, err
		}
		return store, nil
	}

	store, err := mongodb.InitDB(ctx, &cfg.Storage)
	if err != nil {
		return nil, err
	}

	return store, nil
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	h := opts.NewPrettyHandler(os.Stdout)

	return slog.New(h)
}
