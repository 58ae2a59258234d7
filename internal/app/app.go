package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-bloglist-api/internal/config"
	"go-bloglist-api/internal/database"
	"go-bloglist-api/internal/event"
	"go-bloglist-api/internal/handler"
	"go-bloglist-api/internal/repository"
	"go-bloglist-api/internal/router"
	"go-bloglist-api/internal/service"
)

type App struct {
	server       *http.Server
	cleanupFuncs []func()
}

type stores struct {
	users  service.UserStore
	blogs  service.BlogStore
	events event.Sink
	db     *database.DB
}

func New(cfg *config.Config) (*App, error) {
	st, err := openStores(context.Background(), cfg)
	if err != nil {
		return nil, err
	}

	closeDB := func() {
		if st.db != nil {
			st.db.Close()
		}
	}

	tokens, err := service.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		closeDB()
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}
	hasher := service.NewBcryptHasher(cfg.BcryptCost)

	bus := event.NewBus()
	eventsCtx, eventsCancel := context.WithCancel(context.Background())
	go event.LogEvents(eventsCtx, bus, slog.Default().With("component", "events"))
	if st.events != nil {
		go event.Persist(eventsCtx, bus, st.events, slog.Default().With("component", "event-log"))
	}

	blogService := service.NewBlogService(st.blogs, st.users, tokens, bus, cfg.LikesUpdatePolicy)
	userService := service.NewUserService(st.users, st.blogs, hasher, bus)
	loginService := service.NewLoginService(st.users, hasher, tokens)

	healthHandler := handler.NewHealthHandler(nil)
	if st.db != nil {
		healthHandler = handler.NewHealthHandler(st.db)
	}

	appRouter := router.New(cfg, router.Handlers{
		Health: healthHandler,
		Login:  handler.NewLoginHandler(loginService),
		Blog:   handler.NewBlogHandler(blogService),
		User:   handler.NewUserHandler(userService),
	})

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           appRouter,
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return &App{
		server: server,
		cleanupFuncs: []func(){
			eventsCancel,
			closeDB,
		},
	}, nil
}

func openStores(ctx context.Context, cfg *config.Config) (stores, error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		slog.Warn("using in-memory store, data is lost on restart")
		mem := repository.NewMemoryStore()
		return stores{users: mem.Users(), blogs: mem.Blogs()}, nil
	}

	slog.Info("connecting to PostgreSQL")
	db, err := database.Open(ctx, cfg)
	if err != nil {
		return stores{}, fmt.Errorf("failed to open database: %w", err)
	}

	return stores{
		users:  repository.NewUserRepository(db.Pool),
		blogs:  repository.NewBlogRepository(db.Pool),
		events: repository.NewEventRepository(db.Pool),
		db:     db,
	}, nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	shutdownErr := a.server.Shutdown(ctx)
	a.close()

	if shutdownErr != nil {
		return fmt.Errorf("graceful shutdown failed: %w", shutdownErr)
	}

	slog.Info("server stopped")
	return nil
}

func (a *App) close() {
	for _, cleanup := range a.cleanupFuncs {
		cleanup()
	}
}
