// Command fuelgo-demo boots a small demo application on the framework:
// a few page controllers, a JSON endpoint, a redirect, a partial rendered
// via a sub-request and a session-backed visit counter.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/ihildebrandt/fuelgo/pkg/app"
	"github.com/ihildebrandt/fuelgo/pkg/banner"
	"github.com/ihildebrandt/fuelgo/pkg/config"
	"github.com/ihildebrandt/fuelgo/pkg/httpx"
	"github.com/ihildebrandt/fuelgo/pkg/logger"
	"github.com/ihildebrandt/fuelgo/pkg/metrics"
	"github.com/ihildebrandt/fuelgo/pkg/middleware"
	"github.com/ihildebrandt/fuelgo/pkg/response"
	"github.com/ihildebrandt/fuelgo/pkg/router"
	"github.com/ihildebrandt/fuelgo/pkg/session"
	"github.com/ihildebrandt/fuelgo/pkg/tasks"
	"github.com/ihildebrandt/fuelgo/pkg/view"
)

// build metadata - set via ldflags during build/release
var (
	version = "dev"
)

func main() {
	_ = godotenv.Load(".env")

	addrFlag := flag.String("addr", "", "listen address (host:port), overrides config")
	cfgFlag := flag.String("config", "fuelgo.yaml", "path to config file")
	flag.Parse()

	cfg, source, err := config.LoadEffective(*cfgFlag)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger.InitWithLevel(cfg.Logging.Level)

	addr := cfg.Addr()
	if *addrFlag != "" {
		addr = *addrFlag
	}

	// session store: pebble when a path is configured, in-memory otherwise
	var store session.Store
	if cfg.Sessions.Path != "" {
		ps, err := session.OpenPebble(cfg.Sessions.Path)
		if err != nil {
			log.Fatalf("failed to open session store: %v", err)
		}
		defer func() { _ = ps.Close() }()
		store = ps
	} else {
		store = session.NewMemoryStore()
	}
	sessions := session.NewManager(store,
		session.WithCookieName(cfg.Sessions.Cookie),
		session.WithTTL(cfg.SessionTTL()),
	)

	application := buildApplication(sessions)

	// background session GC
	runner := tasks.NewRunner()
	gcCron := cfg.Tasks.SessionGC
	if gcCron == "" {
		gcCron = "0 3 * * *"
	}
	if err := runner.Add("session_gc", gcCron, func(context.Context) error {
		_, err := sessions.GC()
		return err
	}); err != nil {
		log.Fatalf("failed to register session gc task: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	cancelTasks := runner.Start(ctx)
	defer cancelTasks()

	banner.Print(cfg, source, version)

	outer := mux.NewRouter()
	outer.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	outer.Handle("/metrics", metrics.Handler())
	outer.PathPrefix("/").Handler(middleware.Chain(
		httpx.NetHTTPHandler(application),
		middleware.RequestLog,
		middleware.CORS(cfg.Security.CORS.AllowedOrigins),
		middleware.RateLimit(middleware.Limits{
			RPS:   cfg.Security.RateLimit.RPS,
			Burst: cfg.Security.RateLimit.Burst,
		}),
	))

	srv := &http.Server{Addr: addr, Handler: outer}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server_listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("server_shutting_down")
		shCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shCtx); err != nil {
			logger.Error("server_shutdown_error", "error", err)
		}
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}
}

// buildApplication wires the demo environment, routes and controllers.
func buildApplication(sessions *session.Manager) *app.Application {
	rtr := router.NewMux()
	env := app.NewEnvironment()
	application := app.New("demo", rtr, app.WithEnvironment(env))

	home, err := view.Parse("home", `<h1>fuelgo</h1><p>{{.greeting}}</p>`)
	if err != nil {
		log.Fatalf("failed to parse home view: %v", err)
	}
	rtr.GET("/", func(ctx context.Context, r *app.Request) (any, error) {
		return response.New(home.Set("greeting", "hello from the demo app")), nil
	}).Named("home")

	rtr.GET("/hello/{name}", func(ctx context.Context, r *app.Request) (any, error) {
		v, err := view.Parse("hello", `<p>hello {{.name}}</p>`)
		if err != nil {
			return nil, err
		}
		return response.New(v.Set("name", r.ParamOr("name", "world"))), nil
	}).Named("hello")

	rtr.GET("/api/status", func(ctx context.Context, r *app.Request) (any, error) {
		return response.JSON(map[string]any{"status": "ok", "version": version})
	}).Named("status")

	rtr.GET("/old", func(ctx context.Context, r *app.Request) (any, error) {
		return nil, app.NewRedirect("/")
	})

	rtr.GET("/partial/summary", func(ctx context.Context, r *app.Request) (any, error) {
		v, err := view.Parse("summary", `<aside>requests are flowing</aside>`)
		if err != nil {
			return nil, err
		}
		return response.New(v), nil
	})

	rtr.GET("/dashboard", func(ctx context.Context, r *app.Request) (any, error) {
		sub, err := application.Sub(ctx, "/partial/summary")
		if err != nil {
			return nil, err
		}
		partial, err := sub.Response().Content()
		if err != nil {
			return nil, err
		}
		return response.New("<h1>dashboard</h1>" + partial), nil
	}).Named("dashboard")

	rtr.GET("/visits", func(ctx context.Context, r *app.Request) (any, error) {
		s, err := sessions.Load(r.Input())
		if err != nil {
			return nil, err
		}
		visits := 1
		if v, ok := s.Values["visits"]; ok {
			fmt.Sscanf(v, "%d", &visits)
			visits++
		}
		s.Values["visits"] = fmt.Sprintf("%d", visits)
		resp := response.New(fmt.Sprintf("<p>you have visited %d time(s)</p>", visits))
		if err := sessions.Save(s, resp); err != nil {
			return nil, err
		}
		return resp, nil
	}).Named("visits")

	return application
}
