package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/zach-dev-waves/internal/live"
	"github.com/Zachkp/zach-dev-waves/internal/store"
	"github.com/Zachkp/zach-dev-waves/internal/trail"
)

type app struct {
	cfg   Config
	store *store.Store
	hub   *live.Hub

	adminToken  string
	hashingSalt string

	// background tracks visitor writes started by requests.
	background sync.WaitGroup
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	opts := trail.DefaultOptions()
	if cfg.TrailTuningFile != "" {
		opts, err = trail.LoadOptions(cfg.TrailTuningFile)
		if err != nil {
			log.Fatal("Failed to load trail tuning:", err)
		}
		log.Printf("Trail tuning loaded from %s", cfg.TrailTuningFile)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, cfg.DatabasePath)
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}
	defer st.Close()

	hub := live.NewHub(live.Config{
		Options:   opts,
		FrameRate: cfg.TrailFrameRate,
		Recorder:  st,
	})

	a := newApp(cfg, st, hub)
	r := a.router()
	go a.cleanupOldVisitorData()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		log.Printf("Listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed:", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := hub.Shutdown(shutdownCtx); err != nil {
		log.Printf("Trail sessions did not close cleanly: %v", err)
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}
	a.background.Wait()
}

func newApp(cfg Config, st *store.Store, hub *live.Hub) *app {
	a := &app{cfg: cfg, store: st, hub: hub}
	a.initAdminToken()
	return a
}

func (a *app) router() *gin.Engine {
	r := gin.Default()
	r.LoadHTMLGlob("templates/*")
	r.Static("/static", "./static")
	r.Use(a.visitorTrackingMiddleware())

	r.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", gin.H{
			"title": "zach.dev",
		})
	})

	// Sampling parameters for the browser client
	r.GET("/trail/config", func(c *gin.Context) {
		c.JSON(http.StatusOK, a.hub.Describe())
	})

	// Live pointer trail over a websocket
	r.GET("/trail/ws", func(c *gin.Context) {
		a.hub.Serve(c.Writer, c.Request, live.Meta{
			HashedIP:  a.hashIP(c.ClientIP()),
			UserAgent: c.GetHeader("User-Agent"),
		})
	})

	a.setupAdminRoutes(r)
	return r
}
