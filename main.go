package main

import (
	"context"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/JManoj01/subscription-tracker/internal/config"
	"github.com/JManoj01/subscription-tracker/internal/db"
	"github.com/JManoj01/subscription-tracker/internal/logger"
	"github.com/JManoj01/subscription-tracker/internal/middleware"
	"github.com/JManoj01/subscription-tracker/internal/migrate"
	"github.com/JManoj01/subscription-tracker/internal/subscription"
	"github.com/JManoj01/subscription-tracker/web"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level)

	ctx := context.Background()
	database, err := db.New(ctx, cfg.DB.DSN())
	if err != nil {
		log.Error("connect to postgres", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := migrate.Up(ctx, database); err != nil {
		log.Error("run migrations", "error", err)
		os.Exit(1)
	}

	repo := subscription.NewRepository(database)

	if cfg.App.SeedDemoData {
		if err := subscription.SeedDemoData(ctx, repo, log); err != nil {
			log.Error("seed demo data", "error", err)
			os.Exit(1)
		}
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(log))

	handler := subscription.NewHandler(repo, log)
	handler.RegisterRoutes(router)

	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/index.html")
	})

	staticFiles, err := fs.Sub(web.Static, "static")
	if err != nil {
		log.Error("load static assets", "error", err)
		os.Exit(1)
	}
	router.NoRoute(gin.WrapH(http.FileServer(http.FS(staticFiles))))

	addr := ":" + cfg.App.Port
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: cannot listen on port %s: %v\n", cfg.App.Port, err)
		fmt.Fprintf(os.Stderr, "Either stop the process using port %s or pick a free one: PORT=9090 ./subscription-tracker\n", cfg.App.Port)
		os.Exit(2)
	}

	log.Info("subscription tracker listening", "addr", addr)
	if err := http.Serve(listener, router); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
