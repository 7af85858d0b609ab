package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/jacksmith/shelf/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the shelf as a JSON API",
	Long: `Serve the shelf over HTTP until interrupted.

Endpoints:
  GET    /health
  GET    /api/books?q=<filter>
  GET    /api/books/<id>
  POST   /api/books              {"title","author","year","isComplete"}
  PUT    /api/books/<id>         {"title","author","year"}
  POST   /api/books/<id>/toggle
  DELETE /api/books/<id>

The listen address defaults to http_addr from .shelfconfig.yaml. When
backup_schedule is set (e.g. "@daily" or "0 3 * * *") the book list is
backed up on that schedule.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var (
	serveAddr  string
	serveDebug bool
)

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides http_addr)")
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "log every request and run gin in debug mode")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if serveDebug {
		level = slog.LevelDebug
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	sh, err := openShelf()
	if err != nil {
		return err
	}
	defer sh.Close()

	addr := sh.config.HTTPAddr
	if serveAddr != "" {
		addr = serveAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shelf := server.NewShelf(sh.books)

	backups := server.NewBackupScheduler(shelf, sh.config.BackupSchedule, logger)
	if err := backups.Start(ctx); err != nil {
		return err
	}
	defer backups.Stop()

	router := server.NewRouter(server.RouterConfig{
		Shelf:     shelf,
		Backend:   sh.config.Backend,
		Version:   Version,
		Logger:    logger,
		AccessLog: true,
	})

	logger.Info("serving shelf", "backend", sh.config.Backend, "books", shelf.Len())
	return server.Serve(ctx, addr, router, logger)
}
