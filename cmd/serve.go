package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/cpjuanluismartell-lgtm/pdf-extractor-validation/config"
	"github.com/cpjuanluismartell-lgtm/pdf-extractor-validation/handler"
	"github.com/cpjuanluismartell-lgtm/pdf-extractor-validation/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the extraction and correction HTTP API",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sessions := service.NewSessionStore(cfg.SessionTTL)
	go sessions.RunSweeper(ctx, cfg.SweepEvery)

	invoiceService := service.NewInvoiceService(
		service.NewPDFProcessor(cfg.MaxPages),
		sessions,
		service.NewAmountValidator(),
	)

	router := handler.SetupRouter(
		handler.RouterConfig{MaxFileSize: cfg.MaxFileSize, CORSOrigins: cfg.CORSOrigins},
		handler.NewDocumentHandler(invoiceService, cfg.MaxFileSize),
		handler.NewSessionHandler(invoiceService, cfg.RemoveCommas),
	)

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("Starting PDF Invoice Extractor on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	log.Println("Server stopped")
	return nil
}
