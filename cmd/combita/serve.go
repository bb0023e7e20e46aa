package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"turismocombita/internal/api"
	"turismocombita/internal/auth"
	"turismocombita/internal/config"
	"turismocombita/internal/media"
	"turismocombita/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[config] %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, fb, closeBackend, err := openBackend(ctx, cfg)
	if err != nil {
		log.Fatalf("[store] open: %v", err)
	}
	defer closeBackend()

	st := store.NewDocumentStore(backend, store.DocumentName)
	if _, err := st.Read(ctx); errors.Is(err, store.ErrDocumentNotFound) {
		log.Printf("[store] no document yet; run `combita datos init --municipio ...`")
	}

	users := auth.NewUsers(backend, bcrypt.DefaultCost)
	if _, err := users.Bootstrap(ctx, cfg.AdminEmail, cfg.AdminPassword, cfg.AdminName); err != nil {
		log.Fatalf("[auth] bootstrap: %v", err)
	}

	var files media.Storage = media.NewDiskStorage(cfg.UploadsDir)
	if cfg.Bunny.Enabled() {
		files = media.Mirrored{
			Primary: files,
			Mirror:  media.NewBunny(cfg.Bunny.Endpoint, cfg.Bunny.StorageZone, cfg.Bunny.StorageKey),
		}
		log.Printf("[media] mirroring uploads to bunny zone %s", cfg.Bunny.StorageZone)
	}

	srv := api.NewServer(cfg, st, users, auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL), media.NewUploader(files))
	defer srv.Close()

	if fb != nil {
		go func() {
			if err := st.Watch(ctx, fb, srv.NotifyDocumentChanged); err != nil {
				log.Printf("[store] watch disabled: %v", err)
			}
		}()
	}

	httpSrv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[server] listening on %s (%s)", cfg.Addr, cfg.Env)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Printf("[server] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}
