package main

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"

	"turismocombita/internal/config"
	"turismocombita/internal/db"
	"turismocombita/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "combita",
	Short: "Back end of the Cómbita tourism guide",
	Long: `combita serves the public site, the admin panel and the JSON API of the
Cómbita tourism guide. Without a subcommand it runs the HTTP server.

Configuration is read from the environment (and .env when present).`,
	SilenceUsage: true,
	RunE:         runServe,
}

func main() {
	rootCmd.AddCommand(serveCmd, usuariosCmd, datosCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openBackend returns the configured backend. The *store.FileBackend is
// non-nil only for the file backend, the one that can be watched.
func openBackend(ctx context.Context, cfg config.Config) (store.Backend, *store.FileBackend, func(), error) {
	switch cfg.StorageBackend {
	case "sqlite":
		conn, err := db.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, nil, err
		}
		b, err := store.NewSQLBackend(ctx, conn, store.DialectSQLite)
		if err != nil {
			_ = conn.Close()
			return nil, nil, nil, err
		}
		log.Printf("[store] sqlite %s", cfg.SQLitePath)
		return b, nil, func() { _ = conn.Close() }, nil
	case "mysql":
		conn, err := db.OpenMySQL(cfg.MySQL)
		if err != nil {
			return nil, nil, nil, err
		}
		b, err := store.NewSQLBackend(ctx, conn, store.DialectMySQL)
		if err != nil {
			_ = conn.Close()
			return nil, nil, nil, err
		}
		log.Printf("[store] mysql %s@%s:%s/%s", cfg.MySQL.User, cfg.MySQL.Host, cfg.MySQL.Port, cfg.MySQL.DBName)
		return b, nil, func() { _ = conn.Close() }, nil
	default:
		fb := store.NewFileBackend(cfg.DataDir)
		log.Printf("[store] file %s", fb.Path(store.DocumentName))
		return fb, fb, func() {}, nil
	}
}
