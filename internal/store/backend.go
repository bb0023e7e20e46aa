// Package store persists the content and user documents. A Backend moves
// whole documents as bytes; DocumentStore adds decoding and a single-writer
// read-modify-write cycle on top.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// ErrDocumentNotFound is returned when a named document was never saved.
var ErrDocumentNotFound = errors.New("document not found")

type Backend interface {
	Load(ctx context.Context, name string) ([]byte, error)
	Save(ctx context.Context, name string, data []byte) error
}

// FileBackend keeps each document in <Dir>/<name>.json and replaces it with
// a temp-file rename so readers never observe a partial write.
type FileBackend struct {
	Dir string
}

func NewFileBackend(dir string) *FileBackend {
	return &FileBackend{Dir: dir}
}

func (b *FileBackend) Path(name string) string {
	return filepath.Join(b.Dir, name+".json")
}

func (b *FileBackend) Load(_ context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(b.Path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrDocumentNotFound
	}
	return data, err
}

func (b *FileBackend) Save(_ context.Context, name string, data []byte) error {
	if err := os.MkdirAll(b.Dir, 0o755); err != nil {
		return err
	}
	target := b.Path(name)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

type Dialect string

const (
	DialectMySQL  Dialect = "mysql"
	DialectSQLite Dialect = "sqlite"
)

// SQLBackend stores documents as rows of a documentos table.
type SQLBackend struct {
	db      *sql.DB
	dialect Dialect
}

func NewSQLBackend(ctx context.Context, db *sql.DB, dialect Dialect) (*SQLBackend, error) {
	b := &SQLBackend{db: db, dialect: dialect}
	if err := b.ensureSchema(ctx); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *SQLBackend) ensureSchema(ctx context.Context) error {
	_, err := b.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS documentos (
			nombre VARCHAR(191) NOT NULL PRIMARY KEY,
			contenido LONGTEXT NOT NULL,
			actualizado VARCHAR(40) NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("create documentos table: %w", err)
	}
	return nil
}

func (b *SQLBackend) Load(ctx context.Context, name string) ([]byte, error) {
	var data string
	err := b.db.QueryRowContext(ctx, "SELECT contenido FROM documentos WHERE nombre = ?", name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(data), nil
}

func (b *SQLBackend) Save(ctx context.Context, name string, data []byte) error {
	var stmt string
	switch b.dialect {
	case DialectMySQL:
		stmt = `INSERT INTO documentos (nombre, contenido, actualizado) VALUES (?, ?, ?)
			ON DUPLICATE KEY UPDATE contenido = VALUES(contenido), actualizado = VALUES(actualizado)`
	case DialectSQLite:
		stmt = `INSERT INTO documentos (nombre, contenido, actualizado) VALUES (?, ?, ?)
			ON CONFLICT(nombre) DO UPDATE SET contenido = excluded.contenido, actualizado = excluded.actualizado`
	default:
		return fmt.Errorf("unsupported dialect %q", b.dialect)
	}

	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, stmt, name, string(data), time.Now().UTC().Format(time.RFC3339Nano)); err != nil {
		return err
	}
	return tx.Commit()
}
