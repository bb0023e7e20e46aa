package db

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"turismocombita/internal/config"
)

func TestOpenSQLiteCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "combita.db")
	db, err := OpenSQLite(path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec("CREATE TABLE t (v TEXT)")
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestMySQLDSN(t *testing.T) {
	dsn := mysqlDSN(config.MySQLConfig{
		Host:     "db",
		Port:     "3306",
		User:     "combita",
		Password: "secreto",
		DBName:   "turismo",
	}, "turismo")

	assert.True(t, strings.HasPrefix(dsn, "combita:secreto@tcp(db:3306)/turismo?"), dsn)
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "charset=utf8mb4")
}
