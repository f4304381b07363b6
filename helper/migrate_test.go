package helper

import (
	"testing"

	"edurooms/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatabaseURL(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.Postgres.Prefix = "dev_"
	cfg.DB.Postgres.MigrationTable = "schema_migrations"
	cfg.DB.Postgres.Write.Host = "db"
	cfg.DB.Postgres.Write.Port = "5432"
	cfg.DB.Postgres.Write.Username = "edurooms"
	cfg.DB.Postgres.Write.Password = "p@ss"
	cfg.DB.Postgres.Write.Name = "edurooms"
	cfg.DB.Postgres.Write.SSLMode = "disable"

	assert.Equal(t,
		"postgres://edurooms:p%40ss@db:5432/dev_edurooms?sslmode=disable&x-migrations-table=schema_migrations",
		databaseURL(cfg))

	cfg.DB.Postgres.MigrationTable = ""

	assert.NotContains(t, databaseURL(cfg), "x-migrations-table")
}

func TestMigrate_UnknownAction(t *testing.T) {
	err := Migrate(&config.Config{}, "sideways")

	require.ErrorIs(t, err, ErrUnknownAction)
}
