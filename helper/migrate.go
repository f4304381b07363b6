package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net"
	"net/url"

	"edurooms/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const (
	ActionUp      = "up"
	ActionDown    = "down"
	ActionStepUp  = "step-up"
	ActionDrop    = "drop"
	ActionVersion = "version"
)

const migrationSource = "file://migrations/postgres"

var ErrUnknownAction = errors.New("unknown migration action")

var steps = map[string]func(*migrate.Migrate) error{
	ActionUp:      func(mig *migrate.Migrate) error { return mig.Up() },
	ActionDown:    func(mig *migrate.Migrate) error { return mig.Steps(-1) },
	ActionStepUp:  func(mig *migrate.Migrate) error { return mig.Steps(1) },
	ActionDrop:    func(mig *migrate.Migrate) error { return mig.Down() },
	ActionVersion: logVersion,
}

// Migrate applies action against the write database.
func Migrate(cfg *config.Config, action string) error {
	run, ok := steps[action]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	mig, err := migrate.New(migrationSource, databaseURL(cfg))
	if err != nil {
		return fmt.Errorf("error creating migrate instance: %w", err)
	}

	defer mig.Close()

	if err := run(mig); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running migration %s: %w", action, err)
	}

	log.Info().Str("action", action).Msg("Database migration finished")

	return nil
}

func Up(cfg *config.Config) error {
	return Migrate(cfg, ActionUp)
}

func databaseURL(cfg *config.Config) string {
	pg := cfg.DB.Postgres

	query := url.Values{}
	query.Set("sslmode", pg.Write.SSLMode)

	if pg.MigrationTable != "" {
		query.Set("x-migrations-table", pg.MigrationTable)
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(pg.Write.Username, pg.Write.Password),
		Host:     net.JoinHostPort(pg.Write.Host, pg.Write.Port),
		Path:     "/" + pg.Prefix + pg.Write.Name,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

func logVersion(mig *migrate.Migrate) error {
	version, dirty, err := mig.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		log.Info().Msg("No migration applied yet")

		return nil
	}

	if err != nil {
		return err //nolint:wrapcheck
	}

	log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Current schema version")

	return nil
}
