package postgres

//nolint:revive
import (
	"fmt"
	"net"
	"time"

	"edurooms/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

// Connection splits reads and writes across two pools. Both may point at the same server.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

type endpoint struct {
	name     string
	username string
	password string
	host     string
	port     string
	dbName   string
	sslMode  string
}

func (e endpoint) descriptor() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s/%s?sslmode=%s",
		e.username,
		e.password,
		net.JoinHostPort(e.host, e.port),
		e.dbName,
		e.sslMode,
	)
}

// New connects both pools and aborts the process when either cannot be reached.
func New(config *config.Config) *Connection {
	pg := config.DB.Postgres

	return &Connection{
		Read: connect(config, endpoint{
			name:     "read",
			username: pg.Read.Username,
			password: pg.Read.Password,
			host:     pg.Read.Host,
			port:     pg.Read.Port,
			dbName:   getDBName(config, pg.Read.Name),
			sslMode:  pg.Read.SSLMode,
		}),
		Write: connect(config, endpoint{
			name:     "write",
			username: pg.Write.Username,
			password: pg.Write.Password,
			host:     pg.Write.Host,
			port:     pg.Write.Port,
			dbName:   getDBName(config, pg.Write.Name),
			sslMode:  pg.Write.SSLMode,
		}),
	}
}

func getDBName(config *config.Config, baseName string) string {
	return config.DB.Postgres.Prefix + baseName
}

func connect(config *config.Config, target endpoint) *sqlx.DB {
	pg := config.DB.Postgres
	attempts := max(pg.MaxRetry, 1)

	var lastErr error

	for retry := range attempts {
		sqlDB, err := sqlx.Connect("postgres", target.descriptor())
		if err == nil {
			sqlDB.SetMaxOpenConns(pg.MaxOpenConns)
			sqlDB.SetMaxIdleConns(pg.MaxIdleConns)

			log.
				Info().
				Str("name", target.name).
				Str("host", target.host).
				Str("port", target.port).
				Str("dbName", target.dbName).
				Int("maxOpenConns", pg.MaxOpenConns).
				Msg("Connected to database")

			return sqlDB
		}

		lastErr = err

		log.
			Error().
			Err(err).
			Str("name", target.name).
			Str("host", target.host).
			Int("attempt", retry+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(pg.RetryWaitTime) * time.Second)
	}

	log.Fatal().Err(lastErr).Str("name", target.name).Msg("Giving up connecting to database")

	return nil
}
