package postgres

//nolint:revive
import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"storeflight/config"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

// ErrNotConnected is returned when the pool could not be opened at startup.
var ErrNotConnected = errors.New("database connection not initialized")

// Transactor runs fn inside a database transaction, committing when fn
// returns nil and rolling back otherwise.
type Transactor interface {
	WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error
}

// Connection exposes separate read and write pools. With a single
// DATABASE_URL both point at the same pool.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(config *config.Config) *Connection {
	db := CreatePostgresConnection(
		"primary",
		config.DB.Postgres.URL,
		config.DB.Postgres.MaxRetry,
		config.DB.Postgres.RetryWaitTime,
		config.DB.Postgres.MaxIdleConns,
		config.DB.Postgres.MaxOpenConns,
	)

	return &Connection{
		Read:  db,
		Write: db,
	}
}

// WithTx implements Transactor.
func (c *Connection) WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	if !c.Connected() {
		return ErrNotConnected
	}

	tx, err := c.Write.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()

			panic(p)
		}
	}()

	if err = fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error().Err(rbErr).Msg("failed to rollback transaction")
		}

		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Connected reports whether both pools were opened.
func (c *Connection) Connected() bool {
	return c != nil && c.Read != nil && c.Write != nil
}

// Ping checks that the write pool is reachable.
func (c *Connection) Ping(ctx context.Context) error {
	if !c.Connected() {
		return ErrNotConnected
	}

	if err := c.Write.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	return nil
}

// Close releases the pool.
func (c *Connection) Close() error {
	if !c.Connected() {
		return nil
	}

	return c.Write.Close() //nolint:wrapcheck
}

// Descriptor applies the hosted-database TLS default to a connection string:
// local hosts get sslmode=disable, anything else sslmode=require, unless the
// URL already chooses a mode.
func Descriptor(databaseURL string) string {
	parsed, err := url.Parse(databaseURL)
	if err != nil || parsed.Host == "" {
		return databaseURL
	}

	query := parsed.Query()
	if query.Get("sslmode") != "" {
		return databaseURL
	}

	host := parsed.Hostname()
	if host == "localhost" || host == "127.0.0.1" {
		query.Set("sslmode", "disable")
	} else {
		query.Set("sslmode", "require")
	}

	parsed.RawQuery = query.Encode()

	return parsed.String()
}

// CreatePostgresConnection creates a database connection.
func CreatePostgresConnection(name, databaseURL string, maxRetry, waitTime, maxIdle, maxOpen int) *sqlx.DB {
	if databaseURL == "" {
		log.Error().Str("name", name).Msg("DATABASE_URL is not set")

		return nil
	}

	descriptor := Descriptor(databaseURL)

	for retry := range maxRetry {
		sqlDB, err := sqlx.Connect("postgres", descriptor)
		if err == nil {
			log.
				Info().
				Str("name", name).
				Msg("Connected to database")
			sqlDB.SetMaxIdleConns(maxIdle)
			sqlDB.SetMaxOpenConns(maxOpen)

			return sqlDB
		}

		log.
			Error().
			Err(err).
			Str("name", name).
			Int("attempt", retry+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitTime) * time.Second)
	}

	return nil
}
