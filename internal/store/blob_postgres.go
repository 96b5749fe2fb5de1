package store

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-idle-keeper/internal/config"
	"github.com/MKhiriev/go-idle-keeper/internal/logger"
	"github.com/MKhiriev/go-idle-keeper/migrations"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// NewPostgresBlobStore connects to PostgreSQL, runs the kv migrations, and
// returns a [BlobStore] over the kv table.
func NewPostgresBlobStore(ctx context.Context, cfg config.DB, log *logger.Logger) (BlobStore, error) {
	// establish connection
	conn, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewPostgresBlobStore").Msg("error occured during database connection")
		return nil, fmt.Errorf("error occured during database connection: %w", err)
	}

	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(4)

	// ping database
	if err := conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewPostgresBlobStore").Msg("error connecting database (ping)")
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	log.Info().Str("func", "NewPostgresBlobStore").Msg("connected to database successfully")

	if err := migrations.Migrate(conn, migrations.DialectPostgres); err != nil {
		return nil, err
	}

	return &sqlBlobStore{
		db:       conn,
		builder:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		classify: classifyPostgresError,
		logger:   log,
	}, nil
}

// classifyPostgresError maps driver-level failures onto the store's error
// taxonomy. Connection-class failures become [ErrStorageUnavailable] so
// callers can surface them as transient 5xx conditions; everything else is
// wrapped as-is.
func classifyPostgresError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgerrcode.IsConnectionException(pgErr.Code) {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	return fmt.Errorf("unexpected DB error: %w", err)
}
