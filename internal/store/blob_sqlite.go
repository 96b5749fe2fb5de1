package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-idle-keeper/internal/config"
	"github.com/MKhiriev/go-idle-keeper/internal/logger"
	"github.com/MKhiriev/go-idle-keeper/migrations"

	"github.com/mattn/go-sqlite3"
)

// NewSQLiteBlobStore opens (creating if necessary) a local SQLite database,
// runs the kv migrations, and returns a [BlobStore] over the kv table.
// Intended for single-binary deployments without an external database.
func NewSQLiteBlobStore(ctx context.Context, cfg config.DB, log *logger.Logger) (BlobStore, error) {
	if err := createLocalDBFileIfNotExists(cfg.DSN); err != nil {
		log.Err(err).Str("func", "NewSQLiteBlobStore").Msg("error creating database file")
		return nil, fmt.Errorf("error creating database file: %w", err)
	}

	conn, err := sql.Open("sqlite3", cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewSQLiteBlobStore").Msg("error connecting database")
		return nil, fmt.Errorf("error opening connection to DB: %w", err)
	}

	// sqlite serializes writers through a single connection
	conn.SetMaxOpenConns(1)

	if err := conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewSQLiteBlobStore").Msg("error connecting database (ping)")
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	log.Debug().Str("func", "NewSQLiteBlobStore").Msg("connected to database successfully")

	if err := migrations.Migrate(conn, migrations.DialectSQLite); err != nil {
		return nil, err
	}

	return &sqlBlobStore{
		db:       conn,
		builder:  sq.StatementBuilder.PlaceholderFormat(sq.Question),
		classify: classifySQLiteError,
		logger:   log,
	}, nil
}

// classifySQLiteError maps driver-level failures onto the store's error
// taxonomy, mirroring classifyPostgresError: transient conditions (a busy or
// locked database, I/O failures, an unopenable or full database file) become
// [ErrStorageUnavailable]; everything else is wrapped as-is.
func classifySQLiteError(err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code {
		case sqlite3.ErrBusy, sqlite3.ErrLocked, sqlite3.ErrIoErr, sqlite3.ErrCantOpen, sqlite3.ErrFull:
			return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
		}
	}

	return fmt.Errorf("unexpected DB error: %w", err)
}

func createLocalDBFileIfNotExists(dbFile string) error {
	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		// if not found - create
		f, err := os.Create(dbFile)
		if err != nil {
			return fmt.Errorf("error creating DB file: %w", err)
		}
		f.Close()
	}

	// file already exists
	return nil
}
