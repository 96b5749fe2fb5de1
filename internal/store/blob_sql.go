package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-idle-keeper/internal/logger"
)

// kvTable is the single relational table backing the SQL blob stores:
// one row per key, the blob stored as TEXT (all blobs are JSON documents).
const kvTable = "kv"

// sqlBlobStore implements [BlobStore] over a database/sql connection.
// It is shared by the postgres and sqlite backends; the two differ only in
// driver, placeholder format, and error classification.
type sqlBlobStore struct {
	db       *sql.DB
	builder  sq.StatementBuilderType
	classify func(error) error
	logger   *logger.Logger
}

func (s *sqlBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	log := logger.FromContext(ctx)

	query, args, err := s.builder.
		Select("v").
		From(kvTable).
		Where(sq.Eq{"k": key}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building sql query: %w", err)
	}

	var value []byte
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrKeyNotFound
		}
		log.Err(err).Str("func", "*sqlBlobStore.Get").Msg("error reading blob")
		return nil, s.classify(err)
	}

	return value, nil
}

func (s *sqlBlobStore) Set(ctx context.Context, key string, value []byte) error {
	log := logger.FromContext(ctx)

	query, args, err := s.builder.
		Insert(kvTable).
		Columns("k", "v").
		Values(key, value).
		Suffix("ON CONFLICT (k) DO UPDATE SET v = EXCLUDED.v").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building sql query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*sqlBlobStore.Set").Msg("error writing blob")
		return s.classify(err)
	}

	return nil
}

func (s *sqlBlobStore) SetIfAbsent(ctx context.Context, key string, value []byte) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := s.builder.
		Insert(kvTable).
		Columns("k", "v").
		Values(key, value).
		Suffix("ON CONFLICT (k) DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("error building sql query: %w", err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*sqlBlobStore.SetIfAbsent").Msg("error writing blob")
		return false, s.classify(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, s.classify(err)
	}

	return affected > 0, nil
}

func (s *sqlBlobStore) Delete(ctx context.Context, key string) error {
	log := logger.FromContext(ctx)

	query, args, err := s.builder.
		Delete(kvTable).
		Where(sq.Eq{"k": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building sql query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*sqlBlobStore.Delete").Msg("error deleting blob")
		return s.classify(err)
	}

	return nil
}

func (s *sqlBlobStore) Close() error {
	return s.db.Close()
}
