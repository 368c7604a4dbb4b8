package ledgerstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/pos-ledger-api/internal/domain"
	"github.com/jhoicas/pos-ledger-api/internal/domain/repository"
	"github.com/jhoicas/pos-ledger-api/pkg/config"
)

var _ repository.LedgerStore = (*PostgresStore)(nil)

// PostgresStore implementación del Ledger Store sobre PostgreSQL: una única
// tabla de documentos (key text primary key, doc jsonb). El scan por prefijo
// usa LIKE con escape de comodines y ordena por clave.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPool crea un pool de conexiones PostgreSQL usando la configuración de la app.
func NewPool(ctx context.Context, cfg config.StoreConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}
	poolConfig.MaxConns = 25
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

// NewPostgresStore construye el store y crea la tabla de documentos si no existe.
func NewPostgresStore(ctx context.Context, pool *pgxpool.Pool) (*PostgresStore, error) {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS ledger_documents (
			key        text PRIMARY KEY,
			doc        jsonb NOT NULL,
			updated_at timestamptz NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return nil, fmt.Errorf("crear tabla ledger_documents: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// Get obtiene un documento por clave. ErrNotFound si no existe.
func (s *PostgresStore) Get(ctx context.Context, key string) (json.RawMessage, error) {
	var doc json.RawMessage
	err := s.pool.QueryRow(ctx, `SELECT doc FROM ledger_documents WHERE key = $1`, key).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.StoreFailure("get "+key, err)
	}
	return doc, nil
}

// Set guarda (o reemplaza) un documento.
func (s *PostgresStore) Set(ctx context.Context, key string, doc json.RawMessage) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO ledger_documents (key, doc, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()`,
		key, doc,
	)
	if err != nil {
		return domain.StoreFailure("set "+key, err)
	}
	return nil
}

// Delete elimina un documento. Borrar una clave inexistente no es error.
func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM ledger_documents WHERE key = $1`, key)
	if err != nil {
		return domain.StoreFailure("delete "+key, err)
	}
	return nil
}

// ScanByPrefix devuelve los documentos cuyas claves empiezan por prefix,
// ordenados por clave.
func (s *PostgresStore) ScanByPrefix(ctx context.Context, prefix string) ([]json.RawMessage, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT doc FROM ledger_documents WHERE key LIKE $1 ESCAPE '\' ORDER BY key`,
		escapeLike(prefix)+"%",
	)
	if err != nil {
		return nil, domain.StoreFailure("scan "+prefix, err)
	}
	defer rows.Close()

	var out []json.RawMessage
	for rows.Next() {
		var doc json.RawMessage
		if err := rows.Scan(&doc); err != nil {
			return nil, domain.StoreFailure("scan "+prefix, err)
		}
		out = append(out, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StoreFailure("scan "+prefix, err)
	}
	return out, nil
}

// escapeLike escapa los comodines de LIKE en el prefijo (las claves del tipo
// "stock_history:" contienen '_', que LIKE interpreta como comodín).
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
