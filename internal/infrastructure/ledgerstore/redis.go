package ledgerstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"
	"github.com/jhoicas/pos-ledger-api/internal/domain"
	"github.com/jhoicas/pos-ledger-api/internal/domain/repository"
	"github.com/jhoicas/pos-ledger-api/pkg/config"
)

var _ repository.LedgerStore = (*RedisStore)(nil)

// RedisStore implementación del Ledger Store sobre Redis. Cada documento vive
// bajo su clave textual; el scan por prefijo itera SCAN MATCH y recupera los
// valores con MGET, ordenando por clave para igualar el contrato de los demás
// backends.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore construye el store y verifica la conexión.
func NewRedisStore(ctx context.Context, cfg config.RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisStore{client: client}, nil
}

// Close cierra la conexión.
func (s *RedisStore) Close() error { return s.client.Close() }

// Get obtiene un documento por clave. ErrNotFound si no existe.
func (s *RedisStore) Get(ctx context.Context, key string) (json.RawMessage, error) {
	val, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.StoreFailure("get "+key, err)
	}
	return val, nil
}

// Set guarda (o reemplaza) un documento, sin expiración.
func (s *RedisStore) Set(ctx context.Context, key string, doc json.RawMessage) error {
	if err := s.client.Set(ctx, key, []byte(doc), 0).Err(); err != nil {
		return domain.StoreFailure("set "+key, err)
	}
	return nil
}

// Delete elimina un documento. Borrar una clave inexistente no es error.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return domain.StoreFailure("delete "+key, err)
	}
	return nil
}

// ScanByPrefix devuelve los documentos cuyas claves empiezan por prefix,
// ordenados por clave.
func (s *RedisStore) ScanByPrefix(ctx context.Context, prefix string) ([]json.RawMessage, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, prefix+"*", 200).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, domain.StoreFailure("scan "+prefix, err)
	}
	if len(keys) == 0 {
		return nil, nil
	}
	sort.Strings(keys)

	vals, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, domain.StoreFailure("mget "+prefix, err)
	}
	out := make([]json.RawMessage, 0, len(vals))
	for _, v := range vals {
		str, ok := v.(string)
		if !ok {
			continue // clave borrada entre SCAN y MGET
		}
		out = append(out, json.RawMessage(str))
	}
	return out, nil
}
