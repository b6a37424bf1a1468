// Package rediscache provides Redis-backed caching decorators for the
// catalog repositories. The storefront reads the catalog settings on every
// page render, so the settings record is kept in Redis and invalidated on
// every write.
package rediscache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/wilcommerce/catalog/internal/domain"
	"github.com/wilcommerce/catalog/internal/repository"
)

const settingsKey = "catalog:settings"

// SettingsRepository wraps a settings repository with a Redis read-through
// cache. Writes go to the inner repository first and invalidate the cached
// entry; a failed invalidation is surfaced so the caller can retry.
type SettingsRepository struct {
	inner  repository.SettingsRepository
	client *redis.Client
	ttl    time.Duration
}

// NewSettingsRepository creates a caching decorator around inner.
func NewSettingsRepository(inner repository.SettingsRepository, client *redis.Client, ttl time.Duration) *SettingsRepository {
	return &SettingsRepository{
		inner:  inner,
		client: client,
		ttl:    ttl,
	}
}

// Add inserts the settings record and invalidates the cache.
func (r *SettingsRepository) Add(ctx context.Context, settings *domain.CatalogSettings) error {
	if err := r.inner.Add(ctx, settings); err != nil {
		return err
	}
	return r.invalidate(ctx)
}

// Get returns the catalog settings, serving from Redis when possible.
// Cache read errors fall back to the inner repository.
func (r *SettingsRepository) Get(ctx context.Context) (*domain.CatalogSettings, error) {
	data, err := r.client.Get(ctx, settingsKey).Bytes()
	if err == nil {
		var settings domain.CatalogSettings
		if err := json.Unmarshal(data, &settings); err == nil {
			return &settings, nil
		}
		// A corrupt entry is dropped and reloaded from the store.
		_ = r.client.Del(ctx, settingsKey).Err()
	}

	settings, err := r.inner.Get(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(settings); err == nil {
		_ = r.client.Set(ctx, settingsKey, data, r.ttl).Err()
	}

	return settings, nil
}

// GetByID retrieves a settings record by its identifier, bypassing the cache.
func (r *SettingsRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.CatalogSettings, error) {
	return r.inner.GetByID(ctx, id)
}

// Save persists the settings and invalidates the cache.
func (r *SettingsRepository) Save(ctx context.Context, settings *domain.CatalogSettings) error {
	if err := r.inner.Save(ctx, settings); err != nil {
		return err
	}
	return r.invalidate(ctx)
}

func (r *SettingsRepository) invalidate(ctx context.Context) error {
	if err := r.client.Del(ctx, settingsKey).Err(); err != nil {
		return fmt.Errorf("redis del settings: %w", err)
	}
	return nil
}
