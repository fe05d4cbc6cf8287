package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"telemed-booking/internal/delivery/dto"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Cache keys for the public catalog
const (
	CacheKeyDoctorsActive    = "catalog:doctors:active"
	CacheKeySpecialties      = "catalog:specialties"
	cacheKeyDoctorsSpecialty = "catalog:doctors:specialty:%d"
	cacheKeyDoctorsPattern   = "catalog:doctors:*"
)

// CatalogCache is a read-through cache for the public doctor catalog.
// Misses and redis failures degrade to the database; admin mutations
// invalidate. Tokens are never cached here, auth stays local.
type CatalogCache interface {
	GetDoctors(ctx context.Context, key string) ([]dto.DoctorResponse, bool)
	SetDoctors(ctx context.Context, key string, doctors []dto.DoctorResponse)
	GetSpecialties(ctx context.Context) ([]dto.SpecialtyResponse, bool)
	SetSpecialties(ctx context.Context, specialties []dto.SpecialtyResponse)
	InvalidateDoctors(ctx context.Context)
}

// DoctorsSpecialtyKey builds the cache key for a per-specialty listing
func DoctorsSpecialtyKey(specialtyID int) string {
	return fmt.Sprintf(cacheKeyDoctorsSpecialty, specialtyID)
}

type redisCatalogCache struct {
	client *redis.Client
	log    *logrus.Logger
	ttl    time.Duration
}

func NewCatalogCache(client *redis.Client, log *logrus.Logger, ttl time.Duration) CatalogCache {
	return &redisCatalogCache{
		client: client,
		log:    log,
		ttl:    ttl,
	}
}

func (c *redisCatalogCache) GetDoctors(ctx context.Context, key string) ([]dto.DoctorResponse, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warnf("Catalog cache read failed for %s: %+v", key, err)
		}
		return nil, false
	}

	var doctors []dto.DoctorResponse
	if err := json.Unmarshal(raw, &doctors); err != nil {
		c.log.Warnf("Catalog cache entry %s is corrupt, dropping: %+v", key, err)
		c.client.Del(ctx, key)
		return nil, false
	}
	return doctors, true
}

func (c *redisCatalogCache) SetDoctors(ctx context.Context, key string, doctors []dto.DoctorResponse) {
	raw, err := json.Marshal(doctors)
	if err != nil {
		c.log.Warnf("Failed to marshal doctors for cache key %s: %+v", key, err)
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.log.Warnf("Catalog cache write failed for %s: %+v", key, err)
	}
}

func (c *redisCatalogCache) GetSpecialties(ctx context.Context) ([]dto.SpecialtyResponse, bool) {
	raw, err := c.client.Get(ctx, CacheKeySpecialties).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warnf("Catalog cache read failed for %s: %+v", CacheKeySpecialties, err)
		}
		return nil, false
	}

	var specialties []dto.SpecialtyResponse
	if err := json.Unmarshal(raw, &specialties); err != nil {
		c.log.Warnf("Catalog cache entry %s is corrupt, dropping: %+v", CacheKeySpecialties, err)
		c.client.Del(ctx, CacheKeySpecialties)
		return nil, false
	}
	return specialties, true
}

func (c *redisCatalogCache) SetSpecialties(ctx context.Context, specialties []dto.SpecialtyResponse) {
	raw, err := json.Marshal(specialties)
	if err != nil {
		c.log.Warnf("Failed to marshal specialties for cache: %+v", err)
		return
	}
	if err := c.client.Set(ctx, CacheKeySpecialties, raw, c.ttl).Err(); err != nil {
		c.log.Warnf("Catalog cache write failed for %s: %+v", CacheKeySpecialties, err)
	}
}

// InvalidateDoctors drops every doctor listing after an admin mutation
func (c *redisCatalogCache) InvalidateDoctors(ctx context.Context) {
	keys, err := c.client.Keys(ctx, cacheKeyDoctorsPattern).Result()
	if err != nil {
		c.log.Warnf("Catalog cache invalidation scan failed: %+v", err)
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.log.Warnf("Catalog cache invalidation failed: %+v", err)
	}
}
