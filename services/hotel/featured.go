package hotel

import (
	"context"
	"encoding/json"
	"time"

	"travelgo/models"

	"go.uber.org/zap"
)

const (
	featuredCacheKey   = "catalog:featured"
	facilitiesCacheKey = "catalog:facilities"
	catalogCacheTTL    = 10 * time.Minute
)

// ListFeatured serves the featured subset through the Redis cache. A cache
// miss or decode failure falls through to Mongo and repopulates.
func (s *DefaultHotelService) ListFeatured(ctx context.Context) ([]models.Hotel, error) {
	if s.CacheClient != nil {
		if data, err := s.CacheClient.Get(ctx, featuredCacheKey).Result(); err == nil {
			var hotels []models.Hotel
			if err := json.Unmarshal([]byte(data), &hotels); err == nil {
				return hotels, nil
			}
		}
	}

	hotels, err := s.Repo.ListFeatured(ctx)
	if err != nil {
		return nil, err
	}

	if s.CacheClient != nil {
		if data, err := json.Marshal(hotels); err == nil {
			if err := s.CacheClient.Set(ctx, featuredCacheKey, data, catalogCacheTTL).Err(); err != nil {
				s.Logger.Warn("failed to cache featured hotels", zap.Error(err))
			}
		}
	}
	return hotels, nil
}

// FacilitiesCount returns the amenity → hotel-count aggregation, cached the
// same way as the featured list.
func (s *DefaultHotelService) FacilitiesCount(ctx context.Context) (map[string]int64, error) {
	if s.CacheClient != nil {
		if data, err := s.CacheClient.Get(ctx, facilitiesCacheKey).Result(); err == nil {
			var counts map[string]int64
			if err := json.Unmarshal([]byte(data), &counts); err == nil {
				return counts, nil
			}
		}
	}

	counts, err := s.Repo.CountByAmenity(ctx)
	if err != nil {
		return nil, err
	}

	if s.CacheClient != nil {
		if data, err := json.Marshal(counts); err == nil {
			if err := s.CacheClient.Set(ctx, facilitiesCacheKey, data, catalogCacheTTL).Err(); err != nil {
				s.Logger.Warn("failed to cache facility counts", zap.Error(err))
			}
		}
	}
	return counts, nil
}

// invalidateCatalogCache drops cached catalog entries after a mutation.
func (s *DefaultHotelService) invalidateCatalogCache(ctx context.Context) {
	if s.CacheClient == nil {
		return
	}
	if err := s.CacheClient.Del(ctx, featuredCacheKey, facilitiesCacheKey).Err(); err != nil {
		s.Logger.Warn("failed to invalidate catalog cache", zap.Error(err))
	}
}
