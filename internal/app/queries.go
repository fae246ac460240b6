package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"smarthotel/internal/domain"
)

// Explorer serves the read side of the guest flow with cache-aside over the
// backend. A nil cache disables caching without changing behavior.
type Explorer struct {
	backend  domain.Backend
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewExplorer(b domain.Backend, c domain.Cache, ttl time.Duration) *Explorer {
	return &Explorer{backend: b, cache: c, cacheTTL: ttl}
}

func searchKey(q domain.HotelQuery) string {
	return fmt.Sprintf("search:%s:%s", strings.ToLower(strings.TrimSpace(q.Location)), q.RoomType)
}

func (e *Explorer) SearchHotels(ctx context.Context, q domain.HotelQuery) ([]domain.HotelSummary, error) {
	key := searchKey(q)
	if e.cache != nil {
		var cached []domain.HotelSummary
		if ok, _ := e.cache.Get(ctx, key, &cached); ok {
			return cached, nil
		}
	}
	res, err := e.backend.SearchHotels(ctx, q)
	if err != nil {
		return nil, err
	}
	if e.cache != nil {
		// copy so later caller mutation cannot leak into the cached value
		cp := make([]domain.HotelSummary, len(res))
		copy(cp, res)
		_ = e.cache.Set(ctx, key, cp, int(e.cacheTTL.Seconds()))
	}
	return res, nil
}

func (e *Explorer) GetHotel(ctx context.Context, id string) (domain.HotelDetail, error) {
	key := "hotel:" + id
	if e.cache != nil {
		var cached domain.HotelDetail
		if ok, _ := e.cache.Get(ctx, key, &cached); ok {
			return cached, nil
		}
	}
	h, err := e.backend.GetHotel(ctx, id)
	if err != nil {
		return domain.HotelDetail{}, err
	}
	if e.cache != nil {
		_ = e.cache.Set(ctx, key, h, int(e.cacheTTL.Seconds()))
	}
	return h, nil
}

// Invalidate drops a hotel's cached detail, e.g. after a moderation action.
func (e *Explorer) Invalidate(ctx context.Context, id string) {
	if e.cache != nil {
		_ = e.cache.Del(ctx, "hotel:"+id)
	}
}
