package redisad_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/shopspring/decimal"

	redisad "smarthotel/internal/adapters/redis"
	"smarthotel/internal/domain"
)

func TestCache_RoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	ctx := context.Background()

	in := domain.HotelDetail{
		ID:       "h1",
		Name:     "Grand Palm",
		Location: "Goa",
		Rooms: map[domain.RoomType]domain.RoomOffer{
			domain.RoomStandard: {Price: decimal.NewFromInt(100), Available: 3},
		},
	}
	if err := c.Set(ctx, "hotel:h1", in, 60); err != nil {
		t.Fatalf("set: %v", err)
	}

	var out domain.HotelDetail
	ok, err := c.Get(ctx, "hotel:h1", &out)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if out.Name != "Grand Palm" || !out.Rooms[domain.RoomStandard].Price.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("unexpected value: %+v", out)
	}

	if err := c.Del(ctx, "hotel:h1"); err != nil {
		t.Fatalf("del: %v", err)
	}
	if ok, _ := c.Get(ctx, "hotel:h1", &out); ok {
		t.Fatal("expected miss after del")
	}
}

func TestCache_MissIsNotError(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)

	var out domain.HotelDetail
	ok, err := c.Get(context.Background(), "hotel:nope", &out)
	if err != nil {
		t.Fatalf("miss must not error: %v", err)
	}
	if ok {
		t.Fatal("expected miss")
	}
}
