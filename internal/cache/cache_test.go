package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type payload struct {
	City string  `json:"city"`
	Temp float64 `json:"temp"`
}

func TestCacheRoundTrip(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	c := New(rdb, time.Minute)
	ctx := context.Background()

	var got payload
	if c.Get(ctx, "weather:paris", &got) {
		t.Fatal("Expected miss on empty cache")
	}

	c.Set(ctx, "weather:paris", payload{City: "Paris", Temp: 21.5})

	if !c.Get(ctx, "weather:paris", &got) {
		t.Fatal("Expected hit after set")
	}
	if got.City != "Paris" || got.Temp != 21.5 {
		t.Errorf("Unexpected cached value: %+v", got)
	}
}

func TestCacheExpiry(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	c := New(rdb, time.Second)
	ctx := context.Background()

	c.Set(ctx, "k", payload{City: "Rome"})
	mr.FastForward(2 * time.Second)

	var got payload
	if c.Get(ctx, "k", &got) {
		t.Error("Expected miss after TTL expiry")
	}
}

func TestNilCacheIsNoop(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	c.Set(ctx, "k", payload{City: "Oslo"})

	var got payload
	if c.Get(ctx, "k", &got) {
		t.Error("Expected nil cache to always miss")
	}
}
