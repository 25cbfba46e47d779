package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sushil1248/innfostride-backend/domain"
	"github.com/Sushil1248/innfostride-backend/internal/mocks"
)

func cacheFixture(t *testing.T) (*mocks.MockCategoryRepository, domain.CategoryRepository, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	inner := mocks.NewMockCategoryRepository()
	return inner, NewCategoryCache(inner, client, time.Minute), mr
}

func TestCategoryCache_ReadThrough(t *testing.T) {
	inner, cache, mr := cacheFixture(t)

	calls := 0
	inner.FindByIDFunc = func(ctx context.Context, id string) (*domain.Category, error) {
		calls++
		return &domain.Category{ID: id, Name: "Tech", Domain: "acme.test"}, nil
	}

	first, err := cache.FindByID(context.Background(), "cat1")
	require.NoError(t, err)
	assert.Equal(t, "Tech", first.Name)
	assert.Equal(t, 1, calls)
	assert.True(t, mr.Exists("cache:category:cat1"))

	second, err := cache.FindByID(context.Background(), "cat1")
	require.NoError(t, err)
	assert.Equal(t, "Tech", second.Name)
	assert.Equal(t, 1, calls, "second read must hit the cache")
}

func TestCategoryCache_ExpiredEntryRefetches(t *testing.T) {
	inner, cache, mr := cacheFixture(t)

	calls := 0
	inner.FindByIDFunc = func(ctx context.Context, id string) (*domain.Category, error) {
		calls++
		return &domain.Category{ID: id, Name: "News"}, nil
	}

	_, err := cache.FindByID(context.Background(), "cat2")
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = cache.FindByID(context.Background(), "cat2")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestCategoryCache_MissPropagatesError(t *testing.T) {
	_, cache, _ := cacheFixture(t)

	_, err := cache.FindByID(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestCategoryCache_BrokenEntryFallsBack(t *testing.T) {
	inner, cache, mr := cacheFixture(t)

	inner.FindByIDFunc = func(ctx context.Context, id string) (*domain.Category, error) {
		return &domain.Category{ID: id, Name: "Culture"}, nil
	}
	require.NoError(t, mr.Set("cache:category:cat3", "{not json"))

	cat, err := cache.FindByID(context.Background(), "cat3")
	require.NoError(t, err)
	assert.Equal(t, "Culture", cat.Name)
}
