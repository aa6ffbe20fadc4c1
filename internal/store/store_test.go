package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"passionmatch-engine/internal/domain"
	"passionmatch-engine/internal/profile"
)

var (
	_ profile.Store = (*SQLiteKV)(nil)
	_ profile.Store = (*FileKV)(nil)
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "engine.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db.Pool))

	var v int
	require.NoError(t, db.Pool.QueryRow(`PRAGMA user_version;`).Scan(&v))
	assert.Equal(t, len(migrations), v)
}

func TestSQLiteKV_GetSet(t *testing.T) {
	kv := NewSQLiteKV(openTestDB(t).Pool)

	_, ok, err := kv.Get("passion_profile")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set("passion_profile", `["beach-sun"]`))
	require.NoError(t, kv.Set("passion_profile", `["food-wine"]`))

	v, ok, err := kv.Get("passion_profile")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `["food-wine"]`, v)
}

func TestSQLiteKV_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.db")

	db, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, NewSQLiteKV(db.Pool).Set("k", "v"))
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()

	v, ok, err := NewSQLiteKV(db.Pool).Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestUpsertHotel_InsertThenUpdate(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	h := domain.Hotel{
		Name:       "Azure Bay Resort",
		Facilities: []string{"Private Beach", "Spa"},
		Address:    "1 Shore Rd, Sunny Bay",
		Rating:     8.4,
		Source:     "coastal-deals",
	}

	id, added, err := UpsertHotel(ctx, db.Pool, h)
	require.NoError(t, err)
	assert.True(t, added)
	assert.NotEmpty(t, id)

	h.Rating = 9.0
	id2, added, err := UpsertHotel(ctx, db.Pool, h)
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, id, id2)

	got, ok, err := GetHotel(ctx, db.Pool, id)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Azure Bay Resort", got.Name)
	assert.Equal(t, []string{"Private Beach", "Spa"}, got.Facilities)
	assert.InDelta(t, 9.0, got.Rating, 0.0001)
	assert.Equal(t, HotelSourceID("coastal-deals", h.Name, h.Address), got.SourceID)
}

func TestUpsertHotel_RequiresName(t *testing.T) {
	_, _, err := UpsertHotel(context.Background(), openTestDB(t).Pool, domain.Hotel{Name: "  "})
	assert.Error(t, err)
}

func TestHotelSourceID_Normalizes(t *testing.T) {
	a := HotelSourceID("Feed", "Grand  Hotel", "Main St")
	b := HotelSourceID("feed", "grand hotel", " main st ")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, HotelSourceID("feed", "grand hotel", "side st"))
}

func TestListHotels_FiltersAndDelete(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	for _, h := range []domain.Hotel{
		{Name: "Vineyard Lodge", Source: "wine-news"},
		{Name: "Harbour Inn", Source: "coastal-deals"},
		{Name: "Cliff House", Source: "coastal-deals", SourceID: "ext-42"},
	} {
		_, _, err := UpsertHotel(ctx, db.Pool, h)
		require.NoError(t, err)
	}

	all, err := ListHotels(ctx, db.Pool, ListHotelsOpts{Window: "all"})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	coastal, err := ListHotels(ctx, db.Pool, ListHotelsOpts{Source: "coastal-deals", Window: "24h"})
	require.NoError(t, err)
	require.Len(t, coastal, 2)

	limited, err := ListHotels(ctx, db.Pool, ListHotelsOpts{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	ok, err := DeleteHotel(ctx, db.Pool, coastal[0].ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = DeleteHotel(ctx, db.Pool, coastal[0].ID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, found, err := GetHotel(ctx, db.Pool, coastal[0].ID)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCleanupOldHotels(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	id, _, err := UpsertHotel(ctx, db.Pool, domain.Hotel{Name: "Old Manor"})
	require.NoError(t, err)
	_, _, err = UpsertHotel(ctx, db.Pool, domain.Hotel{Name: "New Loft"})
	require.NoError(t, err)

	_, err = db.Pool.Exec(`UPDATE hotels SET last_seen = datetime('now','-4 months') WHERE id = ?;`, id)
	require.NoError(t, err)

	n, err := CleanupOldHotels(db.Pool)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	left, err := ListHotels(ctx, db.Pool, ListHotelsOpts{Window: "all"})
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "New Loft", left[0].Name)
}
