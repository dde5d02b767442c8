package repository

import (
	"context"
	"testing"

	"tacitus-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type locationStore interface {
	InsertLocation(ctx context.Context, lat, lon float64, name string, articles models.Articles) (*models.Location, error)
	ListLocations(ctx context.Context) ([]models.LocationSummary, error)
	GetLocationByID(ctx context.Context, id int64) (*models.Location, error)
	FindNearestLocation(ctx context.Context, lat, lon, tolerance float64) (*models.Location, error)
}

// runStoreContract exercises the behaviour every location store must share.
// newStore must return an empty store.
func runStoreContract(t *testing.T, newStore func(t *testing.T) locationStore) {
	ctx := context.Background()

	t.Run("insert assigns increasing ids and round-trips articles", func(t *testing.T) {
		store := newStore(t)
		articles := models.Articles{
			"https://en.wikipedia.org/wiki/Eiffel_Tower",
			"https://en.wikipedia.org/wiki/%C3%8Ele_de_la_Cit%C3%A9",
			"https://en.wikipedia.org/wiki/Paris",
		}

		first, err := store.InsertLocation(ctx, 48.8566, 2.3522, "Paris, France", articles)
		require.NoError(t, err)
		second, err := store.InsertLocation(ctx, 48.8566, 2.3522, "Paris, France", articles)
		require.NoError(t, err)

		assert.Greater(t, second.ID, first.ID)
		assert.False(t, first.CreatedAt.IsZero())

		got, err := store.GetLocationByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, articles, got.Articles)
		assert.Equal(t, "Paris, France", got.Name)
		assert.Equal(t, 48.8566, got.Latitude)
		assert.Equal(t, 2.3522, got.Longitude)
	})

	t.Run("empty articles decode as empty list", func(t *testing.T) {
		store := newStore(t)

		loc, err := store.InsertLocation(ctx, 1, 1, "Somewhere", nil)
		require.NoError(t, err)

		got, err := store.GetLocationByID(ctx, loc.ID)
		require.NoError(t, err)
		assert.NotNil(t, got.Articles)
		assert.Empty(t, got.Articles)
	})

	t.Run("empty name is rejected", func(t *testing.T) {
		store := newStore(t)

		_, err := store.InsertLocation(ctx, 1, 1, "", models.Articles{"a"})
		assert.ErrorIs(t, err, models.ErrPersistence)
	})

	t.Run("get missing id", func(t *testing.T) {
		store := newStore(t)

		_, err := store.GetLocationByID(ctx, 4242)
		assert.ErrorIs(t, err, models.ErrRecordNotFound)
	})

	t.Run("list newest first", func(t *testing.T) {
		store := newStore(t)

		empty, err := store.ListLocations(ctx)
		require.NoError(t, err)
		assert.NotNil(t, empty)
		assert.Empty(t, empty)

		for _, name := range []string{"Rome", "Berlin", "Lisbon"} {
			_, err := store.InsertLocation(ctx, 0, 0, name, models.Articles{"x"})
			require.NoError(t, err)
		}

		list, err := store.ListLocations(ctx)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, "Lisbon", list[0].Name)
		assert.Equal(t, "Berlin", list[1].Name)
		assert.Equal(t, "Rome", list[2].Name)
	})

	t.Run("find nearest", func(t *testing.T) {
		store := newStore(t)

		paris, err := store.InsertLocation(ctx, 48.8566, 2.3522, "Paris, France", models.Articles{"p"})
		require.NoError(t, err)
		_, err = store.InsertLocation(ctx, 48.90, 2.40, "Saint-Denis", models.Articles{"s"})
		require.NoError(t, err)
		twinA, err := store.InsertLocation(ctx, 10.05, 10.0, "Twin A", models.Articles{"a"})
		require.NoError(t, err)
		_, err = store.InsertLocation(ctx, 10.0, 10.05, "Twin B", models.Articles{"b"})
		require.NoError(t, err)

		tests := []struct {
			name     string
			lat, lon float64
			wantID   int64
			wantNone bool
		}{
			{name: "closest by delta sum", lat: 48.86, lon: 2.35, wantID: paris.ID},
			{name: "longitude outside box", lat: 48.8566, lon: 2.6, wantNone: true},
			{name: "latitude outside box", lat: 49.5, lon: 2.3522, wantNone: true},
			{name: "nothing nearby", lat: 0, lon: 0, wantNone: true},
			{name: "tie goes to first inserted", lat: 10.0, lon: 10.0, wantID: twinA.ID},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				got, err := store.FindNearestLocation(ctx, tt.lat, tt.lon, 0.1)
				require.NoError(t, err)
				if tt.wantNone {
					assert.Nil(t, got)
					return
				}
				require.NotNil(t, got)
				assert.Equal(t, tt.wantID, got.ID)
				assert.NotEmpty(t, got.Articles)
			})
		}
	})

	t.Run("find nearest box is axis aligned", func(t *testing.T) {
		store := newStore(t)

		corner, err := store.InsertLocation(ctx, 0.09, 0.09, "Corner", models.Articles{"c"})
		require.NoError(t, err)

		// Euclidean distance ~0.127 exceeds the tolerance, but each axis delta does not.
		got, err := store.FindNearestLocation(ctx, 0, 0, 0.1)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, corner.ID, got.ID)
	})
}
