//go:build unit

package seed_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"seatly/internal/domain/venue"
	"seatly/internal/infra/memstore"
	"seatly/internal/infra/seed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogJSON = `{
  "bars": [{
    "id": "bar-1",
    "name": "The Corner Pub",
    "location": "Palermo",
    "coordinates": {"lat": -34.58, "lng": -58.42},
    "capacity": 12,
    "tables": [
      {"id": "t1", "capacity": 4},
      {"id": "t2", "capacity": 8, "status": "inactive"}
    ]
  }],
  "matches": [{
    "id": "match-1",
    "teams": "Boca vs River",
    "date": "2026-03-08T18:00:00-03:00",
    "sport": "football",
    "league": "Liga Profesional",
    "broadcastBars": [{"barId": "bar-1", "tableIds": ["t1", "t2"], "promotionId": "promo-default"}]
  }],
  "promotions": [
    {"id": "promo-default", "barId": "bar-1", "price": 120000, "included": ["1 pinta"]}
  ]
}`

func TestCatalogApply(t *testing.T) {
	catalog, err := seed.Decode(strings.NewReader(catalogJSON))
	require.NoError(t, err)

	store := memstore.New()
	require.NoError(t, catalog.Apply(context.Background(), store))
	ctx := context.Background()

	tables, err := store.TablesByBar(ctx, "bar-1")
	require.NoError(t, err)
	require.Len(t, tables, 2)
	assert.True(t, tables[0].IsActive(), "missing status reads as active")
	assert.False(t, tables[1].IsActive())

	match, err := store.MatchByID(ctx, "match-1")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 8, 21, 0, 0, 0, time.UTC), match.Date)
	bb, ok := match.BroadcastFor("bar-1")
	require.True(t, ok)
	assert.Equal(t, []string{"t1", "t2"}, bb.TableIDs)

	promo, err := store.PromotionFor(ctx, "bar-1", "match-1", bb.PromotionID)
	require.NoError(t, err)
	require.NotNil(t, promo)
	assert.Equal(t, int64(120000), *promo.PriceCents)
}

func TestDecode_Malformed(t *testing.T) {
	_, err := seed.Decode(strings.NewReader(`{"bars": [`))
	require.Error(t, err)
}

type failingWriter struct{ *memstore.Store }

func (failingWriter) PutMatch(context.Context, venue.Match) error { return assert.AnError }

func TestCatalogApply_ReportsFailingDocument(t *testing.T) {
	catalog, err := seed.Decode(strings.NewReader(catalogJSON))
	require.NoError(t, err)

	err = catalog.Apply(context.Background(), failingWriter{Store: memstore.New()})
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "match match-1")
}
