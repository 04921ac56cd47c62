//go:build unit || integration || e2e

package builder

import (
	"context"
	"fmt"
	"time"

	"seatly/internal/domain/venue"
	"seatly/internal/infra/seed"
	"seatly/internal/pkg/ptr"
)

// VenueBuilder assembles one bar showing one match.
type VenueBuilder struct {
	Bar        venue.Bar
	Tables     []venue.Table
	Match      venue.Match
	Promotions []venue.Promotion
}

func NewVenueBuilder() *VenueBuilder {
	return &VenueBuilder{
		Bar: venue.Bar{
			ID:          "bar-1",
			Name:        "The Corner Pub",
			Location:    "Palermo, Buenos Aires",
			Coordinates: venue.Coordinates{Lat: -34.58, Lng: -58.42},
			Capacity:    40,
		},
		Match: venue.Match{
			ID:     "match-1",
			Teams:  "Boca vs River",
			Date:   time.Date(2026, 3, 8, 21, 0, 0, 0, time.UTC),
			Sport:  "football",
			League: "Liga Profesional",
		},
	}
}

// WithTables adds active tables t1..tn with the given capacities and enables them for the match.
func (b *VenueBuilder) WithTables(capacities ...int) *VenueBuilder {
	ids := make([]string, 0, len(capacities))
	for _, c := range capacities {
		id := fmt.Sprintf("t%d", len(b.Tables)+1)
		b.Tables = append(b.Tables, venue.Table{ID: id, Capacity: c, Status: venue.TableActive})
		ids = append(ids, id)
	}
	b.enable(ids...)
	return b
}

func (b *VenueBuilder) WithInactiveTable(id string, capacity int) *VenueBuilder {
	b.Tables = append(b.Tables, venue.Table{ID: id, Capacity: capacity, Status: venue.TableInactive})
	b.enable(id)
	return b
}

// WithDisabledTable adds a table that the match does not list.
func (b *VenueBuilder) WithDisabledTable(id string, capacity int) *VenueBuilder {
	b.Tables = append(b.Tables, venue.Table{ID: id, Capacity: capacity, Status: venue.TableActive})
	return b
}

func (b *VenueBuilder) WithMatchPromotion(priceCents int64) *VenueBuilder {
	b.Promotions = append(b.Promotions, venue.Promotion{
		ID:         "promo-match",
		BarID:      b.Bar.ID,
		MatchID:    ptr.Of(b.Match.ID),
		PriceCents: ptr.Of(priceCents),
		Included:   []string{"1 pinta"},
	})
	return b
}

func (b *VenueBuilder) WithDefaultPromotion(id string, priceCents int64) *VenueBuilder {
	b.Promotions = append(b.Promotions, venue.Promotion{
		ID:         id,
		BarID:      b.Bar.ID,
		PriceCents: ptr.Of(priceCents),
	})
	b.ensureBroadcast()
	b.Match.BroadcastBars[0].PromotionID = ptr.Of(id)
	return b
}

func (b *VenueBuilder) enable(ids ...string) {
	b.ensureBroadcast()
	b.Match.BroadcastBars[0].TableIDs = append(b.Match.BroadcastBars[0].TableIDs, ids...)
}

func (b *VenueBuilder) ensureBroadcast() {
	if len(b.Match.BroadcastBars) == 0 {
		b.Match.BroadcastBars = []venue.BroadcastBar{{BarID: b.Bar.ID}}
	}
}

func (b *VenueBuilder) EnabledTableIDs() []string {
	bb, _ := b.Match.BroadcastFor(b.Bar.ID)
	return bb.TableIDs
}

// Seed writes the bar, the match and its promotions through any catalogue writer.
func (b *VenueBuilder) Seed(ctx context.Context, w seed.CatalogWriter) error {
	if err := w.PutBar(ctx, b.Bar, b.Tables); err != nil {
		return err
	}
	if err := w.PutMatch(ctx, b.Match); err != nil {
		return err
	}
	for _, p := range b.Promotions {
		if err := w.PutPromotion(ctx, p); err != nil {
			return err
		}
	}
	return nil
}
