// Package seed loads a bar and match catalogue from a JSON document into a store.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"seatly/internal/domain/venue"
)

type CatalogWriter interface {
	PutBar(ctx context.Context, bar venue.Bar, tables []venue.Table) error
	PutMatch(ctx context.Context, m venue.Match) error
	PutPromotion(ctx context.Context, p venue.Promotion) error
}

type Catalog struct {
	Bars       []BarDoc       `json:"bars"`
	Matches    []MatchDoc     `json:"matches"`
	Promotions []PromotionDoc `json:"promotions"`
}

type BarDoc struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	Coordinates struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"coordinates"`
	Capacity int        `json:"capacity"`
	Tables   []TableDoc `json:"tables"`
}

type TableDoc struct {
	ID       string `json:"id"`
	Capacity int    `json:"capacity"`
	Status   string `json:"status,omitempty"`
}

type MatchDoc struct {
	ID            string            `json:"id"`
	Teams         string            `json:"teams"`
	Date          time.Time         `json:"date"`
	Sport         string            `json:"sport"`
	League        string            `json:"league"`
	BroadcastBars []BroadcastBarDoc `json:"broadcastBars"`
}

type BroadcastBarDoc struct {
	BarID       string   `json:"barId"`
	TableIDs    []string `json:"tableIds"`
	PromotionID *string  `json:"promotionId,omitempty"`
}

type PromotionDoc struct {
	ID       string   `json:"id"`
	BarID    string   `json:"barId"`
	MatchID  *string  `json:"matchId,omitempty"`
	Price    *int64   `json:"price,omitempty"`
	Included []string `json:"included,omitempty"`
}

func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

func Decode(r io.Reader) (*Catalog, error) {
	var c Catalog
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("failed to decode seed catalog: %w", err)
	}
	return &c, nil
}

// Apply writes bars before matches so foreign keys resolve.
func (c *Catalog) Apply(ctx context.Context, w CatalogWriter) error {
	for _, b := range c.Bars {
		tables := make([]venue.Table, 0, len(b.Tables))
		for _, t := range b.Tables {
			tables = append(tables, venue.Table{ID: t.ID, Capacity: t.Capacity, Status: venue.TableStatus(t.Status)})
		}
		bar := venue.Bar{
			ID:          b.ID,
			Name:        b.Name,
			Location:    b.Location,
			Coordinates: venue.Coordinates{Lat: b.Coordinates.Lat, Lng: b.Coordinates.Lng},
			Capacity:    b.Capacity,
		}
		if err := w.PutBar(ctx, bar, tables); err != nil {
			return fmt.Errorf("bar %s: %w", b.ID, err)
		}
	}

	for _, m := range c.Matches {
		match := venue.Match{
			ID:     m.ID,
			Teams:  m.Teams,
			Date:   m.Date.UTC(),
			Sport:  m.Sport,
			League: m.League,
		}
		for _, bb := range m.BroadcastBars {
			match.BroadcastBars = append(match.BroadcastBars, venue.BroadcastBar{
				BarID:       bb.BarID,
				TableIDs:    bb.TableIDs,
				PromotionID: bb.PromotionID,
			})
		}
		if err := w.PutMatch(ctx, match); err != nil {
			return fmt.Errorf("match %s: %w", m.ID, err)
		}
	}

	for _, p := range c.Promotions {
		err := w.PutPromotion(ctx, venue.Promotion{
			ID:         p.ID,
			BarID:      p.BarID,
			MatchID:    p.MatchID,
			PriceCents: p.Price,
			Included:   p.Included,
		})
		if err != nil {
			return fmt.Errorf("promotion %s: %w", p.ID, err)
		}
	}
	return nil
}
