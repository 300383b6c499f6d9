// Package ingest runs the city by city import of notary listings from the
// Places API into the notaries table.
package ingest

import (
	"context"
	"log"
	"time"

	"github.com/7lsnyc/notaryfindernow2/internal/places"
)

// PlaceSource searches places and fetches their details.
type PlaceSource interface {
	SearchCity(ctx context.Context, city string, center *places.LatLng) ([]places.Place, error)
	FetchDetail(ctx context.Context, placeID string) *places.PlaceDetail
}

// Archiver keeps a copy of the raw place detail.
type Archiver interface {
	Put(ctx context.Context, city string, detail *places.PlaceDetail) error
}

// Options configures a Pipeline.
type Options struct {
	Archive     Archiver
	Coordinates map[string]places.LatLng
	CityDelay   time.Duration
	Now         func() time.Time
}

// Pipeline processes cities, queries and places strictly one at a time.
type Pipeline struct {
	source    PlaceSource
	assembler *Assembler
	writer    *Writer
	archive   Archiver
	coords    map[string]places.LatLng
	cityDelay time.Duration
}

func NewPipeline(source PlaceSource, store NotaryStore, opts Options) *Pipeline {
	coords := opts.Coordinates
	if coords == nil {
		coords = CityCoordinates
	}
	return &Pipeline{
		source:    source,
		assembler: NewAssembler(opts.Now),
		writer:    NewWriter(store),
		archive:   opts.Archive,
		coords:    coords,
		cityDelay: opts.CityDelay,
	}
}

// Summary reports what a run did.
type Summary struct {
	Cities      int
	Places      int
	Saved       int
	Skipped     int
	Failed      int
	CityCounts  map[string]int
	EmptyCities []string
}

// Run ingests each city in order. Record level failures are counted and
// logged; only ctx cancellation stops the run early.
func (p *Pipeline) Run(ctx context.Context, cities []string) (Summary, error) {
	summary := Summary{CityCounts: make(map[string]int, len(cities))}

	for i, city := range cities {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		summary.Cities++
		summary.CityCounts[city] = 0

		var center *places.LatLng
		if c, ok := p.coords[city]; ok {
			center = &c
		}

		found, err := p.source.SearchCity(ctx, city, center)
		if err != nil {
			return summary, err
		}
		if len(found) == 0 {
			log.Printf("no notaries found city=%q", city)
			summary.EmptyCities = append(summary.EmptyCities, city)
		}

		for _, place := range found {
			if err := ctx.Err(); err != nil {
				return summary, err
			}
			summary.Places++
			p.ingestPlace(ctx, city, place, &summary)
		}

		if i < len(cities)-1 {
			if err := places.Wait(ctx, p.cityDelay); err != nil {
				return summary, err
			}
		}
	}

	return summary, nil
}

func (p *Pipeline) ingestPlace(ctx context.Context, city string, place places.Place, summary *Summary) {
	detail := p.source.FetchDetail(ctx, place.ID)
	if detail == nil {
		summary.Skipped++
		return
	}

	if p.archive != nil {
		if err := p.archive.Put(ctx, city, detail); err != nil {
			log.Printf("archive place failed place_id=%s error=%v", detail.ID, err)
		}
	}

	record := p.assembler.Assemble(detail)
	if !p.writer.Write(ctx, record) {
		summary.Failed++
		return
	}
	summary.Saved++
	summary.CityCounts[city]++
}

var majorCities = []string{"New York, NY", "Los Angeles, CA", "Houston, TX", "Chicago, IL", "Miami, FL"}

// Log prints the per city counts for the major markets and the run totals.
func (s Summary) Log() {
	for _, city := range majorCities {
		if count, ok := s.CityCounts[city]; ok {
			log.Printf("city summary city=%q saved=%d", city, count)
		}
	}
	log.Printf("ingest complete cities=%d places=%d saved=%d skipped=%d failed=%d empty_cities=%d",
		s.Cities, s.Places, s.Saved, s.Skipped, s.Failed, len(s.EmptyCities))
}
