package repository

import (
	"context"
	"fmt"
)

// CityCount is the number of notaries stored for a city.
type CityCount struct {
	City  string `json:"city"`
	State string `json:"state"`
	Count int    `json:"count"`
}

// StateCount is the number of notaries stored for a state.
type StateCount struct {
	State string `json:"state"`
	Count int    `json:"count"`
}

// CoverageReport summarises what the notaries table holds.
type CoverageReport struct {
	Total         int            `json:"total"`
	WithWebsite   int            `json:"with_website"`
	WithPhone     int            `json:"with_phone"`
	WithPhoto     int            `json:"with_photo"`
	TopCities     []CityCount    `json:"top_cities"`
	States        []StateCount   `json:"states"`
	ServiceCounts map[string]int `json:"service_counts"`
}

// Coverage aggregates totals, the busiest cities, the state distribution and
// how many notaries carry each service flag.
func (r *PGXNotariesRepository) Coverage(ctx context.Context, topCities int) (*CoverageReport, error) {
	if topCities <= 0 {
		topCities = 20
	}

	report := &CoverageReport{ServiceCounts: map[string]int{}}
	err := r.pool.QueryRow(ctx, `
        SELECT
            COUNT(*),
            COUNT(*) FILTER (WHERE website IS NOT NULL),
            COUNT(*) FILTER (WHERE phone IS NOT NULL),
            COUNT(*) FILTER (WHERE photo IS NOT NULL)
        FROM notaries
    `).Scan(&report.Total, &report.WithWebsite, &report.WithPhone, &report.WithPhoto)
	if err != nil {
		return nil, fmt.Errorf("count notaries: %w", err)
	}

	cityRows, err := r.pool.Query(ctx, `
        SELECT city, state, COUNT(*) AS total
        FROM notaries
        GROUP BY city, state
        ORDER BY total DESC, city ASC
        LIMIT $1
    `, topCities)
	if err != nil {
		return nil, fmt.Errorf("count notaries by city: %w", err)
	}
	for cityRows.Next() {
		var c CityCount
		if err := cityRows.Scan(&c.City, &c.State, &c.Count); err != nil {
			cityRows.Close()
			return nil, fmt.Errorf("scan city count: %w", err)
		}
		report.TopCities = append(report.TopCities, c)
	}
	cityRows.Close()
	if err := cityRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate city counts: %w", err)
	}

	stateRows, err := r.pool.Query(ctx, `
        SELECT state, COUNT(*) AS total
        FROM notaries
        GROUP BY state
        ORDER BY total DESC, state ASC
    `)
	if err != nil {
		return nil, fmt.Errorf("count notaries by state: %w", err)
	}
	for stateRows.Next() {
		var s StateCount
		if err := stateRows.Scan(&s.State, &s.Count); err != nil {
			stateRows.Close()
			return nil, fmt.Errorf("scan state count: %w", err)
		}
		report.States = append(report.States, s)
	}
	stateRows.Close()
	if err := stateRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate state counts: %w", err)
	}

	serviceRows, err := r.pool.Query(ctx, `
        SELECT flag.key, COUNT(*)
        FROM notaries, jsonb_each(notaries.service_types) AS flag
        WHERE flag.value = 'true'::jsonb
        GROUP BY flag.key
    `)
	if err != nil {
		return nil, fmt.Errorf("count service flags: %w", err)
	}
	defer serviceRows.Close()
	for serviceRows.Next() {
		var (
			key   string
			count int
		)
		if err := serviceRows.Scan(&key, &count); err != nil {
			return nil, fmt.Errorf("scan service count: %w", err)
		}
		report.ServiceCounts[key] = count
	}
	if err := serviceRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate service counts: %w", err)
	}

	return report, nil
}
