package places

import (
	"context"
	"fmt"
	"log"

	placesapi "google.golang.org/api/places/v1"
)

const (
	// BiasRadiusMeters is the radius of the location bias circle.
	BiasRadiusMeters = 40000.0
	// MaxResultCount caps results per text query.
	MaxResultCount = 20

	searchFieldMask = "places.id,places.displayName,places.formattedAddress,places.location,places.primaryType,places.rating,places.userRatingCount,places.photos"
)

// LatLng is a coordinate pair in degrees.
type LatLng struct {
	Latitude  float64
	Longitude float64
}

// Place is a text search hit.
type Place struct {
	ID               string
	Name             string
	FormattedAddress string
	Location         LatLng
	PrimaryType      string
	Rating           float64
	UserRatingCount  int
	PhotoNames       []string
}

// QueryVariants returns the text queries issued for a city, in order.
func QueryVariants(city string) []string {
	return []string{
		fmt.Sprintf("notary public in %s", city),
		fmt.Sprintf("notary services %s", city),
		fmt.Sprintf("mobile notary %s", city),
		fmt.Sprintf("notary %s", city),
	}
}

// SearchText runs a single text query biased to center.
func (c *Client) SearchText(ctx context.Context, query string, center LatLng) ([]Place, error) {
	req := &placesapi.GoogleMapsPlacesV1SearchTextRequest{
		TextQuery:      query,
		LanguageCode:   "en",
		MaxResultCount: MaxResultCount,
		LocationBias: &placesapi.GoogleMapsPlacesV1SearchTextRequestLocationBias{
			Circle: &placesapi.GoogleMapsPlacesV1Circle{
				Center: &placesapi.GoogleTypeLatLng{
					Latitude:        center.Latitude,
					Longitude:       center.Longitude,
					ForceSendFields: []string{"Latitude", "Longitude"},
				},
				Radius: BiasRadiusMeters,
			},
		},
	}

	var resp *placesapi.GoogleMapsPlacesV1SearchTextResponse
	err := c.retry.Do(ctx, "search_text", func(ctx context.Context) error {
		call := c.svc.Places.SearchText(req).Context(ctx)
		call.Header().Set(fieldMaskHeader, searchFieldMask)
		r, err := call.Do()
		if err != nil {
			return err
		}
		resp = r
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("search text %q: %w", query, err)
	}

	out := make([]Place, 0, len(resp.Places))
	for _, p := range resp.Places {
		if p == nil || p.Id == "" {
			continue
		}
		out = append(out, placeFromAPI(p))
	}
	return out, nil
}

// SearchCity runs every query variant for city and merges the hits by place
// id in first-seen order. A failed query is logged and contributes nothing;
// the result is therefore not guaranteed to be complete. The only error
// returned is ctx cancellation, alongside whatever was collected.
func (c *Client) SearchCity(ctx context.Context, city string, center *LatLng) ([]Place, error) {
	var bias LatLng
	if center != nil {
		bias = *center
	}

	seen := make(map[string]struct{})
	var merged []Place
	queries := QueryVariants(city)
	for i, query := range queries {
		found, err := c.SearchText(ctx, query, bias)
		if err != nil {
			if ctx.Err() != nil {
				return merged, ctx.Err()
			}
			log.Printf("place search failed city=%q query=%q error=%q", city, query, describeError(err))
		}
		for _, p := range found {
			if _, ok := seen[p.ID]; ok {
				continue
			}
			seen[p.ID] = struct{}{}
			merged = append(merged, p)
		}

		if i < len(queries)-1 {
			if err := Wait(ctx, c.queryDelay); err != nil {
				return merged, err
			}
		}
	}

	log.Printf("place search complete city=%q unique=%d", city, len(merged))
	return merged, nil
}

func placeFromAPI(p *placesapi.GoogleMapsPlacesV1Place) Place {
	out := Place{
		ID:               p.Id,
		FormattedAddress: p.FormattedAddress,
		PrimaryType:      p.PrimaryType,
		Rating:           p.Rating,
		UserRatingCount:  int(p.UserRatingCount),
	}
	if p.DisplayName != nil {
		out.Name = p.DisplayName.Text
	}
	if p.Location != nil {
		out.Location = LatLng{Latitude: p.Location.Latitude, Longitude: p.Location.Longitude}
	}
	for _, photo := range p.Photos {
		if photo != nil && photo.Name != "" {
			out.PhotoNames = append(out.PhotoNames, photo.Name)
		}
	}
	return out
}
