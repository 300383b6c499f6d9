package places

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	placesapi "google.golang.org/api/places/v1"
)

const (
	// DetailFieldMask selects the fields requested for a place detail.
	DetailFieldMask = "id,displayName.text,formattedAddress,location.latitude,location.longitude,rating,userRatingCount,websiteUri,internationalPhoneNumber,currentOpeningHours.openNow,regularOpeningHours.periods,businessStatus,primaryType,reviews,photos.name,editorialSummary"

	photoMaxHeightPx = 400
	photoMaxWidthPx  = 600
)

// Review is a single place review.
type Review struct {
	Author       string
	Rating       float64
	Text         string
	RelativeTime string
}

// Photo is a resolved photo url with its attribution.
type Photo struct {
	URL         string
	Attribution string
}

// PlaceDetail extends Place with the detail fields.
type PlaceDetail struct {
	Place
	Phone            string
	Website          string
	OpenNow          bool
	OpeningPeriods   json.RawMessage
	BusinessStatus   string
	EditorialSummary string
	Reviews          []Review
	Photo            *Photo

	// Raw is the detail response as returned by the API.
	Raw json.RawMessage
}

// FetchDetail returns the detail for placeID, or nil when the detail request
// fails. A failed photo lookup only drops the photo.
func (c *Client) FetchDetail(ctx context.Context, placeID string) *PlaceDetail {
	var place *placesapi.GoogleMapsPlacesV1Place
	err := c.retry.Do(ctx, "get_place", func(ctx context.Context) error {
		call := c.svc.Places.Get("places/" + placeID).LanguageCode("en").Context(ctx)
		call.Header().Set(fieldMaskHeader, DetailFieldMask)
		p, err := call.Do()
		if err != nil {
			return err
		}
		place = p
		return nil
	})
	if err != nil {
		log.Printf("place detail failed place_id=%s error=%q", placeID, describeError(err))
		return nil
	}

	detail := detailFromAPI(place)
	if detail.ID == "" {
		detail.ID = placeID
	}

	if len(place.Photos) > 0 && place.Photos[0] != nil && place.Photos[0].Name != "" {
		photo, err := c.resolvePhoto(ctx, place.Photos[0])
		if err != nil {
			log.Printf("place photo failed place_id=%s error=%q", placeID, describeError(err))
		} else {
			detail.Photo = photo
		}
	}

	return detail
}

func (c *Client) resolvePhoto(ctx context.Context, photo *placesapi.GoogleMapsPlacesV1Photo) (*Photo, error) {
	var media *placesapi.GoogleMapsPlacesV1PhotoMedia
	err := c.retry.Do(ctx, "get_photo_media", func(ctx context.Context) error {
		m, err := c.svc.Places.Photos.GetMedia(photo.Name + "/media").
			MaxHeightPx(photoMaxHeightPx).
			MaxWidthPx(photoMaxWidthPx).
			SkipHttpRedirect(true).
			Context(ctx).
			Do()
		if err != nil {
			return err
		}
		media = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	if media.PhotoUri == "" {
		return nil, fmt.Errorf("photo %s: empty photo uri", photo.Name)
	}

	out := &Photo{URL: media.PhotoUri}
	if len(photo.AuthorAttributions) > 0 && photo.AuthorAttributions[0] != nil {
		out.Attribution = photo.AuthorAttributions[0].DisplayName
	}
	return out, nil
}

func detailFromAPI(p *placesapi.GoogleMapsPlacesV1Place) *PlaceDetail {
	detail := &PlaceDetail{
		Place:          placeFromAPI(p),
		Phone:          p.InternationalPhoneNumber,
		Website:        p.WebsiteUri,
		BusinessStatus: p.BusinessStatus,
	}
	if p.CurrentOpeningHours != nil {
		detail.OpenNow = p.CurrentOpeningHours.OpenNow
	}
	if p.RegularOpeningHours != nil && len(p.RegularOpeningHours.Periods) > 0 {
		if periods, err := json.Marshal(p.RegularOpeningHours.Periods); err == nil {
			detail.OpeningPeriods = periods
		}
	}
	if p.EditorialSummary != nil {
		detail.EditorialSummary = p.EditorialSummary.Text
	}
	for _, r := range p.Reviews {
		if r == nil {
			continue
		}
		review := Review{Rating: r.Rating, RelativeTime: r.RelativePublishTimeDescription}
		if r.AuthorAttribution != nil {
			review.Author = r.AuthorAttribution.DisplayName
		}
		if r.Text != nil {
			review.Text = r.Text.Text
		}
		detail.Reviews = append(detail.Reviews, review)
	}
	if raw, err := json.Marshal(p); err == nil {
		detail.Raw = raw
	}
	return detail
}
