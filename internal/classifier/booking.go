package classifier

import (
	"regexp"
	"strings"

	"github.com/7lsnyc/notaryfindernow2/internal/entity"
)

// Platform pairs a scheduling platform name with the website pattern that identifies it.
type Platform struct {
	Name    string
	Pattern *regexp.Regexp
}

// Platforms is checked in order against the website; the first match wins.
var Platforms = []Platform{
	{Name: "Calendly", Pattern: regexp.MustCompile(`calendly\.com`)},
	{Name: "Acuity", Pattern: regexp.MustCompile(`acuityscheduling\.com`)},
	{Name: "Square", Pattern: regexp.MustCompile(`square\.site|squareup\.com`)},
	{Name: "Booksy", Pattern: regexp.MustCompile(`booksy\.com`)},
	{Name: "Vagaro", Pattern: regexp.MustCompile(`vagaro\.com`)},
	{Name: "SimplyBook", Pattern: regexp.MustCompile(`simplybook\.me`)},
	{Name: "Schedulicity", Pattern: regexp.MustCompile(`schedulicity\.com`)},
	{Name: "Setmore", Pattern: regexp.MustCompile(`setmore\.com`)},
	{Name: "YouCanBookMe", Pattern: regexp.MustCompile(`youcanbook\.me`)},
	{Name: "Booking Page", Pattern: regexp.MustCompile(`booking|schedule|appointment|reserve`)},
	{Name: "GigaSmart", Pattern: regexp.MustCompile(`gigasmart\.com`)},
	{Name: "Notary.net", Pattern: regexp.MustCompile(`notary\.net`)},
	{Name: "Notarize", Pattern: regexp.MustCompile(`notarize\.com`)},
}

var bookingKeywords = regexp.MustCompile(`book online|schedule online|book now|schedule appointment|book appointment|schedule now|online booking|online scheduling|book a notary|schedule a notary|reserve appointment|book your appointment|schedule your notary|instant booking|easy scheduling`)

// BookingResult is the outcome of booking detection.
type BookingResult struct {
	HasOnlineBooking bool
	Info             entity.BookingInfo
}

// DetectBooking looks for a known scheduling platform in the website first and
// falls back to generic booking phrases in the listing text. Only a platform
// match records a platform name and URL.
func DetectBooking(in Input, website string) BookingResult {
	lowered := strings.ToLower(website)
	if lowered != "" {
		for _, p := range Platforms {
			if p.Pattern.MatchString(lowered) {
				return BookingResult{
					HasOnlineBooking: true,
					Info:             entity.BookingInfo{BookingURL: website, BookingPlatform: p.Name},
				}
			}
		}
	}

	if bookingKeywords.MatchString(in.Text()) {
		return BookingResult{HasOnlineBooking: true}
	}
	return BookingResult{}
}
