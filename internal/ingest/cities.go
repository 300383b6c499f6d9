package ingest

import (
	"strings"

	"github.com/7lsnyc/notaryfindernow2/internal/places"
)

// DefaultCities is the ingestion target list in run order.
var DefaultCities = []string{
	"New York, NY",
	"Los Angeles, CA",
	"Chicago, IL",
	"Houston, TX",
	"Phoenix, AZ",
	"Philadelphia, PA",
	"San Antonio, TX",
	"San Diego, CA",
	"Dallas, TX",
	"San Jose, CA",
	"Austin, TX",
	"Jacksonville, FL",
	"Fort Worth, TX",
	"Columbus, OH",
	"San Francisco, CA",
	"Charlotte, NC",
	"Indianapolis, IN",
	"Seattle, WA",
	"Denver, CO",
	"Boston, MA",
	"Pittsburgh, PA",
	"Harrisburg, PA",
	"Allentown, PA",
	"Erie, PA",
	"Scranton, PA",
	"Reading, PA",
	"Tulsa, OK",
	"Norman, OK",
	"Broken Arrow, OK",
	"Edmond, OK",
	"Lawton, OK",
	"Richmond, VA",
	"Virginia Beach, VA",
	"Norfolk, VA",
	"Chesapeake, VA",
	"Arlington, VA",
	"Alexandria, VA",
	"Salt Lake City, UT",
	"West Valley City, UT",
	"Provo, UT",
	"West Jordan, UT",
	"Orem, UT",
	"Reno, NV",
	"Henderson, NV",
	"Sparks, NV",
	"Wichita, KS",
	"Overland Park, KS",
	"Kansas City, KS",
	"Omaha, NE",
	"Lincoln, NE",
	"Bellevue, NE",
	"Des Moines, IA",
	"Cedar Rapids, IA",
	"Davenport, IA",
	"Sioux Falls, SD",
	"Rapid City, SD",
	"Fargo, ND",
	"Bismarck, ND",
	"Billings, MT",
	"Missoula, MT",
	"Boise, ID",
	"Meridian, ID",
	"Anchorage, AK",
	"Fairbanks, AK",
	"Honolulu, HI",
	"Pearl City, HI",
	"Worcester, MA",
	"Springfield, MA",
	"Providence, RI",
	"Warwick, RI",
	"Bridgeport, CT",
	"New Haven, CT",
	"Buffalo, NY",
	"Rochester, NY",
	"Syracuse, NY",
	"Newark, NJ",
	"Jersey City, NJ",
	"Wilmington, DE",
	"Dover, DE",
	"Baltimore, MD",
	"Annapolis, MD",
	"Charleston, WV",
	"Huntington, WV",
	"Durham, NC",
	"Greensboro, NC",
	"Columbia, SC",
	"Charleston, SC",
	"Augusta, GA",
	"Savannah, GA",
	"Mobile, AL",
	"Montgomery, AL",
	"Jackson, MS",
	"Gulfport, MS",
	"Baton Rouge, LA",
	"Shreveport, LA",
	"Little Rock, AR",
	"Fort Smith, AR",
	"Springfield, MO",
	"Independence, MO",
	"Topeka, KS",
	"Grand Rapids, MI",
	"Warren, MI",
	"Fort Wayne, IN",
	"Evansville, IN",
	"Dayton, OH",
	"Toledo, OH",
	"Madison, WI",
	"Green Bay, WI",
	"St. Paul, MN",
	"Rochester, MN",
	"Aberdeen, SD",
	"Grand Forks, ND",
	"Great Falls, MT",
	"Idaho Falls, ID",
	"Spokane, WA",
	"Tacoma, WA",
	"Eugene, OR",
	"Salem, OR",
	"Oakland, CA",
	"Bakersfield, CA",
	"Tucson, AZ",
	"Mesa, AZ",
	"Colorado Springs, CO",
	"Aurora, CO",
	"Santa Fe, NM",
	"Las Cruces, NM",
}

// CityCoordinates holds the location bias centers for cities with known coordinates.
var CityCoordinates = map[string]places.LatLng{
	"New York, NY":     {Latitude: 40.7128, Longitude: -74.006},
	"Los Angeles, CA":  {Latitude: 34.0522, Longitude: -118.2437},
	"Chicago, IL":      {Latitude: 41.8781, Longitude: -87.6298},
	"Houston, TX":      {Latitude: 29.7604, Longitude: -95.3698},
	"Phoenix, AZ":      {Latitude: 33.4484, Longitude: -112.074},
	"Philadelphia, PA": {Latitude: 39.9526, Longitude: -75.1652},
	"San Antonio, TX":  {Latitude: 29.4241, Longitude: -98.4936},
	"San Diego, CA":    {Latitude: 32.7157, Longitude: -117.1611},
	"Dallas, TX":       {Latitude: 32.7767, Longitude: -96.797},
	"San Jose, CA":     {Latitude: 37.3382, Longitude: -121.8863},
}

// ParseCities splits a list of "City, ST" entries separated by semicolons or
// newlines, dropping blanks and repeats while keeping order.
func ParseCities(value string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	var raw []string
	for _, line := range strings.Split(value, "\n") {
		for _, part := range strings.Split(line, ";") {
			if part = strings.TrimSpace(part); part != "" {
				raw = append(raw, part)
			}
		}
	}
	return uniqueCities(raw)
}

func uniqueCities(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, city := range in {
		if _, ok := seen[city]; ok {
			continue
		}
		seen[city] = struct{}{}
		out = append(out, city)
	}
	return out
}
