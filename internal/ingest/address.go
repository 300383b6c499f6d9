package ingest

import "strings"

// ParseCityState derives city and state from a formatted address such as
// "123 Main St, Springfield, IL 62704, USA". The state is the first token of
// the second to last segment and the city is the third to last segment.
// Missing segments yield empty values; addresses with unit or suite segments
// or no country suffix are misparsed.
func ParseCityState(address string) (city, state string) {
	parts := strings.Split(address, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	if n := len(parts); n >= 2 {
		if fields := strings.Split(parts[n-2], " "); len(fields) > 0 {
			state = fields[0]
		}
	}
	if n := len(parts); n >= 3 {
		city = parts[n-3]
	}
	return city, state
}
