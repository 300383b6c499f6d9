package dto

// SearchFilters is the body form of a notary search. Nil fields take defaults.
type SearchFilters struct {
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
	Radius         *float64 `json:"radius,omitempty"`
	Rating         *float64 `json:"rating,omitempty"`
	Services       []string `json:"services,omitempty"`
	IsAvailableNow bool     `json:"is_available_now,omitempty"`
	OnlineBooking  bool     `json:"online_booking,omitempty"`
	Limit          *int     `json:"limit,omitempty"`
	Offset         *int     `json:"offset,omitempty"`
}

// SearchRequest wraps filters for POST /notaries/search.
type SearchRequest struct {
	Filters SearchFilters `json:"filters"`
}
