package dto

// CreateBookingRequest is the public booking form payload.
type CreateBookingRequest struct {
	NotaryID    string `json:"notaryId"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Service     string `json:"service"`
	ClientName  string `json:"clientName"`
	ClientEmail string `json:"clientEmail"`
	ClientPhone string `json:"clientPhone"`
	Location    string `json:"location"`
	Notes       string `json:"notes"`
}

// UpdateStatusRequest changes the status of a booking or featured request.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}
