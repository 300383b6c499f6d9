package dto

// FeaturedRequestInput is a business owner's featured placement request.
type FeaturedRequestInput struct {
	NotaryID       string `json:"notaryId"`
	RequesterID    string `json:"requesterId"`
	RequesterEmail string `json:"requesterEmail"`
	RequesterPhone string `json:"requesterPhone"`
	Message        string `json:"message"`
}

// ClaimRequest asks support to hand a listing over to its owner.
type ClaimRequest struct {
	NotaryID      string `json:"notaryId"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	LicenseNumber string `json:"licenseNumber"`
	Message       string `json:"message"`
}
