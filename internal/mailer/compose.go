package mailer

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/7lsnyc/notaryfindernow2/internal/entity"
)

//go:embed templates/*.html
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	"date":  formatDate,
	"deref": deref,
	"phone": phoneLink,
}

var dialablePhone = regexp.MustCompile(`^\+?[0-9][0-9 ().-]{2,24}$`)

var (
	bookingConfirmationTmpl = parseTemplate("booking_confirmation.html")
	bookingNotificationTmpl = parseTemplate("booking_notification.html")
	claimNotificationTmpl   = parseTemplate("claim_notification.html")
)

func parseTemplate(name string) *template.Template {
	return template.Must(template.New(name).Funcs(templateFuncs).ParseFS(templateFS, "templates/layout.html", "templates/"+name))
}

// Claim is an owner's request to take over a listing.
type Claim struct {
	NotaryID      uuid.UUID
	ListingName   string
	ClaimantName  string
	ClaimantEmail string
	ClaimantPhone string
	LicenseNumber string
	Message       string
}

// Composer renders the outbound emails of the directory.
type Composer struct {
	From    string
	Support string
	Now     func() time.Time
}

// NewComposer builds a composer sending from the given address.
func NewComposer(from, support string) *Composer {
	return &Composer{From: from, Support: support, Now: time.Now}
}

type pageData struct {
	Title   string
	Year    int
	Booking *entity.Booking
	Notary  *entity.Notary
	Claim   *Claim
}

// BookingConfirmation is sent to the client after a booking request is stored.
func (c *Composer) BookingConfirmation(b *entity.Booking, notary *entity.Notary) (Message, error) {
	html, err := c.render(bookingConfirmationTmpl, pageData{Title: "Booking Confirmation", Booking: b, Notary: notary})
	if err != nil {
		return Message{}, err
	}
	return Message{
		From:    c.From,
		To:      []string{b.ClientEmail},
		Subject: "Booking Confirmation - NotaryFinderNow",
		HTML:    html,
	}, nil
}

// BookingNotification tells the notary about a new request. The notary must have an email on file.
func (c *Composer) BookingNotification(b *entity.Booking, notary *entity.Notary) (Message, error) {
	if notary == nil || notary.Email == nil || *notary.Email == "" {
		return Message{}, fmt.Errorf("notary has no email on file")
	}
	html, err := c.render(bookingNotificationTmpl, pageData{Title: "New Booking Request", Booking: b, Notary: notary})
	if err != nil {
		return Message{}, err
	}
	return Message{
		From:    c.From,
		To:      []string{*notary.Email},
		Subject: "New Booking Request - NotaryFinderNow",
		HTML:    html,
	}, nil
}

// ClaimNotification is sent to the support inbox.
func (c *Composer) ClaimNotification(claim *Claim) (Message, error) {
	html, err := c.render(claimNotificationTmpl, pageData{Title: "New Listing Claim", Claim: claim})
	if err != nil {
		return Message{}, err
	}
	return Message{
		From:    c.From,
		To:      []string{c.Support},
		Subject: "New Listing Claim - " + claim.ListingName,
		HTML:    html,
	}, nil
}

func (c *Composer) render(tmpl *template.Template, data pageData) (string, error) {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	data.Year = now().Year()

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return "", fmt.Errorf("render %s: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}

// formatDate renders YYYY-MM-DD as M/D/YYYY and leaves anything else as is.
func formatDate(value string) string {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return value
	}
	return t.Format("1/2/2006")
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

// phoneLink renders a dialable number as a tel: link. Anything else is escaped text.
func phoneLink(value string) template.HTML {
	value = strings.TrimSpace(value)
	if !dialablePhone.MatchString(value) {
		return template.HTML(template.HTMLEscapeString(value))
	}
	dial := strings.Map(func(r rune) rune {
		if r == '+' || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, value)
	return template.HTML(`<a href="tel:` + dial + `">` + value + `</a>`)
}
