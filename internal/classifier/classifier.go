// Package classifier infers structured notary attributes from free listing
// text using ordered keyword rules.
package classifier

import (
	"regexp"
	"strings"

	"github.com/7lsnyc/notaryfindernow2/internal/entity"
)

// Input is the free text known about a listing.
type Input struct {
	Name        string
	Description string
	Reviews     []string
}

// Text returns the lower-cased concatenation the rules run against.
func (in Input) Text() string {
	return strings.ToLower(in.Name + " " + in.Description + " " + strings.Join(in.Reviews, " "))
}

// ServiceRule sets one service flag when its pattern matches.
type ServiceRule struct {
	Label   string
	Pattern *regexp.Regexp
	set     func(*entity.ServiceTypes)
}

// Match reports whether the rule fires on already lower-cased text.
func (r ServiceRule) Match(text string) bool {
	return r.Pattern.MatchString(text)
}

// DiversityRule sets one diversity flag when its pattern matches.
type DiversityRule struct {
	Label   string
	Pattern *regexp.Regexp
	set     func(*entity.DiversityIndicators)
}

// Match reports whether the rule fires on already lower-cased text.
func (r DiversityRule) Match(text string) bool {
	return r.Pattern.MatchString(text)
}

// ServiceRules is evaluated in order; every matching rule contributes.
var ServiceRules = []ServiceRule{
	{
		Label:   "mobile",
		Pattern: regexp.MustCompile(`mobile|traveling|on-site|we come to you|travel to|come to your|house calls|drive to|go to your|at your location|at your home|at your office`),
		set:     func(s *entity.ServiceTypes) { s.IsMobile = true },
	},
	{
		Label:   "24_hour",
		Pattern: regexp.MustCompile(`24\s?-?\s?hour|available any time|after hours|overnight|weekend|anytime|24/7|all hours|emergency|late night|early morning|always available`),
		set:     func(s *entity.ServiceTypes) { s.Is24Hour = true },
	},
	{
		Label:   "remote",
		Pattern: regexp.MustCompile(`remote|online|virtual|zoom|electronic|e-notary|\bron\b|webcam|video|digital notary|e-sign`),
		set:     func(s *entity.ServiceTypes) { s.IsRemote = true },
	},
	{
		Label:   "free_consultation",
		Pattern: regexp.MustCompile(`free consultation|free estimate|no obligation|free quote|complimentary|free assessment`),
		set:     func(s *entity.ServiceTypes) { s.IsFreeInitialConsultation = true },
	},
	{
		Label:   "loan_signing",
		Pattern: regexp.MustCompile(`loan|mortgage|signing agent|\bnsa\b|title|escrow|closing|refinance|real estate|deed|settlement|lending|purchase|\brefi\b`),
		set:     func(s *entity.ServiceTypes) { s.OffersLoanSigning = true },
	},
	{
		Label:   "apostille",
		Pattern: regexp.MustCompile(`apostille|authentication|certification|embassy|international|secretary of state|foreign|legalization|consulate`),
		set:     func(s *entity.ServiceTypes) { s.OffersApostille = true },
	},
	{
		Label:   "real_estate",
		Pattern: regexp.MustCompile(`real estate|property|deed|title|mortgage|closing|settlement|home|house|purchase|sale|refinance|\brefi\b|commercial|residential`),
		set:     func(s *entity.ServiceTypes) { s.OffersRealEstate = true },
	},
	{
		Label:   "wedding",
		Pattern: regexp.MustCompile(`wedding|marriage|officiant|ceremony|vow|matrimony|civil union|domestic partnership`),
		set:     func(s *entity.ServiceTypes) { s.OffersWedding = true },
	},
}

// DiversityRules is evaluated in order; every matching rule contributes.
var DiversityRules = []DiversityRule{
	{
		Label:   "black_owned",
		Pattern: regexp.MustCompile(`black[\s-]?owned|african american[\s-]?owned|minority[\s-]?owned`),
		set:     func(d *entity.DiversityIndicators) { d.IsBlackOwned = true },
	},
	{
		Label:   "lgbtq_friendly",
		Pattern: regexp.MustCompile(`lgbtq?[\s-]?friendly|gay[\s-]?friendly|pride|rainbow|queer[\s-]?friendly`),
		set:     func(d *entity.DiversityIndicators) { d.IsLGBTQFriendly = true },
	},
	{
		Label:   "women_owned",
		Pattern: regexp.MustCompile(`wom[ae]n[\s-]?owned|female[\s-]?owned`),
		set:     func(d *entity.DiversityIndicators) { d.IsWomenOwned = true },
	},
}

// DetectServices returns the service flags for the listing. HasOnlineBooking
// is left false; it belongs to DetectBooking.
func DetectServices(in Input) entity.ServiceTypes {
	text := in.Text()
	var out entity.ServiceTypes
	for _, rule := range ServiceRules {
		if rule.Match(text) {
			rule.set(&out)
		}
	}
	return out
}

// DetectDiversity returns the diversity flags for the listing.
func DetectDiversity(in Input) entity.DiversityIndicators {
	text := in.Text()
	var out entity.DiversityIndicators
	for _, rule := range DiversityRules {
		if rule.Match(text) {
			rule.set(&out)
		}
	}
	return out
}
