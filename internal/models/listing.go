package models

import (
	"time"

	"github.com/nyaruka/phonenumbers"
	"github.com/postad/postad-api/internal/adform"
	"github.com/postad/postad-api/pkg/slug"
)

// phoneRegion is the default region for numbers entered without a country code
const phoneRegion = "IN"

// Listing is the completed record handed to the publisher after an
// accepted submit
type Listing struct {
	ID           string    `json:"id"`
	DraftID      string    `json:"draftId"`
	Slug         string    `json:"slug"`
	SubmittedAt  time.Time `json:"submittedAt"`
	Category     string    `json:"category"`
	Brand        string    `json:"brand"`
	Model        string    `json:"model"`
	Variant      string    `json:"variant"`
	Year         int64     `json:"year"`
	Fuel         string    `json:"fuel"`
	Transmission string    `json:"transmission"`
	KmDriven     int64     `json:"kmDriven"`
	Owners       string    `json:"owners"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Price        int64     `json:"price"`
	Cover        string    `json:"cover"`
	Images       []string  `json:"images"`
	Country      string    `json:"country"`
	Region       string    `json:"region"`
	City         string    `json:"city"`
	Seller       Seller    `json:"seller"`
}

// Seller is the contact part of a listing
type Seller struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	PhoneDisplay string `json:"phoneDisplay"`
	ProfileImage string `json:"profileImage,omitempty"`
}

// NewListing builds a listing from an accepted draft. Numbers are read the
// same way validation read them; Images keeps filled slots in slot order.
func NewListing(id, draftID string, d adform.Draft, at time.Time) *Listing {
	year, _ := adform.ParseLeadingInt(d.Year)
	km, _ := adform.ParseLeadingInt(d.KmDriven)
	price, _ := adform.ParseLeadingInt(d.Price)

	images := make([]string, 0, d.ImageCount())
	for _, img := range d.Images {
		if img != "" {
			images = append(images, img)
		}
	}

	phone, display := FormatPhone(d.Phone)

	return &Listing{
		ID:           id,
		DraftID:      draftID,
		Slug:         slug.ForListing(id, d.Brand, d.Model, d.Title),
		SubmittedAt:  at.UTC(),
		Category:     d.Category,
		Brand:        d.Brand,
		Model:        d.Model,
		Variant:      d.Variant,
		Year:         year,
		Fuel:         d.Fuel,
		Transmission: d.Transmission,
		KmDriven:     km,
		Owners:       d.Owners,
		Title:        d.Title,
		Description:  d.Description,
		Price:        price,
		Cover:        d.Cover(),
		Images:       images,
		Country:      d.Country,
		Region:       d.Region,
		City:         d.City,
		Seller: Seller{
			Name:         d.Name,
			Phone:        phone,
			PhoneDisplay: display,
			ProfileImage: d.ProfileImage,
		},
	}
}

// FormatPhone returns the E.164 and international display forms of a
// number. Numbers libphonenumber cannot parse come back unchanged in both.
func FormatPhone(raw string) (string, string) {
	num, err := phonenumbers.Parse(raw, phoneRegion)
	if err != nil {
		return raw, raw
	}
	return phonenumbers.Format(num, phonenumbers.E164), phonenumbers.Format(num, phonenumbers.INTERNATIONAL)
}
