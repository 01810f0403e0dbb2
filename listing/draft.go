package listing

import (
	"strings"
	"time"

	"github.com/jrsteele09/rental-portal/api"
	perrors "github.com/jrsteele09/rental-portal/internal/errors"
)

// Step names one page of the create-listing wizard
type Step string

const (
	StepBasics   Step = "basics"
	StepLocation Step = "location"
	StepPricing  Step = "pricing"
	StepDetails  Step = "details"
	StepMedia    Step = "media"
	StepReview   Step = "review"
)

// Steps are the editable steps in wizard order
var Steps = []Step{StepBasics, StepLocation, StepPricing, StepDetails, StepMedia}

func ParseStep(s string) (Step, error) {
	for _, step := range Steps {
		if string(step) == s {
			return step, nil
		}
	}
	return "", perrors.Wrapf(perrors.ErrUnknownStep, "%q", s)
}

// Next returns the step after s, or StepReview after the last one
func (s Step) Next() Step {
	for i, step := range Steps {
		if step == s && i+1 < len(Steps) {
			return Steps[i+1]
		}
	}
	return StepReview
}

type Basics struct {
	Title        string `json:"title" validate:"required,max=120"`
	Description  string `json:"description" validate:"max=4000"`
	PropertyType string `json:"propertyType" validate:"required,oneof=apartment house room studio"`
	ListingType  string `json:"listingType" validate:"required,oneof=rent sale"`
}

type Location struct {
	Address  string `json:"address" validate:"required"`
	City     string `json:"city" validate:"required"`
	District string `json:"district" validate:"required"`
}

type Pricing struct {
	Price    float64 `json:"price" validate:"gt=0"`
	Currency string  `json:"currency" validate:"len=3"`
	Deposit  float64 `json:"deposit" validate:"gte=0"`
}

type Details struct {
	Bedrooms  int      `json:"bedrooms" validate:"gte=0"`
	Bathrooms int      `json:"bathrooms" validate:"gte=0"`
	Area      float64  `json:"area" validate:"gt=0"`
	Amenities []string `json:"amenities,omitempty" validate:"dive,required"`
}

type Media struct {
	Images []string `json:"images,omitempty" validate:"dive,url"`
}

// Draft is a listing being built across several requests. A nil section has not
// been submitted yet.
type Draft struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Step      Step      `json:"step"`
	Basics    *Basics   `json:"basics,omitempty"`
	Location  *Location `json:"location,omitempty"`
	Pricing   *Pricing  `json:"pricing,omitempty"`
	Details   *Details  `json:"details,omitempty"`
	Media     *Media    `json:"media,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Missing lists the steps whose sections have not been submitted
func (d *Draft) Missing() []Step {
	var missing []Step
	if d.Basics == nil {
		missing = append(missing, StepBasics)
	}
	if d.Location == nil {
		missing = append(missing, StepLocation)
	}
	if d.Pricing == nil {
		missing = append(missing, StepPricing)
	}
	if d.Details == nil {
		missing = append(missing, StepDetails)
	}
	if d.Media == nil {
		missing = append(missing, StepMedia)
	}
	return missing
}

// Complete checks that every section is present and still valid
func (d *Draft) Complete() error {
	if missing := d.Missing(); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, s := range missing {
			names[i] = string(s)
		}
		return perrors.Wrapf(perrors.ErrDraftIncomplete, "missing %s", strings.Join(names, ", "))
	}
	for _, section := range []any{d.Basics, d.Location, d.Pricing, d.Details, d.Media} {
		if fe := validateSection(section); len(fe) > 0 {
			return perrors.Wrapf(perrors.ErrDraftIncomplete, "%s", fe.Error())
		}
	}
	return nil
}

// ToListing builds the create request. Call Complete first.
func (d *Draft) ToListing() api.ListingInput {
	in := api.ListingInput{}
	if b := d.Basics; b != nil {
		in.Title, in.Description, in.PropertyType, in.ListingType = b.Title, b.Description, b.PropertyType, b.ListingType
	}
	if l := d.Location; l != nil {
		in.Address, in.City, in.District = l.Address, l.City, l.District
	}
	if p := d.Pricing; p != nil {
		in.Price, in.Currency, in.Deposit = p.Price, p.Currency, p.Deposit
	}
	if dt := d.Details; dt != nil {
		in.Bedrooms, in.Bathrooms, in.Area = dt.Bedrooms, dt.Bathrooms, dt.Area
		in.Amenities = append([]string(nil), dt.Amenities...)
	}
	if m := d.Media; m != nil {
		in.Images = append([]string(nil), m.Images...)
	}
	return in
}

// DescriptionRequest is the context handed to the content service for this draft
func (d *Draft) DescriptionRequest() api.DescriptionRequest {
	req := api.DescriptionRequest{}
	if b := d.Basics; b != nil {
		req.Title, req.PropertyType, req.ListingType = b.Title, b.PropertyType, b.ListingType
	}
	if l := d.Location; l != nil {
		req.City = l.City
	}
	if dt := d.Details; dt != nil {
		req.Bedrooms, req.Area, req.Amenities = dt.Bedrooms, dt.Area, dt.Amenities
	}
	return req
}
