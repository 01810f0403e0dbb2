package listing_test

import (
	"net/url"
	"testing"

	perrors "github.com/jrsteele09/rental-portal/internal/errors"
	"github.com/jrsteele09/rental-portal/listing"
	"github.com/stretchr/testify/require"
)

func basicsForm() url.Values {
	return url.Values{"title": {"Sunny flat"}, "propertyType": {"apartment"}, "listingType": {"rent"}}
}

func completeDraft(t *testing.T) *listing.Draft {
	t.Helper()
	d := &listing.Draft{ID: "d1", OwnerID: "u1", Step: listing.StepBasics}
	require.Empty(t, d.SetSection(listing.StepBasics, basicsForm()))
	require.Empty(t, d.SetSection(listing.StepLocation, url.Values{"address": {"1 Main St"}, "city": {"Tbilisi"}, "district": {"Vake"}}))
	require.Empty(t, d.SetSection(listing.StepPricing, url.Values{"price": {"850"}, "currency": {"usd"}, "deposit": {"850"}}))
	require.Empty(t, d.SetSection(listing.StepDetails, url.Values{"bedrooms": {"2"}, "bathrooms": {"1"}, "area": {"64.5"}, "amenities": {"balcony, parking"}}))
	require.Empty(t, d.SetSection(listing.StepMedia, url.Values{"images": {"https://img.example.com/1.jpg\nhttps://img.example.com/2.jpg"}}))
	return d
}

func TestParseStep(t *testing.T) {
	step, err := listing.ParseStep("pricing")
	require.NoError(t, err)
	require.Equal(t, listing.StepPricing, step)

	_, err = listing.ParseStep("payment")
	require.ErrorIs(t, err, perrors.ErrUnknownStep)

	require.Equal(t, listing.StepLocation, listing.StepBasics.Next())
	require.Equal(t, listing.StepReview, listing.StepMedia.Next())
}

func TestSetSectionAdvancesStep(t *testing.T) {
	d := &listing.Draft{Step: listing.StepBasics}
	require.Empty(t, d.SetSection(listing.StepBasics, basicsForm()))
	require.Equal(t, listing.StepLocation, d.Step)
	require.Equal(t, "Sunny flat", d.Basics.Title)

	// revisiting an earlier step does not move the cursor back
	require.Empty(t, d.SetSection(listing.StepBasics, basicsForm()))
	require.Equal(t, listing.StepLocation, d.Step)
}

func TestSetSectionFieldErrors(t *testing.T) {
	tests := []struct {
		name  string
		step  listing.Step
		form  url.Values
		field string
	}{
		{"missing title", listing.StepBasics, url.Values{"propertyType": {"house"}, "listingType": {"sale"}}, "title"},
		{"unknown property type", listing.StepBasics, url.Values{"title": {"x"}, "propertyType": {"castle"}, "listingType": {"sale"}}, "propertyType"},
		{"missing district", listing.StepLocation, url.Values{"address": {"a"}, "city": {"b"}}, "district"},
		{"zero price", listing.StepPricing, url.Values{"price": {"0"}, "currency": {"USD"}}, "price"},
		{"price not a number", listing.StepPricing, url.Values{"price": {"lots"}, "currency": {"USD"}}, "price"},
		{"infinite price", listing.StepPricing, url.Values{"price": {"Inf"}, "currency": {"USD"}}, "price"},
		{"nan deposit", listing.StepPricing, url.Values{"price": {"10"}, "currency": {"USD"}, "deposit": {"NaN"}}, "deposit"},
		{"infinite area", listing.StepDetails, url.Values{"bedrooms": {"1"}, "area": {"+Infinity"}}, "area"},
		{"bad currency", listing.StepPricing, url.Values{"price": {"10"}, "currency": {"DOLLARS"}}, "currency"},
		{"negative deposit", listing.StepPricing, url.Values{"price": {"10"}, "currency": {"USD"}, "deposit": {"-1"}}, "deposit"},
		{"zero area", listing.StepDetails, url.Values{"bedrooms": {"1"}}, "area"},
		{"fractional bedrooms", listing.StepDetails, url.Values{"bedrooms": {"1.5"}, "area": {"10"}}, "bedrooms"},
		{"bad image url", listing.StepMedia, url.Values{"images": {"https://ok.example.com/a.jpg", "not a url"}}, "images[1]"},
		{"unknown step", listing.Step("payment"), url.Values{}, "step"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &listing.Draft{Step: listing.StepBasics}
			fe := d.SetSection(tt.step, tt.form)
			require.Contains(t, fe, tt.field)
			require.Equal(t, listing.StepBasics, d.Step)
			require.Nil(t, d.Basics)
			require.Nil(t, d.Pricing)
		})
	}
}

func TestCompleteReportsMissingSections(t *testing.T) {
	d := &listing.Draft{}
	require.Empty(t, d.SetSection(listing.StepBasics, basicsForm()))

	err := d.Complete()
	require.ErrorIs(t, err, perrors.ErrDraftIncomplete)
	require.Contains(t, err.Error(), "location")
	require.Equal(t, []listing.Step{listing.StepLocation, listing.StepPricing, listing.StepDetails, listing.StepMedia}, d.Missing())
}

func TestToListing(t *testing.T) {
	d := completeDraft(t)
	require.NoError(t, d.Complete())
	require.Equal(t, listing.StepReview, d.Step)

	in := d.ToListing()
	require.Equal(t, "Sunny flat", in.Title)
	require.Equal(t, "Vake", in.District)
	require.Equal(t, 850.0, in.Price)
	require.Equal(t, "USD", in.Currency)
	require.Equal(t, 64.5, in.Area)
	require.Equal(t, []string{"balcony", "parking"}, in.Amenities)
	require.Len(t, in.Images, 2)

	req := d.DescriptionRequest()
	require.Equal(t, "Tbilisi", req.City)
	require.Equal(t, 2, req.Bedrooms)
}

func TestValuesPrefillsForm(t *testing.T) {
	d := completeDraft(t)

	pricing := d.Values(listing.StepPricing)
	require.Equal(t, "850", pricing.Get("price"))
	require.Equal(t, "USD", pricing.Get("currency"))

	// resubmitting the prefilled form leaves the section unchanged
	before := *d.Details
	require.Empty(t, d.SetSection(listing.StepDetails, d.Values(listing.StepDetails)))
	require.Equal(t, before, *d.Details)

	require.Empty(t, (&listing.Draft{}).Values(listing.StepMedia))
}
