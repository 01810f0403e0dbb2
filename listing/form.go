package listing

import (
	"fmt"
	"math"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	perrors "github.com/jrsteele09/rental-portal/internal/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// FieldErrors maps a form field to a message suitable for display next to it
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + fe[k]
	}
	return strings.Join(parts, "; ")
}

// SetSection decodes form into the section for step and validates it. The draft
// is only modified when the section is valid, in which case Step advances.
func (d *Draft) SetSection(step Step, form url.Values) FieldErrors {
	fe := FieldErrors{}
	var section any
	switch step {
	case StepBasics:
		section = &Basics{
			Title:        strings.TrimSpace(form.Get("title")),
			Description:  strings.TrimSpace(form.Get("description")),
			PropertyType: form.Get("propertyType"),
			ListingType:  form.Get("listingType"),
		}
	case StepLocation:
		section = &Location{
			Address:  strings.TrimSpace(form.Get("address")),
			City:     strings.TrimSpace(form.Get("city")),
			District: strings.TrimSpace(form.Get("district")),
		}
	case StepPricing:
		section = &Pricing{
			Price:    formFloat(form, "price", fe),
			Currency: strings.ToUpper(strings.TrimSpace(form.Get("currency"))),
			Deposit:  formFloat(form, "deposit", fe),
		}
	case StepDetails:
		section = &Details{
			Bedrooms:  formInt(form, "bedrooms", fe),
			Bathrooms: formInt(form, "bathrooms", fe),
			Area:      formFloat(form, "area", fe),
			Amenities: formList(form, "amenities"),
		}
	case StepMedia:
		section = &Media{Images: formList(form, "images")}
	default:
		fe["step"] = fmt.Sprintf("unknown step %q", step)
		return fe
	}

	for k, v := range validateSection(section) {
		if _, ok := fe[k]; !ok {
			fe[k] = v
		}
	}
	if len(fe) > 0 {
		return fe
	}

	switch s := section.(type) {
	case *Basics:
		d.Basics = s
	case *Location:
		d.Location = s
	case *Pricing:
		d.Pricing = s
	case *Details:
		d.Details = s
	case *Media:
		d.Media = s
	}
	if d.Step == step || d.Step == "" {
		d.Step = step.Next()
	}
	d.UpdatedAt = time.Now().UTC()
	return nil
}

func validateSection(section any) FieldErrors {
	err := validate.Struct(section)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !perrors.As(err, &verrs) {
		return FieldErrors{"form": err.Error()}
	}
	fe := FieldErrors{}
	for _, fieldErr := range verrs {
		fe[fieldName(fieldErr)] = message(fieldErr)
	}
	return fe
}

// fieldName maps a struct field back to its form name, keeping the slice index
// for dive errors (images[1])
func fieldName(fieldErr validator.FieldError) string {
	name := fieldErr.Field()
	if name == "" {
		return "form"
	}
	idx := strings.IndexByte(name, '[')
	base, suffix := name, ""
	if idx >= 0 {
		base, suffix = name[:idx], name[idx:]
	}
	return strings.ToLower(base[:1]) + base[1:] + suffix
}

func message(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of " + fieldErr.Param()
	case "gt":
		return "must be greater than " + fieldErr.Param()
	case "gte":
		return "must be at least " + fieldErr.Param()
	case "len":
		return "must be " + fieldErr.Param() + " characters"
	case "max":
		return "must be at most " + fieldErr.Param() + " characters"
	case "url":
		return "must be a valid URL"
	default:
		return "is invalid"
	}
}

func formFloat(form url.Values, key string, fe FieldErrors) float64 {
	raw := strings.TrimSpace(form.Get(key))
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		fe[key] = "must be a number"
		return 0
	}
	return v
}

func formInt(form url.Values, key string, fe FieldErrors) int {
	raw := strings.TrimSpace(form.Get(key))
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		fe[key] = "must be a whole number"
		return 0
	}
	return v
}

// formList accepts repeated keys as well as one newline or comma separated value
func formList(form url.Values, key string) []string {
	var out []string
	for _, raw := range form[key] {
		for _, item := range strings.FieldsFunc(raw, func(r rune) bool { return r == '\n' || r == ',' }) {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}

// Values renders the stored section for step back into form values, so a form
// can be pre-filled when the user revisits a step
func (d *Draft) Values(step Step) url.Values {
	v := url.Values{}
	switch step {
	case StepBasics:
		if b := d.Basics; b != nil {
			v.Set("title", b.Title)
			v.Set("description", b.Description)
			v.Set("propertyType", b.PropertyType)
			v.Set("listingType", b.ListingType)
		}
	case StepLocation:
		if l := d.Location; l != nil {
			v.Set("address", l.Address)
			v.Set("city", l.City)
			v.Set("district", l.District)
		}
	case StepPricing:
		if p := d.Pricing; p != nil {
			v.Set("price", strconv.FormatFloat(p.Price, 'f', -1, 64))
			v.Set("currency", p.Currency)
			v.Set("deposit", strconv.FormatFloat(p.Deposit, 'f', -1, 64))
		}
	case StepDetails:
		if dt := d.Details; dt != nil {
			v.Set("bedrooms", strconv.Itoa(dt.Bedrooms))
			v.Set("bathrooms", strconv.Itoa(dt.Bathrooms))
			v.Set("area", strconv.FormatFloat(dt.Area, 'f', -1, 64))
			v.Set("amenities", strings.Join(dt.Amenities, ", "))
		}
	case StepMedia:
		if m := d.Media; m != nil {
			v.Set("images", strings.Join(m.Images, "\n"))
		}
	}
	return v
}
