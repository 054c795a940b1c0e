package request

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/findlocalfirewood/firewood-api/internal/domain"
	"github.com/findlocalfirewood/firewood-api/internal/pkg/geo"
	"github.com/findlocalfirewood/firewood-api/internal/service"
)

var (
	errUnknownField       = errors.New("unknown field")
	errAddressNotSelected = errors.New("select an address from the suggestions or drop a pin")
	errNoWoodType         = errors.New("select at least one wood type")
	errNoPaymentMethod    = errors.New("select at least one payment method")
)

// FieldErrors holds one message per invalid field, keyed by JSON name.
type FieldErrors map[string]string

// Clear drops the error for a field that has just been edited.
func (f FieldErrors) Clear(field string) {
	delete(f, field)
}

func FieldErrorsFrom(err error) FieldErrors {
	out := FieldErrors{}

	var errs validation.Errors
	if errors.As(err, &errs) {
		for k, v := range errs {
			if v != nil {
				out[k] = v.Error()
			}
		}
	}

	return out
}

// ListStandRequest is the single-page listing form. Unlike the wizard
// every field that matters for a listing is required.
type ListStandRequest struct {
	Name              string                 `json:"name"`
	Address           string                 `json:"address"`
	Location          *geo.Point             `json:"location"`
	IsBundled         bool                   `json:"is_bundled"`
	IsLoose           bool                   `json:"is_loose"`
	PriceTier         domain.PriceTier       `json:"price_tier"`
	PaymentMethods    []domain.PaymentMethod `json:"payment_methods"`
	SelfServe         bool                   `json:"self_serve"`
	OnsitePerson      bool                   `json:"onsite_person"`
	DeliveryAvailable bool                   `json:"delivery_available"`
	AdditionalDetails string                 `json:"additional_details"`
	Photos            []string               `json:"photos"`
	SubmitterName     string                 `json:"submitter_name"`
	SubmitterEmail    string                 `json:"submitter_email"`
	SubmitterPhone    string                 `json:"submitter_phone"`
}

var listStandFields = []string{
	"name", "submitter_name", "submitter_email", "address",
	"wood_type", "price_tier", "payment_methods",
	"additional_details", "photos", "submitter_phone",
}

const maxStandPhotos = 5

func (req *ListStandRequest) rule(field string) error {
	switch field {
	case "name":
		return validation.Validate(strings.TrimSpace(req.Name), validation.Required, validation.Length(2, 120))
	case "submitter_name":
		return validation.Validate(strings.TrimSpace(req.SubmitterName), validation.Required, validation.Length(0, 120))
	case "submitter_email":
		return validation.Validate(strings.TrimSpace(req.SubmitterEmail), validation.Required, is.Email)
	case "address":
		if err := validation.Validate(strings.TrimSpace(req.Address), validation.Required); err != nil {
			return err
		}
		if req.Location == nil {
			return errAddressNotSelected
		}
		return req.Location.Validate()
	case "wood_type":
		if !req.IsBundled && !req.IsLoose {
			return errNoWoodType
		}
		return nil
	case "price_tier":
		return validation.Validate(string(req.PriceTier), validation.Required, validation.In(priceTiers()...))
	case "payment_methods":
		if len(req.PaymentMethods) == 0 {
			return errNoPaymentMethod
		}
		for _, m := range req.PaymentMethods {
			if !m.IsValid() {
				return fmt.Errorf("unknown payment method %q", string(m))
			}
		}
		return nil
	case "additional_details":
		return validation.Validate(req.AdditionalDetails, validation.Length(0, 2000))
	case "photos":
		return validation.Validate(req.Photos, validation.Length(0, maxStandPhotos))
	case "submitter_phone":
		return validation.Validate(req.SubmitterPhone, validation.Length(0, 32))
	}

	return fmt.Errorf("%w: %s", errUnknownField, field)
}

// Validate checks every field and returns validation.Errors with one
// message per invalid field.
func (req *ListStandRequest) Validate() error {
	errs := validation.Errors{}
	for _, f := range listStandFields {
		errs[f] = req.rule(f)
	}

	return errs.Filter()
}

// ValidateField re-checks a single field after it was edited.
func (req *ListStandRequest) ValidateField(field string) error {
	return req.rule(field)
}

func (req *ListStandRequest) Stand() domain.Stand {
	return domain.Stand{
		Name:              strings.TrimSpace(req.Name),
		Address:           strings.TrimSpace(req.Address),
		Location:          req.Location,
		IsBundled:         req.IsBundled,
		IsLoose:           req.IsLoose,
		PriceTier:         req.PriceTier,
		PaymentMethods:    req.PaymentMethods,
		SelfServe:         req.SelfServe,
		OnsitePerson:      req.OnsitePerson,
		DeliveryAvailable: req.DeliveryAvailable,
		AdditionalDetails: strings.TrimSpace(req.AdditionalDetails),
		Photos:            req.Photos,
		SubmitterName:     strings.TrimSpace(req.SubmitterName),
		SubmitterEmail:    strings.TrimSpace(req.SubmitterEmail),
		SubmitterPhone:    strings.TrimSpace(req.SubmitterPhone),
	}
}

func priceTiers() []interface{} {
	values := make([]interface{}, len(domain.PriceTiers))
	for i, t := range domain.PriceTiers {
		values[i] = string(t)
	}

	return values
}

type ListStandsQuery struct {
	State string `form:"state"`
	Sort  string `form:"sort"`
	Lat   string `form:"lat"`
	Lon   string `form:"lon"`
}

// Options converts the query into ranking options. Both lat and lon must
// be given for an origin to be used.
func (q *ListStandsQuery) Options() (service.RankOptions, error) {
	opts := service.RankOptions{
		Sort:  service.SortMode(q.Sort),
		State: q.State,
	}

	if q.Lat == "" && q.Lon == "" {
		return opts, nil
	}

	lat, err := strconv.ParseFloat(q.Lat, 64)
	if err != nil {
		return opts, validation.Errors{"lat": errors.New("must be a number")}
	}
	lon, err := strconv.ParseFloat(q.Lon, 64)
	if err != nil {
		return opts, validation.Errors{"lon": errors.New("must be a number")}
	}
	opts.Origin = &geo.Point{Lat: lat, Lon: lon}

	return opts, nil
}
