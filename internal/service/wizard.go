package service

import (
	"errors"
	"fmt"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/findlocalfirewood/firewood-api/internal/apperr"
	"github.com/findlocalfirewood/firewood-api/internal/domain"
	"github.com/findlocalfirewood/firewood-api/internal/pkg/geo"
)

// WizardStep is a page of the listing wizard, in the order it is shown.
type WizardStep int

const (
	StepLocation WizardStep = iota + 1
	StepPhotos
	StepDetails
	StepContact
)

var WizardSteps = []WizardStep{StepLocation, StepPhotos, StepDetails, StepContact}

func (s WizardStep) String() string {
	switch s {
	case StepLocation:
		return "location"
	case StepPhotos:
		return "photos"
	case StepDetails:
		return "details"
	case StepContact:
		return "contact"
	}

	return "step " + strconv.Itoa(int(s))
}

// ParseStep accepts a step number ("1".."4") or name ("location").
func ParseStep(v string) (WizardStep, error) {
	if n, err := strconv.Atoi(v); err == nil {
		step := WizardStep(n)
		if step >= StepLocation && step <= StepContact {
			return step, nil
		}
	}
	for _, step := range WizardSteps {
		if step.String() == v {
			return step, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownStep, v)
}

type Wizard struct {
	maxPhotos int
}

func NewWizard(maxPhotos int) *Wizard {
	return &Wizard{
		maxPhotos: maxPhotos,
	}
}

// ValidateStep checks the fields owned by one step. Only the location step
// has required fields; elsewhere a blank field is fine but a filled-in one
// must be well formed.
func (w *Wizard) ValidateStep(step WizardStep, d domain.StandDraft) error {
	var errs validation.Errors

	switch step {
	case StepLocation:
		errs = validation.Errors{
			"address":  validation.Validate(d.Address, validation.Required),
			"location": validation.Validate(d.Location, validation.NotNil, validation.By(pointInRange)),
		}
	case StepPhotos:
		errs = validation.Errors{
			"photos": validation.Validate(d.Photos, validation.Length(0, w.maxPhotos)),
		}
	case StepDetails:
		errs = validation.Errors{
			"name":               validation.Validate(d.Name, validation.Length(0, 120)),
			"price_tier":         validation.Validate(string(d.PriceTier), validation.In(priceTierValues()...)),
			"payment_methods":    validation.Validate(d.PaymentMethods, validation.By(knownPaymentMethods)),
			"additional_details": validation.Validate(d.AdditionalDetails, validation.Length(0, 2000)),
		}
	case StepContact:
		errs = validation.Errors{
			"submitter_name":  validation.Validate(d.SubmitterName, validation.Length(0, 120)),
			"submitter_email": validation.Validate(d.SubmitterEmail, is.Email),
			"submitter_phone": validation.Validate(d.SubmitterPhone, validation.Length(0, 32)),
		}
	default:
		return fmt.Errorf("%w: %d", ErrUnknownStep, int(step))
	}

	return errs.Filter()
}

// CanEnter reports whether step may be shown: every earlier step must
// validate. The error names the first step that does not.
func (w *Wizard) CanEnter(step WizardStep, d domain.StandDraft) error {
	const op = "service.Wizard.CanEnter"

	if step < StepLocation || step > StepContact {
		return apperr.Validation(op, fmt.Errorf("%w: %d", ErrUnknownStep, int(step)))
	}

	for _, earlier := range WizardSteps {
		if earlier >= step {
			break
		}
		if err := w.ValidateStep(earlier, d); err != nil {
			return stepError(op, earlier, err)
		}
	}

	return nil
}

// Validate checks every step, as done before the final submit.
func (w *Wizard) Validate(d domain.StandDraft) error {
	const op = "service.Wizard.Validate"

	for _, step := range WizardSteps {
		if err := w.ValidateStep(step, d); err != nil {
			return stepError(op, step, err)
		}
	}

	return nil
}

func stepError(op string, step WizardStep, err error) error {
	fields := map[string]string{"step": step.String()}

	var errs validation.Errors
	if errors.As(err, &errs) {
		for k, v := range errs {
			fields[k] = v.Error()
		}
	}

	return apperr.ValidationFields(op, fmt.Errorf("%w: %s: %v", ErrStepLocked, step, err), fields)
}

func pointInRange(value interface{}) error {
	p, ok := value.(*geo.Point)
	if !ok || p == nil {
		return nil
	}

	return p.Validate()
}

func knownPaymentMethods(value interface{}) error {
	methods, _ := value.([]domain.PaymentMethod)
	for _, m := range methods {
		if !m.IsValid() {
			return fmt.Errorf("unknown payment method %q", string(m))
		}
	}

	return nil
}

func priceTierValues() []interface{} {
	values := make([]interface{}, len(domain.PriceTiers))
	for i, t := range domain.PriceTiers {
		values[i] = string(t)
	}

	return values
}
