package request

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/findlocalfirewood/firewood-api/internal/domain"
)

type CheckInRequest struct {
	Inventory             domain.InventoryChoice `json:"inventory"`
	PaymentMethods        []domain.PaymentMethod `json:"payment_methods"`
	Note                  string                 `json:"note"`
	Photos                []string               `json:"photos"`
	SuggestedPrimaryPhoto string                 `json:"suggested_primary_photo"`
	AnonymousName         string                 `json:"anonymous_name"`
}

// Validate checks only the shape of the request; inventory and payment
// method values are checked by the check-in service.
func (req *CheckInRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Inventory, validation.Required),
		validation.Field(&req.Note, validation.Length(0, 1000)),
		validation.Field(&req.AnonymousName, validation.Length(0, 60)),
		validation.Field(&req.Photos, validation.Length(0, 5)),
	)
}

func (req *CheckInRequest) Input() domain.CheckInInput {
	return domain.CheckInInput{
		AnonymousName:         strings.TrimSpace(req.AnonymousName),
		Inventory:             req.Inventory,
		PaymentMethods:        req.PaymentMethods,
		Note:                  strings.TrimSpace(req.Note),
		Photos:                req.Photos,
		SuggestedPrimaryPhoto: req.SuggestedPrimaryPhoto,
	}
}
