package domain

import (
	"strings"

	"github.com/findlocalfirewood/firewood-api/internal/pkg/geo"
)

// StandDraft is a stand submission as it moves through the listing
// wizard. Only the location is mandatory.
type StandDraft struct {
	Address  string     `json:"address"`
	Location *geo.Point `json:"location"`

	Photos []string `json:"photos"`

	Name              string          `json:"name"`
	IsBundled         bool            `json:"is_bundled"`
	IsLoose           bool            `json:"is_loose"`
	PriceTier         PriceTier       `json:"price_tier"`
	PaymentMethods    []PaymentMethod `json:"payment_methods"`
	SelfServe         bool            `json:"self_serve"`
	OnsitePerson      bool            `json:"onsite_person"`
	DeliveryAvailable bool            `json:"delivery_available"`
	AdditionalDetails string          `json:"additional_details"`

	SubmitterName  string `json:"submitter_name"`
	SubmitterEmail string `json:"submitter_email"`
	SubmitterPhone string `json:"submitter_phone"`
}

// Stand converts the draft into a stand. A draft without a name is
// listed under the street part of its address.
func (d StandDraft) Stand() Stand {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		name = strings.TrimSpace(strings.SplitN(d.Address, ",", 2)[0])
	}

	return Stand{
		Name:              name,
		Address:           strings.TrimSpace(d.Address),
		Location:          d.Location,
		PriceTier:         d.PriceTier,
		PaymentMethods:    d.PaymentMethods,
		IsBundled:         d.IsBundled,
		IsLoose:           d.IsLoose,
		SelfServe:         d.SelfServe,
		OnsitePerson:      d.OnsitePerson,
		DeliveryAvailable: d.DeliveryAvailable,
		AdditionalDetails: strings.TrimSpace(d.AdditionalDetails),
		Photos:            d.Photos,
		SubmitterName:     strings.TrimSpace(d.SubmitterName),
		SubmitterEmail:    strings.TrimSpace(d.SubmitterEmail),
		SubmitterPhone:    strings.TrimSpace(d.SubmitterPhone),
	}
}
