package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/findlocalfirewood/firewood-api/internal/pkg/geo"
)

// AnonymousSubmitterID is recorded as the submitter of stands listed
// without an account.
var AnonymousSubmitterID = uuid.Nil

type PriceTier string

const (
	PriceUnder5  PriceTier = "under_5"
	Price5To10   PriceTier = "5_to_10"
	Price10To20  PriceTier = "10_to_20"
	PriceOver20  PriceTier = "over_20"
	PriceUnknown PriceTier = ""
)

var PriceTiers = []PriceTier{PriceUnder5, Price5To10, Price10To20, PriceOver20}

func (p PriceTier) IsValid() bool {
	for _, t := range PriceTiers {
		if p == t {
			return true
		}
	}

	return false
}

type PaymentMethod string

const (
	PaymentCash    PaymentMethod = "cash"
	PaymentCheck   PaymentMethod = "check"
	PaymentVenmo   PaymentMethod = "venmo"
	PaymentPayPal  PaymentMethod = "paypal"
	PaymentZelle   PaymentMethod = "zelle"
	PaymentCashApp PaymentMethod = "cashapp"
	PaymentCard    PaymentMethod = "card"
)

var PaymentMethods = []PaymentMethod{PaymentCash, PaymentCheck, PaymentVenmo, PaymentPayPal, PaymentZelle, PaymentCashApp, PaymentCard}

func (p PaymentMethod) IsValid() bool {
	for _, m := range PaymentMethods {
		if p == m {
			return true
		}
	}

	return false
}

// WoodType is how wood is sold at a stand. A stand may offer both.
type WoodType string

const (
	WoodBundled WoodType = "bundled"
	WoodLoose   WoodType = "loose"
)

var WoodTypes = []WoodType{WoodBundled, WoodLoose}

type Stand struct {
	ID                uuid.UUID       `json:"id"`
	Name              string          `json:"name"`
	Address           string          `json:"address"`
	Location          *geo.Point      `json:"location,omitempty"`
	PriceTier         PriceTier       `json:"price_tier,omitempty"`
	PaymentMethods    []PaymentMethod `json:"payment_methods"`
	IsBundled         bool            `json:"is_bundled"`
	IsLoose           bool            `json:"is_loose"`
	SelfServe         bool            `json:"self_serve"`
	OnsitePerson      bool            `json:"onsite_person"`
	DeliveryAvailable bool            `json:"delivery_available"`
	AdditionalDetails string          `json:"additional_details,omitempty"`
	Photos            []string        `json:"photos"`
	IsApproved        bool            `json:"is_approved"`
	StockLevel        StockLevel      `json:"stock_level"`
	LastVerifiedAt    time.Time       `json:"last_verified_at"`
	SubmittedBy       uuid.UUID       `json:"submitted_by"`
	SubmitterName     string          `json:"submitter_name,omitempty"`
	SubmitterEmail    string          `json:"-"`
	SubmitterPhone    string          `json:"-"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

func (s Stand) IsAnonymousSubmission() bool {
	return s.SubmittedBy == AnonymousSubmitterID
}

func (s Stand) WoodTypes() []WoodType {
	var types []WoodType
	if s.IsBundled {
		types = append(types, WoodBundled)
	}
	if s.IsLoose {
		types = append(types, WoodLoose)
	}

	return types
}

// InventoryUpdate is what a check-in writes back onto its stand.
// A nil PaymentMethods leaves the stand's methods untouched.
type InventoryUpdate struct {
	StockLevel     StockLevel
	LastVerifiedAt time.Time
	PaymentMethods []PaymentMethod
}

// RankedStand is a stand with its distance from the caller, when both
// locations are known.
type RankedStand struct {
	Stand
	DistanceMiles *float64 `json:"distance_miles"`
}
