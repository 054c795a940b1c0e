package domain

import (
	"time"

	"github.com/google/uuid"
)

const AnonymousDisplayName = "Anonymous"

// CheckIn is one honor-system visit report. It is never modified after
// it is recorded.
type CheckIn struct {
	ID                    uuid.UUID       `json:"id"`
	StandID               uuid.UUID       `json:"stand_id"`
	UserID                *uuid.UUID      `json:"user_id,omitempty"`
	AnonymousName         string          `json:"anonymous_name,omitempty"`
	Fingerprint           string          `json:"-"`
	StockLevel            StockLevel      `json:"stock_level"`
	PaymentMethods        []PaymentMethod `json:"payment_methods"`
	Note                  string          `json:"note,omitempty"`
	Photos                []string        `json:"photos"`
	SuggestedPrimaryPhoto string          `json:"suggested_primary_photo,omitempty"`
	CreatedAt             time.Time       `json:"created_at"`
}

func (c CheckIn) IsAnonymous() bool {
	return c.UserID == nil
}

// IsBy reports whether the check-in was made by the given account.
// Anonymous check-ins are never by anyone.
func (c CheckIn) IsBy(userID uuid.UUID) bool {
	return c.UserID != nil && *c.UserID == userID
}

// CheckInInput is a check-in submission before it is recorded.
type CheckInInput struct {
	StandID               uuid.UUID
	UserID                *uuid.UUID
	AnonymousName         string
	Fingerprint           string
	Inventory             InventoryChoice
	PaymentMethods        []PaymentMethod
	Note                  string
	Photos                []string
	SuggestedPrimaryPhoto string
}

type CheckInEntry struct {
	CheckIn
	DisplayName string `json:"display_name"`
	IsSubmitter bool   `json:"is_submitter"`
}

type CheckInSummary struct {
	TotalCount            int            `json:"total_count"`
	IsVerifiedByCommunity bool           `json:"is_verified_by_community"`
	LastCheckIn           *CheckInEntry  `json:"last_check_in"`
	RecentVerifiers       []CheckInEntry `json:"recent_verifiers"`
}

type StandDetail struct {
	Stand   Stand          `json:"stand"`
	Summary CheckInSummary `json:"summary"`
}

// CheckInResult reports the outcome of a submission. StandUpdated is false
// when the check-in was stored but the stand could not be updated.
type CheckInResult struct {
	CheckIn      CheckIn `json:"check_in"`
	StandUpdated bool    `json:"stand_updated"`
	Quota        Quota   `json:"quota"`
}

type QuotaScope string

const (
	QuotaGlobal QuotaScope = "global"
	QuotaStand  QuotaScope = "stand"
)

type Quota struct {
	Scope     QuotaScope `json:"scope"`
	Used      int        `json:"used"`
	Limit     int        `json:"limit"`
	Remaining int        `json:"remaining"`
	Warning   bool       `json:"warning"`
	Blocked   bool       `json:"blocked"`
	Message   string     `json:"message,omitempty"`
	ResetsAt  time.Time  `json:"resets_at"`
}
