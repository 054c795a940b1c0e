package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/findlocalfirewood/firewood-api/internal/apperr"
	"github.com/findlocalfirewood/firewood-api/internal/config"
	"github.com/findlocalfirewood/firewood-api/internal/domain"
)

// QuotaPolicy is the daily check-in allowance.
type QuotaPolicy struct {
	Limit   int
	Warning int
	Scope   domain.QuotaScope
}

func PolicyFromSettings(s config.CheckInSettings) QuotaPolicy {
	return QuotaPolicy{
		Limit:   s.DailyLimit,
		Warning: s.WarningThreshold,
		Scope:   domain.QuotaScope(s.QuotaScope),
	}
}

// Status reports the allowance after used check-ins today.
func (p QuotaPolicy) Status(used int, now time.Time) domain.Quota {
	remaining := p.Limit - used
	if remaining < 0 {
		remaining = 0
	}

	q := domain.Quota{
		Scope:     p.Scope,
		Used:      used,
		Limit:     p.Limit,
		Remaining: remaining,
		Blocked:   used >= p.Limit,
		Warning:   used >= p.Warning && used < p.Limit,
		ResetsAt:  StartOfUTCDay(now).Add(24 * time.Hour),
	}

	switch {
	case q.Blocked:
		q.Message = fmt.Sprintf("You've reached the limit of %d check-ins today. Try again tomorrow.", p.Limit)
	case q.Warning:
		q.Message = fmt.Sprintf("%d remaining.", remaining)
	}

	return q
}

func StartOfUTCDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Visitor identifies who is checking in: an account, or for anonymous
// visitors a fingerprint of their connection.
type Visitor struct {
	UserID      *uuid.UUID
	Fingerprint string
}

type CheckInCounter interface {
	CountByUserSince(ctx context.Context, userID uuid.UUID, since time.Time, standID *uuid.UUID) (int, error)
	CountByFingerprintSince(ctx context.Context, fingerprint string, since time.Time, standID *uuid.UUID) (int, error)
}

type CheckInSettingsSource interface {
	Snapshot() config.CheckInSettings
}

type QuotaService struct {
	counter  CheckInCounter
	settings CheckInSettingsSource
	now      func() time.Time
}

func NewQuotaService(counter CheckInCounter, settings CheckInSettingsSource) *QuotaService {
	return &QuotaService{
		counter:  counter,
		settings: settings,
		now:      time.Now,
	}
}

// Status counts the visitor's check-ins since midnight UTC. standID is
// only used when the configured scope is per stand.
func (s *QuotaService) Status(ctx context.Context, v Visitor, standID uuid.UUID) (domain.Quota, error) {
	const op = "service.QuotaService.Status"

	policy := PolicyFromSettings(s.settings.Snapshot())
	now := s.now()

	var scope *uuid.UUID
	if policy.Scope == domain.QuotaStand {
		if standID == uuid.Nil {
			return domain.Quota{}, apperr.ValidationFields(op, ErrStandIDRequired, map[string]string{"stand_id": ErrStandIDRequired.Error()})
		}
		scope = &standID
	}

	since := StartOfUTCDay(now)

	var (
		used int
		err  error
	)
	switch {
	case v.UserID != nil:
		used, err = s.counter.CountByUserSince(ctx, *v.UserID, since, scope)
		if err != nil {
			return domain.Quota{}, fmt.Errorf("s.counter.CountByUserSince -> %w", err)
		}
	case v.Fingerprint != "":
		used, err = s.counter.CountByFingerprintSince(ctx, v.Fingerprint, since, scope)
		if err != nil {
			return domain.Quota{}, fmt.Errorf("s.counter.CountByFingerprintSince -> %w", err)
		}
	default:
		return domain.Quota{}, apperr.Validation(op, ErrNoVisitorIdentity)
	}

	return policy.Status(used, now), nil
}
