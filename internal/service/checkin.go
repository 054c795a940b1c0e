package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/findlocalfirewood/firewood-api/internal/apperr"
	"github.com/findlocalfirewood/firewood-api/internal/domain"
	"github.com/findlocalfirewood/firewood-api/internal/metrics"
)

type CheckInRepository interface {
	CheckInCounter
	Create(ctx context.Context, c domain.CheckIn) (domain.CheckIn, error)
	FindByStandID(ctx context.Context, standID uuid.UUID, limit int) ([]domain.CheckIn, error)
}

type StandInventoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (domain.Stand, error)
	UpdateInventory(ctx context.Context, id uuid.UUID, update domain.InventoryUpdate) error
}

type ProfileLookup interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Profile, error)
}

type CheckInEvents interface {
	CheckInCreated(ctx context.Context, c domain.CheckIn) error
}

// CheckInFeed fans a new check-in out to live viewers of its stand.
type CheckInFeed interface {
	Broadcast(standID uuid.UUID, entry domain.CheckInEntry)
}

type CheckInService struct {
	checkIns CheckInRepository
	stands   StandInventoryRepository
	profiles ProfileLookup
	quota    *QuotaService
	settings CheckInSettingsSource
	events   CheckInEvents
	feed     CheckInFeed
	now      func() time.Time
}

func NewCheckInService(
	checkIns CheckInRepository,
	stands StandInventoryRepository,
	profiles ProfileLookup,
	settings CheckInSettingsSource,
	events CheckInEvents,
	feed CheckInFeed,
) *CheckInService {
	return &CheckInService{
		checkIns: checkIns,
		stands:   stands,
		profiles: profiles,
		quota:    NewQuotaService(checkIns, settings),
		settings: settings,
		events:   events,
		feed:     feed,
		now:      time.Now,
	}
}

func (s *CheckInService) Quota(ctx context.Context, v Visitor, standID uuid.UUID) (domain.Quota, error) {
	q, err := s.quota.Status(ctx, v, standID)
	if err != nil {
		return domain.Quota{}, fmt.Errorf("s.quota.Status -> %w", err)
	}

	return q, nil
}

// Submit records a check-in and then writes its inventory onto the stand.
// The two writes are not atomic: when the stand update fails the check-in
// is kept and the result reports StandUpdated=false.
func (s *CheckInService) Submit(ctx context.Context, in domain.CheckInInput) (domain.CheckInResult, error) {
	const op = "service.CheckInService.Submit"

	level, fields := validateCheckIn(in)
	if len(fields) > 0 {
		return domain.CheckInResult{}, apperr.ValidationFields(op, fmt.Errorf("invalid check-in"), fields)
	}

	stand, err := s.stands.FindByID(ctx, in.StandID)
	if err != nil {
		return domain.CheckInResult{}, fmt.Errorf("s.stands.FindByID -> %w", err)
	}

	visitor := Visitor{UserID: in.UserID, Fingerprint: in.Fingerprint}
	before, err := s.quota.Status(ctx, visitor, stand.ID)
	if err != nil {
		return domain.CheckInResult{}, fmt.Errorf("s.quota.Status -> %w", err)
	}
	if before.Blocked {
		metrics.CheckInsRateLimited.Inc()
		limited := apperr.RateLimited(op, ErrDailyLimitReached)
		limited.Fields = map[string]string{"quota": before.Message}
		return domain.CheckInResult{}, limited
	}

	checkIn := domain.CheckIn{
		StandID:               stand.ID,
		UserID:                in.UserID,
		StockLevel:            level,
		PaymentMethods:        in.PaymentMethods,
		Note:                  in.Note,
		Photos:                in.Photos,
		SuggestedPrimaryPhoto: in.SuggestedPrimaryPhoto,
		CreatedAt:             s.now().UTC(),
	}
	if in.UserID == nil {
		checkIn.AnonymousName = in.AnonymousName
		checkIn.Fingerprint = in.Fingerprint
	}
	if checkIn.PaymentMethods == nil {
		checkIn.PaymentMethods = []domain.PaymentMethod{}
	}
	if checkIn.Photos == nil {
		checkIn.Photos = []string{}
	}

	created, err := s.checkIns.Create(ctx, checkIn)
	if err != nil {
		return domain.CheckInResult{}, fmt.Errorf("s.checkIns.Create -> %w", err)
	}

	result := domain.CheckInResult{
		CheckIn:      created,
		StandUpdated: true,
		Quota:        PolicyFromSettings(s.settings.Snapshot()).Status(before.Used+1, s.now()),
	}

	update := domain.InventoryUpdate{
		StockLevel:     level,
		LastVerifiedAt: created.CreatedAt,
	}
	if len(in.PaymentMethods) > 0 {
		update.PaymentMethods = in.PaymentMethods
	}
	if err := s.stands.UpdateInventory(ctx, stand.ID, update); err != nil {
		result.StandUpdated = false
		metrics.StandUpdateFailures.Inc()
		zap.L().Warn("check-in stored but stand inventory was not updated",
			zap.String("stand_id", stand.ID.String()),
			zap.String("checkin_id", created.ID.String()),
			zap.Error(err),
		)
	}

	visitorKind := "anonymous"
	if in.UserID != nil {
		visitorKind = "registered"
	}
	metrics.CheckIns.WithLabelValues(visitorKind).Inc()

	s.announce(ctx, stand, created)

	return result, nil
}

// announce pushes the new check-in to live viewers and the event bus.
// Failures here never fail the submission.
func (s *CheckInService) announce(ctx context.Context, stand domain.Stand, c domain.CheckIn) {
	profiles := map[uuid.UUID]domain.Profile{}
	if c.UserID != nil {
		found, err := s.profiles.FindByIDs(ctx, []uuid.UUID{*c.UserID})
		if err != nil {
			zap.L().Warn("could not resolve check-in author", zap.String("checkin_id", c.ID.String()), zap.Error(err))
		} else {
			profiles = found
		}
	}

	if s.feed != nil {
		s.feed.Broadcast(stand.ID, Entry(c, stand.SubmittedBy, profiles))
	}

	if s.events != nil {
		if err := s.events.CheckInCreated(ctx, c); err != nil {
			zap.L().Warn("could not publish check-in event", zap.String("checkin_id", c.ID.String()), zap.Error(err))
		}
	}
}

// History lists a stand's check-ins, newest first, with display names.
// limit <= 0 returns all of them. Stands awaiting approval are NotFound,
// as in Detail.
func (s *CheckInService) History(ctx context.Context, standID uuid.UUID, limit int) ([]domain.CheckInEntry, error) {
	const op = "service.CheckInService.History"

	stand, err := s.stands.FindByID(ctx, standID)
	if err != nil {
		return nil, fmt.Errorf("s.stands.FindByID -> %w", err)
	}
	if !stand.IsApproved {
		return nil, apperr.NotFound(op, ErrStandNotFound)
	}

	checkIns, err := s.checkIns.FindByStandID(ctx, standID, limit)
	if err != nil {
		return nil, fmt.Errorf("s.checkIns.FindByStandID -> %w", err)
	}

	profiles, err := s.profiles.FindByIDs(ctx, userIDs(checkIns))
	if err != nil {
		return nil, fmt.Errorf("s.profiles.FindByIDs -> %w", err)
	}

	entries := make([]domain.CheckInEntry, 0, len(checkIns))
	for _, c := range checkIns {
		entries = append(entries, Entry(c, stand.SubmittedBy, profiles))
	}

	return entries, nil
}

func validateCheckIn(in domain.CheckInInput) (domain.StockLevel, map[string]string) {
	fields := map[string]string{}

	level, err := in.Inventory.StockLevel()
	if err != nil {
		fields["inventory"] = domain.ErrInvalidInventoryChoice.Error()
	}

	for _, m := range in.PaymentMethods {
		if !m.IsValid() {
			fields["payment_methods"] = fmt.Sprintf("unknown payment method %q", string(m))
			break
		}
	}

	if in.SuggestedPrimaryPhoto != "" {
		attached := false
		for _, p := range in.Photos {
			if p == in.SuggestedPrimaryPhoto {
				attached = true
				break
			}
		}
		if !attached {
			fields["suggested_primary_photo"] = "must be one of the check-in photos"
		}
	}

	if in.UserID == nil && in.Fingerprint == "" {
		fields["visitor"] = ErrNoVisitorIdentity.Error()
	}

	return level, fields
}
