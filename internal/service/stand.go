package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/findlocalfirewood/firewood-api/internal/apperr"
	"github.com/findlocalfirewood/firewood-api/internal/domain"
	"github.com/findlocalfirewood/firewood-api/internal/metrics"
)

type StandRepository interface {
	Create(ctx context.Context, stand domain.Stand) (domain.Stand, error)
	FindByID(ctx context.Context, id uuid.UUID) (domain.Stand, error)
	ListApproved(ctx context.Context) ([]domain.Stand, []error, error)
	ListPending(ctx context.Context) ([]domain.Stand, []error, error)
	Approve(ctx context.Context, id uuid.UUID) error
}

type CheckInHistory interface {
	FindByStandID(ctx context.Context, standID uuid.UUID, limit int) ([]domain.CheckIn, error)
}

type StandEvents interface {
	StandSubmitted(ctx context.Context, stand domain.Stand) error
	StandApproved(ctx context.Context, stand domain.Stand) error
}

// ModeratorNotifier tells moderators a stand is waiting for approval.
type ModeratorNotifier interface {
	StandSubmitted(ctx context.Context, stand domain.Stand) error
}

type StandService struct {
	repo     StandRepository
	checkIns CheckInHistory
	profiles ProfileLookup
	wizard   *Wizard
	settings CheckInSettingsSource
	events   StandEvents
	notifier ModeratorNotifier
	now      func() time.Time
}

func NewStandService(
	repo StandRepository,
	checkIns CheckInHistory,
	profiles ProfileLookup,
	wizard *Wizard,
	settings CheckInSettingsSource,
	events StandEvents,
	notifier ModeratorNotifier,
) *StandService {
	return &StandService{
		repo:     repo,
		checkIns: checkIns,
		profiles: profiles,
		wizard:   wizard,
		settings: settings,
		events:   events,
		notifier: notifier,
		now:      time.Now,
	}
}

// List returns the approved stands, filtered and ordered by opts.
func (s *StandService) List(ctx context.Context, opts RankOptions) ([]domain.RankedStand, error) {
	stands, skipped, err := s.repo.ListApproved(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListApproved -> %w", err)
	}
	logSkipped(skipped)

	ranked, err := RankStands(stands, opts)
	if err != nil {
		return nil, err
	}

	return ranked, nil
}

func (s *StandService) ListPending(ctx context.Context) ([]domain.Stand, error) {
	stands, skipped, err := s.repo.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListPending -> %w", err)
	}
	logSkipped(skipped)

	return stands, nil
}

// Detail loads an approved stand with its check-in summary. The stand and
// its check-ins are fetched concurrently, then the authors' profiles in
// one query.
func (s *StandService) Detail(ctx context.Context, id uuid.UUID) (domain.StandDetail, error) {
	const op = "service.StandService.Detail"

	var (
		stand    domain.Stand
		checkIns []domain.CheckIn
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		found, err := s.repo.FindByID(gctx, id)
		if err != nil {
			return fmt.Errorf("s.repo.FindByID -> %w", err)
		}
		stand = found
		return nil
	})
	g.Go(func() error {
		found, err := s.checkIns.FindByStandID(gctx, id, 0)
		if err != nil {
			return fmt.Errorf("s.checkIns.FindByStandID -> %w", err)
		}
		checkIns = found
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.StandDetail{}, err
	}

	if !stand.IsApproved {
		return domain.StandDetail{}, apperr.NotFound(op, ErrStandNotFound)
	}

	profiles, err := s.profiles.FindByIDs(ctx, userIDs(checkIns))
	if err != nil {
		return domain.StandDetail{}, fmt.Errorf("s.profiles.FindByIDs -> %w", err)
	}

	return domain.StandDetail{
		Stand:   stand,
		Summary: Summarize(stand.SubmittedBy, checkIns, profiles, s.settings.Snapshot().RecentVerifiers),
	}, nil
}

// Submit stores a validated stand as pending approval. submitter is nil
// for anonymous listings.
func (s *StandService) Submit(ctx context.Context, stand domain.Stand, submitter *uuid.UUID, form string) (domain.Stand, error) {
	stand.ID = uuid.Nil
	stand.IsApproved = false
	stand.StockLevel = domain.StockHigh
	stand.LastVerifiedAt = s.now().UTC()
	stand.SubmittedBy = domain.AnonymousSubmitterID
	if submitter != nil {
		stand.SubmittedBy = *submitter
	}
	if stand.PaymentMethods == nil {
		stand.PaymentMethods = []domain.PaymentMethod{}
	}
	if stand.Photos == nil {
		stand.Photos = []string{}
	}

	created, err := s.repo.Create(ctx, stand)
	if err != nil {
		return domain.Stand{}, fmt.Errorf("s.repo.Create -> %w", err)
	}
	metrics.StandSubmissions.WithLabelValues(form).Inc()

	if s.notifier != nil {
		if err := s.notifier.StandSubmitted(ctx, created); err != nil {
			zap.L().Warn("could not notify moderators", zap.String("stand_id", created.ID.String()), zap.Error(err))
		}
	}
	if s.events != nil {
		if err := s.events.StandSubmitted(ctx, created); err != nil {
			zap.L().Warn("could not publish stand event", zap.String("stand_id", created.ID.String()), zap.Error(err))
		}
	}

	return created, nil
}

// SubmitDraft validates every wizard step and submits the draft.
func (s *StandService) SubmitDraft(ctx context.Context, draft domain.StandDraft, submitter *uuid.UUID) (domain.Stand, error) {
	if err := s.wizard.Validate(draft); err != nil {
		return domain.Stand{}, err
	}

	return s.Submit(ctx, draft.Stand(), submitter, "wizard")
}

func (s *StandService) Approve(ctx context.Context, id uuid.UUID) (domain.Stand, error) {
	if err := s.repo.Approve(ctx, id); err != nil {
		return domain.Stand{}, fmt.Errorf("s.repo.Approve -> %w", err)
	}

	stand, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Stand{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if s.events != nil {
		if err := s.events.StandApproved(ctx, stand); err != nil {
			zap.L().Warn("could not publish stand event", zap.String("stand_id", stand.ID.String()), zap.Error(err))
		}
	}

	return stand, nil
}

func logSkipped(skipped []error) {
	for _, err := range skipped {
		metrics.MalformedRows.WithLabelValues("stands").Inc()
		zap.L().Warn("skipping malformed stand row", zap.Error(err))
	}
}
