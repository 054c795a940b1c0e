package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/findlocalfirewood/firewood-api/internal/domain"
	"github.com/findlocalfirewood/firewood-api/internal/repository/dao"
)

type VerificationDAO interface {
	Insert(ctx context.Context, v dao.Verification) (dao.Verification, error)
	FindByStandID(ctx context.Context, standID uuid.UUID, limit int) ([]dao.Verification, error)
	CountByUserSince(ctx context.Context, userID uuid.UUID, since time.Time, standID *uuid.UUID) (int64, error)
	CountByFingerprintSince(ctx context.Context, fingerprint string, since time.Time, standID *uuid.UUID) (int64, error)
}

type CheckInRepository struct {
	dao VerificationDAO
}

func NewCheckInRepository(dao VerificationDAO) *CheckInRepository {
	return &CheckInRepository{
		dao: dao,
	}
}

func (r *CheckInRepository) Create(ctx context.Context, c domain.CheckIn) (domain.CheckIn, error) {
	created, err := r.dao.Insert(ctx, dao.Verification{
		ID:                    c.ID,
		StandID:               c.StandID,
		UserID:                c.UserID,
		AnonymousName:         c.AnonymousName,
		AnonymousFingerprint:  c.Fingerprint,
		StockLevel:            string(c.StockLevel),
		PaymentMethods:        paymentMethodsToStrings(c.PaymentMethods),
		Note:                  c.Note,
		Photos:                c.Photos,
		SuggestedPrimaryPhoto: c.SuggestedPrimaryPhoto,
		CreatedAt:             c.CreatedAt,
	})
	if err != nil {
		return domain.CheckIn{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return checkInDaoToDomain(created)
}

// FindByStandID returns a stand's check-ins, newest first. Unlike stand
// listings a malformed row fails the whole call: the aggregate would be
// wrong without it.
func (r *CheckInRepository) FindByStandID(ctx context.Context, standID uuid.UUID, limit int) ([]domain.CheckIn, error) {
	rows, err := r.dao.FindByStandID(ctx, standID, limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByStandID -> %w", err)
	}

	out := make([]domain.CheckIn, 0, len(rows))
	for _, row := range rows {
		c, err := checkInDaoToDomain(row)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}

	return out, nil
}

func (r *CheckInRepository) CountByUserSince(ctx context.Context, userID uuid.UUID, since time.Time, standID *uuid.UUID) (int, error) {
	n, err := r.dao.CountByUserSince(ctx, userID, since, standID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountByUserSince -> %w", err)
	}

	return int(n), nil
}

func (r *CheckInRepository) CountByFingerprintSince(ctx context.Context, fingerprint string, since time.Time, standID *uuid.UUID) (int, error) {
	n, err := r.dao.CountByFingerprintSince(ctx, fingerprint, since, standID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountByFingerprintSince -> %w", err)
	}

	return int(n), nil
}

func checkInDaoToDomain(row dao.Verification) (domain.CheckIn, error) {
	const op = "repository.checkInDaoToDomain"

	level := domain.StockLevel(row.StockLevel)
	if !level.IsValid() {
		return domain.CheckIn{}, malformed(op, row.ID, "stock_level", fmt.Sprintf("unknown value %q", row.StockLevel))
	}

	methods, err := paymentMethodsFromStrings(row.PaymentMethods)
	if err != nil {
		return domain.CheckIn{}, malformed(op, row.ID, "payment_methods", err.Error())
	}

	return domain.CheckIn{
		ID:                    row.ID,
		StandID:               row.StandID,
		UserID:                row.UserID,
		AnonymousName:         row.AnonymousName,
		Fingerprint:           row.AnonymousFingerprint,
		StockLevel:            level,
		PaymentMethods:        methods,
		Note:                  row.Note,
		Photos:                nonNil(row.Photos),
		SuggestedPrimaryPhoto: row.SuggestedPrimaryPhoto,
		CreatedAt:             row.CreatedAt,
	}, nil
}
