package dao

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Verification is a stored check-in.
type Verification struct {
	ID                    uuid.UUID  `gorm:"type:uuid;primaryKey"`
	StandID               uuid.UUID  `gorm:"type:uuid;not null;index"`
	Stand                 *Stand     `gorm:"foreignKey:StandID;constraint:OnDelete:CASCADE"`
	UserID                *uuid.UUID `gorm:"type:uuid;index"`
	AnonymousName         string
	AnonymousFingerprint  string         `gorm:"index"`
	StockLevel            string         `gorm:"not null"`
	PaymentMethods        pq.StringArray `gorm:"type:text[]"`
	Note                  string
	Photos                pq.StringArray `gorm:"type:text[]"`
	SuggestedPrimaryPhoto string
	CreatedAt             time.Time `gorm:"not null;index"`
}

func (Verification) TableName() string {
	return "verifications"
}

func (v *Verification) BeforeCreate(*gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}

	return nil
}

type VerificationDAO struct {
	db *gorm.DB
}

func NewVerificationDAO(db *gorm.DB) *VerificationDAO {
	return &VerificationDAO{
		db: db,
	}
}

func (d *VerificationDAO) Insert(ctx context.Context, v Verification) (Verification, error) {
	v.Stand = nil

	result := d.db.WithContext(ctx).Create(&v)
	if result.Error != nil {
		return Verification{}, classify("dao.VerificationDAO.Insert", result.Error, ErrStandNotFound)
	}

	return v, nil
}

// FindByStandID returns the stand's check-ins, newest first. limit <= 0
// returns all of them.
func (d *VerificationDAO) FindByStandID(ctx context.Context, standID uuid.UUID, limit int) ([]Verification, error) {
	var verifications []Verification

	query := d.db.WithContext(ctx).
		Where("stand_id = ?", standID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if result := query.Find(&verifications); result.Error != nil {
		return nil, classify("dao.VerificationDAO.FindByStandID", result.Error, ErrStandNotFound)
	}

	return verifications, nil
}

// CountByUserSince counts a user's check-ins created at or after since,
// optionally restricted to one stand.
func (d *VerificationDAO) CountByUserSince(ctx context.Context, userID uuid.UUID, since time.Time, standID *uuid.UUID) (int64, error) {
	return d.countSince(ctx, "dao.VerificationDAO.CountByUserSince", "user_id = ?", userID, since, standID)
}

func (d *VerificationDAO) CountByFingerprintSince(ctx context.Context, fingerprint string, since time.Time, standID *uuid.UUID) (int64, error) {
	return d.countSince(ctx, "dao.VerificationDAO.CountByFingerprintSince", "user_id IS NULL AND anonymous_fingerprint = ?", fingerprint, since, standID)
}

func (d *VerificationDAO) countSince(ctx context.Context, op, cond string, arg interface{}, since time.Time, standID *uuid.UUID) (int64, error) {
	var count int64

	query := d.db.WithContext(ctx).
		Model(&Verification{}).
		Where(cond, arg).
		Where("created_at >= ?", since)
	if standID != nil {
		query = query.Where("stand_id = ?", *standID)
	}

	if result := query.Count(&count); result.Error != nil {
		return 0, classify(op, result.Error, ErrStandNotFound)
	}

	return count, nil
}
