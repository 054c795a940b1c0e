package dao

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/findlocalfirewood/firewood-api/internal/apperr"
)

type Stand struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name              string    `gorm:"not null"`
	Address           string    `gorm:"not null"`
	Latitude          *float64
	Longitude         *float64
	PriceTier         string
	PaymentMethods    pq.StringArray `gorm:"type:text[]"`
	IsBundled         bool           `gorm:"not null;default:false"`
	IsLoose           bool           `gorm:"not null;default:false"`
	SelfServe         bool           `gorm:"not null;default:false"`
	OnsitePerson      bool           `gorm:"not null;default:false"`
	DeliveryAvailable bool           `gorm:"not null;default:false"`
	AdditionalDetails string
	Photos            pq.StringArray `gorm:"type:text[]"`
	IsApproved        bool           `gorm:"not null;default:false;index"`
	StockLevel        string         `gorm:"not null;default:High"`
	LastVerifiedAt    time.Time
	SubmittedBy       uuid.UUID `gorm:"type:uuid;not null;index"`
	SubmitterName     string
	SubmitterEmail    string
	SubmitterPhone    string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (s *Stand) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}

	return nil
}

type StandDAO struct {
	db *gorm.DB
}

func NewStandDAO(db *gorm.DB) *StandDAO {
	return &StandDAO{
		db: db,
	}
}

func (d *StandDAO) Insert(ctx context.Context, stand Stand) (Stand, error) {
	result := d.db.WithContext(ctx).Create(&stand)
	if result.Error != nil {
		return Stand{}, classify("dao.StandDAO.Insert", result.Error, ErrStandNotFound)
	}

	return stand, nil
}

func (d *StandDAO) FindByID(ctx context.Context, id uuid.UUID) (Stand, error) {
	var stand Stand

	result := d.db.WithContext(ctx).First(&stand, "id = ?", id)
	if result.Error != nil {
		return Stand{}, classify("dao.StandDAO.FindByID", result.Error, ErrStandNotFound)
	}

	return stand, nil
}

func (d *StandDAO) FindByApproval(ctx context.Context, approved bool) ([]Stand, error) {
	var stands []Stand

	result := d.db.WithContext(ctx).
		Where("is_approved = ?", approved).
		Order("name ASC").
		Find(&stands)
	if result.Error != nil {
		return nil, classify("dao.StandDAO.FindByApproval", result.Error, ErrStandNotFound)
	}

	return stands, nil
}

func (d *StandDAO) Approve(ctx context.Context, id uuid.UUID) error {
	result := d.db.WithContext(ctx).
		Model(&Stand{}).
		Where("id = ?", id).
		Update("is_approved", true)
	if result.Error != nil {
		return classify("dao.StandDAO.Approve", result.Error, ErrStandNotFound)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("dao.StandDAO.Approve", ErrStandNotFound)
	}

	return nil
}

// UpdateInventory writes the fields a check-in owns. A nil paymentMethods
// leaves the column untouched.
func (d *StandDAO) UpdateInventory(ctx context.Context, id uuid.UUID, stockLevel string, verifiedAt time.Time, paymentMethods []string) error {
	updates := map[string]interface{}{
		"stock_level":      stockLevel,
		"last_verified_at": verifiedAt,
		"updated_at":       time.Now().UTC(),
	}
	if paymentMethods != nil {
		updates["payment_methods"] = pq.StringArray(paymentMethods)
	}

	result := d.db.WithContext(ctx).
		Model(&Stand{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return classify("dao.StandDAO.UpdateInventory", result.Error, ErrStandNotFound)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("dao.StandDAO.UpdateInventory", ErrStandNotFound)
	}

	return nil
}
