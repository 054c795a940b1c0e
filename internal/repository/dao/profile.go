package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/findlocalfirewood/firewood-api/internal/apperr"
)

type Profile struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	Email    string `gorm:"unique;not null"`
	Password string `gorm:"not null"`

	FirstName string
	LastName  string
	IsAdmin   bool `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (p *Profile) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}

	return nil
}

type ProfileDAO struct {
	db *gorm.DB
}

func NewProfileDAO(db *gorm.DB) *ProfileDAO {
	return &ProfileDAO{
		db: db,
	}
}

func (d *ProfileDAO) Insert(ctx context.Context, profile Profile) (Profile, error) {
	result := d.db.WithContext(ctx).Create(&profile)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, `unique constraint "uni_profiles_email"`) {
			return Profile{}, apperr.Conflict("dao.ProfileDAO.Insert", ErrProfileEmailExists)
		}

		return Profile{}, classify("dao.ProfileDAO.Insert", result.Error, ErrProfileNotFound)
	}

	return profile, nil
}

func (d *ProfileDAO) FindByID(ctx context.Context, id uuid.UUID) (Profile, error) {
	var profile Profile

	result := d.db.WithContext(ctx).First(&profile, "id = ?", id)
	if result.Error != nil {
		return Profile{}, classify("dao.ProfileDAO.FindByID", result.Error, ErrProfileNotFound)
	}

	return profile, nil
}

func (d *ProfileDAO) FindByEmail(ctx context.Context, email string) (Profile, error) {
	var profile Profile

	result := d.db.WithContext(ctx).First(&profile, "email = ?", email)
	if result.Error != nil {
		return Profile{}, classify("dao.ProfileDAO.FindByEmail", result.Error, ErrProfileNotFound)
	}

	return profile, nil
}

func (d *ProfileDAO) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Profile, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var profiles []Profile

	result := d.db.WithContext(ctx).Where("id IN ?", ids).Find(&profiles)
	if result.Error != nil {
		return nil, classify("dao.ProfileDAO.FindByIDs", result.Error, ErrProfileNotFound)
	}

	return profiles, nil
}

func (d *ProfileDAO) UpdateNames(ctx context.Context, id uuid.UUID, firstName, lastName string) (Profile, error) {
	result := d.db.WithContext(ctx).
		Model(&Profile{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"first_name": firstName,
			"last_name":  lastName,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return Profile{}, classify("dao.ProfileDAO.UpdateNames", result.Error, ErrProfileNotFound)
	}
	if result.RowsAffected == 0 {
		return Profile{}, apperr.NotFound("dao.ProfileDAO.UpdateNames", ErrProfileNotFound)
	}

	return d.FindByID(ctx, id)
}
