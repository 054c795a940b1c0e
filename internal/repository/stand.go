package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/findlocalfirewood/firewood-api/internal/apperr"
	"github.com/findlocalfirewood/firewood-api/internal/domain"
	"github.com/findlocalfirewood/firewood-api/internal/pkg/geo"
	"github.com/findlocalfirewood/firewood-api/internal/repository/dao"
)

type StandDAO interface {
	Insert(ctx context.Context, stand dao.Stand) (dao.Stand, error)
	FindByID(ctx context.Context, id uuid.UUID) (dao.Stand, error)
	FindByApproval(ctx context.Context, approved bool) ([]dao.Stand, error)
	Approve(ctx context.Context, id uuid.UUID) error
	UpdateInventory(ctx context.Context, id uuid.UUID, stockLevel string, verifiedAt time.Time, paymentMethods []string) error
}

type StandRepository struct {
	dao StandDAO
}

func NewStandRepository(dao StandDAO) *StandRepository {
	return &StandRepository{
		dao: dao,
	}
}

func (r *StandRepository) Create(ctx context.Context, stand domain.Stand) (domain.Stand, error) {
	created, err := r.dao.Insert(ctx, standDomainToDao(stand))
	if err != nil {
		return domain.Stand{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return standDaoToDomain(created)
}

func (r *StandRepository) FindByID(ctx context.Context, id uuid.UUID) (domain.Stand, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Stand{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return standDaoToDomain(found)
}

// ListApproved returns the active stands. Rows that fail to map are
// skipped and reported through skipped, so one bad row does not hide
// the whole directory.
func (r *StandRepository) ListApproved(ctx context.Context) (stands []domain.Stand, skipped []error, err error) {
	return r.list(ctx, true)
}

func (r *StandRepository) ListPending(ctx context.Context) (stands []domain.Stand, skipped []error, err error) {
	return r.list(ctx, false)
}

func (r *StandRepository) list(ctx context.Context, approved bool) ([]domain.Stand, []error, error) {
	rows, err := r.dao.FindByApproval(ctx, approved)
	if err != nil {
		return nil, nil, fmt.Errorf("r.dao.FindByApproval -> %w", err)
	}

	stands := make([]domain.Stand, 0, len(rows))
	var skipped []error
	for _, row := range rows {
		s, err := standDaoToDomain(row)
		if err != nil {
			skipped = append(skipped, err)
			continue
		}
		stands = append(stands, s)
	}

	return stands, skipped, nil
}

func (r *StandRepository) Approve(ctx context.Context, id uuid.UUID) error {
	if err := r.dao.Approve(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Approve -> %w", err)
	}

	return nil
}

func (r *StandRepository) UpdateInventory(ctx context.Context, id uuid.UUID, update domain.InventoryUpdate) error {
	var methods []string
	if update.PaymentMethods != nil {
		methods = paymentMethodsToStrings(update.PaymentMethods)
	}

	if err := r.dao.UpdateInventory(ctx, id, string(update.StockLevel), update.LastVerifiedAt, methods); err != nil {
		return fmt.Errorf("r.dao.UpdateInventory -> %w", err)
	}

	return nil
}

func standDomainToDao(s domain.Stand) dao.Stand {
	row := dao.Stand{
		ID:                s.ID,
		Name:              s.Name,
		Address:           s.Address,
		PriceTier:         string(s.PriceTier),
		PaymentMethods:    paymentMethodsToStrings(s.PaymentMethods),
		IsBundled:         s.IsBundled,
		IsLoose:           s.IsLoose,
		SelfServe:         s.SelfServe,
		OnsitePerson:      s.OnsitePerson,
		DeliveryAvailable: s.DeliveryAvailable,
		AdditionalDetails: s.AdditionalDetails,
		Photos:            s.Photos,
		IsApproved:        s.IsApproved,
		StockLevel:        string(s.StockLevel),
		LastVerifiedAt:    s.LastVerifiedAt,
		SubmittedBy:       s.SubmittedBy,
		SubmitterName:     s.SubmitterName,
		SubmitterEmail:    s.SubmitterEmail,
		SubmitterPhone:    s.SubmitterPhone,
	}
	if s.Location != nil {
		lat, lon := s.Location.Lat, s.Location.Lon
		row.Latitude = &lat
		row.Longitude = &lon
	}

	return row
}

func standDaoToDomain(row dao.Stand) (domain.Stand, error) {
	const op = "repository.standDaoToDomain"

	location, err := locationFromColumns(row.Latitude, row.Longitude)
	if err != nil {
		return domain.Stand{}, malformed(op, row.ID, "location", err.Error())
	}

	level := domain.StockLevel(row.StockLevel)
	if !level.IsValid() {
		return domain.Stand{}, malformed(op, row.ID, "stock_level", fmt.Sprintf("unknown value %q", row.StockLevel))
	}

	tier := domain.PriceTier(row.PriceTier)
	if tier != domain.PriceUnknown && !tier.IsValid() {
		return domain.Stand{}, malformed(op, row.ID, "price_tier", fmt.Sprintf("unknown value %q", row.PriceTier))
	}

	methods, err := paymentMethodsFromStrings(row.PaymentMethods)
	if err != nil {
		return domain.Stand{}, malformed(op, row.ID, "payment_methods", err.Error())
	}

	return domain.Stand{
		ID:                row.ID,
		Name:              row.Name,
		Address:           row.Address,
		Location:          location,
		PriceTier:         tier,
		PaymentMethods:    methods,
		IsBundled:         row.IsBundled,
		IsLoose:           row.IsLoose,
		SelfServe:         row.SelfServe,
		OnsitePerson:      row.OnsitePerson,
		DeliveryAvailable: row.DeliveryAvailable,
		AdditionalDetails: row.AdditionalDetails,
		Photos:            nonNil(row.Photos),
		IsApproved:        row.IsApproved,
		StockLevel:        level,
		LastVerifiedAt:    row.LastVerifiedAt,
		SubmittedBy:       row.SubmittedBy,
		SubmitterName:     row.SubmitterName,
		SubmitterEmail:    row.SubmitterEmail,
		SubmitterPhone:    row.SubmitterPhone,
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
	}, nil
}

func locationFromColumns(lat, lon *float64) (*geo.Point, error) {
	switch {
	case lat == nil && lon == nil:
		return nil, nil
	case lat == nil || lon == nil:
		return nil, fmt.Errorf("latitude and longitude must both be set or both be empty")
	}

	p := geo.Point{Lat: *lat, Lon: *lon}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	return &p, nil
}

func paymentMethodsToStrings(methods []domain.PaymentMethod) []string {
	out := make([]string, len(methods))
	for i, m := range methods {
		out[i] = string(m)
	}

	return out
}

func paymentMethodsFromStrings(values []string) ([]domain.PaymentMethod, error) {
	out := make([]domain.PaymentMethod, 0, len(values))
	for _, v := range values {
		m := domain.PaymentMethod(v)
		if !m.IsValid() {
			return nil, fmt.Errorf("unknown payment method %q", v)
		}
		out = append(out, m)
	}

	return out, nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}

	return values
}

func malformed(op string, id uuid.UUID, field, reason string) error {
	return apperr.ValidationFields(op, fmt.Errorf("%w: %s %s", ErrMalformedRow, id, field), map[string]string{field: reason})
}
