package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/findlocalfirewood/firewood-api/internal/config"
	"github.com/findlocalfirewood/firewood-api/internal/domain"
)

type staticSettings config.CheckInSettings

func (s staticSettings) Snapshot() config.CheckInSettings {
	return config.CheckInSettings(s)
}

func defaultSettings() staticSettings {
	return staticSettings{DailyLimit: 10, WarningThreshold: 8, QuotaScope: "global", RecentVerifiers: 10}
}

type mockCheckInRepo struct {
	mock.Mock
}

func (m *mockCheckInRepo) Create(ctx context.Context, c domain.CheckIn) (domain.CheckIn, error) {
	args := m.Called(ctx, c)
	if fn, ok := args.Get(0).(func(context.Context, domain.CheckIn) domain.CheckIn); ok {
		return fn(ctx, c), args.Error(1)
	}
	return args.Get(0).(domain.CheckIn), args.Error(1)
}

func (m *mockCheckInRepo) FindByStandID(ctx context.Context, standID uuid.UUID, limit int) ([]domain.CheckIn, error) {
	args := m.Called(ctx, standID, limit)
	return args.Get(0).([]domain.CheckIn), args.Error(1)
}

func (m *mockCheckInRepo) CountByUserSince(ctx context.Context, userID uuid.UUID, since time.Time, standID *uuid.UUID) (int, error) {
	args := m.Called(ctx, userID, since, standID)
	return args.Int(0), args.Error(1)
}

func (m *mockCheckInRepo) CountByFingerprintSince(ctx context.Context, fingerprint string, since time.Time, standID *uuid.UUID) (int, error) {
	args := m.Called(ctx, fingerprint, since, standID)
	return args.Int(0), args.Error(1)
}

type mockStandRepo struct {
	mock.Mock
}

func (m *mockStandRepo) Create(ctx context.Context, stand domain.Stand) (domain.Stand, error) {
	args := m.Called(ctx, stand)
	if fn, ok := args.Get(0).(func(context.Context, domain.Stand) domain.Stand); ok {
		return fn(ctx, stand), args.Error(1)
	}
	return args.Get(0).(domain.Stand), args.Error(1)
}

func (m *mockStandRepo) FindByID(ctx context.Context, id uuid.UUID) (domain.Stand, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Stand), args.Error(1)
}

func (m *mockStandRepo) ListApproved(ctx context.Context) ([]domain.Stand, []error, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Stand), nil, args.Error(1)
}

func (m *mockStandRepo) ListPending(ctx context.Context) ([]domain.Stand, []error, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Stand), nil, args.Error(1)
}

func (m *mockStandRepo) Approve(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockStandRepo) UpdateInventory(ctx context.Context, id uuid.UUID, update domain.InventoryUpdate) error {
	return m.Called(ctx, id, update).Error(0)
}

type mockProfiles struct {
	mock.Mock
}

func (m *mockProfiles) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Profile, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(map[uuid.UUID]domain.Profile), args.Error(1)
}

type recordingFeed struct {
	entries []domain.CheckInEntry
}

func (f *recordingFeed) Broadcast(_ uuid.UUID, entry domain.CheckInEntry) {
	f.entries = append(f.entries, entry)
}

type recordingEvents struct {
	checkIns  []domain.CheckIn
	submitted []domain.Stand
	approved  []domain.Stand
	err       error
}

func (e *recordingEvents) CheckInCreated(_ context.Context, c domain.CheckIn) error {
	e.checkIns = append(e.checkIns, c)
	return e.err
}

func (e *recordingEvents) StandSubmitted(_ context.Context, s domain.Stand) error {
	e.submitted = append(e.submitted, s)
	return e.err
}

func (e *recordingEvents) StandApproved(_ context.Context, s domain.Stand) error {
	e.approved = append(e.approved, s)
	return e.err
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
