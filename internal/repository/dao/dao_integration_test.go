package dao

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/findlocalfirewood/firewood-api/internal/apperr"
	"github.com/findlocalfirewood/firewood-api/internal/db"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err != nil || pool.Client.Ping() != nil {
		// No Docker: the Postgres-backed tests skip themselves.
		os.Exit(m.Run())
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=firewood",
			"POSTGRES_PASSWORD=secret",
			"POSTGRES_DB=firewood",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		fmt.Printf("could not start postgres: %v\n", err)
		os.Exit(m.Run())
	}
	_ = resource.Expire(180)

	dsn := fmt.Sprintf("postgres://firewood:secret@%s/firewood?sslmode=disable", resource.GetHostPort("5432/tcp"))
	pool.MaxWait = 120 * time.Second
	if err = pool.Retry(func() error {
		conn, err := db.OpenPostgresWithURL(dsn)
		if err != nil {
			return err
		}
		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		if err := sqlDB.Ping(); err != nil {
			return err
		}
		testDB = conn
		return nil
	}); err != nil {
		fmt.Printf("could not connect to postgres: %v\n", err)
		_ = pool.Purge(resource)
		os.Exit(1)
	}

	if err := InitTables(testDB); err != nil {
		fmt.Printf("could not migrate: %v\n", err)
		_ = pool.Purge(resource)
		os.Exit(1)
	}

	code := m.Run()
	_ = pool.Purge(resource)
	os.Exit(code)
}

func requireDB(t *testing.T) {
	t.Helper()
	if testDB == nil {
		t.Skip("docker not available")
	}
}

func TestProfileDAO(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	d := NewProfileDAO(testDB)

	email := uuid.NewString() + "@example.com"
	created, err := d.Insert(ctx, Profile{Email: email, Password: "hash", FirstName: "Ada"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)

	_, err = d.Insert(ctx, Profile{Email: email, Password: "hash"})
	assert.ErrorIs(t, err, ErrProfileEmailExists)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	updated, err := d.UpdateNames(ctx, created.ID, "Ada", "Lovelace")
	require.NoError(t, err)
	assert.Equal(t, "Lovelace", updated.LastName)

	found, err := d.FindByIDs(ctx, []uuid.UUID{created.ID, uuid.New()})
	require.NoError(t, err)
	assert.Len(t, found, 1)

	_, err = d.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestStandDAOInventoryAndApproval(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	d := NewStandDAO(testDB)

	lat, lon := 42.33, -83.04
	stand, err := d.Insert(ctx, Stand{
		Name:           "Cedar Road Wood",
		Address:        "1 Cedar Rd, Anytown, MI 48047",
		Latitude:       &lat,
		Longitude:      &lon,
		PaymentMethods: []string{"cash", "venmo"},
		StockLevel:     "High",
		LastVerifiedAt: time.Now().UTC(),
		SubmittedBy:    uuid.Nil,
	})
	require.NoError(t, err)
	assert.False(t, stand.IsApproved)

	require.NoError(t, d.UpdateInventory(ctx, stand.ID, "Low", time.Now().UTC(), nil))
	got, err := d.FindByID(ctx, stand.ID)
	require.NoError(t, err)
	assert.Equal(t, "Low", got.StockLevel)
	assert.Equal(t, []string{"cash", "venmo"}, []string(got.PaymentMethods))

	require.NoError(t, d.UpdateInventory(ctx, stand.ID, "None", time.Now().UTC(), []string{"zelle"}))
	got, err = d.FindByID(ctx, stand.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"zelle"}, []string(got.PaymentMethods))

	require.NoError(t, d.Approve(ctx, stand.ID))
	approved, err := d.FindByApproval(ctx, true)
	require.NoError(t, err)
	assert.NotEmpty(t, approved)

	assert.ErrorIs(t, d.Approve(ctx, uuid.New()), ErrStandNotFound)
}

func TestVerificationDAOCounts(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	stands := NewStandDAO(testDB)
	d := NewVerificationDAO(testDB)

	stand, err := stands.Insert(ctx, Stand{Name: "Maple", Address: "2 Maple Ln, Anytown, MI", StockLevel: "High", SubmittedBy: uuid.Nil})
	require.NoError(t, err)
	other, err := stands.Insert(ctx, Stand{Name: "Oak", Address: "3 Oak Ln, Anytown, MI", StockLevel: "High", SubmittedBy: uuid.Nil})
	require.NoError(t, err)

	user := uuid.New()
	startOfDay := time.Now().UTC().Truncate(24 * time.Hour)
	for _, s := range []uuid.UUID{stand.ID, stand.ID, other.ID} {
		_, err := d.Insert(ctx, Verification{StandID: s, UserID: &user, StockLevel: "Low"})
		require.NoError(t, err)
	}
	_, err = d.Insert(ctx, Verification{StandID: stand.ID, AnonymousName: "Sam", AnonymousFingerprint: "fp", StockLevel: "High"})
	require.NoError(t, err)

	global, err := d.CountByUserSince(ctx, user, startOfDay, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), global)

	perStand, err := d.CountByUserSince(ctx, user, startOfDay, &stand.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), perStand)

	anon, err := d.CountByFingerprintSince(ctx, "fp", startOfDay, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), anon)

	list, err := d.FindByStandID(ctx, stand.ID, 0)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.False(t, list[0].CreatedAt.Before(list[len(list)-1].CreatedAt))
}
