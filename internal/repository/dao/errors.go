package dao

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/findlocalfirewood/firewood-api/internal/apperr"
)

var (
	ErrStandNotFound      = errors.New("stand not found")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrProfileEmailExists = errors.New("profile already exists")
	ErrUnavailable        = errors.New("database unavailable")
)

// classify turns a gorm/pgx error into an apperr kind. notFound is the
// sentinel reported when no row matched.
func classify(op string, err error, notFound error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(op, notFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgerrcode.UniqueViolation:
			return apperr.Conflict(op, err)
		case pgerrcode.IsConnectionException(pgErr.Code),
			pgerrcode.IsInsufficientResources(pgErr.Code),
			pgErr.Code == pgerrcode.SerializationFailure,
			pgErr.Code == pgerrcode.DeadlockDetected,
			pgErr.Code == pgerrcode.AdminShutdown,
			pgErr.Code == pgerrcode.CannotConnectNow:
			return apperr.Transient(op, errors.Join(ErrUnavailable, err))
		}

		return err
	}

	var netErr net.Error
	if pgconn.Timeout(err) ||
		pgconn.SafeToRetry(err) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, driver.ErrBadConn) ||
		errors.As(err, &netErr) {
		return apperr.Transient(op, errors.Join(ErrUnavailable, err))
	}

	return err
}
