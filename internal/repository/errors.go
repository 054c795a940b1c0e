package repository

import (
	"errors"

	"github.com/findlocalfirewood/firewood-api/internal/repository/dao"
)

var (
	ErrStandNotFound      = dao.ErrStandNotFound
	ErrProfileNotFound    = dao.ErrProfileNotFound
	ErrProfileEmailExists = dao.ErrProfileEmailExists
	ErrUnavailable        = dao.ErrUnavailable

	// ErrMalformedRow is reported for stored rows that do not map onto a
	// valid domain value.
	ErrMalformedRow = errors.New("malformed row")
)
