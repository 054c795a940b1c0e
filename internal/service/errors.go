package service

import (
	"errors"

	"github.com/findlocalfirewood/firewood-api/internal/repository"
)

var (
	ErrStandNotFound      = repository.ErrStandNotFound
	ErrProfileNotFound    = repository.ErrProfileNotFound
	ErrProfileEmailExists = repository.ErrProfileEmailExists
	ErrMalformedRow       = repository.ErrMalformedRow

	ErrWrongPassword     = errors.New("wrong password")
	ErrUnknownState      = errors.New("unknown US state")
	ErrUnknownSort       = errors.New(`sort must be "name" or "distance"`)
	ErrDailyLimitReached = errors.New("daily check-in limit reached")
	ErrNoVisitorIdentity = errors.New("check-in has neither a user nor a fingerprint")
	ErrStandIDRequired   = errors.New("stand_id is required when quotas are counted per stand")
	ErrStepLocked        = errors.New("an earlier step is incomplete")
	ErrUnknownStep       = errors.New("unknown wizard step")
)
