package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	base := errors.New("connection reset")

	tests := []struct {
		name      string
		err       error
		kind      Kind
		retryable bool
	}{
		{name: "plain error", err: base, kind: KindInternal},
		{name: "not found", err: NotFound("dao.FindStand", base), kind: KindNotFound},
		{name: "transient wrapped", err: fmt.Errorf("r.dao.FindStand -> %w", Transient("dao.FindStand", base)), kind: KindTransient, retryable: true},
		{name: "validation", err: Validation("repository.standDaoToDomain", base), kind: KindValidation},
		{name: "rate limited", err: RateLimited("service.SubmitCheckIn", base), kind: KindRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, KindOf(tt.err))
			assert.Equal(t, tt.retryable, IsRetryable(tt.err))
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	sentinel := errors.New("stand not found")
	err := fmt.Errorf("s.repo.FindByID -> %w", NotFound("dao.FindByID", sentinel))

	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, "dao.FindByID: stand not found", NotFound("dao.FindByID", sentinel).Error())
}

func TestFieldsOf(t *testing.T) {
	err := fmt.Errorf("wrapped -> %w", ValidationFields("request.Validate", errors.New("invalid"), map[string]string{"email": "must be a valid email address"}))

	assert.Equal(t, map[string]string{"email": "must be a valid email address"}, FieldsOf(err))
	assert.Nil(t, FieldsOf(errors.New("x")))
}
