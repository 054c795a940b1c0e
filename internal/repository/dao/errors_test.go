package dao

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/findlocalfirewood/firewood-api/internal/apperr"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind apperr.Kind
	}{
		{name: "record not found", err: gorm.ErrRecordNotFound, kind: apperr.KindNotFound},
		{name: "unique violation", err: &pgconn.PgError{Code: pgerrcode.UniqueViolation}, kind: apperr.KindConflict},
		{name: "connection failure", err: &pgconn.PgError{Code: pgerrcode.ConnectionFailure}, kind: apperr.KindTransient},
		{name: "serialization failure", err: &pgconn.PgError{Code: pgerrcode.SerializationFailure}, kind: apperr.KindTransient},
		{name: "deadline", err: fmt.Errorf("query: %w", context.DeadlineExceeded), kind: apperr.KindTransient},
		{name: "syntax error", err: &pgconn.PgError{Code: pgerrcode.SyntaxError}, kind: apperr.KindInternal},
		{name: "other", err: errors.New("boom"), kind: apperr.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, apperr.KindOf(classify("op", tt.err, ErrStandNotFound)))
		})
	}
}

func TestClassifyNotFoundUsesSentinel(t *testing.T) {
	err := classify("dao.StandDAO.FindByID", gorm.ErrRecordNotFound, ErrStandNotFound)

	assert.ErrorIs(t, err, ErrStandNotFound)
	assert.NoError(t, classify("op", nil, ErrStandNotFound))
}
