package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/findlocalfirewood/firewood-api/internal/apperr"
	"github.com/findlocalfirewood/firewood-api/internal/domain"
)

type Err struct {
	Err            error `json:"-"`
	HTTPStatusCode int   `json:"-"`

	StatusText string            `json:"status"`
	ErrorText  string            `json:"error,omitempty"`
	Fields     map[string]string `json:"fields,omitempty"`
}

func (e *Err) Error() string {
	return e.ErrorText
}

// PartialErr is an error rendered together with the work that completed
// before the failure.
type PartialErr struct {
	*Err
	Completed any `json:"completed"`
}

func RenderErr(ctx *gin.Context, e *Err) {
	logServerErr(ctx, e)
	ctx.AbortWithStatusJSON(e.HTTPStatusCode, e)
}

func RenderPartialErr(ctx *gin.Context, e *Err, completed any) {
	logServerErr(ctx, e)
	ctx.AbortWithStatusJSON(e.HTTPStatusCode, PartialErr{Err: e, Completed: completed})
}

func logServerErr(ctx *gin.Context, e *Err) {
	if e.HTTPStatusCode >= http.StatusInternalServerError {
		zap.L().Error(e.StatusText,
			zap.Error(e.Err),
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.FullPath()),
		)
	}
}

func newErr(status int, err error) *Err {
	e := &Err{
		Err:            err,
		HTTPStatusCode: status,
		StatusText:     http.StatusText(status),
	}
	if err != nil && status < http.StatusInternalServerError {
		e.ErrorText = err.Error()
	}

	return e
}

func ErrBadRequest(err error) *Err {
	return newErr(http.StatusBadRequest, err)
}

func ErrUnauthorized(err error) *Err {
	return newErr(http.StatusUnauthorized, err)
}

func ErrWrongCredentials(err error) *Err {
	e := newErr(http.StatusUnauthorized, err)
	e.ErrorText = "email or password is incorrect"

	return e
}

func ErrPermissionDenied(err error) *Err {
	return newErr(http.StatusForbidden, err)
}

func ErrNotFound(resource, field string, value any) *Err {
	return newErr(http.StatusNotFound, fmt.Errorf("%s with %s %v not found", resource, field, value))
}

func ErrInvalidInput(err error, fields map[string]string) *Err {
	e := newErr(http.StatusUnprocessableEntity, err)
	e.Fields = fields

	return e
}

func ErrInternalServerError(err error) *Err {
	return newErr(http.StatusInternalServerError, err)
}

// FromError maps a service error onto its HTTP rendering by kind.
func FromError(err error) *Err {
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		return newErr(http.StatusNotFound, rootCause(err))
	case apperr.KindValidation:
		return ErrInvalidInput(rootCause(err), apperr.FieldsOf(err))
	case apperr.KindConflict:
		return newErr(http.StatusConflict, rootCause(err))
	case apperr.KindRateLimited:
		e := newErr(http.StatusTooManyRequests, rootCause(err))
		e.Fields = apperr.FieldsOf(err)
		return e
	case apperr.KindTransient:
		e := newErr(http.StatusServiceUnavailable, err)
		e.ErrorText = "temporarily unavailable, try again"
		return e
	}

	return ErrInternalServerError(err)
}

// rootCause strips the operation prefixes so clients see the sentinel
// message rather than the internal call chain.
func rootCause(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}

type LoginResponse struct {
	Token   string         `json:"token"`
	Profile domain.Profile `json:"profile"`
}
