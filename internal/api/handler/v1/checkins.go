package v1

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/findlocalfirewood/firewood-api/internal/api/handler/v1/request"
	"github.com/findlocalfirewood/firewood-api/internal/api/handler/v1/response"
	"github.com/findlocalfirewood/firewood-api/internal/domain"
	"github.com/findlocalfirewood/firewood-api/internal/service"
)

const defaultHistoryLimit = 50

type CheckInService interface {
	Submit(ctx context.Context, in domain.CheckInInput) (domain.CheckInResult, error)
	Quota(ctx context.Context, v service.Visitor, standID uuid.UUID) (domain.Quota, error)
	History(ctx context.Context, standID uuid.UUID, limit int) ([]domain.CheckInEntry, error)
}

type CheckInHandler struct {
	svc CheckInService
}

func NewCheckInHandler(svc CheckInService) *CheckInHandler {
	return &CheckInHandler{
		svc: svc,
	}
}

// HandleCreateCheckIn godoc
// @Summary      Check in at a stand
// @Description  Reports the stand's inventory. Signed-in and anonymous visitors are both accepted; each is limited to a number of check-ins per UTC day.
// @Tags         checkins
// @Accept       json
// @Produce      json
// @Param        standID  path      string                  true  "Stand ID"
// @Param        request  body      request.CheckInRequest  true  "check-in"
// @Success      201      {object}  domain.CheckInResult
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      422      {object}  response.Err
// @Failure      429      {object}  response.Err
// @Router       /stands/{standID}/checkins [post]
func (h *CheckInHandler) HandleCreateCheckIn(ctx *gin.Context) {
	standID, respErr := standIDParam(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CheckInRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrInvalidInput(err, request.FieldErrorsFrom(err)))
		return
	}

	in := req.Input()
	in.StandID = standID
	in.UserID = optionalUserID(ctx)
	in.Fingerprint = fingerprint(ctx)

	result, err := h.svc.Submit(ctx.Request.Context(), in)
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleCreateCheckIn -> h.svc.Submit -> %w", err)))
		return
	}

	ctx.JSON(http.StatusCreated, result)
}

// HandleListCheckIns godoc
// @Summary      List a stand's check-ins, newest first
// @Tags         checkins
// @Produce      json
// @Param        standID  path      string  true   "Stand ID"
// @Param        limit    query     int     false  "max entries (default 50)"
// @Success      200      {array}   domain.CheckInEntry
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Router       /stands/{standID}/checkins [get]
func (h *CheckInHandler) HandleListCheckIns(ctx *gin.Context) {
	standID, respErr := standIDParam(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", strconv.Itoa(defaultHistoryLimit)))
	if err != nil || limit < 1 {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("limit must be a positive integer")))
		return
	}

	entries, err := h.svc.History(ctx.Request.Context(), standID, limit)
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleListCheckIns -> h.svc.History -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, entries)
}

// HandleGetQuota godoc
// @Summary      Today's check-in quota for the caller
// @Tags         checkins
// @Produce      json
// @Param        stand_id  query     string  false  "required when quotas are per stand"
// @Success      200       {object}  domain.Quota
// @Failure      400       {object}  response.Err
// @Failure      422       {object}  response.Err
// @Router       /checkins/quota [get]
func (h *CheckInHandler) HandleGetQuota(ctx *gin.Context) {
	var standID uuid.UUID
	if raw := ctx.Query("stand_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid stand id %q", raw)))
			return
		}
		standID = id
	}

	visitor := service.Visitor{UserID: optionalUserID(ctx)}
	if visitor.UserID == nil {
		visitor.Fingerprint = fingerprint(ctx)
	}

	quota, err := h.svc.Quota(ctx.Request.Context(), visitor, standID)
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleGetQuota -> h.svc.Quota -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, quota)
}

// fingerprint identifies an anonymous visitor by client address and
// user agent. It is only as strong as those two headers.
func fingerprint(ctx *gin.Context) string {
	sum := sha256.Sum256([]byte(ctx.ClientIP() + "|" + ctx.Request.UserAgent()))

	return hex.EncodeToString(sum[:])
}
