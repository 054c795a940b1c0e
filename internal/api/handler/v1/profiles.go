package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/findlocalfirewood/firewood-api/internal/api/handler/v1/request"
	"github.com/findlocalfirewood/firewood-api/internal/api/handler/v1/response"
	"github.com/findlocalfirewood/firewood-api/internal/api/middleware"
	"github.com/findlocalfirewood/firewood-api/internal/domain"
)

var errNoUser = fmt.Errorf("no authenticated user")

type ProfileService interface {
	GetProfile(ctx context.Context, id uuid.UUID) (domain.Profile, error)
	UpdateNames(ctx context.Context, id uuid.UUID, firstName, lastName string) (domain.Profile, error)
}

type ProfileHandler struct {
	svc ProfileService
}

func NewProfileHandler(svc ProfileService) *ProfileHandler {
	return &ProfileHandler{
		svc: svc,
	}
}

// HandleGetMe godoc
// @Summary      Get the caller's profile
// @Tags         profiles
// @Produce      json
// @Success      200      {object}   domain.Profile
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Router       /profiles/me [get]
// @Security BearerAuth
func (h *ProfileHandler) HandleGetMe(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized(errNoUser))
		return
	}

	profile, err := h.svc.GetProfile(ctx.Request.Context(), userID)
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleGetMe -> h.svc.GetProfile -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, profile)
}

// HandleUpdateMe godoc
// @Summary      Update the caller's display name
// @Tags         profiles
// @Produce      json
// @Param        request   body      request.UpdateProfileRequest true "request body"
// @Success      200      {object}   domain.Profile
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Router       /profiles/me [patch]
// @Security BearerAuth
func (h *ProfileHandler) HandleUpdateMe(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized(errNoUser))
		return
	}

	var req request.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrInvalidInput(err, request.FieldErrorsFrom(err)))
		return
	}

	profile, err := h.svc.UpdateNames(ctx.Request.Context(), userID, req.FirstName, req.LastName)
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleUpdateMe -> h.svc.UpdateNames -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, profile)
}
