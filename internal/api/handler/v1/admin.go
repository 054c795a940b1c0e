package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/findlocalfirewood/firewood-api/internal/api/handler/v1/response"
	"github.com/findlocalfirewood/firewood-api/internal/api/middleware"
	"github.com/findlocalfirewood/firewood-api/internal/domain"
)

var errNotAdmin = errors.New("moderator access required")

type ModerationService interface {
	ListPending(ctx context.Context) ([]domain.Stand, error)
	Approve(ctx context.Context, id uuid.UUID) (domain.Stand, error)
}

type AdminHandler struct {
	svc      ModerationService
	profiles ProfileService
}

func NewAdminHandler(svc ModerationService, profiles ProfileService) *AdminHandler {
	return &AdminHandler{
		svc:      svc,
		profiles: profiles,
	}
}

// RequireAdmin must run after VerifyJWT.
func (h *AdminHandler) RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID, ok := middleware.UserID(ctx)
		if !ok {
			response.RenderErr(ctx, response.ErrUnauthorized(errNoUser))
			return
		}

		profile, err := h.profiles.GetProfile(ctx.Request.Context(), userID)
		if err != nil {
			response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.RequireAdmin -> h.profiles.GetProfile -> %w", err)))
			return
		}
		if !profile.IsAdmin {
			response.RenderErr(ctx, response.ErrPermissionDenied(errNotAdmin))
			return
		}

		ctx.Next()
	}
}

// HandleListPending godoc
// @Summary      Stands awaiting approval
// @Tags         admin
// @Produce      json
// @Success      200  {array}   domain.Stand
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Router       /admin/stands/pending [get]
// @Security BearerAuth
func (h *AdminHandler) HandleListPending(ctx *gin.Context) {
	stands, err := h.svc.ListPending(ctx.Request.Context())
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleListPending -> h.svc.ListPending -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, stands)
}

// HandleApproveStand godoc
// @Summary      Approve a submitted stand
// @Tags         admin
// @Produce      json
// @Param        standID  path      string  true  "Stand ID"
// @Success      200      {object}  domain.Stand
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Router       /admin/stands/{standID}/approve [patch]
// @Security BearerAuth
func (h *AdminHandler) HandleApproveStand(ctx *gin.Context) {
	standID, respErr := standIDParam(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	stand, err := h.svc.Approve(ctx.Request.Context(), standID)
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleApproveStand -> h.svc.Approve -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, stand)
}
