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
	"github.com/findlocalfirewood/firewood-api/internal/service"
)

type StandService interface {
	List(ctx context.Context, opts service.RankOptions) ([]domain.RankedStand, error)
	Detail(ctx context.Context, id uuid.UUID) (domain.StandDetail, error)
	Submit(ctx context.Context, stand domain.Stand, submitter *uuid.UUID, form string) (domain.Stand, error)
	SubmitDraft(ctx context.Context, draft domain.StandDraft, submitter *uuid.UUID) (domain.Stand, error)
}

type StandWizard interface {
	CanEnter(step service.WizardStep, d domain.StandDraft) error
}

type StandHandler struct {
	svc    StandService
	wizard StandWizard
}

func NewStandHandler(svc StandService, wizard StandWizard) *StandHandler {
	return &StandHandler{
		svc:    svc,
		wizard: wizard,
	}
}

type FormValidationResponse struct {
	Valid  bool                `json:"valid"`
	Errors request.FieldErrors `json:"errors"`
}

type WizardStepResponse struct {
	Step     string `json:"step"`
	CanEnter bool   `json:"can_enter"`
}

// HandleListStands godoc
// @Summary      List approved stands
// @Description  Sorted by name, or by distance from lat/lon with unlocated stands last. state filters by US state name or abbreviation.
// @Tags         stands
// @Produce      json
// @Param        state  query     string  false  "US state"
// @Param        sort   query     string  false  "name or distance"
// @Param        lat    query     number  false  "origin latitude"
// @Param        lon    query     number  false  "origin longitude"
// @Success      200    {array}   domain.RankedStand
// @Failure      422    {object}  response.Err
// @Failure      503    {object}  response.Err
// @Router       /stands [get]
func (h *StandHandler) HandleListStands(ctx *gin.Context) {
	var query request.ListStandsQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	opts, err := query.Options()
	if err != nil {
		response.RenderErr(ctx, response.ErrInvalidInput(err, request.FieldErrorsFrom(err)))
		return
	}

	stands, err := h.svc.List(ctx.Request.Context(), opts)
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleListStands -> h.svc.List -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, stands)
}

// HandleGetStand godoc
// @Summary      Get a stand with its check-in summary
// @Tags         stands
// @Produce      json
// @Param        standID  path      string  true  "Stand ID"
// @Success      200      {object}  domain.StandDetail
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Router       /stands/{standID} [get]
func (h *StandHandler) HandleGetStand(ctx *gin.Context) {
	standID, respErr := standIDParam(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	detail, err := h.svc.Detail(ctx.Request.Context(), standID)
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleGetStand -> h.svc.Detail -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, detail)
}

// HandleCreateStand godoc
// @Summary      Submit a stand through the single-page form
// @Description  Every listing field is required. The stand is hidden until a moderator approves it.
// @Tags         stands
// @Accept       json
// @Produce      json
// @Param        request  body      request.ListStandRequest  true  "stand"
// @Success      201      {object}  domain.Stand
// @Failure      400      {object}  response.Err
// @Failure      422      {object}  response.Err
// @Router       /stands [post]
func (h *StandHandler) HandleCreateStand(ctx *gin.Context) {
	var req request.ListStandRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrInvalidInput(err, request.FieldErrorsFrom(err)))
		return
	}

	stand, err := h.svc.Submit(ctx.Request.Context(), req.Stand(), optionalUserID(ctx), "form")
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleCreateStand -> h.svc.Submit -> %w", err)))
		return
	}

	ctx.JSON(http.StatusCreated, stand)
}

// HandleValidateForm godoc
// @Summary      Validate the listing form without submitting it
// @Description  With ?field= only that field is checked, so its error can be cleared as soon as it is edited.
// @Tags         stands
// @Accept       json
// @Produce      json
// @Param        field    query     string                    false  "single field to validate"
// @Param        request  body      request.ListStandRequest  true   "stand"
// @Success      200      {object}  FormValidationResponse
// @Failure      400      {object}  response.Err
// @Router       /stands/form/validate [post]
func (h *StandHandler) HandleValidateForm(ctx *gin.Context) {
	var req request.ListStandRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	resp := FormValidationResponse{Errors: request.FieldErrors{}}
	if field := ctx.Query("field"); field != "" {
		if err := req.ValidateField(field); err != nil {
			resp.Errors[field] = err.Error()
		}
	} else {
		resp.Errors = request.FieldErrorsFrom(req.Validate())
	}
	resp.Valid = len(resp.Errors) == 0

	ctx.JSON(http.StatusOK, resp)
}

// HandleWizardStep godoc
// @Summary      Check whether a wizard step may be entered
// @Description  Succeeds when every earlier step is complete; otherwise 422 naming the first incomplete step.
// @Tags         stands
// @Accept       json
// @Produce      json
// @Param        step     path      string             true  "1-4 or location, photos, details, contact"
// @Param        request  body      domain.StandDraft  true  "draft so far"
// @Success      200      {object}  WizardStepResponse
// @Failure      422      {object}  response.Err
// @Router       /stands/wizard/steps/{step} [post]
func (h *StandHandler) HandleWizardStep(ctx *gin.Context) {
	step, err := service.ParseStep(ctx.Param("step"))
	if err != nil {
		response.RenderErr(ctx, response.ErrNotFound("wizard step", "name", ctx.Param("step")))
		return
	}

	var draft domain.StandDraft
	if err := ctx.ShouldBindJSON(&draft); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.wizard.CanEnter(step, draft); err != nil {
		response.RenderErr(ctx, response.FromError(err))
		return
	}

	ctx.JSON(http.StatusOK, WizardStepResponse{Step: step.String(), CanEnter: true})
}

// HandleSubmitWizard godoc
// @Summary      Submit a stand from the listing wizard
// @Tags         stands
// @Accept       json
// @Produce      json
// @Param        request  body      domain.StandDraft  true  "completed draft"
// @Success      201      {object}  domain.Stand
// @Failure      400      {object}  response.Err
// @Failure      422      {object}  response.Err
// @Router       /stands/wizard [post]
func (h *StandHandler) HandleSubmitWizard(ctx *gin.Context) {
	var draft domain.StandDraft
	if err := ctx.ShouldBindJSON(&draft); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	stand, err := h.svc.SubmitDraft(ctx.Request.Context(), draft, optionalUserID(ctx))
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleSubmitWizard -> h.svc.SubmitDraft -> %w", err)))
		return
	}

	ctx.JSON(http.StatusCreated, stand)
}

func standIDParam(ctx *gin.Context) (uuid.UUID, *response.Err) {
	raw := ctx.Param("standID")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, response.ErrBadRequest(fmt.Errorf("invalid stand id %q", raw))
	}

	return id, nil
}

func optionalUserID(ctx *gin.Context) *uuid.UUID {
	id, ok := middleware.UserID(ctx)
	if !ok {
		return nil
	}

	return &id
}
