package v1

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/findlocalfirewood/firewood-api/internal/api/handler/v1/response"
	"github.com/findlocalfirewood/firewood-api/internal/service"
)

var errNoPhotos = errors.New("no photos in form field \"photos\"")

type PhotoService interface {
	Upload(ctx context.Context, purpose service.PhotoPurpose, alreadyStaged int, inputs []service.PhotoInput) (service.PhotoBatch, error)
}

type PhotoHandler struct {
	svc PhotoService
}

func NewPhotoHandler(svc PhotoService) *PhotoHandler {
	return &PhotoHandler{
		svc: svc,
	}
}

// HandleUploadPhotos godoc
// @Summary      Upload photos for a check-in or a stand submission
// @Description  Each photo is downscaled and re-encoded as JPEG. Oversized files and photos beyond the per-submission maximum are rejected individually; the rest are stored.
// @Tags         photos
// @Accept       multipart/form-data
// @Produce      json
// @Param        photos          formData  file    true   "one or more images"
// @Param        purpose         formData  string  true   "checkin or stand"
// @Param        already_staged  formData  int     false  "photos already attached to the submission"
// @Success      200             {object}  service.PhotoBatch
// @Failure      400             {object}  response.Err
// @Failure      422             {object}  response.Err
// @Failure      503             {object}  response.PartialErr  "completed holds the photos stored before the failure"
// @Router       /photos [post]
func (h *PhotoHandler) HandleUploadPhotos(ctx *gin.Context) {
	form, err := ctx.MultipartForm()
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	files := form.File["photos"]
	if len(files) == 0 {
		response.RenderErr(ctx, response.ErrBadRequest(errNoPhotos))
		return
	}

	staged := 0
	if raw := ctx.PostForm("already_staged"); raw != "" {
		staged, err = strconv.Atoi(raw)
		if err != nil || staged < 0 {
			response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("already_staged must be a non-negative integer")))
			return
		}
	}

	inputs := make([]service.PhotoInput, 0, len(files))
	closers := make([]io.Closer, 0, len(files))
	defer func() {
		for _, c := range closers {
			if err := c.Close(); err != nil {
				zap.L().Debug("closing upload", zap.Error(err))
			}
		}
	}()

	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("fh.Open(%s) -> %w", fh.Filename, err)))
			return
		}
		closers = append(closers, f)
		inputs = append(inputs, service.PhotoInput{Name: fh.Filename, Size: fh.Size, Body: f})
	}

	batch, err := h.svc.Upload(ctx.Request.Context(), service.PhotoPurpose(ctx.PostForm("purpose")), staged, inputs)
	if err != nil {
		e := response.FromError(fmt.Errorf("v1.HandleUploadPhotos -> h.svc.Upload -> %w", err))
		if len(batch.Stored) > 0 {
			response.RenderPartialErr(ctx, e, batch)
			return
		}
		response.RenderErr(ctx, e)
		return
	}

	ctx.JSON(http.StatusOK, batch)
}
