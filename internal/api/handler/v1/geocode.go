package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/findlocalfirewood/firewood-api/internal/api/handler/v1/response"
	"github.com/findlocalfirewood/firewood-api/internal/geocode"
	"github.com/findlocalfirewood/firewood-api/internal/pkg/geo"
)

type Geocoder interface {
	Search(ctx context.Context, q string) ([]geocode.Candidate, error)
	Reverse(ctx context.Context, p geo.Point) ([]geocode.Candidate, error)
}

type GeocodeHandler struct {
	geocoder Geocoder
}

func NewGeocodeHandler(geocoder Geocoder) *GeocodeHandler {
	return &GeocodeHandler{
		geocoder: geocoder,
	}
}

// HandleSearch godoc
// @Summary      Address suggestions for the listing forms
// @Tags         geocode
// @Produce      json
// @Param        q    query     string  true  "free-text address"
// @Success      200  {array}   geocode.Candidate
// @Failure      422  {object}  response.Err
// @Failure      503  {object}  response.Err
// @Router       /geocode [get]
func (h *GeocodeHandler) HandleSearch(ctx *gin.Context) {
	candidates, err := h.geocoder.Search(ctx.Request.Context(), ctx.Query("q"))
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleSearch -> h.geocoder.Search -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, candidates)
}

// HandleReverse godoc
// @Summary      Address for a dropped pin or the device location
// @Tags         geocode
// @Produce      json
// @Param        lat  query     number  true  "latitude"
// @Param        lon  query     number  true  "longitude"
// @Success      200  {array}   geocode.Candidate
// @Failure      400  {object}  response.Err
// @Failure      503  {object}  response.Err
// @Router       /geocode/reverse [get]
func (h *GeocodeHandler) HandleReverse(ctx *gin.Context) {
	lat, errLat := strconv.ParseFloat(ctx.Query("lat"), 64)
	lon, errLon := strconv.ParseFloat(ctx.Query("lon"), 64)
	if err := errors.Join(errLat, errLon); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("lat and lon must be numbers")))
		return
	}

	candidates, err := h.geocoder.Reverse(ctx.Request.Context(), geo.Point{Lat: lat, Lon: lon})
	if err != nil {
		response.RenderErr(ctx, response.FromError(fmt.Errorf("v1.HandleReverse -> h.geocoder.Reverse -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, candidates)
}
