package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/findlocalfirewood/firewood-api/internal/domain"
	"github.com/findlocalfirewood/firewood-api/internal/pkg/geo"
	"github.com/findlocalfirewood/firewood-api/internal/service"
)

func validListing() ListStandRequest {
	return ListStandRequest{
		Name:           "Maple Ridge Firewood",
		Address:        "4410 Maple Ridge Rd, Cadillac, MI",
		Location:       &geo.Point{Lat: 44.25, Lon: -85.4},
		IsBundled:      true,
		PriceTier:      domain.Price5To10,
		PaymentMethods: []domain.PaymentMethod{domain.PaymentCash},
		SubmitterName:  "Dana",
		SubmitterEmail: "dana@example.com",
	}
}

func TestListStandRequestValid(t *testing.T) {
	req := validListing()
	assert.NoError(t, req.Validate())
}

func TestListStandRequestReportsEveryField(t *testing.T) {
	req := ListStandRequest{SubmitterEmail: "not-an-email"}

	fields := FieldErrorsFrom(req.Validate())

	for _, f := range []string{"name", "submitter_name", "submitter_email", "address", "wood_type", "price_tier", "payment_methods"} {
		assert.Contains(t, fields, f)
	}
	assert.NotContains(t, fields, "additional_details")
	assert.Equal(t, errNoWoodType.Error(), fields["wood_type"])
}

func TestListStandRequestAddressNeedsCoordinates(t *testing.T) {
	req := validListing()
	req.Location = nil

	assert.ErrorIs(t, req.ValidateField("address"), errAddressNotSelected)

	req.Location = &geo.Point{Lat: 120, Lon: 0}
	assert.ErrorIs(t, req.ValidateField("address"), geo.ErrOutOfRange)
}

func TestFieldErrorsClearOnEdit(t *testing.T) {
	req := validListing()
	req.PaymentMethods = nil
	req.IsBundled = false

	fields := FieldErrorsFrom(req.Validate())
	require.Len(t, fields, 2)

	req.IsLoose = true
	if req.ValidateField("wood_type") == nil {
		fields.Clear("wood_type")
	}

	assert.Equal(t, FieldErrors{"payment_methods": errNoPaymentMethod.Error()}, fields)
}

func TestListStandRequestLimitsPhotos(t *testing.T) {
	req := validListing()
	req.Photos = []string{"a.jpg", "b.jpg", "c.jpg", "d.jpg", "e.jpg"}
	require.NoError(t, req.Validate())

	req.Photos = append(req.Photos, "f.jpg")
	fields := FieldErrorsFrom(req.Validate())
	assert.Equal(t, []string{"photos"}, keys(fields))
	assert.Error(t, req.ValidateField("photos"))
}

func keys(f FieldErrors) []string {
	out := make([]string, 0, len(f))
	for k := range f {
		out = append(out, k)
	}
	return out
}

func TestListStandRequestUnknownField(t *testing.T) {
	req := validListing()
	assert.ErrorIs(t, req.ValidateField("colour"), errUnknownField)
}

func TestListStandRequestUnknownPaymentMethod(t *testing.T) {
	req := validListing()
	req.PaymentMethods = []domain.PaymentMethod{"barter"}
	assert.Error(t, req.ValidateField("payment_methods"))
}

func TestListStandsQueryOptions(t *testing.T) {
	q := ListStandsQuery{Sort: "distance", State: "MI", Lat: "42.33", Lon: "-83.05"}
	opts, err := q.Options()
	require.NoError(t, err)
	assert.Equal(t, service.SortByDistance, opts.Sort)
	assert.Equal(t, &geo.Point{Lat: 42.33, Lon: -83.05}, opts.Origin)

	q = ListStandsQuery{Lat: "north"}
	_, err = q.Options()
	assert.Contains(t, FieldErrorsFrom(err), "lat")

	q = ListStandsQuery{}
	opts, err = q.Options()
	require.NoError(t, err)
	assert.Nil(t, opts.Origin)
}
