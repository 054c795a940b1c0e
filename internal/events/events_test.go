package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/findlocalfirewood/firewood-api/internal/config"
	"github.com/findlocalfirewood/firewood-api/internal/domain"
)

type published struct {
	subject string
	data    []byte
}

type fakeConn struct {
	msgs    []published
	err     error
	drained bool
}

func (f *fakeConn) Publish(subject string, data []byte) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, published{subject: subject, data: data})
	return nil
}

func (f *fakeConn) Drain() error {
	f.drained = true
	return nil
}

func TestPublisherStandEvents(t *testing.T) {
	nc := &fakeConn{}
	p := &Publisher{nc: nc, prefix: "firewood"}
	stand := domain.Stand{ID: uuid.New(), Name: "Birch Lane", IsLoose: true, IsApproved: true}

	require.NoError(t, p.StandSubmitted(context.Background(), stand))
	require.NoError(t, p.StandApproved(context.Background(), stand))

	require.Len(t, nc.msgs, 2)
	assert.Equal(t, "firewood.stand.submitted", nc.msgs[0].subject)
	assert.Equal(t, "firewood.stand.approved", nc.msgs[1].subject)

	var ev StandEvent
	require.NoError(t, json.Unmarshal(nc.msgs[1].data, &ev))
	assert.Equal(t, stand.ID, ev.StandID)
	assert.Equal(t, []domain.WoodType{domain.WoodLoose}, ev.WoodTypes)
	assert.True(t, ev.Approved)
}

func TestPublisherCheckInCreated(t *testing.T) {
	nc := &fakeConn{}
	p := &Publisher{nc: nc}
	at := time.Date(2024, 10, 1, 15, 0, 0, 0, time.UTC)
	c := domain.CheckIn{ID: uuid.New(), StandID: uuid.New(), StockLevel: domain.StockLow, CreatedAt: at}

	require.NoError(t, p.CheckInCreated(context.Background(), c))

	require.Len(t, nc.msgs, 1)
	assert.Equal(t, SubjectCheckInCreated, nc.msgs[0].subject)

	var ev CheckInEvent
	require.NoError(t, json.Unmarshal(nc.msgs[0].data, &ev))
	assert.True(t, ev.Anonymous)
	assert.Equal(t, domain.StockLow, ev.StockLevel)
	assert.True(t, at.Equal(ev.OccurredAt))
}

func TestPublisherErrors(t *testing.T) {
	p := &Publisher{nc: &fakeConn{err: errors.New("nats: connection closed")}}
	assert.Error(t, p.StandApproved(context.Background(), domain.Stand{}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	nc := &fakeConn{}
	p = &Publisher{nc: nc}
	assert.ErrorIs(t, p.StandSubmitted(ctx, domain.Stand{}), context.Canceled)
	assert.Empty(t, nc.msgs)
}

func TestPublisherClose(t *testing.T) {
	nc := &fakeConn{}
	require.NoError(t, (&Publisher{nc: nc}).Close())
	assert.True(t, nc.drained)
}

func TestConnectWithoutURLIsNop(t *testing.T) {
	e, err := Connect(&config.NATSConfig{})
	require.NoError(t, err)
	assert.IsType(t, Nop{}, e)
}
