// Package events publishes stand and check-in lifecycle events to NATS.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/findlocalfirewood/firewood-api/internal/config"
	"github.com/findlocalfirewood/firewood-api/internal/domain"
)

const (
	SubjectStandSubmitted = "stand.submitted"
	SubjectStandApproved  = "stand.approved"
	SubjectCheckInCreated = "checkin.created"
)

type conn interface {
	Publish(subject string, data []byte) error
	Drain() error
}

type Publisher struct {
	nc     conn
	prefix string
}

type StandEvent struct {
	StandID    uuid.UUID         `json:"stand_id"`
	Name       string            `json:"name"`
	Address    string            `json:"address"`
	WoodTypes  []domain.WoodType `json:"wood_types"`
	Approved   bool              `json:"approved"`
	OccurredAt time.Time         `json:"occurred_at"`
}

type CheckInEvent struct {
	CheckInID  uuid.UUID         `json:"check_in_id"`
	StandID    uuid.UUID         `json:"stand_id"`
	Anonymous  bool              `json:"anonymous"`
	StockLevel domain.StockLevel `json:"stock_level"`
	OccurredAt time.Time         `json:"occurred_at"`
}

// Connect dials NATS. An empty URL yields a Nop publisher.
func Connect(conf *config.NATSConfig) (Emitter, error) {
	if conf == nil || conf.URL == "" {
		zap.L().Info("event publishing disabled")
		return Nop{}, nil
	}

	nc, err := nats.Connect(conf.URL,
		nats.Name("firewood-api"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			zap.L().Warn("nats disconnected", zap.Error(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			zap.L().Info("nats reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("nats.Connect -> %w", err)
	}

	return &Publisher{nc: nc, prefix: conf.SubjectPrefix}, nil
}

type Emitter interface {
	StandSubmitted(ctx context.Context, stand domain.Stand) error
	StandApproved(ctx context.Context, stand domain.Stand) error
	CheckInCreated(ctx context.Context, c domain.CheckIn) error
	Close() error
}

func (p *Publisher) StandSubmitted(ctx context.Context, stand domain.Stand) error {
	return p.publish(ctx, SubjectStandSubmitted, standEvent(stand))
}

func (p *Publisher) StandApproved(ctx context.Context, stand domain.Stand) error {
	return p.publish(ctx, SubjectStandApproved, standEvent(stand))
}

func (p *Publisher) CheckInCreated(ctx context.Context, c domain.CheckIn) error {
	return p.publish(ctx, SubjectCheckInCreated, CheckInEvent{
		CheckInID:  c.ID,
		StandID:    c.StandID,
		Anonymous:  c.IsAnonymous(),
		StockLevel: c.StockLevel,
		OccurredAt: c.CreatedAt,
	})
}

func (p *Publisher) Close() error {
	return p.nc.Drain()
}

func (p *Publisher) subject(name string) string {
	if p.prefix == "" {
		return name
	}

	return p.prefix + "." + name
}

func (p *Publisher) publish(ctx context.Context, name string, payload any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("json.Marshal -> %w", err)
	}

	subject := p.subject(name)
	if err := p.nc.Publish(subject, data); err != nil {
		return fmt.Errorf("p.nc.Publish(%s) -> %w", subject, err)
	}

	return nil
}

func standEvent(stand domain.Stand) StandEvent {
	return StandEvent{
		StandID:    stand.ID,
		Name:       stand.Name,
		Address:    stand.Address,
		WoodTypes:  stand.WoodTypes(),
		Approved:   stand.IsApproved,
		OccurredAt: time.Now().UTC(),
	}
}

type Nop struct{}

func (Nop) StandSubmitted(context.Context, domain.Stand) error { return nil }
func (Nop) StandApproved(context.Context, domain.Stand) error  { return nil }
func (Nop) CheckInCreated(context.Context, domain.CheckIn) error {
	return nil
}
func (Nop) Close() error { return nil }
