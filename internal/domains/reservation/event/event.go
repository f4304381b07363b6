package event

//go:generate go run go.uber.org/mock/mockgen -source=./event.go -destination=../mocks/event_mock.go -package=mocks

import (
	"context"
	"strconv"
	"time"

	"edurooms/config"
	"edurooms/infras/kafka"
	"edurooms/infras/otel"
	"edurooms/internal/domains/reservation/model"
	"edurooms/shared/constant"

	"github.com/rs/zerolog/log"
)

type Type string

const (
	TypeCreated     Type = "reservation.created"
	TypeCancelled   Type = "reservation.cancelled"
	TypeCompleted   Type = "reservation.completed"
	TypeTransferred Type = "reservation.transferred"
)

type Event struct {
	Type          Type      `json:"type"`
	ReservationID int64     `json:"reservation_id"`
	UserID        int64     `json:"user_id"`
	RoomID        int64     `json:"room_id"`
	PreviousRoom  int64     `json:"previous_room_id,omitempty"`
	Date          string    `json:"date"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	Status        string    `json:"status"`
	Actor         string    `json:"actor"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func New(eventType Type, reservation model.Reservation, actor string, at time.Time) Event {
	return Event{
		Type:          eventType,
		ReservationID: reservation.ID,
		UserID:        reservation.UserID,
		RoomID:        reservation.RoomID,
		Date:          reservation.Date.String(),
		StartTime:     reservation.StartTime.String(),
		EndTime:       reservation.EndTime.String(),
		Status:        string(reservation.Status),
		Actor:         actor,
		OccurredAt:    at,
	}
}

// Publisher forwards reservation lifecycle events. Publishing is best effort: failures are
// logged and never undo the transition that produced the event.
type Publisher interface {
	Publish(ctx context.Context, events ...Event)
}

type kafkaPublisher struct {
	client kafka.Client
	topic  string
	otel   otel.Otel
}

type noopPublisher struct{}

// NewPublisher returns a Kafka-backed publisher, or a no-op one when Kafka is disabled.
func NewPublisher(cfg *config.Config, client kafka.Client, otl otel.Otel) Publisher {
	if !cfg.Kafka.Enable || client == nil {
		return noopPublisher{}
	}

	return &kafkaPublisher{
		client: client,
		topic:  cfg.Kafka.Topics.Reservation,
		otel:   otl,
	}
}

func (p *kafkaPublisher) Publish(ctx context.Context, events ...Event) {
	if len(events) == 0 {
		return
	}

	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".reservation.Publish")
	defer scope.End()

	messages := make([]kafka.Message, len(events))
	for i, evt := range events {
		messages[i] = kafka.Message{
			Key:   strconv.FormatInt(evt.ReservationID, 10),
			Value: evt,
		}
	}

	if err := p.client.SendMessages(ctx, p.topic, messages...); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("topic", p.topic).Int("events", len(events)).Msg("failed to publish reservation events")
	}
}

func (noopPublisher) Publish(context.Context, ...Event) {}
