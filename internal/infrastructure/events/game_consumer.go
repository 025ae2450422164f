package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rabbitmq/amqp091-go"

	"github.com/hanwool95/game-socket-server/internal/domain"
	"github.com/hanwool95/game-socket-server/internal/infrastructure/contracts"
	"github.com/hanwool95/game-socket-server/internal/infrastructure/logging"
	"github.com/hanwool95/game-socket-server/internal/infrastructure/messaging"
)

type MessageConsumer interface {
	ConsumeMessages(queueName string, handler messaging.MessageHandler) error
}

// GameConsumer writes every game event from the broker into the audit log.
type GameConsumer struct {
	rabbitmq MessageConsumer
	auditLog domain.GameEventRepository
	logger   logging.Logger
}

func NewGameConsumer(rabbitmq MessageConsumer, auditLog domain.GameEventRepository, logger logging.Logger) *GameConsumer {
	return &GameConsumer{
		rabbitmq: rabbitmq,
		auditLog: auditLog,
		logger:   logger,
	}
}

func (c *GameConsumer) Listen() error {
	return c.rabbitmq.ConsumeMessages(messaging.GameEventsQueue, func(ctx context.Context, msg amqp091.Delivery) error {
		return c.Handle(ctx, msg.Body)
	})
}

func (c *GameConsumer) Handle(ctx context.Context, body []byte) error {
	var message contracts.AmqpMessage
	if err := json.Unmarshal(body, &message); err != nil {
		c.logger.Error(logging.RabbitMQ, logging.Consume, "failed to unmarshal message", map[logging.ExtraKey]any{
			logging.ErrorMessage: err.Error(),
		})
		return err
	}

	var payload messaging.GameEventData
	if err := json.Unmarshal(message.Data, &payload); err != nil {
		c.logger.Error(logging.RabbitMQ, logging.Consume, "failed to unmarshal game event", map[logging.ExtraKey]any{
			logging.RoomCode:     message.RoomCode,
			logging.ErrorMessage: err.Error(),
		})
		return err
	}

	event := payload.Event
	if event.ID == "" || event.EventType == "" {
		return fmt.Errorf("game event for room %q is missing id or type", message.RoomCode)
	}

	if err := c.auditLog.Log(ctx, &event); err != nil {
		c.logger.Error(logging.Persistence, logging.Insert, "failed to write audit log", map[logging.ExtraKey]any{
			logging.RoomCode:     event.RoomCode,
			logging.EventType:    event.EventType,
			logging.ErrorMessage: err.Error(),
		})
		return err
	}

	c.logger.Debug(logging.RabbitMQ, logging.Consume, "game event stored", map[logging.ExtraKey]any{
		logging.RoomCode:  event.RoomCode,
		logging.EventType: event.EventType,
	})
	return nil
}
