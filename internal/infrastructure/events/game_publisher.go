package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/hanwool95/game-socket-server/internal/domain"
	"github.com/hanwool95/game-socket-server/internal/infrastructure/contracts"
	"github.com/hanwool95/game-socket-server/internal/infrastructure/logging"
	"github.com/hanwool95/game-socket-server/internal/infrastructure/messaging"
)

const (
	defaultBufferSize     = 256
	defaultPublishTimeout = 5 * time.Second
)

// MessagePublisher is the part of messaging.RabbitMQ the publisher needs.
type MessagePublisher interface {
	PublishMessage(ctx context.Context, routingKey string, message contracts.AmqpMessage) error
}

// GamePublisher forwards game events to the broker from a single worker so
// Emit never blocks the caller. Events that do not fit the buffer are dropped.
type GamePublisher struct {
	rabbitmq MessagePublisher
	logger   logging.Logger
	queue    chan *domain.GameEvent
	timeout  time.Duration

	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once
	done      chan struct{}
}

func NewGamePublisher(rabbitmq MessagePublisher, logger logging.Logger, bufferSize int) *GamePublisher {
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}
	return &GamePublisher{
		rabbitmq: rabbitmq,
		logger:   logger,
		queue:    make(chan *domain.GameEvent, bufferSize),
		timeout:  defaultPublishTimeout,
		done:     make(chan struct{}),
	}
}

// Emit queues the event for Run. Events emitted after Close are dropped.
func (p *GamePublisher) Emit(event *domain.GameEvent) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		p.logger.Debug(logging.RabbitMQ, logging.Publish, "publisher closed, dropping event", map[logging.ExtraKey]any{
			logging.RoomCode:  event.RoomCode,
			logging.EventType: event.EventType,
		})
		return
	}

	select {
	case p.queue <- event:
	default:
		p.logger.Warn(logging.RabbitMQ, logging.Publish, "event buffer full, dropping", map[logging.ExtraKey]any{
			logging.RoomCode:  event.RoomCode,
			logging.EventType: event.EventType,
		})
	}
}

// Run publishes queued events until Close is called and the queue drains.
func (p *GamePublisher) Run() {
	defer close(p.done)
	for event := range p.queue {
		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		if err := p.Publish(ctx, event); err != nil {
			p.logger.Error(logging.RabbitMQ, logging.Publish, err.Error(), map[logging.ExtraKey]any{
				logging.RoomCode:  event.RoomCode,
				logging.EventType: event.EventType,
			})
		}
		cancel()
	}
}

func (p *GamePublisher) Publish(ctx context.Context, event *domain.GameEvent) error {
	payload := messaging.GameEventData{
		Event: *event,
	}

	gameEventJSON, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return p.rabbitmq.PublishMessage(ctx, contracts.RoutingKey(event.EventType), contracts.AmqpMessage{
		RoomCode: event.RoomCode,
		Data:     gameEventJSON,
	})
}

// Close stops accepting events and waits for Run to flush the queue.
func (p *GamePublisher) Close() {
	p.closeOnce.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.queue)
		p.mu.Unlock()
	})
	<-p.done
}
