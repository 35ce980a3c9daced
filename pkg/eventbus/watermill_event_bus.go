package eventbus

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/dukex/projecthub/pkg/events"
)

type WatermillEventBus struct {
	publisher     message.Publisher
	subscriber    message.Subscriber
	mu            sync.RWMutex
	subscriptions map[events.EventType]EventHandler
	done          chan struct{}
}

func NewWatermillEventBus(pub message.Publisher, sub message.Subscriber) EventBus {
	return &WatermillEventBus{
		publisher:     pub,
		subscriber:    sub,
		subscriptions: make(map[events.EventType]EventHandler),
		done:          make(chan struct{}),
	}
}

func (eb *WatermillEventBus) GenerateID() string {
	return watermill.NewULID()
}

func (eb *WatermillEventBus) Publish(ctx context.Context, key string, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := message.NewMessage("msg-"+eb.GenerateID(), payload)
	msg.SetContext(ctx)
	msg.Metadata.Set(events.EventMetadataKey, key)
	msg.Metadata.Set(events.EventTypeMetadataKey, string(event.GetType()))

	return eb.publisher.Publish(events.Topic, msg)
}

func (eb *WatermillEventBus) Subscribe(ctx context.Context) error {
	messages, err := eb.subscriber.Subscribe(ctx, events.Topic)
	if err != nil {
		return err
	}

	go func() {
		defer close(eb.done)

		for msg := range messages {
			eb.dispatch(ctx, msg)
		}
	}()

	return nil
}

func (eb *WatermillEventBus) dispatch(ctx context.Context, msg *message.Message) {
	eventType := events.EventType(msg.Metadata.Get(events.EventTypeMetadataKey))

	eb.mu.RLock()
	handler, exists := eb.subscriptions[eventType]
	eb.mu.RUnlock()

	if !exists {
		msg.Ack()

		return
	}

	// Undecodable payloads are dropped; redelivery would never succeed.
	event, ok := newEvent(eventType)
	if !ok {
		msg.Ack()

		return
	}

	if err := json.Unmarshal(msg.Payload, event); err != nil {
		msg.Ack()

		return
	}

	if err := handler(ctx, event); err != nil {
		msg.Nack()

		return
	}

	msg.Ack()
}

func newEvent(eventType events.EventType) (any, bool) {
	switch eventType {
	case events.SessionStartedEvent:
		return &events.SessionStarted{}, true
	case events.SessionEndedEvent:
		return &events.SessionEnded{}, true
	case events.ReportGeneratedEvent:
		return &events.ReportGenerated{}, true
	case events.ReportClearedEvent:
		return &events.ReportCleared{}, true
	case events.ExportRequestedEvent:
		return &events.ExportRequested{}, true
	default:
		return nil, false
	}
}

func (eb *WatermillEventBus) Handle(eventType events.EventType, handler EventHandler) error {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.subscriptions[eventType] = handler

	return nil
}

func (eb *WatermillEventBus) Close() error {
	err := eb.publisher.Close()
	if err != nil {
		return err
	}

	return eb.subscriber.Close()
}

// Done is closed once the subscription loop started by Subscribe has drained.
func (eb *WatermillEventBus) Done() <-chan struct{} {
	return eb.done
}
