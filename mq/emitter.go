package mq

import (
	"context"
	"encoding/json"
	"log"

	"garagehub/models"
	"garagehub/rdx"
)

const bookingEventsChannel = "booking-events"

// Emit publishes an entity-change event on the Redis bus. Fire and
// forget; a failed publish is logged, never fatal. Callers fire this
// from handler goroutines, so the publish runs on a context detached
// from the request: the handler returning must not cancel the event.
func Emit(ctx context.Context, eventName string, content models.Index) {
	data, err := json.Marshal(content)
	if err != nil {
		log.Printf("mq: failed to marshal %s event: %v", eventName, err)
		return
	}
	if err := rdx.Conn.Publish(publishContext(ctx), bookingEventsChannel, data).Err(); err != nil {
		log.Printf("mq: failed to publish %s event: %v", eventName, err)
	}
}

func publishContext(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}

// StartBookingWorker relays booking events from Redis to the given
// sink (the websocket fan-out). Runs until the process exits.
func StartBookingWorker(sink func(shopID string, payload []byte)) {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, bookingEventsChannel)
	ch := sub.Channel()

	log.Println("mq: booking worker listening")

	for msg := range ch {
		var event models.Index
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("mq: failed to parse event: %v", err)
			continue
		}
		if event.EntityType == "booking" {
			sink(event.ItemId, []byte(msg.Payload))
		}
	}
}
