package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"

	"dec-assist-be/pkg/events"
	"dec-assist-be/pkg/nats"

	"github.com/joho/godotenv"
)

// Tails assistant lifecycle events off the NATS bus. Useful for watching
// CHAT_TURN_COMPLETED and CHAT_SESSION_DELETED traffic during development.
func main() {
	url := flag.String("nats", "nats://localhost:4222", "NATS server URL")
	subject := flag.String("subject", "events.>", "subject pattern to tail")
	durable := flag.String("durable", "events-tail", "durable consumer name")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	sub, err := nats.NewSubscriber(*url)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	defer sub.Close()

	err = sub.Subscribe(*subject, *durable, func(ctx context.Context, event events.Event) error {
		data, _ := json.Marshal(event.Payload())
		log.Printf("%s %s", event.EventType(), data)
		return nil
	})
	if err != nil {
		log.Fatalf("Failed to subscribe: %v", err)
	}

	select {}
}
