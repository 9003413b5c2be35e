package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/muhammadchandra19/stock-sentinel/internal/infrastructure/notifier"
	"github.com/segmentio/kafka-go"
)

// alert-tail follows the alert notification topic and prints every
// notification it sees. Useful for checking a deployment end to end.
func main() {
	var (
		brokers = flag.String("brokers", "localhost:9092", "Kafka broker addresses (comma-separated)")
		topic   = flag.String("topic", "price-alerts", "Kafka topic name")
		group   = flag.String("group", "", "Consumer group (optional, reads from the latest offset without one)")
		limit   = flag.Int("limit", 0, "Stop after this many notifications (0 means run until interrupted)")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	readerConfig := kafka.ReaderConfig{
		Brokers:  strings.Split(*brokers, ","),
		Topic:    *topic,
		GroupID:  *group,
		MinBytes: 1,
		MaxBytes: 10e6,
		MaxWait:  500 * time.Millisecond,
	}
	if *group == "" {
		readerConfig.StartOffset = kafka.LastOffset
	}

	reader := kafka.NewReader(readerConfig)
	defer reader.Close()

	log.Printf("Tailing alerts from broker: %s, topic: %s", *brokers, *topic)

	seen := 0
	for *limit == 0 || seen < *limit {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			log.Printf("Failed to read message: %v", err)
			continue
		}

		var n notifier.Notification
		if err := json.Unmarshal(msg.Value, &n); err != nil {
			log.Printf("Skipping undecodable message at offset %d: %v", msg.Offset, err)
			continue
		}
		seen++

		log.Printf("[%s] alert %d for user %d | %s %s %s @ %s",
			n.TriggeredAt.Format(time.RFC3339), n.AlertID, n.UserID,
			n.Symbol, n.Direction, n.TargetPrice.StringFixed(2), n.CurrentPrice.StringFixed(2))
	}

	log.Printf("Received %d notification(s)", seen)
}
