package kafka

import (
	"sync"
	"testing"

	"github.com/segmentio/kafka-go"
)

func TestProducer_GetWriterConcurrent(t *testing.T) {
	producer := NewProducer(DefaultConfig())
	topics := []string{
		Topics.ForecastEvents,
		Topics.AlertEvents,
		Topics.NotificationsOutbound,
	}

	const goroutines = 8
	results := make([][]*kafka.Writer, goroutines)

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for _, topic := range topics {
				results[i] = append(results[i], producer.getWriter(topic))
			}
		}(i)
	}
	wg.Wait()

	for _, topic := range topics {
		want := producer.getWriter(topic)
		for i := 0; i < goroutines; i++ {
			for j, got := range results[i] {
				if topics[j] != topic {
					continue
				}
				if got != want {
					t.Fatalf("goroutine %d got a different writer for topic %s", i, topic)
				}
			}
		}
	}

	if len(producer.writers) != len(topics) {
		t.Fatalf("writers = %d, want %d", len(producer.writers), len(topics))
	}
}
