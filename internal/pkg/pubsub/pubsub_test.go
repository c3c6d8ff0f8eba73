package pubsub

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressMessage_JSON(t *testing.T) {
	msg := &ProgressMessage{
		Type:       "search_progress",
		SearchID:   "Jane Doe_Pune_1700000000",
		Status:     "running",
		Stage:      "Analyzing content with NLP...",
		Percentage: 70,
	}

	data, err := json.Marshal(msg)
	require.NoError(t, err)

	// Verify snake_case keys
	var raw map[string]interface{}
	err = json.Unmarshal(data, &raw)
	require.NoError(t, err)

	assert.Contains(t, raw, "search_id")
	assert.Contains(t, raw, "percentage")
	assert.Contains(t, raw, "stage")

	var decoded ProgressMessage
	err = json.Unmarshal(data, &decoded)
	require.NoError(t, err)

	assert.Equal(t, msg.SearchID, decoded.SearchID)
	assert.Equal(t, msg.Percentage, decoded.Percentage)
	assert.Equal(t, msg.Stage, decoded.Stage)
}

func TestProgressMessage_OmitEmpty(t *testing.T) {
	msg := &ProgressMessage{
		SearchID: "key",
		Status:   "running",
	}

	data, err := json.Marshal(msg)
	require.NoError(t, err)

	var raw map[string]interface{}
	err = json.Unmarshal(data, &raw)
	require.NoError(t, err)

	_, hasError := raw["error"]
	assert.False(t, hasError, "empty error should be omitted")
}

// Integration tests with real Redis (skip if not available)
func TestPublisherSubscriber_Integration(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		t.Skip("Redis not available, skipping integration test")
	}
	defer client.Close()

	publisher := NewPublisher(client)
	subscriber := NewSubscriber(client)

	testCtx, testCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer testCancel()

	received := make(chan *ProgressMessage, 1)

	go func() {
		subscriber.Subscribe(testCtx, func(msg *ProgressMessage) {
			received <- msg
		})
	}()

	// Give subscriber time to connect
	time.Sleep(100 * time.Millisecond)

	msg := &ProgressMessage{
		SearchID:   "Jane Doe_Pune_1700000000",
		Status:     "running",
		Stage:      "Performing AI risk & sentiment analysis...",
		Percentage: 85,
	}

	err := publisher.PublishProgress(testCtx, msg)
	require.NoError(t, err)

	select {
	case receivedMsg := <-received:
		assert.Equal(t, msg.SearchID, receivedMsg.SearchID)
		assert.Equal(t, msg.Percentage, receivedMsg.Percentage)
		assert.Equal(t, "search_progress", receivedMsg.Type)
	case <-testCtx.Done():
		t.Fatal("Timeout waiting for message")
	}
}

func TestNewPublisher(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
	})
	defer client.Close()

	publisher := NewPublisher(client)
	assert.NotNil(t, publisher)
}

func TestNewSubscriber(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
	})
	defer client.Close()

	subscriber := NewSubscriber(client)
	assert.NotNil(t, subscriber)
}
