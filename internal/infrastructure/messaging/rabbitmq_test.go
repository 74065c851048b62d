package messaging

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/rabbitmq"

	port "github.com/marcos-nsantos/imgpipe/internal/adapter/messaging"
	"github.com/marcos-nsantos/imgpipe/internal/infrastructure/config"
)

func uploadedEvent() port.ImageEvent {
	return port.ImageEvent{
		Type:       port.EventImageUploaded,
		Key:        "images/a.jpg",
		URL:        "http://storage/images/a.jpg",
		UploaderID: uuid.MustParse("5f0c6c4e-3d0b-4d53-9a4f-0c1f2d3e4a5b"),
		Width:      800,
		Height:     600,
		Size:       2048,
		OccurredAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestNewMessage(t *testing.T) {
	t.Run("encodes uploaded event", func(t *testing.T) {
		event := uploadedEvent()

		msg, err := newMessage(event)

		require.NoError(t, err)
		assert.Equal(t, "image.uploaded", routingKey(event))
		assert.Equal(t, "application/json", msg.ContentType)
		assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
		assert.Equal(t, "image.uploaded", msg.Type)
		assert.Equal(t, event.OccurredAt, msg.Timestamp)
		assert.JSONEq(t, `{
			"type": "image.uploaded",
			"key": "images/a.jpg",
			"url": "http://storage/images/a.jpg",
			"uploader_id": "5f0c6c4e-3d0b-4d53-9a4f-0c1f2d3e4a5b",
			"width": 800,
			"height": 600,
			"size": 2048,
			"occurred_at": "2026-01-02T03:04:05Z"
		}`, string(msg.Body))
	})

	t.Run("omits image fields on delete", func(t *testing.T) {
		event := port.ImageEvent{
			Type:       port.EventImageDeleted,
			Key:        "images/a.jpg",
			UploaderID: uuid.MustParse("5f0c6c4e-3d0b-4d53-9a4f-0c1f2d3e4a5b"),
			OccurredAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		}

		msg, err := newMessage(event)

		require.NoError(t, err)
		assert.Equal(t, "image.deleted", routingKey(event))
		assert.JSONEq(t, `{
			"type": "image.deleted",
			"key": "images/a.jpg",
			"uploader_id": "5f0c6c4e-3d0b-4d53-9a4f-0c1f2d3e4a5b",
			"occurred_at": "2026-01-02T03:04:05Z"
		}`, string(msg.Body))
	})

	t.Run("rejects event without type", func(t *testing.T) {
		_, err := newMessage(port.ImageEvent{Key: "images/a.jpg"})

		assert.Error(t, err)
	})
}

func TestNoopPublisher(t *testing.T) {
	assert.NoError(t, NoopPublisher{}.Publish(context.Background(), uploadedEvent()))
}

func TestIntegrationRabbitMQPublisher_Publish(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	container, err := rabbitmq.Run(ctx, "rabbitmq:3.13-management-alpine")
	require.NoError(t, err)
	defer func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}()

	url, err := container.AmqpURL(ctx)
	require.NoError(t, err)

	publisher, err := NewRabbitMQPublisher(config.RabbitMQConfig{URL: url, Exchange: "images"})
	require.NoError(t, err)
	defer publisher.Close()

	conn, err := amqp.Dial(url)
	require.NoError(t, err)
	defer conn.Close()

	ch, err := conn.Channel()
	require.NoError(t, err)

	queue, err := ch.QueueDeclare("", false, true, true, false, nil)
	require.NoError(t, err)
	require.NoError(t, ch.QueueBind(queue.Name, "image.*", "images", false, nil))

	deliveries, err := ch.Consume(queue.Name, "", true, true, false, false, nil)
	require.NoError(t, err)

	event := uploadedEvent()
	require.NoError(t, publisher.Publish(ctx, event))

	select {
	case d := <-deliveries:
		assert.Equal(t, "image.uploaded", d.RoutingKey)
		assert.Equal(t, "application/json", d.ContentType)

		var got port.ImageEvent
		require.NoError(t, json.Unmarshal(d.Body, &got))
		assert.Equal(t, event.Key, got.Key)
		assert.Equal(t, event.UploaderID, got.UploaderID)
		assert.True(t, event.OccurredAt.Equal(got.OccurredAt))
	case <-time.After(10 * time.Second):
		t.Fatal("no delivery received")
	}
}
