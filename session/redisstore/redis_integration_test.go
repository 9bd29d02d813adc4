package redisstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/peopleops/hrdesk/models"
	"github.com/peopleops/hrdesk/session/redisstore"
)

func startRedis(t *testing.T) *redis.Client {
	t.Helper()
	ctx := context.Background()

	redisC, err := tcRedis.RunContainer(ctx, testcontainers.WithWaitStrategy(wait.ForListeningPort("6379/tcp")))
	if err != nil {
		t.Fatalf("redis container: %v", err)
	}
	t.Cleanup(func() { _ = redisC.Terminate(ctx) })

	host, err := redisC.Host(ctx)
	if err != nil {
		t.Fatalf("redis host: %v", err)
	}
	port, err := redisC.MappedPort(ctx, "6379")
	if err != nil {
		t.Fatalf("redis port: %v", err)
	}

	client := redis.NewClient(&redis.Options{Addr: host + ":" + port.Port()})
	if err := client.Ping(ctx).Err(); err != nil {
		t.Fatalf("redis ping: %v", err)
	}
	return client
}

func TestStoreRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ctx := context.Background()
	client := startRedis(t)
	store := redisstore.NewWithClient(client, "chat_history:", time.Hour)

	msgs := []models.ChatMessage{
		{Role: models.RoleUser, Content: "how many leave days?", Timestamp: time.Now().UTC()},
		{Role: models.RoleAssistant, Content: "18 days per year.", Timestamp: time.Now().UTC()},
	}
	for _, m := range msgs {
		if err := store.Append(ctx, "sess-1", m); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := store.Load(ctx, "sess-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(got))
	}
	if got[0].Role != models.RoleUser || got[0].Content != "how many leave days?" {
		t.Errorf("unexpected first message: %+v", got[0])
	}
	if got[1].Role != models.RoleAssistant {
		t.Errorf("unexpected second message: %+v", got[1])
	}

	// keys carry the configured TTL
	ttl, err := client.TTL(ctx, "chat_history:sess-1").Result()
	if err != nil {
		t.Fatalf("ttl: %v", err)
	}
	if ttl <= 0 || ttl > time.Hour {
		t.Errorf("unexpected ttl %v", ttl)
	}
}

func TestStoreClear(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ctx := context.Background()
	client := startRedis(t)
	store := redisstore.NewWithClient(client, "chat_history:", time.Hour)

	msg := models.ChatMessage{Role: models.RoleUser, Content: "hi", Timestamp: time.Now().UTC()}
	if err := store.Append(ctx, "sess-1", msg); err != nil {
		t.Fatalf("append: %v", err)
	}

	if err := store.Clear(ctx, "sess-1"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	got, err := store.Load(ctx, "sess-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("history not cleared: %+v", got)
	}

	if err := store.Clear(ctx, "sess-1"); !errors.Is(err, models.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}
