package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/chachabrian/covoit-backend/internal/models"
	"github.com/redis/go-redis/v9"
)

// NotificationChannel carries stored notifications between API instances.
const NotificationChannel = "notifications:delivery"

// InitRedis connects to redisURL and checks the connection.
func InitRedis(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}
	return client, nil
}

// RedisRelay fans notifications out through Redis pub/sub so that a user
// connected to any instance receives them.
type RedisRelay struct {
	Client *redis.Client
	Hub    *Hub
}

func NewRedisRelay(client *redis.Client, hub *Hub) *RedisRelay {
	return &RedisRelay{Client: client, Hub: hub}
}

// PublishNotification hands n to every instance subscribed to the channel.
func (r *RedisRelay) PublishNotification(ctx context.Context, n *models.Notification) error {
	data, err := json.Marshal(n)
	if err != nil {
		return err
	}
	return r.Client.Publish(ctx, NotificationChannel, data).Err()
}

// Run delivers relayed notifications to this instance's hub until ctx is done.
func (r *RedisRelay) Run(ctx context.Context) {
	sub := r.Client.Subscribe(ctx, NotificationChannel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			r.deliver(ctx, msg.Payload)
		}
	}
}

func (r *RedisRelay) deliver(ctx context.Context, payload string) {
	var n models.Notification
	if err := json.Unmarshal([]byte(payload), &n); err != nil {
		log.Printf("[REDIS] dropping malformed notification: %v", err)
		return
	}
	if err := r.Hub.PublishNotification(ctx, &n); err != nil {
		log.Printf("[REDIS] local delivery of notification %d failed: %v", n.ID, err)
	}
}
