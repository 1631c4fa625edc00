package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/billingpanel/pkg/billing"
	"github.com/dmitrymomot/billingpanel/pkg/logger"
)

// DefaultChannel is the pub/sub channel carrying subscription updates.
const DefaultChannel = "billing:subscriptions"

// Update is the wire format of a pushed subscription record.
// A null subscription moves the owner to the free tier.
type Update struct {
	OwnerID      uuid.UUID             `json:"owner_id"`
	Subscription *billing.Subscription `json:"subscription"`
}

// Applier receives pushed subscription records. *Directory implements it.
type Applier interface {
	Apply(ctx context.Context, ownerID uuid.UUID, sub *billing.Subscription) error
}

// RedisFeed applies subscription updates published on a redis channel.
type RedisFeed struct {
	client  redis.UniversalClient
	channel string
	target  Applier
	logger  *slog.Logger
}

// FeedOption configures a RedisFeed.
type FeedOption func(*RedisFeed)

func WithFeedLogger(l *slog.Logger) FeedOption {
	return func(f *RedisFeed) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithChannel overrides DefaultChannel.
func WithChannel(name string) FeedOption {
	return func(f *RedisFeed) {
		if name != "" {
			f.channel = name
		}
	}
}

func NewRedisFeed(client redis.UniversalClient, target Applier, opts ...FeedOption) *RedisFeed {
	f := &RedisFeed{
		client:  client,
		channel: DefaultChannel,
		target:  target,
		logger:  logger.Discard(),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.logger = f.logger.With(logger.Component("directory.feed"), logger.Channel(f.channel))
	return f
}

// Run subscribes and applies updates until ctx is done, which returns nil.
// Malformed payloads and updates for unknown owners are logged and skipped.
func (f *RedisFeed) Run(ctx context.Context) error {
	pubsub := f.client.Subscribe(ctx, f.channel)
	defer pubsub.Close()

	// wait for the subscription confirmation so publishers are not raced
	if _, err := pubsub.Receive(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("subscribe %s: %w", f.channel, err)
	}
	f.logger.InfoContext(ctx, "subscription feed started")

	messages := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			f.logger.InfoContext(ctx, "subscription feed stopped")
			return nil
		case msg, ok := <-messages:
			if !ok {
				return ErrFeedClosed
			}
			if err := f.Handle(ctx, []byte(msg.Payload)); err != nil {
				f.logger.WarnContext(ctx, "subscription update skipped", logger.Error(err))
			}
		}
	}
}

// Handle decodes and applies one payload.
func (f *RedisFeed) Handle(ctx context.Context, payload []byte) error {
	var u Update
	if err := json.Unmarshal(payload, &u); err != nil {
		return errors.Join(ErrMalformedUpdate, err)
	}
	if u.OwnerID == uuid.Nil {
		return fmt.Errorf("%w: missing owner_id", ErrMalformedUpdate)
	}
	return f.target.Apply(ctx, u.OwnerID, u.Subscription)
}

// Publish sends an update to channel, for producers and tests.
func Publish(ctx context.Context, client redis.UniversalClient, channel string, u Update) error {
	payload, err := json.Marshal(u)
	if err != nil {
		return err
	}
	if channel == "" {
		channel = DefaultChannel
	}
	return client.Publish(ctx, channel, payload).Err()
}
