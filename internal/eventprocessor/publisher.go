// Accountengine - In-Memory Analytical Query Engine for Account Records
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stremin/accountengine

// Package eventprocessor fans a single in-process mutation event out to
// the websocket feed and the audit log. It is deliberately gochannel-only:
// there is one process and no multi-node replication. Watermill's
// transport abstraction is kept so a NATS/Kafka backend could be dropped
// in later without touching callers, but nothing here crosses a process
// boundary.
package eventprocessor

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/stremin/accountengine/internal/logging"
)

// MutationKind identifies which of the three write operations produced a
// Mutation event.
type MutationKind string

const (
	MutationInsert MutationKind = "insert"
	MutationPatch  MutationKind = "patch"
	MutationLike   MutationKind = "like"
)

// mutationsTopic is the single Watermill topic every mutation is
// published to; consumers (websocket feed, audit log) each get their own
// subscription over the same in-process channel.
const mutationsTopic = "account-mutations"

// Mutation is the payload announced on every successful write.
type Mutation struct {
	Kind      MutationKind `json:"kind"`
	AccountID int32        `json:"account_id"`
}

// Publisher wraps a Watermill in-process pub/sub for account mutations.
type Publisher struct {
	pubsub *gochannel.GoChannel
}

// NewPublisher creates a Publisher backed by an unbuffered in-process
// Watermill channel.
func NewPublisher() *Publisher {
	return &Publisher{
		pubsub: gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{}),
	}
}

// Publish announces a mutation. Publish errors are logged, never
// returned: a dropped notification must not fail the HTTP request that
// already committed the mutation to the store.
func (p *Publisher) Publish(m Mutation) {
	data, err := json.Marshal(m)
	if err != nil {
		logging.Error().Err(err).Msg("failed to marshal mutation event")
		return
	}
	if err := p.pubsub.Publish(mutationsTopic, message.NewMessage(uuid.NewString(), data)); err != nil {
		logging.Error().Err(err).Msg("failed to publish mutation event")
	}
}

// Subscribe returns a channel of decoded Mutation events for a new
// consumer (one call per consumer: the websocket feed and the audit log
// each hold their own subscription).
func (p *Publisher) Subscribe(ctx context.Context) (<-chan Mutation, error) {
	messages, err := p.pubsub.Subscribe(ctx, mutationsTopic)
	if err != nil {
		return nil, fmt.Errorf("subscribe to mutations: %w", err)
	}

	out := make(chan Mutation)
	go func() {
		defer close(out)
		for msg := range messages {
			var m Mutation
			if err := json.Unmarshal(msg.Payload, &m); err != nil {
				logging.Error().Err(err).Msg("failed to decode mutation event")
				msg.Ack()
				continue
			}
			msg.Ack()
			select {
			case out <- m:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// Close shuts down the underlying pub/sub, closing every subscription.
func (p *Publisher) Close() error {
	return p.pubsub.Close()
}
