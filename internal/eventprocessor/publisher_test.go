// Accountengine - In-Memory Analytical Query Engine for Account Records
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stremin/accountengine

package eventprocessor

import (
	"context"
	"testing"
	"time"
)

func TestPublishDeliversToSubscriber(t *testing.T) {
	p := NewPublisher()
	defer p.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := p.Subscribe(ctx)
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	p.Publish(Mutation{Kind: MutationInsert, AccountID: 42})

	select {
	case m := <-events:
		if m.Kind != MutationInsert || m.AccountID != 42 {
			t.Errorf("got %+v, want {insert 42}", m)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for mutation event")
	}
}

func TestPublishFansOutToEachSubscriber(t *testing.T) {
	p := NewPublisher()
	defer p.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := p.Subscribe(ctx)
	if err != nil {
		t.Fatalf("Subscribe a failed: %v", err)
	}
	b, err := p.Subscribe(ctx)
	if err != nil {
		t.Fatalf("Subscribe b failed: %v", err)
	}

	p.Publish(Mutation{Kind: MutationPatch, AccountID: 7})

	for name, ch := range map[string]<-chan Mutation{"a": a, "b": b} {
		select {
		case m := <-ch:
			if m.Kind != MutationPatch || m.AccountID != 7 {
				t.Errorf("subscriber %s got %+v, want {patch 7}", name, m)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("subscriber %s timed out waiting for mutation event", name)
		}
	}
}
