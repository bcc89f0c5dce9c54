// Accountengine - In-Memory Analytical Query Engine for Account Records
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stremin/accountengine

// Package websocket broadcasts the mutation event stream to connected
// dashboards over /ws/mutations. It is a read-only side channel: nothing
// here feeds back into the Store.
package websocket

import (
	"context"
	"sort"
	"sync"

	"github.com/stremin/accountengine/internal/eventprocessor"
	"github.com/stremin/accountengine/internal/logging"
)

// Hub maintains the set of connected clients and fans each published
// mutation out to all of them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan eventprocessor.Mutation
	Register   chan *Client
	Unregister chan *Client
	mu         sync.RWMutex
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan eventprocessor.Mutation, 256),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
}

// Follow subscribes to pub and forwards every mutation to Run's
// broadcast channel, blocking until ctx is cancelled or events closes.
func (h *Hub) Follow(ctx context.Context, pub *eventprocessor.Publisher) error {
	events, err := pub.Subscribe(ctx)
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m, ok := <-events:
			if !ok {
				return nil
			}
			select {
			case h.broadcast <- m:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

// Run drives the hub until ctx is cancelled. Client lifecycle events
// are prioritized over broadcasts so a client's registered state is
// always consistent before any message is delivered to it.
func (h *Hub) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			h.closeAllClients()
			return ctx.Err()
		default:
		}

		select {
		case client := <-h.Register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			continue
		case client := <-h.Unregister:
			h.removeClient(client)
			continue
		default:
		}

		select {
		case <-ctx.Done():
			h.closeAllClients()
			return ctx.Err()
		case client := <-h.Register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
		case client := <-h.Unregister:
			h.removeClient(client)
		case m := <-h.broadcast:
			h.broadcastToClients(m)
		}
	}
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
}

// broadcastToClients sends m to every client, sorted by ID for
// deterministic delivery order, dropping any client whose send buffer
// is full.
func (h *Hub) broadcastToClients(m eventprocessor.Mutation) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	sort.Slice(clients, func(i, j int) bool { return clients[i].id < clients[j].id })

	var toRemove []*Client
	for _, c := range clients {
		select {
		case c.send <- m:
		default:
			toRemove = append(toRemove, c)
		}
	}
	for _, c := range toRemove {
		close(c.send)
		delete(h.clients, c)
	}
}

func (h *Hub) closeAllClients() {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	sort.Slice(clients, func(i, j int) bool { return clients[i].id < clients[j].id })

	for _, c := range clients {
		close(c.send)
		delete(h.clients, c)
	}
	logging.Info().Msg("closed all websocket clients during shutdown")
}

// ClientCount reports the number of currently connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
