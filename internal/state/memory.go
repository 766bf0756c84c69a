package state

import (
	"context"
	"maps"
	"sync"
)

// MemoryStore keeps conversations in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	convs map[int64]Conversation
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{convs: make(map[int64]Conversation)}
}

// Get returns a copy of the user's conversation.
func (s *MemoryStore) Get(_ context.Context, userID int64) (Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conv, ok := s.convs[userID]
	if !ok {
		return New(None), nil
	}
	return Conversation{State: conv.State, Data: maps.Clone(conv.Data)}, nil
}

// Set replaces the user's conversation. Setting None clears it.
func (s *MemoryStore) Set(_ context.Context, userID int64, conv Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if conv.State == None {
		delete(s.convs, userID)
		return nil
	}
	data := maps.Clone(conv.Data)
	if data == nil {
		data = map[string]string{}
	}
	s.convs[userID] = Conversation{State: conv.State, Data: data}
	return nil
}

// Clear removes the user's conversation.
func (s *MemoryStore) Clear(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.convs, userID)
	return nil
}
