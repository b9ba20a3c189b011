package model

import "github.com/google/uuid"

// IDSet is a set of UUIDs. It backs follower, following and like
// collections, so membership is unique by construction.
type IDSet map[uuid.UUID]struct{}

// NewIDSet creates a set containing the given ids.
func NewIDSet(ids ...uuid.UUID) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Add inserts id into the set. Adding an existing member is a no-op.
func (s IDSet) Add(id uuid.UUID) {
	s[id] = struct{}{}
}

// Remove deletes id from the set. Removing a non-member is a no-op.
func (s IDSet) Remove(id uuid.UUID) {
	delete(s, id)
}

// Contains reports whether id is a member. A nil set contains nothing.
func (s IDSet) Contains(id uuid.UUID) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of members.
func (s IDSet) Len() int {
	return len(s)
}

// IDs returns the members in unspecified order.
func (s IDSet) IDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	return ids
}
