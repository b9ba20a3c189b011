package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestIDSet(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	s := NewIDSet(a)
	assert.True(t, s.Contains(a))
	assert.False(t, s.Contains(b))
	assert.Equal(t, 1, s.Len())

	s.Add(b)
	s.Add(b) // adding twice keeps the set a set
	assert.Equal(t, 2, s.Len())

	s.Remove(a)
	s.Remove(a) // removing a non-member is a no-op
	assert.False(t, s.Contains(a))
	assert.Equal(t, 1, s.Len())

	assert.ElementsMatch(t, []uuid.UUID{b}, s.IDs())
}
