package cache

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGetMiss(t *testing.T) {
	s := NewSet[int]("test")

	var got int
	err := s.Get("missing", &got)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetMutexGetSet(t *testing.T) {
	s := NewSet[string]("test")

	calls := 0
	valueFunc := func() (string, error) {
		calls++
		return "calculated", nil
	}

	var got string
	calculated, err := s.MutexGetSet("k", &got, valueFunc, time.Minute)
	require.NoError(t, err)
	assert.True(t, calculated)
	assert.Equal(t, "calculated", got)

	calculated, err = s.MutexGetSet("k", &got, valueFunc, time.Minute)
	require.NoError(t, err)
	assert.False(t, calculated)
	assert.Equal(t, "calculated", got)
	assert.Equal(t, 1, calls)
}

func TestSetMutexGetSetError(t *testing.T) {
	s := NewSet[string]("test")

	boom := errors.New("boom")
	var got string
	_, err := s.MutexGetSet("k", &got, func() (string, error) {
		return "", boom
	}, time.Minute)
	assert.ErrorIs(t, err, boom)

	// a failed valueFunc must not populate the key
	assert.ErrorIs(t, s.Get("k", &got), ErrNotFound)
}

func TestSingularFlush(t *testing.T) {
	c := NewSingular[int]("answer")
	require.NoError(t, c.Set(42, time.Minute))

	var got int
	require.NoError(t, c.Get(&got))
	assert.Equal(t, 42, got)

	require.NoError(t, c.Flush())
	assert.ErrorIs(t, c.Get(&got), ErrNotFound)
}
