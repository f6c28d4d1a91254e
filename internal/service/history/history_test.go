package history

import (
	"ShelfGuardian/entity"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUnknownUserIsEmpty(t *testing.T) {
	s := New(10)
	got := s.Get(42)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestAddKeepsOrder(t *testing.T) {
	s := New(10)
	s.Add(1, entity.ChatTurn{User: "hi", Bot: "hello"})
	s.Add(1, entity.ChatTurn{User: "what expires?", Bot: "milk"})

	assert.Equal(t, []entity.ChatTurn{
		{User: "hi", Bot: "hello"},
		{User: "what expires?", Bot: "milk"},
	}, s.Get(1))
}

func TestResetOnlyAffectsOneUser(t *testing.T) {
	s := New(10)
	s.Add(1, entity.ChatTurn{User: "a", Bot: "b"})
	s.Add(2, entity.ChatTurn{User: "c", Bot: "d"})

	s.Reset(1)

	assert.Empty(t, s.Get(1))
	assert.Len(t, s.Get(2), 1)
}

func TestGetReturnsCopy(t *testing.T) {
	s := New(10)
	s.Add(1, entity.ChatTurn{User: "a", Bot: "b"})

	got := s.Get(1)
	got[0].Bot = "changed"

	assert.Equal(t, "b", s.Get(1)[0].Bot)
}

func TestLimitDropsOldest(t *testing.T) {
	s := New(3)
	for i := 0; i < 5; i++ {
		s.Add(1, entity.ChatTurn{User: fmt.Sprint(i)})
	}

	got := s.Get(1)
	require.Len(t, got, 3)
	assert.Equal(t, "2", got[0].User)
	assert.Equal(t, "4", got[2].User)
}

func TestConcurrentAdd(t *testing.T) {
	s := New(0)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Add(7, entity.ChatTurn{User: "x"})
		}()
	}
	wg.Wait()
	assert.Len(t, s.Get(7), 50)
}
