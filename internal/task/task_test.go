package task

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskFields(t *testing.T) {
	tk := Task{Title: "Titulo", Description: "Descripcion", Done: true}
	assert.Equal(t, "Titulo", tk.Title)
	assert.Equal(t, "Descripcion", tk.Description)
	assert.True(t, tk.Done)
}

func TestStoreKeepsInsertionOrder(t *testing.T) {
	s := NewStore()
	assert.Equal(t, 0, s.Len())
	assert.NotNil(t, s.List())

	s.Add(Task{Title: "a"})
	s.Add(Task{Title: "b"})
	s.Add(Task{Title: "a"}) // duplicates are allowed

	got := s.List()
	require.Len(t, got, 3)
	assert.Equal(t, "a", got[0].Title)
	assert.Equal(t, "b", got[1].Title)
	assert.Equal(t, "a", got[2].Title)
}

func TestStoreListIsACopy(t *testing.T) {
	s := NewStore()
	s.Add(Task{Title: "orig"})

	got := s.List()
	got[0].Title = "changed"

	assert.Equal(t, "orig", s.List()[0].Title)
}

func TestStoreReset(t *testing.T) {
	s := NewStore()
	s.Add(Task{Title: "x"})
	before := s.List()

	s.Reset()
	assert.Equal(t, 0, s.Len())
	assert.Len(t, before, 1)
}

func TestStoreConcurrentAdd(t *testing.T) {
	s := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Add(Task{Title: fmt.Sprintf("t%d", i)})
			_ = s.List()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, s.Len())
}
