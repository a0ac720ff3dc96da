// Package task holds the task record and the in-memory store shared by all
// connections.
package task

import "sync"

// Task is a single to-do entry. It is never modified after creation.
type Task struct {
	Title       string
	Description string
	Done        bool
}

// Store is an append-only, insertion-ordered list of tasks that is safe for
// concurrent use.
type Store struct {
	mu    sync.RWMutex
	tasks []Task
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{tasks: make([]Task, 0)}
}

// Add appends t to the end of the store.
func (s *Store) Add(t Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, t)
}

// List returns a copy of all tasks in creation order.
func (s *Store) List() []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Task, len(s.tasks))
	copy(result, s.tasks)
	return result
}

// Len returns the number of stored tasks.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// Reset drops every task. Only tests should need this.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = s.tasks[:0:0]
}
