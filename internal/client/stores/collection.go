package stores

import (
	"context"
	"fmt"
	"slices"
	"sync"
)

// Collection is an ordered in-memory mirror of a server-side list. Local
// mutations are meant to follow a write the server already confirmed.
type Collection[T any] struct {
	mu     sync.RWMutex
	items  []T
	loaded bool

	subs subscribers[[]T]
}

func NewCollection[T any]() *Collection[T] {
	return &Collection[T]{}
}

// Items returns a copy of the list.
func (c *Collection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.items)
}

func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Loaded reports whether the list was filled from the server since the last
// Invalidate.
func (c *Collection[T]) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Fetch replaces the list with the fetcher's result. On error the list is
// left untouched.
func (c *Collection[T]) Fetch(ctx context.Context, fetch func(ctx context.Context) ([]T, error)) error {
	items, err := fetch(ctx)
	if err != nil {
		return err
	}
	c.Update(items)
	return nil
}

// Update replaces the whole list and marks it loaded.
func (c *Collection[T]) Update(items []T) {
	c.mutate(func() error {
		c.items = slices.Clone(items)
		c.loaded = true
		return nil
	})
}

// Invalidate empties the list so the next read fetches again.
func (c *Collection[T]) Invalidate() {
	c.mutate(func() error {
		c.items = nil
		c.loaded = false
		return nil
	})
}

func (c *Collection[T]) Push(item T) {
	c.mutate(func() error {
		c.items = append(c.items, item)
		return nil
	})
}

// Insert puts item at index; index == Len() appends.
func (c *Collection[T]) Insert(item T, index int) error {
	return c.mutate(func() error {
		if index < 0 || index > len(c.items) {
			return fmt.Errorf("insert index %d out of range [0, %d]", index, len(c.items))
		}
		c.items = slices.Insert(c.items, index, item)
		return nil
	})
}

func (c *Collection[T]) Replace(item T, index int) error {
	return c.mutate(func() error {
		if index < 0 || index >= len(c.items) {
			return fmt.Errorf("replace index %d out of range [0, %d)", index, len(c.items))
		}
		c.items[index] = item
		return nil
	})
}

func (c *Collection[T]) Delete(index int) error {
	return c.mutate(func() error {
		if index < 0 || index >= len(c.items) {
			return fmt.Errorf("delete index %d out of range [0, %d)", index, len(c.items))
		}
		c.items = slices.Delete(c.items, index, index+1)
		return nil
	})
}

// IndexOf returns the index of the first item matching pred, or -1.
func (c *Collection[T]) IndexOf(pred func(T) bool) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.IndexFunc(c.items, pred)
}

// Find returns the first item matching pred.
func (c *Collection[T]) Find(pred func(T) bool) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i := slices.IndexFunc(c.items, pred); i >= 0 {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

// Subscribe registers fn for list changes and returns an unsubscribe func.
func (c *Collection[T]) Subscribe(fn func([]T)) func() {
	return c.subs.add(fn)
}

func (c *Collection[T]) mutate(fn func() error) error {
	c.mu.Lock()
	if err := fn(); err != nil {
		c.mu.Unlock()
		return err
	}
	snapshot := slices.Clone(c.items)
	c.mu.Unlock()

	c.subs.notify(snapshot)
	return nil
}
