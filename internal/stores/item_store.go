package stores

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"devops-api/internal/models"
)

var (
	ErrItemNotFound = errors.New("item not found")
)

// ItemStore keeps items in process memory, in insertion order.
//
// Ids come from a counter that only moves forward: the first item gets id 1, each create
// takes the next id, and deleting the most recent item never frees its id for reuse.
// All operations go through one RWMutex, so every returned item or list is a snapshot
// that later mutations cannot change.
//
//go:generate mockgen -source=item_store.go -destination=./mocks/item_store_mock.go -package=mocks
type ItemStore interface {
	List(ctx context.Context) []models.Item
	Create(ctx context.Context, name, description string) (models.Item, error)
	Get(ctx context.Context, id int64) (models.Item, error)
	Update(ctx context.Context, id int64, patch models.ItemPatch) (models.Item, error)
	Delete(ctx context.Context, id int64) error
}

type itemStore struct {
	mu     sync.RWMutex
	items  []models.Item
	lastID int64
	now    func() time.Time
}

func NewItemStore() ItemStore {
	return newItemStore(func() time.Time { return time.Now().UTC() })
}

func newItemStore(now func() time.Time) *itemStore {
	return &itemStore{items: make([]models.Item, 0), now: now}
}

func (s *itemStore) List(ctx context.Context) []models.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]models.Item, len(s.items))
	copy(snapshot, s.items)
	return snapshot
}

func (s *itemStore) Create(ctx context.Context, name, description string) (models.Item, error) {
	if name == "" {
		return models.Item{}, errors.New("item name cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastID++
	item := models.Item{
		ID:          s.lastID,
		Name:        name,
		Description: description,
		CreatedAt:   s.now(),
	}
	s.items = append(s.items, item)
	return item, nil
}

func (s *itemStore) Get(ctx context.Context, id int64) (models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return models.Item{}, ErrItemNotFound
	}
	return s.items[idx], nil
}

func (s *itemStore) Update(ctx context.Context, id int64, patch models.ItemPatch) (models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return models.Item{}, ErrItemNotFound
	}
	patch.Apply(&s.items[idx], s.now())
	return s.items[idx], nil
}

func (s *itemStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return ErrItemNotFound
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	return nil
}

// indexOf finds id with a binary search; items stay sorted by id because ids only grow
// and deletes keep relative order. Callers must hold mu.
func (s *itemStore) indexOf(id int64) int {
	idx, found := slices.BinarySearchFunc(s.items, id, func(item models.Item, target int64) int {
		return cmp.Compare(item.ID, target)
	})
	if !found {
		return -1
	}
	return idx
}
