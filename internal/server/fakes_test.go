package server

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// fakeImageStore records uploads in memory so tests can assert on
// upload counts, stored bytes and content types.
type fakeImageStore struct {
	mu           sync.Mutex
	objects      map[string][]byte
	contentTypes map[string]string
	puts         int
	failPut      bool
	failGet      bool
}

func newFakeImageStore() *fakeImageStore {
	return &fakeImageStore{
		objects:      make(map[string][]byte),
		contentTypes: make(map[string]string),
	}
}

func (f *fakeImageStore) Put(ctx context.Context, data []byte, contentType string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.puts++
	if f.failPut {
		return "", fmt.Errorf("%w: fake put failure", ErrStorageWrite)
	}
	id := uuid.NewString()
	f.objects[id] = append([]byte(nil), data...)
	f.contentTypes[id] = contentType
	return id, nil
}

func (f *fakeImageStore) Get(ctx context.Context, imageID string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failGet {
		return nil, fmt.Errorf("%w: fake get failure", ErrStorageRead)
	}
	data, ok := f.objects[imageID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrImageNotFound, imageID)
	}
	return append([]byte(nil), data...), nil
}

type fakeBoxStore struct {
	mu         sync.Mutex
	boxes      map[string]StoredBox
	inserts    int
	failInsert bool
}

func newFakeBoxStore() *fakeBoxStore {
	return &fakeBoxStore{boxes: make(map[string]StoredBox)}
}

func (f *fakeBoxStore) Insert(ctx context.Context, box StoredBox) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inserts++
	if f.failInsert {
		return fmt.Errorf("%w: fake insert failure", ErrBoxInsert)
	}
	if _, exists := f.boxes[box.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateBox, box.ID)
	}
	f.boxes[box.ID] = box
	return nil
}
