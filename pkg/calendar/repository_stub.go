package calendar

import (
	"context"
	"sync"
)

// RepositoryStub is an in-memory Repository for tests. SaveErr, when set, is
// returned from Save to exercise persistence failure paths.
type RepositoryStub struct {
	mu        sync.Mutex
	stored    *Snapshot
	saveCalls int

	SaveErr error
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{}
}

func (r *RepositoryStub) Load(ctx context.Context) (*Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stored == nil {
		return nil, nil
	}
	s := r.stored.clone()
	return &s, nil
}

func (r *RepositoryStub) Save(ctx context.Context, snapshot Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saveCalls++
	if r.SaveErr != nil {
		return r.SaveErr
	}
	s := snapshot.clone()
	r.stored = &s
	return nil
}

// SaveCalls returns how many times Save has been invoked.
func (r *RepositoryStub) SaveCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saveCalls
}

// Stored returns the last successfully saved snapshot, or nil.
func (r *RepositoryStub) Stored() *Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stored == nil {
		return nil
	}
	s := r.stored.clone()
	return &s
}
