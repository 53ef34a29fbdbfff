package inmem

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tmoresby/clork/server/dao"
)

type SessionsRepo struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]dao.Session
}

func newSessionsRepo() *SessionsRepo {
	return &SessionsRepo{
		sessions: make(map[uuid.UUID]dao.Session),
	}
}

func (repo *SessionsRepo) Create(ctx context.Context, s dao.Session) (dao.Session, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Session{}, fmt.Errorf("could not generate ID: %w", err)
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()

	s.ID = newUUID
	s.Created = time.Now()
	repo.sessions[s.ID] = s

	return s, nil
}

func (repo *SessionsRepo) GetByID(ctx context.Context, id uuid.UUID) (dao.Session, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	s, ok := repo.sessions[id]
	if !ok {
		return dao.Session{}, dao.ErrNotFound
	}
	return s, nil
}

func (repo *SessionsRepo) GetAll(ctx context.Context) ([]dao.Session, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	all := make([]dao.Session, 0, len(repo.sessions))
	for _, s := range repo.sessions {
		all = append(all, s)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].Created.Before(all[j].Created)
	})

	return all, nil
}

func (repo *SessionsRepo) Delete(ctx context.Context, id uuid.UUID) (dao.Session, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	s, ok := repo.sessions[id]
	if !ok {
		return dao.Session{}, dao.ErrNotFound
	}
	delete(repo.sessions, id)

	return s, nil
}
