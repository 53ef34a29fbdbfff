package inmem

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tmoresby/clork/server/dao"
)

type CommandsRepo struct {
	mu        sync.RWMutex
	bySession map[uuid.UUID][]dao.Command
}

func newCommandsRepo() *CommandsRepo {
	return &CommandsRepo{
		bySession: make(map[uuid.UUID][]dao.Command),
	}
}

func (repo *CommandsRepo) Create(ctx context.Context, c dao.Command) (dao.Command, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Command{}, fmt.Errorf("could not generate ID: %w", err)
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()

	c.ID = newUUID
	c.Seq = len(repo.bySession[c.SessionID]) + 1
	c.Created = time.Now()
	repo.bySession[c.SessionID] = append(repo.bySession[c.SessionID], c)

	return c, nil
}

func (repo *CommandsRepo) GetAllBySession(ctx context.Context, sessionID uuid.UUID) ([]dao.Command, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	cmds := repo.bySession[sessionID]
	all := make([]dao.Command, len(cmds))
	copy(all, cmds)

	return all, nil
}
