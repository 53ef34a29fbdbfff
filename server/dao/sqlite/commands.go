package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tmoresby/clork/server/dao"
)

type CommandsDB struct {
	db *sql.DB
}

func (repo *CommandsDB) init() error {
	stmt := `CREATE TABLE IF NOT EXISTS commands (
		id TEXT NOT NULL PRIMARY KEY,
		session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE ON UPDATE CASCADE,
		seq INTEGER NOT NULL,
		input TEXT NOT NULL,
		output TEXT NOT NULL,
		created INTEGER NOT NULL,
		UNIQUE(session_id, seq)
	);`
	if _, err := repo.db.Exec(stmt); err != nil {
		return wrapDBError(err)
	}
	return nil
}

func (repo *CommandsDB) Create(ctx context.Context, c dao.Command) (dao.Command, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Command{}, fmt.Errorf("could not generate ID: %w", err)
	}

	now := time.Now()
	_, err = repo.db.ExecContext(ctx,
		`INSERT INTO commands (id, session_id, seq, input, output, created)
		VALUES (?, ?, COALESCE((SELECT MAX(seq) FROM commands WHERE session_id = ?), 0) + 1, ?, ?, ?);`,
		newUUID.String(), c.SessionID.String(), c.SessionID.String(), c.Input, c.Output, now.Unix(),
	)
	if err != nil {
		return dao.Command{}, wrapDBError(err)
	}

	return repo.getByID(ctx, newUUID)
}

func (repo *CommandsDB) getByID(ctx context.Context, id uuid.UUID) (dao.Command, error) {
	c := dao.Command{
		ID: id,
	}
	var sessionID string
	var created int64

	row := repo.db.QueryRowContext(ctx,
		`SELECT session_id, seq, input, output, created FROM commands WHERE id = ?;`,
		id.String(),
	)
	err := row.Scan(&sessionID, &c.Seq, &c.Input, &c.Output, &created)
	if err != nil {
		return c, wrapDBError(err)
	}

	c.SessionID, err = uuid.Parse(sessionID)
	if err != nil {
		return c, fmt.Errorf("stored session ID %q is invalid: %w", sessionID, err)
	}
	c.Created = time.Unix(created, 0)

	return c, nil
}

func (repo *CommandsDB) GetAllBySession(ctx context.Context, sessionID uuid.UUID) ([]dao.Command, error) {
	rows, err := repo.db.QueryContext(ctx,
		`SELECT id, seq, input, output, created FROM commands WHERE session_id = ? ORDER BY seq;`,
		sessionID.String(),
	)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var all []dao.Command

	for rows.Next() {
		c := dao.Command{
			SessionID: sessionID,
		}
		var id string
		var created int64

		if err := rows.Scan(&id, &c.Seq, &c.Input, &c.Output, &created); err != nil {
			return nil, wrapDBError(err)
		}

		c.ID, err = uuid.Parse(id)
		if err != nil {
			return all, fmt.Errorf("stored UUID %q is invalid: %w", id, err)
		}
		c.Created = time.Unix(created, 0)

		all = append(all, c)
	}

	if err := rows.Err(); err != nil {
		return all, wrapDBError(err)
	}

	return all, nil
}
