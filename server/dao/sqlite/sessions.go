package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tmoresby/clork/server/dao"
)

type SessionsDB struct {
	db *sql.DB
}

func (repo *SessionsDB) init() error {
	stmt := `CREATE TABLE IF NOT EXISTS sessions (
		id TEXT NOT NULL PRIMARY KEY,
		world_file TEXT NOT NULL,
		created INTEGER NOT NULL
	);`
	if _, err := repo.db.Exec(stmt); err != nil {
		return wrapDBError(err)
	}
	return nil
}

func (repo *SessionsDB) Create(ctx context.Context, s dao.Session) (dao.Session, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Session{}, fmt.Errorf("could not generate ID: %w", err)
	}

	now := time.Now()
	_, err = repo.db.ExecContext(ctx,
		`INSERT INTO sessions (id, world_file, created) VALUES (?, ?, ?);`,
		newUUID.String(), s.WorldFile, now.Unix(),
	)
	if err != nil {
		return dao.Session{}, wrapDBError(err)
	}

	return repo.GetByID(ctx, newUUID)
}

func (repo *SessionsDB) GetByID(ctx context.Context, id uuid.UUID) (dao.Session, error) {
	s := dao.Session{
		ID: id,
	}
	var created int64

	row := repo.db.QueryRowContext(ctx,
		`SELECT world_file, created FROM sessions WHERE id = ?;`,
		id.String(),
	)
	if err := row.Scan(&s.WorldFile, &created); err != nil {
		return s, wrapDBError(err)
	}

	s.Created = time.Unix(created, 0)

	return s, nil
}

func (repo *SessionsDB) GetAll(ctx context.Context) ([]dao.Session, error) {
	rows, err := repo.db.QueryContext(ctx,
		`SELECT id, world_file, created FROM sessions ORDER BY created;`)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var all []dao.Session

	for rows.Next() {
		var s dao.Session
		var id string
		var created int64

		if err := rows.Scan(&id, &s.WorldFile, &created); err != nil {
			return nil, wrapDBError(err)
		}

		s.ID, err = uuid.Parse(id)
		if err != nil {
			return all, fmt.Errorf("stored UUID %q is invalid: %w", id, err)
		}
		s.Created = time.Unix(created, 0)

		all = append(all, s)
	}

	if err := rows.Err(); err != nil {
		return all, wrapDBError(err)
	}

	return all, nil
}

func (repo *SessionsDB) Delete(ctx context.Context, id uuid.UUID) (dao.Session, error) {
	curVal, err := repo.GetByID(ctx, id)
	if err != nil {
		return curVal, err
	}

	res, err := repo.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?;`, id.String())
	if err != nil {
		return curVal, wrapDBError(err)
	}
	rowsAff, err := res.RowsAffected()
	if err != nil {
		return curVal, wrapDBError(err)
	}
	if rowsAff < 1 {
		return curVal, dao.ErrNotFound
	}

	return curVal, nil
}
