package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.lepak.sg/subway-backend/model"
)

func (s *Store) CreateStation(ctx context.Context, name string) (model.Station, error) {
	res, err := s.db.ExecContext(ctx, "insert into station (name) values (?)", name)
	if err != nil {
		return model.Station{}, uniqueViolation(err, fmt.Sprintf("station %q", name))
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Station{}, err
	}
	return model.Station{ID: id, Name: name}, nil
}

func (s *Store) Stations(ctx context.Context) ([]model.Station, error) {
	rows, err := s.db.QueryContext(ctx, "select id, name from station order by id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Station{}
	for rows.Next() {
		var st model.Station
		if err := rows.Scan(&st.ID, &st.Name); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func (s *Store) Station(ctx context.Context, id int64) (model.Station, error) {
	return station(ctx, s.db, id)
}

func station(ctx context.Context, q queryer, id int64) (model.Station, error) {
	st := model.Station{ID: id}
	err := q.QueryRowContext(ctx, "select name from station where id = ?", id).Scan(&st.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Station{}, fmt.Errorf("station %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.Station{}, err
	}
	return st, nil
}

// DeleteStation removes a station that no section refers to.
func (s *Store) DeleteStation(ctx context.Context, id int64) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := station(ctx, tx, id); err != nil {
			return err
		}

		var n int
		err := tx.QueryRowContext(ctx, "select count(*) from section_station where station_id = ?", id).Scan(&n)
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("station %d: %w", id, ErrStationInUse)
		}

		_, err = tx.ExecContext(ctx, "delete from station where id = ?", id)
		return err
	})
}
