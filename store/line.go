package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.lepak.sg/subway-backend/model"
)

const selectSections = `select s.line_id, s.id, s.distance, ss.direction, st.id, st.name
	from section s
	join section_station ss on ss.section_id = s.id
	join station st on st.id = ss.station_id`

type NewLine struct {
	Name          string
	Color         string
	UpStationID   int64
	DownStationID int64
	Distance      int64
}

type NewSection struct {
	UpStationID   int64
	DownStationID int64
	Distance      int64
}

// Line loads one line and all of its sections. Everything is read inside a
// single transaction so the sections form a consistent snapshot.
func (s *Store) Line(ctx context.Context, id int64) (model.Line, error) {
	var l model.Line
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		var err error
		l, err = loadLine(ctx, tx, id)
		return err
	})
	return l, err
}

// Lines loads every line with its sections, ordered by id.
func (s *Store) Lines(ctx context.Context) ([]model.Line, error) {
	var out []model.Line
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, "select id, name, color from line order by id")
		if err != nil {
			return err
		}
		defer rows.Close()

		out = []model.Line{}
		index := make(map[int64]int)
		for rows.Next() {
			var l model.Line
			if err := rows.Scan(&l.ID, &l.Name, &l.Color); err != nil {
				return err
			}
			index[l.ID] = len(out)
			out = append(out, l)
		}
		if err := rows.Err(); err != nil {
			return err
		}

		sections, err := loadSections(ctx, tx, selectSections+" order by s.id")
		if err != nil {
			return err
		}
		for _, sec := range sections {
			if i, ok := index[sec.LineID]; ok {
				out[i].Sections = append(out[i].Sections, sec)
			}
		}
		return nil
	})
	return out, err
}

func (s *Store) CreateLine(ctx context.Context, nl NewLine) (model.Line, error) {
	var l model.Line
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		if err := checkSection(ctx, tx, nl.UpStationID, nl.DownStationID, nl.Distance); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, "insert into line (name, color) values (?, ?)", nl.Name, nl.Color)
		if err != nil {
			return uniqueViolation(err, fmt.Sprintf("line %q", nl.Name))
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}

		if err := insertSection(ctx, tx, id, nl.UpStationID, nl.DownStationID, nl.Distance); err != nil {
			return err
		}

		l, err = loadLine(ctx, tx, id)
		return err
	})
	return l, err
}

// UpdateLine changes the name and color of a line.
func (s *Store) UpdateLine(ctx context.Context, id int64, name, color string) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if err := lineExists(ctx, tx, id); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, "update line set name = ?, color = ? where id = ?", name, color, id)
		return uniqueViolation(err, fmt.Sprintf("line %q", name))
	})
}

// DeleteLine removes a line together with its sections.
func (s *Store) DeleteLine(ctx context.Context, id int64) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if err := lineExists(ctx, tx, id); err != nil {
			return err
		}

		stmts := []string{
			"delete from section_station where section_id in (select id from section where line_id = ?)",
			"delete from section where line_id = ?",
			"delete from line where id = ?",
		}
		for _, stmt := range stmts {
			if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
				return err
			}
		}
		return nil
	})
}

// AddSection extends a line at one of its termini. The new section must
// either leave from the lower terminus or arrive at the upper terminus, and
// its other end must be a station the line does not serve yet. This keeps
// the sections a single path.
func (s *Store) AddSection(ctx context.Context, lineID int64, ns NewSection) (model.Line, error) {
	var l model.Line
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		cur, err := loadLine(ctx, tx, lineID)
		if err != nil {
			return err
		}
		if err := checkSection(ctx, tx, ns.UpStationID, ns.DownStationID, ns.Distance); err != nil {
			return err
		}

		stations, err := cur.OrderedStations()
		if err != nil {
			return err
		}
		if err := canExtend(stations, ns.UpStationID, ns.DownStationID); err != nil {
			return fmt.Errorf("line %d: %w", lineID, err)
		}

		if err := insertSection(ctx, tx, lineID, ns.UpStationID, ns.DownStationID, ns.Distance); err != nil {
			return err
		}

		l, err = loadLine(ctx, tx, lineID)
		return err
	})
	return l, err
}

func canExtend(stations []model.Station, up, down int64) error {
	if len(stations) == 0 {
		return nil
	}

	served := make(map[int64]bool, len(stations))
	for _, st := range stations {
		served[st.ID] = true
	}

	first, last := stations[0], stations[len(stations)-1]
	switch {
	case up == last.ID && !served[down]:
		return nil
	case down == first.ID && !served[up]:
		return nil
	}
	return ErrInvalidSection
}

func checkSection(ctx context.Context, q queryer, up, down, distance int64) error {
	if distance <= 0 {
		return fmt.Errorf("distance %d: %w", distance, ErrInvalidSection)
	}
	if up == down {
		return fmt.Errorf("station %d on both ends: %w", up, ErrInvalidSection)
	}
	for _, id := range []int64{up, down} {
		_, err := station(ctx, q, id)
		if errors.Is(err, ErrNotFound) {
			// the request names a station that does not exist
			return fmt.Errorf("unknown station %d: %w", id, ErrInvalidSection)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func insertSection(ctx context.Context, tx *sql.Tx, lineID, up, down, distance int64) error {
	res, err := tx.ExecContext(ctx, "insert into section (line_id, distance) values (?, ?)", lineID, distance)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}

	const q = "insert into section_station (section_id, station_id, direction) values (?, ?, ?)"
	if _, err := tx.ExecContext(ctx, q, id, up, model.Up.String()); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, q, id, down, model.Down.String())
	return err
}

func lineExists(ctx context.Context, q queryer, id int64) error {
	var one int
	err := q.QueryRowContext(ctx, "select 1 from line where id = ?", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("line %d: %w", id, ErrNotFound)
	}
	return err
}

func loadLine(ctx context.Context, q queryer, id int64) (model.Line, error) {
	l := model.Line{ID: id}
	err := q.QueryRowContext(ctx, "select name, color from line where id = ?", id).Scan(&l.Name, &l.Color)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Line{}, fmt.Errorf("line %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.Line{}, err
	}

	l.Sections, err = loadSections(ctx, q, selectSections+" where s.line_id = ? order by s.id", id)
	if err != nil {
		return model.Line{}, err
	}
	return l, nil
}

// loadSections groups the joined section_station rows back into sections,
// keeping the order in which section ids first appear.
func loadSections(ctx context.Context, q queryer, query string, args ...interface{}) (model.Sections, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out model.Sections
	index := make(map[int64]int)
	for rows.Next() {
		var (
			sec model.Section
			dir string
			st  model.Station
		)
		if err := rows.Scan(&sec.LineID, &sec.ID, &sec.Distance, &dir, &st.ID, &st.Name); err != nil {
			return nil, err
		}

		d, ok := model.ParseDirection(dir)
		if !ok {
			return nil, fmt.Errorf("section %d: unknown direction %q", sec.ID, dir)
		}

		i, ok := index[sec.ID]
		if !ok {
			i = len(out)
			index[sec.ID] = i
			out = append(out, sec)
		}
		out[i].Stations = append(out[i].Stations, model.SectionStation{Direction: d, Station: st})
	}
	return out, rows.Err()
}
