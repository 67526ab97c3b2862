package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"go.lepak.sg/subway-backend/config"
	"go.lepak.sg/subway-backend/data"
	"go.lepak.sg/subway-backend/logging"
	"go.lepak.sg/subway-backend/model"
	"go.lepak.sg/subway-backend/store"
)

const seedTimeout = 30 * time.Second

var (
	configPath = flag.String("config", config.DefaultPath, "path to config.yml")
	verbose    = flag.Bool("v", false, "verbose mode")
)

func main() {
	flag.Parse()
	logging.Init(*verbose)

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	ctx, cancel = context.WithTimeout(ctx, seedTimeout)
	defer cancel()

	st, err := store.Open(ctx, cfg.DB)
	if err != nil {
		panic(err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Printf("error closing db: %v", err)
		}
	}()

	if err := st.Migrate(ctx); err != nil {
		panic(err)
	}

	if err := seed(ctx, st); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}

// seed loads the static network. Stations and lines that already exist by
// name are kept as they are, so running it again is harmless.
func seed(ctx context.Context, st *store.Store) error {
	existing, err := st.Stations(ctx)
	if err != nil {
		return err
	}
	ids := make(map[string]int64)
	for _, s := range existing {
		ids[s.Name] = s.ID
	}

	for _, name := range data.GetNames() {
		if _, ok := ids[name]; ok {
			continue
		}
		s, err := st.CreateStation(ctx, name)
		if err != nil {
			return fmt.Errorf("station %s: %w", name, err)
		}
		ids[name] = s.ID
		log.Printf("station %d %s", s.ID, name)
	}

	lines, err := st.Lines(ctx)
	if err != nil {
		return err
	}
	seeded := make(map[string]bool)
	for _, l := range lines {
		seeded[l.Name] = true
	}

	for _, dl := range data.GetLines() {
		if seeded[dl.Name] {
			log.Printf("line %s already present", dl.Name)
			continue
		}

		l, err := seedLine(ctx, st, dl, ids)
		if err != nil {
			return fmt.Errorf("line %s: %w", dl.Name, err)
		}

		stations, err := l.OrderedStations()
		if err != nil {
			return err
		}
		fmt.Printf("%s: %d stations, %s .. %s\n", l.Name, len(stations), stations[0].Name, stations[len(stations)-1].Name)
	}
	return nil
}

// seedLine creates the line from its first section, then keeps adding the
// sections that extend one of the current termini until none are left. The
// seed data is shuffled so this has to go round more than once.
func seedLine(ctx context.Context, st *store.Store, dl data.Line, ids map[string]int64) (model.Line, error) {
	first := dl.Sections[0]
	l, err := st.CreateLine(ctx, store.NewLine{
		Name:          dl.Name,
		Color:         dl.Color,
		UpStationID:   ids[first.Up],
		DownStationID: ids[first.Down],
		Distance:      first.Distance,
	})
	if err != nil {
		return model.Line{}, err
	}

	pending := dl.Sections[1:]
	for len(pending) > 0 {
		stations, err := l.OrderedStations()
		if err != nil {
			return model.Line{}, err
		}
		top, bottom := stations[0].ID, stations[len(stations)-1].ID

		var rest []data.Section
		for _, s := range pending {
			if ids[s.Up] != bottom && ids[s.Down] != top {
				rest = append(rest, s)
				continue
			}
			l, err = st.AddSection(ctx, l.ID, store.NewSection{
				UpStationID:   ids[s.Up],
				DownStationID: ids[s.Down],
				Distance:      s.Distance,
			})
			if err != nil {
				return model.Line{}, err
			}
			stations, err = l.OrderedStations()
			if err != nil {
				return model.Line{}, err
			}
			top, bottom = stations[0].ID, stations[len(stations)-1].ID
		}

		if len(rest) == len(pending) {
			return model.Line{}, fmt.Errorf("%d sections do not attach to the line\n%s", len(rest), dl.Repr())
		}
		pending = rest
	}
	return l, nil
}
