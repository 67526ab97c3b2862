package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"go.lepak.sg/subway-backend/config"
	"go.lepak.sg/subway-backend/logging"
	"go.lepak.sg/subway-backend/model"
	"go.lepak.sg/subway-backend/store"
)

var (
	verbose    = flag.Bool("v", false, "verbose mode")
	timeout    = flag.String("t", "10s", "timeout")
	lineID     = flag.Int64("line", 0, "line id, 0 prints every line")
	configPath = flag.String("config", config.DefaultPath, "path to config.yml")
)

func main() {
	flag.Parse()
	logging.Init(*verbose)

	ctxTimeout, err := time.ParseDuration(*timeout)
	if err != nil {
		fmt.Printf("invalid timeout: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("invalid config: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), ctxTimeout)
	defer cancel()

	st, err := store.Open(ctx, cfg.DB)
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
	defer st.Close()

	var lines []model.Line
	if *lineID != 0 {
		l, err := st.Line(ctx, *lineID)
		if err != nil {
			fmt.Println("error:", err)
			os.Exit(1)
		}
		lines = []model.Line{l}
	} else {
		lines, err = st.Lines(ctx)
		if err != nil {
			fmt.Println("error:", err)
			os.Exit(1)
		}
	}

	failed := false
	for _, l := range lines {
		stations, err := l.OrderedStations()
		if err != nil {
			fmt.Printf("%s: error: %v\n", l.Name, err)
			failed = true
			continue
		}
		fmt.Println(formatLine(l, stations))
	}
	if failed {
		os.Exit(1)
	}
}

func formatLine(l model.Line, stations []model.Station) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("[%d] %s (%s)\n", l.ID, l.Name, l.Color))
	for i, s := range stations {
		if i > 0 {
			sb.WriteString(" >>> ")
		}
		sb.WriteString(s.Name)
	}

	return sb.String()
}
