package line

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"go.lepak.sg/subway-backend/model"
	"go.lepak.sg/subway-backend/server/handler/respond"
	"go.lepak.sg/subway-backend/store"
)

const contentTypeProto = "application/x-protobuf"

// Store is the part of store.Store the line handlers use.
type Store interface {
	Lines(ctx context.Context) ([]model.Line, error)
	Line(ctx context.Context, id int64) (model.Line, error)
	CreateLine(ctx context.Context, nl store.NewLine) (model.Line, error)
	UpdateLine(ctx context.Context, id int64, name, color string) error
	DeleteLine(ctx context.Context, id int64) error
	AddSection(ctx context.Context, lineID int64, ns store.NewSection) (model.Line, error)
}

type handler struct {
	store   Store
	metrics *metrics
}

type NewParam struct {
	Store Store
	// Registerer receives the handler metrics, nil means the default registry
	Registerer prometheus.Registerer
}

type stationResult struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type result struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Color    string          `json:"color"`
	Stations []stationResult `json:"stations"`
}

type createRequest struct {
	Name          string `json:"name" validate:"required"`
	Color         string `json:"color" validate:"required"`
	UpStationID   int64  `json:"upStationId" validate:"gt=0"`
	DownStationID int64  `json:"downStationId" validate:"gt=0,nefield=UpStationID"`
	Distance      int64  `json:"distance" validate:"gt=0"`
}

type updateRequest struct {
	Name  string `json:"name" validate:"required"`
	Color string `json:"color" validate:"required"`
}

type sectionRequest struct {
	UpStationID   int64 `json:"upStationId" validate:"gt=0"`
	DownStationID int64 `json:"downStationId" validate:"gt=0,nefield=UpStationID"`
	Distance      int64 `json:"distance" validate:"gt=0"`
}

func New(p NewParam) (*handler, error) {
	if p.Store == nil {
		return nil, errors.New("line handler: nil store")
	}
	return &handler{
		store:   p.Store,
		metrics: newMetrics(p.Registerer),
	}, nil
}

// Register mounts the line routes on mux.
func (h *handler) Register(mux *http.ServeMux) {
	mux.Handle("GET /lines", h.metrics.Instrument(h.list))
	mux.Handle("POST /lines", h.metrics.Instrument(h.create))
	mux.Handle("GET /lines/{id}", h.metrics.Instrument(h.get))
	mux.Handle("PUT /lines/{id}", h.metrics.Instrument(h.update))
	mux.Handle("DELETE /lines/{id}", h.metrics.Instrument(h.delete))
	mux.Handle("POST /lines/{id}/sections", h.metrics.Instrument(h.addSection))
}

// toResult puts the line's stations in ascending order.
func (h *handler) toResult(l model.Line) (result, error) {
	stations, err := l.OrderedStations()
	if err != nil {
		h.metrics.Faults.Inc()
		return result{}, err
	}

	out := result{
		ID:       l.ID,
		Name:     l.Name,
		Color:    l.Color,
		Stations: make([]stationResult, len(stations)),
	}
	for i, s := range stations {
		out.Stations[i] = stationResult{ID: s.ID, Name: s.Name}
	}
	return out, nil
}

func (h *handler) list(w http.ResponseWriter, r *http.Request) error {
	lines, err := h.store.Lines(r.Context())
	if err != nil {
		return respond.Error(w, err)
	}

	// every line is an independent snapshot, order them in parallel
	out := make([]result, len(lines))
	var g errgroup.Group
	for i := range lines {
		g.Go(func() error {
			res, err := h.toResult(lines[i])
			if err != nil {
				return err
			}
			out[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return respond.Error(w, err)
	}

	return respond.JSON(w, http.StatusOK, out)
}

func (h *handler) get(w http.ResponseWriter, r *http.Request) error {
	id, err := respond.PathID(r)
	if err != nil {
		return respond.Error(w, err)
	}

	l, err := h.store.Line(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		// an unknown line has nothing to show
		w.WriteHeader(http.StatusNoContent)
		return nil
	}
	if err != nil {
		return respond.Error(w, err)
	}

	res, err := h.toResult(l)
	if err != nil {
		return respond.Error(w, err)
	}

	if r.URL.Query().Get("format") == "proto" {
		return writeProto(w, res)
	}
	return respond.JSON(w, http.StatusOK, res)
}

func writeProto(w http.ResponseWriter, res result) error {
	stations := make([]interface{}, len(res.Stations))
	for i, s := range res.Stations {
		stations[i] = map[string]interface{}{"id": s.ID, "name": s.Name}
	}

	doc, err := structpb.NewStruct(map[string]interface{}{
		"id":       res.ID,
		"name":     res.Name,
		"color":    res.Color,
		"stations": stations,
	})
	if err != nil {
		return respond.Error(w, fmt.Errorf("encode line %d: %w", res.ID, err))
	}

	b, err := proto.Marshal(doc)
	if err != nil {
		return respond.Error(w, fmt.Errorf("encode line %d: %w", res.ID, err))
	}

	w.Header().Set("content-type", contentTypeProto)
	_, err = w.Write(b)
	return err
}

func (h *handler) create(w http.ResponseWriter, r *http.Request) error {
	var req createRequest
	if err := respond.Decode(r, &req); err != nil {
		return respond.Error(w, err)
	}

	l, err := h.store.CreateLine(r.Context(), store.NewLine{
		Name:          req.Name,
		Color:         req.Color,
		UpStationID:   req.UpStationID,
		DownStationID: req.DownStationID,
		Distance:      req.Distance,
	})
	if err != nil {
		return respond.Error(w, err)
	}

	res, err := h.toResult(l)
	if err != nil {
		return respond.Error(w, err)
	}

	w.Header().Set("Location", fmt.Sprintf("/lines/%d", l.ID))
	return respond.JSON(w, http.StatusCreated, res)
}

func (h *handler) update(w http.ResponseWriter, r *http.Request) error {
	id, err := respond.PathID(r)
	if err != nil {
		return respond.Error(w, err)
	}

	var req updateRequest
	if err := respond.Decode(r, &req); err != nil {
		return respond.Error(w, err)
	}

	if err := h.store.UpdateLine(r.Context(), id, req.Name, req.Color); err != nil {
		return respond.Error(w, err)
	}
	w.WriteHeader(http.StatusOK)
	return nil
}

func (h *handler) delete(w http.ResponseWriter, r *http.Request) error {
	id, err := respond.PathID(r)
	if err != nil {
		return respond.Error(w, err)
	}

	if err := h.store.DeleteLine(r.Context(), id); err != nil {
		return respond.Error(w, err)
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (h *handler) addSection(w http.ResponseWriter, r *http.Request) error {
	id, err := respond.PathID(r)
	if err != nil {
		return respond.Error(w, err)
	}

	var req sectionRequest
	if err := respond.Decode(r, &req); err != nil {
		return respond.Error(w, err)
	}

	l, err := h.store.AddSection(r.Context(), id, store.NewSection{
		UpStationID:   req.UpStationID,
		DownStationID: req.DownStationID,
		Distance:      req.Distance,
	})
	if err != nil {
		return respond.Error(w, err)
	}

	res, err := h.toResult(l)
	if err != nil {
		return respond.Error(w, err)
	}
	return respond.JSON(w, http.StatusCreated, res)
}
