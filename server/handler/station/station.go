package station

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"go.lepak.sg/subway-backend/model"
	"go.lepak.sg/subway-backend/server/handler/respond"
)

type Store interface {
	Stations(ctx context.Context) ([]model.Station, error)
	CreateStation(ctx context.Context, name string) (model.Station, error)
	DeleteStation(ctx context.Context, id int64) error
}

type handler struct {
	store   Store
	metrics *respond.Metrics
}

type NewParam struct {
	Store      Store
	Registerer prometheus.Registerer
}

type result struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type createRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

func New(p NewParam) (*handler, error) {
	if p.Store == nil {
		return nil, errors.New("station handler: nil store")
	}
	return &handler{
		store:   p.Store,
		metrics: respond.NewMetrics(p.Registerer, "stations"),
	}, nil
}

func (h *handler) Register(mux *http.ServeMux) {
	mux.Handle("GET /stations", h.metrics.Instrument(h.list))
	mux.Handle("POST /stations", h.metrics.Instrument(h.create))
	mux.Handle("DELETE /stations/{id}", h.metrics.Instrument(h.delete))
}

func (h *handler) list(w http.ResponseWriter, r *http.Request) error {
	stations, err := h.store.Stations(r.Context())
	if err != nil {
		return respond.Error(w, err)
	}

	out := make([]result, len(stations))
	for i, s := range stations {
		out[i] = result{ID: s.ID, Name: s.Name}
	}
	return respond.JSON(w, http.StatusOK, out)
}

func (h *handler) create(w http.ResponseWriter, r *http.Request) error {
	var req createRequest
	if err := respond.Decode(r, &req); err != nil {
		return respond.Error(w, err)
	}

	s, err := h.store.CreateStation(r.Context(), req.Name)
	if err != nil {
		return respond.Error(w, err)
	}

	w.Header().Set("Location", fmt.Sprintf("/stations/%d", s.ID))
	return respond.JSON(w, http.StatusCreated, result{ID: s.ID, Name: s.Name})
}

func (h *handler) delete(w http.ResponseWriter, r *http.Request) error {
	id, err := respond.PathID(r)
	if err != nil {
		return respond.Error(w, err)
	}

	if err := h.store.DeleteStation(r.Context(), id); err != nil {
		return respond.Error(w, err)
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}
