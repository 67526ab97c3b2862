// Package respond holds the pieces every handler shares: JSON encoding,
// error to status mapping, request decoding and per-handler metrics.
package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"go.lepak.sg/subway-backend/store"
)

var validate = validator.New()

type errorBody struct {
	Error string `json:"error"`
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("content-type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		errstr := fmt.Sprintf("{\"error\":%q}", err.Error())
		if _, err2 := w.Write([]byte(errstr)); err2 != nil {
			log.Printf("error: double fault writing response: %v -> %v", err, err2)
		}
		return err
	}

	w.Header().Set("content-type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(b); err != nil {
		log.Printf("error: writing response: %v", err)
	}
	return nil
}

// Error writes err as {"error": ...} with the status code matching it and
// returns err so callers can count it.
func Error(w http.ResponseWriter, err error) error {
	status := Status(err)
	if status >= http.StatusInternalServerError {
		log.Printf("error: %v", err)
	}
	_ = JSON(w, status, errorBody{Error: err.Error()})
	return err
}

// Status maps domain and storage errors onto http status codes.
func Status(err error) int {
	var verr validator.ValidationErrors
	var bad *BadRequestError
	switch {
	case errors.As(err, &bad), errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrInvalidSection):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrStationInUse), errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

type BadRequestError struct {
	Err error
}

func (e *BadRequestError) Error() string { return "bad request: " + e.Err.Error() }

func (e *BadRequestError) Unwrap() error { return e.Err }

// Decode reads a JSON body into v and validates it.
func Decode(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return &BadRequestError{Err: err}
	}
	if err := validate.Struct(v); err != nil {
		return &BadRequestError{Err: err}
	}
	return nil
}

// PathID parses the {id} wildcard of the matched route.
func PathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, &BadRequestError{Err: fmt.Errorf("invalid id %q", r.PathValue("id"))}
	}
	return id, nil
}
