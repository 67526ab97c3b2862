package status

import (
	"log"
	"net/http"

	"go.lepak.sg/subway-backend/server/handler/respond"
)

// Handler reports the running build.
type Handler struct {
	Version string
}

type result struct {
	Version string `json:"version"`
}

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := respond.JSON(w, http.StatusOK, result{Version: h.Version}); err != nil {
		log.Printf("error: marshal of status result: %s", err.Error())
	}
}
