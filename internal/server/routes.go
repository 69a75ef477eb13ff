package server

import (
	"net/http"

	"singularity/internal/handler"
	"singularity/internal/middleware"
)

func NewMux(api *handler.API) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /generate", api.HandleGenerate)
	mux.HandleFunc("GET /status/{id}", api.HandleStatus)
	mux.HandleFunc("GET /download/{id}", api.HandleDownload)
	mux.HandleFunc("GET /history", api.HandleHistory)
	mux.HandleFunc("GET /frameworks", api.HandleFrameworks)
	mux.HandleFunc("GET /categories", api.HandleCategories)
	mux.HandleFunc("GET /health", api.HandleHealth)
	mux.HandleFunc("GET /ws/{id}", api.HandleEventsWS)

	return middleware.CORS(mux)
}
