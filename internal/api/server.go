package api

import (
	"net/http"

	"github.com/rs/zerolog"

	"product-api/internal/mailer"
	"product-api/internal/metrics"
	"product-api/internal/store"
)

// Server binds the HTTP routes to their handlers. Its collaborators are
// injected so tests can swap in fakes.
type Server struct {
	store   store.Store
	mail    mailer.Sender
	metrics *metrics.Recorder
	log     zerolog.Logger
}

func NewServer(st store.Store, mail mailer.Sender, rec *metrics.Recorder, logger zerolog.Logger) *Server {
	return &Server{store: st, mail: mail, metrics: rec, log: logger}
}

// Handler builds the route table. Literal segments win over wildcards,
// so /products/filter and /products/search shadow /products/{id}.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /products", s.handleListProducts)
	mux.HandleFunc("GET /products/filter", s.handleFilterProducts)
	mux.HandleFunc("GET /products/search", s.handleSearchProducts)
	mux.HandleFunc("GET /products/{id}", s.handleGetProduct)
	mux.HandleFunc("POST /products", s.handleCreateProduct)
	// Path kept from the original public surface.
	mux.HandleFunc("PUT /updateProducts/{id}", s.handleUpdateProduct)
	mux.HandleFunc("DELETE /products/{id}", s.handleDeleteProduct)

	mux.HandleFunc("POST /orders", s.handlePlaceOrder)

	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /stats", s.handleStats)
	mux.Handle("GET /metrics", s.metrics.PromHandler())

	return s.instrument(mux)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.metrics.Snapshot())
}
