// Package itemstest serves an in-memory items API for tests.
package itemstest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/idilsaglam/items/internal/model"
)

// Server is a fake items API backed by a slice.
type Server struct {
	*httptest.Server

	mu             sync.Mutex
	items          []model.Item
	nextID         int
	lastAuth       string
	ignoreSimulate bool
	examples       map[string]any
	requests       atomic.Int64
}

// NewServer starts a server seeded with items and closes it when t ends.
func NewServer(t testing.TB, seed ...model.Item) *Server {
	t.Helper()
	s := &Server{nextID: 1}
	for _, it := range seed {
		s.items = append(s.items, it)
		if it.ID >= s.nextID {
			s.nextID = it.ID + 1
		}
	}
	s.Server = httptest.NewServer(s.Router())
	t.Cleanup(s.Close)
	return s
}

// Router exposes the chi routes without starting a listener.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.count)
	r.Get("/items", s.list)
	r.Post("/items", s.create)
	r.Put("/items/{id}", s.update)
	r.Delete("/items/{id}", s.remove)
	return r
}

// IgnoreSimulate makes ?simulate= a no-op so diagnostics see 2xx.
func (s *Server) IgnoreSimulate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ignoreSimulate = true
}

// SetExamples sets the requestExamples returned by GET /items.
func (s *Server) SetExamples(ex map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.examples = ex
}

// Requests is the number of requests served so far.
func (s *Server) Requests() int64 { return s.requests.Load() }

// LastAuthorization is the Authorization header of the latest request.
func (s *Server) LastAuthorization() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAuth
}

// Items returns a copy of the stored items.
func (s *Server) Items() []model.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Item(nil), s.items...)
}

func (s *Server) count(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.requests.Add(1)
		s.mu.Lock()
		s.lastAuth = r.Header.Get("Authorization")
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

var simulated = map[string]struct {
	status int
	msg    string
}{
	"unauthorized": {http.StatusUnauthorized, "Authentication required"},
	"forbidden":    {http.StatusForbidden, "You do not have access to this resource"},
	"server-error": {http.StatusInternalServerError, "Simulated server error"},
	"teapot":       {http.StatusTeapot, "I'm a teapot"},
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	ignore := s.ignoreSimulate
	out := model.ItemList{
		Items:           append([]model.Item{}, s.items...),
		RequestExamples: s.examples,
	}
	s.mu.Unlock()
	if sim, ok := simulated[r.URL.Query().Get("simulate")]; ok && !ignore {
		writeError(w, sim.status, sim.msg)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func decodeInput(r *http.Request) (model.ItemInput, string) {
	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return model.ItemInput{}, "Invalid JSON body"
	}
	name, _ := raw["name"].(string)
	name = strings.TrimSpace(name)
	if name == "" {
		return model.ItemInput{}, "Name is required"
	}
	qty, ok := raw["quantity"].(float64)
	if !ok {
		return model.ItemInput{}, "Quantity must be a number"
	}
	return model.ItemInput{Name: name, Quantity: int(qty)}, ""
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	in, msg := decodeInput(r)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	s.mu.Lock()
	it := model.Item{ID: s.nextID, Name: in.Name, Quantity: in.Quantity}
	s.nextID++
	s.items = append(s.items, it)
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, it)
}

func (s *Server) indexOf(r *http.Request) int {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return -1
	}
	for i, it := range s.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	in, msg := decodeInput(r)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(r)
	if i < 0 {
		writeError(w, http.StatusNotFound, "Item not found")
		return
	}
	s.items[i].Name = in.Name
	s.items[i].Quantity = in.Quantity
	writeJSON(w, http.StatusOK, s.items[i])
}

func (s *Server) remove(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(r)
	if i < 0 {
		writeError(w, http.StatusNotFound, "Item not found")
		return
	}
	gone := s.items[i]
	s.items = append(s.items[:i], s.items[i+1:]...)
	writeJSON(w, http.StatusOK, gone)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorBody{Error: msg})
}
