package bridge

import (
	"encoding/json"
	"net/http"
	"strings"

	"bidportal/internal/logging"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Server exposes a Querier over HTTP as the single POST /query endpoint.
type Server struct {
	exec           Querier
	allowedOrigins []string
}

func NewServer(exec Querier, allowedOrigins []string) *Server {
	return &Server{exec: exec, allowedOrigins: allowedOrigins}
}

// Routes builds the bridge router. extra middlewares run after the
// standard chain and before CORS.
func (s *Server) Routes(extra ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(extra...)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/ping", s.PingHandler)
	r.Post("/query", s.QueryHandler)
	return r
}

// PingHandler answers "ok" for liveness checks.
func (s *Server) PingHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// QueryHandler executes {statement, parameters} and answers with the row
// set, the exec summary, or {"error": message}.
func (s *Server) QueryHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1048576)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	var req Request
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid JSON body"})
		return
	}
	if strings.TrimSpace(req.Statement) == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: ErrMissingStatement.Error()})
		return
	}

	res, err := s.exec.Query(r.Context(), req.Statement, normalizeParams(req.Parameters)...)
	if err != nil {
		logging.Error("query failed",
			"request_id", middleware.GetReqID(r.Context()),
			"error", err.Error(),
		)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// normalizeParams turns JSON numbers into int64 when integral and float64
// otherwise, so drivers receive native values.
func normalizeParams(params []any) []any {
	out := make([]any, len(params))
	for i, p := range params {
		n, ok := p.(json.Number)
		if !ok {
			out[i] = p
			continue
		}
		if v, err := n.Int64(); err == nil {
			out[i] = v
		} else if f, err := n.Float64(); err == nil {
			out[i] = f
		} else {
			out[i] = n.String()
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
