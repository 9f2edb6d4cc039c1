package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/hazyhaar/zhanalyzer/pkg/analysis"
	"github.com/hazyhaar/zhanalyzer/pkg/dict"
	"github.com/hazyhaar/zhanalyzer/pkg/kit"
)

// NewRouter returns an http.Handler with all zhanalyzer API routes.
func NewRouter(svc *Service) http.Handler {
	mux := http.NewServeMux()
	wrap := func(name string, ep kit.Endpoint) kit.Endpoint {
		return kit.Chain(kit.RequestID(), kit.Logging(svc.logger, name))(ep)
	}
	h := &handler{
		analyze:      wrap("analyze", analyzeEndpoint(svc)),
		syllabify:    wrap("syllabify", syllabifyEndpoint(svc)),
		listProfiles: wrap("list_profiles", listProfilesEndpoint(svc)),
		listTables:   wrap("list_tables", listTablesEndpoint(svc)),
		lookup:       wrap("lookup", lookupEndpoint(svc)),
		svc:          svc,
	}

	mux.HandleFunc("GET /v1/profiles", h.handleListProfiles)
	mux.HandleFunc("GET /v1/analyze/{profile}", h.handleAnalyzeGet)
	mux.HandleFunc("POST /v1/analyze", h.handleAnalyzePost)
	mux.HandleFunc("GET /v1/syllabify/{text}", h.handleSyllabify)
	mux.HandleFunc("GET /v1/tables", h.handleListTables)
	mux.HandleFunc("GET /v1/lookup/{term}", h.handleLookup)
	mux.HandleFunc("GET /v1/health", h.handleHealth)

	return cors(requestID(mux))
}

type handler struct {
	analyze      kit.Endpoint
	syllabify    kit.Endpoint
	listProfiles kit.Endpoint
	listTables   kit.Endpoint
	lookup       kit.Endpoint
	svc          *Service
}

// --- analyze ---

func (h *handler) handleAnalyzeGet(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := &analyzeReq{
		Profile: r.PathValue("profile"),
		Field:   q.Get("field"),
		Text:    q.Get("text"),
	}
	if v := q.Get("stopwords"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "stopwords must be a boolean")
			return
		}
		req.Stopwords = &b
	}
	if v := q.Get("variants"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "variants must be an integer")
			return
		}
		req.Variants = &n
	}
	h.serve(w, r, h.analyze, req)
}

func (h *handler) handleAnalyzePost(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 2*maxTextBytes)
	var req analyzeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	h.serve(w, r, h.analyze, &req)
}

// --- syllabify ---

func (h *handler) handleSyllabify(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.syllabify, &syllabifyReq{Text: r.PathValue("text")})
}

// --- tables ---

func (h *handler) handleListTables(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.listTables, nil)
}

func (h *handler) handleLookup(w http.ResponseWriter, r *http.Request) {
	opts := &dict.LookupOptions{}
	if v := r.URL.Query().Get("kinds"); v != "" {
		opts.Kinds = strings.Split(v, ",")
	}
	if v := r.URL.Query().Get("tables"); v != "" {
		opts.Tables = strings.Split(v, ",")
	}
	h.serve(w, r, h.lookup, &lookupReq{Term: r.PathValue("term"), Opts: opts})
}

// --- profiles ---

func (h *handler) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.listProfiles, nil)
}

// --- health ---

type healthResponse struct {
	Status       string `json:"status"`
	Profiles     int    `json:"profiles"`
	Tables       int    `json:"tables"`
	TotalEntries int    `json:"total_entries"`
	Policy       string `json:"syllabify_policy"`
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	st := h.svc.State()
	writeJSON(w, http.StatusOK, healthResponse{
		Status:       "ok",
		Profiles:     len(st.Profiles.Names()),
		Tables:       st.Tables.TableCount(),
		TotalEntries: st.Tables.TotalEntries(),
		Policy:       st.Syllabifier.Policy().String(),
	})
}

// --- helpers ---

func (h *handler) serve(w http.ResponseWriter, r *http.Request, ep kit.Endpoint, req any) {
	resp, err := ep(r.Context(), req)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, analysis.ErrMissingResource):
		return http.StatusServiceUnavailable
	case errors.Is(err, analysis.ErrProfileDisabled):
		return http.StatusNotFound
	case errors.Is(err, errBadRequest), errors.Is(err, analysis.ErrConfig):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// requestID carries a client X-Request-Id into the endpoint context.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := r.Header.Get("X-Request-Id"); id != "" {
			w.Header().Set("X-Request-Id", id)
			r = r.WithContext(kit.WithRequestID(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}

// cors is a simple CORS middleware for browser-based clients.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-Id")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
