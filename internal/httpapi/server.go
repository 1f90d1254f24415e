// Package httpapi serves numbolt rounds over a JSON HTTP API.
//
// Routes:
//   - GET  /health
//   - GET  /api/modes
//   - GET  /api/profiles/{profile}/progress/{mode}
//   - GET  /api/profiles/{profile}/rounds?mode=&limit=
//   - POST /api/rounds                 start a round for {profile, mode}
//   - GET  /api/rounds/{id}            current round state
//   - POST /api/rounds/{id}/guess      submit {guess}
//   - POST /api/rounds/{id}/hint       reveal the next hint
//   - POST /api/rounds/{id}/next       replay with a fresh puzzle
//
// Live rounds are kept in memory; progress and history go through the
// same repository and store as the terminal UI.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/numbolt/internal/core"
	"github.com/vovakirdan/numbolt/internal/engine"
	"github.com/vovakirdan/numbolt/internal/progress"
	"github.com/vovakirdan/numbolt/internal/registry"
	"github.com/vovakirdan/numbolt/internal/round"
	"github.com/vovakirdan/numbolt/internal/storage"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 200
	requestTimeout      = 10 * time.Second
)

// Engines builds engines and repositories for a profile.
type Engines interface {
	Repository(profile string) *progress.Repository
	Engine(ctx context.Context, mode registry.Mode, rc core.RuntimeConfig) *engine.Engine
}

// History lists recorded rounds. *storage.Store implements it.
type History interface {
	RecentRounds(ctx context.Context, profile, mode string, limit int) ([]storage.RoundRecord, error)
}

// Options configures a Server.
type Options struct {
	Logger     *log.Logger
	History    History       // Nil disables the history route
	Seed       int64         // Non-zero fixes puzzle generation
	SessionTTL time.Duration // Idle rounds are dropped after this long
}

// Server bundles the router and the live rounds.
type Server struct {
	r        *chi.Mux
	engines  Engines
	history  History
	sessions *sessionStore
	logger   *log.Logger
	seed     int64

	mu  sync.Mutex // Guards srv
	srv *http.Server
}

// New constructs a Server, installs middleware, and registers routes.
func New(engines Engines, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.SessionTTL == 0 {
		opts.SessionTTL = time.Hour
	}

	s := &Server{
		r:        chi.NewRouter(),
		engines:  engines,
		history:  opts.History,
		sessions: newSessionStore(opts.SessionTTL),
		logger:   opts.Logger.WithPrefix("numbolt-http"),
		seed:     opts.Seed,
	}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(requestTimeout))
	s.r.Use(jsonContentType)
	s.r.Use(s.requestLogger)

	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.r.Route("/api", func(r chi.Router) {
		r.Get("/modes", s.handleModes)
		r.Get("/profiles/{profile}/progress/{mode}", s.handleProgress)
		r.Get("/profiles/{profile}/rounds", s.handleHistory)

		r.Post("/rounds", s.handleNewRound)
		r.Get("/rounds/{id}", s.handleRound)
		r.Post("/rounds/{id}/guess", s.handleGuess)
		r.Post("/rounds/{id}/hint", s.handleHint)
		r.Post("/rounds/{id}/next", s.handleNext)
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found: "+r.URL.Path)
	})

	return s
}

// Router exposes the router (useful for tests).
func (s *Server) Router() http.Handler { return s.r }

// ListenAndServe serves HTTP on addr until Shutdown is called.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.mu.Lock()
	s.srv = srv
	s.mu.Unlock()

	s.logger.Info("starting HTTP server", "address", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.srv
	s.mu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", chimw.GetReqID(r.Context()),
		)
	})
}

// ------------------------------ payloads -----------------------------------

type modeRes struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type newRoundReq struct {
	Profile string `json:"profile"`
	Mode    string `json:"mode"`
}

type roundRes struct {
	ID          string            `json:"id"`
	Mode        string            `json:"mode"`
	Profile     string            `json:"profile"`
	Intro       string            `json:"intro,omitempty"`
	Prompt      string            `json:"prompt"`
	Terms       []string          `json:"terms,omitempty"`
	Attempt     int               `json:"attempt"`
	MaxAttempts int               `json:"maxAttempts"`
	HintsLeft   int               `json:"hintsLeft"`
	Over        bool              `json:"over"`
	Progress    progress.Progress `json:"progress"`
}

type guessReq struct {
	// Guess may be a JSON string or number; anything else is sent as text.
	Guess json.RawMessage `json:"guess"`
}

type eventRes struct {
	Outcome  string            `json:"outcome"`
	Attempt  int               `json:"attempt"`
	Resolved bool              `json:"resolved"`
	Reward   round.Reward      `json:"reward"`
	Answer   string            `json:"answer,omitempty"`
	LevelUp  bool              `json:"levelUp"`
	Level    int               `json:"level"`
	Message  string            `json:"message"`
	Detail   string            `json:"detail,omitempty"`
	Cue      string            `json:"cue"`
	Progress progress.Progress `json:"progress"`
}

type hintRes struct {
	Hint      string `json:"hint"`
	HintsLeft int    `json:"hintsLeft"`
}

// ------------------------------ handlers -----------------------------------

func (s *Server) handleModes(w http.ResponseWriter, r *http.Request) {
	modes := registry.List()
	res := make([]modeRes, len(modes))
	for i, m := range modes {
		res[i] = modeRes{ID: m.ID, Title: m.Title}
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	mode, err := registry.Get(chi.URLParam(r, "mode"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	p := s.engines.Repository(profileParam(chi.URLParam(r, "profile"))).Load(r.Context(), mode.StorageName)
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeError(w, http.StatusNotImplemented, "round history needs the progress database")
		return
	}

	modeID := r.URL.Query().Get("mode")
	if modeID != "" && !registry.Exists(modeID) {
		writeError(w, http.StatusNotFound, "unknown mode: "+modeID)
		return
	}

	limit := defaultHistoryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	rounds, err := s.history.RecentRounds(r.Context(), profileParam(chi.URLParam(r, "profile")), modeID, limit)
	if err != nil {
		s.logger.Error("list rounds", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load history")
		return
	}
	if rounds == nil {
		rounds = []storage.RoundRecord{}
	}
	writeJSON(w, http.StatusOK, rounds)
}

func (s *Server) handleNewRound(w http.ResponseWriter, r *http.Request) {
	var req newRoundReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	mode, err := registry.Get(req.Mode)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	profile := profileParam(req.Profile)
	eng := s.engines.Engine(r.Context(), mode, core.RuntimeConfig{Seed: s.seed, Profile: profile})
	ev := eng.StartRound()

	sess := s.sessions.add(profile, eng)
	s.logger.Info("round started", "id", sess.id, "profile", profile, "mode", mode.ID)

	writeJSON(w, http.StatusCreated, roundView(sess, ev.Message))
}

func (s *Server) handleRound(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.touch(time.Now())

	writeJSON(w, http.StatusOK, roundView(sess, ""))
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.touch(time.Now())

	ev, err := sess.eng.SubmitText(r.Context(), guessText(req.Guess))
	if errors.Is(err, round.ErrRoundOver) {
		writeError(w, http.StatusConflict, "round is over; start the next one")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, eventView(ev, sess.eng.Progress()))
}

func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.touch(time.Now())

	if sess.eng.Round() == nil || sess.eng.Round().Over() {
		writeError(w, http.StatusConflict, "round is over; start the next one")
		return
	}
	ev, ok := sess.eng.Hint()
	if !ok {
		writeError(w, http.StatusConflict, "no hints left")
		return
	}
	writeJSON(w, http.StatusOK, hintRes{Hint: ev.Message, HintsLeft: sess.eng.Round().HintsLeft()})
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.touch(time.Now())

	sess.eng.Refresh(r.Context())
	ev := sess.eng.StartRound()
	writeJSON(w, http.StatusOK, roundView(sess, ev.Message))
}

// session resolves the {id} parameter, writing a 404 when it is unknown.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*session, bool) {
	sess, err := s.sessions.get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return nil, false
	}
	return sess, true
}

// ------------------------------- helpers -----------------------------------

// roundView renders a session's live round; callers hold sess.mu.
func roundView(sess *session, intro string) roundRes {
	eng := sess.eng
	res := roundRes{
		ID:          sess.id,
		Mode:        eng.Mode().ID,
		Profile:     sess.profile,
		Intro:       intro,
		MaxAttempts: eng.MaxAttempts(),
		Progress:    eng.Progress(),
	}

	rd := eng.Round()
	if rd == nil {
		return res
	}
	p := rd.Puzzle()
	res.Prompt = p.Prompt
	res.Attempt = rd.Attempt()
	res.HintsLeft = rd.HintsLeft()
	res.Over = rd.Over()
	if len(p.Terms) > 0 {
		res.Terms = make([]string, len(p.Terms))
		for i, t := range p.Terms {
			res.Terms[i] = t.String()
		}
	}
	return res
}

func eventView(ev engine.Event, p progress.Progress) eventRes {
	return eventRes{
		Outcome:  ev.Outcome.String(),
		Attempt:  ev.Attempt,
		Resolved: ev.Resolved(),
		Reward:   ev.Reward,
		Answer:   ev.Answer,
		LevelUp:  ev.LevelUp,
		Level:    ev.Level,
		Message:  ev.Message,
		Detail:   ev.Detail,
		Cue:      ev.Cue.String(),
		Progress: p,
	}
}

// guessText accepts "7", 7 and "-3"; other JSON is passed through as text
// and evaluates as an invalid guess.
func guessText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}

func profileParam(p string) string {
	return core.NormalizeProfile(p)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
