// Package http exposes the hub's presentation-facing surface: a JSON API for
// the catalog, history, progress, and tracker views, plus the exam websocket.
package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/Pottaprashanth/Interview-preparation-hub/internal/catalog"
	"github.com/Pottaprashanth/Interview-preparation-hub/internal/domain"
	"github.com/Pottaprashanth/Interview-preparation-hub/internal/history"
	"github.com/Pottaprashanth/Interview-preparation-hub/internal/progress"
	"github.com/Pottaprashanth/Interview-preparation-hub/internal/tracker"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// API bundles the handlers behind the chi router.
type API struct {
	catalog  *catalog.Repository
	ledger   *history.Ledger
	progress *progress.Service
	tracker  *tracker.Service
	ws       *WSHandler
	clock    func() time.Time
}

func NewAPI(cat *catalog.Repository, ledger *history.Ledger, prog *progress.Service, trk *tracker.Service, ws *WSHandler) *API {
	return &API{catalog: cat, ledger: ledger, progress: prog, tracker: trk, ws: ws, clock: time.Now}
}

// Router builds the full route tree.
func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/ws", a.ws.ServeWS)

	r.Route("/api", func(r chi.Router) {
		r.Get("/companies", a.listCompanies)
		r.Get("/companies/{id}/questions", a.companyQuestions)
		r.Get("/history", a.listHistory)
		r.Post("/mock/{id}/complete", a.completeMock)
		r.Get("/progress", a.getProgress)
		r.Post("/progress/checkin", a.checkIn)
		r.Post("/progress/readiness", a.adjustReadiness)
		r.Get("/progress/readiness/history", a.readinessHistory)
		r.Get("/tracker", a.listTracker)
		r.Post("/tracker", a.addTracker)
		r.Delete("/tracker/{id}", a.removeTracker)
	})
	return r
}

func (a *API) listCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := a.catalog.Companies(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, companies)
}

// companyQuestions returns the mock question set. An unknown company or an
// empty set is a normal 200 with empty collections, not an error.
func (a *API) companyQuestions(w http.ResponseWriter, r *http.Request) {
	qs, _, err := a.catalog.QuestionsFor(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if qs.Interview == nil {
		qs.Interview = []domain.InterviewQuestion{}
	}
	if qs.Mcq == nil {
		qs.Mcq = []domain.McqQuestion{}
	}
	writeJSON(w, http.StatusOK, qs)
}

func (a *API) listHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.ledger.Load(r.Context()))
}

type completeMockRequest struct {
	Answered int `json:"answered"`
	Seconds  int `json:"seconds"`
}

// completeMock records a finished mock run for a company and credits the
// gamification side.
func (a *API) completeMock(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "id")
	company, ok, err := a.catalog.Lookup(r.Context(), companyID)
	if err != nil {
		writeError(w, err)
		return
	}
	if !ok {
		writeJSON(w, http.StatusNotFound, errorPayload{Message: "unknown company"})
		return
	}
	var req completeMockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorPayload{Message: "invalid body"})
		return
	}
	qs, _, err := a.catalog.QuestionsFor(r.Context(), companyID)
	if err != nil {
		writeError(w, err)
		return
	}
	rec := domain.HistoryRecord{
		Type:        domain.AttemptMock,
		Company:     companyID,
		CompanyName: company.Name,
		Score:       req.Answered,
		Total:       len(qs.Interview),
		Seconds:     req.Seconds,
		Date:        a.clock(),
	}
	if err := a.ledger.Append(r.Context(), rec); err != nil {
		writeError(w, err)
		return
	}
	if _, err := a.progress.AwardBadge(r.Context(), progress.BadgeFirstMock); err != nil {
		log.Printf("award badge: %v", err)
	}
	if err := a.progress.AddPoints(r.Context(), progress.DefaultUser, 10); err != nil {
		log.Printf("add points: %v", err)
	}
	writeJSON(w, http.StatusOK, rec)
}

type progressView struct {
	Readiness   int                       `json:"readiness"`
	Badges      []string                  `json:"badges"`
	Streak      domain.Streak             `json:"streak"`
	Leaderboard []domain.LeaderboardEntry `json:"leaderboard"`
}

func (a *API) getProgress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	writeJSON(w, http.StatusOK, progressView{
		Readiness:   a.progress.Readiness(ctx),
		Badges:      a.progress.Badges(ctx),
		Streak:      a.progress.Streak(ctx),
		Leaderboard: a.progress.Leaderboard(ctx),
	})
}

type checkInResponse struct {
	Streak    domain.Streak `json:"streak"`
	CheckedIn bool          `json:"checkedIn"`
}

func (a *API) checkIn(w http.ResponseWriter, r *http.Request) {
	streak, checkedIn, err := a.progress.CheckIn(r.Context(), a.clock())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, checkInResponse{Streak: streak, CheckedIn: checkedIn})
}

type adjustReadinessRequest struct {
	Delta int `json:"delta"`
}

func (a *API) adjustReadiness(w http.ResponseWriter, r *http.Request) {
	var req adjustReadinessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorPayload{Message: "invalid body"})
		return
	}
	score, err := a.progress.AdjustReadiness(r.Context(), req.Delta, a.clock())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"readiness": score})
}

func (a *API) readinessHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.progress.ReadinessHistory(r.Context()))
}

func (a *API) listTracker(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.tracker.List(r.Context()))
}

type addTrackerRequest struct {
	Company string `json:"company"`
	Result  string `json:"result"`
	Notes   string `json:"notes"`
}

func (a *API) addTracker(w http.ResponseWriter, r *http.Request) {
	var req addTrackerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Company == "" {
		writeJSON(w, http.StatusBadRequest, errorPayload{Message: "company is required"})
		return
	}
	entry, err := a.tracker.Add(r.Context(), req.Company, req.Result, req.Notes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (a *API) removeTracker(w http.ResponseWriter, r *http.Request) {
	err := a.tracker.Remove(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, domain.ErrEntryNotFound) {
		writeJSON(w, http.StatusNotFound, errorPayload{Message: "entry not found"})
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

// writeError maps domain failures onto status codes; catalog unavailability
// is the only 503 in the system.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, domain.ErrDataUnavailable) {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, errorPayload{Message: err.Error()})
}
