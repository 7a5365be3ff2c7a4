package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Pottaprashanth/Interview-preparation-hub/internal/domain"
	"github.com/Pottaprashanth/Interview-preparation-hub/internal/history"
	"github.com/Pottaprashanth/Interview-preparation-hub/internal/infra/memory"
	"github.com/Pottaprashanth/Interview-preparation-hub/internal/progress"
	"github.com/Pottaprashanth/Interview-preparation-hub/internal/tracker"
)

func newTestServer(t *testing.T) (*httptest.Server, *memory.KV) {
	t.Helper()
	kv := memory.NewKV()
	repo := testRepo()
	ledger := history.NewLedger(kv)
	prog := progress.NewService(kv)
	trk := tracker.NewService(kv, prog)
	ws := NewWSHandlerWithTick(repo, ledger, prog, 10*time.Millisecond)
	api := NewAPI(repo, ledger, prog, trk, ws)
	server := httptest.NewServer(api.Router())
	t.Cleanup(server.Close)
	return server, kv
}

func TestListCompanies(t *testing.T) {
	server, _ := newTestServer(t)

	var companies []domain.Company
	getJSON(t, server, "/api/companies", &companies)
	if len(companies) != 2 || companies[0].ID != "acme" {
		t.Fatalf("unexpected companies %+v", companies)
	}
}

func TestCompanyQuestionsUnknownIsEmptyNotError(t *testing.T) {
	server, _ := newTestServer(t)

	res, err := http.Get(server.URL + "/api/companies/nope/questions")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for unknown company, got %d", res.StatusCode)
	}
	var qs domain.QuestionSet
	if err := json.NewDecoder(res.Body).Decode(&qs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(qs.Interview) != 0 || len(qs.Mcq) != 0 {
		t.Fatalf("expected empty question set, got %+v", qs)
	}
}

func TestCompleteMockRecordsHistoryAndBadge(t *testing.T) {
	server, _ := newTestServer(t)

	res := postJSON(t, server, "/api/mock/acme/complete", map[string]int{"answered": 2, "seconds": 95})
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	var records []domain.HistoryRecord
	getJSON(t, server, "/api/history", &records)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	rec := records[0]
	if rec.Type != domain.AttemptMock || rec.CompanyName != "Acme Corp" || rec.Seconds != 95 {
		t.Fatalf("unexpected record %+v", rec)
	}

	var view struct {
		Badges      []string                  `json:"badges"`
		Leaderboard []domain.LeaderboardEntry `json:"leaderboard"`
	}
	getJSON(t, server, "/api/progress", &view)
	if len(view.Badges) != 1 || view.Badges[0] != progress.BadgeFirstMock {
		t.Fatalf("expected first-mock badge, got %v", view.Badges)
	}
	if len(view.Leaderboard) != 1 || view.Leaderboard[0].Points != 10 {
		t.Fatalf("expected 10 points, got %+v", view.Leaderboard)
	}
}

func TestCompleteMockUnknownCompany(t *testing.T) {
	server, _ := newTestServer(t)

	res := postJSON(t, server, "/api/mock/nope/complete", map[string]int{"answered": 1})
	defer res.Body.Close()
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.StatusCode)
	}
}

func TestHistoryCorruptionDegradesToEmpty(t *testing.T) {
	server, kv := newTestServer(t)
	if err := kv.Set(context.Background(), history.Key, []byte("{broken")); err != nil {
		t.Fatalf("seed corrupt history: %v", err)
	}

	var records []domain.HistoryRecord
	getJSON(t, server, "/api/history", &records)
	if len(records) != 0 {
		t.Fatalf("expected empty history, got %d records", len(records))
	}
}

func TestCheckInEndpoint(t *testing.T) {
	server, _ := newTestServer(t)

	res := postJSON(t, server, "/api/progress/checkin", nil)
	defer res.Body.Close()
	var first struct {
		Streak    domain.Streak `json:"streak"`
		CheckedIn bool          `json:"checkedIn"`
	}
	if err := json.NewDecoder(res.Body).Decode(&first); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !first.CheckedIn || first.Streak.Count != 1 {
		t.Fatalf("unexpected first check-in %+v", first)
	}

	res2 := postJSON(t, server, "/api/progress/checkin", nil)
	defer res2.Body.Close()
	var second struct {
		CheckedIn bool `json:"checkedIn"`
	}
	if err := json.NewDecoder(res2.Body).Decode(&second); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if second.CheckedIn {
		t.Fatalf("expected same-day repeat to be a no-op")
	}
}

func TestReadinessEndpoints(t *testing.T) {
	server, _ := newTestServer(t)

	res := postJSON(t, server, "/api/progress/readiness", map[string]int{"delta": 7})
	defer res.Body.Close()
	var adjusted map[string]int
	if err := json.NewDecoder(res.Body).Decode(&adjusted); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if adjusted["readiness"] != 57 {
		t.Fatalf("expected 57, got %d", adjusted["readiness"])
	}

	var points []domain.ReadinessPoint
	getJSON(t, server, "/api/progress/readiness/history", &points)
	if len(points) != 1 || points[0].Score != 57 {
		t.Fatalf("unexpected chart history %+v", points)
	}
}

func TestTrackerCRUD(t *testing.T) {
	server, _ := newTestServer(t)

	res := postJSON(t, server, "/api/tracker", map[string]string{
		"company": "Acme Corp", "result": "applied", "notes": "via referral",
	})
	defer res.Body.Close()
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", res.StatusCode)
	}
	var entry domain.TrackerEntry
	if err := json.NewDecoder(res.Body).Decode(&entry); err != nil {
		t.Fatalf("decode: %v", err)
	}

	var entries []domain.TrackerEntry
	getJSON(t, server, "/api/tracker", &entries)
	if len(entries) != 1 || entries[0].ID != entry.ID {
		t.Fatalf("unexpected entries %+v", entries)
	}

	req, err := http.NewRequest(http.MethodDelete, server.URL+"/api/tracker/"+entry.ID, nil)
	if err != nil {
		t.Fatalf("build delete: %v", err)
	}
	del, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	del.Body.Close()
	if del.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", del.StatusCode)
	}

	getJSON(t, server, "/api/tracker", &entries)
	if len(entries) != 0 {
		t.Fatalf("expected empty tracker, got %+v", entries)
	}
}

func TestTrackerValidationAndMissing(t *testing.T) {
	server, _ := newTestServer(t)

	res := postJSON(t, server, "/api/tracker", map[string]string{"result": "applied"})
	defer res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 without company, got %d", res.StatusCode)
	}

	req, err := http.NewRequest(http.MethodDelete, server.URL+"/api/tracker/nope", nil)
	if err != nil {
		t.Fatalf("build delete: %v", err)
	}
	del, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	del.Body.Close()
	if del.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", del.StatusCode)
	}
}

func getJSON(t *testing.T, server *httptest.Server, path string, out any) {
	t.Helper()
	res, err := http.Get(server.URL + path)
	if err != nil {
		t.Fatalf("get %s: %v", path, err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("get %s: status %d", path, res.StatusCode)
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
}

func postJSON(t *testing.T, server *httptest.Server, path string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	res, err := http.Post(server.URL+path, "application/json", bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("post %s: %v", path, err)
	}
	return res
}
