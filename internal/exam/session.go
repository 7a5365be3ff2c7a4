// Package exam owns the timed-attempt lifecycle: one session at a time,
// one live timer, answer capture, grading, and the history hand-off.
package exam

import (
	"context"
	"sync"
	"time"

	"github.com/Pottaprashanth/Interview-preparation-hub/internal/catalog"
	"github.com/Pottaprashanth/Interview-preparation-hub/internal/domain"
	"github.com/Pottaprashanth/Interview-preparation-hub/internal/history"
)

// Presenter receives the display-facing callbacks of an exam session. Calls
// are synchronous and may arrive from the timer goroutine; implementations
// must not call back into the Manager.
type Presenter interface {
	OnSessionStart(items []domain.ExamItem)
	OnTick(seconds int)
	OnAnswerProgress(answered, total int)
	OnSubmit(result domain.ExamResult)
}

// NopPresenter discards every callback.
type NopPresenter struct{}

func (NopPresenter) OnSessionStart([]domain.ExamItem) {}
func (NopPresenter) OnTick(int)                       {}
func (NopPresenter) OnAnswerProgress(int, int)        {}
func (NopPresenter) OnSubmit(domain.ExamResult)       {}

type sessionState int

const (
	stateIdle sessionState = iota
	stateActive
	stateSubmitted
)

// session holds one attempt's state. items never change after creation; only
// the answers map and seconds counter do.
type session struct {
	company string
	items   []domain.ExamItem
	answers map[int]int
	seconds int
}

// Manager runs exam sessions against the catalog and commits results to the
// ledger. It owns at most one session and at most one live timer; starting a
// new session always cancels the previous timer first.
type Manager struct {
	catalog   *catalog.Repository
	ledger    *history.Ledger
	presenter Presenter
	tickEvery time.Duration
	clock     func() time.Time

	mu      sync.Mutex
	state   sessionState
	current *session
	timer   *ticker
}

func NewManager(cat *catalog.Repository, ledger *history.Ledger, presenter Presenter) *Manager {
	return NewManagerWithClock(cat, ledger, presenter, time.Second, time.Now)
}

// NewManagerWithClock is test-only: it shrinks the tick period and pins
// timestamps for deterministic runs.
func NewManagerWithClock(cat *catalog.Repository, ledger *history.Ledger, presenter Presenter, tickEvery time.Duration, now func() time.Time) *Manager {
	if presenter == nil {
		presenter = NopPresenter{}
	}
	return &Manager{
		catalog:   cat,
		ledger:    ledger,
		presenter: presenter,
		tickEvery: tickEvery,
		clock:     now,
	}
}

// Start begins a timed attempt for a company. A company with zero MCQs fails
// with ErrNoQuestions and leaves any prior session untouched, timer included.
// Otherwise the previous timer (if any) is stopped before the fresh session
// goes Active with items numbered 1..N, empty answers, and a zeroed clock.
func (m *Manager) Start(ctx context.Context, companyID string) ([]domain.ExamItem, error) {
	qs, _, err := m.catalog.QuestionsFor(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if len(qs.Mcq) == 0 {
		return nil, domain.ErrNoQuestions
	}

	items := make([]domain.ExamItem, len(qs.Mcq))
	for i, q := range qs.Mcq {
		items[i] = domain.ExamItem{
			ID:       i + 1,
			Question: q.Question,
			Choices:  append([]string(nil), q.Choices...),
			Answer:   q.Answer,
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	sess := &session{
		company: companyID,
		items:   items,
		answers: make(map[int]int),
	}
	m.current = sess
	m.state = stateActive
	m.timer = startTicker(m.tickEvery, func(t *ticker) { m.tick(t, sess) })

	m.presenter.OnSessionStart(items)
	// zero-state display update before the first tick elapses
	m.presenter.OnTick(0)
	return items, nil
}

// tick advances the bound session by one second. Ticks from a replaced or
// stopped timer are dropped.
func (m *Manager) tick(t *ticker, sess *session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.timer != t || m.state != stateActive || m.current != sess {
		return
	}
	sess.seconds++
	m.presenter.OnTick(sess.seconds)
}

// RecordAnswer captures a choice for one item, overwriting any prior choice
// (last write wins). The item must belong to the current session. The choice
// index is not range-checked; an out-of-range value simply scores as wrong.
func (m *Manager) RecordAnswer(itemID, choice int) (answered, total int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != stateActive || m.current == nil {
		return 0, 0, domain.ErrNoActiveSession
	}
	if itemID < 1 || itemID > len(m.current.items) {
		return len(m.current.answers), len(m.current.items), domain.ErrUnknownItem
	}
	m.current.answers[itemID] = choice
	answered = len(m.current.answers)
	total = len(m.current.items)
	m.presenter.OnAnswerProgress(answered, total)
	return answered, total, nil
}

// Submit grades the active session. The timer stops first, then the session
// transitions to Submitted and the result is committed to the ledger with
// the company name denormalized at this moment.
func (m *Manager) Submit(ctx context.Context) (domain.ExamResult, error) {
	m.mu.Lock()
	if m.state != stateActive || m.current == nil {
		m.mu.Unlock()
		return domain.ExamResult{}, domain.ErrNoActiveSession
	}
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	sess := m.current
	correct, total := Score(sess.items, sess.answers)
	result := domain.ExamResult{Correct: correct, Total: total, Seconds: sess.seconds}
	m.state = stateSubmitted
	m.presenter.OnSubmit(result)
	m.mu.Unlock()

	companyName := "Company"
	if c, ok, err := m.catalog.Lookup(ctx, sess.company); err == nil && ok {
		companyName = c.Name
	}
	err := m.ledger.Append(ctx, domain.HistoryRecord{
		Type:        domain.AttemptExam,
		Company:     sess.company,
		CompanyName: companyName,
		Score:       correct,
		Total:       total,
		Seconds:     result.Seconds,
		Date:        m.clock(),
	})
	return result, err
}

// Cancel stops the timer and discards an active session. Safe to call in any
// state; this is the disconnect path.
func (m *Manager) Cancel() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	if m.state == stateActive {
		m.state = stateIdle
		m.current = nil
	}
}

// Elapsed reports the current session's seconds counter, 0 when idle.
func (m *Manager) Elapsed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return 0
	}
	return m.current.seconds
}

// Active reports whether a session is accepting answers.
func (m *Manager) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == stateActive
}
