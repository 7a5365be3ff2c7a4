package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/Pottaprashanth/Interview-preparation-hub/internal/catalog"
	"github.com/Pottaprashanth/Interview-preparation-hub/internal/domain"
	"github.com/Pottaprashanth/Interview-preparation-hub/internal/exam"
	"github.com/Pottaprashanth/Interview-preparation-hub/internal/history"
	"github.com/Pottaprashanth/Interview-preparation-hub/internal/progress"
	"github.com/gorilla/websocket"
)

// WSHandler runs exam sessions over a websocket. Each connection owns one
// exam.Manager; the connection itself is the session's presenter, so timer
// ticks and progress updates stream to the client as they happen.
type WSHandler struct {
	catalog   *catalog.Repository
	ledger    *history.Ledger
	progress  *progress.Service
	tickEvery time.Duration
	upgrader  websocket.Upgrader
}

func NewWSHandler(cat *catalog.Repository, ledger *history.Ledger, prog *progress.Service) *WSHandler {
	return NewWSHandlerWithTick(cat, ledger, prog, time.Second)
}

// NewWSHandlerWithTick is test-only for shrinking the timer period.
func NewWSHandlerWithTick(cat *catalog.Repository, ledger *history.Ledger, prog *progress.Service, tickEvery time.Duration) *WSHandler {
	return &WSHandler{
		catalog:   cat,
		ledger:    ledger,
		progress:  prog,
		tickEvery: tickEvery,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type startPayload struct {
	CompanyID string `json:"companyId"`
}

type answerPayload struct {
	ItemID int `json:"itemId"`
	Choice int `json:"choice"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// wireItem is an ExamItem without the correct index; answers stay server-side.
type wireItem struct {
	ID       int      `json:"id"`
	Question string   `json:"question"`
	Choices  []string `json:"choices"`
}

type sessionPayload struct {
	CompanyID string     `json:"companyId"`
	Items     []wireItem `json:"items"`
}

type tickPayload struct {
	Seconds int    `json:"seconds"`
	Display string `json:"display"`
}

type progressPayload struct {
	Answered int `json:"answered"`
	Total    int `json:"total"`
}

// wsPresenter forwards session callbacks into the connection's send queue.
// Pushes never block: ticks arrive from the timer goroutine while the manager
// lock is held, so a slow client drops stale frames instead of stalling the
// clock.
type wsPresenter struct {
	send      chan outboundMessage[any]
	companyID *string
}

func (p *wsPresenter) OnSessionStart(items []domain.ExamItem) {
	wire := make([]wireItem, len(items))
	for i, item := range items {
		wire[i] = wireItem{ID: item.ID, Question: item.Question, Choices: item.Choices}
	}
	p.push(outboundMessage[any]{Type: "session", Payload: sessionPayload{CompanyID: *p.companyID, Items: wire}})
}

func (p *wsPresenter) OnTick(seconds int) {
	p.push(outboundMessage[any]{Type: "tick", Payload: tickPayload{Seconds: seconds, Display: exam.FormatClock(seconds)}})
}

func (p *wsPresenter) OnAnswerProgress(answered, total int) {
	p.push(outboundMessage[any]{Type: "progress", Payload: progressPayload{Answered: answered, Total: total}})
}

func (p *wsPresenter) OnSubmit(result domain.ExamResult) {
	p.push(outboundMessage[any]{Type: "result", Payload: result})
}

func (p *wsPresenter) push(msg outboundMessage[any]) {
	select {
	case p.send <- msg:
	default:
		// drop the oldest queued frame so the freshest state wins
		select {
		case <-p.send:
		default:
		}
		select {
		case p.send <- msg:
		default:
		}
	}
}

// ServeWS upgrades the request and drives one exam session per connection.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	send := make(chan outboundMessage[any], 32)
	companyID := ""
	presenter := &wsPresenter{send: send, companyID: &companyID}
	manager := exam.NewManagerWithClock(h.catalog, h.ledger, presenter, h.tickEvery, time.Now)
	defer manager.Cancel()

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "start":
			var payload startPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				presenter.push(errMsg("invalid start payload"))
				continue
			}
			companyID = payload.CompanyID
			if _, err := manager.Start(r.Context(), payload.CompanyID); err != nil {
				presenter.push(errMsg(userMessage(err)))
			}
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				presenter.push(errMsg("invalid answer payload"))
				continue
			}
			if _, _, err := manager.RecordAnswer(payload.ItemID, payload.Choice); err != nil {
				presenter.push(errMsg(userMessage(err)))
			}
		case "submit":
			if _, err := manager.Submit(r.Context()); err != nil {
				presenter.push(errMsg(userMessage(err)))
				continue
			}
			h.awardFinish(r)
		default:
			presenter.push(errMsg("unsupported message type"))
		}
	}

	// stop the timer before closing the queue so no tick pushes after close
	manager.Cancel()
	close(send)
	<-writerDone
}

// awardFinish credits the gamification side of a submitted exam.
func (h *WSHandler) awardFinish(r *http.Request) {
	if h.progress == nil {
		return
	}
	ctx := r.Context()
	if _, err := h.progress.AwardBadge(ctx, progress.BadgeFinisher); err != nil {
		log.Printf("award badge: %v", err)
	}
	if err := h.progress.AddPoints(ctx, progress.DefaultUser, 10); err != nil {
		log.Printf("add points: %v", err)
	}
}

func errMsg(message string) outboundMessage[any] {
	return outboundMessage[any]{Type: "error", Payload: errorPayload{Message: message}}
}

// userMessage maps domain errors to the wording the page shows.
func userMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrNoQuestions):
		return "No exam questions yet for this company."
	case errors.Is(err, domain.ErrNoActiveSession):
		return "No exam in progress."
	case errors.Is(err, domain.ErrUnknownItem):
		return "Unknown question."
	case errors.Is(err, domain.ErrDataUnavailable):
		return "Question data is unavailable."
	default:
		return err.Error()
	}
}
