package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"music-eras-service/internal/app"
	"music-eras-service/internal/metrics"
	"music-eras-service/internal/random"
	"music-eras-service/internal/schedule"
)

const writeWait = 10 * time.Second

// Options tunes the per-connection event loop.
type Options struct {
	FrameInterval time.Duration
	NoteInterval  time.Duration
	NewRandom     func() random.Source
}

func (o Options) withDefaults() Options {
	if o.FrameInterval <= 0 {
		o.FrameInterval = schedule.DefaultFrameInterval
	}
	if o.NoteInterval <= 0 {
		o.NoteInterval = 100 * time.Millisecond
	}
	if o.NewRandom == nil {
		o.NewRandom = func() random.Source { return random.NewFromTime() }
	}
	return o
}

type WSHandler struct {
	service  *app.PageService
	metrics  *metrics.Metrics
	log      *zap.Logger
	opts     Options
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.PageService, m *metrics.Metrics, log *zap.Logger, opts Options) *WSHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &WSHandler{
		service: service,
		metrics: m,
		log:     log.Named("ws"),
		opts:    opts.withDefaults(),
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

type selectPayload struct {
	QuestionID string `json:"questionId"`
	Value      string `json:"value"`
}

type choicePayload struct {
	ID string `json:"id"`
}

type navPayload struct {
	Section string `json:"section"`
}

type feedbackPayload struct {
	Emoji string `json:"emoji"`
	Text  string `json:"text"`
}

type sessionPayload struct {
	ID      string `json:"id"`
	Catalog string `json:"catalog"`
}

type rejectedPayload struct {
	QuestionID string `json:"questionId"`
}

// ServeWS upgrades HTTP requests to websockets and runs one page session
// per connection on its own event loop.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	catalogID := r.URL.Query().Get("catalog")

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	send := make(chan outboundMessage[any], 64)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	loopDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(msg); err != nil {
				h.log.Debug("ws write error", zap.Error(err))
				// Keep draining so the loop never blocks on a dead client.
				for range send {
				}
				return
			}
		}
	}()

	loop := schedule.NewLoop(h.opts.FrameInterval)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		defer close(loopDone)
		loop.Run(ctx)
	}()

	pres := newPresenter(send, closeSignals, h.metrics, h.opts.NoteInterval)
	page, err := h.service.Open(r.Context(), catalogID, app.PageDeps{
		Scheduler: loop,
		Random:    h.opts.NewRandom(),
		Presenter: pres,
		Player:    newRemotePlayer(pres),
	})
	if err != nil {
		send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
		cancel()
		<-loopDone
		close(send)
		<-writerDone
		return
	}
	h.metrics.PageOpened()
	log := h.log.With(zap.String("page", page.ID))

	send <- outboundMessage[any]{Type: "session", Payload: sessionPayload{ID: page.ID, Catalog: page.CatalogID}}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		h.service.Touch(page.ID)
		msg := inbound
		if !loop.Post(func() { h.dispatch(page, pres, msg) }) {
			break
		}
	}

	loop.Do(func() { h.service.Close(page.ID) })
	h.metrics.PageClosed()
	log.Debug("connection closed")

	cancel()
	<-loopDone
	close(closeSignals)
	close(send)
	<-writerDone
}

// dispatch applies one client message to the page. It runs on the loop.
func (h *WSHandler) dispatch(page *app.Page, pres *presenter, inbound inboundMessage) {
	switch inbound.Type {
	case "select":
		var payload selectPayload
		if !decode(pres, inbound, &payload) {
			return
		}
		if !page.Quiz.RecordSelection(payload.QuestionID, payload.Value) {
			pres.emit("selectionRejected", rejectedPayload{QuestionID: payload.QuestionID})
		}
	case "submit":
		page.Quiz.Submit()
	case "retry":
		page.Quiz.Retry()
		pres.emit("quizReset", struct{}{})
	case "choice":
		var payload choicePayload
		if !decode(pres, inbound, &payload) {
			return
		}
		page.Game.SubmitChoice(payload.ID)
	case "next":
		page.Game.Advance()
	case "playClip":
		if clip, ok := page.Game.CurrentClip(); ok {
			pres.emit("playClip", clipPayload{Audio: clip})
		}
	case "nav":
		var payload navPayload
		if !decode(pres, inbound, &payload) {
			return
		}
		if err := page.Nav.Toggle(payload.Section); err != nil {
			pres.emit("error", errorPayload{Message: err.Error()})
		}
	case "home":
		page.Nav.ShowHome()
	case "feedback":
		var payload feedbackPayload
		if !decode(pres, inbound, &payload) {
			return
		}
		if !page.Feedback.Send(payload.Emoji, payload.Text) {
			pres.emit("error", errorPayload{Message: "feedback not accepted"})
		}
	case "reset":
		page.Reset()
		pres.emit("quizReset", struct{}{})
	default:
		pres.emit("error", errorPayload{Message: "unsupported message type"})
	}
}

func decode(pres *presenter, inbound inboundMessage, v any) bool {
	if err := json.Unmarshal(inbound.Payload, v); err != nil {
		pres.emit("error", errorPayload{Message: "invalid " + inbound.Type + " payload"})
		return false
	}
	return true
}
