package http

import (
	"encoding/json"
	"net/http"

	"aitekka-quiz/internal/app"
	"aitekka-quiz/internal/domain"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

type WSHandler struct {
	service     *app.QuizService
	defaultBank string
	log         logrus.FieldLogger
	upgrader    websocket.Upgrader
}

func NewWSHandler(service *app.QuizService, defaultBank string, log logrus.FieldLogger) *WSHandler {
	return &WSHandler{
		service:     service,
		defaultBank: defaultBank,
		log:         log,
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

type answerPayload struct {
	QuestionIndex *int   `json:"questionIndex"`
	OptionID      string `json:"optionId"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

func errorMessage(msg string) outboundMessage[any] {
	return outboundMessage[any]{Type: "error", Payload: errorPayload{Message: msg}}
}

// ServeWS upgrades the request and runs one quiz session for the lifetime of
// the connection. The session is closed, and its pending reveal cancelled,
// when the connection goes away.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	bankID := r.URL.Query().Get("bankId")
	if bankID == "" {
		bankID = h.defaultBank
	}
	if bankID == "" {
		http.Error(w, "missing bankId", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Warn("ws upgrade failed")
		return
	}
	defer conn.Close()

	session, err := h.service.Open(r.Context(), bankID)
	if err != nil {
		_ = conn.WriteJSON(errorMessage(err.Error()))
		return
	}
	defer h.service.Close(r.Context(), session.ID())

	log := h.log.WithField("session_id", session.ID())
	updates, cancel := session.Subscribe()
	defer cancel()

	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	updatesDone := make(chan struct{})

	// Single writer: gorilla connections do not support concurrent writes.
	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.WithError(err).Debug("ws write error")
				// Unblock the reader and keep draining so producers never block.
				_ = conn.Close()
				for range send {
				}
				return
			}
		}
	}()

	go func() {
		defer close(updatesDone)
		for {
			select {
			case view, ok := <-updates:
				if !ok {
					return
				}
				select {
				case send <- outboundMessage[any]{Type: "view", Payload: view}:
				case <-closeSignals:
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		h.service.Touch(r.Context(), session.ID())
		if msg, ok := h.dispatch(session, inbound); ok {
			send <- msg
		}
	}

	close(closeSignals)
	<-updatesDone
	close(send)
	<-writerDone
}

// dispatch applies one inbound event to the session. Successful transitions
// are reported through the view subscription; only answer outcomes and
// errors produce a direct reply.
func (h *WSHandler) dispatch(session *app.Session, inbound inboundMessage) (outboundMessage[any], bool) {
	var err error
	switch inbound.Type {
	case "start":
		_, err = session.Start()
	case "restart":
		_, err = session.Restart()
	case "reset":
		_, err = session.Reset()
	case "skip":
		_, err = session.Skip()
	case "answer":
		var payload answerPayload
		if jsonErr := json.Unmarshal(inbound.Payload, &payload); jsonErr != nil || payload.QuestionIndex == nil {
			return errorMessage("invalid answer payload"), true
		}
		var outcome domain.AnswerOutcome
		outcome, err = session.Answer(*payload.QuestionIndex, payload.OptionID)
		if err == nil {
			return outboundMessage[any]{Type: "answerResult", Payload: outcome}, true
		}
	default:
		return errorMessage("unsupported message type"), true
	}
	if err != nil {
		return errorMessage(err.Error()), true
	}
	return outboundMessage[any]{}, false
}
