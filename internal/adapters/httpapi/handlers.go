package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/example/parley/internal/ctxutil"
	"github.com/example/parley/internal/models"
	"github.com/example/parley/internal/ports/primary"
)

// refFromVars builds a participant reference from two route variables.
func refFromVars(vars map[string]string, roleKey, idKey string) (models.ParticipantRef, error) {
	role, err := models.ParseRole(vars[roleKey])
	if err != nil {
		return models.ParticipantRef{}, err
	}
	id, err := strconv.ParseInt(vars[idKey], 10, 64)
	if err != nil {
		return models.ParticipantRef{}, fmt.Errorf("%w: invalid participant id %q", models.ErrInvalidParticipant, vars[idKey])
	}
	ref := models.NewParticipantRef(id, role)
	return ref, ref.Validate()
}

// actor resolves the participant named by the route and records it in the
// request context. On failure the response has been written.
func (s *Server) actor(w http.ResponseWriter, r *http.Request) (models.ParticipantRef, *http.Request, bool) {
	ref, err := refFromVars(mux.Vars(r), "role", "id")
	if err != nil {
		s.writeError(w, r, err)
		return models.ParticipantRef{}, r, false
	}
	return ref, r.WithContext(ctxutil.WithActor(r.Context(), ref)), true
}

func messageIDFromVars(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["messageID"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid message id %q", raw)
	}
	return id, nil
}

// --- Handlers for /v1/participants ---

func (s *Server) registerParticipant(w http.ResponseWriter, r *http.Request) {
	var req primary.RegisterParticipantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid json")
		return
	}

	p, err := s.participants.RegisterParticipant(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) listParticipants(w http.ResponseWriter, r *http.Request) {
	var role models.Role
	if raw := r.URL.Query().Get("role"); raw != "" {
		parsed, err := models.ParseRole(raw)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		role = parsed
	}

	participants, err := s.participants.ListParticipants(r.Context(), role)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Participants []*primary.Participant `json:"participants"`
	}{Participants: participants})
}

func (s *Server) getParticipant(w http.ResponseWriter, r *http.Request) {
	ref, err := refFromVars(mux.Vars(r), "role", "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	p, err := s.participants.GetParticipant(r.Context(), ref)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) removeParticipant(w http.ResponseWriter, r *http.Request) {
	ref, err := refFromVars(mux.Vars(r), "role", "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.participants.RemoveParticipant(r.Context(), ref); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Handlers for /v1/participants/{role}/{id}/... ---

type sendMessageBody struct {
	Recipient struct {
		ID   int64  `json:"id"`
		Role string `json:"role"`
	} `json:"recipient"`
	Content string `json:"content"`
}

func (s *Server) sendMessage(w http.ResponseWriter, r *http.Request) {
	sender, r, ok := s.actor(w, r)
	if !ok {
		return
	}

	var body sendMessageBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		badRequest(w, "invalid json")
		return
	}
	role, err := models.ParseRole(body.Recipient.Role)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	msg, err := s.messages.SendMessage(r.Context(), primary.SendMessageRequest{
		Sender:    sender,
		Recipient: models.NewParticipantRef(body.Recipient.ID, role),
		Content:   body.Content,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.metrics.messagesSent.Inc()
	writeJSON(w, http.StatusCreated, msg)
}

func (s *Server) listMessages(w http.ResponseWriter, r *http.Request) {
	participant, r, ok := s.actor(w, r)
	if !ok {
		return
	}

	unreadOnly := false
	if raw := r.URL.Query().Get("unread_only"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			badRequest(w, "unread_only must be a boolean")
			return
		}
		unreadOnly = parsed
	}

	messages, err := s.messages.ListMessages(r.Context(), participant, unreadOnly)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Messages []*primary.Message `json:"messages"`
	}{Messages: messages})
}

func (s *Server) getMessage(w http.ResponseWriter, r *http.Request) {
	requester, r, ok := s.actor(w, r)
	if !ok {
		return
	}
	id, err := messageIDFromVars(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	msg, err := s.messages.GetMessage(r.Context(), id, requester)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

func (s *Server) markRead(w http.ResponseWriter, r *http.Request) {
	requester, r, ok := s.actor(w, r)
	if !ok {
		return
	}
	id, err := messageIDFromVars(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	if err := s.messages.MarkRead(r.Context(), id, requester); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listThreads(w http.ResponseWriter, r *http.Request) {
	participant, r, ok := s.actor(w, r)
	if !ok {
		return
	}

	threads, err := s.messages.ListThreads(r.Context(), participant)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Threads []*primary.Thread `json:"threads"`
	}{Threads: threads})
}

func (s *Server) getConversation(w http.ResponseWriter, r *http.Request) {
	requester, r, ok := s.actor(w, r)
	if !ok {
		return
	}
	other, err := refFromVars(mux.Vars(r), "otherRole", "otherID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	conv, err := s.messages.GetConversation(r.Context(), requester, other)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, conv)
}

func (s *Server) unreadCount(w http.ResponseWriter, r *http.Request) {
	participant, r, ok := s.actor(w, r)
	if !ok {
		return
	}

	count, err := s.messages.GetUnreadCount(r.Context(), participant)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		UnreadCount int `json:"unread_count"`
	}{UnreadCount: count})
}
