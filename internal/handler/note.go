package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/calloway/inkwell/internal/auth"
	"github.com/calloway/inkwell/internal/model"
	"github.com/calloway/inkwell/internal/store"
	"github.com/calloway/inkwell/internal/websocket"
)

const maxTitleLength = 200

type NoteHandler struct {
	noteStore     *store.NoteStore
	categoryStore *store.CategoryStore
	hub           *websocket.Hub
	logger        *slog.Logger
}

func NewNoteHandler(ns *store.NoteStore, cs *store.CategoryStore, hub *websocket.Hub, logger *slog.Logger) *NoteHandler {
	return &NoteHandler{noteStore: ns, categoryStore: cs, hub: hub, logger: logger}
}

func (h *NoteHandler) broadcast(msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(msg)
	}
}

type noteRequest struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	CategoryID *int64 `json:"category_id"`
}

// validate trims the title and checks the request against the note
// constraints. It returns an error message, or "" if the request is valid.
// Validation runs before any write is attempted.
func (h *NoteHandler) validate(uid int64, req *noteRequest) string {
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return "title is required"
	}
	if utf8.RuneCountInString(req.Title) > maxTitleLength {
		return "title must be 200 characters or fewer"
	}
	if req.Content == "" {
		return "content is required"
	}
	if req.CategoryID != nil {
		cat, err := h.categoryStore.GetByID(uid, *req.CategoryID)
		if err != nil {
			h.logger.Error("validate category", "error", err)
			return "internal error"
		}
		// A category owned by someone else is indistinguishable from one
		// that does not exist.
		if cat == nil {
			return "unknown category"
		}
	}
	return ""
}

func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid := auth.UserID(r.Context())

	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	if msg := h.validate(uid, &req); msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	note, err := h.noteStore.Create(uid, req.Title, req.Content, req.CategoryID)
	if err != nil {
		h.logger.Error("create note", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create note"})
		return
	}

	h.broadcast(websocket.NewMessage("note", "created", note.ID))

	writeJSON(w, http.StatusCreated, map[string]any{"note": note})
}

func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	uid := auth.UserID(r.Context())

	var categoryID *int64
	if v := r.URL.Query().Get("category"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid category filter"})
			return
		}
		categoryID = &id
	}

	notes, err := h.noteStore.List(uid, categoryID)
	if err != nil {
		h.logger.Error("list notes", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list notes"})
		return
	}
	if notes == nil {
		notes = []model.Note{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"notes": notes})
}

func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	uid := auth.UserID(r.Context())

	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	note, err := h.noteStore.GetByID(uid, id)
	if err != nil {
		h.logger.Error("get note", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get note"})
		return
	}
	if note == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "note not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"note": note})
}

func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid := auth.UserID(r.Context())

	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	if msg := h.validate(uid, &req); msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	note, err := h.noteStore.Update(uid, id, req.Title, req.Content, req.CategoryID)
	if err != nil {
		h.logger.Error("update note", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update note"})
		return
	}
	if note == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "note not found"})
		return
	}

	h.broadcast(websocket.NewMessage("note", "updated", id))

	writeJSON(w, http.StatusOK, map[string]any{"note": note})
}

func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid := auth.UserID(r.Context())

	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	deleted, err := h.noteStore.Delete(uid, id)
	if err != nil {
		h.logger.Error("delete note", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete note"})
		return
	}
	if !deleted {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "note not found"})
		return
	}

	h.broadcast(websocket.NewMessage("note", "deleted", id))

	writeJSON(w, http.StatusOK, map[string]string{"message": "Note deleted successfully"})
}

func parseIDParam(r *http.Request) (int64, error) {
	idStr := r.PathValue("id")
	return strconv.ParseInt(idStr, 10, 64)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
