package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/udisondev/arcana/internal/data"
	"github.com/udisondev/arcana/internal/game/combat"
	"github.com/udisondev/arcana/internal/session"
)

type handlers struct {
	sessions Sessions
}

func (h *handlers) handleGetSkills(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, toCatalogResponse(h.sessions.Catalog()))
}

func (h *handlers) handleListPlayers(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"players": h.sessions.Players()})
}

func (h *handlers) handleJoin(w http.ResponseWriter, r *http.Request) {
	id, ok := playerID(w, r)
	if !ok {
		return
	}
	mana, err := h.sessions.Join(r.Context(), id)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mana)
}

func (h *handlers) handleLeave(w http.ResponseWriter, r *http.Request) {
	id, ok := playerID(w, r)
	if !ok {
		return
	}
	if err := h.sessions.Leave(r.Context(), id); err != nil {
		writeSessionError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) handleCast(w http.ResponseWriter, r *http.Request) {
	id, ok := playerID(w, r)
	if !ok {
		return
	}
	var body castRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if body.Skill == "" {
		writeError(w, "skill is required", http.StatusBadRequest)
		return
	}

	res, err := h.sessions.Cast(combat.CastRequest{
		PlayerID:  id,
		SkillID:   data.SkillID(body.Skill),
		Origin:    body.Origin,
		Direction: body.Direction,
	})
	h.writeCast(w, id, res, err)
}

func (h *handlers) handleCombination(w http.ResponseWriter, r *http.Request) {
	id, ok := playerID(w, r)
	if !ok {
		return
	}
	// The body is optional: origin and direction default to zero.
	var body castRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	res, err := h.sessions.CastCombination(combat.CastRequest{
		PlayerID:  id,
		Origin:    body.Origin,
		Direction: body.Direction,
	})
	h.writeCast(w, id, res, err)
}

func (h *handlers) writeCast(w http.ResponseWriter, id int64, res combat.CastResult, err error) {
	if err != nil {
		writeSessionError(w, err)
		return
	}
	mana, err := h.sessions.Mana(id)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCastResponse(res, mana))
}

func (h *handlers) handleRestore(w http.ResponseWriter, r *http.Request) {
	id, ok := playerID(w, r)
	if !ok {
		return
	}
	var body struct {
		Amount int `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Amount < 0 {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	mana, err := h.sessions.RestoreMana(id, body.Amount)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mana)
}

func (h *handlers) handleLevelUp(w http.ResponseWriter, r *http.Request) {
	id, ok := playerID(w, r)
	if !ok {
		return
	}
	var body struct {
		Level int `json:"level"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Level < 0 {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	skill := data.SkillID(chi.URLParam(r, "skill"))
	if err := h.sessions.LevelUp(r.Context(), id, skill, body.Level); err != nil {
		writeSessionError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) handleGetMana(w http.ResponseWriter, r *http.Request) {
	id, ok := playerID(w, r)
	if !ok {
		return
	}
	mana, err := h.sessions.Mana(id)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mana)
}

func (h *handlers) handleGetCooldowns(w http.ResponseWriter, r *http.Request) {
	id, ok := playerID(w, r)
	if !ok {
		return
	}
	cds, err := h.sessions.Cooldowns(id)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	out := make(map[data.SkillID]int64, len(cds))
	for skill, d := range cds {
		out[skill] = d.Milliseconds()
	}
	writeJSON(w, http.StatusOK, map[string]any{"remaining_ms": out})
}

func (h *handlers) handleGetLog(w http.ResponseWriter, r *http.Request) {
	id, ok := playerID(w, r)
	if !ok {
		return
	}
	entries, err := h.sessions.CombatLog(id)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func playerID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, "invalid player id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func writeSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrPlayerNotFound), errors.Is(err, session.ErrNotInSession):
		writeError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, session.ErrRateLimited):
		w.Header().Set("Retry-After", "1")
		writeError(w, err.Error(), http.StatusTooManyRequests)
	case errors.Is(err, session.ErrUnknownSkill):
		writeError(w, err.Error(), http.StatusBadRequest)
	default:
		slog.Error("request failed", "error", err)
		writeError(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("encoding response", "error", err)
	}
}

func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{"error": message})
}
