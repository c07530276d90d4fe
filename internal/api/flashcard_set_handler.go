package api

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/ankify/ankify-api/internal/api/shared"
	"github.com/ankify/ankify-api/internal/export"
	"github.com/ankify/ankify-api/internal/platform/logger"
)

// CreateSet handles POST /api/flashcard-sets requests.
func (h *FlashcardHandler) CreateSet(w http.ResponseWriter, r *http.Request) {
	var req CreateSetRequest
	if err := shared.DecodeAndValidate(r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	set, err := h.flashcardService.SaveSet(r.Context(), req.Title, req.Description, toDomainFlashcards(req.Flashcards))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.Header().Set("Location", "/api/flashcard-sets/"+set.ID.String())
	shared.RespondWithJSON(w, r, http.StatusCreated, newFlashcardSetResponse(set))
}

// ListSets handles GET /api/flashcard-sets requests.
func (h *FlashcardHandler) ListSets(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := getPagination(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	summaries, err := h.flashcardService.ListSets(r.Context(), limit, offset)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ListSetsResponse{
		Sets:   newSummaryResponses(summaries),
		Limit:  limit,
		Offset: offset,
	})
}

// GetSet handles GET /api/flashcard-sets/{id} requests.
func (h *FlashcardHandler) GetSet(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	set, err := h.flashcardService.GetSet(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newFlashcardSetResponse(set))
}

// DeleteSet handles DELETE /api/flashcard-sets/{id} requests.
func (h *FlashcardHandler) DeleteSet(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.flashcardService.DeleteSet(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ExportSet handles GET /api/flashcard-sets/{id}/export requests.
func (h *FlashcardHandler) ExportSet(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	format, err := getExportFormat(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var buf bytes.Buffer
	set, err := h.flashcardService.ExportSet(r.Context(), id, format, &buf)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("exporting flashcard set",
		slog.String("set_id", id.String()),
		slog.String("format", string(format)),
		slog.Int("card_count", len(set.Cards)))

	fileName := export.FileName(format, safeFileBase(set.Title))
	shared.RespondWithAttachment(w, export.ContentType(format), fileName, buf.Bytes())
}
