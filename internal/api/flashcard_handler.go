package api

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/ankify/ankify-api/internal/api/shared"
	"github.com/ankify/ankify-api/internal/domain"
	"github.com/ankify/ankify-api/internal/export"
	"github.com/ankify/ankify-api/internal/platform/logger"
	"github.com/ankify/ankify-api/internal/service"
)

// FlashcardHandler handles flashcard and flashcard set HTTP requests.
type FlashcardHandler struct {
	flashcardService service.FlashcardService
	logger           *slog.Logger
}

// NewFlashcardHandler creates a new FlashcardHandler.
func NewFlashcardHandler(flashcardService service.FlashcardService, logger *slog.Logger) *FlashcardHandler {
	if flashcardService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("flashcard service cannot be nil for FlashcardHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &FlashcardHandler{
		flashcardService: flashcardService,
		logger:           logger.With(slog.String("component", "flashcard_handler")),
	}
}

// Parse handles POST /api/flashcards/parse requests.
func (h *FlashcardHandler) Parse(w http.ResponseWriter, r *http.Request) {
	var req ParseRequest
	if err := shared.DecodeAndValidate(r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	cards, err := h.flashcardService.Parse(r.Context(), req.Text)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newFlashcardsResponse(cards))
}

// Generate handles POST /api/flashcards/generate requests.
func (h *FlashcardHandler) Generate(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req GenerateRequest
	if err := shared.DecodeAndValidate(r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	source := domain.Source{Type: domain.SourceType(req.Type), Value: req.Value}
	log.Debug("generating flashcards", slog.String("source_type", req.Type))

	cards, err := h.flashcardService.Generate(r.Context(), source)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newFlashcardsResponse(cards))
}

// ExportCards handles POST /api/flashcards/export requests. The cards in
// the body are serialized without being saved.
func (h *FlashcardHandler) ExportCards(w http.ResponseWriter, r *http.Request) {
	format, err := getExportFormat(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req ExportCardsRequest
	if err := shared.DecodeAndValidate(r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var buf bytes.Buffer
	if err := h.flashcardService.ExportCards(r.Context(), toDomainFlashcards(req.Flashcards), format, &buf); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithAttachment(w, export.ContentType(format), export.FileName(format, ""), buf.Bytes())
}
