package api

import (
	"net/http"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ankify/ankify-api/internal/domain"
	"github.com/ankify/ankify-api/internal/export"
	"github.com/ankify/ankify-api/internal/service"
)

// getPathUUID extracts and parses a UUID from the URL path parameters.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}

	return id, nil
}

// getQueryInt reads a non-negative integer query parameter, returning def
// when it is absent.
func getQueryInt(r *http.Request, name string, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, domain.NewValidationError(name, "must be a non-negative integer", domain.ErrValidation)
	}
	return n, nil
}

// getPagination reads limit and offset, clamping limit the same way the
// service does so responses echo the values actually applied.
func getPagination(r *http.Request) (limit, offset int, err error) {
	if limit, err = getQueryInt(r, "limit", service.DefaultListLimit); err != nil {
		return 0, 0, err
	}
	if offset, err = getQueryInt(r, "offset", 0); err != nil {
		return 0, 0, err
	}
	if limit == 0 {
		limit = service.DefaultListLimit
	}
	if limit > service.MaxListLimit {
		limit = service.MaxListLimit
	}
	return limit, offset, nil
}

// getExportFormat reads the format query parameter, defaulting to text.
func getExportFormat(r *http.Request) (export.Format, error) {
	raw := r.URL.Query().Get("format")
	if strings.TrimSpace(raw) == "" {
		return export.FormatText, nil
	}
	return export.ParseFormat(raw)
}

// safeFileBase turns a set title into a file name base usable in a
// Content-Disposition header. Only ASCII letters, digits, spaces, dashes and
// underscores survive.
func safeFileBase(title string) string {
	base := strings.Map(func(r rune) rune {
		switch {
		case r > unicode.MaxASCII:
			return '_'
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-', r == '_', r == ' ':
			return r
		default:
			return '_'
		}
	}, strings.TrimSpace(title))
	return strings.TrimSpace(base)
}
