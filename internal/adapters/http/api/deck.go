package api

import (
	"errors"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/okian/deckgen/internal/adapters/render/workbook"
	service "github.com/okian/deckgen/internal/app"
	"github.com/okian/deckgen/internal/domain/layout"
)

// Content types of the served files.
const (
	contentTypePPTX = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Outline is the JSON summary of the served deck.
type Outline struct {
	Title  string         `json:"title"`
	Output string         `json:"output"`
	Counts layout.Counts  `json:"counts"`
	Slides []SlideOutline `json:"slides"`
}

// SlideOutline lists the text of one slide.
type SlideOutline struct {
	Name  string   `json:"name"`
	Texts []string `json:"texts"`
}

// DeckHandler serves the configured deck.
type DeckHandler struct {
	builder Builder
	deck    string
}

// NewDeckHandler creates a handler for the deck at path.
func NewDeckHandler(b Builder, path string) *DeckHandler {
	return &DeckHandler{builder: b, deck: path}
}

func (h *DeckHandler) request() service.Request {
	return service.Request{Deck: h.deck}
}

// allow rejects anything but GET and HEAD.
func (h *DeckHandler) allow(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", ErrMethodNotAllowed)
		return false
	}
	if h.builder == nil {
		writeError(w, http.StatusServiceUnavailable, "unavailable", ErrNoBuilder)
		return false
	}
	return true
}

// HandlePresentation handles GET /deck.pptx.
func (h *DeckHandler) HandlePresentation(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r) {
		return
	}
	b, p, err := h.builder.Render(r.Context(), h.request())
	if err != nil {
		writeBuildError(w, err)
		return
	}
	writeFile(w, r, contentTypePPTX, filepath.Base(p.Output), b)
}

// HandleWorkbook handles GET /deck/data.xlsx.
func (h *DeckHandler) HandleWorkbook(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r) {
		return
	}
	b, p, err := h.builder.Workbook(r.Context(), h.request())
	if errors.Is(err, workbook.ErrNoCharts) {
		writeError(w, http.StatusNotFound, "no_charts", err)
		return
	}
	if err != nil {
		writeBuildError(w, err)
		return
	}
	name := strings.TrimSuffix(filepath.Base(p.Output), filepath.Ext(p.Output)) + ".data.xlsx"
	writeFile(w, r, contentTypeXLSX, name, b)
}

// HandleOutline handles GET /deck/outline.
func (h *DeckHandler) HandleOutline(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r) {
		return
	}
	p, err := h.builder.Validate(r.Context(), h.request())
	if err != nil {
		writeBuildError(w, err)
		return
	}
	texts := p.Texts()
	out := Outline{
		Title:  p.Title,
		Output: p.Output,
		Counts: p.Counts(),
		Slides: make([]SlideOutline, len(p.Slides)),
	}
	for i, s := range p.Slides {
		out.Slides[i] = SlideOutline{Name: s.Name, Texts: texts[i]}
	}
	writeJSON(w, http.StatusOK, out)
}

func writeFile(w http.ResponseWriter, r *http.Request, contentType, name string, b []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(b)))
	w.Header().Set("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(name))
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(b)
}
