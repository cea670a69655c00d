package board

import (
	"log"
	"net/http"

	"github.com/louisbranch/gram/internal/core/gram"
	"github.com/louisbranch/gram/internal/core/gram/catalog"
	apperrors "github.com/louisbranch/gram/internal/platform/errors"
	"github.com/louisbranch/gram/internal/platform/httpx"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// gramResponse describes one grid for API clients.
type gramResponse struct {
	Size     int      `json:"size"`
	Encoded  string   `json:"encoded"`
	Rows     []string `json:"rows"`
	RowClues [][]int  `json:"row_clues"`
	ColClues [][]int  `json:"col_clues"`
}

type puzzleResponse struct {
	Name    string `json:"name"`
	Size    int    `json:"size"`
	Filled  int    `json:"filled"`
	Encoded string `json:"encoded"`
}

type puzzlesResponse struct {
	Puzzles []puzzleResponse `json:"puzzles"`
}

// errorResponse is the JSON body of every API failure. Message is localized
// for the request language.
type errorResponse struct {
	Code     string            `json:"code"`
	Message  string            `json:"message"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

func newGramResponse(g gram.Grid, encoded string) gramResponse {
	return gramResponse{
		Size:     g.Size(),
		Encoded:  encoded,
		Rows:     g.Lines(),
		RowClues: g.RowClues(),
		ColClues: g.ColClues(),
	}
}

// apiGram decodes ?g= and describes the grid with its clues.
func (h *handlers) apiGram(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "board.api.gram")
	defer span.End()
	r = r.WithContext(ctx)

	g, encoded, err := decodeCanonical(r.URL.Query().Get(paramGram))
	if err != nil {
		h.writeAPIError(w, r, span, err)
		return
	}
	span.SetAttributes(attribute.Int("gram.size", g.Size()))
	writeJSON(w, http.StatusOK, newGramResponse(g, encoded))
}

// apiPuzzles lists catalog puzzles using the same query as the puzzles page.
func (h *handlers) apiPuzzles(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "board.api.puzzles")
	defer span.End()
	r = r.WithContext(ctx)

	puzzles, err := h.listPuzzles(r.URL.Query())
	if err != nil {
		h.writeAPIError(w, r, span, err)
		return
	}
	span.SetAttributes(attribute.Int("gram.results", len(puzzles)))
	writeJSON(w, http.StatusOK, newPuzzlesResponse(puzzles))
}

func newPuzzlesResponse(puzzles []catalog.Puzzle) puzzlesResponse {
	resp := puzzlesResponse{Puzzles: make([]puzzleResponse, 0, len(puzzles))}
	for _, p := range puzzles {
		resp.Puzzles = append(resp.Puzzles, puzzleResponse{
			Name:    p.Name,
			Size:    p.Size(),
			Filled:  p.Filled(),
			Encoded: p.Encoded,
		})
	}
	return resp
}

func (h *handlers) writeAPIError(w http.ResponseWriter, r *http.Request, span trace.Span, err error) {
	appErr := apperrors.Classify(err)
	recordError(span, appErr)
	status := appErr.Code.HTTPStatus()
	if status >= http.StatusInternalServerError {
		log.Printf("board: %s %s: %v", r.Method, r.URL.Path, err)
	}
	loc := resolveLocalizer(w, r)
	writeJSON(w, status, errorResponse{
		Code:     string(appErr.Code),
		Message:  loc.Error(appErr),
		Metadata: appErr.Metadata,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if err := httpx.WriteJSON(w, status, payload); err != nil {
		log.Printf("board: write json: %v", err)
	}
}
