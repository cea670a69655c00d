package board

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/louisbranch/gram/internal/core/gram"
	"github.com/louisbranch/gram/internal/core/gram/catalog"
	apperrors "github.com/louisbranch/gram/internal/platform/errors"
	"github.com/louisbranch/gram/internal/platform/httpx"
	"github.com/louisbranch/gram/internal/platform/otel"
	"github.com/louisbranch/gram/internal/platform/pagination"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Query and form parameter names.
const (
	paramGram     = "g"
	paramX        = "x"
	paramY        = "y"
	paramSize     = "size"
	paramFilter   = "filter"
	paramOrderBy  = "order_by"
	paramPageSize = "page_size"
)

var (
	puzzlePageSize = pagination.PageSizeConfig{Default: 20, Max: 50}
	puzzleOrderBy  = pagination.OrderByConfig{Default: catalog.FieldName, Allowed: catalog.OrderFields}
)

type handlers struct {
	defaultSize  int
	// blankGrid is built once by NewHandler, which rejects sizes it cannot encode.
	blankGrid    gram.Grid
	blankEncoded string
	catalog      *catalog.Catalog
	tracer       trace.Tracer
}

// boardURL returns the board page link for an encoded grid.
func boardURL(encoded string) string {
	return "/?" + url.Values{paramGram: {encoded}}.Encode()
}

func (h *handlers) blank() (gram.Grid, string) {
	return h.blankGrid, h.blankEncoded
}

// view renders the board for ?g=. A missing grid starts blank; a malformed
// one starts blank with a notice explaining why.
func (h *handlers) view(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "board.view")
	defer span.End()
	loc := resolveLocalizer(w, r)

	v := boardView{NewSize: h.defaultSize}
	raw := strings.TrimSpace(r.URL.Query().Get(paramGram))
	if raw == "" {
		v.Grid, v.Encoded = h.blank()
	} else {
		g, encoded, err := decodeCanonical(raw)
		if err != nil {
			appErr := apperrors.Classify(err)
			recordError(span, appErr)
			v.Grid, v.Encoded = h.blank()
			v.Notice = loc.T("board.notice.invalid_link", loc.Error(appErr))
		} else {
			v.Grid, v.Encoded = g, encoded
		}
	}
	span.SetAttributes(attribute.Int("gram.size", v.Grid.Size()), attribute.Int("gram.filled", v.Grid.Filled()))

	page := layout(loc, layoutFor(r, loc.T("board.title")), boardPage(loc, v))
	templ.Handler(page).ServeHTTP(w, r.WithContext(ctx))
}

// toggle flips one cell and redirects to the new board link.
func (h *handlers) toggle(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "board.toggle")
	defer span.End()
	r = r.WithContext(ctx)
	loc := resolveLocalizer(w, r)

	if err := r.ParseForm(); err != nil {
		h.writeErrorPage(w, r, loc, span, apperrors.InvalidArgument("form", err))
		return
	}
	x, err := parseCoordinate(r.PostForm.Get(paramX))
	if err != nil {
		h.writeErrorPage(w, r, loc, span, apperrors.InvalidArgument(paramX, err))
		return
	}
	y, err := parseCoordinate(r.PostForm.Get(paramY))
	if err != nil {
		h.writeErrorPage(w, r, loc, span, apperrors.InvalidArgument(paramY, err))
		return
	}
	span.SetAttributes(attribute.Int("gram.x", x), attribute.Int("gram.y", y))

	g, err := gram.Decode(r.PostForm.Get(paramGram))
	if err != nil {
		h.writeErrorPage(w, r, loc, span, err)
		return
	}
	next, err := g.ToggleCell(x, y)
	if err != nil {
		h.writeErrorPage(w, r, loc, span, err)
		return
	}
	encoded, err := next.Encode()
	if err != nil {
		h.writeErrorPage(w, r, loc, span, err)
		return
	}
	span.SetAttributes(attribute.Int("gram.size", next.Size()))
	httpx.SeeOther(w, r, boardURL(encoded))
}

// newBoard redirects to a blank board of the requested size.
func (h *handlers) newBoard(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "board.new")
	defer span.End()
	r = r.WithContext(ctx)
	loc := resolveLocalizer(w, r)

	size := h.defaultSize
	if raw := strings.TrimSpace(r.URL.Query().Get(paramSize)); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			h.writeErrorPage(w, r, loc, span, apperrors.InvalidArgument(paramSize, fmt.Errorf("size must be a whole number, got %q", raw)))
			return
		}
		if n > gram.MaxRunLength {
			h.writeErrorPage(w, r, loc, span, apperrors.InvalidArgument(paramSize, fmt.Errorf("size must be at most %d, got %d", gram.MaxRunLength, n)))
			return
		}
		size = n
	}
	span.SetAttributes(attribute.Int("gram.size", size))

	g, err := gram.NewBlank(size)
	if err != nil {
		h.writeErrorPage(w, r, loc, span, err)
		return
	}
	encoded, err := g.Encode()
	if err != nil {
		h.writeErrorPage(w, r, loc, span, err)
		return
	}
	httpx.SeeOther(w, r, boardURL(encoded))
}

// puzzles renders the catalog list. Invalid filters keep the page and show
// the reason next to the filter form.
func (h *handlers) puzzles(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "board.puzzles")
	defer span.End()
	r = r.WithContext(ctx)
	loc := resolveLocalizer(w, r)

	query := r.URL.Query()
	v := puzzlesView{Filter: query.Get(paramFilter), OrderBy: query.Get(paramOrderBy), Puzzles: []catalog.Puzzle{}}
	status := http.StatusOK
	puzzles, err := h.listPuzzles(query)
	if err != nil {
		appErr := apperrors.Classify(err)
		recordError(span, appErr)
		status = appErr.Code.HTTPStatus()
		v.Notice = loc.Error(appErr)
	} else {
		v.Puzzles = puzzles
	}
	span.SetAttributes(attribute.String("gram.filter", v.Filter), attribute.Int("gram.results", len(v.Puzzles)))

	page := layout(loc, layoutFor(r, loc.T("board.puzzles")), puzzlesPage(loc, v))
	templ.Handler(page, templ.WithStatus(status)).ServeHTTP(w, r)
}

// openPuzzle redirects to the board link of a catalog puzzle.
func (h *handlers) openPuzzle(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "board.open_puzzle")
	defer span.End()
	r = r.WithContext(ctx)

	name := r.PathValue("name")
	span.SetAttributes(attribute.String("gram.puzzle", name))
	p, ok := h.catalog.Lookup(name)
	if !ok {
		h.writeErrorPage(w, r, resolveLocalizer(w, r), span, apperrors.PuzzleNotFound(name))
		return
	}
	httpx.SeeOther(w, r, boardURL(p.Encoded))
}

// listPuzzles applies filter, order_by and page_size to the catalog.
func (h *handlers) listPuzzles(query url.Values) ([]catalog.Puzzle, error) {
	pageSize, err := pagination.ParsePageSize(query.Get(paramPageSize), puzzlePageSize)
	if err != nil {
		return nil, apperrors.InvalidArgument(paramPageSize, err)
	}
	orderBy, err := pagination.NormalizeOrderBy(query.Get(paramOrderBy), puzzleOrderBy)
	if err != nil {
		return nil, apperrors.InvalidArgument(paramOrderBy, err)
	}
	puzzles, err := h.catalog.Filter(query.Get(paramFilter))
	if err != nil {
		return nil, err
	}
	if err := catalog.Order(puzzles, orderBy); err != nil {
		return nil, apperrors.InvalidArgument(paramOrderBy, err)
	}
	if len(puzzles) > pageSize {
		puzzles = puzzles[:pageSize]
	}
	return puzzles, nil
}

// writeErrorPage renders a classified error as a localized page with the
// mapped status.
func (h *handlers) writeErrorPage(w http.ResponseWriter, r *http.Request, loc localizer, span trace.Span, err error) {
	appErr := apperrors.Classify(err)
	recordError(span, appErr)
	status := appErr.Code.HTTPStatus()
	if status >= http.StatusInternalServerError {
		log.Printf("board: %s %s: %v", r.Method, r.URL.Path, err)
	}
	page := layout(loc, layoutFor(r, loc.T("board.error_title")), errorPage(loc, loc.Error(appErr)))
	templ.Handler(page, templ.WithStatus(status)).ServeHTTP(w, r)
}

// decodeCanonical decodes a grid and re-encodes it, so a link that decodes
// but cannot be re-encoded is rejected up front.
func decodeCanonical(raw string) (gram.Grid, string, error) {
	g, err := gram.Decode(raw)
	if err != nil {
		return gram.Grid{}, "", err
	}
	encoded, err := g.Encode()
	if err != nil {
		return gram.Grid{}, "", err
	}
	return g, encoded, nil
}

func parseCoordinate(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, errors.New("coordinate is required")
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("coordinate must be a whole number, got %q", raw)
	}
	return n, nil
}

func recordError(span trace.Span, err *apperrors.Error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(otelcodes.Error, string(err.Code))
	span.SetAttributes(attribute.String("gram.error_code", string(err.Code)))
}

func newTracer() trace.Tracer {
	return otel.Tracer("github.com/louisbranch/gram/internal/services/board")
}
