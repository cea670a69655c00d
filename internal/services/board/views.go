package board

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/louisbranch/gram/internal/core/gram"
	"github.com/louisbranch/gram/internal/core/gram/catalog"
	"github.com/louisbranch/gram/internal/services/shared/i18nhttp"
)

const pageStyle = `body{font-family:system-ui,sans-serif;margin:2rem;color:#222}
nav a{margin-right:.75rem}
.notice{background:#fff4e5;border:1px solid #f0b35a;padding:.5rem .75rem}
table.board{border-collapse:collapse;margin:1rem 0}
table.board th{font-weight:normal;color:#555;padding:0 .25rem;font-size:.85rem}
th.col-clue{vertical-align:bottom;text-align:center}
th.row-clue{text-align:right;white-space:nowrap}
table.board td{padding:0}
table.board form{margin:0}
button.cell{width:1.75rem;height:1.75rem;border:1px solid #999;margin:0;cursor:pointer}
button.cell.filled{background:#222}
button.cell.blank{background:#fff}
ul.puzzles li{margin:.25rem 0}`

// htmlWriter accumulates markup and keeps the first write error.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *htmlWriter) attr(name, value string) {
	h.raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

func (h *htmlWriter) link(href, label string) {
	h.raw("<a")
	h.attr("href", string(templ.URL(href)))
	h.raw(">")
	h.text(label)
	h.raw("</a>")
}

func (h *htmlWriter) render(ctx context.Context, c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(ctx, h.w)
}

// layoutView carries the page chrome shared by every board page.
type layoutView struct {
	Title string
	// Page is the target of the language switcher links; nil links to the
	// board root.
	Page *url.URL
}

func layoutFor(r *http.Request, title string) layoutView {
	v := layoutView{Title: title}
	if r != nil && r.Method == http.MethodGet {
		v.Page = r.URL
	}
	return v
}

func layout(loc localizer, v layoutView, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<!DOCTYPE html><html")
		h.attr("lang", loc.choice.Tag.String())
		h.raw(`><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		h.text(v.Title + " | " + loc.T("core.app_name"))
		h.raw("</title><style>")
		h.raw(pageStyle)
		h.raw("</style></head><body><header><nav>")
		h.link("/", loc.T("board.title"))
		h.link("/puzzles", loc.T("board.puzzles"))
		h.raw(`</nav><nav class="languages"`)
		h.attr("aria-label", loc.T("core.language"))
		h.raw(">")
		for _, option := range i18nhttp.Options(v.Page, loc.choice.Tag) {
			if option.Active {
				h.raw(`<strong>`)
				h.text(loc.T(option.LabelKey))
				h.raw(`</strong> `)
				continue
			}
			h.link(option.URL, loc.T(option.LabelKey))
			h.raw(" ")
		}
		h.raw("</nav></header><main>")
		h.render(ctx, body)
		h.raw("</main></body></html>")
		return h.err
	})
}

// boardView is the data behind the board page.
type boardView struct {
	Grid    gram.Grid
	Encoded string
	Notice  string
	NewSize int
}

func boardPage(loc localizer, v boardView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<h1>")
		h.text(loc.T("board.title"))
		h.raw("</h1><p>")
		h.text(loc.T("board.tagline"))
		h.raw("</p>")
		if v.Notice != "" {
			h.raw(`<p class="notice" role="alert">`)
			h.text(v.Notice)
			h.raw("</p>")
		}
		h.render(ctx, boardTable(loc, v.Grid, v.Encoded))
		h.raw(`<p><a id="share"`)
		h.attr("href", string(templ.URL(boardURL(v.Encoded))))
		h.raw(">")
		h.text(loc.T("board.share"))
		h.raw(`</a></p><form method="get" action="/new"><label>`)
		h.text(loc.T("board.size"))
		h.raw(` <input type="number" name="size" min="1"`)
		h.attr("max", strconv.Itoa(gram.MaxRunLength))
		h.attr("value", strconv.Itoa(v.NewSize))
		h.raw(`></label> <button type="submit">`)
		h.text(loc.T("board.new"))
		h.raw("</button></form>")
		return h.err
	})
}

func boardTable(loc localizer, g gram.Grid, encoded string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		rowClues := g.RowClues()
		colClues := g.ColClues()
		rows := g.Rows()

		h.raw(`<table class="board"><thead><tr><th></th>`)
		for _, clues := range colClues {
			h.raw(`<th class="col-clue">`)
			h.raw(strings.Join(clueStrings(clues), "<br>"))
			h.raw("</th>")
		}
		h.raw("</tr></thead><tbody>")
		for y, row := range rows {
			h.raw(`<tr><th class="row-clue">`)
			h.text(strings.Join(clueStrings(rowClues[y]), " "))
			h.raw("</th>")
			for x, cell := range row {
				label := loc.T("board.cell_blank", y+1, x+1)
				if cell == gram.Filled {
					label = loc.T("board.cell_filled", y+1, x+1)
				}
				h.raw(`<td><form method="post" action="/toggle">`)
				h.raw(`<input type="hidden" name="g"`)
				h.attr("value", encoded)
				h.raw(`><input type="hidden" name="x"`)
				h.attr("value", strconv.Itoa(x))
				h.raw(`><input type="hidden" name="y"`)
				h.attr("value", strconv.Itoa(y))
				h.raw(`><button type="submit"`)
				h.attr("id", gram.CellID(y, x))
				h.attr("class", "cell "+cell.String())
				h.attr("aria-label", label)
				h.raw("></button></form></td>")
			}
			h.raw("</tr>")
		}
		h.raw("</tbody></table>")
		return h.err
	})
}

// clueStrings renders a line's clues, showing 0 for a line with no filled
// cells.
func clueStrings(clues []int) []string {
	if len(clues) == 0 {
		return []string{"0"}
	}
	out := make([]string, len(clues))
	for i, n := range clues {
		out[i] = strconv.Itoa(n)
	}
	return out
}

// puzzlesView is the data behind the catalog page.
type puzzlesView struct {
	Filter  string
	OrderBy string
	Puzzles []catalog.Puzzle
	Notice  string
}

func puzzlesPage(loc localizer, v puzzlesView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<h1>")
		h.text(loc.T("board.puzzles"))
		h.raw(`</h1><form method="get" action="/puzzles"><label>`)
		h.text(loc.T("board.filter"))
		h.raw(` <input type="text" name="filter" placeholder="size = 5"`)
		h.attr("value", v.Filter)
		h.raw("></label>")
		if v.OrderBy != "" {
			h.raw(`<input type="hidden" name="order_by"`)
			h.attr("value", v.OrderBy)
			h.raw(">")
		}
		h.raw(` <button type="submit">`)
		h.text(loc.T("board.filter_apply"))
		h.raw("</button></form>")
		if v.Notice != "" {
			h.raw(`<p class="notice" role="alert">`)
			h.text(v.Notice)
			h.raw("</p>")
		}
		if len(v.Puzzles) == 0 {
			h.raw("<p>")
			h.text(loc.T("board.no_puzzles"))
			h.raw("</p>")
			return h.err
		}
		h.raw(`<ul class="puzzles">`)
		for _, p := range v.Puzzles {
			h.raw("<li")
			h.attr("id", "puzzle-"+p.Name)
			h.raw("><strong>")
			h.text(p.Name)
			h.raw("</strong> ")
			h.text(loc.T("board.puzzle_size", p.Size(), p.Size()))
			h.raw(", ")
			h.text(loc.T("board.puzzle_filled", p.Filled()))
			h.raw(" ")
			h.link("/puzzles/"+url.PathEscape(p.Name), loc.T("board.puzzle_open"))
			h.raw("</li>")
		}
		h.raw("</ul>")
		return h.err
	})
}

func errorPage(loc localizer, message string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<h1>")
		h.text(loc.T("board.error_title"))
		h.raw(`</h1><p class="notice" role="alert">`)
		h.text(message)
		h.raw("</p><p>")
		h.link("/", loc.T("board.back"))
		h.raw("</p>")
		return h.err
	})
}
