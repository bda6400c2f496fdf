package renderer

import (
	"image"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

const bullet = "• "

// drawPanel draws the detail panel inside rect, scrolled by r.scroll.
func (r *Renderer) drawPanel(p *PanelPacket, rect image.Rectangle) {
	if rect.Dx() < 4 || rect.Dy() < 3 {
		return
	}
	border := ColorMuted
	if p.Focused {
		border = ColorAccent
	}
	r.drawBox(rect, p.Title, tcell.StyleDefault.Foreground(border).Background(ColorBackground))

	inner := rect.Inset(1)
	inner.Min.X++
	inner.Max.X--
	if inner.Empty() {
		return
	}
	rows := layoutPanelLines(p.Lines, inner.Dx())
	r.panelRows = len(rows)
	r.panelHeight = inner.Dy()
	r.scroll = clampScroll(r.scroll, len(rows), inner.Dy())

	for i := 0; i < inner.Dy() && r.scroll+i < len(rows); i++ {
		row := rows[r.scroll+i]
		r.drawText(inner.Min.X, inner.Min.Y+i, row.text, row.style, inner)
	}
	if len(rows) > inner.Dy() {
		more := tcell.StyleDefault.Foreground(ColorMuted).Background(ColorBackground)
		if r.scroll > 0 {
			r.backend.SetCell(rect.Max.X-2, rect.Min.Y, '▲', more)
		}
		if r.scroll+inner.Dy() < len(rows) {
			r.backend.SetCell(rect.Max.X-2, rect.Max.Y-1, '▼', more)
		}
	}
}

func (r *Renderer) drawBox(rect image.Rectangle, title string, style tcell.Style) {
	x0, y0, x1, y1 := rect.Min.X, rect.Min.Y, rect.Max.X-1, rect.Max.Y-1
	for x := x0 + 1; x < x1; x++ {
		r.backend.SetCell(x, y0, '─', style)
		r.backend.SetCell(x, y1, '─', style)
	}
	for y := y0 + 1; y < y1; y++ {
		r.backend.SetCell(x0, y, '│', style)
		r.backend.SetCell(x1, y, '│', style)
	}
	r.backend.SetCell(x0, y0, '╭', style)
	r.backend.SetCell(x1, y0, '╮', style)
	r.backend.SetCell(x0, y1, '╰', style)
	r.backend.SetCell(x1, y1, '╯', style)
	if title != "" && rect.Dx() > 6 {
		text := " " + runewidth.Truncate(title, rect.Dx()-6, "…") + " "
		r.drawText(x0+2, y0, text, style.Bold(true), rect)
	}
}

type panelRow struct {
	text  string
	style tcell.Style
}

// layoutPanelLines wraps lines to width and picks a style per row: the first
// line is the title, a line after a blank one is a section heading.
func layoutPanelLines(lines []string, width int) []panelRow {
	base := tcell.StyleDefault.Foreground(ColorText).Background(ColorBackground)
	var rows []panelRow
	for i, line := range lines {
		style := base
		switch {
		case i == 0:
			style = base.Foreground(ColorAccent).Bold(true)
		case strings.HasPrefix(line, "["):
			style = base.Foreground(ColorAccent).Background(ColorTag)
		case i > 0 && lines[i-1] == "" && line != "":
			style = base.Bold(true).Underline(true)
		case i <= 3:
			style = base.Foreground(ColorMuted)
		}
		for _, w := range wrapLine(line, width) {
			rows = append(rows, panelRow{text: w, style: style})
		}
	}
	return rows
}

// wrapLine breaks line on spaces so no row is wider than width. Bullet
// continuations are indented under the bullet text.
func wrapLine(line string, width int) []string {
	if width <= 0 {
		return nil
	}
	if runewidth.StringWidth(line) <= width {
		return []string{line}
	}
	indent := ""
	if strings.HasPrefix(line, bullet) {
		indent = strings.Repeat(" ", runewidth.StringWidth(bullet))
	}

	var out []string
	cur := ""
	flush := func() {
		if strings.TrimSpace(cur) != "" {
			out = append(out, cur)
		}
		cur = indent
	}
	avail := width - runewidth.StringWidth(indent)
	for _, word := range strings.Fields(line) {
		// hard break words that can never fit on a row
		for avail > 0 && runewidth.StringWidth(word) > avail {
			flush()
			head := runewidth.Truncate(word, avail, "")
			if head == "" {
				break
			}
			out = append(out, indent+head)
			word = word[len(head):]
		}
		switch {
		case strings.TrimSpace(cur) == "":
			cur += word
		case runewidth.StringWidth(cur)+1+runewidth.StringWidth(word) <= width:
			cur += " " + word
		default:
			flush()
			cur += word
		}
	}
	flush()
	return out
}

func clampScroll(scroll, rows, height int) int {
	max := rows - height
	if max < 0 {
		max = 0
	}
	if scroll > max {
		return max
	}
	if scroll < 0 {
		return 0
	}
	return scroll
}
