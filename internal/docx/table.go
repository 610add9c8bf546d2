package docx

import (
	"fmt"
	"strings"
)

// BorderStyle selects how a cell draws its borders.
type BorderStyle int

const (
	// BordersInherit leaves border resolution to the table defaults.
	BordersInherit BorderStyle = iota
	// BordersSingle draws a thin hairline (sz 4) black border on all four
	// edges.
	BordersSingle
	// BordersNone explicitly suppresses all edges including the internal
	// grid lines.
	BordersNone
)

// Table is a block-level grid with a fixed column layout.
type Table struct {
	doc  *Document
	grid []int // column widths in twips
	rows []*Row
}

// AddRow appends a row with one cell per grid column.
func (t *Table) AddRow() *Row {
	row := &Row{table: t}
	for _, w := range t.grid {
		row.cells = append(row.cells, &Cell{table: t, width: w})
	}
	t.rows = append(t.rows, row)
	return row
}

func (t *Table) render(b *strings.Builder) {
	b.WriteString(`<w:tbl>`)
	b.WriteString(`<w:tblPr><w:tblW w:w="0" w:type="auto"/><w:tblLayout w:type="fixed"/></w:tblPr>`)
	b.WriteString(`<w:tblGrid>`)
	for _, w := range t.grid {
		fmt.Fprintf(b, `<w:gridCol w:w="%d"/>`, w)
	}
	b.WriteString(`</w:tblGrid>`)
	for _, row := range t.rows {
		row.render(b)
	}
	b.WriteString(`</w:tbl>`)
}

// Row is a single table row.
type Row struct {
	table *Table
	cells []*Cell
}

// Cell returns the cell at the given column index.
func (r *Row) Cell(i int) *Cell {
	return r.cells[i]
}

// Cells returns all cells in grid order.
func (r *Row) Cells() []*Cell {
	return r.cells
}

func (r *Row) render(b *strings.Builder) {
	b.WriteString(`<w:tr>`)
	for _, c := range r.cells {
		c.render(b)
	}
	b.WriteString(`</w:tr>`)
}

// Cell holds block-level paragraphs.
type Cell struct {
	table      *Table
	width      int // twips
	borders    BorderStyle
	paragraphs []*Paragraph
}

// SetBorders sets the cell border style.
func (c *Cell) SetBorders(style BorderStyle) {
	c.borders = style
}

// AddParagraph appends a paragraph to the cell.
func (c *Cell) AddParagraph() *Paragraph {
	p := &Paragraph{doc: c.table.doc}
	c.paragraphs = append(c.paragraphs, p)
	return p
}

func (c *Cell) render(b *strings.Builder) {
	b.WriteString(`<w:tc>`)
	b.WriteString(`<w:tcPr>`)
	fmt.Fprintf(b, `<w:tcW w:w="%d" w:type="dxa"/>`, c.width)
	switch c.borders {
	case BordersSingle:
		b.WriteString(`<w:tcBorders>`)
		for _, edge := range []string{"top", "left", "bottom", "right"} {
			fmt.Fprintf(b, `<w:%s w:val="single" w:sz="4" w:space="0" w:color="000000"/>`, edge)
		}
		b.WriteString(`</w:tcBorders>`)
	case BordersNone:
		b.WriteString(`<w:tcBorders>`)
		for _, edge := range []string{"top", "left", "bottom", "right", "insideH", "insideV"} {
			fmt.Fprintf(b, `<w:%s w:val="none" w:sz="0" w:space="0"/>`, edge)
		}
		b.WriteString(`</w:tcBorders>`)
	}
	b.WriteString(`</w:tcPr>`)

	// A table cell must contain at least one paragraph.
	if len(c.paragraphs) == 0 {
		b.WriteString(`<w:p/>`)
	}
	for _, p := range c.paragraphs {
		p.render(b)
	}
	b.WriteString(`</w:tc>`)
}
