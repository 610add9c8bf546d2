package docx

import (
	"fmt"
	"strings"
)

// Paragraph is a block-level run container.
type Paragraph struct {
	doc   *Document
	align Alignment
	runs  []*Run
}

// SetAlignment sets horizontal justification.
func (p *Paragraph) SetAlignment(a Alignment) *Paragraph {
	p.align = a
	return p
}

// AddRun appends a text run.
func (p *Paragraph) AddRun(text string) *Run {
	r := &Run{text: text}
	p.runs = append(p.runs, r)
	return r
}

// AddBreak appends a line break run.
func (p *Paragraph) AddBreak() {
	p.runs = append(p.runs, &Run{isBreak: true})
}

// AddImageRun places a registered image into the paragraph at the given
// display width in inches; height preserves the intrinsic aspect ratio.
func (p *Paragraph) AddImageRun(ref ImageRef, widthInches float64) {
	p.doc.drawings++
	p.runs = append(p.runs, &Run{
		image: &imageRun{
			ref:     ref,
			widthIn: widthInches,
			docPrID: p.doc.drawings,
		},
	})
}

func (p *Paragraph) render(b *strings.Builder) {
	b.WriteString(`<w:p>`)
	if p.align != AlignLeft {
		fmt.Fprintf(b, `<w:pPr><w:jc w:val="%s"/></w:pPr>`, p.align)
	}
	for _, r := range p.runs {
		r.render(b)
	}
	b.WriteString(`</w:p>`)
}

type imageRun struct {
	ref     ImageRef
	widthIn float64
	docPrID int
}

// Run is an inline stretch of identically formatted content.
type Run struct {
	text      string
	isBreak   bool
	bold      bool
	underline bool
	sizePt    int    // points, zero means inherited
	color     string // RRGGBB hex, empty means inherited
	image     *imageRun
}

// Bold sets bold formatting.
func (r *Run) Bold() *Run {
	r.bold = true
	return r
}

// Underline sets single underline formatting.
func (r *Run) Underline() *Run {
	r.underline = true
	return r
}

// Size sets the font size in points.
func (r *Run) Size(points int) *Run {
	r.sizePt = points
	return r
}

// Color sets the font color as RRGGBB hex.
func (r *Run) Color(hex string) *Run {
	r.color = hex
	return r
}

func (r *Run) render(b *strings.Builder) {
	b.WriteString(`<w:r>`)
	r.renderProps(b)
	switch {
	case r.isBreak:
		b.WriteString(`<w:br/>`)
	case r.image != nil:
		r.image.render(b)
	default:
		b.WriteString(`<w:t xml:space="preserve">`)
		b.WriteString(escape(r.text))
		b.WriteString(`</w:t>`)
	}
	b.WriteString(`</w:r>`)
}

func (r *Run) renderProps(b *strings.Builder) {
	if !r.bold && !r.underline && r.sizePt == 0 && r.color == "" {
		return
	}
	b.WriteString(`<w:rPr>`)
	if r.bold {
		b.WriteString(`<w:b/>`)
	}
	if r.color != "" {
		fmt.Fprintf(b, `<w:color w:val="%s"/>`, escape(r.color))
	}
	if r.sizePt != 0 {
		// WML sizes are half-points.
		fmt.Fprintf(b, `<w:sz w:val="%d"/><w:szCs w:val="%d"/>`, r.sizePt*2, r.sizePt*2)
	}
	if r.underline {
		b.WriteString(`<w:u w:val="single"/>`)
	}
	b.WriteString(`</w:rPr>`)
}

func (ir *imageRun) render(b *strings.Builder) {
	cx := emu(ir.widthIn)
	cy := int64(float64(cx) * float64(ir.ref.height) / float64(ir.ref.width))
	relID := imageRelID(ir.ref.index)
	name := fmt.Sprintf("Picture %d", ir.docPrID)

	fmt.Fprintf(b, `<w:drawing><wp:inline distT="0" distB="0" distL="0" distR="0">`+
		`<wp:extent cx="%d" cy="%d"/>`+
		`<wp:docPr id="%d" name="%s"/>`+
		`<a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/picture">`+
		`<pic:pic>`+
		`<pic:nvPicPr><pic:cNvPr id="%d" name="%s"/><pic:cNvPicPr/></pic:nvPicPr>`+
		`<pic:blipFill><a:blip r:embed="%s"/><a:stretch><a:fillRect/></a:stretch></pic:blipFill>`+
		`<pic:spPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="%d" cy="%d"/></a:xfrm>`+
		`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></pic:spPr>`+
		`</pic:pic></a:graphicData></a:graphic>`+
		`</wp:inline></w:drawing>`,
		cx, cy, ir.docPrID, name, ir.docPrID, name, relID, cx, cy)
}
