// Package docx writes WordprocessingML packages procedurally: block-level
// paragraphs and tables are appended in order and serialized into the zip
// container with the fixed OPC parts a minimal .docx requires.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"
)

const wmlNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
const relNamespace = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"

const (
	twipsPerInch = 1440
	emuPerInch   = 914400
)

// Alignment selects horizontal paragraph justification.
type Alignment string

const (
	AlignLeft   Alignment = ""
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

type block interface {
	render(b *strings.Builder)
}

type margins struct {
	top, bottom, left, right int // twips
}

type imagePart struct {
	name   string // file name under word/media/
	ext    string // png or jpeg
	data   []byte
	width  int // intrinsic pixels
	height int
}

// Document accumulates block-level content and media parts.
type Document struct {
	margins  margins
	blocks   []block
	images   []imagePart
	drawings int
}

// New creates an empty document with 1in margins on every side.
func New() *Document {
	return &Document{
		margins: margins{
			top:    twipsPerInch,
			bottom: twipsPerInch,
			left:   twipsPerInch,
			right:  twipsPerInch,
		},
	}
}

// SetPageMargins sets the section margins in inches.
func (d *Document) SetPageMargins(top, bottom, left, right float64) {
	d.margins = margins{
		top:    twips(top),
		bottom: twips(bottom),
		left:   twips(left),
		right:  twips(right),
	}
}

// AddParagraph appends an empty paragraph and returns it for population.
func (d *Document) AddParagraph() *Paragraph {
	p := &Paragraph{doc: d}
	d.blocks = append(d.blocks, p)
	return p
}

// AddTable appends a table whose column grid is fixed to the given widths
// in inches.
func (d *Document) AddTable(columnWidths []float64) *Table {
	grid := make([]int, len(columnWidths))
	for i, w := range columnWidths {
		grid[i] = twips(w)
	}
	t := &Table{doc: d, grid: grid}
	d.blocks = append(d.blocks, t)
	return t
}

// ImageRef identifies a registered media part.
type ImageRef struct {
	index  int
	width  int
	height int
}

// AddImage registers PNG or JPEG bytes as a media part. The returned
// reference is placed into paragraphs with AddImageRun.
func (d *Document) AddImage(data []byte) (ImageRef, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return ImageRef{}, fmt.Errorf("decode image: %w", err)
	}
	var ext string
	switch format {
	case "png":
		ext = "png"
	case "jpeg":
		ext = "jpeg"
	default:
		return ImageRef{}, fmt.Errorf("unsupported image format %q", format)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return ImageRef{}, fmt.Errorf("image has invalid dimensions %dx%d", cfg.Width, cfg.Height)
	}

	idx := len(d.images)
	d.images = append(d.images, imagePart{
		name:   fmt.Sprintf("image%d.%s", idx+1, ext),
		ext:    ext,
		data:   data,
		width:  cfg.Width,
		height: cfg.Height,
	})
	return ImageRef{index: idx, width: cfg.Width, height: cfg.Height}, nil
}

// Bytes serializes the document into a complete .docx package.
func (d *Document) Bytes() ([]byte, error) {
	var out bytes.Buffer
	zw := zip.NewWriter(&out)

	parts := []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", d.contentTypesXML()},
		{"_rels/.rels", []byte(packageRelsXML)},
		{"word/document.xml", d.documentXML()},
		{"word/_rels/document.xml.rels", d.documentRelsXML()},
		{"word/styles.xml", []byte(stylesXML)},
	}
	for _, part := range parts {
		if err := writePart(zw, part.name, part.data); err != nil {
			return nil, err
		}
	}
	for _, img := range d.images {
		if err := writePart(zw, "word/media/"+img.name, img.data); err != nil {
			return nil, err
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close docx package: %w", err)
	}
	return out.Bytes(), nil
}

func writePart(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("create part %s: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write part %s: %w", name, err)
	}
	return nil
}

func (d *Document) documentXML() []byte {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<w:document xmlns:w="` + wmlNamespace + `" xmlns:r="` + relNamespace + `"`)
	b.WriteString(` xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"`)
	b.WriteString(` xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"`)
	b.WriteString(` xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture">`)
	b.WriteString(`<w:body>`)
	for _, blk := range d.blocks {
		blk.render(&b)
	}
	fmt.Fprintf(&b, `<w:sectPr><w:pgSz w:w="12240" w:h="15840"/><w:pgMar w:top="%d" w:bottom="%d" w:left="%d" w:right="%d" w:header="720" w:footer="720" w:gutter="0"/></w:sectPr>`,
		d.margins.top, d.margins.bottom, d.margins.left, d.margins.right)
	b.WriteString(`</w:body></w:document>`)
	return []byte(b.String())
}

func (d *Document) contentTypesXML() []byte {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	b.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	b.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	b.WriteString(`<Default Extension="png" ContentType="image/png"/>`)
	b.WriteString(`<Default Extension="jpeg" ContentType="image/jpeg"/>`)
	b.WriteString(`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>`)
	b.WriteString(`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>`)
	b.WriteString(`</Types>`)
	return []byte(b.String())
}

func (d *Document) documentRelsXML() []byte {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	b.WriteString(`<Relationship Id="rId1" Type="` + relNamespace + `/styles" Target="styles.xml"/>`)
	for i, img := range d.images {
		fmt.Fprintf(&b, `<Relationship Id="%s" Type="%s/image" Target="media/%s"/>`, imageRelID(i), relNamespace, img.name)
	}
	b.WriteString(`</Relationships>`)
	return []byte(b.String())
}

func imageRelID(index int) string {
	return fmt.Sprintf("rId%d", index+2)
}

const packageRelsXML = xml.Header +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="` + relNamespace + `/officeDocument" Target="word/document.xml"/>` +
	`</Relationships>`

const stylesXML = xml.Header +
	`<w:styles xmlns:w="` + wmlNamespace + `">` +
	`<w:docDefaults><w:rPrDefault><w:rPr><w:sz w:val="22"/><w:szCs w:val="22"/></w:rPr></w:rPrDefault></w:docDefaults>` +
	`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/></w:style>` +
	`</w:styles>`

func twips(inches float64) int {
	return int(inches*twipsPerInch + 0.5)
}

func emu(inches float64) int64 {
	return int64(inches*emuPerInch + 0.5)
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escape(s string) string {
	return xmlEscaper.Replace(s)
}
