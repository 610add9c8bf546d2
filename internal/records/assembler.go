package records

import (
	"fmt"
	"os"

	"labrecord-backend/internal/docx"
	"labrecord-backend/internal/qr"
)

const (
	// qrSourceSizePx is the pixel size QR codes are generated at before
	// the layout scales them down to their display width.
	qrSourceSizePx     = 150
	qrDisplayWidthIn   = 0.75
	logoDisplayWidthIn = 7.0

	confirmationText = "I confirm that the experiments and GitHub links provided are entirely my own work."
)

var experimentColumns = []float64{0.5, 0.8, 3.0, 0.8, 0.6, 1.0}

var tableHeaders = []string{"Exp", "Date", "Name of The Experiment", "QR Code", "Mark", "Signature"}

// Assembler builds the lab record document from a validated request.
// QR images are generated and embedded in-memory; no intermediate files
// are written, so concurrent assemblies cannot interfere.
type Assembler struct {
	qr *qr.Generator
}

// NewAssembler constructs an Assembler using the given QR generator.
func NewAssembler(gen *qr.Generator) *Assembler {
	return &Assembler{qr: gen}
}

// Assemble produces the complete document bytes. An empty logoPath skips
// the logo block. Any failure aborts the whole document.
func (a *Assembler) Assemble(req RecordRequest, logoPath string) ([]byte, error) {
	doc := docx.New()
	doc.SetPageMargins(0.5, 1, 1, 1)

	if logoPath != "" {
		if err := a.addLogo(doc, logoPath); err != nil {
			return nil, err
		}
	}

	title := doc.AddParagraph().SetAlignment(docx.AlignCenter)
	title.AddRun(req.CourseTitle).Bold().Size(14)
	doc.AddParagraph()

	if err := a.addExperimentTable(doc, req.Experiments); err != nil {
		return nil, err
	}

	doc.AddParagraph()
	doc.AddParagraph()
	doc.AddParagraph().AddRun(confirmationText).Bold()
	doc.AddParagraph()

	addDetailsTable(doc, req.StudentName, req.RegisterNumber)

	return doc.Bytes()
}

func (a *Assembler) addLogo(doc *docx.Document, logoPath string) error {
	data, err := os.ReadFile(logoPath)
	if err != nil {
		return fmt.Errorf("read logo: %w", err)
	}
	ref, err := doc.AddImage(data)
	if err != nil {
		return fmt.Errorf("embed logo: %w", err)
	}
	doc.AddParagraph().SetAlignment(docx.AlignCenter).AddImageRun(ref, logoDisplayWidthIn)
	doc.AddParagraph()
	return nil
}

func (a *Assembler) addExperimentTable(doc *docx.Document, experiments []Experiment) error {
	table := doc.AddTable(experimentColumns)

	header := table.AddRow()
	for i, label := range tableHeaders {
		cell := header.Cell(i)
		cell.SetBorders(docx.BordersSingle)
		cell.AddParagraph().SetAlignment(docx.AlignCenter).AddRun(label).Bold().Size(11)
	}

	for i, exp := range experiments {
		row := table.AddRow()
		for _, cell := range row.Cells() {
			cell.SetBorders(docx.BordersSingle)
		}

		row.Cell(0).AddParagraph().SetAlignment(docx.AlignCenter).AddRun(ordinal(i + 1))
		row.Cell(1).AddParagraph().AddRun(exp.Date)

		titlePara := row.Cell(2).AddParagraph()
		titlePara.AddRun(exp.Title)

		// An entry without a reference link still renders; the link run
		// and the QR cell are simply left out.
		if exp.Github == "" {
			continue
		}

		titlePara.AddBreak()
		titlePara.AddBreak()
		titlePara.AddRun(exp.Github).Size(9).Color("0000FF").Underline()

		qrBytes, err := a.qr.Generate(exp.Github, qrSourceSizePx)
		if err != nil {
			return fmt.Errorf("experiment %d: generate qr: %w", i+1, err)
		}
		ref, err := doc.AddImage(qrBytes)
		if err != nil {
			return fmt.Errorf("experiment %d: embed qr: %w", i+1, err)
		}
		row.Cell(3).AddParagraph().SetAlignment(docx.AlignCenter).AddImageRun(ref, qrDisplayWidthIn)
	}

	return nil
}

func addDetailsTable(doc *docx.Document, studentName, registerNumber string) {
	details := doc.AddTable([]float64{3.25, 3.25})

	top := details.AddRow()
	top.Cell(0).AddParagraph().AddRun("Name: " + studentName).Size(11)
	top.Cell(1).AddParagraph().SetAlignment(docx.AlignRight).AddRun("Register Number: " + registerNumber).Size(11)

	bottom := details.AddRow()
	bottom.Cell(0).AddParagraph().AddRun("Date:").Size(11)
	bottom.Cell(1).AddParagraph().SetAlignment(docx.AlignRight).AddRun("Learner's Signature:").Size(11)

	for _, row := range []*docx.Row{top, bottom} {
		for _, cell := range row.Cells() {
			cell.SetBorders(docx.BordersNone)
		}
	}
}

// ordinal renders a 1-based position zero-padded to two digits; wider
// positions render unpadded.
func ordinal(n int) string {
	return fmt.Sprintf("%02d", n)
}
