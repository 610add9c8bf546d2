package records

import (
	"fmt"

	"labrecord-backend/internal/logo"
	"labrecord-backend/internal/shared/util"
)

// Service orchestrates logo resolution and document assembly.
type Service struct {
	Logo      *logo.Store
	Assembler *Assembler
}

// NewService constructs a Service.
func NewService(store *logo.Store, asm *Assembler) *Service {
	return &Service{Logo: store, Assembler: asm}
}

// Generate assembles the lab record for the request and derives its
// suggested download name from the register number.
func (s *Service) Generate(req RecordRequest) (GeneratedDocument, error) {
	stem, err := util.SanitizeFileName(req.RegisterNumber)
	if err != nil {
		return GeneratedDocument{}, fmt.Errorf("%w: register_number is not a valid file name", ErrValidation)
	}

	logoPath, _ := s.Logo.Resolve()

	data, err := s.Assembler.Assemble(req, logoPath)
	if err != nil {
		return GeneratedDocument{}, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	return GeneratedDocument{
		FileName: stem + "_Lab_Record.docx",
		Data:     data,
	}, nil
}
