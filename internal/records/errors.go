package records

import "errors"

var (
	ErrValidation = errors.New("validation failed")
	ErrGeneration = errors.New("generation failed")
	ErrStorage    = errors.New("storage failed")
)

const (
	ErrorCodeValidation       = "VALIDATION_ERROR"
	ErrorCodeUnsupportedMedia = "UNSUPPORTED_MEDIA_TYPE"
	ErrorCodeGeneration       = "GENERATION_ERROR"
	ErrorCodeStorage          = "STORAGE_ERROR"
)
