package records

// Experiment is one entry in the lab record. Only its position in the
// request carries identity; the displayed ordinal is derived from it.
// Fields are accepted as-is, including empty values.
type Experiment struct {
	Title  string `json:"title"`
	Date   string `json:"date"`
	Github string `json:"github"`
}

// RecordRequest is the document-generation input.
type RecordRequest struct {
	CourseTitle    string       `json:"course_title" binding:"required"`
	StudentName    string       `json:"student_name" binding:"required"`
	RegisterNumber string       `json:"register_number" binding:"required"`
	Experiments    []Experiment `json:"experiments" binding:"required"`
}

// GeneratedDocument is the ephemeral output artifact: the serialized
// document plus its suggested download name. Nothing is retained after the
// response is sent.
type GeneratedDocument struct {
	FileName string
	Data     []byte
}
