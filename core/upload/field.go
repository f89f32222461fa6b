package upload

// Field declares one multipart field the processor accepts files for.
// Declarations are fixed when the processor is built and never change
// during a request.
type Field struct {
	// Name is the multipart field name, the form input's name attribute.
	Name string

	// MaxCount caps how many files the field may carry. Zero or negative
	// means unbounded, matching an absent cap.
	MaxCount int
}
