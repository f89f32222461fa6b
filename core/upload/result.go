package upload

import (
	"net/url"

	"github.com/dmitrymomot/uploadkit/core/storage"
)

// Result is what a parsed request yields: ordinary form fields plus the
// committed files in the processor's shape. Exactly one of File, Files,
// and FileGroups is populated, matching the entry point that built the
// processor.
type Result struct {
	// Fields holds ordinary (non-file) values. A repeated field name keeps
	// its values in arrival order.
	Fields url.Values

	// File is set by Single processors.
	File *storage.File

	// Files is set by Array and Any processors, in arrival order across
	// all fields.
	Files []*storage.File

	// FileGroups is set by Fields processors, keyed by field name. Every
	// declared field has an entry even when no file arrived for it.
	FileGroups map[string][]*storage.File

	// Rejected lists file parts turned away because their field's budget
	// was spent or the field was undeclared. Their bytes were discarded
	// and the request still succeeded; inspect this to tell a dropped
	// extra file from one that never arrived.
	Rejected []*Error
}
