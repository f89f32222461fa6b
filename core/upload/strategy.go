package upload

import "github.com/dmitrymomot/uploadkit/core/storage"

// Shape selects how committed files are placed into the Result.
type Shape int

const (
	// ShapeValue expects at most one file for a single declared field,
	// surfaced as Result.File.
	ShapeValue Shape = iota
	// ShapeArray flattens committed files into Result.Files in arrival
	// order.
	ShapeArray
	// ShapeObject groups committed files by field name into
	// Result.FileGroups.
	ShapeObject
	// ShapeNone admits no files at all; only ordinary fields are parsed.
	ShapeNone
)

func (s Shape) String() string {
	switch s {
	case ShapeValue:
		return "value"
	case ShapeArray:
		return "array"
	case ShapeObject:
		return "object"
	case ShapeNone:
		return "none"
	default:
		return "unknown"
	}
}

// collector assembles committed files into the processor's shape. It only
// sees files that passed admission, the filter, and storage, so its own
// shape check is a last line of defense.
type collector struct {
	shape Shape

	file   *storage.File
	files  []*storage.File
	groups map[string][]*storage.File
}

func newCollector(shape Shape, fields []Field) *collector {
	c := &collector{shape: shape}
	if shape == ShapeObject {
		// Every declared field gets an entry, even when no file arrives
		// for it, so handlers can range without nil checks.
		c.groups = make(map[string][]*storage.File, len(fields))
		for _, f := range fields {
			c.groups[f.Name] = []*storage.File{}
		}
	}
	return c
}

// add places one committed file into the shape. A non-nil return is a
// shape violation and aborts the request.
func (c *collector) add(file *storage.File) *Error {
	switch c.shape {
	case ShapeValue:
		if c.file != nil {
			return newError(CodeUnexpectedFile, file.FieldName)
		}
		c.file = file
	case ShapeArray:
		c.files = append(c.files, file)
	case ShapeObject:
		c.groups[file.FieldName] = append(c.groups[file.FieldName], file)
	case ShapeNone:
		return newError(CodeUnexpectedFile, file.FieldName)
	}
	return nil
}

// apply copies the assembled structure onto the result.
func (c *collector) apply(res *Result) {
	switch c.shape {
	case ShapeValue:
		res.File = c.file
	case ShapeArray:
		res.Files = c.files
	case ShapeObject:
		res.FileGroups = c.groups
	}
}
