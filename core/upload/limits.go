package upload

import "math"

// Default caps applied when a Limits value leaves them at zero. Only the
// two field-shaped dimensions have finite defaults; file size and the
// count caps default to unlimited.
const (
	DefaultFieldNameSize = 100
	DefaultFieldSize     = 1 << 20
)

// Limits caps the aggregate dimensions of one multipart request. All caps
// other than FieldNameSize and FieldSize treat zero as unlimited;
// FieldNameSize and FieldSize fall back to their defaults at zero, pass
// math.MaxInt64 to lift them.
//
// The env tags let applications load limits straight from the
// environment via the config package.
type Limits struct {
	// FieldNameSize caps the byte length of any part's field name.
	FieldNameSize int `env:"UPLOAD_LIMIT_FIELD_NAME_SIZE" envDefault:"100"`

	// FieldSize caps the byte length of one ordinary field value.
	FieldSize int64 `env:"UPLOAD_LIMIT_FIELD_SIZE" envDefault:"1048576"`

	// Fields caps how many ordinary fields a request may carry.
	Fields int `env:"UPLOAD_LIMIT_FIELDS" envDefault:"0"`

	// FileSize caps the byte length of one uploaded file. Oversize files
	// fail mid-stream; bytes past the cap are never handed to storage.
	FileSize int64 `env:"UPLOAD_LIMIT_FILE_SIZE" envDefault:"0"`

	// Files caps how many file parts a request may carry, counting parts
	// later rejected by admission or the filter.
	Files int `env:"UPLOAD_LIMIT_FILES" envDefault:"0"`

	// Parts caps the total number of parts, fields and files combined.
	Parts int `env:"UPLOAD_LIMIT_PARTS" envDefault:"0"`
}

// DefaultLimits returns the caps applied when none are configured.
func DefaultLimits() Limits {
	return Limits{
		FieldNameSize: DefaultFieldNameSize,
		FieldSize:     DefaultFieldSize,
	}
}

// normalized fills zero fallback caps and clamps sizes so the +1
// read-ahead used to detect over-limit streams cannot overflow.
func (l Limits) normalized() Limits {
	if l.FieldNameSize <= 0 {
		l.FieldNameSize = DefaultFieldNameSize
	}
	if l.FieldSize <= 0 {
		l.FieldSize = DefaultFieldSize
	}
	if l.FieldSize > math.MaxInt64-1 {
		l.FieldSize = math.MaxInt64 - 1
	}
	if l.FileSize > math.MaxInt64-1 {
		l.FileSize = math.MaxInt64 - 1
	}
	return l
}
