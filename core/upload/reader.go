package upload

import (
	"errors"
	"io"
)

// errSizeCap signals that a capped stream had more bytes than allowed.
var errSizeCap = errors.New("file size limit exceeded")

// sizeCapReader delivers at most limit bytes and fails the read that would
// go past them, modeled on net/http's MaxBytesReader. The engine writing
// from this reader aborts mid-stream, so an oversize part is never
// buffered or committed in full.
type sizeCapReader struct {
	r        io.Reader
	remain   int64
	exceeded bool
}

func newSizeCapReader(r io.Reader, limit int64) *sizeCapReader {
	return &sizeCapReader{r: r, remain: limit}
}

func (s *sizeCapReader) Read(p []byte) (int, error) {
	if s.exceeded {
		return 0, errSizeCap
	}
	if len(p) == 0 {
		return 0, nil
	}
	// Reading one byte past the cap distinguishes an exactly-at-cap
	// stream from an oversize one.
	if int64(len(p)) > s.remain+1 {
		p = p[:s.remain+1]
	}
	n, err := s.r.Read(p)
	if int64(n) <= s.remain {
		s.remain -= int64(n)
		return n, err
	}

	s.exceeded = true
	n = int(s.remain)
	s.remain = 0
	return n, errSizeCap
}
