package upload

import "sync"

// limiter tracks the remaining per-field file budget for one request.
// Check-and-decrement is a single locked step, so admission stays correct
// even if parts were ever consumed concurrently.
type limiter struct {
	mu        sync.Mutex
	remaining map[string]int // slots left per field; negative means unbounded
	wildcard  bool           // admit undeclared fields without a budget
}

func newLimiter(fields []Field, wildcard bool) *limiter {
	l := &limiter{
		remaining: make(map[string]int, len(fields)),
		wildcard:  wildcard,
	}
	for _, f := range fields {
		if f.MaxCount > 0 {
			l.remaining[f.Name] = f.MaxCount
		} else {
			l.remaining[f.Name] = -1
		}
	}
	return l
}

// admit consumes one file slot for the field. It reports false when the
// field is undeclared or its budget is already spent; the slot is only
// decremented on success.
func (l *limiter) admit(field string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	n, ok := l.remaining[field]
	if !ok {
		return l.wildcard
	}
	switch {
	case n < 0:
		return true
	case n == 0:
		return false
	default:
		l.remaining[field] = n - 1
		return true
	}
}
