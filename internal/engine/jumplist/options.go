package jumplist

// Option is a functional option for configuring a List.
type Option func(*List)

// WithMaxEntries sets the cap on the past stack.
// Non-positive values keep the default.
func WithMaxEntries(n int) Option {
	return func(l *List) {
		if n > 0 {
			l.maxEntries = n
		}
	}
}

// WithMinDistance sets the merge threshold in bytes.
// Non-positive values keep the default.
func WithMinDistance(d int64) Option {
	return func(l *List) {
		if d > 0 {
			l.minDistance = d
		}
	}
}

// WithEligibility sets the predicate deciding whether the live position
// may be captured on the first backward step. The default accepts all.
func WithEligibility(fn func(Entry) bool) Option {
	return func(l *List) {
		if fn != nil {
			l.eligible = fn
		}
	}
}

// WithLogger sets the debug logger.
func WithLogger(logger Logger) Option {
	return func(l *List) {
		l.logger = logger
	}
}

// SetMaxEntries changes the past-stack cap at runtime.
// The stack is trimmed on the next prune pass.
func (l *List) SetMaxEntries(n int) {
	if n <= 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.maxEntries = n
}

// SetMinDistance changes the merge threshold at runtime.
func (l *List) SetMinDistance(d int64) {
	if d <= 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.minDistance = d
}

// SetEligibility changes the capture predicate at runtime.
func (l *List) SetEligibility(fn func(Entry) bool) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.eligible = fn
}
