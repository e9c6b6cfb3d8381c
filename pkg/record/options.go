package record

import (
	"log/slog"

	"github.com/mesh-intelligence/guards/internal/logging"
)

// WritePolicy decides what a write to a computed field does.
type WritePolicy int

const (
	// PolicyStrict rejects the write with ErrReadOnlyField.
	PolicyStrict WritePolicy = iota
	// PolicySilent ignores the write and reports success.
	PolicySilent
)

// String returns "strict" or "silent".
func (p WritePolicy) String() string {
	switch p {
	case PolicyStrict:
		return "strict"
	case PolicySilent:
		return "silent"
	default:
		return "unknown"
	}
}

// ParseWritePolicy maps "strict" and "silent" to a WritePolicy.
// The empty string maps to PolicyStrict.
func ParseWritePolicy(s string) (WritePolicy, bool) {
	switch s {
	case "", "strict":
		return PolicyStrict, true
	case "silent":
		return PolicySilent, true
	default:
		return PolicyStrict, false
	}
}

type options struct {
	policy    WritePolicy
	logger    *slog.Logger
	removable map[string]bool
}

// Option configures a Record at construction.
type Option func(*options)

// WithWritePolicy sets the policy applied to writes on computed fields.
func WithWritePolicy(p WritePolicy) Option {
	return func(o *options) { o.policy = p }
}

// WithLogger routes the record's debug events to l.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithRemovable marks fields passed to New as removable. It applies only to
// the initial fields; names New does not declare are logged at debug level
// and ignored. Use Removable for fields attached later.
func WithRemovable(names ...string) Option {
	return func(o *options) {
		for _, n := range names {
			o.removable[n] = true
		}
	}
}

func defaultOptions() options {
	return options{
		policy:    PolicyStrict,
		logger:    logging.Discard(),
		removable: make(map[string]bool),
	}
}

// FieldOption configures a single attached field.
type FieldOption func(*field)

// Removable allows the field to be removed with Record.Remove.
func Removable() FieldOption {
	return func(f *field) { f.removable = true }
}
