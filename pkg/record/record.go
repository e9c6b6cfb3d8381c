package record

import (
	"log/slog"
	"slices"
	"sort"

	"github.com/google/uuid"
)

// Kind identifies how a field is stored and accessed.
type Kind int

// Field kinds.
const (
	KindPlain Kind = iota + 1
	KindComputed
	KindValidated
)

// String returns the lower-case kind name.
func (k Kind) String() string {
	switch k {
	case KindPlain:
		return "plain"
	case KindComputed:
		return "computed"
	case KindValidated:
		return "validated"
	default:
		return "unknown"
	}
}

// DeriveFunc computes a field value from the current state of a record.
// It must not have side effects; this is a caller obligation and is not
// enforced.
type DeriveFunc func(v View) any

// ValidateFunc accepts a candidate value by returning nil, or rejects it with
// an error whose text becomes the rejection reason. snap is a deep copy of
// the record's plain and validated values; changing it, or anything it
// references, has no effect on the record.
type ValidateFunc func(candidate any, snap Snapshot) error

// field is a descriptor. For validated fields, value is the backing slot.
type field struct {
	name      string
	kind      Kind
	value     any
	derive    DeriveFunc
	validate  ValidateFunc
	removable bool
}

// Record is a set of named fields in declaration order.
type Record struct {
	id     string
	order  []string
	fields map[string]*field
	policy WritePolicy
	logger *slog.Logger
}

// New creates a record holding the given plain fields. Because a map has no
// order, the initial fields are declared in ascending name order. New always
// succeeds.
func New(initial map[string]any, opts ...Option) *Record {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	r := &Record{
		id:     generateUUID(),
		fields: make(map[string]*field, len(initial)),
		policy: o.policy,
	}
	r.logger = o.logger.With("record_id", r.id)

	names := make([]string, 0, len(initial))
	for name := range initial {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		r.add(&field{
			name:      name,
			kind:      KindPlain,
			value:     initial[name],
			removable: o.removable[name],
		})
	}
	for name := range o.removable {
		if _, ok := initial[name]; !ok {
			r.logger.Debug("removable name is not an initial field", "field", name)
		}
	}
	return r
}

// generateUUID returns a UUID v7, falling back to v4.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// ID returns the record's identifier. It is used for log correlation only
// and never appears in serialized output.
func (r *Record) ID() string { return r.id }

// Policy returns the write policy applied to computed fields.
func (r *Record) Policy() WritePolicy { return r.policy }

// AttachPlain registers a plain field after construction.
// Returns ErrDuplicateField if name is already registered.
func (r *Record) AttachPlain(name string, value any, opts ...FieldOption) error {
	if err := r.checkName(name); err != nil {
		return err
	}
	f := &field{name: name, kind: KindPlain, value: value}
	r.add(f, opts...)
	return nil
}

// AttachComputed registers a field whose value is fn evaluated on every read.
// Returns ErrDuplicateField if name is already registered.
func (r *Record) AttachComputed(name string, fn DeriveFunc, opts ...FieldOption) error {
	if err := r.checkName(name); err != nil {
		return err
	}
	if fn == nil {
		return fieldErr("attach", name, ErrInvalidField)
	}
	r.add(&field{name: name, kind: KindComputed, derive: fn}, opts...)
	return nil
}

// AttachValidated registers a field guarded by fn. The initial value goes
// through fn like any other write; if it is rejected the field is not
// registered and ErrValidation is returned.
// Returns ErrDuplicateField if name is already registered.
func (r *Record) AttachValidated(name string, initial any, fn ValidateFunc, opts ...FieldOption) error {
	if err := r.checkName(name); err != nil {
		return err
	}
	if fn == nil {
		return fieldErr("attach", name, ErrInvalidField)
	}
	if err := fn(initial, r.Snapshot()); err != nil {
		r.logger.Debug("initial value rejected", "field", name, "reason", err.Error())
		return &FieldError{Op: "attach", Field: name, Reason: err.Error(), Err: ErrValidation}
	}
	r.add(&field{name: name, kind: KindValidated, value: initial, validate: fn}, opts...)
	return nil
}

func (r *Record) checkName(name string) error {
	if name == "" {
		return fieldErr("attach", name, ErrInvalidName)
	}
	if _, ok := r.fields[name]; ok {
		return fieldErr("attach", name, ErrDuplicateField)
	}
	return nil
}

func (r *Record) add(f *field, opts ...FieldOption) {
	for _, opt := range opts {
		opt(f)
	}
	r.fields[f.name] = f
	r.order = append(r.order, f.name)
	r.logger.Debug("field attached", "field", f.name, "kind", f.kind.String(), "removable", f.removable)
}

// Get returns the current value of a field. Computed fields are derived
// afresh on each call.
// Returns ErrUnknownField if name is not registered.
func (r *Record) Get(name string) (any, error) {
	f, ok := r.fields[name]
	if !ok {
		return nil, fieldErr("get", name, ErrUnknownField)
	}
	if f.kind == KindComputed {
		return f.derive(View{r: r}), nil
	}
	return f.value, nil
}

// Set writes a field.
//
// Plain fields are overwritten. Computed fields are never changed: under
// PolicyStrict the write returns ErrReadOnlyField, under PolicySilent it
// returns nil. Validated fields commit value only if the validator accepts
// it; otherwise ErrValidation is returned and the previous value stays.
// Returns ErrUnknownField if name is not registered.
func (r *Record) Set(name string, value any) error {
	f, ok := r.fields[name]
	if !ok {
		return fieldErr("set", name, ErrUnknownField)
	}

	switch f.kind {
	case KindComputed:
		r.logger.Debug("write to computed field ignored", "field", name, "policy", r.policy.String())
		if r.policy == PolicySilent {
			return nil
		}
		return fieldErr("set", name, ErrReadOnlyField)
	case KindValidated:
		if err := f.validate(value, r.Snapshot()); err != nil {
			r.logger.Debug("write rejected", "field", name, "reason", err.Error())
			return &FieldError{Op: "set", Field: name, Reason: err.Error(), Err: ErrValidation}
		}
	}
	f.value = value
	return nil
}

// Remove unregisters a field. Only fields marked removable at attach time
// can be removed; others return ErrNotRemovable and stay unchanged.
// Returns ErrUnknownField if name is not registered.
func (r *Record) Remove(name string) error {
	f, ok := r.fields[name]
	if !ok {
		return fieldErr("remove", name, ErrUnknownField)
	}
	if !f.removable {
		r.logger.Debug("removal rejected", "field", name)
		return fieldErr("remove", name, ErrNotRemovable)
	}
	delete(r.fields, name)
	if i := slices.Index(r.order, name); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}
	r.logger.Debug("field removed", "field", name, "kind", f.kind.String())
	return nil
}

// Has reports whether name is registered.
func (r *Record) Has(name string) bool {
	_, ok := r.fields[name]
	return ok
}

// Kind returns the kind of a registered field.
// Returns ErrUnknownField if name is not registered.
func (r *Record) Kind(name string) (Kind, error) {
	f, ok := r.fields[name]
	if !ok {
		return 0, fieldErr("get", name, ErrUnknownField)
	}
	return f.kind, nil
}

// Fields returns the logical field names in declaration order.
func (r *Record) Fields() []string {
	return slices.Clone(r.order)
}

// Snapshot deep-copies the current plain and validated values, so slices,
// maps and pointers in it are not shared with the record. Computed fields are
// not included.
func (r *Record) Snapshot() Snapshot {
	s := make(Snapshot, len(r.fields))
	for _, name := range r.order {
		if f := r.fields[name]; f.kind != KindComputed {
			s[name] = deepCopy(f.value)
		}
	}
	return s
}
