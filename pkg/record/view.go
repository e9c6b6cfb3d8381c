package record

// View is a read-only, live view of a record's plain and validated fields,
// handed to derivation functions. Computed fields are not visible through a
// View, so a derivation cannot depend on another derivation.
type View struct {
	r *Record
}

// Get returns the current value of a plain or validated field.
// Returns ErrUnknownField for computed or unregistered names.
func (v View) Get(name string) (any, error) {
	if v.r == nil {
		return nil, fieldErr("get", name, ErrUnknownField)
	}
	f, ok := v.r.fields[name]
	if !ok || f.kind == KindComputed {
		return nil, fieldErr("get", name, ErrUnknownField)
	}
	return f.value, nil
}

// Value is like Get but returns nil when the field is not visible.
func (v View) Value(name string) any {
	val, _ := v.Get(name)
	return val
}

// ViewOf returns a View over r. It lets a DeriveFunc be called directly,
// outside of Record.Get, against an explicitly chosen record.
func ViewOf(r *Record) View { return View{r: r} }

// Snapshot is a deep copy of a record's plain and validated values, taken
// when a validated field is written. Validators may read or modify it,
// including nested slices and maps, without affecting the record.
type Snapshot map[string]any

// Value returns the named value, or nil if the snapshot has none.
func (s Snapshot) Value(name string) any { return s[name] }
