// Package record provides Record, a structured value with named fields whose
// access is controlled per field: plain fields are read and written freely,
// computed fields are derived on every read and cannot be written, and
// validated fields pass every write through a predicate before committing.
//
// Derivation and validation functions always receive the record they operate
// on as an explicit argument (a View or a Snapshot). Nothing relies on an
// implicit receiver, so a function value passed around as a bare callback
// keeps operating on exactly what it is handed.
//
// A Record holds no lock. Callers sharing a Record between goroutines must
// serialize access themselves.
package record
