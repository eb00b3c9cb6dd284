package graph

// Record is a typed node object built against a Schema. It starts transient
// (no identity, mutable through Set) and becomes persisted once the store
// inserts it. Persisted records refuse direct mutation; Store.SetProperty is
// the only sanctioned way to change a stored field. DeleteNode returns a
// record to the transient state so it can be re-inserted as a new node.
//
// A Record is not safe for concurrent use; the store's single logical thread
// of control model extends to the records it manages.
type Record struct {
	schema    *Schema
	props     map[string]any
	id        int64
	persisted bool
}

// NewRecord builds a transient record. Every required field must be present
// with a non-nil value; optional fields may be omitted or nil (nil entries
// are dropped). All supplied values are validated against the schema.
func NewRecord(schema *Schema, props map[string]any) (*Record, error) {
	r := &Record{schema: schema, props: make(map[string]any, len(props))}
	for name, value := range props {
		if value == nil {
			continue
		}
		if err := schema.ValidateField(name, value); err != nil {
			return nil, err
		}
		r.props[name] = value
	}
	for _, name := range schema.names {
		spec := schema.fields[name]
		if spec.Optional {
			continue
		}
		if _, ok := r.props[name]; !ok {
			return nil, &ValidationError{Label: schema.label, Field: name, Reason: "required field missing"}
		}
	}
	return r, nil
}

// Schema returns the type registry this record was built against.
func (r *Record) Schema() *Schema { return r.schema }

// Label returns the node label (table name) of the record's type.
func (r *Record) Label() string { return r.schema.label }

// ID returns the persisted identity. ok is false while the record is
// transient.
func (r *Record) ID() (id int64, ok bool) {
	return r.id, r.persisted
}

// Persisted reports whether the record currently holds a database identity.
func (r *Record) Persisted() bool { return r.persisted }

// Get returns the current value of a field. ok is false when the field is
// unset (absent or nil).
func (r *Record) Get(name string) (value any, ok bool) {
	value, ok = r.props[name]
	return value, ok
}

// Properties returns a copy of the set (non-nil) field values.
func (r *Record) Properties() map[string]any {
	out := make(map[string]any, len(r.props))
	for k, v := range r.props {
		out[k] = v
	}
	return out
}

// Set assigns a field value on a transient record. Persisted records are
// immutable through this path and return a PreconditionError; use
// Store.SetProperty instead. Setting nil clears the field.
func (r *Record) Set(name string, value any) error {
	if r.persisted {
		return &PreconditionError{Op: "Record.Set", Reason: "record is persisted; use Store.SetProperty"}
	}
	if value == nil {
		if _, ok := r.schema.fields[name]; !ok {
			return &ValidationError{Label: r.schema.label, Field: name, Reason: "field not declared"}
		}
		delete(r.props, name)
		return nil
	}
	if err := r.schema.ValidateField(name, value); err != nil {
		return err
	}
	r.props[name] = value
	return nil
}

// bindIdentity transitions the record to the persisted state. Store use only.
func (r *Record) bindIdentity(id int64) {
	r.id = id
	r.persisted = true
}

// releaseIdentity returns the record to the transient state. Store use only.
func (r *Record) releaseIdentity() {
	r.id = 0
	r.persisted = false
}

// storeSet writes a field value bypassing the immutability guard. Store use
// only, after the value has been validated and confirmed written.
func (r *Record) storeSet(name string, value any) {
	r.props[name] = value
}
