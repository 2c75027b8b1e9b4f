package symtab

import "sort"

// Type is the inferred primitive type tag of a variable.
type Type uint8

const (
	TypeInt Type = iota
	TypeDouble
	TypeBoolean
	TypeString
)

// String returns the Java spelling of the type.
func (t Type) String() string {
	switch t {
	case TypeDouble:
		return "double"
	case TypeBoolean:
		return "boolean"
	case TypeString:
		return "String"
	default:
		return "int"
	}
}

// Table maps variable names to the type recorded at their first
// assignment. Entries are never removed or re-typed.
// A Table belongs to a single conversion run and is not safe for
// concurrent use.
type Table struct {
	types map[string]Type
	order []string
}

func New() *Table {
	return &Table{types: make(map[string]Type)}
}

// Declare records name with typ if it is not known yet. It reports whether
// the name was newly introduced; a known name keeps its original type.
func (t *Table) Declare(name string, typ Type) bool {
	if _, ok := t.types[name]; ok {
		return false
	}
	t.types[name] = typ
	t.order = append(t.order, name)
	return true
}

// Lookup returns the recorded type of name.
func (t *Table) Lookup(name string) (Type, bool) {
	typ, ok := t.types[name]
	return typ, ok
}

func (t *Table) Len() int { return len(t.order) }

// Names returns the declared names sorted alphabetically.
func (t *Table) Names() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	sort.Strings(out)
	return out
}
