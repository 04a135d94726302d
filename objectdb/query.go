package objectdb

import "strings"

// typeFilterKind selects how Query.typeFilter matches a struct name.
type typeFilterKind int

const (
	typeFilterNone typeFilterKind = iota
	typeFilterExact
	typeFilterContains
)

// Query builds a filtered, single-pass iteration over a Database's
// records. Grounded on svarog-datacore's query.rs Query/QueryIterator,
// with ByID added for API symmetry with Database.Record (see
// SPEC_FULL.md's supplemented features).
type Query struct {
	db         *Database
	typeKind   typeFilterKind
	typeValue  string
	nameValue  string
	hasName    bool
	fileValue  string
	hasFile    bool
	mainOnly   bool
	idValue    [16]byte
	hasID      bool
}

// NewQuery starts a filter builder over db. An empty filter set matches
// every record.
func NewQuery(db *Database) *Query { return &Query{db: db} }

// TypeExact restricts results to records whose struct name matches name
// exactly.
func (q *Query) TypeExact(name string) *Query {
	q.typeKind = typeFilterExact
	q.typeValue = name
	return q
}

// TypeContains restricts results to records whose struct name contains
// pattern as a substring.
func (q *Query) TypeContains(pattern string) *Query {
	q.typeKind = typeFilterContains
	q.typeValue = pattern
	return q
}

// Name restricts results to records with this exact display name.
func (q *Query) Name(name string) *Query {
	q.nameValue, q.hasName = name, true
	return q
}

// File restricts results to records sourced from this exact file path.
func (q *Query) File(file string) *Query {
	q.fileValue, q.hasFile = file, true
	return q
}

// MainOnly restricts results to the canonical (main) record of each
// source file.
func (q *Query) MainOnly() *Query {
	q.mainOnly = true
	return q
}

// ByID restricts results to the single record with this id, if any.
// Modeled on Database.Record, not a literal port of an existing filter.
func (q *Query) ByID(id [16]byte) *Query {
	q.idValue, q.hasID = id, true
	return q
}

func (q *Query) matches(db *Database, index int, r Record) bool {
	if q.hasID && r.ID != q.idValue {
		return false
	}
	if q.mainOnly && !db.IsMainRecord(index) {
		return false
	}
	switch q.typeKind {
	case typeFilterExact:
		if db.StructName(r.StructIndex) != q.typeValue {
			return false
		}
	case typeFilterContains:
		if !strings.Contains(db.StructName(r.StructIndex), q.typeValue) {
			return false
		}
	}
	if q.hasName && db.RecordName(r) != q.nameValue {
		return false
	}
	if q.hasFile && db.RecordFileName(r) != q.fileValue {
		return false
	}
	return true
}

// Collect runs the query and returns every matching record.
func (q *Query) Collect() []Record {
	var out []Record
	for i, r := range q.db.records {
		if q.matches(q.db, i, r) {
			out = append(out, r)
		}
	}
	return out
}

// First returns the first matching record, or false if none match.
func (q *Query) First() (Record, bool) {
	for i, r := range q.db.records {
		if q.matches(q.db, i, r) {
			return r, true
		}
	}
	return Record{}, false
}

// Count returns the number of matching records without materializing
// them.
func (q *Query) Count() int {
	n := 0
	for i, r := range q.db.records {
		if q.matches(q.db, i, r) {
			n++
		}
	}
	return n
}

// AllRecords returns every record, in file order.
func (db *Database) AllRecords() []Record { return db.records }

// TypeNames returns the name of every struct definition, in file order.
func (db *Database) TypeNames() []string {
	out := make([]string, len(db.structDefs))
	for i, s := range db.structDefs {
		out[i] = db.String2(s.NameOffset)
	}
	return out
}

// EnumNames returns the name of every enum definition, in file order.
func (db *Database) EnumNames() []string {
	out := make([]string, len(db.enumDefs))
	for i, e := range db.enumDefs {
		out[i] = db.String2(e.NameOffset)
	}
	return out
}

// CountByType returns the number of records whose struct name equals
// typeName.
func (db *Database) CountByType(typeName string) int {
	return NewQuery(db).TypeExact(typeName).Count()
}

// ResolveReference looks up the record a Reference targets, if any.
func (db *Database) ResolveReference(r Reference) (Record, bool) {
	if r.IsNull() {
		return Record{}, false
	}
	return db.Record(r.RecordID)
}

// ResolveInstance returns an Instance handle for a Pointer, if non-null.
func (db *Database) ResolveInstance(p Pointer) (*Instance, bool) {
	if p.IsNull() {
		return nil, false
	}
	return db.NewInstance(p.StructIndex, p.InstanceIndex), true
}
