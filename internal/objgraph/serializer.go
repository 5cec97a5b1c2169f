package objgraph

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/hupe1980/pbxgen/internal/plist"
)

// idPrefix is prepended to the discovery counter to form object ids.
const idPrefix = "OBJ_"

// Object is implemented by every type that takes part in the graph.
//
// PBXFields returns the object's own record. Implementations call
// s.Serialize for children they own and s.IDOf for everything else. They
// must not serialize themselves or anything that owns them.
type Object interface {
	PBXFields(s *Serializer) plist.Mapping
}

// Edge is a directed edge recorded while walking the graph.
type Edge struct {
	From  string
	To    string
	Owned bool
}

// record is a slot in the output table. A record exists from the moment its
// object starts serializing; done flips once PBXFields has returned.
type record struct {
	fields plist.Mapping
	done   bool
}

// Serializer assigns ids to objects and collects the records of serialized
// objects. Create one per document with New and discard it afterwards.
type Serializer struct {
	ids     map[Object]string
	objects []Object // index i holds the object with id OBJ_<i+1>
	records map[string]*record
	path    []string
	edges   []Edge
}

// New returns an empty Serializer.
func New() *Serializer {
	return &Serializer{
		ids:     make(map[Object]string),
		records: make(map[string]*record),
	}
}

// IDOf returns the id of obj, assigning the next one on first sight.
// It never looks inside obj. When called from within another object's
// PBXFields, a reference edge from that object is recorded.
func (s *Serializer) IDOf(obj Object) string {
	id := s.assign(obj)
	s.link(id, false)

	return id
}

// Serialize returns the id of obj and adds obj's record to the table. It
// panics with a *ContractViolation when obj has been serialized before or is
// currently being serialized.
func (s *Serializer) Serialize(obj Object) string {
	id := s.assign(obj)

	if rec, ok := s.records[id]; ok {
		kind := ViolationDoubleSerialize
		if !rec.done {
			kind = ViolationCycle
		}

		panic(&ContractViolation{
			Kind: kind,
			ID:   id,
			Type: typeName(obj),
			Path: append([]string(nil), s.path...),
		})
	}

	s.link(id, true)

	rec := &record{}
	s.records[id] = rec

	s.path = append(s.path, id)
	fields := obj.PBXFields(s)
	s.path = s.path[:len(s.path)-1]

	rec.fields = fields
	rec.done = true

	return id
}

func (s *Serializer) assign(obj Object) string {
	if obj == nil || reflect.ValueOf(obj).Kind() != reflect.Pointer || reflect.ValueOf(obj).IsNil() {
		panic(&ContractViolation{
			Kind: ViolationNotPointer,
			Type: typeName(obj),
			Path: append([]string(nil), s.path...),
		})
	}

	if id, ok := s.ids[obj]; ok {
		return id
	}

	s.objects = append(s.objects, obj)
	id := idPrefix + strconv.Itoa(len(s.objects))
	s.ids[obj] = id

	return id
}

func (s *Serializer) link(to string, owned bool) {
	if len(s.path) == 0 {
		return
	}

	s.edges = append(s.edges, Edge{From: s.path[len(s.path)-1], To: to, Owned: owned})
}

// Objects returns the table of completed records keyed by id. The returned
// mapping is a fresh value; the records themselves are shared.
func (s *Serializer) Objects() plist.Mapping {
	table := make(plist.Mapping, len(s.records))

	for id, rec := range s.records {
		if rec.done {
			table[id] = rec.fields
		}
	}

	return table
}

// Len returns the number of ids assigned so far.
func (s *Serializer) Len() int {
	return len(s.objects)
}

// IDs returns every assigned id in assignment order.
func (s *Serializer) IDs() []string {
	ids := make([]string, len(s.objects))
	for i := range s.objects {
		ids[i] = idPrefix + strconv.Itoa(i+1)
	}

	return ids
}

// Serialized reports whether the record for id is complete.
func (s *Serializer) Serialized(id string) bool {
	rec, ok := s.records[id]

	return ok && rec.done
}

// TypeOf returns the Go type name of the object with the given id, or ""
// when the id is unknown.
func (s *Serializer) TypeOf(id string) string {
	obj := s.lookup(id)
	if obj == nil {
		return ""
	}

	return typeName(obj)
}

// Edges returns the edges recorded so far, in the order they were walked.
func (s *Serializer) Edges() []Edge {
	return append([]Edge(nil), s.edges...)
}

// Dangling returns, in assignment order, the ids that were handed out but
// whose objects were never serialized.
func (s *Serializer) Dangling() []string {
	var dangling []string

	for _, id := range s.IDs() {
		if !s.Serialized(id) {
			dangling = append(dangling, id)
		}
	}

	return dangling
}

// CheckIntegrity returns a *DanglingReferenceError when any assigned id has
// no record. It does not modify the serializer.
func (s *Serializer) CheckIntegrity() error {
	dangling := s.Dangling()
	if len(dangling) == 0 {
		return nil
	}

	types := make(map[string]string, len(dangling))
	for _, id := range dangling {
		types[id] = s.TypeOf(id)
	}

	return &DanglingReferenceError{IDs: dangling, Types: types}
}

func (s *Serializer) lookup(id string) Object {
	if len(id) <= len(idPrefix) || id[:len(idPrefix)] != idPrefix {
		return nil
	}

	n, err := strconv.Atoi(id[len(idPrefix):])
	if err != nil || n < 1 || n > len(s.objects) {
		return nil
	}

	return s.objects[n-1]
}

func typeName(obj Object) string {
	if obj == nil {
		return "<nil>"
	}

	return fmt.Sprintf("%T", obj)
}
