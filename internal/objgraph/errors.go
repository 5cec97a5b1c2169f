package objgraph

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDanglingReference is matched by errors.Is for every
// *DanglingReferenceError.
var ErrDanglingReference = errors.New("dangling reference")

// ViolationKind classifies a contract violation.
type ViolationKind int

const (
	// ViolationDoubleSerialize means an object was serialized again after its
	// record had been completed.
	ViolationDoubleSerialize ViolationKind = iota
	// ViolationCycle means an object was serialized again while its own record
	// was still being built, i.e. the owning edges contain a cycle.
	ViolationCycle
	// ViolationNotPointer means an object without pointer identity, or a nil
	// pointer, was handed to the serializer.
	ViolationNotPointer
)

// String returns the kind name.
func (k ViolationKind) String() string {
	switch k {
	case ViolationDoubleSerialize:
		return "double serialization"
	case ViolationCycle:
		return "owning cycle"
	case ViolationNotPointer:
		return "object without identity"
	default:
		return fmt.Sprintf("violation(%d)", int(k))
	}
}

// ContractViolation reports a misuse of the serializer by the object graph.
// It is raised with panic, never returned from Serializer methods.
type ContractViolation struct {
	Kind ViolationKind
	// ID is the id of the offending object. Empty for ViolationNotPointer.
	ID string
	// Type is the Go type of the offending object.
	Type string
	// Path lists the ids being serialized when the violation was detected,
	// outermost first.
	Path []string
}

func (e *ContractViolation) Error() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "objgraph: %s of %s", e.Kind, e.Type)

	if e.ID != "" {
		fmt.Fprintf(&sb, " (%s)", e.ID)
	}

	if len(e.Path) > 0 {
		fmt.Fprintf(&sb, " while serializing %s", strings.Join(e.Path, " -> "))
	}

	return sb.String()
}

// DanglingReferenceError lists ids that were referenced but never serialized.
type DanglingReferenceError struct {
	// IDs in assignment order.
	IDs []string
	// Types maps each id to the Go type of its object.
	Types map[string]string
}

func (e *DanglingReferenceError) Error() string {
	parts := make([]string, 0, len(e.IDs))
	for _, id := range e.IDs {
		parts = append(parts, fmt.Sprintf("%s (%s)", id, e.Types[id]))
	}

	return fmt.Sprintf("%d dangling reference(s): %s", len(e.IDs), strings.Join(parts, ", "))
}

// Is reports whether target is ErrDanglingReference.
func (e *DanglingReferenceError) Is(target error) bool {
	return target == ErrDanglingReference
}
