// Package objgraph flattens a graph of mutually referencing objects into a
// table of id → property-list record.
//
// Every object that is seen receives exactly one id ("OBJ_1", "OBJ_2", ...)
// in discovery order. Objects are compared by identity (pointer), never by
// field values. Edges come in two kinds:
//
//   - Owned edges, produced with [Serializer.Serialize]: the target is
//     serialized now, exactly once, by its owner.
//   - References, produced with [Serializer.IDOf]: only the target's id is
//     needed; someone else is expected to serialize it.
//
// Owned edges must form a DAG. Serializing an identity twice, directly or
// through an owning cycle, is a contract violation and panics with a
// [*ContractViolation]. References to objects that are never serialized are
// not detected during the walk; call [Serializer.CheckIntegrity] afterwards.
//
// A Serializer is not safe for concurrent use.
package objgraph
