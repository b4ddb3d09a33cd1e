// Package aggregates defines domain-facing aggregate contracts.
//
// These contracts avoid persistence/transport details and represent the
// write boundaries where invariants are enforced atomically: the recipe with
// its ingredient lines and tags, the user→recipe relations, and follows.
package aggregates
