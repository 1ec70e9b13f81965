// Package filter implements a typed query-filter DSL for MongoDB. Field
// handles obtained from a document schema compose into immutable expression
// trees of comparisons, negations, predicate lists, and $and/$or combinations,
// and a tree serializes into the bson.D filter document the driver expects.
//
// Building an expression performs no I/O and never partially succeeds: a
// misuse of the combinators or a value that disagrees with the field's
// declared type poisons the tree, and Marshal reports the recorded error
// instead of emitting an incomplete filter.
package filter
