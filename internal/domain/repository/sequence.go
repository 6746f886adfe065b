package repository

// IDSequence issues identifiers for stores that do not generate their own.
// Values are strictly increasing and never reused for the lifetime of the sequence.
type IDSequence interface {
	Next() int64
}
