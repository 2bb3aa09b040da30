package buffer

// Shape is the read-only view of a document needed to keep a position valid.
// Lengths are expressed in runes (not bytes).
type Shape interface {
	LineCount() int
	LineLength(row int) int
}

var _ Shape = Buffer{}
