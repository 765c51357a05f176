package domain

// HashResult is a newly created hash and its metadata.
type HashResult struct {
	Hash string
	Info HashInfo
}

// RehashResult reports whether a stored hash must be replaced. Hash is set only
// when NeedsRehash is true.
type RehashResult struct {
	NeedsRehash bool
	Hash        string
}
