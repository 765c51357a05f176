package domain

// HashInfo describes a stored hash without verifying it, in the shape of
// password_get_info: the algorithm identifier, its name and the parameters
// recovered from the hash string.
type HashInfo struct {
	Algorithm     Algorithm      `json:"algo"`
	AlgorithmName string         `json:"algoName"`
	Options       map[string]any `json:"options"`
}

// UnknownHashInfo is returned for hashes that match no supported format.
func UnknownHashInfo() HashInfo {
	return HashInfo{AlgorithmName: "unknown", Options: map[string]any{}}
}

// Known reports whether the hash was recognized.
func (h HashInfo) Known() bool {
	return h.Algorithm != ""
}
