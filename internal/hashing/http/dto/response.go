package dto

import (
	hashingDomain "github.com/allisson/securepassword/internal/hashing/domain"
)

// HashInfoResponse describes a hash in API responses.
type HashInfoResponse struct {
	Algorithm     string         `json:"algorithm"`
	AlgorithmName string         `json:"algorithm_name"`
	Options       map[string]any `json:"options"`
}

// MapHashInfoToResponse converts domain hash metadata to an API response.
func MapHashInfoToResponse(info hashingDomain.HashInfo) HashInfoResponse {
	options := info.Options
	if options == nil {
		options = map[string]any{}
	}
	return HashInfoResponse{
		Algorithm:     string(info.Algorithm),
		AlgorithmName: info.AlgorithmName,
		Options:       options,
	}
}

// HashResponse contains a new hash and its metadata.
type HashResponse struct {
	Hash string           `json:"hash"`
	Info HashInfoResponse `json:"info"`
}

// MapHashResultToResponse converts a hash result to an API response.
func MapHashResultToResponse(result *hashingDomain.HashResult) HashResponse {
	return HashResponse{
		Hash: result.Hash,
		Info: MapHashInfoToResponse(result.Info),
	}
}

// VerifyResponse reports whether a password matched a hash.
type VerifyResponse struct {
	Valid bool `json:"valid"`
}

// RehashResponse reports whether a hash is outdated. Hash is only present
// when NeedsRehash is true.
type RehashResponse struct {
	NeedsRehash bool   `json:"needs_rehash"`
	Hash        string `json:"hash,omitempty"`
}

// MapRehashResultToResponse converts a rehash result to an API response.
func MapRehashResultToResponse(result *hashingDomain.RehashResult) RehashResponse {
	return RehashResponse{
		NeedsRehash: result.NeedsRehash,
		Hash:        result.Hash,
	}
}

// CostResponse contains a calibrated bcrypt cost.
type CostResponse struct {
	Cost int `json:"cost"`
}
