package service

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	hashingDomain "github.com/allisson/securepassword/internal/hashing/domain"
)

// argon2Params holds the fields of an Argon2 PHC string.
type argon2Params struct {
	algorithm  hashingDomain.Algorithm
	version    int
	memoryCost uint32
	timeCost   uint32
	threads    uint8
	salt       []byte
	key        []byte
}

// encodePHC serializes an Argon2 hash as
//
//	$argon2id$v=19$m=65536,t=4,p=1$<salt>$<key>
//
// using standard base64 without padding.
func encodePHC(p argon2Params) string {
	return fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		p.algorithm,
		p.version,
		p.memoryCost,
		p.timeCost,
		p.threads,
		base64.RawStdEncoding.EncodeToString(p.salt),
		base64.RawStdEncoding.EncodeToString(p.key),
	)
}

// decodePHC parses an Argon2 PHC string. Every failure wraps ErrUnrecognizedHash.
func decodePHC(encoded string) (*argon2Params, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return nil, fmt.Errorf("%w: expected 5 PHC segments", hashingDomain.ErrUnrecognizedHash)
	}

	p := &argon2Params{algorithm: hashingDomain.Algorithm(parts[1])}
	if !p.algorithm.IsArgon2() {
		return nil, fmt.Errorf("%w: unknown variant %q", hashingDomain.ErrUnrecognizedHash, parts[1])
	}

	version, ok := strings.CutPrefix(parts[2], "v=")
	if !ok {
		return nil, fmt.Errorf("%w: missing version", hashingDomain.ErrUnrecognizedHash)
	}
	v, err := strconv.Atoi(version)
	if err != nil || v != hashingDomain.Argon2Version {
		return nil, fmt.Errorf("%w: unsupported version %q", hashingDomain.ErrUnrecognizedHash, version)
	}
	p.version = v

	var seen int
	for _, kv := range strings.Split(parts[3], ",") {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("%w: malformed parameter %q", hashingDomain.ErrUnrecognizedHash, kv)
		}
		switch name {
		case "m":
			n, err := strconv.ParseUint(value, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid memory cost", hashingDomain.ErrUnrecognizedHash)
			}
			p.memoryCost = uint32(n)
		case "t":
			n, err := strconv.ParseUint(value, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid time cost", hashingDomain.ErrUnrecognizedHash)
			}
			p.timeCost = uint32(n)
		case "p":
			n, err := strconv.ParseUint(value, 10, 8)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid threads", hashingDomain.ErrUnrecognizedHash)
			}
			p.threads = uint8(n)
		default:
			return nil, fmt.Errorf("%w: unknown parameter %q", hashingDomain.ErrUnrecognizedHash, name)
		}
		seen++
	}
	if seen != 3 || p.timeCost == 0 || p.threads == 0 {
		return nil, fmt.Errorf("%w: invalid parameter segment %q", hashingDomain.ErrUnrecognizedHash, parts[3])
	}

	if p.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return nil, fmt.Errorf("%w: invalid salt encoding", hashingDomain.ErrUnrecognizedHash)
	}
	if p.key, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil || len(p.key) == 0 {
		return nil, fmt.Errorf("%w: invalid hash encoding", hashingDomain.ErrUnrecognizedHash)
	}
	return p, nil
}
