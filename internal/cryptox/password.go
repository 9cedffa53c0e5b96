// Package cryptox implements salted password hashing for LabKeeper accounts.
//
// Hashes are Argon2id digests encoded in the PHC-like form
//
//	$argon2id$v=19$m=65536,t=1,p=4$<salt>$<key>
//
// where salt and key are unpadded standard base64. The encoded string carries
// its own parameters, so hashes survive a change of DefaultParams.
package cryptox

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/labkeeper/internal/common"
	"golang.org/x/crypto/argon2"
)

// ErrMalformedHash is returned when a stored hash cannot be decoded.
var ErrMalformedHash = errors.New("malformed password hash")

const algorithm = "argon2id"

// maxMemory caps the memory cost accepted from a stored hash, in KiB.
const maxMemory = 1024 * 1024

// Params are the Argon2id cost parameters.
type Params struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
	KeyLen  uint32
	SaltLen uint32
}

// DefaultParams match the master key derivation used by the vault client.
var DefaultParams = Params{Time: 1, Memory: 64 * 1024, Threads: 4, KeyLen: 32, SaltLen: 16}

// Hasher hashes and verifies passwords with fixed parameters.
type Hasher struct {
	params Params
}

// NewHasher returns a Hasher using p. Zero fields fall back to DefaultParams.
func NewHasher(p Params) *Hasher {
	if p.Time == 0 {
		p.Time = DefaultParams.Time
	}
	if p.Memory == 0 {
		p.Memory = DefaultParams.Memory
	}
	if p.Threads == 0 {
		p.Threads = DefaultParams.Threads
	}
	if p.KeyLen == 0 {
		p.KeyLen = DefaultParams.KeyLen
	}
	if p.SaltLen == 0 {
		p.SaltLen = DefaultParams.SaltLen
	}
	return &Hasher{params: p}
}

// Hash derives a key from password with a fresh random salt and returns the
// encoded hash.
func (h *Hasher) Hash(password []byte) string {
	salt := common.GenerateRandByteArray(int(h.params.SaltLen))
	return encode(h.params, salt, derive(password, salt, h.params))
}

// Verify reports whether password hashes to stored. It recomputes the key
// with the salt and parameters found in stored.
func (h *Hasher) Verify(password []byte, stored string) (bool, error) {
	return VerifyPassword(password, stored)
}

// VerifyPassword reports whether password matches the encoded hash stored.
func VerifyPassword(password []byte, stored string) (bool, error) {
	p, salt, key, err := decode(stored)
	if err != nil {
		return false, err
	}
	candidate := derive(password, salt, p)
	return subtle.ConstantTimeCompare(key, candidate) == 1, nil
}

// usable reports whether argon2.IDKey can run with p without panicking or
// allocating more than maxMemory.
func (p Params) usable() bool {
	return p.Time >= 1 && p.Threads >= 1 &&
		uint64(p.Memory) >= 8*uint64(p.Threads) && p.Memory <= maxMemory
}

func derive(password, salt []byte, p Params) []byte {
	return argon2.IDKey(password, salt, p.Time, p.Memory, p.Threads, p.KeyLen)
}

func encode(p Params, salt, key []byte) string {
	return fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		algorithm, argon2.Version, p.Memory, p.Time, p.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key))
}

func decode(stored string) (Params, []byte, []byte, error) {
	var p Params

	// "", "argon2id", "v=19", "m=..,t=..,p=..", salt, key
	parts := strings.Split(stored, "$")
	if len(parts) != 6 || parts[1] != algorithm {
		return p, nil, nil, ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return p, nil, nil, ErrMalformedHash
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Time, &p.Threads); err != nil {
		return p, nil, nil, ErrMalformedHash
	}
	if !p.usable() {
		return p, nil, nil, ErrMalformedHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return p, nil, nil, ErrMalformedHash
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return p, nil, nil, ErrMalformedHash
	}

	p.SaltLen = uint32(len(salt))
	p.KeyLen = uint32(len(key))
	return p, salt, key, nil
}
