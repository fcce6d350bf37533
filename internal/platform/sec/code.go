// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/blake2b"
)

// macHexLength is the number of hex characters of the MAC kept in a code.
const macHexLength = 32

// Fingerprint is the slice of user state a confirmation code is bound to.
// Changing any field invalidates every code issued before the change.
type Fingerprint struct {
	UserID  string
	Email   string
	Active  bool
	Version int64
}

func (f Fingerprint) String() string {
	return fmt.Sprintf("%s|%s|%t|%d", f.UserID, f.Email, f.Active, f.Version)
}

// CodeGenerator issues and checks stateless confirmation codes.
//
// A code is "<issued-at base36>-<truncated keyed BLAKE2b-256>". Nothing is
// stored; validity is recomputed from the current fingerprint.
type CodeGenerator struct {
	key [32]byte
	ttl time.Duration
	now func() time.Time
}

// NewCodeGenerator derives the MAC key from secret.
func NewCodeGenerator(secret string, ttl time.Duration) (*CodeGenerator, error) {
	if secret == "" {
		return nil, fmt.Errorf("sec: confirmation secret must not be empty")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("sec: confirmation code ttl must be positive")
	}
	return &CodeGenerator{
		key: blake2b.Sum256([]byte(secret)),
		ttl: ttl,
		now: time.Now,
	}, nil
}

// WithClock returns a copy of the generator that reads time from now.
func (generator *CodeGenerator) WithClock(now func() time.Time) *CodeGenerator {
	clone := *generator
	clone.now = now
	return &clone
}

// Generate returns a fresh code for fingerprint.
func (generator *CodeGenerator) Generate(fingerprint Fingerprint) string {
	issuedAt := generator.now().Unix()
	return strconv.FormatInt(issuedAt, 36) + "-" + generator.mac(fingerprint, issuedAt)
}

// Check reports whether code was issued for fingerprint and has not expired.
// It does not distinguish malformed, expired and mismatched codes.
func (generator *CodeGenerator) Check(fingerprint Fingerprint, code string) bool {
	encodedTime, signature, found := strings.Cut(code, "-")
	if !found || len(signature) != macHexLength {
		return false
	}

	issuedAt, err := strconv.ParseInt(encodedTime, 36, 64)
	if err != nil {
		return false
	}

	age := generator.now().Sub(time.Unix(issuedAt, 0))
	if age < 0 || age > generator.ttl {
		return false
	}

	expected := generator.mac(fingerprint, issuedAt)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}

func (generator *CodeGenerator) mac(fingerprint Fingerprint, issuedAt int64) string {
	// New256 only fails for keys longer than 64 bytes.
	hasher, _ := blake2b.New256(generator.key[:])
	hasher.Write([]byte(fingerprint.String()))
	hasher.Write([]byte("|" + strconv.FormatInt(issuedAt, 10)))
	return hex.EncodeToString(hasher.Sum(nil))[:macHexLength]
}
