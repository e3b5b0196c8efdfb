// Copyright (c) 2026 NotThird.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package vault

import (
	"errors"
	"strings"

	"github.com/NotThird/MidnightVault/catalog"
)

// CodeLength is how many characters of the permuted string form the final
// vault code. The permuted 8 digits are never fully consumed.
const CodeLength = 6

var (
	ErrDigitsLength = errors.New("digit string must be exactly 8 characters")
	ErrKeyInvalid   = errors.New("permutation key must be a permutation of 1-8")
)

// Result is the output of Compute. Digits is always populated; Permuted and
// Code stay empty until all four branches are complete and the key is valid.
type Result struct {
	Digits   string `json:"digits"`
	Permuted string `json:"permuted,omitempty"`
	Code     string `json:"code,omitempty"`
}

// BuildDigits concatenates each complete branch's 2-digit reward in
// canonical branch order, skipping branches not yet complete. Completion
// order is irrelevant; with all four branches done the result is 8 digits.
func BuildDigits(completed []string) string {
	set := make(map[string]bool, len(completed))
	for _, c := range completed {
		set[c] = true
	}
	var b strings.Builder
	for _, br := range catalog.Branches() {
		if set[br.Code] {
			b.WriteString(br.Digits)
		}
	}
	return b.String()
}

// ApplyPermutation reorders digits by key: for each position i, the key
// character p contributes digits[p-1] to the output. Every output character
// is a copy of exactly one input character; there is no carry or cipher.
// Both strings must be length 8 and key must be a permutation of "1".."8".
func ApplyPermutation(digits, key string) (string, error) {
	if len(digits) != 8 {
		return "", ErrDigitsLength
	}
	if !ValidKey(key) {
		return "", ErrKeyInvalid
	}
	out := make([]byte, 8)
	for i := 0; i < 8; i++ {
		out[i] = digits[key[i]-'1']
	}
	return string(out), nil
}

// ValidKey reports whether key is an 8-character permutation of '1'..'8'.
func ValidKey(key string) bool {
	if len(key) != 8 {
		return false
	}
	var seen [8]bool
	for i := 0; i < 8; i++ {
		c := key[i]
		if c < '1' || c > '8' || seen[c-'1'] {
			return false
		}
		seen[c-'1'] = true
	}
	return true
}

// Compute derives the vault code from the set of complete branches and the
// permutation key. Deterministic: same inputs, same code. With fewer than
// four complete branches, or an invalid key, the code is simply not yet
// computable - Permuted and Code stay empty rather than coming out malformed.
func Compute(completed []string, key string) Result {
	res := Result{Digits: BuildDigits(completed)}
	permuted, err := ApplyPermutation(res.Digits, key)
	if err != nil {
		return res
	}
	res.Permuted = permuted
	res.Code = permuted[:CodeLength]
	return res
}

// CodeMatches checks a submitted code against the computed code and the
// operator override code. The override is an escape hatch for recovery; an
// empty computed or override value never matches.
func CodeMatches(submitted, computed, override string) bool {
	submitted = strings.TrimSpace(submitted)
	if submitted == "" {
		return false
	}
	if computed != "" && submitted == computed {
		return true
	}
	if override != "" && submitted == override {
		return true
	}
	return false
}
