// Package chargeid converts between the registry's sequential charge numbers
// and the public charge reference printed on search results.
package chargeid

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Prefix starts every public charge reference.
const Prefix = "LLC-"

// Vowels are left out so references never spell words.
const alphabet = "0123456789BCDFGHJKLMNPQRSTVWXYZ"

var base = int64(len(alphabet))

var ErrInvalid = errors.New("invalid charge reference")

// Encode renders a charge number as its public reference.
func Encode(id int64) (string, error) {
	if id < 0 {
		return "", fmt.Errorf("%w: negative charge number %d", ErrInvalid, id)
	}
	if id == 0 {
		return Prefix + alphabet[:1], nil
	}
	var buf [16]byte
	i := len(buf)
	for id > 0 {
		i--
		buf[i] = alphabet[id%base]
		id /= base
	}
	return Prefix + string(buf[i:]), nil
}

// EncodeString encodes a charge number given in its decimal form.
func EncodeString(id string) (string, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
	if err != nil {
		return "", fmt.Errorf("%w: %q is not a charge number", ErrInvalid, id)
	}
	return Encode(n)
}

// Decode recovers the charge number from a public reference. The prefix is
// optional and matching is case-insensitive.
func Decode(ref string) (int64, error) {
	s := strings.ToUpper(strings.TrimSpace(ref))
	s = strings.TrimPrefix(s, Prefix)
	if s == "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalid, ref)
	}
	var id int64
	for _, r := range s {
		d := strings.IndexRune(alphabet, r)
		if d < 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalid, ref)
		}
		if id > (1<<63-1-int64(d))/base {
			return 0, fmt.Errorf("%w: %q overflows", ErrInvalid, ref)
		}
		id = id*base + int64(d)
	}
	return id, nil
}
