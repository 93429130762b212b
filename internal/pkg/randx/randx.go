/*
Package randx provides identifier generation and validation helpers.

It generates object-storage keys for uploaded images and validates the hex
identifiers clients pass in URL parameters.
*/
package randx

import (
	"fmt"

	"github.com/google/uuid"
)

// ObjectIDHexLength is the length of a Mongo ObjectID rendered as hex.
const ObjectIDHexLength = 24

// ImageKey generates a unique object-storage key under the given folder.
// Every stored image is JPEG after normalization, so the extension is fixed.
func ImageKey(folder string) string {
	return fmt.Sprintf("%s/%s.jpg", folder, uuid.New().String())
}

// IsValidObjectIDHex reports whether s looks like a Mongo ObjectID in hex
// form. Used to reject malformed URL parameters before hitting the store.
func IsValidObjectIDHex(s string) bool {
	if len(s) != ObjectIDHexLength {
		return false
	}

	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}

	return true
}
