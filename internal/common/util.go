// Package common contains small helpers shared across client components.
package common

// WipeByteArray zeroes the given buffer in place. Callers use it to scrub
// passwords read from the terminal once they are no longer needed.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
