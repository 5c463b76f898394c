package store

import "fmt"

// Index values are embedded in badger keys, so range and ordered scans
// rely on lexicographic byte order. Numeric values are zero-padded to a
// fixed width so that byte order matches numeric order.

// sortableMillis encodes an epoch-millisecond timestamp as a fixed-width
// decimal string. 20 digits covers the full int64 range.
func sortableMillis(millis int64) string {
	if millis < 0 {
		millis = 0
	}
	return fmt.Sprintf("%020d", millis)
}

// sortableOrder encodes a folder position. Positions are small
// non-negative ints; 10 digits is plenty.
func sortableOrder(order int) string {
	if order < 0 {
		order = 0
	}
	return fmt.Sprintf("%010d", order)
}

// boolIndexValue encodes a boolean flag for index keys.
func boolIndexValue(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
