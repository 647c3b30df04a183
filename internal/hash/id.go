// Package hash derives stable 64-bit identifiers from parameter labels.
//
// The result blob codec tags each free-parameter column with the xxHash64 of
// its "component.parameter" label, so a decoded blob can be matched back to a
// model without carrying the label strings in every record.
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given label.
func ID(label string) uint64 {
	return xxhash.Sum64String(label)
}
