// Package normalize merges raw extraction fragments into a canonical
// profile with stable, collision-resistant identities and no information
// loss across merges.
package normalize

import "strconv"

// hashString is the frozen ID hash: a 32-bit rolling multiply-xor over the
// Unicode code points of s, rendered in base 36.
//
//	h(0) = 0
//	h(i) = (h(i-1) * 31) XOR codepoint(i)
//
// The algorithm is pinned. Any change rewrites every experience and
// realisation ID in every stored profile, which breaks caching and list
// reconciliation in consumers. Do not modify.
func hashString(s string) string {
	var h uint32
	for _, r := range s {
		h = h*31 ^ uint32(r)
	}
	return strconv.FormatUint(uint64(h), 36)
}
