package pantry

import "strings"

// NormalizeItemName lower-cases a name and collapses whitespace so that
// receipt lines and manual entries for the same product share one key.
func NormalizeItemName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}
