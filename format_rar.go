//go:build !squish_nounrar

package squish

// rarSupported gates whether the rar extension is part of the catalog.
// Build with -tags squish_nounrar to compile rar support out.
const rarSupported = true
