//go:build squish_nounrar

package squish

const rarSupported = false
