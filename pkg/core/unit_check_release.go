//go:build !unitcheck

package core

// verifyUnit is a no-op outside unitcheck builds
func verifyUnit(Vec3) {}
