// Package engine carries small host-facing helpers for the driver:
// platform identification for diagnostic banners, and identifier
// similarity for hints on surviving locals named like an eliminated one.
package engine

import "runtime"

// Platform identifies the host the driver is running on, reported in
// -version output.
type Platform struct {
	Arch string
	OS   string
}

// Host returns the platform the driver is currently running on.
func Host() Platform {
	return Platform{Arch: runtime.GOARCH, OS: runtime.GOOS}
}

func (p Platform) String() string {
	return p.Arch + "-" + p.OS
}
