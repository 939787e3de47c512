//go:build !windows

package profile

import "io"

func detectLegacy(io.Writer) bool { return false }
