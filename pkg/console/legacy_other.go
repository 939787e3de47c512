//go:build !windows

package console

import (
	"io"

	"github.com/arthur-debert/tinta/pkg/errors"
)

// NewWin32Term is only available on Windows
func NewWin32Term(io.Writer) (LegacyTerm, error) {
	return nil, errors.New(errors.ErrCapabilityMismatch, "legacy console requires windows")
}
