//go:build !windows

package pathreg

import (
	"errors"

	"github.com/thoughtspot/cs-tools-bootstrap/internal/messages"
)

// unsupportedRegistry stands in for the Windows registry elsewhere.
type unsupportedRegistry struct{}

// NewRegistry returns a Registry whose operations fail on this platform.
func NewRegistry() Registry {
	return unsupportedRegistry{}
}

func (unsupportedRegistry) ReadPath() (string, bool, error) {
	return "", false, errors.New(messages.PathregRegistryUnsupported)
}

func (unsupportedRegistry) WritePath(string) error {
	return errors.New(messages.PathregRegistryUnsupported)
}

func (unsupportedRegistry) Broadcast() error {
	return errors.New(messages.PathregRegistryUnsupported)
}
