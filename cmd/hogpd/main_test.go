package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatVersion(t *testing.T) {
	assert.Equal(t, "v1.2.3", formatVersion("1.2.3"))
	assert.Equal(t, "dev", formatVersion("dev"))
	assert.Equal(t, "", formatVersion(""))
}

func TestFormatUserError(t *testing.T) {
	assert.Equal(t, "", FormatUserError(nil))
	assert.Equal(t, "parse config: bad input", FormatUserError(errors.New("failed to parse config: bad input")))

	wrapped := fmt.Errorf("%w: hci0: operation not permitted", ErrAdapterUnavailable)
	assert.Contains(t, FormatUserError(wrapped), "permission")
}
