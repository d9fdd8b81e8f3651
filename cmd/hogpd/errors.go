package main

import (
	"errors"
	"strings"
)

// Command-level errors
var (
	// ErrAdapterUnavailable indicates the HCI adapter could not be opened,
	// typically a permissions or missing-hardware problem rather than a bug.
	ErrAdapterUnavailable = errors.New("bluetooth adapter unavailable")
)

// FormatUserError strips low-level wrapping noise for terminal display.
func FormatUserError(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrAdapterUnavailable) {
		return "bluetooth adapter unavailable (is the adapter present and do you have permission to use it?)"
	}
	msg := err.Error()
	return strings.TrimPrefix(msg, "failed to ")
}
