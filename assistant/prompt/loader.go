package prompt

import (
	_ "embed"
	"strings"
)

//go:embed template/system.txt
var systemRaw string

// SystemInstruction returns the assistant's persona/constraints text.
// The embed is compile-time, so this is safe to call concurrently.
func SystemInstruction() string {
	return strings.TrimSpace(systemRaw)
}
