package nodeid

import (
	"fmt"
	"regexp"
	"strconv"
)

// addressRegex matches the canonical `source:node` form.
var addressRegex = regexp.MustCompile(`^(\d+):(\d+)$`)

// Parse creates an Address by parsing its canonical string representation.
func Parse(rawID string) (Address, error) {
	if rawID == "" {
		return Zero, fmt.Errorf("identifier cannot be empty")
	}

	matches := addressRegex.FindStringSubmatch(rawID)
	if matches == nil {
		return Zero, fmt.Errorf("invalid node address format: %q", rawID)
	}

	source, err := strconv.ParseInt(matches[1], 10, 32)
	if err != nil {
		return Zero, fmt.Errorf("invalid source index in %q: %w", rawID, err)
	}
	node, err := strconv.ParseInt(matches[2], 10, 32)
	if err != nil {
		return Zero, fmt.Errorf("invalid node index in %q: %w", rawID, err)
	}

	addr := New(int32(source), int32(node))
	if addr.IsZero() {
		return Zero, fmt.Errorf("node address %q uses a reserved zero index", rawID)
	}
	return addr, nil
}
