package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/blueprintgo/internal/ctxlog"
	"github.com/specialistvlad/blueprintgo/internal/node"
)

// ValidateRegistry instantiates one default record of every node type and
// checks its port declaration: names must be present and unique per node.
func (r *Registry) ValidateRegistry(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, name := range r.Names() {
		src := r.types[name].NewSource()
		id := src.AddNode()
		record, err := src.Node(id)
		if err != nil {
			errs = append(errs, fmt.Sprintf("node type '%s': %v", name, err))
			continue
		}

		ports := node.Declare(record)
		if len(ports) == 0 {
			logger.Debug("Node type declares no default ports.", "type", name)
		}

		seen := make(map[string]int, len(ports))
		for i, p := range ports {
			if p.Name == "" {
				errs = append(errs, fmt.Sprintf("node type '%s': port %d has no name", name, i))
				continue
			}
			if prev, ok := seen[p.Name]; ok {
				errs = append(errs, fmt.Sprintf("node type '%s': port '%s' declared at %d and %d", name, p.Name, prev, i))
				continue
			}
			seen[p.Name] = i
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	logger.Debug("Registry validated.", "types", len(r.types))
	return nil
}
