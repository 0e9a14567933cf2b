package services

import (
	"fmt"
	"strings"

	"github.com/Cyclone1070/sqlagent/internal/tool"
)

// FormatToolSpecs lists tools one per line as "name: first line of description".
func FormatToolSpecs(specs []tool.Spec) string {
	lines := make([]string, 0, len(specs))
	for _, s := range specs {
		desc := strings.TrimSpace(s.Description)
		if i := strings.IndexByte(desc, '\n'); i >= 0 {
			desc = strings.TrimSpace(desc[:i])
		}
		if desc == "" {
			lines = append(lines, s.Name)
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s", s.Name, desc))
	}
	return strings.Join(lines, "\n")
}
