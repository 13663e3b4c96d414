package server

import (
	"fmt"
	"strings"
)

// validateBox enforces the structural invariants of a box submission:
// the box and every item must carry a non-empty id and name. Image
// content is not inspected here. Runs before any upload or insert so a
// doomed request produces no side effects.
func validateBox(sub boxSubmission) error {
	if strings.TrimSpace(sub.ID) == "" || strings.TrimSpace(sub.Name) == "" {
		return fmt.Errorf("%w: id and name are required", ErrInvalidBox)
	}
	for i, item := range sub.Items {
		if strings.TrimSpace(item.ID) == "" || strings.TrimSpace(item.Name) == "" {
			return fmt.Errorf("%w: item %d must have id and name", ErrInvalidBox, i)
		}
	}
	return nil
}
