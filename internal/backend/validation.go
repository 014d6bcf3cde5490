package backend

import (
	"fmt"
	"strings"

	"github.com/bantamhq/studiodash/internal/core"
)

// Validate checks the request locally before it is sent: a base path, a
// non-blank code and a known project type. Codes are sent as typed; the
// backend folds case, spaces and hyphens itself.
func (r InitRequest) Validate() error {
	if strings.TrimSpace(r.BasePath) == "" {
		return core.ErrEmptyBasePath
	}
	if err := core.ValidateProjectCode(r.ProjectCode); err != nil {
		return err
	}
	if !r.ProjectType.Valid() {
		return fmt.Errorf("unknown project type %q", r.ProjectType)
	}
	return nil
}
