package audit

import (
	"fmt"

	"vaultkeep/internal/core"
)

// New selects an auditor backend. A disabled config yields the noop auditor
// so callers never have to nil-check.
func New(enabled bool, auditType, path string) (core.Auditor, error) {
	if !enabled {
		return NewNoopAuditor(), nil
	}
	switch auditType {
	case "memory":
		return NewInMemoryAuditor(), nil
	case "file":
		return NewFileAuditor(path)
	default:
		return nil, fmt.Errorf("unknown audit type %q", auditType)
	}
}
