package compliance

import (
	"fmt"

	"github.com/google/uuid"
)

// ConfigError reports a malformed requirement rule (unknown op, assertion
// without a field). It is raised when a rule set is compiled, never during
// evaluation, so a bad rule set fails before any document is checked.
type ConfigError struct {
	RuleID uuid.UUID
	Detail string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("requirement rule %s: %s", e.RuleID, e.Detail)
}
