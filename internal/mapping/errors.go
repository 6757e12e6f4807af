package mapping

import "fmt"

// ConfigError reports a malformed template: a bad path expression, a
// cardinality mismatch between from and to, or an unknown transform name.
// It is raised when a template is compiled, never during a transform run,
// so a bad template fails before any record is processed.
type ConfigError struct {
	RuleIndex int // -1 when the error is not tied to a single rule
	Detail    string
}

func (e *ConfigError) Error() string {
	if e.RuleIndex < 0 {
		return fmt.Sprintf("mapping template: %s", e.Detail)
	}
	return fmt.Sprintf("mapping template: rule %d: %s", e.RuleIndex, e.Detail)
}

// ResolutionError reports a source path that the target schema marks required
// but that cannot be resolved against the source graph. It is per-record and
// recoverable: the caller skips the record and continues with others.
type ResolutionError struct {
	Path   string
	Target string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("required source path %q cannot be resolved (target %q)", e.Path, e.Target)
}
