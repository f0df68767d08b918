package report

import "fmt"

// IncompleteReportError reports assembly invoked before a prerequisite
// pipeline stage filled its field. It signals a sequencing bug upstream,
// not bad market data.
type IncompleteReportError struct {
	Field string
}

func (e *IncompleteReportError) Error() string {
	return fmt.Sprintf("cannot assemble report: prerequisite field %q is unset", e.Field)
}
