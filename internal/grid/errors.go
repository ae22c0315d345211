package grid

import "fmt"

// FieldNotFoundError reports a named scalar field absent from both the point
// and cell attribute collections.
type FieldNotFoundError struct {
	Name string
}

func (e *FieldNotFoundError) Error() string {
	return fmt.Sprintf("field %q not found in point or cell data", e.Name)
}

// InvalidParameterError reports a caller-supplied parameter with the wrong
// shape or an out-of-range value. Raised before any engine execution starts.
type InvalidParameterError struct {
	Param  string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Param, e.Reason)
}

// EngineExecutionError wraps a failure reported by the processing engine
// during execution. The engine's diagnostic is preserved via Unwrap.
type EngineExecutionError struct {
	Op  string
	Err error
}

func (e *EngineExecutionError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *EngineExecutionError) Unwrap() error { return e.Err }
