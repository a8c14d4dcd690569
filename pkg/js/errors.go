package js

import "fmt"

// SyntaxError reports a token the parser did not expect.
type SyntaxError struct {
	Pos      int
	Expected string
	Found    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d: expected %s, found %s", e.Pos, e.Expected, e.Found)
}

// RuntimeError reports a failed evaluation: an unknown identifier, a bad
// operand or a call of something that is not a function.
type RuntimeError struct {
	Msg string
}

func (e *RuntimeError) Error() string {
	return "runtime error: " + e.Msg
}

func runtimeErrorf(format string, args ...any) *RuntimeError {
	return &RuntimeError{Msg: fmt.Sprintf(format, args...)}
}

// ScriptError ties a syntax or runtime error to the script or handler that
// raised it.
type ScriptError struct {
	Source string
	Err    error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

func (e *ScriptError) Unwrap() error { return e.Err }
