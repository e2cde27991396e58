package generics

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/cottand/jgenerics/types"
)

// enableDebugErrorPrinting makes FormatWithCode include the frame that raised the failure
const enableDebugErrorPrinting bool = false

type ErrCode int

const (
	None ErrCode = iota
	ArityMismatch
	NoHierarchyPath
)

func (c ErrCode) String() string {
	switch c {
	case ArityMismatch:
		return "arity mismatch"
	case NoHierarchyPath:
		return "no hierarchy path"
	}
	return "unclassified"
}

// InvariantError is an irrecoverable failure of the engine: a situation that
// earlier checking should have ruled out, such as a declared/supplied arity
// mismatch or a claimed subtype with no path through the hierarchy.
//
// It is never used to report that two types are incompatible; that is a plain false.
type InvariantError struct {
	Code    ErrCode
	Message string
	// First and Second are the types involved, either may be nil
	First  *types.TypeRef
	Second *types.TypeRef
	stack  []byte
}

func (e *InvariantError) Error() string {
	sb := &strings.Builder{}
	sb.WriteString("generics invariant violated: ")
	sb.WriteString(e.Message)
	if e.First != nil {
		sb.WriteString("\n\tfirst: ")
		sb.WriteString(types.ShowBounded(e.First))
	}
	if e.Second != nil {
		sb.WriteString("\n\tsecond: ")
		sb.WriteString(types.ShowBounded(e.Second))
	}
	return sb.String()
}

// FormatWithCode renders e prefixed by its error code, as in (G001) message
func FormatWithCode(e *InvariantError) string {
	if enableDebugErrorPrinting && e.stack != nil {
		frames := strings.Split(string(e.stack), "\n")
		if len(frames) > 8 {
			return fmt.Sprintf("%s:(G%03d) %s", strings.TrimSpace(frames[8]), e.Code, e.Error())
		}
	}
	return fmt.Sprintf("(G%03d) %s", e.Code, e.Error())
}

// fail aborts the current engine operation. The panic is recovered by the
// exported Engine method that started the operation, see recoverInvariant.
func fail(code ErrCode, first, second *types.TypeRef, format string, args ...any) {
	panic(&InvariantError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		First:   first,
		Second:  second,
		stack:   debug.Stack(),
	})
}

// recoverInvariant turns a panic raised by fail into an error assigned to err.
// Any other panic is re-raised.
func (e *Engine) recoverInvariant(err *error) {
	r := recover()
	if r == nil {
		return
	}
	failure, ok := r.(*InvariantError)
	if !ok {
		panic(r)
	}
	e.logger.Debug("invariant violated", "code", failure.Code.String(), "message", failure.Message)
	*err = failure
}
