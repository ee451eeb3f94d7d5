// Package wgsl generates WGSL compute-shader source from a parsed CUDA
// kernel program.
package wgsl

import (
	"fmt"
	"log/slog"

	"github.com/boingboomtschak/tekhne/cuda"
)

// DiagnosticKind classifies generation-stage diagnostics.
type DiagnosticKind uint8

const (
	// DiagDegraded reports a node kind with no dedicated translation
	// rule; output degraded to child concatenation.
	DiagDegraded DiagnosticKind = iota

	// DiagUnresolved reports a builtin or storage-qualifier concept with
	// no defined WGSL equivalent.
	DiagUnresolved
)

// String returns the diagnostic kind name.
func (k DiagnosticKind) String() string {
	switch k {
	case DiagDegraded:
		return "degraded"
	case DiagUnresolved:
		return "unresolved"
	default:
		return "unknown"
	}
}

// Diagnostic records one recoverable generation-stage condition.
type Diagnostic struct {
	Kind    DiagnosticKind
	Message string
	Span    cuda.Span
}

// Info reports generation diagnostics alongside the output text. An
// empty Diagnostics slice means full translation coverage.
type Info struct {
	Diagnostics []Diagnostic
}

// Degraded reports whether any degraded-output fallback fired.
func (i *Info) Degraded() bool {
	for _, d := range i.Diagnostics {
		if d.Kind == DiagDegraded {
			return true
		}
	}
	return false
}

// Options configures WGSL code generation.
type Options struct {
	// IndentUnit is the indentation string per nesting level.
	// Defaults to four spaces if empty.
	IndentUnit string

	// EntryPoint is the generated entry function name. With more than
	// one kernel in a program, each entry point is suffixed with its
	// kernel name. Defaults to "main" if empty.
	EntryPoint string

	// WorkgroupSize is emitted in the @workgroup_size attribute.
	// Defaults to 64x1x1 if all zero.
	WorkgroupSize [3]uint32

	// TypeMap maps source scalar type names to WGSL type names. Names
	// absent from the map pass through unchanged. Defaults to
	// DefaultTypeMap() if nil.
	TypeMap map[string]string

	// Logger receives degraded-output and unresolved-mapping warnings.
	// Defaults to a discard logger if nil.
	Logger *slog.Logger
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{
		IndentUnit:    "    ",
		EntryPoint:    "main",
		WorkgroupSize: [3]uint32{64, 1, 1},
		TypeMap:       DefaultTypeMap(),
	}
}

func (o *Options) fillDefaults() {
	if o.IndentUnit == "" {
		o.IndentUnit = "    "
	}
	if o.EntryPoint == "" {
		o.EntryPoint = "main"
	}
	if o.WorkgroupSize == [3]uint32{} {
		o.WorkgroupSize = [3]uint32{64, 1, 1}
	}
	if o.TypeMap == nil {
		o.TypeMap = DefaultTypeMap()
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
}

// Compile generates WGSL source for the program.
//
// Recoverable gaps (nodes without a dedicated rule, concepts without a
// WGSL equivalent) degrade locally, are logged, and are reported in
// Info; they never abort generation. The returned error is reserved for
// conditions that make the output structurally invalid.
func Compile(prog *cuda.Program, opts Options) (string, *Info, error) {
	if prog == nil {
		return "", nil, fmt.Errorf("wgsl: nil program")
	}
	opts.fillDefaults()

	w := newWriter(opts)
	if err := w.writeProgram(prog); err != nil {
		return "", nil, err
	}
	return w.String(), &w.info, nil
}
