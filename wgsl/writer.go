package wgsl

import (
	"fmt"
	"strings"

	"github.com/boingboomtschak/tekhne/cuda"
)

// Writer generates WGSL source code from a CUDA kernel AST.
//
// A single Writer may be reused sequentially across the kernels of one
// program; all per-kernel state (nesting depth, identifier set) is reset
// at the start of each kernel. Writers must not be shared between
// concurrent compilations.
type Writer struct {
	opts Options
	out  strings.Builder
	info Info

	// Per-kernel state, reset by writeKernel.
	indent int
	idents map[string]struct{}
	kspan  cuda.Span

	// multi is set when the program has more than one kernel, which
	// suffixes each entry point with its kernel name.
	multi bool
}

// newWriter creates a new WGSL writer.
func newWriter(opts Options) *Writer {
	return &Writer{opts: opts}
}

// String returns the generated WGSL source code.
func (w *Writer) String() string {
	return w.out.String()
}

// writeProgram generates WGSL for every kernel in declaration order.
func (w *Writer) writeProgram(prog *cuda.Program) error {
	w.multi = len(prog.Kernels) > 1
	for i, kernel := range prog.Kernels {
		if i > 0 {
			w.write("\n")
		}
		if err := w.writeKernel(kernel); err != nil {
			return err
		}
	}
	return nil
}

// writeKernel generates the bindings, workgroup variables, and entry
// point for one kernel.
func (w *Writer) writeKernel(k *cuda.KernelSpec) error {
	// Reset per-kernel state.
	w.indent = 0
	w.idents = cuda.Identifiers(k)
	w.kspan = k.Span

	if err := w.writeBindings(k); err != nil {
		return err
	}
	w.writeWorkgroupVars(k)

	w.writeLine("@compute @workgroup_size(%s)", w.workgroupSize())

	w.writeIndent()
	w.write("fn %s(%s) {\n", w.entryName(k), w.entryParams())
	w.pushIndent()
	for _, stmt := range k.Body {
		w.writeStatement(stmt)
	}
	w.popIndent()
	w.writeLine("}")

	if w.indent != 0 {
		return fmt.Errorf("wgsl: unbalanced nesting depth %d after kernel %q", w.indent, k.Decl.Name)
	}
	return nil
}

// entryName returns the entry-point symbol for a kernel. Single-kernel
// programs use the configured entry name alone; multi-kernel programs
// suffix it with the kernel name to keep entry symbols distinct.
func (w *Writer) entryName(k *cuda.KernelSpec) string {
	if w.multi {
		return w.opts.EntryPoint + "_" + k.Decl.Name
	}
	return w.opts.EntryPoint
}

// entryParams renders the injected builtin parameter list. Each injected
// parameter keeps its source identifier so body references bind to it
// unchanged.
func (w *Writer) entryParams() string {
	injected := w.injectedBuiltins(w.idents)
	parts := make([]string, 0, len(injected))
	for _, b := range injected {
		parts = append(parts, fmt.Sprintf("@builtin(%s) %s : %s", b.Attribute, b.Name, b.Type))
	}
	return strings.Join(parts, ", ")
}

// writeBindings emits one module-scope binding per kernel argument:
// pointer arguments become read-write storage arrays, value arguments
// become uniforms. Binding slots follow argument order in group 0.
func (w *Writer) writeBindings(k *cuda.KernelSpec) error {
	args := k.Decl.Args
	for i, arg := range args {
		if arg.Type.Pointer {
			w.writeLine("@group(0) @binding(%d) var<storage, read_write> %s : array<%s>;",
				i, arg.Name, w.mapType(arg.Type.Name))
		} else {
			w.writeLine("@group(0) @binding(%d) var<uniform> %s : %s;",
				i, arg.Name, w.mapType(arg.Type.Name))
		}
	}
	if len(args) > 0 {
		w.write("\n")
	}
	return nil
}

// writeWorkgroupVars hoists __shared__ declarations to module scope as
// var<workgroup>. WGSL forbids workgroup storage in function scope, so
// the declaration site inside the body emits nothing.
func (w *Writer) writeWorkgroupVars(k *cuda.KernelSpec) {
	shared := sharedDecls(k)
	for _, decl := range shared {
		if decl.Init != nil {
			w.unresolvedAt(decl.Span, "__shared__ initializer has no WGSL equivalent; initialize from the entry point instead")
		}
		for _, name := range decl.Names {
			w.writeLine("var<workgroup> %s : %s;", name, w.declType(decl.Type, decl.Dims))
		}
	}
	if len(shared) > 0 {
		w.write("\n")
	}
}

// sharedDecls collects every __shared__ declaration in a kernel body.
func sharedDecls(k *cuda.KernelSpec) []*cuda.DeclStmt {
	var out []*cuda.DeclStmt
	for _, stmt := range k.Body {
		cuda.Inspect(stmt, func(n cuda.Node) bool {
			if d, ok := n.(*cuda.DeclStmt); ok && d.Qualifier == cuda.TokenShared {
				out = append(out, d)
			}
			return true
		})
	}
	return out
}

// Diagnostics

// degradedAt records a degraded-output fallback: a node kind without a
// dedicated translation rule was emitted as the concatenation of its
// children. Non-fatal; generation continues.
func (w *Writer) degradedAt(span cuda.Span, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	w.opts.Logger.Warn("degraded output", "detail", msg, "line", span.Start.Line)
	w.info.Diagnostics = append(w.info.Diagnostics, Diagnostic{
		Kind:    DiagDegraded,
		Message: msg,
		Span:    span,
	})
}

// unresolvedAt records an unresolved-mapping condition: a builtin or
// storage-qualifier concept with no defined WGSL equivalent. Surfaced
// distinctly from the degraded fallback.
func (w *Writer) unresolvedAt(span cuda.Span, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	w.opts.Logger.Warn("unresolved mapping", "detail", msg, "line", span.Start.Line)
	w.info.Diagnostics = append(w.info.Diagnostics, Diagnostic{
		Kind:    DiagUnresolved,
		Message: msg,
		Span:    span,
	})
}

// unresolvedf records an unresolved-mapping condition at the current
// kernel's position.
func (w *Writer) unresolvedf(format string, args ...any) {
	w.unresolvedAt(w.kspan, format, args...)
}

// Output helpers

// write writes text to the output. If args are provided, uses fmt.Fprintf.
//
//nolint:goprintffuncname
func (w *Writer) write(format string, args ...any) {
	if len(args) == 0 {
		w.out.WriteString(format)
	} else {
		fmt.Fprintf(&w.out, format, args...)
	}
}

// writeLine writes an indented line with optional format args and a newline.
//
//nolint:goprintffuncname
func (w *Writer) writeLine(format string, args ...any) {
	w.writeIndent()
	if len(args) == 0 {
		w.out.WriteString(format)
	} else {
		fmt.Fprintf(&w.out, format, args...)
	}
	w.out.WriteByte('\n')
}

// writeIndent writes the current indentation.
func (w *Writer) writeIndent() {
	for i := 0; i < w.indent; i++ {
		w.out.WriteString(w.opts.IndentUnit)
	}
}

// pushIndent increases indentation.
func (w *Writer) pushIndent() {
	w.indent++
}

// popIndent decreases indentation.
func (w *Writer) popIndent() {
	if w.indent > 0 {
		w.indent--
	}
}
