package wgsl

import (
	"fmt"
	"strings"

	"github.com/boingboomtschak/tekhne/cuda"
)

// DefaultTypeMap returns the source-to-WGSL scalar type remapping.
// Type names absent from the map pass through unchanged.
func DefaultTypeMap() map[string]string {
	return map[string]string{
		"int":   "i32",
		"uint":  "u32",
		"float": "f32",
		"bool":  "bool",
	}
}

// mapType remaps a scalar type name through the options table.
func (w *Writer) mapType(name string) string {
	if mapped, ok := w.opts.TypeMap[name]; ok {
		return mapped
	}
	return name
}

// declType renders the WGSL type for a declaration: the remapped scalar
// wrapped in array<...> once per dimension, outermost dimension first.
func (w *Writer) declType(typ *cuda.Type, dims []cuda.Expr) string {
	out := w.mapType(typ.Name)
	for i := len(dims) - 1; i >= 0; i-- {
		out = fmt.Sprintf("array<%s, %s>", out, w.expr(dims[i]))
	}
	return out
}

// workgroupSize renders the @workgroup_size attribute arguments.
func (w *Writer) workgroupSize() string {
	size := w.opts.WorkgroupSize
	parts := []string{fmt.Sprint(size[0]), fmt.Sprint(size[1]), fmt.Sprint(size[2])}
	return strings.Join(parts, ", ")
}
