package wgsl

// builtin describes how one source builtin variable maps to a WGSL
// entry-point parameter. The injected parameter keeps the source name so
// body references bind to it without rewriting.
type builtin struct {
	Name      string // source identifier
	Attribute string // WGSL @builtin attribute name; empty if unresolved
	Type      string
}

// builtinTable is the fixed configuration of recognized source builtin
// variable names, in injection order. blockDim has no one-to-one WGSL
// builtin; the workgroup size must reach the shader through a uniform
// binding instead, so it is carried with an empty attribute and surfaced
// as an unresolved mapping when referenced.
var builtinTable = []builtin{
	{Name: "threadIdx", Attribute: "local_invocation_id", Type: "vec3<u32>"},
	{Name: "blockIdx", Attribute: "workgroup_id", Type: "vec3<u32>"},
	{Name: "blockDim", Attribute: "", Type: "vec3<u32>"},
	{Name: "gridDim", Attribute: "num_workgroups", Type: "vec3<u32>"},
}

// injectedBuiltins intersects a kernel's identifier set with the builtin
// table, returning the parameters to inject in table order. The result
// depends only on set membership, so repeated calls for the same set are
// identical and never duplicate a parameter.
func (w *Writer) injectedBuiltins(idents map[string]struct{}) []builtin {
	var out []builtin
	for _, b := range builtinTable {
		if _, ok := idents[b.Name]; !ok {
			continue
		}
		if b.Attribute == "" {
			w.unresolvedf("builtin %q has no WGSL builtin equivalent; bind the workgroup size as a uniform", b.Name)
			continue
		}
		out = append(out, b)
	}
	return out
}
