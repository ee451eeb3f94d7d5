package cuda

// Identifiers returns the set of distinct identifier names referenced
// anywhere in one kernel: argument names, declared names, and every
// identifier inside expressions and nested blocks. Member names after
// '.' are not identifier references and are excluded.
//
// The pass is pure and runs fresh per kernel; nothing accumulates across
// calls.
func Identifiers(k *KernelSpec) map[string]struct{} {
	names := make(map[string]struct{})

	for _, arg := range k.Decl.Args {
		names[arg.Name] = struct{}{}
	}

	Inspect(k, func(n Node) bool {
		switch n := n.(type) {
		case *Ident:
			names[n.Name] = struct{}{}
		case *DeclStmt:
			for _, name := range n.Names {
				names[name] = struct{}{}
			}
		}
		return true
	})

	return names
}
