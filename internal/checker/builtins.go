package checker

// builtin is one pre-seeded global function. Arity 0 marks a variadic
// built-in: arity checking is skipped for it at call sites.
type builtin struct {
	name  string
	arity int
}

// builtins are registered in the global scope before analysis so that calls
// to them resolve. Arities mirror the runtime's function table.
var builtins = []builtin{
	// I/O
	{"print", 0}, // variadic
	{"input", 1},
	// Type conversions
	{"str", 1},
	{"int", 1},
	{"float", 1},
	{"bool", 1},
	{"type", 1},
	// List operations
	{"length", 1},
	{"append", 2},
	{"pop", 2},
	{"insert", 3},
	{"sort", 1},
	{"reverse", 1},
	{"sum", 1},
	{"min", 1},
	{"max", 1},
	// String operations
	{"upper", 1},
	{"lower", 1},
	{"split", 2},
	{"join", 2},
	{"replace", 3},
	// Math
	{"abs", 1},
	{"round", 2},
	// Range
	{"range", 1},
}

// registerBuiltins seeds the global scope with built-in function symbols
func registerBuiltins(scope *Scope) {
	for _, b := range builtins {
		scope.Define(&Symbol{
			Name:       b.name,
			Kind:       SymFunction,
			Type:       TagAny,
			DeclLine:   0,
			ParamCount: b.arity,
		})
	}
}
