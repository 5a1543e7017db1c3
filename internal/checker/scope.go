package checker

import "sort"

// SymbolKind represents the kind of symbol
type SymbolKind int

const (
	SymVariable SymbolKind = iota
	SymParameter
	SymFunction
	SymClass
)

// String returns the string representation of the symbol kind
func (sk SymbolKind) String() string {
	switch sk {
	case SymVariable:
		return "variable"
	case SymParameter:
		return "parameter"
	case SymFunction:
		return "function"
	case SymClass:
		return "class"
	default:
		return "unknown"
	}
}

// Symbol represents a named entity in the symbol table.
//
// ParamCount is meaningful only for SymFunction symbols: it is the declared
// parameter count used for arity checking at call sites, with 0 doubling as
// the "variadic, skip arity checking" sentinel.
type Symbol struct {
	Name       string
	Kind       SymbolKind
	Type       TypeTag
	DeclLine   int
	ParamCount int
}

// Scope represents a single lexical scope with a parent link. Scopes are
// chained: each block creates a child Scope that delegates resolution upward.
// Exiting a scope just returns the parent; the child becomes unreachable and
// is collected normally.
type Scope struct {
	parent  *Scope
	symbols map[string]*Symbol
}

// NewScope creates a new scope with an optional parent
func NewScope(parent *Scope) *Scope {
	return &Scope{
		parent:  parent,
		symbols: make(map[string]*Symbol),
	}
}

// Define adds a symbol to the current scope, overwriting any existing binding
// at this level. It never checks for prior existence; callers that care about
// redeclaration must call ResolveLocal first.
func (s *Scope) Define(sym *Symbol) {
	s.symbols[sym.Name] = sym
}

// Resolve looks up a symbol in the current scope and parent scopes.
// Returns nil if the symbol is not found. Innermost match wins (shadowing).
func (s *Scope) Resolve(name string) *Symbol {
	if sym, ok := s.symbols[name]; ok {
		return sym
	}
	if s.parent != nil {
		return s.parent.Resolve(name)
	}
	return nil
}

// ResolveLocal looks up a symbol only in the current scope (not parent scopes)
func (s *Scope) ResolveLocal(name string) *Symbol {
	if sym, ok := s.symbols[name]; ok {
		return sym
	}
	return nil
}

// Enter creates and returns a new child scope (push)
func (s *Scope) Enter() *Scope {
	return NewScope(s)
}

// Exit returns the parent scope (pop). Exiting the root scope is a
// programming error and panics.
func (s *Scope) Exit() *Scope {
	if s.parent == nil {
		panic("checker: cannot exit the global scope")
	}
	return s.parent
}

// AllNames returns every name visible from this scope, including parent
// scopes, sorted for deterministic suggestion ranking.
func (s *Scope) AllNames() []string {
	seen := make(map[string]bool)
	for sc := s; sc != nil; sc = sc.parent {
		for name := range sc.symbols {
			seen[name] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LocalNames returns names defined in this scope only, sorted
func (s *Scope) LocalNames() []string {
	names := make([]string, 0, len(s.symbols))
	for name := range s.symbols {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
