package diagnostic

import (
	"fmt"
	"strings"
)

// Kind classifies a semantic diagnostic
type Kind int

const (
	UndefinedName Kind = iota // name not resolvable in any enclosing scope
	TypeCheck                 // operator/operand type mismatch
	Redefinition              // duplicate declaration in one scope
	Semantic                  // control-context misuse (break/continue/return/this/super)
)

// String returns the string representation of the diagnostic kind
func (k Kind) String() string {
	switch k {
	case UndefinedName:
		return "undefined-name"
	case TypeCheck:
		return "type-check"
	case Redefinition:
		return "redefinition"
	case Semantic:
		return "semantic"
	default:
		return "unknown"
	}
}

// Diagnostic represents a single semantic error found during analysis
type Diagnostic struct {
	Kind         Kind
	Message      string
	Line         int
	Suggestions  []string // for UndefinedName: up to 3 "did you mean" candidates
	OriginalLine int      // for Redefinition: line of the first declaration
}

// Diagnostics manages a collection of diagnostic messages.
// Diagnostics are data, not exceptions: the analyzer accumulates them and
// keeps walking, so one run surfaces every independent problem.
type Diagnostics struct {
	items []Diagnostic
}

// New creates a new empty Diagnostics collection
func New() *Diagnostics {
	return &Diagnostics{
		items: make([]Diagnostic, 0),
	}
}

// Addf adds a diagnostic of the given kind with a formatted message
func (d *Diagnostics) Addf(kind Kind, line int, format string, args ...interface{}) {
	d.items = append(d.items, Diagnostic{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Line:    line,
	})
}

// UndefinedName adds an undefined-name diagnostic with similarity suggestions
func (d *Diagnostics) UndefinedName(name string, line int, suggestions []string) {
	d.items = append(d.items, Diagnostic{
		Kind:        UndefinedName,
		Message:     fmt.Sprintf("undefined name '%s'", name),
		Line:        line,
		Suggestions: suggestions,
	})
}

// Redefinition adds a redefinition diagnostic referencing the first declaration
func (d *Diagnostics) Redefinition(name string, line, originalLine int) {
	d.items = append(d.items, Diagnostic{
		Kind:         Redefinition,
		Message:      fmt.Sprintf("'%s' is already defined in this scope (first declared on line %d)", name, originalLine),
		Line:         line,
		OriginalLine: originalLine,
	})
}

// HasErrors returns true if any diagnostics were collected
func (d *Diagnostics) HasErrors() bool {
	return len(d.items) > 0
}

// All returns all collected diagnostics in source order
func (d *Diagnostics) All() []Diagnostic {
	return d.items
}

// Count returns the total number of diagnostics
func (d *Diagnostics) Count() int {
	return len(d.items)
}

// CountKind returns the number of diagnostics of the given kind
func (d *Diagnostics) CountKind(kind Kind) int {
	count := 0
	for _, item := range d.items {
		if item.Kind == kind {
			count++
		}
	}
	return count
}

// Format returns human-readable error messages.
// Output format:
//
//	undefined-name[line 3]: undefined name 'speling'
//	  hint: did you mean 'spelling'?
//	type-check[line 5]: invalid operation: string - number
func (d *Diagnostics) Format() string {
	if len(d.items) == 0 {
		return ""
	}

	var builder strings.Builder
	for i, item := range d.items {
		builder.WriteString(fmt.Sprintf("%s[line %d]: %s",
			item.Kind.String(),
			item.Line,
			item.Message,
		))

		if len(item.Suggestions) > 0 {
			quoted := make([]string, len(item.Suggestions))
			for j, s := range item.Suggestions {
				quoted[j] = "'" + s + "'"
			}
			builder.WriteString(fmt.Sprintf("\n  hint: did you mean %s?", strings.Join(quoted, ", ")))
		}

		if i < len(d.items)-1 {
			builder.WriteString("\n")
		}
	}

	return builder.String()
}
