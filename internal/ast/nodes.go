package ast

// Node is the base interface for all AST nodes
type Node interface {
	Pos() int // source line number
}

// Statement nodes
type Statement interface {
	Node
	stmtNode()
}

// Expression nodes
type Expression interface {
	Node
	exprNode()
}

// Program represents an entire Merilang program
type Program struct {
	Statements []Statement
	Line       int
}

func (p *Program) Pos() int { return p.Line }

// --- Literals ---

// NumberLit represents a numeric literal (integers and floats share one node)
type NumberLit struct {
	Value float64
	Line  int
}

func (n *NumberLit) Pos() int  { return n.Line }
func (n *NumberLit) exprNode() {}

// StringLit represents a string literal
type StringLit struct {
	Value string
	Line  int
}

func (s *StringLit) Pos() int  { return s.Line }
func (s *StringLit) exprNode() {}

// BoolLit represents a boolean literal (sach / jhoot)
type BoolLit struct {
	Value bool
	Line  int
}

func (b *BoolLit) Pos() int  { return b.Line }
func (b *BoolLit) exprNode() {}

// ListLit represents a list constructor [a, b, c]
type ListLit struct {
	Elements []Expression
	Line     int
}

func (l *ListLit) Pos() int  { return l.Line }
func (l *ListLit) exprNode() {}

// DictPair is a single key/value entry in a DictLit
type DictPair struct {
	Key   Expression
	Value Expression
}

// DictLit represents a dict constructor {k: v, ...}; pairs keep source order
type DictLit struct {
	Pairs []DictPair
	Line  int
}

func (d *DictLit) Pos() int  { return d.Line }
func (d *DictLit) exprNode() {}

// --- Variables ---

// Ident represents a variable reference
type Ident struct {
	Name string
	Line int
}

func (i *Ident) Pos() int  { return i.Line }
func (i *Ident) exprNode() {}

// AssignStmt represents a variable binding or re-assignment: maan x = expr
type AssignStmt struct {
	Name  string
	Value Expression
	Line  int
}

func (a *AssignStmt) Pos() int  { return a.Line }
func (a *AssignStmt) stmtNode() {}

// --- Operators ---

// BinaryExpr represents a binary operation. Op is the operator spelling as
// delivered by the upstream lexer ("+", "==", "aur", "ya", ...).
type BinaryExpr struct {
	Left  Expression
	Op    string
	Right Expression
	Line  int
}

func (b *BinaryExpr) Pos() int  { return b.Line }
func (b *BinaryExpr) exprNode() {}

// UnaryExpr represents a unary operation ("-" or "nahi")
type UnaryExpr struct {
	Op      string
	Operand Expression
	Line    int
}

func (u *UnaryExpr) Pos() int  { return u.Line }
func (u *UnaryExpr) exprNode() {}

// ParenExpr represents a parenthesized expression
type ParenExpr struct {
	Expr Expression
	Line int
}

func (p *ParenExpr) Pos() int  { return p.Line }
func (p *ParenExpr) exprNode() {}

// --- Control flow ---

// ElifBranch is one agar-nahi-to arm of an IfStmt
type ElifBranch struct {
	Cond Expression
	Body []Statement
	Line int
}

// IfStmt represents an if statement with optional elif chain and else branch.
// Else is nil when there is no else branch.
type IfStmt struct {
	Cond  Expression
	Then  []Statement
	Elifs []ElifBranch
	Else  []Statement
	Line  int
}

func (i *IfStmt) Pos() int  { return i.Line }
func (i *IfStmt) stmtNode() {}

// WhileStmt represents a while loop (jab_tak)
type WhileStmt struct {
	Cond Expression
	Body []Statement
	Line int
}

func (w *WhileStmt) Pos() int  { return w.Line }
func (w *WhileStmt) stmtNode() {}

// ForInStmt represents a for-in loop: har <variable> in <iterable>
type ForInStmt struct {
	Variable string
	Iterable Expression
	Body     []Statement
	Line     int
}

func (f *ForInStmt) Pos() int  { return f.Line }
func (f *ForInStmt) stmtNode() {}

// BreakStmt represents a break statement (ruk)
type BreakStmt struct {
	Line int
}

func (b *BreakStmt) Pos() int  { return b.Line }
func (b *BreakStmt) stmtNode() {}

// ContinueStmt represents a continue statement (age_badho)
type ContinueStmt struct {
	Line int
}

func (c *ContinueStmt) Pos() int  { return c.Line }
func (c *ContinueStmt) stmtNode() {}

// --- Functions ---

// FuncDecl represents a function definition (kaam). Parameters are bare
// names; Merilang has no declared parameter types.
type FuncDecl struct {
	Name   string
	Params []string
	Body   []Statement
	Line   int
}

func (f *FuncDecl) Pos() int  { return f.Line }
func (f *FuncDecl) stmtNode() {}

// CallExpr represents a call to a named function
type CallExpr struct {
	Name string
	Args []Expression
	Line int
}

func (c *CallExpr) Pos() int  { return c.Line }
func (c *CallExpr) exprNode() {}

// ReturnStmt represents a return statement (wapas); Value is nil for a bare return
type ReturnStmt struct {
	Value Expression
	Line  int
}

func (r *ReturnStmt) Pos() int  { return r.Line }
func (r *ReturnStmt) stmtNode() {}

// LambdaExpr represents an anonymous function with a single expression body
type LambdaExpr struct {
	Params []string
	Body   Expression
	Line   int
}

func (l *LambdaExpr) Pos() int  { return l.Line }
func (l *LambdaExpr) exprNode() {}

// --- Classes ---

// ClassDecl represents a class definition; Parent is empty when the class
// has no superclass.
type ClassDecl struct {
	Name    string
	Parent  string
	Methods []*FuncDecl
	Line    int
}

func (c *ClassDecl) Pos() int  { return c.Line }
func (c *ClassDecl) stmtNode() {}

// NewExpr represents object construction: naya ClassName(args)
type NewExpr struct {
	ClassName string
	Args      []Expression
	Line      int
}

func (n *NewExpr) Pos() int  { return n.Line }
func (n *NewExpr) exprNode() {}

// MethodCallExpr represents a method call on an object
type MethodCallExpr struct {
	Object Expression
	Method string
	Args   []Expression
	Line   int
}

func (m *MethodCallExpr) Pos() int  { return m.Line }
func (m *MethodCallExpr) exprNode() {}

// FieldAccessExpr represents a property read: obj.field
type FieldAccessExpr struct {
	Object Expression
	Field  string
	Line   int
}

func (f *FieldAccessExpr) Pos() int  { return f.Line }
func (f *FieldAccessExpr) exprNode() {}

// FieldAssignStmt represents a property write: obj.field = value
type FieldAssignStmt struct {
	Object Expression
	Field  string
	Value  Expression
	Line   int
}

func (f *FieldAssignStmt) Pos() int  { return f.Line }
func (f *FieldAssignStmt) stmtNode() {}

// ThisExpr represents the current receiver (yeh)
type ThisExpr struct {
	Line int
}

func (t *ThisExpr) Pos() int  { return t.Line }
func (t *ThisExpr) exprNode() {}

// SuperExpr represents a superclass method call (upar)
type SuperExpr struct {
	Method string
	Args   []Expression
	Line   int
}

func (s *SuperExpr) Pos() int  { return s.Line }
func (s *SuperExpr) exprNode() {}

// --- Exceptions ---

// TryStmt represents try/catch/finally (koshish/pakdo/akhir). Catch and
// Finally are nil when the corresponding block is absent; CatchVar is empty
// when the catch clause binds no variable.
type TryStmt struct {
	Try      []Statement
	CatchVar string
	Catch    []Statement
	Finally  []Statement
	Line     int
}

func (t *TryStmt) Pos() int  { return t.Line }
func (t *TryStmt) stmtNode() {}

// ThrowStmt represents a throw statement (phenko)
type ThrowStmt struct {
	Value Expression
	Line  int
}

func (t *ThrowStmt) Pos() int  { return t.Line }
func (t *ThrowStmt) stmtNode() {}

// --- I/O ---

// PrintStmt represents a print statement (likho) with any number of arguments
type PrintStmt struct {
	Args []Expression
	Line int
}

func (p *PrintStmt) Pos() int  { return p.Line }
func (p *PrintStmt) stmtNode() {}

// InputStmt represents an input-binding statement (pucho); Prompt is nil when
// no prompt expression is given.
type InputStmt struct {
	Variable string
	Prompt   Expression
	Line     int
}

func (i *InputStmt) Pos() int  { return i.Line }
func (i *InputStmt) stmtNode() {}

// ImportStmt represents a module import (lao); resolved at runtime, not here
type ImportStmt struct {
	Module string
	Line   int
}

func (i *ImportStmt) Pos() int  { return i.Line }
func (i *ImportStmt) stmtNode() {}

// --- Indexing ---

// IndexExpr represents an index read: obj[index]
type IndexExpr struct {
	Object Expression
	Index  Expression
	Line   int
}

func (i *IndexExpr) Pos() int  { return i.Line }
func (i *IndexExpr) exprNode() {}

// IndexAssignStmt represents an index write: obj[index] = value
type IndexAssignStmt struct {
	Object Expression
	Index  Expression
	Value  Expression
	Line   int
}

func (i *IndexAssignStmt) Pos() int  { return i.Line }
func (i *IndexAssignStmt) stmtNode() {}

// ExprStmt wraps an expression used in statement position
type ExprStmt struct {
	Expr Expression
	Line int
}

func (e *ExprStmt) Pos() int  { return e.Line }
func (e *ExprStmt) stmtNode() {}
