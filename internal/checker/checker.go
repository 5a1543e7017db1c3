package checker

import (
	"github.com/merilang/merilang/internal/ast"
	"github.com/merilang/merilang/internal/diagnostic"
)

// Checker performs semantic analysis on the AST. It walks the tree in a
// single forward pass, maintaining a Scope chain and collecting diagnostics;
// it never stops at the first error, so one run surfaces every independent
// problem. Each expression visit yields a best-effort TypeTag.
type Checker struct {
	diag  *diagnostic.Diagnostics
	scope *Scope

	// Context tracking
	funcStack  []string
	classStack []string
	loopDepth  int
}

// Validated wraps a program that passed semantic analysis with zero
// diagnostics. It can only be obtained through Validate, which lets the IR
// generator require checked input by construction.
type Validated struct {
	prog *ast.Program
}

// Program returns the underlying validated syntax tree
func (v *Validated) Program() *ast.Program { return v.prog }

// New creates a Checker with a fresh global scope pre-seeded with builtins.
// A Checker is single-use: one instance per analysis run.
func New() *Checker {
	c := &Checker{
		diag:  diagnostic.New(),
		scope: NewScope(nil),
	}
	registerBuiltins(c.scope)
	return c
}

// Check runs semantic analysis on a program and returns the collected
// diagnostics. An empty collection means the program is semantically valid.
func Check(prog *ast.Program) *diagnostic.Diagnostics {
	c := New()
	c.visit(prog)
	return c.diag
}

// Validate runs semantic analysis and, when it produces zero diagnostics,
// returns a Validated handle accepted by the IR generator. On any diagnostic
// the handle is nil and the caller must not proceed to generation.
func Validate(prog *ast.Program) (*Validated, *diagnostic.Diagnostics) {
	diag := Check(prog)
	if diag.HasErrors() {
		return nil, diag
	}
	return &Validated{prog: prog}, diag
}

// visit dispatches on the node variant and returns the node's inferred tag.
// The default arm is the explicit unsupported-node result: a variant this
// switch does not know gets no checking and types as TagAny.
func (c *Checker) visit(n ast.Node) TypeTag {
	switch node := n.(type) {
	case *ast.Program:
		for _, stmt := range node.Statements {
			c.visit(stmt)
		}
		return TagNone

	// Literals
	case *ast.NumberLit:
		return TagNumber
	case *ast.StringLit:
		return TagString
	case *ast.BoolLit:
		return TagBool
	case *ast.ListLit:
		for _, elem := range node.Elements {
			c.visit(elem)
		}
		return TagList
	case *ast.DictLit:
		for _, pair := range node.Pairs {
			c.visit(pair.Key)
			c.visit(pair.Value)
		}
		return TagDict

	// Variables
	case *ast.Ident:
		return c.checkIdent(node)
	case *ast.AssignStmt:
		return c.checkAssign(node)

	// Operators
	case *ast.BinaryExpr:
		return c.checkBinary(node)
	case *ast.UnaryExpr:
		return c.checkUnary(node)
	case *ast.ParenExpr:
		return c.visit(node.Expr)

	// Control flow
	case *ast.IfStmt:
		return c.checkIf(node)
	case *ast.WhileStmt:
		return c.checkWhile(node)
	case *ast.ForInStmt:
		return c.checkForIn(node)
	case *ast.BreakStmt:
		if c.loopDepth == 0 {
			c.diag.Addf(diagnostic.Semantic, node.Line, "'ruk' (break) used outside a loop")
		}
		return TagNone
	case *ast.ContinueStmt:
		if c.loopDepth == 0 {
			c.diag.Addf(diagnostic.Semantic, node.Line, "'age_badho' (continue) used outside a loop")
		}
		return TagNone

	// Functions
	case *ast.FuncDecl:
		return c.checkFuncDecl(node)
	case *ast.ReturnStmt:
		if len(c.funcStack) == 0 {
			c.diag.Addf(diagnostic.Semantic, node.Line, "'wapas' (return) used outside a function")
		}
		if node.Value != nil {
			return c.visit(node.Value)
		}
		return TagNone
	case *ast.CallExpr:
		return c.checkCall(node)
	case *ast.LambdaExpr:
		return c.checkLambda(node)

	// Classes
	case *ast.ClassDecl:
		return c.checkClassDecl(node)
	case *ast.NewExpr:
		return c.checkNew(node)
	case *ast.MethodCallExpr:
		c.visit(node.Object)
		for _, arg := range node.Args {
			c.visit(arg)
		}
		return TagAny
	case *ast.FieldAccessExpr:
		c.visit(node.Object)
		return TagAny
	case *ast.FieldAssignStmt:
		c.visit(node.Object)
		c.visit(node.Value)
		return TagNone
	case *ast.ThisExpr:
		if len(c.classStack) == 0 {
			c.diag.Addf(diagnostic.Semantic, node.Line, "'yeh' (this) used outside a class method")
		}
		return TagAny
	case *ast.SuperExpr:
		if len(c.classStack) == 0 {
			c.diag.Addf(diagnostic.Semantic, node.Line, "'upar' (super) used outside a class method")
		}
		for _, arg := range node.Args {
			c.visit(arg)
		}
		return TagAny

	// Exceptions
	case *ast.TryStmt:
		return c.checkTry(node)
	case *ast.ThrowStmt:
		c.visit(node.Value)
		return TagNone

	// I/O
	case *ast.PrintStmt:
		for _, arg := range node.Args {
			c.visit(arg)
		}
		return TagNone
	case *ast.InputStmt:
		// input always produces a string
		if c.scope.ResolveLocal(node.Variable) == nil {
			c.scope.Define(&Symbol{
				Name:     node.Variable,
				Kind:     SymVariable,
				Type:     TagString,
				DeclLine: node.Line,
			})
		}
		if node.Prompt != nil {
			c.visit(node.Prompt)
		}
		return TagNone
	case *ast.ImportStmt:
		// imports are opaque runtime calls, nothing to resolve statically
		return TagNone

	// Indexing
	case *ast.IndexExpr:
		c.visit(node.Object)
		c.visit(node.Index)
		return TagAny
	case *ast.IndexAssignStmt:
		c.visit(node.Object)
		c.visit(node.Index)
		c.visit(node.Value)
		return TagNone

	case *ast.ExprStmt:
		return c.visit(node.Expr)

	default:
		return TagAny
	}
}

func (c *Checker) checkIdent(node *ast.Ident) TypeTag {
	sym := c.scope.Resolve(node.Name)
	if sym == nil {
		c.diag.UndefinedName(node.Name, node.Line, suggestNames(node.Name, c.scope.AllNames()))
		return TagAny
	}
	return sym.Type
}

func (c *Checker) checkAssign(node *ast.AssignStmt) TypeTag {
	valType := c.visit(node.Value)

	existing := c.scope.ResolveLocal(node.Name)
	if existing != nil && existing.Kind == SymVariable {
		// Re-assignment: the recorded tag adopts the new value's tag so
		// downstream checks use fresh information.
		existing.Type = valType
	} else {
		c.scope.Define(&Symbol{
			Name:     node.Name,
			Kind:     SymVariable,
			Type:     valType,
			DeclLine: node.Line,
		})
	}
	return valType
}

func (c *Checker) checkBinary(node *ast.BinaryExpr) TypeTag {
	leftType := c.visit(node.Left)
	rightType := c.visit(node.Right)

	if !checkBinaryTypes(node.Op, leftType, rightType) {
		c.diag.Addf(diagnostic.TypeCheck, node.Line,
			"invalid operation: %s %s %s", leftType, node.Op, rightType)
	}
	return binaryResultType(node.Op, leftType, rightType)
}

func (c *Checker) checkUnary(node *ast.UnaryExpr) TypeTag {
	operandType := c.visit(node.Operand)

	if !checkUnaryType(node.Op, operandType) {
		c.diag.Addf(diagnostic.TypeCheck, node.Line,
			"invalid unary operation: %s %s", node.Op, operandType)
	}
	return unaryResultType(node.Op)
}

func (c *Checker) checkIf(node *ast.IfStmt) TypeTag {
	c.visit(node.Cond)
	c.visitBlock(node.Then)

	for _, elif := range node.Elifs {
		c.visit(elif.Cond)
		c.visitBlock(elif.Body)
	}

	if node.Else != nil {
		c.visitBlock(node.Else)
	}
	return TagNone
}

func (c *Checker) checkWhile(node *ast.WhileStmt) TypeTag {
	c.visit(node.Cond)
	c.loopDepth++
	c.visitBlock(node.Body)
	c.loopDepth--
	return TagNone
}

func (c *Checker) checkForIn(node *ast.ForInStmt) TypeTag {
	c.visit(node.Iterable)
	c.loopDepth++
	c.scope = c.scope.Enter()
	// The loop variable's value type is not known statically.
	c.scope.Define(&Symbol{
		Name:     node.Variable,
		Kind:     SymVariable,
		Type:     TagAny,
		DeclLine: node.Line,
	})
	for _, stmt := range node.Body {
		c.visit(stmt)
	}
	c.scope = c.scope.Exit()
	c.loopDepth--
	return TagNone
}

func (c *Checker) checkFuncDecl(node *ast.FuncDecl) TypeTag {
	// Register the function name in the enclosing scope.
	existing := c.scope.ResolveLocal(node.Name)
	if existing != nil {
		c.diag.Redefinition(node.Name, node.Line, existing.DeclLine)
	} else {
		c.scope.Define(&Symbol{
			Name:       node.Name,
			Kind:       SymFunction,
			Type:       TagFunction,
			DeclLine:   node.Line,
			ParamCount: len(node.Params),
		})
	}

	// Analyse the body in a new scope with parameters bound.
	c.funcStack = append(c.funcStack, node.Name)
	c.scope = c.scope.Enter()
	for _, param := range node.Params {
		c.scope.Define(&Symbol{
			Name:     param,
			Kind:     SymParameter,
			Type:     TagAny,
			DeclLine: node.Line,
		})
	}
	for _, stmt := range node.Body {
		c.visit(stmt)
	}
	c.scope = c.scope.Exit()
	c.funcStack = c.funcStack[:len(c.funcStack)-1]
	return TagFunction
}

func (c *Checker) checkCall(node *ast.CallExpr) TypeTag {
	sym := c.scope.Resolve(node.Name)
	if sym == nil {
		c.diag.UndefinedName(node.Name, node.Line, suggestNames(node.Name, c.scope.AllNames()))
	} else if sym.Kind == SymFunction && sym.ParamCount != 0 && len(node.Args) != sym.ParamCount {
		// ParamCount 0 is the variadic sentinel: arity checking skipped.
		c.diag.Addf(diagnostic.Semantic, node.Line,
			"function '%s' expects %d argument(s), got %d",
			node.Name, sym.ParamCount, len(node.Args))
	}

	// Visit arguments regardless so their own errors surface.
	for _, arg := range node.Args {
		c.visit(arg)
	}
	return TagAny
}

func (c *Checker) checkLambda(node *ast.LambdaExpr) TypeTag {
	c.scope = c.scope.Enter()
	for _, param := range node.Params {
		c.scope.Define(&Symbol{
			Name:     param,
			Kind:     SymParameter,
			Type:     TagAny,
			DeclLine: node.Line,
		})
	}
	c.visit(node.Body)
	c.scope = c.scope.Exit()
	return TagFunction
}

func (c *Checker) checkClassDecl(node *ast.ClassDecl) TypeTag {
	existing := c.scope.ResolveLocal(node.Name)
	if existing != nil {
		c.diag.Redefinition(node.Name, node.Line, existing.DeclLine)
	} else {
		c.scope.Define(&Symbol{
			Name:     node.Name,
			Kind:     SymClass,
			Type:     TagClass,
			DeclLine: node.Line,
		})
	}

	if node.Parent != "" {
		if c.scope.Resolve(node.Parent) == nil {
			c.diag.UndefinedName(node.Parent, node.Line, suggestNames(node.Parent, c.scope.AllNames()))
		}
	}

	c.classStack = append(c.classStack, node.Name)
	c.scope = c.scope.Enter()
	for _, method := range node.Methods {
		c.checkFuncDecl(method)
	}
	c.scope = c.scope.Exit()
	c.classStack = c.classStack[:len(c.classStack)-1]
	return TagClass
}

func (c *Checker) checkNew(node *ast.NewExpr) TypeTag {
	if c.scope.Resolve(node.ClassName) == nil {
		c.diag.UndefinedName(node.ClassName, node.Line, suggestNames(node.ClassName, c.scope.AllNames()))
	}
	for _, arg := range node.Args {
		c.visit(arg)
	}
	return TagAny
}

func (c *Checker) checkTry(node *ast.TryStmt) TypeTag {
	c.visitBlock(node.Try)

	if node.Catch != nil {
		c.scope = c.scope.Enter()
		if node.CatchVar != "" {
			c.scope.Define(&Symbol{
				Name:     node.CatchVar,
				Kind:     SymVariable,
				Type:     TagAny,
				DeclLine: node.Line,
			})
		}
		for _, stmt := range node.Catch {
			c.visit(stmt)
		}
		c.scope = c.scope.Exit()
	}

	if node.Finally != nil {
		c.visitBlock(node.Finally)
	}
	return TagNone
}

// visitBlock analyses a statement list inside its own child scope, which is
// what makes shadowing block-local.
func (c *Checker) visitBlock(stmts []ast.Statement) {
	c.scope = c.scope.Enter()
	for _, stmt := range stmts {
		c.visit(stmt)
	}
	c.scope = c.scope.Exit()
}
