package checker

import (
	"testing"

	"github.com/merilang/merilang/internal/ast"
	"github.com/merilang/merilang/internal/diagnostic"
	"github.com/nalgeon/be"
)

// Small constructors keep the tree-building tests readable.

func num(v float64) *ast.NumberLit { return &ast.NumberLit{Value: v, Line: 1} }
func str(v string) *ast.StringLit  { return &ast.StringLit{Value: v, Line: 1} }
func boolean(v bool) *ast.BoolLit  { return &ast.BoolLit{Value: v, Line: 1} }
func ident(name string) *ast.Ident { return &ast.Ident{Name: name, Line: 1} }

func binary(left ast.Expression, op string, right ast.Expression) *ast.BinaryExpr {
	return &ast.BinaryExpr{Left: left, Op: op, Right: right, Line: 1}
}

func assign(name string, value ast.Expression) *ast.AssignStmt {
	return &ast.AssignStmt{Name: name, Value: value, Line: 1}
}

func exprStmt(e ast.Expression) *ast.ExprStmt {
	return &ast.ExprStmt{Expr: e, Line: 1}
}

func program(stmts ...ast.Statement) *ast.Program {
	return &ast.Program{Statements: stmts, Line: 1}
}

func kinds(diag *diagnostic.Diagnostics) []diagnostic.Kind {
	all := diag.All()
	ks := make([]diagnostic.Kind, len(all))
	for i, d := range all {
		ks[i] = d.Kind
	}
	return ks
}

func TestSimpleAssignmentIsClean(t *testing.T) {
	// maan x = 1 + 2
	diag := Check(program(assign("x", binary(num(1), "+", num(2)))))
	be.Equal(t, diag.Count(), 0)
}

func TestPrintUndefinedVariable(t *testing.T) {
	// likho(undefined_var)
	diag := Check(program(&ast.PrintStmt{Args: []ast.Expression{ident("undefined_var")}, Line: 1}))
	be.Equal(t, diag.Count(), 1)
	be.Equal(t, diag.All()[0].Kind, diagnostic.UndefinedName)
}

func TestUndefinedNameCarriesSuggestions(t *testing.T) {
	prog := program(
		assign("naam", num(1)),
		&ast.PrintStmt{Args: []ast.Expression{&ast.Ident{Name: "nam", Line: 2}}, Line: 2},
	)
	diag := Check(prog)
	be.Equal(t, diag.Count(), 1)
	d := diag.All()[0]
	be.Equal(t, d.Kind, diagnostic.UndefinedName)
	be.Equal(t, d.Line, 2)
	be.Equal(t, d.Suggestions, []string{"naam"})
}

func TestStringMinusNumberIsTypeError(t *testing.T) {
	// "hello" - 5
	diag := Check(program(exprStmt(binary(str("hello"), "-", num(5)))))
	be.Equal(t, diag.Count(), 1)
	be.Equal(t, diag.All()[0].Kind, diagnostic.TypeCheck)
}

func TestStringConcatIsValid(t *testing.T) {
	// "hello" + "world"
	diag := Check(program(exprStmt(binary(str("hello"), "+", str("world")))))
	be.Equal(t, diag.Count(), 0)
}

func TestNumberAddIsValid(t *testing.T) {
	// 5 + 5
	diag := Check(program(exprStmt(binary(num(5), "+", num(5)))))
	be.Equal(t, diag.Count(), 0)
}

func TestEqualityValidAcrossTypes(t *testing.T) {
	diag := Check(program(exprStmt(binary(str("a"), "==", num(1)))))
	be.Equal(t, diag.Count(), 0)
}

func TestLogicalOperatorsNeverFlagged(t *testing.T) {
	// Reserved for future strictness: number aur string passes today.
	diag := Check(program(exprStmt(binary(num(1), "aur", str("x")))))
	be.Equal(t, diag.Count(), 0)
}

func TestAnyOperandSkipsBinaryCheck(t *testing.T) {
	// A parameter is tagged Any, so p - "x" is not checked.
	fn := &ast.FuncDecl{
		Name:   "f",
		Params: []string{"p"},
		Body: []ast.Statement{
			exprStmt(binary(ident("p"), "-", str("x"))),
		},
		Line: 1,
	}
	diag := Check(program(fn))
	be.Equal(t, diag.Count(), 0)
}

func TestUnaryNegationRequiresNumber(t *testing.T) {
	diag := Check(program(exprStmt(&ast.UnaryExpr{Op: "-", Operand: str("x"), Line: 1})))
	be.Equal(t, diag.Count(), 1)
	be.Equal(t, diag.All()[0].Kind, diagnostic.TypeCheck)
}

func TestUnaryNotRequiresBool(t *testing.T) {
	diag := Check(program(exprStmt(&ast.UnaryExpr{Op: "nahi", Operand: num(5), Line: 1})))
	be.Equal(t, diag.Count(), 1)
	be.Equal(t, diag.All()[0].Kind, diagnostic.TypeCheck)

	diag = Check(program(exprStmt(&ast.UnaryExpr{Op: "nahi", Operand: boolean(true), Line: 1})))
	be.Equal(t, diag.Count(), 0)
}

func TestBreakOutsideLoop(t *testing.T) {
	diag := Check(program(&ast.BreakStmt{Line: 3}))
	be.Equal(t, diag.Count(), 1)
	be.Equal(t, diag.All()[0].Kind, diagnostic.Semantic)
	be.Equal(t, diag.All()[0].Line, 3)
}

func TestContinueOutsideLoop(t *testing.T) {
	diag := Check(program(&ast.ContinueStmt{Line: 1}))
	be.Equal(t, diag.Count(), 1)
	be.Equal(t, diag.All()[0].Kind, diagnostic.Semantic)
}

func TestBreakContinueInsideLoop(t *testing.T) {
	loop := &ast.WhileStmt{
		Cond: boolean(true),
		Body: []ast.Statement{
			&ast.BreakStmt{Line: 2},
			&ast.ContinueStmt{Line: 3},
		},
		Line: 1,
	}
	diag := Check(program(loop))
	be.Equal(t, diag.Count(), 0)
}

func TestBreakInsideForLoop(t *testing.T) {
	loop := &ast.ForInStmt{
		Variable: "i",
		Iterable: &ast.ListLit{Elements: []ast.Expression{num(1)}, Line: 1},
		Body:     []ast.Statement{&ast.BreakStmt{Line: 2}},
		Line:     1,
	}
	diag := Check(program(loop))
	be.Equal(t, diag.Count(), 0)
}

func TestReturnOutsideFunction(t *testing.T) {
	diag := Check(program(&ast.ReturnStmt{Value: num(1), Line: 1}))
	be.Equal(t, diag.Count(), 1)
	be.Equal(t, diag.All()[0].Kind, diagnostic.Semantic)
}

func TestReturnInsideFunction(t *testing.T) {
	fn := &ast.FuncDecl{
		Name: "f",
		Body: []ast.Statement{&ast.ReturnStmt{Value: num(1), Line: 2}},
		Line: 1,
	}
	diag := Check(program(fn))
	be.Equal(t, diag.Count(), 0)
}

func TestFunctionRedefinitionSameScope(t *testing.T) {
	first := &ast.FuncDecl{Name: "add", Params: []string{"a"}, Line: 1}
	second := &ast.FuncDecl{Name: "add", Params: []string{"a"}, Line: 7}
	diag := Check(program(first, second))

	be.Equal(t, diag.Count(), 1)
	d := diag.All()[0]
	be.Equal(t, d.Kind, diagnostic.Redefinition)
	be.Equal(t, d.Line, 7)
	be.Equal(t, d.OriginalLine, 1)
}

func TestFunctionInNestedScopeShadows(t *testing.T) {
	inner := &ast.FuncDecl{Name: "add", Params: []string{"a"}, Line: 3}
	outer := &ast.FuncDecl{
		Name:   "add",
		Params: []string{"a"},
		Body:   []ast.Statement{inner},
		Line:   1,
	}
	diag := Check(program(outer))
	be.Equal(t, diag.Count(), 0)
}

func TestClassRedefinition(t *testing.T) {
	first := &ast.ClassDecl{Name: "Person", Line: 1}
	second := &ast.ClassDecl{Name: "Person", Line: 9}
	diag := Check(program(first, second))

	be.Equal(t, diag.Count(), 1)
	be.Equal(t, diag.All()[0].Kind, diagnostic.Redefinition)
	be.Equal(t, diag.All()[0].OriginalLine, 1)
}

func TestArityMismatch(t *testing.T) {
	fn := &ast.FuncDecl{Name: "add", Params: []string{"a", "b"}, Line: 1}
	call := exprStmt(&ast.CallExpr{Name: "add", Args: []ast.Expression{num(1)}, Line: 2})
	diag := Check(program(fn, call))

	be.Equal(t, diag.Count(), 1)
	be.Equal(t, diag.All()[0].Kind, diagnostic.Semantic)
}

func TestArityMatch(t *testing.T) {
	fn := &ast.FuncDecl{Name: "add", Params: []string{"a", "b"}, Line: 1}
	call := exprStmt(&ast.CallExpr{Name: "add", Args: []ast.Expression{num(1), num(2)}, Line: 2})
	diag := Check(program(fn, call))
	be.Equal(t, diag.Count(), 0)
}

func TestVariadicBuiltinSkipsArity(t *testing.T) {
	call := exprStmt(&ast.CallExpr{Name: "print", Args: []ast.Expression{num(1), num(2), num(3)}, Line: 1})
	diag := Check(program(call))
	be.Equal(t, diag.Count(), 0)
}

func TestZeroParamFunctionSharesVariadicSentinel(t *testing.T) {
	// ParamCount 0 doubles as the variadic marker, so a zero-parameter
	// function call with arguments is not flagged.
	fn := &ast.FuncDecl{Name: "f", Line: 1}
	call := exprStmt(&ast.CallExpr{Name: "f", Args: []ast.Expression{num(1)}, Line: 2})
	diag := Check(program(fn, call))
	be.Equal(t, diag.Count(), 0)
}

func TestCallUndefinedFunction(t *testing.T) {
	call := exprStmt(&ast.CallExpr{Name: "missing", Args: nil, Line: 1})
	diag := Check(program(call))
	be.Equal(t, diag.Count(), 1)
	be.Equal(t, diag.All()[0].Kind, diagnostic.UndefinedName)
}

func TestBuiltinArityChecked(t *testing.T) {
	// length takes exactly one argument.
	call := exprStmt(&ast.CallExpr{Name: "length", Args: []ast.Expression{num(1), num(2)}, Line: 1})
	diag := Check(program(call))
	be.Equal(t, diag.Count(), 1)
	be.Equal(t, diag.All()[0].Kind, diagnostic.Semantic)
}

func TestThisOutsideClass(t *testing.T) {
	diag := Check(program(exprStmt(&ast.ThisExpr{Line: 1})))
	be.Equal(t, diag.Count(), 1)
	be.Equal(t, diag.All()[0].Kind, diagnostic.Semantic)
}

func TestSuperOutsideClass(t *testing.T) {
	diag := Check(program(exprStmt(&ast.SuperExpr{Method: "init", Line: 1})))
	be.Equal(t, diag.Count(), 1)
	be.Equal(t, diag.All()[0].Kind, diagnostic.Semantic)
}

func TestThisSuperInsideMethod(t *testing.T) {
	method := &ast.FuncDecl{
		Name: "greet",
		Body: []ast.Statement{
			exprStmt(&ast.ThisExpr{Line: 3}),
			exprStmt(&ast.SuperExpr{Method: "greet", Line: 4}),
		},
		Line: 2,
	}
	class := &ast.ClassDecl{Name: "Person", Methods: []*ast.FuncDecl{method}, Line: 1}
	diag := Check(program(class))
	be.Equal(t, diag.Count(), 0)
}

func TestClassParentMustResolve(t *testing.T) {
	class := &ast.ClassDecl{Name: "Dog", Parent: "Animal", Line: 1}
	diag := Check(program(class))
	be.Equal(t, diag.Count(), 1)
	be.Equal(t, diag.All()[0].Kind, diagnostic.UndefinedName)
}

func TestClassParentResolves(t *testing.T) {
	parent := &ast.ClassDecl{Name: "Animal", Line: 1}
	child := &ast.ClassDecl{Name: "Dog", Parent: "Animal", Line: 2}
	diag := Check(program(parent, child))
	be.Equal(t, diag.Count(), 0)
}

func TestNewUndefinedClass(t *testing.T) {
	diag := Check(program(exprStmt(&ast.NewExpr{ClassName: "Ghost", Line: 1})))
	be.Equal(t, diag.Count(), 1)
	be.Equal(t, diag.All()[0].Kind, diagnostic.UndefinedName)
}

func TestCatchVariableIsBound(t *testing.T) {
	try := &ast.TryStmt{
		Try:      []ast.Statement{assign("x", num(1))},
		CatchVar: "e",
		Catch: []ast.Statement{
			&ast.PrintStmt{Args: []ast.Expression{ident("e")}, Line: 3},
		},
		Line: 1,
	}
	diag := Check(program(try))
	be.Equal(t, diag.Count(), 0)
}

func TestInputBindsStringVariable(t *testing.T) {
	prog := program(
		&ast.InputStmt{Variable: "name", Line: 1},
		exprStmt(binary(ident("name"), "-", num(5))),
	)
	diag := Check(prog)
	be.Equal(t, diag.Count(), 1)
	be.Equal(t, diag.All()[0].Kind, diagnostic.TypeCheck)
}

func TestForLoopVariableIsBound(t *testing.T) {
	loop := &ast.ForInStmt{
		Variable: "i",
		Iterable: &ast.ListLit{Elements: []ast.Expression{num(1), num(2)}, Line: 1},
		Body: []ast.Statement{
			&ast.PrintStmt{Args: []ast.Expression{ident("i")}, Line: 2},
		},
		Line: 1,
	}
	diag := Check(program(loop))
	be.Equal(t, diag.Count(), 0)
}

func TestBlockScopedShadowingDoesNotLeak(t *testing.T) {
	// maan x = 1; agar ... { maan x = "s" }; x - 5 stays clean because the
	// outer x keeps its number tag.
	ifStmt := &ast.IfStmt{
		Cond: boolean(true),
		Then: []ast.Statement{assign("x", str("s"))},
		Line: 2,
	}
	prog := program(
		assign("x", num(1)),
		ifStmt,
		exprStmt(binary(ident("x"), "-", num(5))),
	)
	diag := Check(prog)
	be.Equal(t, diag.Count(), 0)
}

func TestReassignmentAdoptsNewTag(t *testing.T) {
	// After x is reassigned to a string, x - 5 must be a type error.
	prog := program(
		assign("x", num(1)),
		assign("x", str("s")),
		exprStmt(binary(ident("x"), "-", num(5))),
	)
	diag := Check(prog)
	be.Equal(t, diag.Count(), 1)
	be.Equal(t, diag.All()[0].Kind, diagnostic.TypeCheck)
}

func TestLambdaParametersAreBound(t *testing.T) {
	lambda := &ast.LambdaExpr{
		Params: []string{"x"},
		Body:   binary(ident("x"), "+", num(1)),
		Line:   1,
	}
	diag := Check(program(assign("f", lambda)))
	be.Equal(t, diag.Count(), 0)
}

func TestLambdaBodyUndefinedName(t *testing.T) {
	lambda := &ast.LambdaExpr{
		Params: []string{"x"},
		Body:   ident("y"),
		Line:   1,
	}
	diag := Check(program(assign("f", lambda)))
	be.Equal(t, diag.Count(), 1)
	be.Equal(t, diag.All()[0].Kind, diagnostic.UndefinedName)
}

func TestAnalysisNeverStopsEarly(t *testing.T) {
	// Three independent problems, one run.
	prog := program(
		exprStmt(ident("ghost")),
		exprStmt(binary(str("a"), "-", num(1))),
		&ast.BreakStmt{Line: 3},
	)
	diag := Check(prog)
	be.Equal(t, kinds(diag), []diagnostic.Kind{
		diagnostic.UndefinedName,
		diagnostic.TypeCheck,
		diagnostic.Semantic,
	})
}

func TestValidateReturnsHandleOnCleanRun(t *testing.T) {
	v, diag := Validate(program(assign("x", num(1))))
	be.True(t, v != nil)
	be.Equal(t, diag.Count(), 0)
	be.True(t, v.Program() != nil)
}

func TestValidateWithholdsHandleOnErrors(t *testing.T) {
	v, diag := Validate(program(exprStmt(ident("ghost"))))
	be.True(t, v == nil)
	be.Equal(t, diag.Count(), 1)
}
