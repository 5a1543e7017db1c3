package ir

import (
	"fmt"

	"github.com/merilang/merilang/internal/ast"
	"github.com/merilang/merilang/internal/checker"
)

// Generator lowers a syntax tree into a flat 3AC Program. It performs no
// validation of its own: the tree is assumed to have passed semantic
// analysis. A Generator is single-use; every instance starts its temp, label
// and lambda counters at zero, so independent generations of the same tree
// produce identical programs.
type Generator struct {
	prog *Program

	tempCount   int
	labelCount  int
	lambdaCount int

	// Innermost-wins jump targets for ruk (break) and age_badho (continue)
	breakStack    []Label
	continueStack []Label
}

// NewGenerator creates a Generator with fresh counters
func NewGenerator() *Generator {
	return &Generator{prog: &Program{}}
}

// Generate lowers a validated program. This is the primary entry point: the
// *checker.Validated argument can only be obtained from a zero-diagnostic
// analysis run, so unchecked trees cannot reach it by construction.
func (g *Generator) Generate(v *checker.Validated) *Program {
	return g.GenerateUnchecked(v.Program())
}

// GenerateUnchecked lowers a program without requiring prior analysis. This
// is the documented fast path: callers accept that a semantically invalid
// tree produces whatever IR falls out, with no error channel.
func (g *Generator) GenerateUnchecked(prog *ast.Program) *Program {
	for _, stmt := range prog.Statements {
		g.lowerStmt(stmt)
	}
	return g.prog
}

func (g *Generator) emit(instr Instr) {
	g.prog.Append(instr)
}

func (g *Generator) newTemp() Temp {
	t := Temp(fmt.Sprintf("t%d", g.tempCount))
	g.tempCount++
	return t
}

func (g *Generator) newLabel(hint string) Label {
	l := Label(fmt.Sprintf("%s%d", hint, g.labelCount))
	g.labelCount++
	return l
}

func (g *Generator) newLambdaName() string {
	name := fmt.Sprintf("__lambda_%d__", g.lambdaCount)
	g.lambdaCount++
	return name
}

// --- Statements ---

func (g *Generator) lowerStmt(s ast.Statement) {
	switch node := s.(type) {
	case *ast.AssignStmt:
		val := g.lowerExpr(node.Value)
		g.emit(&Copy{Dst: Var(node.Name), Src: val, SourceLine: node.Line})

	case *ast.IfStmt:
		g.lowerIf(node)
	case *ast.WhileStmt:
		g.lowerWhile(node)
	case *ast.ForInStmt:
		g.lowerForIn(node)

	case *ast.BreakStmt:
		// Outside a loop this is a no-op; the checker already rejected it.
		if len(g.breakStack) > 0 {
			g.emit(&Jump{Target: g.breakStack[len(g.breakStack)-1], SourceLine: node.Line})
		}
	case *ast.ContinueStmt:
		if len(g.continueStack) > 0 {
			g.emit(&Jump{Target: g.continueStack[len(g.continueStack)-1], SourceLine: node.Line})
		}

	case *ast.FuncDecl:
		g.lowerFuncDecl(node)
	case *ast.ReturnStmt:
		var val Operand
		if node.Value != nil {
			val = g.lowerExpr(node.Value)
		}
		g.emit(&Ret{Value: val, SourceLine: node.Line})

	case *ast.ClassDecl:
		g.lowerClassDecl(node)
	case *ast.FieldAssignStmt:
		obj := g.lowerExpr(node.Object)
		val := g.lowerExpr(node.Value)
		g.emit(&FieldStore{Object: obj, Field: node.Field, Value: val, SourceLine: node.Line})

	case *ast.TryStmt:
		g.lowerTry(node)
	case *ast.ThrowStmt:
		val := g.lowerExpr(node.Value)
		g.emit(&Throw{Value: val, SourceLine: node.Line})

	case *ast.PrintStmt:
		args := make([]Operand, len(node.Args))
		for i, a := range node.Args {
			args[i] = g.lowerExpr(a)
		}
		g.emit(&Print{Args: args, SourceLine: node.Line})
	case *ast.InputStmt:
		var prompt Operand
		if node.Prompt != nil {
			prompt = g.lowerExpr(node.Prompt)
		}
		g.emit(&Input{Variable: node.Variable, Prompt: prompt, SourceLine: node.Line})
	case *ast.ImportStmt:
		// Imports are opaque runtime calls; nothing is resolved here.
		modT := g.newTemp()
		g.emit(&LoadConst{Dest: modT, Value: Str(node.Module), SourceLine: node.Line})
		g.emit(&PushArg{Value: modT, SourceLine: node.Line})
		g.emit(&Call{Dest: nil, Func: "__import__", NumArgs: 1, SourceLine: node.Line})

	case *ast.IndexAssignStmt:
		obj := g.lowerExpr(node.Object)
		idx := g.lowerExpr(node.Index)
		val := g.lowerExpr(node.Value)
		g.emit(&IndexStore{Object: obj, Index: idx, Value: val, SourceLine: node.Line})

	case *ast.ExprStmt:
		g.lowerExpr(node.Expr)
	}
}

func (g *Generator) lowerBlock(stmts []ast.Statement) {
	for _, stmt := range stmts {
		g.lowerStmt(stmt)
	}
}

// lowerIf emits the if/elif/else ladder:
//
//	<condition>
//	IF cond GOTO then ELSE elif0 (or else / end)
//	then:
//	  <then body>
//	  GOTO end
//	elif0:
//	  <elif cond>
//	  IF ... (chain continues)
//	else:
//	  <else body>
//	end:
func (g *Generator) lowerIf(node *ast.IfStmt) {
	thenLabel := g.newLabel("then_")
	endLabel := g.newLabel("if_end_")

	elifLabels := make([]Label, len(node.Elifs))
	for i := range node.Elifs {
		elifLabels[i] = g.newLabel("elif_")
	}
	var elseLabel Label
	if node.Else != nil {
		elseLabel = g.newLabel("else_")
	}

	falseTarget := func(nextElif int) Label {
		if nextElif < len(elifLabels) {
			return elifLabels[nextElif]
		}
		if node.Else != nil {
			return elseLabel
		}
		return endLabel
	}

	cond := g.lowerExpr(node.Cond)
	g.emit(&CondJump{Cond: cond, True: thenLabel, False: falseTarget(0), SourceLine: node.Line})

	g.emit(&Mark{Label: thenLabel, SourceLine: node.Line})
	g.lowerBlock(node.Then)
	g.emit(&Jump{Target: endLabel, SourceLine: node.Line})

	for i, elif := range node.Elifs {
		g.emit(&Mark{Label: elifLabels[i], SourceLine: elif.Line})
		cond := g.lowerExpr(elif.Cond)
		bodyLabel := g.newLabel("elif_body_")
		g.emit(&CondJump{Cond: cond, True: bodyLabel, False: falseTarget(i + 1), SourceLine: elif.Line})
		g.emit(&Mark{Label: bodyLabel, SourceLine: elif.Line})
		g.lowerBlock(elif.Body)
		g.emit(&Jump{Target: endLabel, SourceLine: elif.Line})
	}

	if node.Else != nil {
		g.emit(&Mark{Label: elseLabel, SourceLine: node.Line})
		g.lowerBlock(node.Else)
	}

	g.emit(&Mark{Label: endLabel, SourceLine: node.Line})
}

// lowerWhile emits the loop skeleton:
//
//	start:
//	  <condition>
//	  IF cond GOTO body ELSE end
//	body:
//	  <body>
//	  GOTO start
//	end:
//
// The condition is re-evaluated every iteration. Break jumps to end,
// continue jumps to start.
func (g *Generator) lowerWhile(node *ast.WhileStmt) {
	start := g.newLabel("while_start_")
	body := g.newLabel("while_body_")
	end := g.newLabel("while_end_")

	g.breakStack = append(g.breakStack, end)
	g.continueStack = append(g.continueStack, start)

	g.emit(&Mark{Label: start, SourceLine: node.Line})
	cond := g.lowerExpr(node.Cond)
	g.emit(&CondJump{Cond: cond, True: body, False: end, SourceLine: node.Line})
	g.emit(&Mark{Label: body, SourceLine: node.Line})
	g.lowerBlock(node.Body)
	g.emit(&Jump{Target: start, SourceLine: node.Line})
	g.emit(&Mark{Label: end, SourceLine: node.Line})

	g.breakStack = g.breakStack[:len(g.breakStack)-1]
	g.continueStack = g.continueStack[:len(g.continueStack)-1]
}

// lowerForIn wraps any iterable value in the runtime iterator protocol:
//
//	iter = CALL __iter__ 1
//	start:
//	  has = CALL __has_next__ 1
//	  IF has GOTO body ELSE end
//	body:
//	  var = CALL __next__ 1
//	  <body>
//	  GOTO start
//	end:
func (g *Generator) lowerForIn(node *ast.ForInStmt) {
	iterT := g.newTemp()
	hasT := g.newTemp()
	start := g.newLabel("for_start_")
	body := g.newLabel("for_body_")
	end := g.newLabel("for_end_")

	iterable := g.lowerExpr(node.Iterable)
	g.emit(&PushArg{Value: iterable, SourceLine: node.Line})
	g.emit(&Call{Dest: &iterT, Func: "__iter__", NumArgs: 1, SourceLine: node.Line})

	g.breakStack = append(g.breakStack, end)
	g.continueStack = append(g.continueStack, start)

	g.emit(&Mark{Label: start, SourceLine: node.Line})
	g.emit(&PushArg{Value: iterT, SourceLine: node.Line})
	g.emit(&Call{Dest: &hasT, Func: "__has_next__", NumArgs: 1, SourceLine: node.Line})
	g.emit(&CondJump{Cond: hasT, True: body, False: end, SourceLine: node.Line})

	g.emit(&Mark{Label: body, SourceLine: node.Line})
	nextT := g.newTemp()
	g.emit(&PushArg{Value: iterT, SourceLine: node.Line})
	g.emit(&Call{Dest: &nextT, Func: "__next__", NumArgs: 1, SourceLine: node.Line})
	g.emit(&Copy{Dst: Var(node.Variable), Src: nextT, SourceLine: node.Line})
	g.lowerBlock(node.Body)
	g.emit(&Jump{Target: start, SourceLine: node.Line})
	g.emit(&Mark{Label: end, SourceLine: node.Line})

	g.breakStack = g.breakStack[:len(g.breakStack)-1]
	g.continueStack = g.continueStack[:len(g.continueStack)-1]
}

// lowerFuncDecl emits FUNC name: followed by the body. Parameters are not
// loaded explicitly; the calling convention binds them as named variables.
// A value-less return is appended when the body does not already end in one.
func (g *Generator) lowerFuncDecl(node *ast.FuncDecl) {
	g.emit(&FuncEntry{Name: node.Name, SourceLine: node.Line})
	g.lowerBlock(node.Body)
	if !endsInReturn(node.Body) {
		g.emit(&Ret{Value: nil, SourceLine: node.Line})
	}
}

func endsInReturn(body []ast.Statement) bool {
	if len(body) == 0 {
		return false
	}
	_, ok := body[len(body)-1].(*ast.ReturnStmt)
	return ok
}

// lowerClassDecl emits the class body as a block that is jumped over at
// definition time, with each method lowered as its own function block.
func (g *Generator) lowerClassDecl(node *ast.ClassDecl) {
	classLabel := g.newLabel(fmt.Sprintf("class_%s_", node.Name))
	endLabel := g.newLabel(fmt.Sprintf("class_%s_end_", node.Name))
	g.emit(&Jump{Target: endLabel, SourceLine: node.Line})
	g.emit(&Mark{Label: classLabel, SourceLine: node.Line})
	for _, method := range node.Methods {
		g.lowerFuncDecl(method)
	}
	g.emit(&Mark{Label: endLabel, SourceLine: node.Line})
}

// lowerTry emits the protected-region protocol. Both the normal exit and the
// catch path converge by jumping to the finally block when present, otherwise
// straight to the end label; the finally body runs unconditionally before end.
func (g *Generator) lowerTry(node *ast.TryStmt) {
	catchLabel := g.newLabel("catch_")
	var finallyLabel *Label
	if node.Finally != nil {
		l := g.newLabel("finally_")
		finallyLabel = &l
	}
	endLabel := g.newLabel("try_end_")

	after := endLabel
	if finallyLabel != nil {
		after = *finallyLabel
	}

	g.emit(&TryBegin{Catch: catchLabel, Finally: finallyLabel, SourceLine: node.Line})
	g.lowerBlock(node.Try)
	g.emit(&TryEnd{SourceLine: node.Line})
	g.emit(&Jump{Target: after, SourceLine: node.Line})

	g.emit(&Mark{Label: catchLabel, SourceLine: node.Line})
	g.emit(&CatchBegin{Var: node.CatchVar, SourceLine: node.Line})
	g.lowerBlock(node.Catch)
	g.emit(&Jump{Target: after, SourceLine: node.Line})

	if finallyLabel != nil {
		g.emit(&Mark{Label: *finallyLabel, SourceLine: node.Line})
		g.lowerBlock(node.Finally)
	}

	g.emit(&Mark{Label: endLabel, SourceLine: node.Line})
}

// --- Expressions ---

// lowerExpr lowers an expression and returns the operand holding its value,
// a fresh temp in nearly all cases. Sub-expressions are lowered strictly
// left to right.
func (g *Generator) lowerExpr(e ast.Expression) Operand {
	switch node := e.(type) {
	case *ast.NumberLit:
		t := g.newTemp()
		g.emit(&LoadConst{Dest: t, Value: Number(node.Value), SourceLine: node.Line})
		return t
	case *ast.StringLit:
		t := g.newTemp()
		g.emit(&LoadConst{Dest: t, Value: Str(node.Value), SourceLine: node.Line})
		return t
	case *ast.BoolLit:
		t := g.newTemp()
		g.emit(&LoadConst{Dest: t, Value: Bool(node.Value), SourceLine: node.Line})
		return t

	case *ast.ListLit:
		// Elements first, then a call to the runtime list constructor.
		elems := make([]Operand, len(node.Elements))
		for i, el := range node.Elements {
			elems[i] = g.lowerExpr(el)
		}
		for _, el := range elems {
			g.emit(&PushArg{Value: el, SourceLine: node.Line})
		}
		t := g.newTemp()
		g.emit(&Call{Dest: &t, Func: "__list__", NumArgs: len(node.Elements), SourceLine: node.Line})
		return t

	case *ast.DictLit:
		for _, pair := range node.Pairs {
			k := g.lowerExpr(pair.Key)
			v := g.lowerExpr(pair.Value)
			g.emit(&PushArg{Value: k, SourceLine: node.Line})
			g.emit(&PushArg{Value: v, SourceLine: node.Line})
		}
		t := g.newTemp()
		g.emit(&Call{Dest: &t, Func: "__dict__", NumArgs: len(node.Pairs) * 2, SourceLine: node.Line})
		return t

	case *ast.Ident:
		t := g.newTemp()
		g.emit(&Copy{Dst: t, Src: Var(node.Name), SourceLine: node.Line})
		return t

	case *ast.BinaryExpr:
		left := g.lowerExpr(node.Left)
		right := g.lowerExpr(node.Right)
		t := g.newTemp()
		g.emit(&BinOp{Dest: t, Op: node.Op, Left: left, Right: right, SourceLine: node.Line})
		return t

	case *ast.UnaryExpr:
		operand := g.lowerExpr(node.Operand)
		t := g.newTemp()
		g.emit(&UnOp{Dest: t, Op: node.Op, Operand: operand, SourceLine: node.Line})
		return t

	case *ast.ParenExpr:
		return g.lowerExpr(node.Expr)

	case *ast.CallExpr:
		for _, arg := range node.Args {
			argT := g.lowerExpr(arg)
			g.emit(&PushArg{Value: argT, SourceLine: node.Line})
		}
		t := g.newTemp()
		g.emit(&Call{Dest: &t, Func: node.Name, NumArgs: len(node.Args), SourceLine: node.Line})
		return t

	case *ast.LambdaExpr:
		return g.lowerLambda(node)

	case *ast.NewExpr:
		t := g.newTemp()
		g.emit(&NewObject{Dest: t, Class: node.ClassName, SourceLine: node.Line})
		for _, arg := range node.Args {
			argT := g.lowerExpr(arg)
			g.emit(&PushArg{Value: argT, SourceLine: node.Line})
		}
		// The constructor receives the new object implicitly.
		initT := g.newTemp()
		g.emit(&Call{
			Dest:       &initT,
			Func:       node.ClassName + ".__init__",
			NumArgs:    len(node.Args),
			SourceLine: node.Line,
		})
		return t

	case *ast.MethodCallExpr:
		objT := g.lowerExpr(node.Object)
		// Receiver rides as the implicit leading argument.
		g.emit(&PushArg{Value: objT, SourceLine: node.Line})
		for _, arg := range node.Args {
			argT := g.lowerExpr(arg)
			g.emit(&PushArg{Value: argT, SourceLine: node.Line})
		}
		t := g.newTemp()
		g.emit(&Call{Dest: &t, Func: node.Method, NumArgs: len(node.Args) + 1, SourceLine: node.Line})
		return t

	case *ast.FieldAccessExpr:
		objT := g.lowerExpr(node.Object)
		t := g.newTemp()
		g.emit(&FieldLoad{Dest: t, Object: objT, Field: node.Field, SourceLine: node.Line})
		return t

	case *ast.ThisExpr:
		t := g.newTemp()
		g.emit(&Copy{Dst: t, Src: Var("__self__"), SourceLine: node.Line})
		return t

	case *ast.SuperExpr:
		for _, arg := range node.Args {
			argT := g.lowerExpr(arg)
			g.emit(&PushArg{Value: argT, SourceLine: node.Line})
		}
		t := g.newTemp()
		g.emit(&Call{
			Dest:       &t,
			Func:       "__super__." + node.Method,
			NumArgs:    len(node.Args),
			SourceLine: node.Line,
		})
		return t

	case *ast.IndexExpr:
		objT := g.lowerExpr(node.Object)
		idxT := g.lowerExpr(node.Index)
		t := g.newTemp()
		g.emit(&IndexLoad{Dest: t, Object: objT, Index: idxT, SourceLine: node.Line})
		return t

	default:
		// Unknown expression variants type as an untouched temp so lowering
		// of the enclosing construct can proceed.
		return g.newTemp()
	}
}

// lowerLambda emits the lambda as an inline anonymous function block that is
// jumped over at definition time. The definition site yields a temp bound to
// the synthetic name, which the runtime resolves to a callable.
func (g *Generator) lowerLambda(node *ast.LambdaExpr) Operand {
	name := g.newLambdaName()
	end := g.newLabel("lambda_end_")

	g.emit(&Jump{Target: end, SourceLine: node.Line})
	g.emit(&FuncEntry{Name: name, SourceLine: node.Line})
	bodyT := g.lowerExpr(node.Body)
	g.emit(&Ret{Value: bodyT, SourceLine: node.Line})
	g.emit(&Mark{Label: end, SourceLine: node.Line})

	t := g.newTemp()
	g.emit(&LoadConst{Dest: t, Value: Str(name), SourceLine: node.Line})
	return t
}
