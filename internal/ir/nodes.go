package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// Temp is a compiler-generated temporary variable (t0, t1, ...).
// Temps are unique within one generation session and never reused.
type Temp string

// Label is a jump target (L0, while_start_3, ...), unique per session
type Label string

// Operand is anything that can appear as a 3AC operand: a temp, a named
// source variable, or a literal.
type Operand interface {
	operandNode()
	String() string
}

func (t Temp) operandNode()   {}
func (t Temp) String() string { return string(t) }

// Var names a source-level variable
type Var string

func (v Var) operandNode()   {}
func (v Var) String() string { return string(v) }

// Number is a numeric literal operand
type Number float64

func (n Number) operandNode() {}
func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'g', -1, 64)
}

// Str is a string literal operand
type Str string

func (s Str) operandNode()   {}
func (s Str) String() string { return strconv.Quote(string(s)) }

// Bool is a boolean literal operand
type Bool bool

func (b Bool) operandNode() {}
func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

// Instr is the interface for all 3AC instructions. Every instruction carries
// the source line it was lowered from, for diagnostics.
type Instr interface {
	Pos() int
	String() string
	instrNode()
}

// LoadConst loads a literal into a temp: t0 = 42
type LoadConst struct {
	Dest       Temp
	Value      Operand
	SourceLine int
}

func (i *LoadConst) Pos() int       { return i.SourceLine }
func (i *LoadConst) instrNode()     {}
func (i *LoadConst) String() string { return fmt.Sprintf("    %s = %s", i.Dest, i.Value) }

// Copy copies between a named variable and a temp, in either direction:
// x = t3 (store) or t4 = x (load).
type Copy struct {
	Dst        Operand // Temp or Var
	Src        Operand // Temp or Var
	SourceLine int
}

func (i *Copy) Pos() int       { return i.SourceLine }
func (i *Copy) instrNode()     {}
func (i *Copy) String() string { return fmt.Sprintf("    %s = %s", i.Dst, i.Src) }

// BinOp computes a binary operation: t2 = t0 + t1
type BinOp struct {
	Dest       Temp
	Op         string
	Left       Operand
	Right      Operand
	SourceLine int
}

func (i *BinOp) Pos() int   { return i.SourceLine }
func (i *BinOp) instrNode() {}
func (i *BinOp) String() string {
	return fmt.Sprintf("    %s = %s %s %s", i.Dest, i.Left, i.Op, i.Right)
}

// UnOp computes a unary operation: t1 = - t0
type UnOp struct {
	Dest       Temp
	Op         string
	Operand    Operand
	SourceLine int
}

func (i *UnOp) Pos() int       { return i.SourceLine }
func (i *UnOp) instrNode()     {}
func (i *UnOp) String() string { return fmt.Sprintf("    %s = %s %s", i.Dest, i.Op, i.Operand) }

// Mark defines a jump target at the current position
type Mark struct {
	Label      Label
	SourceLine int
}

func (i *Mark) Pos() int       { return i.SourceLine }
func (i *Mark) instrNode()     {}
func (i *Mark) String() string { return fmt.Sprintf("%s:", i.Label) }

// Jump is an unconditional jump
type Jump struct {
	Target     Label
	SourceLine int
}

func (i *Jump) Pos() int       { return i.SourceLine }
func (i *Jump) instrNode()     {}
func (i *Jump) String() string { return fmt.Sprintf("    GOTO %s", i.Target) }

// CondJump jumps to True when the condition holds, otherwise to False
type CondJump struct {
	Cond       Operand
	True       Label
	False      Label
	SourceLine int
}

func (i *CondJump) Pos() int   { return i.SourceLine }
func (i *CondJump) instrNode() {}
func (i *CondJump) String() string {
	return fmt.Sprintf("    IF %s GOTO %s ELSE %s", i.Cond, i.True, i.False)
}

// FuncEntry marks the entry point of a function definition
type FuncEntry struct {
	Name       string
	SourceLine int
}

func (i *FuncEntry) Pos() int       { return i.SourceLine }
func (i *FuncEntry) instrNode()     {}
func (i *FuncEntry) String() string { return fmt.Sprintf("FUNC %s:", i.Name) }

// PushArg pushes one argument for the next call
type PushArg struct {
	Value      Operand
	SourceLine int
}

func (i *PushArg) Pos() int       { return i.SourceLine }
func (i *PushArg) instrNode()     {}
func (i *PushArg) String() string { return fmt.Sprintf("    PARAM %s", i.Value) }

// Call invokes a named function with NumArgs pre-pushed arguments.
// Dest is nil when the result is discarded.
type Call struct {
	Dest       *Temp
	Func       string
	NumArgs    int
	SourceLine int
}

func (i *Call) Pos() int   { return i.SourceLine }
func (i *Call) instrNode() {}
func (i *Call) String() string {
	if i.Dest != nil {
		return fmt.Sprintf("    %s = CALL %s %d", *i.Dest, i.Func, i.NumArgs)
	}
	return fmt.Sprintf("    CALL %s %d", i.Func, i.NumArgs)
}

// Ret returns from the current function; Value is nil for a bare return
type Ret struct {
	Value      Operand
	SourceLine int
}

func (i *Ret) Pos() int   { return i.SourceLine }
func (i *Ret) instrNode() {}
func (i *Ret) String() string {
	if i.Value != nil {
		return fmt.Sprintf("    RETURN %s", i.Value)
	}
	return "    RETURN"
}

// NewObject allocates an object tagged with a class name: t5 = NEW Person
type NewObject struct {
	Dest       Temp
	Class      string
	SourceLine int
}

func (i *NewObject) Pos() int       { return i.SourceLine }
func (i *NewObject) instrNode()     {}
func (i *NewObject) String() string { return fmt.Sprintf("    %s = NEW %s", i.Dest, i.Class) }

// FieldLoad reads an object field: t6 = t5.naam
type FieldLoad struct {
	Dest       Temp
	Object     Operand
	Field      string
	SourceLine int
}

func (i *FieldLoad) Pos() int   { return i.SourceLine }
func (i *FieldLoad) instrNode() {}
func (i *FieldLoad) String() string {
	return fmt.Sprintf("    %s = %s.%s", i.Dest, i.Object, i.Field)
}

// FieldStore writes an object field: t5.naam = t0
type FieldStore struct {
	Object     Operand
	Field      string
	Value      Operand
	SourceLine int
}

func (i *FieldStore) Pos() int   { return i.SourceLine }
func (i *FieldStore) instrNode() {}
func (i *FieldStore) String() string {
	return fmt.Sprintf("    %s.%s = %s", i.Object, i.Field, i.Value)
}

// IndexLoad reads an element: t7 = t0[t1]
type IndexLoad struct {
	Dest       Temp
	Object     Operand
	Index      Operand
	SourceLine int
}

func (i *IndexLoad) Pos() int   { return i.SourceLine }
func (i *IndexLoad) instrNode() {}
func (i *IndexLoad) String() string {
	return fmt.Sprintf("    %s = %s[%s]", i.Dest, i.Object, i.Index)
}

// IndexStore writes an element: t0[t1] = t2
type IndexStore struct {
	Object     Operand
	Index      Operand
	Value      Operand
	SourceLine int
}

func (i *IndexStore) Pos() int   { return i.SourceLine }
func (i *IndexStore) instrNode() {}
func (i *IndexStore) String() string {
	return fmt.Sprintf("    %s[%s] = %s", i.Object, i.Index, i.Value)
}

// Print emits one or more values
type Print struct {
	Args       []Operand
	SourceLine int
}

func (i *Print) Pos() int   { return i.SourceLine }
func (i *Print) instrNode() {}
func (i *Print) String() string {
	parts := make([]string, len(i.Args))
	for j, a := range i.Args {
		parts[j] = a.String()
	}
	return fmt.Sprintf("    PRINT %s", strings.Join(parts, ", "))
}

// Input reads user input into a named variable, with an optional prompt
type Input struct {
	Variable   string
	Prompt     Operand // nil when no prompt
	SourceLine int
}

func (i *Input) Pos() int   { return i.SourceLine }
func (i *Input) instrNode() {}
func (i *Input) String() string {
	if i.Prompt != nil {
		return fmt.Sprintf("    INPUT %s %s", i.Variable, i.Prompt)
	}
	return fmt.Sprintf("    INPUT %s", i.Variable)
}

// Throw raises an exception value
type Throw struct {
	Value      Operand
	SourceLine int
}

func (i *Throw) Pos() int       { return i.SourceLine }
func (i *Throw) instrNode()     {}
func (i *Throw) String() string { return fmt.Sprintf("    THROW %s", i.Value) }

// TryBegin opens a protected region with a catch target and an optional
// finally target.
type TryBegin struct {
	Catch      Label
	Finally    *Label // nil when the try has no finally block
	SourceLine int
}

func (i *TryBegin) Pos() int   { return i.SourceLine }
func (i *TryBegin) instrNode() {}
func (i *TryBegin) String() string {
	if i.Finally != nil {
		return fmt.Sprintf("    TRY_BEGIN catch=%s finally=%s", i.Catch, *i.Finally)
	}
	return fmt.Sprintf("    TRY_BEGIN catch=%s", i.Catch)
}

// TryEnd closes a protected region
type TryEnd struct {
	SourceLine int
}

func (i *TryEnd) Pos() int       { return i.SourceLine }
func (i *TryEnd) instrNode()     {}
func (i *TryEnd) String() string { return "    TRY_END" }

// CatchBegin starts a catch block, binding the exception to Var when non-empty
type CatchBegin struct {
	Var        string
	SourceLine int
}

func (i *CatchBegin) Pos() int   { return i.SourceLine }
func (i *CatchBegin) instrNode() {}
func (i *CatchBegin) String() string {
	if i.Var != "" {
		return fmt.Sprintf("    CATCH AS %s", i.Var)
	}
	return "    CATCH"
}

// Program is the ordered 3AC instruction sequence for one compilation.
// Append-only during generation, read-only afterwards.
type Program struct {
	instrs []Instr
}

// Append adds a single instruction
func (p *Program) Append(instr Instr) {
	p.instrs = append(p.instrs, instr)
}

// Extend adds multiple instructions
func (p *Program) Extend(instrs []Instr) {
	p.instrs = append(p.instrs, instrs...)
}

// Instructions returns the instruction sequence in emission order
func (p *Program) Instructions() []Instr {
	return p.instrs
}

// Len returns the number of instructions
func (p *Program) Len() int {
	return len(p.instrs)
}

// Render returns the stable text listing: one instruction per line, labels
// and function entries unindented with a trailing colon, everything else
// indented. Tooling may snapshot this output, so the format is a contract.
func (p *Program) Render() string {
	var builder strings.Builder
	for i, instr := range p.instrs {
		builder.WriteString(instr.String())
		if i < len(p.instrs)-1 {
			builder.WriteString("\n")
		}
	}
	return builder.String()
}
