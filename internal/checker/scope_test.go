package checker

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestDefineAndResolve(t *testing.T) {
	scope := NewScope(nil)
	scope.Define(&Symbol{Name: "x", Kind: SymVariable, Type: TagNumber, DeclLine: 1})

	sym := scope.Resolve("x")
	be.True(t, sym != nil)
	be.Equal(t, sym.Type, TagNumber)
	be.Equal(t, sym.Kind, SymVariable)
}

func TestResolveWalksParents(t *testing.T) {
	global := NewScope(nil)
	global.Define(&Symbol{Name: "x", Kind: SymVariable, Type: TagNumber, DeclLine: 1})

	inner := global.Enter().Enter()
	sym := inner.Resolve("x")
	be.True(t, sym != nil)
	be.Equal(t, sym.Type, TagNumber)
}

func TestResolveMissing(t *testing.T) {
	scope := NewScope(nil)
	be.True(t, scope.Resolve("ghost") == nil)
}

func TestShadowingInnermostWins(t *testing.T) {
	global := NewScope(nil)
	global.Define(&Symbol{Name: "x", Kind: SymVariable, Type: TagNumber, DeclLine: 1})

	inner := global.Enter()
	inner.Define(&Symbol{Name: "x", Kind: SymVariable, Type: TagString, DeclLine: 5})

	be.Equal(t, inner.Resolve("x").Type, TagString)
	be.Equal(t, global.Resolve("x").Type, TagNumber)
}

func TestResolveLocalIgnoresParents(t *testing.T) {
	global := NewScope(nil)
	global.Define(&Symbol{Name: "x", Kind: SymVariable, Type: TagNumber, DeclLine: 1})

	inner := global.Enter()
	be.True(t, inner.ResolveLocal("x") == nil)
	be.True(t, global.ResolveLocal("x") != nil)
}

func TestDefineOverwrites(t *testing.T) {
	scope := NewScope(nil)
	scope.Define(&Symbol{Name: "x", Kind: SymVariable, Type: TagNumber, DeclLine: 1})
	scope.Define(&Symbol{Name: "x", Kind: SymVariable, Type: TagString, DeclLine: 2})

	sym := scope.Resolve("x")
	be.Equal(t, sym.Type, TagString)
	be.Equal(t, sym.DeclLine, 2)
}

func TestExitReturnsParent(t *testing.T) {
	global := NewScope(nil)
	inner := global.Enter()
	be.Equal(t, inner.Exit(), global)
}

func TestExitRootPanics(t *testing.T) {
	defer func() {
		be.True(t, recover() != nil)
	}()
	NewScope(nil).Exit()
}

func TestAllNamesTransitiveAndSorted(t *testing.T) {
	global := NewScope(nil)
	global.Define(&Symbol{Name: "zebra", Kind: SymVariable, Type: TagAny, DeclLine: 1})
	global.Define(&Symbol{Name: "apple", Kind: SymVariable, Type: TagAny, DeclLine: 1})

	inner := global.Enter()
	inner.Define(&Symbol{Name: "mango", Kind: SymVariable, Type: TagAny, DeclLine: 2})

	be.Equal(t, inner.AllNames(), []string{"apple", "mango", "zebra"})
	be.Equal(t, global.AllNames(), []string{"apple", "zebra"})
}

func TestAllNamesDeduplicatesShadowed(t *testing.T) {
	global := NewScope(nil)
	global.Define(&Symbol{Name: "x", Kind: SymVariable, Type: TagNumber, DeclLine: 1})

	inner := global.Enter()
	inner.Define(&Symbol{Name: "x", Kind: SymVariable, Type: TagString, DeclLine: 2})

	be.Equal(t, inner.AllNames(), []string{"x"})
}

func TestLocalNames(t *testing.T) {
	global := NewScope(nil)
	global.Define(&Symbol{Name: "outer", Kind: SymVariable, Type: TagAny, DeclLine: 1})

	inner := global.Enter()
	inner.Define(&Symbol{Name: "b", Kind: SymVariable, Type: TagAny, DeclLine: 2})
	inner.Define(&Symbol{Name: "a", Kind: SymVariable, Type: TagAny, DeclLine: 2})

	be.Equal(t, inner.LocalNames(), []string{"a", "b"})
}
