package ir

import (
	"fmt"
	"sort"
)

// Validate scans a program for label well-formedness and returns a list of
// error messages; an empty slice means the program is well formed. Every
// label referenced by a jump, conditional jump, or try-region marker must be
// defined by exactly one Mark instruction. Defined-but-unreferenced labels
// are allowed (class entry labels are marked but never jumped to).
func Validate(p *Program) []string {
	var errors []string

	defined := make(map[Label]int)
	referenced := make(map[Label]bool)

	for _, instr := range p.Instructions() {
		switch in := instr.(type) {
		case *Mark:
			defined[in.Label]++
		case *Jump:
			referenced[in.Target] = true
		case *CondJump:
			referenced[in.True] = true
			referenced[in.False] = true
		case *TryBegin:
			referenced[in.Catch] = true
			if in.Finally != nil {
				referenced[*in.Finally] = true
			}
		}
	}

	for label, count := range defined {
		if count > 1 {
			errors = append(errors, fmt.Sprintf("label %q defined %d times", label, count))
		}
	}
	for label := range referenced {
		if defined[label] == 0 {
			errors = append(errors, fmt.Sprintf("label %q referenced but never defined", label))
		}
	}

	sort.Strings(errors)
	return errors
}
