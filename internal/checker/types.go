package checker

// TypeTag is a coarse static type classification inferred during analysis.
// These are not full type objects: they are tags sufficient for the checks
// Merilang enforces. TagAny disables static checking wherever it appears as
// an operand.
type TypeTag int

const (
	TagNumber TypeTag = iota
	TagString
	TagBool
	TagList
	TagDict
	TagFunction
	TagClass
	TagNone
	TagAny
)

// String returns the string representation of the type tag
func (t TypeTag) String() string {
	switch t {
	case TagNumber:
		return "number"
	case TagString:
		return "string"
	case TagBool:
		return "bool"
	case TagList:
		return "list"
	case TagDict:
		return "dict"
	case TagFunction:
		return "function"
	case TagClass:
		return "class"
	case TagNone:
		return "none"
	case TagAny:
		return "any"
	default:
		return "unknown"
	}
}

// Operator classes. Merilang spells logical operators in Hindi.
var (
	numericOps = map[string]bool{
		"+": true, "-": true, "*": true, "/": true, "%": true,
		">": true, "<": true, ">=": true, "<=": true,
	}
	equalityOps = map[string]bool{"==": true, "!=": true}
	logicalOps  = map[string]bool{"aur": true, "ya": true}
	boolOps     = map[string]bool{
		">": true, "<": true, ">=": true, "<=": true,
		"==": true, "!=": true, "aur": true, "ya": true,
	}
)

// checkBinaryTypes reports whether op is illegal for left x right.
// The check only fires when both operand tags are known (not TagAny).
func checkBinaryTypes(op string, left, right TypeTag) bool {
	if left == TagAny || right == TagAny {
		return true // dynamic, skip static check
	}

	if numericOps[op] {
		if left == TagNumber && right == TagNumber {
			return true
		}
		if left == TagString && right == TagString && op == "+" {
			return true // string concatenation
		}
		return false
	}

	if equalityOps[op] {
		return true // equality is valid between any types
	}

	if logicalOps[op] {
		// Both sides should be bool; allowed for now, reserved for
		// future strictness.
		return true
	}

	return true // unrecognised op, leave to the runtime
}

// binaryResultType returns the inferred tag of a binary expression
func binaryResultType(op string, left, right TypeTag) TypeTag {
	if boolOps[op] {
		return TagBool
	}
	if left == TagNumber && right == TagNumber {
		return TagNumber
	}
	if left == TagString && right == TagString {
		return TagString
	}
	return TagAny
}

// checkUnaryType reports whether op is legal for the operand tag.
// Skipped entirely (always legal) when the tag is TagAny.
func checkUnaryType(op string, operand TypeTag) bool {
	if operand == TagAny {
		return true
	}
	if op == "-" && operand != TagNumber {
		return false
	}
	if op == "nahi" && operand != TagBool {
		return false
	}
	return true
}

// unaryResultType returns the inferred tag of a unary expression
func unaryResultType(op string) TypeTag {
	switch op {
	case "-":
		return TagNumber
	case "nahi":
		return TagBool
	default:
		return TagAny
	}
}
