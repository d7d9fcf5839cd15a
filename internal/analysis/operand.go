package analysis

import "strings"

// Normalize strips the punctuation noise ARM operand syntax wraps around a
// bare value -- brackets, braces, commas, the write-back bang, the
// immediate/literal-pool sigils -- so that "r1,", "[r1,", "r1]", and "r1"
// all collapse to the same Halstead operand and the same register name.
//
// The twelve cases below are evaluated in order and are NOT equivalent to
// each other for overlapping shapes (e.g. a shift operand like
// "[r1,r2,lsl" would only ever match the "[r1," branch and come out as
// "r1,r2,ls"); this is a direct,
// deliberate port of the original ordered cascade, not a general-purpose
// parser, and is left exactly as ambiguous as the original when an
// operand's shape satisfies more than one case.
func Normalize(token string) string {
	hasComma := strings.Contains(token, ",")
	hasOpenBracket := strings.Contains(token, "[")
	hasCloseBracket := strings.Contains(token, "]")
	hasBang := strings.Contains(token, "!")
	hasOpenBrace := strings.Contains(token, "{")
	hasCloseBrace := strings.Contains(token, "}")
	hasEquals := strings.Contains(token, "=")
	hasHash := strings.Contains(token, "#")

	switch {
	case hasComma && !hasOpenBracket && !hasOpenBrace:
		// r1,
		return token[:len(token)-1]
	case hasOpenBracket && !hasCloseBracket && hasComma:
		// [r1,
		return token[1 : len(token)-1]
	case hasOpenBracket && hasCloseBracket && !hasBang && !hasComma:
		// [r1]
		return token[1 : len(token)-1]
	case hasOpenBracket && hasCloseBracket && !hasBang && hasComma:
		// [r1],
		return token[1 : len(token)-2]
	case !hasOpenBracket && hasCloseBracket && !hasBang && !hasHash:
		// r1]
		return token[:len(token)-1]
	case hasOpenBracket && hasCloseBracket && hasBang:
		// [r1]!
		return token[1 : len(token)-2]
	case hasOpenBrace && hasCloseBrace:
		// {r1}
		return token[1 : len(token)-1]
	case hasOpenBrace && !hasCloseBrace && hasComma:
		// {r1,
		return token[1 : len(token)-1]
	case !hasOpenBrace && hasCloseBrace && !hasComma:
		// r1}
		return token[:len(token)-1]
	case hasEquals:
		// =variable
		return token[1:]
	case hasHash && !hasCloseBracket:
		// #literal
		return token[1:]
	case hasHash && hasCloseBracket:
		// #literal]
		return token[1 : len(token)-1]
	default:
		return token
	}
}
