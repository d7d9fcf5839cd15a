package analysis

import (
	"strings"

	"github.com/classroom-tools/aec/internal/scanner"
)

// ClassifyAddressing buckets a load/store line into one of the seven
// addressing-mode shapes. It looks at the whole comment-stripped line
// (preComment) and the token count/last token, not at any single operand
// in isolation -- the cascade below is ordered by how cheap each check is
// to make, and earlier branches win on overlap (a literal pool load with
// a write-back bang, for instance, is reported as PCLiteral, never
// PreIndex).
func ClassifyAddressing(preComment string, tokens []string) scanner.AddressingMode {
	switch {
	case strings.Contains(preComment, "="):
		return scanner.AddrPCLiteral
	case len(tokens) == 3:
		return scanner.AddrIndirect
	case strings.Contains(preComment, "!"):
		return scanner.AddrPreIndex
	case strings.Contains(preComment, "PC") || strings.Contains(preComment, "pc"):
		return scanner.AddrPCRelative
	case len(tokens) == 4 && strings.HasSuffix(tokens[len(tokens)-1], "]"):
		return scanner.AddrIndirectWithOffset
	case len(tokens) == 4 && !strings.HasSuffix(tokens[len(tokens)-1], "]") && !strings.HasSuffix(tokens[len(tokens)-1], "!"):
		return scanner.AddrPostIndex
	default:
		return scanner.AddrUnsure
	}
}
