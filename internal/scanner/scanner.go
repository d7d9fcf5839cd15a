package scanner

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/smasher164/xid"
)

// LineScanner walks the whitespace-delimited tokens of a single,
// already comment-stripped source line. It is a rune cursor in the same
// style as sqlparser.Scanner's nextToken/scanWhitespace pair, specialized
// to AEC's much simpler whitespace grammar: there is no quoting, no
// multi-character operators, just runs of non-space runes.
type LineScanner struct {
	input    string
	file     FileRef
	line     int
	curIndex int
}

// NewLineScanner builds a scanner over the given (comment-stripped) line
// text, reporting positions against file/line.
func NewLineScanner(file FileRef, line int, input string) *LineScanner {
	return &LineScanner{input: input, file: file, line: line}
}

// Next returns the next whitespace-delimited token and the position of its
// first byte, or ok=false once the line is exhausted.
func (s *LineScanner) Next() (token string, pos Pos, ok bool) {
	s.skipWhitespace()
	if s.curIndex >= len(s.input) {
		return "", Pos{}, false
	}
	start := s.curIndex
	for s.curIndex < len(s.input) {
		r, w := utf8.DecodeRuneInString(s.input[s.curIndex:])
		if unicode.IsSpace(r) {
			break
		}
		s.curIndex += w
	}
	token = s.input[start:s.curIndex]
	pos = Pos{File: s.file, Line: s.line, Col: start + 1}
	return token, pos, true
}

func (s *LineScanner) skipWhitespace() {
	for s.curIndex < len(s.input) {
		r, w := utf8.DecodeRuneInString(s.input[s.curIndex:])
		if !unicode.IsSpace(r) {
			return
		}
		s.curIndex += w
	}
}

// Tokens collects every remaining token on the line, in order.
func (s *LineScanner) Tokens() []string {
	var out []string
	for {
		t, _, ok := s.Next()
		if !ok {
			return out
		}
		out = append(out, t)
	}
}

// SplitComment returns the prefix of raw up to (not including) the first
// '@' or '/' rune. Unlike a paired-delimiter comment, AEC's comment runs
// to the end of the physical line, so a single IndexAny is all the
// detection a comment needs.
func SplitComment(raw string) string {
	idx := strings.IndexAny(raw, "@/")
	if idx == -1 {
		return raw
	}
	return raw[:idx]
}

// HasComment reports whether raw contains a comment marker anywhere, which
// is a looser test than SplitComment: a code line "has a comment" if '@'
// or '/' shows up anywhere in it, even past tokens SplitComment would keep.
func HasComment(raw string) bool {
	return strings.ContainsAny(raw, "@/")
}

// IsCommentOnly reports whether the first non-whitespace rune of raw opens
// a comment, meaning the entire line carries no code.
func IsCommentOnly(raw string) bool {
	trimmed := strings.TrimLeftFunc(raw, unicode.IsSpace)
	if trimmed == "" {
		return false
	}
	return trimmed[0] == '@' || trimmed[0] == '/'
}

// IsBlank reports whether raw contains only whitespace.
func IsBlank(raw string) bool {
	return strings.TrimSpace(raw) == ""
}

// IsDirectiveWord reports whether tok opens a directive: a leading '.'
// followed by an identifier-starting rune. Grounded on the teacher's
// xid.Start-based identifier-start test in sqlparser.Scanner.scanIdentifier.
func IsDirectiveWord(tok string) bool {
	if len(tok) < 2 || tok[0] != '.' {
		return false
	}
	r, _ := utf8.DecodeRuneInString(tok[1:])
	return xid.Start(r)
}

// IsLabelOrVariableDef reports whether tok ends with a ':', the shape
// shared by label and variable definitions (the surrounding scan state
// decides which, based on whether it's inside a .data section).
func IsLabelOrVariableDef(tok string) bool {
	return strings.HasSuffix(tok, ":")
}

// ClassifyOperator buckets a mnemonic token into its OperatorKind family.
// Matching is case-insensitive: any token starting with b is a branch,
// the load/store/move families match by substring, and everything else
// by exact spelling -- mirroring the original tool's
// token.find("ldr") / token.find("mov") / token.find("str") substring
// tests alongside its exact-match tests for push/pop/cmp/svc.
func ClassifyOperator(tok string) OperatorKind {
	lower := strings.ToLower(tok)
	if lower == "" {
		return OpOther
	}
	if lower[0] == 'b' {
		return OpBranch
	}
	switch lower {
	case "cmp":
		return OpCompare
	case "push":
		return OpPush
	case "pop":
		return OpPop
	case "svc":
		return OpSupervisorCall
	case "swi", "ldm", "ltm":
		return OpUnwanted
	}
	switch {
	case strings.Contains(lower, "ldr"):
		return OpLoad
	case strings.Contains(lower, "mov"):
		return OpMove
	case strings.Contains(lower, "str"):
		return OpStore
	}
	return OpOther
}

// ClassifyBranch distinguishes the three spelled-out branch mnemonics from
// every other b/B-leading token (conditional forms like beq, bne, ...).
func ClassifyBranch(tok string) BranchVariant {
	switch strings.ToLower(tok) {
	case "b":
		return BranchPlain
	case "bl":
		return BranchLink
	case "bx":
		return BranchExchange
	default:
		return BranchOther
	}
}
