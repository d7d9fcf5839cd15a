package scanner

import (
	"testing"

	"github.com/alecthomas/repr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testTokens mirrors sqlparser.scanner_test.go's closure-factory pattern:
// build a small assertion helper once, then call it from a table loop.
func testTokens(t *testing.T, input string, want []string) {
	t.Helper()
	s := NewLineScanner("t.s", 1, input)
	got := s.Tokens()
	if !assert.Equal(t, want, got) {
		t.Logf("got tokens: %s", repr.String(got))
	}
}

func TestLineScannerTokens(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"single", "mov", []string{"mov"}},
		{"operator and operand", "mov r0, #1", []string{"mov", "r0,", "#1"}},
		{"leading and trailing whitespace", "   push {r4, lr}  ", []string{"push", "{r4,", "lr}"}},
		{"tabs", "\tldr\tr1,\t[r2]", []string{"ldr", "r1,", "[r2]"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			testTokens(t, c.input, c.want)
		})
	}
}

func TestSplitComment(t *testing.T) {
	require.Equal(t, "mov r0, #1 ", SplitComment("mov r0, #1 @ set up count"))
	require.Equal(t, "mov r0, #1 ", SplitComment("mov r0, #1 // set up count"))
	require.Equal(t, "mov r0, #1", SplitComment("mov r0, #1"))
}

func TestIsCommentOnly(t *testing.T) {
	assert.True(t, IsCommentOnly("  @ a full line comment"))
	assert.True(t, IsCommentOnly("// also a comment"))
	assert.False(t, IsCommentOnly("mov r0, #1 @ trailing"))
	assert.False(t, IsCommentOnly("   "))
}

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank(""))
	assert.True(t, IsBlank("   \t  "))
	assert.False(t, IsBlank("  b .\n"))
}

func TestIsDirectiveWord(t *testing.T) {
	assert.True(t, IsDirectiveWord(".global"))
	assert.True(t, IsDirectiveWord(".data"))
	assert.False(t, IsDirectiveWord("."))
	assert.False(t, IsDirectiveWord(".5"))
	assert.False(t, IsDirectiveWord("mov"))
}

func TestIsLabelOrVariableDef(t *testing.T) {
	assert.True(t, IsLabelOrVariableDef("main:"))
	assert.False(t, IsLabelOrVariableDef("main"))
}

func TestClassifyOperator(t *testing.T) {
	cases := []struct {
		tok  string
		want OperatorKind
	}{
		{"b", OpBranch},
		{"bl", OpBranch},
		{"beq", OpBranch},
		{"BX", OpBranch},
		{"ldr", OpLoad},
		{"ldrb", OpLoad},
		{"str", OpStore},
		{"strb", OpStore},
		{"mov", OpMove},
		{"movw", OpMove},
		{"cmp", OpCompare},
		{"push", OpPush},
		{"pop", OpPop},
		{"svc", OpSupervisorCall},
		{"SWI", OpUnwanted},
		{"ldm", OpUnwanted},
		{"add", OpOther},
	}
	for _, c := range cases {
		t.Run(c.tok, func(t *testing.T) {
			assert.Equal(t, c.want, ClassifyOperator(c.tok))
		})
	}
}

func TestClassifyBranch(t *testing.T) {
	assert.Equal(t, BranchPlain, ClassifyBranch("b"))
	assert.Equal(t, BranchPlain, ClassifyBranch("B"))
	assert.Equal(t, BranchLink, ClassifyBranch("bl"))
	assert.Equal(t, BranchExchange, ClassifyBranch("bx"))
	assert.Equal(t, BranchOther, ClassifyBranch("beq"))
}

func TestEnumStringers(t *testing.T) {
	assert.Equal(t, "branch", OpBranch.String())
	assert.Equal(t, "scanner.branch", OpBranch.GoString())
	assert.Equal(t, "pre-index", AddrPreIndex.String())
	assert.Equal(t, "label-def", RoleLabelDef.String())
}
