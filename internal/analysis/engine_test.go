package analysis

import (
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classroom-tools/aec/internal/scanner"
)

func scanSource(t *testing.T, src string) *AnalysisResult {
	t.Helper()
	res, err := Scan(strings.NewReader(src), scanner.FileRef("t.s"), Options{}, logrus.New())
	require.NoError(t, err)
	return res
}

const wellFormedProgram = `
.global main
.text
main:
    push {lr}
    mov r0, #1
    bl addOne
    mov r1, r0
    svc #0
    pop {pc}
addOne:
    push {lr}
    mov r0, #2
    bl helper
    pop {lr}
    bx lr
helper:
    bx lr
.data
count: .word 0
`

func TestScanWellFormedProgram(t *testing.T) {
	res := scanSource(t, wellFormedProgram)

	assert.False(t, res.Catastrophic())
	assert.True(t, res.ExitSeen)
	assert.Empty(t, res.NoReturnErrors)
	assert.Empty(t, res.LRSaveErrors)
	assert.Empty(t, res.BranchOutErrors)
	assert.Contains(t, res.Subroutines, "addOne")
	assert.Contains(t, res.Subroutines, "helper")
}

func TestScanDataSectionMissingIsCatastrophic(t *testing.T) {
	res := scanSource(t, ".global main\n.text\nmain:\n  svc #0\n")
	assert.True(t, res.Catastrophic())
	assert.True(t, res.DataSectionMissing)
	assert.Empty(t, res.NoReturnErrors, "structural checks are skipped once catastrophic")
}

func TestScanDataBeforeGlobalIsCatastrophic(t *testing.T) {
	src := ".data\ncount: .word 0\n.global main\n.text\nmain:\n  svc #0\n"
	res := scanSource(t, src)
	assert.True(t, res.DataBeforeGlobal)
	assert.True(t, res.Catastrophic())
}

func TestScanNoReturnSubroutine(t *testing.T) {
	src := `
.global main
.text
main:
    bl broken
    svc #0
broken:
    mov r0, #1
.data
count: .word 0
`
	res := scanSource(t, src)
	require.Len(t, res.NoReturnErrors, 1)
	assert.Contains(t, res.NoReturnErrors[0], "broken")
}

func TestScanMissingLRSave(t *testing.T) {
	src := `
.global main
.text
main:
    bl helper
    svc #0
helper:
    bl other
    bx lr
other:
    bx lr
.data
count: .word 0
`
	res := scanSource(t, src)
	require.Len(t, res.LRSaveErrors, 1)
	assert.Contains(t, res.LRSaveErrors[0], "helper")
}

func TestScanBranchOutOfBounds(t *testing.T) {
	src := `
.global main
.text
main:
    bl helper
    svc #0
helper:
    push {lr}
    b elsewhere
    pop {pc}
elsewhere:
    bx lr
.data
count: .word 0
`
	res := scanSource(t, src)
	require.Len(t, res.BranchOutErrors, 1)
	assert.Contains(t, res.BranchOutErrors[0], "helper")
}

func TestScanRestrictedRegisterUse(t *testing.T) {
	res := scanSource(t, ".global main\n.text\nmain:\n  ldr r13, [r1]\n  svc #0\n.data\nx: .word 0\n")
	require.Len(t, res.RestrictedRegisterErrors, 1)
	assert.Contains(t, res.RestrictedRegisterErrors[0], "r13")
}

func TestScanUseBeforeLoad(t *testing.T) {
	// r1 is the mov's destination (never flagged); r0 is read without ever
	// having been loaded first.
	res := scanSource(t, ".global main\n.text\nmain:\n  mov r1, r0\n  svc #0\n.data\nx: .word 0\n")
	require.Len(t, res.RegisterUseBeforeLoad, 1)
	assert.Contains(t, res.RegisterUseBeforeLoad[0], "0")
}

func TestScanPushPopImbalance(t *testing.T) {
	res := scanSource(t, ".global main\n.text\nmain:\n  push {r4, r5}\n  pop {r4}\n  svc #0\n.data\nx: .word 0\n")
	assert.Equal(t, 2, res.PushCount)
	assert.Equal(t, 1, res.PopCount)
	msgs := res.ExitAndBalanceMessages()
	assert.Contains(t, strings.Join(msgs, "\n"), "More pushes detected than pops")
}

func TestScanUnwantedInstruction(t *testing.T) {
	res := scanSource(t, ".global main\n.text\nmain:\n  ldm r0, {r1}\n  svc #0\n.data\nx: .word 0\n")
	require.Len(t, res.UnwantedInstructions, 1)
}

func TestScanUnterminatedString(t *testing.T) {
	res := scanSource(t, ".global main\n.text\nmain:\n  svc #0\n.data\nmsg: .asciz \"hello\"\n")
	require.Len(t, res.StringErrors, 1)
}

func TestScanUnusedSymbols(t *testing.T) {
	res := scanSource(t, ".global main\n.text\nmain:\n  svc #0\n.data\nunused: .word 0\n")
	require.Len(t, res.UnusedVariables, 1)
	assert.Contains(t, res.UnusedVariables[0], "unused")
}

func TestScanConditionFlagUnused(t *testing.T) {
	res := scanSource(t, ".global main\n.text\nmain:\n  cmp r0, #1\n  mov r1, #2\n  svc #0\n.data\nx: .word 0\n")
	require.Len(t, res.UnusedConditional, 1)
}

func TestScanConditionFlagUnusedReportsLineBeforeLongOperator(t *testing.T) {
	// cmp is on line 4; the next operator "mov" has length > 2 and its
	// last two characters ("ov") aren't a condition suffix, so the
	// original reports cmpLine-1, not cmpLine.
	res := scanSource(t, ".global main\n.text\nmain:\n  cmp r0, #1\n  mov r1, #2\n  svc #0\n.data\nx: .word 0\n")
	require.Len(t, res.UnusedConditional, 1)
	assert.Contains(t, res.UnusedConditional[0], "line 3")
}

func TestScanConditionFlagUnusedReportsCmpLineForShortOperator(t *testing.T) {
	// "bx" is only 2 characters long, too short to carry a condition
	// suffix at all, so the original always reports cmpLine itself.
	res := scanSource(t, ".global main\n.text\nmain:\n  cmp r0, #1\n  bx lr\n.data\nx: .word 0\n")
	require.Len(t, res.UnusedConditional, 1)
	assert.Contains(t, res.UnusedConditional[0], "line 4")
}

func TestScanCyclomaticBaseIsOne(t *testing.T) {
	res := scanSource(t, ".global main\n.text\nmain:\n  svc #0\n.data\nx: .word 0\n")
	assert.Equal(t, 1, res.Cyclomatic)
}

func TestScanCyclomaticCountsBranchesAboveBase(t *testing.T) {
	res := scanSource(t, ".global main\n.text\nmain:\n  b main\n  bl main\n  svc #0\n.data\nx: .word 0\n")
	assert.Equal(t, 3, res.Cyclomatic)
}

func TestScanUnusedConstantIsFlagged(t *testing.T) {
	res := scanSource(t, ".equ FOO, 1\n.global main\n.text\nmain:\n  svc #0\n.data\nx: .word 0\n")
	require.Len(t, res.UnusedConstants, 1)
	assert.Contains(t, res.UnusedConstants[0], "FOO")
}

func TestScanUsedConstantIsNotFlagged(t *testing.T) {
	res := scanSource(t, ".equ FOO, 1\n.global main\n.text\nmain:\n  mov r0, =FOO\n  svc #0\n.data\nx: .word 0\n")
	assert.Empty(t, res.UnusedConstants)
}
