package analysis

import "github.com/classroom-tools/aec/internal/scanner"

// NumRegisters is the count of general-purpose ARM registers AEC tracks,
// r0 through r15.
const NumRegisters = 16

// restrictedFrom is the first register id considered restricted (the
// stack pointer, link register, and program counter: r13-r15).
const restrictedFrom = 13

func isRestricted(reg int) bool {
	return reg >= restrictedFrom && reg < NumRegisters
}

// scanState carries the facts that persist across the whole forward scan:
// which section the cursor is in, which registers have been loaded, and
// the two pending diagnostics (condition-code use, post-branch isolation)
// that a later line may or may not consume. This collapses the original
// tool's several dozen booleans into one small struct, per the analyzer's
// design notes on flag soup.
type scanState struct {
	inDataSection        bool
	dataSectionSeen      bool
	dataStartLine        int
	globalSeen           bool
	dataBeforeGlobal     bool

	pendingConditionalCheckLine int // 0 means unset
	pendingIsolationCheck       bool

	svcExitSeen bool

	registerLoaded map[int]struct{}

	pushCount int
	popCount  int
}

func newScanState() *scanState {
	return &scanState{registerLoaded: make(map[int]struct{})}
}

func (s *scanState) markLoaded(reg int) {
	if isRestricted(reg) {
		return
	}
	s.registerLoaded[reg] = struct{}{}
}

func (s *scanState) isLoaded(reg int) bool {
	_, ok := s.registerLoaded[reg]
	return ok
}

// clobberCallRegisters drops r0-r3 from the loaded set, the effect of a
// scanf/printf-style call on the registers it's conventionally passed in.
func (s *scanState) clobberCallRegisters() {
	for _, r := range []int{0, 1, 2, 3} {
		delete(s.registerLoaded, r)
	}
}

// lineState is reset at the start of every code line: it records what the
// scan learned about *this* line's operator so the operand loop that
// follows can react to it.
type lineState struct {
	lineNumber int

	operatorSeen  bool
	operatorKind  scanner.OperatorKind
	branchVariant scanner.BranchVariant

	restrictedRegisterCheck bool // set for ldr/mov: flag every r13-r15 operand
	isPush                  bool
	isPop                   bool
	isSVC                   bool
	pendingEqu              bool // t1 of this line was .equ
	movSeenPC               bool // "pc," seen as an operand of this mov

	reportedUseBeforeLoad map[int]struct{} // per-line dedup for register K
}

func newLineState(lineNumber int) *lineState {
	return &lineState{lineNumber: lineNumber, reportedUseBeforeLoad: make(map[int]struct{})}
}
