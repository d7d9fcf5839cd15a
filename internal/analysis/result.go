package analysis

import "sort"

// LabelRef names a subroutine label and the line it was defined on.
type LabelRef struct {
	Name string
	Line int
}

// lineSet is a deduplicating, sortable bag of line numbers (the original
// tool's unordered_set<int> register/use trackers, minus the C++).
type lineSet map[int]struct{}

func (s lineSet) add(line int) {
	s[line] = struct{}{}
}

func (s lineSet) sorted() []int {
	out := make([]int, 0, len(s))
	for l := range s {
		out = append(out, l)
	}
	sort.Ints(out)
	return out
}

// AnalysisResult is the data produced by scanning one assembly file: every
// count, symbol table, and diagnostic list the reporter and CSV sink draw
// from. It holds no behavior of its own.
type AnalysisResult struct {
	TotalLines           int
	BlankLines           int
	FullCommentLines     int
	LinesWithComment     int
	LinesWithoutComment  int
	DirectiveLines       int
	Cyclomatic           int

	TotalOperators  int
	TotalOperands   int
	UniqueOperators map[string]struct{}
	UniqueOperands  map[string]struct{}

	Labels      []LabelRef
	Variables   []string
	Constants   []string
	Subroutines map[string]struct{}

	RegisterLines [NumRegisters]lineSet

	StringErrors              []string
	UnwantedInstructions      []string
	RestrictedRegisterErrors  []string
	UnusedConditional         []string
	UnusedLabels              []string
	UnusedVariables           []string
	UnusedConstants           []string
	IsolatedCode              []string
	NoReturnErrors            []string
	LRSaveErrors              []string
	BranchOutErrors           []string
	RegisterUseBeforeLoad     []string

	SVCUses          []string
	SubroutineUses   []string
	BranchUses       []string
	DirectiveOrder   []string
	DirectiveUses    map[string][]int

	IndirectLines           []int
	IndirectWithOffsetLines []int
	PreIndexLines           []int
	PostIndexLines          []int
	PCRelativeLines         []int
	PCLiteralLines          []int
	UnsureLines             []int

	PushCount int
	PopCount  int
	ExitSeen  bool

	ReturnLines     lineSet
	BLCallLines     lineSet
	LRSaveLines     lineSet
	BadBranchLines  lineSet

	DataSectionMissing bool
	DataBeforeGlobal   bool

	// DataStartLine is the line the .data directive appeared on (0 if
	// DataSectionMissing). The structural checker uses it as the closing
	// bound of the last label's span.
	DataStartLine int
}

// NewResult returns a zero-valued result with every map/set field ready to
// accumulate into, so the engine never has to nil-check before writing.
func NewResult() *AnalysisResult {
	r := &AnalysisResult{
		UniqueOperators: make(map[string]struct{}),
		UniqueOperands:  make(map[string]struct{}),
		Subroutines:     make(map[string]struct{}),
		DirectiveUses:   make(map[string][]int),
		ReturnLines:     make(lineSet),
		BLCallLines:     make(lineSet),
		LRSaveLines:     make(lineSet),
		BadBranchLines:  make(lineSet),
		Cyclomatic:      1,
	}
	for i := range r.RegisterLines {
		r.RegisterLines[i] = make(lineSet)
	}
	return r
}

// Catastrophic reports whether the two fatal conditions (spec section on
// catastrophic vs diagnostic errors) suppress the normal report.
func (r *AnalysisResult) Catastrophic() bool {
	return r.DataSectionMissing || r.DataBeforeGlobal
}

// RegisterUseLines returns the sorted line numbers register reg was used
// on. reg must be in [0, NumRegisters).
func (r *AnalysisResult) RegisterUseLines(reg int) []int {
	return r.RegisterLines[reg].sorted()
}
