package analysis

import (
	"fmt"
	"io"
	"strings"

	"github.com/classroom-tools/aec/internal/scanner"
	"github.com/sirupsen/logrus"
)

// Scan runs the full forward pass over an assembly source file: line
// classification, tokenizing, operator/operand classification, and the
// cross-line bookkeeping (section tracking, register load state, pending
// diagnostics) the scan state machine carries between lines. It does not
// itself decide whether the file is fully analyzable -- the structural
// checker and unused-symbol pass run afterward, on the accumulated
// result, unless the scan turned up a catastrophic condition.
func Scan(r io.Reader, file scanner.FileRef, opts Options, log logrus.FieldLogger) (*AnalysisResult, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	st := newScanState()
	res := NewResult()

	lr := NewLineReader(r)
	for {
		lineNo, raw, ok := lr.Next()
		if !ok {
			break
		}
		res.TotalLines++
		processLine(st, res, opts, file, lineNo, raw)
	}
	if err := lr.Err(); err != nil {
		return nil, err
	}

	res.PushCount = st.pushCount
	res.PopCount = st.popCount
	res.ExitSeen = st.svcExitSeen
	res.DataSectionMissing = !st.dataSectionSeen
	res.DataBeforeGlobal = st.dataBeforeGlobal
	res.DataStartLine = st.dataStartLine

	if res.Catastrophic() {
		log.WithField("file", string(file)).Warn("catastrophic condition found, skipping structural checks")
		return res, nil
	}

	computeUnusedSymbols(res)
	runStructuralChecker(res)
	return res, nil
}

func processLine(st *scanState, res *AnalysisResult, opts Options, file scanner.FileRef, lineNo int, raw string) {
	switch {
	case scanner.IsBlank(raw):
		res.BlankLines++
	case scanner.IsCommentOnly(raw):
		res.FullCommentLines++
	default:
		if scanner.HasComment(raw) {
			res.LinesWithComment++
		} else {
			res.LinesWithoutComment++
		}

		preComment := scanner.SplitComment(raw)
		tokens := scanner.NewLineScanner(file, lineNo, preComment).Tokens()
		if len(tokens) > 0 {
			t1 := tokens[0]
			switch {
			case scanner.IsDirectiveWord(t1):
				handleDirective(st, res, lineNo, tokens)

			case scanner.IsLabelOrVariableDef(t1):
				name := strings.TrimSuffix(t1, ":")
				if st.inDataSection {
					res.Variables = append(res.Variables, name)
				} else {
					res.Labels = append(res.Labels, LabelRef{Name: name, Line: lineNo})
					st.pendingIsolationCheck = false
				}

			default:
				handleOperatorLine(st, res, opts, lineNo, tokens, preComment)
			}
		}
	}

	// The string-termination check runs over the raw line regardless of
	// its kind -- blank, comment-only, directive, or code -- as long as
	// the cursor is inside .data, exactly like the original's unguarded
	// single pass over every line.
	if st.inDataSection {
		checkStringTermination(res, lineNo, raw, opts)
	}
}

func handleDirective(st *scanState, res *AnalysisResult, lineNo int, tokens []string) {
	t1 := tokens[0]
	res.DirectiveLines++
	if _, seen := res.DirectiveUses[t1]; !seen {
		res.DirectiveOrder = append(res.DirectiveOrder, t1)
	}
	res.DirectiveUses[t1] = append(res.DirectiveUses[t1], lineNo)

	switch t1 {
	case ".global":
		st.globalSeen = true
		st.inDataSection = false
	case ".data":
		st.inDataSection = true
		st.dataSectionSeen = true
		st.dataStartLine = lineNo
		if !st.globalSeen {
			st.dataBeforeGlobal = true
		}
	case ".equ":
		if len(tokens) >= 2 {
			raw := tokens[1]
			name := raw
			if len(name) > 0 {
				name = name[:len(name)-1] // trailing comma
			}
			res.Constants = append(res.Constants, name)
		}
	case ".text":
		st.inDataSection = false
	}
}

// checkStringTermination flags .data lines that open a quote but don't
// close it with the \n escape the original tool expects for every
// user-facing string literal. It runs over the raw source line (comments
// included), exactly like the original, since the excluded-prefix check
// and the quote scan both want the line as written, not the tokenized
// form.
func checkStringTermination(res *AnalysisResult, lineNo int, raw string, opts Options) {
	for _, prefix := range opts.excludedDataPrefixes() {
		if strings.Contains(raw, prefix) {
			return
		}
	}
	if strings.Contains(raw, `"`) && !strings.Contains(raw, `\n"`) {
		res.StringErrors = append(res.StringErrors, fmt.Sprintf("String did not end with \\n at line %d", lineNo))
	}
}

func handleOperatorLine(st *scanState, res *AnalysisResult, opts Options, lineNo int, tokens []string, preComment string) {
	t1 := tokens[0]
	res.TotalOperators++
	res.UniqueOperators[t1] = struct{}{}

	ls := newLineState(lineNo)

	// A previously pending condition-code check is consumed by the next
	// operator token to come along, whatever kind it turns out to be.
	if st.pendingConditionalCheckLine != 0 {
		consumeConditionalCheck(st, res, t1)
	}
	if st.pendingIsolationCheck {
		res.IsolatedCode = append(res.IsolatedCode, fmt.Sprintf("Code after unconditional branch at line %d", lineNo))
	}

	kind := scanner.ClassifyOperator(t1)
	ls.operatorKind = kind

	switch kind {
	case scanner.OpBranch:
		res.Cyclomatic++
		ls.branchVariant = scanner.ClassifyBranch(t1)
		if ls.branchVariant == scanner.BranchPlain {
			st.pendingIsolationCheck = true
		}
	case scanner.OpCompare:
		st.pendingConditionalCheckLine = lineNo
	case scanner.OpPush:
		ls.isPush = true
	case scanner.OpPop:
		ls.isPop = true
	case scanner.OpSupervisorCall:
		if !st.inDataSection {
			ls.isSVC = true
		}
	case scanner.OpUnwanted:
		res.UnwantedInstructions = append(res.UnwantedInstructions, fmt.Sprintf("Unexpected instruction at line %d", lineNo))
	case scanner.OpLoad, scanner.OpMove:
		ls.restrictedRegisterCheck = true
	}
	if lower := strings.ToLower(t1); kind != scanner.OpUnwanted && opts.isExtraUnwanted(lower) {
		res.UnwantedInstructions = append(res.UnwantedInstructions, fmt.Sprintf("Unexpected instruction at line %d", lineNo))
	}

	for i := 1; i < len(tokens); i++ {
		processOperand(st, res, ls, kind, i+1, tokens[i])
	}

	if kind == scanner.OpLoad || kind == scanner.OpStore {
		mode := ClassifyAddressing(preComment, tokens)
		recordAddressingMode(res, mode, lineNo)
	}
}

// processOperand reacts to the i'th token of an operator line (i is the
// 1-based position within the whole line, so the first operand is i==2).
// The order mirrors the original tool's priority: a branch operator claims
// every operand on its line for its own bookkeeping, and an svc outside
// .data claims its first operand; otherwise a register-shaped operand runs the generic load-tracking and
// use-before-load checks; push/pop get their own counters and, for push,
// a watch for the literal "{lr}"/"{LR}" save shape; mov/ldr lines run an
// independent restricted-register check regardless of which of the above
// branches fired.
func processOperand(st *scanState, res *AnalysisResult, ls *lineState, kind scanner.OperatorKind, i int, raw string) {
	res.TotalOperands++
	normalized := Normalize(raw)
	res.UniqueOperands[normalized] = struct{}{}

	switch kind {
	case scanner.OpBranch:
		handleBranchOperand(st, res, ls, raw, normalized, i)
		return
	case scanner.OpSupervisorCall:
		if ls.isSVC {
			handleSVCOperand(st, res, ls, raw)
			ls.isSVC = false
			return
		}
	}

	if reg, ok := registerNumber(normalized); ok {
		res.RegisterLines[reg].add(ls.lineNumber)
		handleRegisterOperand(st, res, ls, kind, i, reg)
	} else if ls.isPush && (raw == "{lr}" || raw == "{LR}") {
		res.LRSaveLines.add(ls.lineNumber)
	}

	if kind == scanner.OpPush || kind == scanner.OpPop {
		if kind == scanner.OpPush {
			st.pushCount++
		} else {
			st.popCount++
		}
	}

	if kind == scanner.OpMove {
		if ls.movSeenPC && (raw == "lr" || raw == "LR") {
			res.ReturnLines.add(ls.lineNumber)
		}
		if (raw == "lr" || raw == "LR") && i == 3 {
			res.LRSaveLines.add(ls.lineNumber)
		} else if raw == "pc," || raw == "PC," {
			ls.movSeenPC = true
		}
	}
	if ls.restrictedRegisterCheck {
		if reg, ok := registerNumber(normalized); ok && isRestricted(reg) {
			res.RestrictedRegisterErrors = append(res.RestrictedRegisterErrors,
				fmt.Sprintf("Improper use of restricted register %s at line %d", normalized, ls.lineNumber))
		}
	}
}

func handleBranchOperand(st *scanState, res *AnalysisResult, ls *lineState, raw, normalized string, i int) {
	if i != 2 {
		return
	}
	if raw == "scanf" || raw == "printf" {
		st.clobberCallRegisters()
		return
	}
	switch ls.branchVariant {
	case scanner.BranchLink:
		res.SubroutineUses = append(res.SubroutineUses, fmt.Sprintf("BL %s at line %d", raw, ls.lineNumber))
		res.Subroutines[raw] = struct{}{}
		res.BLCallLines.add(ls.lineNumber)
	case scanner.BranchExchange:
		if raw == "lr" || raw == "LR" {
			res.ReturnLines.add(ls.lineNumber)
		}
		res.SubroutineUses = append(res.SubroutineUses, fmt.Sprintf("Return branch %s at line %d", raw, ls.lineNumber))
	default:
		res.BranchUses = append(res.BranchUses, fmt.Sprintf("Branch %s at line %d", raw, ls.lineNumber))
		res.BadBranchLines.add(ls.lineNumber)
	}
	_ = normalized
}

func handleSVCOperand(st *scanState, res *AnalysisResult, ls *lineState, raw string) {
	if raw == "0" || raw == "#0" {
		st.svcExitSeen = true
	}
	res.SVCUses = append(res.SVCUses, fmt.Sprintf("SVC %s used at line %d", raw, ls.lineNumber))
}

// handleRegisterOperand implements the four-way load/use classification:
// a register becomes "loaded" as the first operand of anything but cmp or
// str, or as any operand of pop; a str's first operand, or any non-first
// operand of anything else, instead triggers the use-before-load check.
// cmp's own first operand deliberately gets neither reaction.
func handleRegisterOperand(st *scanState, res *AnalysisResult, ls *lineState, kind scanner.OperatorKind, i int, reg int) {
	if isRestricted(reg) {
		return
	}
	switch {
	case i == 2 && kind != scanner.OpCompare && kind != scanner.OpStore:
		st.markLoaded(reg)
	case kind == scanner.OpPop:
		st.markLoaded(reg)
	case kind == scanner.OpStore && i == 2:
		reportUseBeforeLoad(st, res, ls, reg)
	case i > 2:
		reportUseBeforeLoad(st, res, ls, reg)
	}
}

func reportUseBeforeLoad(st *scanState, res *AnalysisResult, ls *lineState, reg int) {
	if st.isLoaded(reg) {
		return
	}
	if _, already := ls.reportedUseBeforeLoad[reg]; already {
		return
	}
	ls.reportedUseBeforeLoad[reg] = struct{}{}
	res.RegisterUseBeforeLoad = append(res.RegisterUseBeforeLoad,
		fmt.Sprintf("Register %d used before being loaded at line %d", reg, ls.lineNumber))
}

// registerNumber parses a normalized operand like "r7" or "R13" into its
// register number. Anything else, including "lr"/"pc"/"sp" spelled out by
// name rather than by number, is not a register operand for this purpose.
func registerNumber(token string) (int, bool) {
	if len(token) < 2 || len(token) > 3 {
		return 0, false
	}
	if token[0] != 'r' && token[0] != 'R' {
		return 0, false
	}
	digits := token[1:]
	n := 0
	for _, c := range digits {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	if n < 0 || n >= NumRegisters {
		return 0, false
	}
	return n, true
}

func consumeConditionalCheck(st *scanState, res *AnalysisResult, nextOperator string) {
	line := st.pendingConditionalCheckLine
	st.pendingConditionalCheckLine = 0
	if len(nextOperator) > 2 {
		suffix := nextOperator[len(nextOperator)-2:]
		if !isConditionSuffix(suffix) {
			res.UnusedConditional = append(res.UnusedConditional, fmt.Sprintf("Condition flag updated but unused at line %d", line-1))
		}
	} else {
		res.UnusedConditional = append(res.UnusedConditional, fmt.Sprintf("Condition flag updated but unused at line %d", line))
	}
}

// conditionSuffixes are the two-letter ARM condition codes a cmp's result
// may legitimately be consumed by.
var conditionSuffixes = map[string]struct{}{
	"eq": {}, "ne": {}, "ge": {}, "lt": {}, "gt": {}, "le": {},
	"cs": {}, "cc": {}, "mi": {}, "pl": {}, "vs": {}, "vc": {},
	"hi": {}, "ls": {}, "al": {},
}

func isConditionSuffix(suffix string) bool {
	_, ok := conditionSuffixes[strings.ToLower(suffix)]
	return ok
}

func recordAddressingMode(res *AnalysisResult, mode scanner.AddressingMode, line int) {
	switch mode {
	case scanner.AddrPCLiteral:
		res.PCLiteralLines = append(res.PCLiteralLines, line)
	case scanner.AddrIndirect:
		res.IndirectLines = append(res.IndirectLines, line)
	case scanner.AddrPreIndex:
		res.PreIndexLines = append(res.PreIndexLines, line)
	case scanner.AddrPCRelative:
		res.PCRelativeLines = append(res.PCRelativeLines, line)
	case scanner.AddrIndirectWithOffset:
		res.IndirectWithOffsetLines = append(res.IndirectWithOffsetLines, line)
	case scanner.AddrPostIndex:
		res.PostIndexLines = append(res.PostIndexLines, line)
	default:
		res.UnsureLines = append(res.UnsureLines, line)
	}
}

func computeUnusedSymbols(res *AnalysisResult) {
	for _, l := range res.Labels {
		if _, used := res.UniqueOperands[l.Name]; !used {
			res.UnusedLabels = append(res.UnusedLabels, fmt.Sprintf("Unused label: %s", l.Name))
		}
	}
	for _, v := range res.Variables {
		if _, used := res.UniqueOperands[v]; !used {
			res.UnusedVariables = append(res.UnusedVariables, fmt.Sprintf("Unused user variable: %s", v))
		}
	}
	for _, c := range res.Constants {
		if _, used := res.UniqueOperands[c]; !used {
			res.UnusedConstants = append(res.UnusedConstants, fmt.Sprintf("Unused user constant: %s", c))
		}
	}
}

// ExitAndBalanceMessages reproduces the two file-level messages the
// original renderer interleaves at the top of the "Errors found" section,
// ahead of every per-line diagnostic list.
func (r *AnalysisResult) ExitAndBalanceMessages() []string {
	var out []string
	if !r.ExitSeen {
		out = append(out, "No proper exit, svc 0, from program before .data section")
	}
	if r.PushCount > r.PopCount {
		out = append(out, "More pushes detected than pops. Ensure that all values are popped off the heap.")
	} else if r.PushCount < r.PopCount {
		out = append(out, "More pops detected than pushes. Ensure that there is always a value on the heap before a Pop.")
	}
	return out
}
