// Package report renders an analysis.AnalysisResult the way AEC's
// original tool did: a fixed, asterisk-delimited section layout shared by
// the terminal (-m/-e) and file (-r/-t) sinks, differing only in which
// sections a Mode selects.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/classroom-tools/aec/internal/analysis"
)

// ToolVersion and ToolDate populate the Metadata section's "Tool Version"
// and "Tool Date" fields. Bumped from the original tool's "1.0"/"4/27/2024"
// to reflect this rewrite.
const (
	ToolVersion = "2.0"
	ToolDate    = "8/1/2026"
)

const separator = "********************************************************"

// Mode selects which sections Write renders, mirroring the original
// tool's command dispatch: metrics-only (-m), errors-only (-e), or the
// full combined report (-r/-t).
type Mode int

const (
	ModeMetrics Mode = iota
	ModeErrors
	ModeFull
)

// Input bundles everything a render needs: the scan result, its derived
// Halstead metrics, and the file metadata the original tool pulled from
// stat(2).
type Input struct {
	FileName     string
	LastAccessed time.Time
	LastModified time.Time
	Result       *analysis.AnalysisResult
	Metrics      analysis.HalsteadMetrics
}

// Write renders in to w per mode. For ModeErrors and ModeFull, a
// catastrophic result (missing .data, or .data before .global) collapses
// the whole report into the single-line message the original tool prints
// instead -- matching spec §7's distinction between catastrophic and
// diagnostic conditions. ModeMetrics never makes that check: the original
// prints metrics unconditionally, catastrophic or not, since every count
// it needs is gathered before the catastrophic check would apply.
func Write(w io.Writer, in Input, mode Mode, log logrus.FieldLogger) error {
	if log == nil {
		log = logrus.StandardLogger()
	}
	res := in.Result

	if mode != ModeMetrics && res.Catastrophic() {
		fmt.Fprintln(w, catastrophicLine(in.FileName, res))
		return nil
	}

	switch mode {
	case ModeMetrics:
		writeMetadata(w, in)
		writeGeneralMetrics(w, res)
		writeHalstead(w, res, in.Metrics)
		writeRegisterUse(w, res)
		writeUsageLogs(w, res)
		writeAddressingModes(w, res)
	case ModeErrors:
		writeMetadata(w, in)
		fmt.Fprintf(w, "%s\nErrors found:\n", separator)
		writeErrors(w, res)
	case ModeFull:
		writeMetadata(w, in)
		writeGeneralMetrics(w, res)
		writeHalstead(w, res, in.Metrics)
		writeRegisterUse(w, res)
		writeUsageLogs(w, res)
		writeAddressingModes(w, res)
		fmt.Fprintln(w, "Errors found:")
		writeErrors(w, res)
	}
	log.WithField("file", in.FileName).Debug("rendered report")
	return nil
}

func catastrophicLine(fileName string, res *analysis.AnalysisResult) string {
	switch {
	case res.DataSectionMissing:
		return fmt.Sprintf("%s: Catastrophic error: Missing .data section. Error must be addressed before using AEC", fileName)
	case res.DataBeforeGlobal:
		return fmt.Sprintf("%s: Catastrophic error: .data section comes before .global. Error must be addressed before using AEC", fileName)
	default:
		return ""
	}
}

func writeMetadata(w io.Writer, in Input) {
	fmt.Fprintf(w, "%s\nMetadata:\n", separator)
	fmt.Fprintf(w, "\tFile Name: %s\n", in.FileName)
	fmt.Fprintf(w, "\tLast accessed: %s\n", in.LastAccessed.Format(time.ANSIC))
	fmt.Fprintf(w, "\tLast modified: %s\n", in.LastModified.Format(time.ANSIC))
	fmt.Fprintf(w, "\tTool Version: %s\n", ToolVersion)
	fmt.Fprintf(w, "\tTool Date: %s\n", ToolDate)
}

func writeGeneralMetrics(w io.Writer, res *analysis.AnalysisResult) {
	fmt.Fprintf(w, "%s\nGeneral Metrics:\n", separator)
	fmt.Fprintf(w, "\tNumber of full line comments: %d\n", res.FullCommentLines)
	fmt.Fprintf(w, "\tNumber of blank lines: %d\n", res.BlankLines)
	fmt.Fprintf(w, "\tTotal number of lines: %d\n", res.TotalLines)
	fmt.Fprintf(w, "\tNumber of lines with comments: %d\n", res.LinesWithComment)
	fmt.Fprintf(w, "\tNumber of lines without comments: %d\n", res.LinesWithoutComment)
	fmt.Fprintf(w, "\tTotal directives used: %d\n", res.DirectiveLines)
	fmt.Fprintf(w, "\tCyclomatic Complexity: %d\n", res.Cyclomatic)
}

func writeHalstead(w io.Writer, res *analysis.AnalysisResult, m analysis.HalsteadMetrics) {
	fmt.Fprintf(w, "%s\nHalstead's Metrics:\n", separator)
	fmt.Fprintf(w, "\tUnique operators: %d\n", len(res.UniqueOperators))
	fmt.Fprintf(w, "\tTotal operators: %d\n", res.TotalOperators)
	fmt.Fprintf(w, "\tUnique operands: %d\n", len(res.UniqueOperands))
	fmt.Fprintf(w, "\tTotal operands: %d\n", res.TotalOperands)
	fmt.Fprintf(w, "\tProgram Length: %d\n", m.Length)
	fmt.Fprintf(w, "\tProgram Vocabulary: %d\n", m.Vocabulary)
	fmt.Fprintf(w, "\tProgram Volume: %g\n", m.Volume)
	fmt.Fprintf(w, "\tProgram Difficulty: %g\n", m.Difficulty)
	fmt.Fprintf(w, "\tProgram Effort: %g\n", m.Effort)
}

// writeRegisterUse lists every one of the 16 registers, tabwriter-aligned
// so the "used at lines:" column lines up -- the original tool's fixed
// one-line-per-register dump, but column-aligned the way
// sqltest.DumpRows aligns its key/value dumps.
func writeRegisterUse(w io.Writer, res *analysis.AnalysisResult) {
	fmt.Fprintf(w, "%s\nRegister Use:\n", separator)
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	for reg := 0; reg < analysis.NumRegisters; reg++ {
		fmt.Fprintf(tw, "\tRegister %d used at lines:\t%s\n", reg, joinInts(res.RegisterUseLines(reg)))
	}
	tw.Flush()
}

func writeUsageLogs(w io.Writer, res *analysis.AnalysisResult) {
	fmt.Fprintf(w, "%s\nSVC Use:\n", separator)
	for _, l := range res.SVCUses {
		fmt.Fprintf(w, "\t%s\n", l)
	}
	fmt.Fprintln(w, "Subroutine Use:")
	for _, l := range res.SubroutineUses {
		fmt.Fprintf(w, "\t%s\n", l)
	}
	fmt.Fprintln(w, "Branch Use:")
	for _, l := range res.BranchUses {
		fmt.Fprintf(w, "\t%s\n", l)
	}
	fmt.Fprintln(w, "Directive Use:")
	for _, name := range res.DirectiveOrder {
		fmt.Fprintf(w, "\t%s at lines: %s\n", name, joinInts(res.DirectiveUses[name]))
	}
}

func writeAddressingModes(w io.Writer, res *analysis.AnalysisResult) {
	fmt.Fprintf(w, "%s\nAddressing Modes:\n", separator)
	fmt.Fprintf(w, "\tLines with indirect addressing: %s\n", joinInts(res.IndirectLines))
	fmt.Fprintf(w, "\tLines with indirect addressing with offset: %s\n", joinInts(res.IndirectWithOffsetLines))
	fmt.Fprintf(w, "\tLines with auto, pre-index addressing: %s\n", joinInts(res.PreIndexLines))
	fmt.Fprintf(w, "\tLines with auto, post-index addressing: %s\n", joinInts(res.PostIndexLines))
	fmt.Fprintf(w, "\tLines with PC relative addressing: %s\n", joinInts(res.PCRelativeLines))
	fmt.Fprintf(w, "\tLines with PC relative addressing with literal pool: %s\n", joinInts(res.PCLiteralLines))
	fmt.Fprintf(w, "\tLines with uncertain addressing modes: %s\n", joinInts(res.UnsureLines))
	fmt.Fprintln(w, separator)
}

func writeErrors(w io.Writer, res *analysis.AnalysisResult) {
	for _, msg := range res.ExitAndBalanceMessages() {
		fmt.Fprintf(w, "\t%s\n", msg)
	}
	for _, group := range [][]string{
		res.StringErrors,
		res.UnwantedInstructions,
		res.RestrictedRegisterErrors,
		res.UnusedConditional,
		res.UnusedLabels,
		res.UnusedVariables,
		res.UnusedConstants,
		res.IsolatedCode,
		res.NoReturnErrors,
		res.LRSaveErrors,
		res.BranchOutErrors,
		res.RegisterUseBeforeLoad,
	} {
		for _, msg := range group {
			fmt.Fprintf(w, "\t%s\n", msg)
		}
	}
	fmt.Fprintln(w, separator)
}

func joinInts(lines []int) string {
	sorted := append([]int(nil), lines...)
	sort.Ints(sorted)
	parts := make([]string, len(sorted))
	for i, l := range sorted {
		parts[i] = fmt.Sprintf("%d", l)
	}
	return strings.Join(parts, " ")
}
