package analysis

import "fmt"

// runStructuralChecker walks each label's span -- from the line it was
// defined on up to (but not including) the next label, or the .data
// directive for the last label in the file -- and runs the three checks
// that need a whole span rather than a single line: does a subroutine
// return, does it save LR before any call it makes, and does any branch
// inside it jump somewhere the checker can't follow.
//
// It only runs on labels, not variables, and only after the scan found no
// catastrophic condition (Scan short-circuits before calling this).
func runStructuralChecker(res *AnalysisResult) {
	for i, label := range res.Labels {
		if _, isSubroutine := res.Subroutines[label.Name]; !isSubroutine {
			continue
		}
		spanEnd := res.DataStartLine
		if i+1 < len(res.Labels) {
			spanEnd = res.Labels[i+1].Line
		}

		returnFlag := hasReturn(res, label, spanEnd)
		subroutineCall, lrSaved := checkLRSave(res, label, spanEnd)
		reportBranchOut(res, label, spanEnd)

		if !returnFlag {
			res.NoReturnErrors = append(res.NoReturnErrors,
				fmt.Sprintf("%s has no return despite being a subroutine.", label.Name))
		}
		if subroutineCall && !lrSaved {
			res.LRSaveErrors = append(res.LRSaveErrors,
				fmt.Sprintf("%s has a call to a subroutine in it without saving the LR first.", label.Name))
		}
	}
}

func hasReturn(res *AnalysisResult, label LabelRef, spanEnd int) bool {
	for _, line := range res.ReturnLines.sorted() {
		if line >= label.Line && line < spanEnd {
			return true
		}
	}
	return false
}

// checkLRSave matches the original tool's actual (lenient) behavior: a
// single lrSaved flag per label, set true the moment ANY bl-call in the
// span has a preceding LR save anywhere between the label and that call
// -- not a requirement that every individual call be covered by its own
// save.
func checkLRSave(res *AnalysisResult, label LabelRef, spanEnd int) (subroutineCall, lrSaved bool) {
	for _, callLine := range res.BLCallLines.sorted() {
		if callLine < label.Line || callLine >= spanEnd {
			continue
		}
		subroutineCall = true
		for _, saveLine := range res.LRSaveLines.sorted() {
			if saveLine >= label.Line && saveLine <= callLine {
				lrSaved = true
			}
		}
	}
	return subroutineCall, lrSaved
}

func reportBranchOut(res *AnalysisResult, label LabelRef, spanEnd int) {
	for _, line := range res.BadBranchLines.sorted() {
		if line >= label.Line && line < spanEnd {
			res.BranchOutErrors = append(res.BranchOutErrors,
				fmt.Sprintf("%s branches out of the subroutine bounds at line %d", label.Name, line))
		}
	}
}
