package analysis

// Options lets a caller extend the curated sets the scan otherwise hard
// codes, without touching the scan logic itself. The zero value reproduces
// stock behavior exactly.
type Options struct {
	// ExtraUnwantedMnemonics are additional mnemonics (lower-cased) to
	// treat like swi/ldm/ltm.
	ExtraUnwantedMnemonics []string
	// ExcludedDataLinePrefixes are additional .data line prefixes (besides
	// numInputPattern:, strInputPattern:, strInputError:) to skip in the
	// string-termination check.
	ExcludedDataLinePrefixes []string
}

var defaultExcludedDataPrefixes = []string{
	"numInputPattern:",
	"strInputPattern:",
	"strInputError:",
}

func (o Options) excludedDataPrefixes() []string {
	return append(append([]string{}, defaultExcludedDataPrefixes...), o.ExcludedDataLinePrefixes...)
}

func (o Options) isExtraUnwanted(lowerMnemonic string) bool {
	for _, m := range o.ExtraUnwantedMnemonics {
		if m == lowerMnemonic {
			return true
		}
	}
	return false
}
