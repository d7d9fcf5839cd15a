package analysis

import "math"

// HalsteadMetrics holds the program-size measures derived from the
// operator/operand counts a scan accumulates.
type HalsteadMetrics struct {
	Length     int
	Vocabulary int
	Volume     float64
	Difficulty float64
	Effort     float64
}

// Halstead computes the standard Halstead measures from a finished
// AnalysisResult. It does not guard against zero unique operands/operands:
// an empty or operand-less file legitimately produces NaN/Inf here, the
// same as the original tool's unguarded double arithmetic.
func Halstead(r *AnalysisResult) HalsteadMetrics {
	n1 := len(r.UniqueOperators)
	n2 := len(r.UniqueOperands)
	length := r.TotalOperators + r.TotalOperands
	vocabulary := n1 + n2
	volume := float64(length) * math.Log2(float64(vocabulary))
	difficulty := (float64(n1) / 2.0) * (float64(r.TotalOperands) / float64(n2))
	effort := difficulty * volume
	return HalsteadMetrics{
		Length:     length,
		Vocabulary: vocabulary,
		Volume:     volume,
		Difficulty: difficulty,
		Effort:     effort,
	}
}
