package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classroom-tools/aec/internal/analysis"
)

func testResult(t *testing.T) *analysis.AnalysisResult {
	t.Helper()
	res := analysis.NewResult()
	res.TotalLines = 10
	res.Cyclomatic = 2
	res.ExitSeen = true
	return res
}

func TestWriteMetricsMode(t *testing.T) {
	res := testResult(t)
	var buf bytes.Buffer
	in := Input{FileName: "prog.s", LastAccessed: time.Unix(0, 0), LastModified: time.Unix(0, 0), Result: res, Metrics: analysis.Halstead(res)}
	require.NoError(t, Write(&buf, in, ModeMetrics, logrus.New()))

	out := buf.String()
	assert.Contains(t, out, "Metadata:")
	assert.Contains(t, out, "General Metrics:")
	assert.Contains(t, out, "Halstead's Metrics:")
	assert.Contains(t, out, "Register Use:")
	assert.Contains(t, out, "Addressing Modes:")
	assert.NotContains(t, out, "Errors found:")
}

func TestWriteErrorsModeCatastrophic(t *testing.T) {
	res := testResult(t)
	res.DataSectionMissing = true
	var buf bytes.Buffer
	in := Input{FileName: "bad.s", Result: res, Metrics: analysis.Halstead(res)}
	require.NoError(t, Write(&buf, in, ModeErrors, logrus.New()))

	out := buf.String()
	assert.Contains(t, out, "Catastrophic error: Missing .data section")
	assert.False(t, strings.Contains(out, "Metadata:"))
}

func TestWriteFullModeIncludesErrorsAndNoExitMessage(t *testing.T) {
	res := testResult(t)
	res.ExitSeen = false
	var buf bytes.Buffer
	in := Input{FileName: "prog.s", Result: res, Metrics: analysis.Halstead(res)}
	require.NoError(t, Write(&buf, in, ModeFull, logrus.New()))

	out := buf.String()
	assert.Contains(t, out, "Errors found:")
	assert.Contains(t, out, "No proper exit, svc 0, from program before .data section")
}

func TestWriteMetricsModeIgnoresCatastrophic(t *testing.T) {
	res := testResult(t)
	res.DataSectionMissing = true
	var buf bytes.Buffer
	in := Input{FileName: "bad.s", Result: res, Metrics: analysis.Halstead(res)}
	require.NoError(t, Write(&buf, in, ModeMetrics, logrus.New()))

	out := buf.String()
	assert.Contains(t, out, "General Metrics:")
	assert.NotContains(t, out, "Catastrophic error")
}
