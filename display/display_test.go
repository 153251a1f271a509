package display

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/chronos/validator"
)

func init() {
	pterm.DisableStyling()
}

func TestShouldOutputJSON(t *testing.T) {
	root := &cobra.Command{Use: "chronos"}
	root.PersistentFlags().Bool("json", false, "")
	child := &cobra.Command{Use: "validate"}
	child.Flags().Bool("json", false, "")
	root.AddCommand(child)

	t.Setenv(jsonEnv, "")
	assert.False(t, ShouldOutputJSON(child))

	require.NoError(t, child.Flags().Set("json", "true"))
	assert.True(t, ShouldOutputJSON(child))

	require.NoError(t, child.Flags().Set("json", "false"))
	t.Setenv(jsonEnv, "1")
	assert.False(t, ShouldOutputJSON(child), "an explicit flag wins over the environment")

	assert.True(t, ShouldOutputJSON(nil))
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, map[string]int{"issues": 2}))
	assert.Equal(t, "{\n  \"issues\": 2\n}\n", buf.String())

	var decoded map[string]int
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 2, decoded["issues"])
}

func TestPrintReport(t *testing.T) {
	issue := validator.Issue{
		RuleName:    "IntervalBeforeAnalysis",
		Severity:    validator.SeverityError,
		Description: "An interval that ends before the start of another cannot also be related to it by time:intervalContains",
		Suggestion:  "TIME intervals 'A' and 'B' should be adjusted to not clash on temporal relations (time:intervalBefore VS time:intervalContains)",
		Subject:     "A",
		Object:      "B",
		Relation:    "time:intervalBefore",
		Clash:       "time:intervalContains",
	}

	var buf bytes.Buffer
	require.NoError(t, PrintReport(&buf, &validator.Report{RunID: "run-1", Intervals: 2, Issues: []validator.Issue{issue}}))
	out := buf.String()
	assert.Contains(t, out, "Validated 0 instants and 2 intervals")
	assert.Contains(t, out, "IntervalBeforeAnalysis")
	assert.Contains(t, out, "time:intervalContains")
	assert.Contains(t, out, issue.Suggestion)
	assert.Contains(t, out, "1 temporal relation clashes")

	buf.Reset()
	require.NoError(t, PrintReport(&buf, &validator.Report{RunID: "run-2"}))
	assert.Contains(t, buf.String(), "No temporal relation clashes")
}
