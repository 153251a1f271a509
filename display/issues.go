package display

import (
	"fmt"
	"io"
	"time"

	"github.com/pterm/pterm"

	"github.com/teranos/chronos/validator"
)

// IssueTable renders issues as a table: rule, pair, relation and clash.
func IssueTable(issues []validator.Issue) (string, error) {
	data := pterm.TableData{{"#", "Rule", "Subject", "Object", "Relation", "Clashes with"}}
	for i, is := range issues {
		data = append(data, []string{
			fmt.Sprintf("%d", i+1),
			is.RuleName,
			is.Subject,
			is.Object,
			is.Relation,
			is.Clash,
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}

// PrintReport writes a human-readable validation report to w.
func PrintReport(w io.Writer, report *validator.Report) error {
	fmt.Fprintf(w, "Validated %d instants and %d intervals with %d rules (run %s, %s)\n",
		report.Instants, report.Intervals, len(report.Rules), report.RunID, report.Duration.Round(time.Microsecond))

	if !report.HasIssues() {
		fmt.Fprintln(w, pterm.Success.Sprint("No temporal relation clashes"))
		return nil
	}

	table, err := IssueTable(report.Issues)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, table)
	for _, is := range report.Issues {
		fmt.Fprintln(w, pterm.Error.Sprint(is.Description))
		fmt.Fprintln(w, "  "+is.Suggestion)
	}
	fmt.Fprintln(w, pterm.Warning.Sprintf("%d temporal relation clashes", len(report.Issues)))
	return nil
}
