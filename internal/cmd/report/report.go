// Package report renders reconciliation reports for the CLI.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/agentstation/checkstate/internal/cmd/output"
	"github.com/agentstation/checkstate/internal/cmd/table"
	"github.com/agentstation/checkstate/pkg/reconcile"
)

// Render writes a reconciliation report in the given format. Table
// output follows the comparison layout: one section per instance with
// the local instance last, then warnings and suggested remedies.
func Render(w io.Writer, format output.Format, r *reconcile.Report) error {
	if format == output.FormatJSON || format == output.FormatYAML {
		return output.NewFormatter(format).Format(w, r)
	}

	formatter := &output.TableFormatter{}
	for _, ir := range r.Instances {
		fmt.Fprintf(w, "\n%s %s\n", ir.Instance, table.FormatTime(ir.Updated))
		if err := formatter.Format(w, table.InstanceData(ir)); err != nil {
			return err
		}
	}

	if len(r.MixedCommits) > 0 {
		fmt.Fprintf(w, "\nWARNING: mixed commits for: %s\n", strings.Join(r.MixedCommits, ", "))
	}

	if len(r.Remedies) > 0 {
		fmt.Fprintf(w, "\nPossible remedies\n")
		for _, remedy := range r.Remedies {
			fmt.Fprintln(w, remedy)
		}
	}

	return nil
}
