// Package table provides common table formatting utilities for CLI
// commands.
package table

import (
	"fmt"
	"time"

	"github.com/agentstation/utc"

	"github.com/agentstation/checkstate/pkg/reconcile"
	"github.com/agentstation/checkstate/pkg/state"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// ReportHeaders are the columns of the per-instance state table.
func ReportHeaders() []string {
	return []string{"subdir", "rem_ok", "mods", "latest", "files", "size", "commit", "commit_time"}
}

// reportAlignment right-aligns the numeric columns.
func reportAlignment() []Align {
	return []Align{AlignLeft, AlignCenter, AlignCenter, AlignLeft, AlignRight, AlignRight, AlignLeft, AlignLeft}
}

// InstanceData converts one instance's reconciled rows to table format.
// Mixed-commit folders get a "*" on the commit cell and the newest copy
// of each folder gets a "*" on its modification time.
func InstanceData(ir reconcile.InstanceReport) Data {
	rows := make([][]string, 0, len(ir.Rows))
	for _, row := range ir.Rows {
		rows = append(rows, []string{
			row.Name,
			RemoteMark(row.Remote),
			YN(row.HasMods),
			FormatTime(row.Latest) + mark(row.LatestAcross),
			fmt.Sprintf("%d", row.FileCount),
			FormatSize(row.Bytes),
			ShortCommit(row.Commit) + mark(row.MixedCommit),
			FormatTime(row.CommitTime),
		})
	}
	return Data{
		Headers:         ReportHeaders(),
		Rows:            rows,
		ColumnAlignment: reportAlignment(),
	}
}

// YN renders a boolean as Y or N.
func YN(v bool) string {
	if v {
		return "Y"
	}
	return "N"
}

// RemoteMark renders the tri-state remote status: Y in sync, N known
// out of sync, ? unreachable at record time.
func RemoteMark(s state.RemoteStatus) string {
	switch s {
	case state.RemoteOK:
		return "Y"
	case state.RemoteDiffers:
		return "N"
	default:
		return "?"
	}
}

// ShortCommit abbreviates a commit hash for display.
func ShortCommit(commit string) string {
	if len(commit) > 7 {
		return commit[:7]
	}
	return commit
}

// FormatTime renders a timestamp as MM/DD-HH:MM in local time, or
// blank for the zero time.
func FormatTime(t utc.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.InLocation(time.Local).Format("01/02-15:04")
}

// FormatSize renders a byte count with 1024-based units.
func FormatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%dB", n)
	}
	value, exp := float64(n), 0
	for value >= unit && exp < 7 {
		value /= unit
		exp++
	}
	return fmt.Sprintf("%.1f%ciB", value, "KMGTPEZ"[exp-1])
}

func mark(v bool) string {
	if v {
		return "*"
	}
	return " "
}
