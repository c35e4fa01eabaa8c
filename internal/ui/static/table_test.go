package static

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestRenderTable_Empty(t *testing.T) {
	t.Parallel()
	if got := RenderTable([]string{"A"}, nil); got != "" {
		t.Errorf("RenderTable(no rows) = %q, want empty", got)
	}
}

func TestRenderTable_Columns(t *testing.T) {
	t.Parallel()
	got := ansi.Strip(RenderTable(
		[]string{"FOLLOWERS", "FOLLOWING"},
		[][]string{{"1.5K", "9"}},
	))

	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got %d lines: %q", len(lines), got)
	}
	if !strings.HasPrefix(lines[0], "FOLLOWERS") || !strings.Contains(lines[0], "FOLLOWING") {
		t.Errorf("header line = %q", lines[0])
	}
	if col := strings.Index(lines[0], "FOLLOWING"); col < 0 || len(lines[1]) <= col || !strings.HasPrefix(lines[1][col:], "9") {
		t.Errorf("columns not aligned:\n%s", got)
	}
}
