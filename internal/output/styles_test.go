package output

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestStatusStyle(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		wantBold bool
		wantFG   lipgloss.Color
		wantDim  bool
	}{
		{name: "ok returns green", status: StatusOK, wantFG: colorGreen},
		{name: "staged returns yellow", status: StatusStaged, wantFG: ColorYellow},
		{name: "indexed returns faint", status: StatusIndexed, wantDim: true},
		{name: "skipped returns red", status: StatusSkipped, wantFG: colorRed},
		{name: "failed returns bold red", status: StatusFailed, wantFG: ColorBoldRed, wantBold: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			style := StatusStyle(tt.status)
			if tt.wantFG != "" {
				assert.Equal(t, tt.wantFG, style.GetForeground())
			}
			assert.Equal(t, tt.wantBold, style.GetBold())
			assert.Equal(t, tt.wantDim, style.GetFaint())
		})
	}
}

func TestStatusStyle_Unknown(t *testing.T) {
	style := StatusStyle("mystery")
	assert.False(t, style.GetBold())
	assert.False(t, style.GetFaint())
}

func TestFormatFileLine(t *testing.T) {
	line := FormatFileLine("lib/util.js", StatusOK)
	assert.Contains(t, line, "lib/util.js")
	assert.Contains(t, line, StatusOK)
	assert.True(t, strings.Index(line, "lib/util.js") < strings.Index(line, StatusOK))
}

func TestFormatFileLine_LongPathKeepsMinimumPadding(t *testing.T) {
	long := strings.Repeat("a", 60)
	line := FormatFileLine(long, StatusStaged)
	assert.Contains(t, line, long+"  ")
}

func TestFormatCheckmark(t *testing.T) {
	assert.Contains(t, FormatCheckmark("built ./app"), "built ./app")
	assert.Contains(t, FormatCheckmark("x"), "✔")
}
