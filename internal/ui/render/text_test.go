package render

import (
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text unchanged", "Wish You Were Here", "Wish You Were Here"},
		{"unicode unchanged", "Sigur Rós – Ágætis byrjun", "Sigur Rós – Ágætis byrjun"},
		{"tab kept", "a\tb", "a\tb"},
		{"newline dropped", "line\nbreak", "linebreak"},
		{"escape dropped", "bad\x1b[31mred", "bad[31mred"},
		{"C1 control dropped", "a\u0085b", "ab"},
		{"invalid utf8 dropped", "ab\xffcd", "abcd"},
		{"nbsp becomes space", "a\u00a0b", "a b"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.input))
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{"fits", "Time", 10, "Time"},
		{"exact fit", "Time", 4, "Time"},
		{"cut with ellipsis", "Shine On You Crazy Diamond", 10, "Shine On …"},
		{"wide characters", "日本語のタイトル", 7, "日本語…"},
		{"zero width", "Time", 0, ""},
		{"cleans first", "Ti\nme", 10, "Time"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.input, tt.maxWidth)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, lipgloss.Width(got), max(tt.maxWidth, 0))
		})
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		name  string
		input string
		width int
	}{
		{"pads short text", "Us", 8},
		{"truncates long text", "Brain Damage / Eclipse", 8},
		{"wide characters", "日本語のタイトル", 9},
		{"empty", "", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.width, lipgloss.Width(Fit(tt.input, tt.width)))
		})
	}
}

func TestRow(t *testing.T) {
	assert.Equal(t, "left     right", Row("left", "right", 14))
	assert.Equal(t, "left right", Row("left", "right", 5), "keeps one space when too narrow")
	assert.Equal(t, 20, lipgloss.Width(Row("♪ Time", "3:45", 20)))
}

func TestSeparator(t *testing.T) {
	assert.Equal(t, "───", Separator(3))
	assert.Empty(t, Separator(0))
	assert.Empty(t, Separator(-2))
}

func TestDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, ""},
		{-time.Second, ""},
		{7 * time.Second, "0:07"},
		{3*time.Minute + 45*time.Second, "3:45"},
		{3*time.Minute + 44600*time.Millisecond, "3:45"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1:02:03"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Duration(tt.in))
		})
	}
}
