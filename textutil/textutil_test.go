package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Result
	}{
		{
			name:  "mixed line endings",
			input: "a\r\nb\rc  ",
			want:  Result{Text: "a\nb\nc", Count: 5},
		},
		{
			name:  "empty",
			input: "",
			want:  Result{Text: "", Count: 0},
		},
		{
			name:  "whitespace only",
			input: " \r\n\t ",
			want:  Result{Text: "", Count: 0},
		},
		{
			name:  "code points not bytes",
			input: "  你好，世界  ",
			want:  Result{Text: "你好，世界", Count: 5},
		},
		{
			name:  "astral plane counts once",
			input: "😀x",
			want:  Result{Text: "😀x", Count: 2},
		},
		{
			name:  "double CR",
			input: "a\r\r\nb",
			want:  Result{Text: "a\n\nb", Count: 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestCount(t *testing.T) {
	assert.Equal(t, 3, Count(" \u00e9😀a "))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "你好…", Truncate("你好世界", 2, "…"))
	assert.Equal(t, "short", Truncate("short", 10, "…"))
	assert.Equal(t, "", Truncate("anything", 0, "…"))
}
