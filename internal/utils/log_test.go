package utils

import "testing"

func TestTruncateForLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		limit  int
		expect string
	}{
		{
			name:   "returns empty when limit non-positive",
			input:  "hello world",
			limit:  0,
			expect: "",
		},
		{
			name:   "shorter than limit",
			input:  "hello",
			limit:  10,
			expect: "hello",
		},
		{
			name:   "truncates and adds ellipsis",
			input:  "hello world",
			limit:  5,
			expect: "hello...",
		},
		{
			name:   "counts runes not bytes",
			input:  "résumé review",
			limit:  6,
			expect: "résumé...",
		},
		{
			name:   "flattens newlines and whitespace runs",
			input:  "Evaluation:\n\n  solid\tanswers",
			limit:  40,
			expect: "Evaluation: solid answers",
		},
		{
			name:   "collapsed space counts toward the limit",
			input:  "ab\n\ncd",
			limit:  3,
			expect: "ab ...",
		},
		{
			name:   "trims surrounding whitespace",
			input:  "  spaced  ",
			limit:  5,
			expect: "space...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := TruncateForLog(tt.input, tt.limit); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}
