package summary

import (
	"reflect"
	"strings"
	"testing"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		sentenceCount int
		check         func(t *testing.T, summary string)
	}{
		{
			name:          "empty text",
			text:          "",
			sentenceCount: 3,
			check: func(t *testing.T, summary string) {
				if summary != "" {
					t.Errorf("expected empty summary, got %q", summary)
				}
			},
		},
		{
			name:          "zero sentences requested",
			text:          "Fixed the login page.",
			sentenceCount: 0,
			check: func(t *testing.T, summary string) {
				if summary != "" {
					t.Errorf("expected empty summary, got %q", summary)
				}
			},
		},
		{
			name:          "short text is returned as is",
			text:          "Fixed the login page.\nAdded tests",
			sentenceCount: 3,
			check: func(t *testing.T, summary string) {
				if summary != "Fixed the login page. Added tests." {
					t.Errorf("summary = %q", summary)
				}
			},
		},
		{
			name: "long text is shortened",
			text: `
Investigated the failing nightly build.
The build failed because the cache key changed.
Updated the cache key in the pipeline configuration.
Reran the pipeline and confirmed it passes.
Wrote a short note about the cache key in the wiki.
Reviewed the pull request for the payment service.
`,
			sentenceCount: 2,
			check: func(t *testing.T, summary string) {
				if summary == "" {
					t.Fatal("expected non-empty summary")
				}
				if n := strings.Count(summary, ". ") + 1; n > 2 {
					t.Errorf("summary has %d sentences, want at most 2: %q", n, summary)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Summarize(tt.text, tt.sentenceCount)
			if err != nil {
				t.Fatalf("Summarize() error = %v", err)
			}
			tt.check(t, got)
		})
	}
}

func TestSplitSentences(t *testing.T) {
	got := splitSentences("One. Two!\n\n  Three?\r\n議事録を更新。")
	want := []string{"One", "Two", "Three", "議事録を更新"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("splitSentences = %q, want %q", got, want)
	}
}
