package words_test

import (
	"testing"

	"wordsbot/internal/words"
)

func TestExtract(t *testing.T) {
	t.Parallel()

	e := words.NewExtractor(words.DefaultTag)

	testCases := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "empty message",
			input:    "",
			expected: nil,
		},
		{
			name:     "no tag",
			input:    "just a regular message",
			expected: nil,
		},
		{
			name:     "tag not at start",
			input:    "hello #WordsToLearn\nfoo",
			expected: nil,
		},
		{
			name:     "tag alone, no words",
			input:    "#WordsToLearn",
			expected: nil,
		},
		{
			name:     "tag followed by blank lines only",
			input:    "#WordsToLearn\n\n   \n",
			expected: nil,
		},
		{
			name:     "simple list",
			input:    "#WordsToLearn\nserendipity\nephemeral",
			expected: []string{"serendipity", "ephemeral"},
		},
		{
			name:     "blank lines dropped, repeated tag dropped, later words kept",
			input:    "#WordsToLearn\nfoo\n\nbar\n#WordsToLearn\nbaz",
			expected: []string{"foo", "bar", "baz"},
		},
		{
			name:     "leading whitespace before tag",
			input:    "   #WordsToLearn\nword",
			expected: []string{"word"},
		},
		{
			name:     "tag is case-insensitive",
			input:    "#wordstolearn\nword",
			expected: []string{"word"},
		},
		{
			name:     "lines are trimmed",
			input:    "#WordsToLearn\n  padded  \n\ttabbed\t",
			expected: []string{"padded", "tabbed"},
		},
		{
			name:     "tag with trailing text on same line discarded",
			input:    "#WordsToLearn today's batch\nfoo",
			expected: []string{"foo"},
		},
		{
			name:     "punctuation and command-looking lines accepted",
			input:    "#WordsToLearn\n/start\nto look up: \"esoteric\"",
			expected: []string{"/start", "to look up: \"esoteric\""},
		},
		{
			name:     "tag prefix of longer word does not match",
			input:    "#WordsToLearnMore\nfoo",
			expected: nil,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := e.Extract(tc.input)
			if len(got) != len(tc.expected) {
				t.Fatalf("Extract(%q) = %v, want %v", tc.input, got, tc.expected)
			}
			for i := range got {
				if got[i] != tc.expected[i] {
					t.Errorf("Extract(%q)[%d] = %q, want %q", tc.input, i, got[i], tc.expected[i])
				}
			}
		})
	}
}

func TestExtractCustomTag(t *testing.T) {
	t.Parallel()

	e := words.NewExtractor("#vocab")

	got := e.Extract("#vocab\nfoo")
	if len(got) != 1 || got[0] != "foo" {
		t.Fatalf("Extract with custom tag = %v, want [foo]", got)
	}

	if got := e.Extract("#WordsToLearn\nfoo"); got != nil {
		t.Fatalf("default tag should not match custom extractor, got %v", got)
	}
}
