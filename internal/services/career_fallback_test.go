package services

import (
	"strings"
	"testing"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"plain", "hello", "hello"},
		{"whitespace", "  hello  ", "hello"},
		{"surrounding quotes", `"hello"`, "hello"},
		{"single quotes", "'hello'", "hello"},
		{"control chars", "he\x00llo\x1f", "hello"},
		{"nil", nil, ""},
		{"number", 42, "42"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanText(tt.in); got != tt.want {
				t.Errorf("CleanText(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestGenerateFallbackRuleMatches(t *testing.T) {
	rules := DefaultFallbackRuleset()

	tests := []struct {
		name      string
		input     CareerInput
		wantTitle string
	}{
		{
			name:      "software interest explores developer",
			input:     CareerInput{Interests: "software and technology"},
			wantTitle: "Software Developer",
		},
		{
			name:      "coding skill with skills task",
			input:     CareerInput{Skills: "coding", Context: map[string]any{"task": "skills"}},
			wantTitle: "DevOps Engineer",
		},
		{
			name:      "design interest explores ux",
			input:     CareerInput{Interests: "graphic design"},
			wantTitle: "UX/UI Designer",
		},
		{
			name:      "data skill explores analyst",
			input:     CareerInput{Skills: "sql and data analysis"},
			wantTitle: "Business Analyst",
		},
		{
			name:      "leadership interest explores coordinator",
			input:     CareerInput{Interests: "leadership"},
			wantTitle: "Project Coordinator",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GenerateFallback(tt.input, rules)
			if len(result.Careers) == 0 {
				t.Fatal("expected at least one suggestion")
			}
			found := false
			for _, c := range result.Careers {
				if c.Title == tt.wantTitle {
					found = true
				}
			}
			if !found {
				t.Errorf("expected a %q suggestion, got %+v", tt.wantTitle, result.Careers)
			}
		})
	}
}

func TestGenerateFallbackTieBreak(t *testing.T) {
	rules := DefaultFallbackRuleset()

	tests := []struct {
		name      string
		input     CareerInput
		wantTitle string
	}{
		{
			name:      "courses task breaks to marketing",
			input:     CareerInput{Interests: "gardening", Context: map[string]any{"task": "courses"}},
			wantTitle: "Digital Marketing Specialist",
		},
		{
			name:      "marketing interest breaks to marketing",
			input:     CareerInput{Interests: "brand marketing", Context: map[string]any{"task": "industry"}},
			wantTitle: "Digital Marketing Specialist",
		},
		{
			name:      "design with unmatched task breaks to designer",
			input:     CareerInput{Interests: "design", Context: map[string]any{"task": "opportunities"}},
			wantTitle: "UX/UI Designer",
		},
		{
			name:      "nothing matches at all",
			input:     CareerInput{Interests: "gardening"},
			wantTitle: "Project Coordinator",
		},
		{
			name:      "empty input still yields default",
			input:     CareerInput{},
			wantTitle: "Project Coordinator",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GenerateFallback(tt.input, rules)
			if len(result.Careers) != 1 {
				t.Fatalf("tie-break should yield exactly one suggestion, got %d", len(result.Careers))
			}
			if result.Careers[0].Title != tt.wantTitle {
				t.Errorf("got %q, want %q", result.Careers[0].Title, tt.wantTitle)
			}
		})
	}
}

func TestGenerateFallbackMood(t *testing.T) {
	rules := DefaultFallbackRuleset()

	tests := []struct {
		name    string
		mindset string
		want    string
	}{
		{"empty mindset is neutral", "", MoodTagNeutral},
		{"plain mindset is neutral", "curious about options", MoodTagNeutral},
		{"confused is unsure", "feeling confused about everything", MoodTagUnsure},
		{"optimistic is hopeful", "optimistic about the future", MoodTagHopeful},
		{"stressed is anxious", "anxious and stressed", MoodTagAnxious},
		// Later rules win when several match.
		{"anxious beats hopeful", "hopeful but worried", MoodTagAnxious},
		{"hopeful beats unsure", "unsure yet open to ideas", MoodTagHopeful},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GenerateFallback(CareerInput{Mindset: tt.mindset}, rules)
			if result.Mood != tt.want {
				t.Errorf("mood = %q, want %q", result.Mood, tt.want)
			}
		})
	}
}

func TestGenerateFallbackInsight(t *testing.T) {
	rules := DefaultFallbackRuleset()

	result := GenerateFallback(CareerInput{Interests: "software", Mindset: "hopeful"}, rules)
	if !strings.Contains(result.Insight, `"hopeful"`) {
		t.Errorf("insight should quote the mindset, got %q", result.Insight)
	}
	if !strings.Contains(result.Insight, "explore") {
		t.Errorf("insight should name the focus, got %q", result.Insight)
	}

	empty := GenerateFallback(CareerInput{}, rules)
	if !strings.Contains(empty.Insight, "unspecified") {
		t.Errorf("empty input should read as unspecified, got %q", empty.Insight)
	}
}
