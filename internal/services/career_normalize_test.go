package services

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestTryParseJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantNil bool
	}{
		{"plain object", `{"careers":[]}`, false},
		{"fenced object", "```json\n{\"careers\":[]}\n```", false},
		{"fence without json tag", "``` {\"careers\":[]} ```", true},
		{"surrounding whitespace", "  {\"mood\":\"ok\"}  ", false},
		{"prose", "here are some careers for you", true},
		{"empty", "", true},
		{"array not object", `[1,2,3]`, true},
		{"truncated", `{"careers":[{"title":"Dev`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TryParseJSON(tt.in)
			if (got == nil) != tt.wantNil {
				t.Errorf("TryParseJSON(%q) nil = %v, want %v", tt.in, got == nil, tt.wantNil)
			}
		})
	}
}

func TestNormalizeItemAliases(t *testing.T) {
	item := normalizeItem(map[string]any{
		"role":               "Data Engineer",
		"summary":            "Builds data pipelines.",
		"reason":             "Fits analytical strengths.",
		"skills":             []any{"SQL", "Python"},
		"potentialEmployers": []any{"banks", "startups"},
		"careerPath":         "Senior Data Engineer",
		"nextSteps":          "Learn SQL; Build a pipeline",
		"qualifications":     "CS degree or equivalent",
		"resources":          "Course A, Course B",
	})

	if item.Title != "Data Engineer" {
		t.Errorf("title alias not resolved: %q", item.Title)
	}
	if item.Description != "Builds data pipelines." {
		t.Errorf("description alias not resolved: %q", item.Description)
	}
	if item.Why != "Fits analytical strengths." {
		t.Errorf("why alias not resolved: %q", item.Why)
	}
	if !reflect.DeepEqual(item.KeySkills, []string{"SQL", "Python"}) {
		t.Errorf("keySkills = %v", item.KeySkills)
	}
	if item.MarketDemand != "banks, startups" {
		t.Errorf("potentialEmployers should join into marketDemand: %q", item.MarketDemand)
	}
	if item.GrowthPath != "Senior Data Engineer" {
		t.Errorf("growthPath alias not resolved: %q", item.GrowthPath)
	}
	if !reflect.DeepEqual(item.Steps, []string{"Learn SQL", "Build a pipeline"}) {
		t.Errorf("steps should split on delimiters: %v", item.Steps)
	}
	if item.RequiredQualifications != "CS degree or equivalent" {
		t.Errorf("qualifications alias not resolved: %q", item.RequiredQualifications)
	}
	if !reflect.DeepEqual(item.LearningResources, []string{"Course A", "Course B"}) {
		t.Errorf("resources should split on commas: %v", item.LearningResources)
	}
}

func TestNormalizeItemCapsLists(t *testing.T) {
	item := normalizeItem(map[string]any{
		"keySkills": []any{"a", "b", "c", "d", "e", "f", "g", "h"},
	})
	if len(item.KeySkills) != maxListEntries {
		t.Errorf("keySkills should cap at %d, got %d", maxListEntries, len(item.KeySkills))
	}
}

func TestNormalizeItemPrefersPrimaryAlias(t *testing.T) {
	item := normalizeItem(map[string]any{
		"title": "Primary",
		"role":  "Secondary",
	})
	if item.Title != "Primary" {
		t.Errorf("earlier alias should win, got %q", item.Title)
	}

	// Empty primary falls through to the next alias.
	item = normalizeItem(map[string]any{
		"title": "   ",
		"role":  "Secondary",
	})
	if item.Title != "Secondary" {
		t.Errorf("blank primary should fall through, got %q", item.Title)
	}
}

func TestNormalizeParsedResponse(t *testing.T) {
	t.Run("nil passes through", func(t *testing.T) {
		if NormalizeParsedResponse(nil) != nil {
			t.Error("nil input should stay nil")
		}
	})

	t.Run("careerSuggestions alias", func(t *testing.T) {
		res := NormalizeParsedResponse(map[string]any{
			"careerSuggestions": []any{
				map[string]any{"title": "Dev"},
				map[string]any{"title": "Designer"},
			},
			"emotion": "😊 Happy",
			"summary": "strong technical profile",
		})
		if len(res.Careers) != 2 {
			t.Fatalf("expected 2 careers, got %d", len(res.Careers))
		}
		if res.Mood != "😊 Happy" {
			t.Errorf("mood alias not resolved: %q", res.Mood)
		}
		if res.Insight != "strong technical profile" {
			t.Errorf("insight alias not resolved: %q", res.Insight)
		}
	})

	t.Run("single item synthesis", func(t *testing.T) {
		res := NormalizeParsedResponse(map[string]any{
			"title":       "Dev",
			"description": "writes code",
		})
		if len(res.Careers) != 1 {
			t.Fatalf("career-shaped top level should synthesize one item, got %d", len(res.Careers))
		}
		if res.Careers[0].Title != "Dev" {
			t.Errorf("got %q", res.Careers[0].Title)
		}
	})

	t.Run("no careers anywhere", func(t *testing.T) {
		res := NormalizeParsedResponse(map[string]any{"mood": "ok"})
		if len(res.Careers) != 0 {
			t.Errorf("expected empty careers, got %v", res.Careers)
		}
	})
}

// Aliasing must be identity-preserving: normalizing an already-canonical
// result keeps every title.
func TestNormalizeParsedResponseRoundTrip(t *testing.T) {
	canonical := &CareerResult{
		Careers: []CareerItem{
			{Title: "Software Developer", Description: "d", Why: "w", KeySkills: []string{"go"}, Steps: []string{"s"}},
			{Title: "UX/UI Designer", Description: "d", Why: "w", KeySkills: []string{"figma"}, Steps: []string{"s"}},
		},
		Mood:    MoodTagHopeful,
		Insight: "i",
	}
	encoded, err := json.Marshal(canonical)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	parsed := TryParseJSON(string(encoded))
	if parsed == nil {
		t.Fatal("canonical result should parse")
	}
	res := NormalizeParsedResponse(parsed)
	if len(res.Careers) != len(canonical.Careers) {
		t.Fatalf("career count changed: %d", len(res.Careers))
	}
	for i := range canonical.Careers {
		if res.Careers[i].Title != canonical.Careers[i].Title {
			t.Errorf("title[%d] = %q, want %q", i, res.Careers[i].Title, canonical.Careers[i].Title)
		}
	}
	if res.Mood != canonical.Mood || res.Insight != canonical.Insight {
		t.Errorf("mood/insight changed: %q %q", res.Mood, res.Insight)
	}
	if !IsValidCareerResponse(res) {
		t.Error("canonical input should stay valid")
	}
}

func TestIsValidCareerResponse(t *testing.T) {
	valid := CareerItem{
		Title:       "Dev",
		Description: "writes code",
		Why:         "fits",
		KeySkills:   []string{"go"},
		Steps:       []string{"learn"},
	}

	tests := []struct {
		name string
		res  *CareerResult
		want bool
	}{
		{"nil", nil, false},
		{"empty careers", &CareerResult{}, false},
		{"valid single", &CareerResult{Careers: []CareerItem{valid}}, true},
		{
			"missing title",
			&CareerResult{Careers: []CareerItem{{Description: "d", Why: "w", KeySkills: []string{"s"}, Steps: []string{"s"}}}},
			false,
		},
		{
			"whitespace title",
			&CareerResult{Careers: []CareerItem{{Title: "  ", Description: "d", Why: "w", KeySkills: []string{"s"}, Steps: []string{"s"}}}},
			false,
		},
		{
			"no key skills",
			&CareerResult{Careers: []CareerItem{{Title: "t", Description: "d", Why: "w", Steps: []string{"s"}}}},
			false,
		},
		{
			"no steps",
			&CareerResult{Careers: []CareerItem{{Title: "t", Description: "d", Why: "w", KeySkills: []string{"s"}}}},
			false,
		},
		{
			"one bad item poisons the batch",
			&CareerResult{Careers: []CareerItem{valid, {Title: "t"}}},
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidCareerResponse(tt.res); got != tt.want {
				t.Errorf("IsValidCareerResponse = %v, want %v", got, tt.want)
			}
		})
	}
}
