package services

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

const maxListEntries = 6

var (
	openingFenceRe = regexp.MustCompile("(?i)^```json\\s*")
	closingFenceRe = regexp.MustCompile("(?i)```\\s*$")

	keySkillsSplitRe = regexp.MustCompile(`[,\n•\-]+`)
	stepsSplitRe     = regexp.MustCompile(`[\n.;•]+`)
	resourcesSplitRe = regexp.MustCompile(`[,\n;]+`)
)

// TryParseJSON strips a markdown code fence if present and attempts a strict
// JSON parse. Returns nil on any failure, never an error: the caller treats
// an unparseable payload as one more reason to fall back.
func TryParseJSON(text string) map[string]any {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	cleaned := openingFenceRe.ReplaceAllString(trimmed, "")
	cleaned = closingFenceRe.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(cleaned)

	var obj map[string]any
	if err := json.Unmarshal([]byte(cleaned), &obj); err != nil {
		return nil
	}
	return obj
}

// firstString resolves a field through its alias priority list. Only
// non-empty strings count; later aliases are shadowed by earlier ones.
func firstString(obj map[string]any, keys ...string) string {
	for _, key := range keys {
		if v, ok := obj[key]; ok {
			if s, ok := v.(string); ok {
				if trimmed := strings.TrimSpace(s); trimmed != "" {
					return trimmed
				}
			}
		}
	}
	return ""
}

func firstPresent(obj map[string]any, keys ...string) any {
	for _, key := range keys {
		if v, ok := obj[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

// toStringList accepts either a JSON array or a delimiter-joined string and
// yields a string slice. String input is split on the given delimiter set;
// array elements are stringified as-is.
func toStringList(v any, splitter *regexp.Regexp) []string {
	switch t := v.(type) {
	case []any:
		out := make([]string, 0, len(t))
		for _, elem := range t {
			if s, ok := elem.(string); ok {
				out = append(out, s)
				continue
			}
			out = append(out, fmt.Sprintf("%v", elem))
		}
		return out
	case string:
		parts := splitter.Split(t, -1)
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		return out
	default:
		return nil
	}
}

func capList(list []string) []string {
	if len(list) > maxListEntries {
		return list[:maxListEntries]
	}
	return list
}

func normalizeItem(raw map[string]any) CareerItem {
	marketDemand := firstString(raw, "marketDemand", "market_demand", "demand")
	if marketDemand == "" {
		switch employers := raw["potentialEmployers"].(type) {
		case []any:
			parts := make([]string, 0, len(employers))
			for _, e := range employers {
				parts = append(parts, fmt.Sprintf("%v", e))
			}
			marketDemand = strings.Join(parts, ", ")
		case string:
			marketDemand = employers
		}
	}

	return CareerItem{
		Title:                  firstString(raw, "title", "role", "name"),
		Description:            firstString(raw, "description", "desc", "summary"),
		Why:                    firstString(raw, "why", "reason", "match"),
		KeySkills:              capList(toStringList(firstPresent(raw, "keySkills", "keySkillsNeeded", "skills", "key_skills"), keySkillsSplitRe)),
		MarketDemand:           marketDemand,
		GrowthPath:             firstString(raw, "growthPath", "careerPath", "path"),
		Steps:                  capList(toStringList(firstPresent(raw, "steps", "nextSteps", "actions", "recommendations"), stepsSplitRe)),
		RequiredQualifications: firstString(raw, "requiredQualifications", "qualifications", "requirements"),
		LearningResources:      capList(toStringList(firstPresent(raw, "learningResources", "learning_resources", "resources"), resourcesSplitRe)),
	}
}

// NormalizeParsedResponse maps the many field-name variants the model emits
// onto the canonical result schema. A nil input passes through as nil.
func NormalizeParsedResponse(obj map[string]any) *CareerResult {
	if obj == nil {
		return nil
	}

	out := &CareerResult{
		Mood:    firstString(obj, "mood", "emotion"),
		Insight: firstString(obj, "insight", "summary"),
	}

	candidates, _ := firstPresent(obj, "careers", "careerSuggestions", "suggestions", "results").([]any)
	for _, raw := range candidates {
		item, ok := raw.(map[string]any)
		if !ok {
			item = map[string]any{}
		}
		out.Careers = append(out.Careers, normalizeItem(item))
	}

	// A career-shaped top-level object becomes a single-item list.
	if len(out.Careers) == 0 {
		if _, hasTitle := obj["title"]; hasTitle {
			out.Careers = append(out.Careers, normalizeItem(obj))
		} else if _, hasDesc := obj["description"]; hasDesc {
			out.Careers = append(out.Careers, normalizeItem(obj))
		} else if _, hasSkills := obj["keySkills"]; hasSkills {
			out.Careers = append(out.Careers, normalizeItem(obj))
		}
	}

	return out
}

// IsValidCareerResponse is the sole gate deciding whether a model result is
// trusted. Anything failing it routes to the deterministic fallback.
func IsValidCareerResponse(res *CareerResult) bool {
	if res == nil || len(res.Careers) == 0 {
		return false
	}
	for _, c := range res.Careers {
		if strings.TrimSpace(c.Title) == "" {
			return false
		}
		if strings.TrimSpace(c.Description) == "" {
			return false
		}
		if strings.TrimSpace(c.Why) == "" {
			return false
		}
		if len(c.KeySkills) < 1 {
			return false
		}
		if len(c.Steps) < 1 {
			return false
		}
	}
	return true
}
