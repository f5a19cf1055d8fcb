package services

import (
	"fmt"
	"regexp"
	"strings"
)

// Mood tags shared by the career and chat surfaces.
const (
	MoodTagNeutral   = "😌 Neutral"
	MoodTagUnsure    = "🤔 Unsure"
	MoodTagHopeful   = "😌 Hopeful"
	MoodTagAnxious   = "😟 Anxious"
	MoodTagHappy     = "😊 Happy"
	MoodTagCalm      = "😌 Calm"
	MoodTagMotivated = "🔥 Motivated"
	MoodTagSad       = "😞 Sad"
	MoodTagBurntOut  = "💤 Burnt Out"
)

var (
	unsureRe  = regexp.MustCompile(`(?i)confused|unsure|lost`)
	hopefulRe = regexp.MustCompile(`(?i)hopeful|open|optimistic`)
	anxiousRe = regexp.MustCompile(`(?i)anxious|stressed|worried`)
)

func containsAny(haystack string, terms []string) bool {
	for _, term := range terms {
		if term != "" && strings.Contains(haystack, term) {
			return true
		}
	}
	return false
}

// GenerateFallback is the deterministic rule engine used when the model path
// is unavailable or untrusted. It always returns at least one suggestion.
// The tie-break runs at most once, so an unmatched input yields exactly one
// suggestion, never a duplicate.
func GenerateFallback(input CareerInput, rules *FallbackRuleset) *CareerResult {
	interests := CleanText(input.Interests)
	skills := CleanText(input.Skills)
	mindset := CleanText(input.Mindset)
	lowerInterests := strings.ToLower(interests)
	lowerSkills := strings.ToLower(skills)
	task := input.Task()

	var suggestions []CareerItem
	for _, rule := range rules.Rules {
		if !containsAny(lowerInterests, rule.InterestTerms) && !containsAny(lowerSkills, rule.SkillTerms) {
			continue
		}
		if item, ok := rule.Suggestions[task]; ok {
			suggestions = append(suggestions, item)
		}
	}

	if len(suggestions) == 0 {
		switch {
		case task == "courses",
			containsAny(lowerInterests, []string{"marketing", "brand"}),
			containsAny(lowerSkills, []string{"marketing"}):
			suggestions = append(suggestions, rules.TieBreak.Marketing)
		case strings.Contains(lowerInterests, "design"), strings.Contains(lowerSkills, "design"):
			suggestions = append(suggestions, rules.TieBreak.Design)
		default:
			suggestions = append(suggestions, rules.TieBreak.Default)
		}
	}

	// Each match reassigns, so with several matching terms the last rule
	// checked wins.
	mood := MoodTagNeutral
	if mindset != "" {
		if unsureRe.MatchString(mindset) {
			mood = MoodTagUnsure
		}
		if hopefulRe.MatchString(mindset) {
			mood = MoodTagHopeful
		}
		if anxiousRe.MatchString(mindset) {
			mood = MoodTagAnxious
		}
	}

	displayMindset := mindset
	if displayMindset == "" {
		displayMindset = "unspecified"
	}
	displayInterests := interests
	if displayInterests == "" {
		displayInterests = "unspecified"
	}
	insight := fmt.Sprintf("Based on: %q and interests=%q - tailored suggestions for a %s focus.", displayMindset, displayInterests, task)

	return &CareerResult{Careers: suggestions, Mood: mood, Insight: insight}
}
