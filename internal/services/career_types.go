package services

import (
	"strings"
)

// CareerInput is the cleaned-up request body for a suggestion run. Context is
// kept free-form because the frontend attaches arbitrary metadata next to the
// task selector; it participates in cache-key derivation as-is.
type CareerInput struct {
	Interests string         `json:"interests"`
	Skills    string         `json:"skills"`
	Mindset   string         `json:"mindset"`
	Mood      *float64       `json:"mood,omitempty"`
	MoodNote  string         `json:"moodNote,omitempty"`
	Context   map[string]any `json:"context"`
}

// Task returns the requested focus area, lower-cased, defaulting to
// "explore". Accepts the legacy queryType key as an alias.
func (in CareerInput) Task() string {
	if in.Context != nil {
		if v, ok := in.Context["task"].(string); ok && v != "" {
			return strings.ToLower(v)
		}
		if v, ok := in.Context["queryType"].(string); ok && v != "" {
			return strings.ToLower(v)
		}
	}
	return "explore"
}

func (in CareerInput) FullBackground() string {
	if in.Context != nil {
		if v, ok := in.Context["fullBackground"].(string); ok {
			return v
		}
	}
	return ""
}

type CareerItem struct {
	Title                  string   `json:"title" yaml:"title"`
	Description            string   `json:"description" yaml:"description"`
	Why                    string   `json:"why" yaml:"why"`
	KeySkills              []string `json:"keySkills,omitempty" yaml:"key_skills,omitempty"`
	MarketDemand           string   `json:"marketDemand,omitempty" yaml:"market_demand,omitempty"`
	GrowthPath             string   `json:"growthPath,omitempty" yaml:"growth_path,omitempty"`
	Steps                  []string `json:"steps" yaml:"steps"`
	RequiredQualifications string   `json:"requiredQualifications,omitempty" yaml:"required_qualifications,omitempty"`
	LearningResources      []string `json:"learningResources,omitempty" yaml:"learning_resources,omitempty"`
}

type CareerResult struct {
	Careers []CareerItem `json:"careers"`
	Mood    string       `json:"mood"`
	Insight string       `json:"insight"`
	Meta    *CareerMeta  `json:"_meta,omitempty"`
}

// CareerMeta annotates a result with how it was produced. OpenAIError is
// "rate_limit" when the upstream call was throttled and "error" for any other
// upstream failure.
type CareerMeta struct {
	Source       string `json:"source,omitempty"`
	OpenAIError  string `json:"openaiError,omitempty"`
	InvalidShape bool   `json:"invalidShape,omitempty"`
	ParseError   bool   `json:"parseError,omitempty"`
}

const (
	careerSourceOpenAI        = "openai"
	careerSourceFallback      = "fallback"
	careerSourceFallbackCache = "fallback_cache"

	openAIErrorRateLimit = "rate_limit"
	openAIErrorOther     = "error"
)

func (r *CareerResult) mergeMeta(meta CareerMeta) {
	if r.Meta == nil {
		r.Meta = &CareerMeta{}
	}
	if meta.Source != "" {
		r.Meta.Source = meta.Source
	}
	if meta.OpenAIError != "" {
		r.Meta.OpenAIError = meta.OpenAIError
	}
	if meta.InvalidShape {
		r.Meta.InvalidShape = true
	}
	if meta.ParseError {
		r.Meta.ParseError = true
	}
}
