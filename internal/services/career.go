package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/udaan-app/udaan-backend/internal/logger"
	"github.com/udaan-app/udaan-backend/internal/repos"
	"github.com/udaan-app/udaan-backend/internal/types"
)

const careerSystemPrompt = `You are an expert, precise career advisor for students and early professionals. Analyze the user's interests, skills and goals and return a concise, factual JSON object matching the schema below. No prose outside the JSON. Be specific and grounded in current market demand.

REQUIREMENTS:
- Return ONLY valid JSON (no explanation or extra text). Do NOT wrap the JSON in markdown or code fences.
- Provide 2-3 focused career suggestions in the exact field name "careers" (array).
- Each career object must include these exact keys: "title", "description", "why", "keySkills" (array), "marketDemand", "growthPath", "steps" (array), "requiredQualifications", "learningResources" (array).
- For any list-like fields, use JSON arrays (not newline strings).
- Keep text concise, factual, and grounded in observable market demand.
- If unsure about a value, return an empty string or empty array for that field rather than omitting it.
- Also return top-level "mood" (a short tag) and "insight" (one line for a dashboard).`

const careerRepairPrompt = `You are a JSON fixer. The user will provide text that should represent a JSON object. Your only job is to output a single valid JSON object that follows the requested schema. Do NOT add any commentary.`

type CareerService interface {
	// Suggest runs the full pipeline: cache lookup, optional model call with
	// one repair retry, normalization, validation, and deterministic fallback
	// on any failure. It always produces a usable result.
	Suggest(ctx context.Context, userID *uuid.UUID, input CareerInput) (*CareerResult, error)
}

type careerService struct {
	db             *gorm.DB
	log            *logger.Logger
	ai             OpenAIClient // nil when no API key is configured
	cache          *TTLCache
	rules          *FallbackRuleset
	suggestionRepo repos.CareerSuggestionRepo
	model          string
	temperature    float64
}

func NewCareerService(
	db *gorm.DB,
	baseLog *logger.Logger,
	ai OpenAIClient,
	cache *TTLCache,
	rules *FallbackRuleset,
	suggestionRepo repos.CareerSuggestionRepo,
	model string,
	temperature float64,
) CareerService {
	return &careerService{
		db:             db,
		log:            baseLog.With("service", "CareerService"),
		ai:             ai,
		cache:          cache,
		rules:          rules,
		suggestionRepo: suggestionRepo,
		model:          model,
		temperature:    temperature,
	}
}

func careerCacheKey(input CareerInput) string {
	contextMap := input.Context
	if contextMap == nil {
		contextMap = map[string]any{}
	}
	return StableKey(map[string]any{
		"interests": input.Interests,
		"skills":    input.Skills,
		"mindset":   input.Mindset,
		"context":   contextMap,
	})
}

func (s *careerService) Suggest(ctx context.Context, userID *uuid.UUID, input CareerInput) (*CareerResult, error) {
	key := careerCacheKey(input)

	if s.ai == nil {
		return s.fallbackResult(ctx, userID, input, key, CareerMeta{}), nil
	}

	raw, err := s.ai.ChatComplete(ctx, careerSystemPrompt,
		[]ChatTurn{{Role: "user", Content: s.userPrompt(input)}},
		ChatOptions{Model: s.model, Temperature: s.temperature, MaxTokens: 800})
	if err != nil {
		meta := CareerMeta{OpenAIError: openAIErrorOther}
		if IsRateLimit(err) {
			meta.OpenAIError = openAIErrorRateLimit
			s.log.Warn("OpenAI rate limited, using rule-based suggestions", "error", err)
		} else {
			s.log.Warn("OpenAI request failed, using rule-based suggestions", "error", err)
		}
		return s.fallbackResult(ctx, userID, input, key, meta), nil
	}

	parsed := TryParseJSON(raw)
	if parsed == nil {
		// Exactly one repair attempt: ask the model to reformat its own
		// output as strict JSON. No further retries regardless of outcome.
		s.log.Warn("Model output failed to parse, attempting repair", "raw_len", len(raw))
		repaired, repairErr := s.ai.ChatComplete(ctx, careerRepairPrompt,
			[]ChatTurn{{Role: "user", Content: "Here is the model output that failed to parse as JSON. Convert it into valid JSON that matches the schema:\n\n" + raw}},
			ChatOptions{Model: s.model, Temperature: 0, MaxTokens: 800})
		if repairErr != nil {
			s.log.Warn("Repair attempt failed", "error", repairErr)
		} else {
			parsed = TryParseJSON(repaired)
		}
	}

	normalized := NormalizeParsedResponse(parsed)
	if !IsValidCareerResponse(normalized) {
		s.log.Warn("Model response failed validation after normalization, falling back")
		meta := CareerMeta{InvalidShape: true, ParseError: parsed == nil}
		return s.fallbackResult(ctx, userID, input, key, meta), nil
	}

	normalized.mergeMeta(CareerMeta{Source: careerSourceOpenAI})
	s.persist(ctx, userID, input, normalized)
	return normalized, nil
}

// fallbackResult serves a cached fallback when one is live, otherwise runs
// the rule engine, caches the untagged result and persists it. Cached hits
// are not re-persisted.
func (s *careerService) fallbackResult(ctx context.Context, userID *uuid.UUID, input CareerInput, key string, meta CareerMeta) *CareerResult {
	var cached CareerResult
	if s.cache.Get(key, &cached) {
		meta.Source = careerSourceFallbackCache
		cached.mergeMeta(meta)
		return &cached
	}

	fallback := GenerateFallback(input, s.rules)
	s.cache.Set(key, fallback)
	meta.Source = careerSourceFallback
	fallback.mergeMeta(meta)
	s.persist(ctx, userID, input, fallback)
	return fallback
}

func (s *careerService) userPrompt(input CareerInput) string {
	orUnspecified := func(v string) string {
		if v == "" {
			return "Not specified"
		}
		return v
	}
	background := input.FullBackground()
	if background == "" {
		background = "None provided"
	}
	return "User Profile:\n" +
		"Interests: " + orUnspecified(input.Interests) + "\n" +
		"Skills: " + orUnspecified(input.Skills) + "\n" +
		"Current Mindset: " + orUnspecified(input.Mindset) + "\n" +
		"Additional Context: " + background + "\n" +
		"Focus Area: " + input.Task()
}

// persist appends the computed result to the suggestion log. Best-effort:
// failures are logged and never affect the response.
func (s *careerService) persist(ctx context.Context, userID *uuid.UUID, input CareerInput, result *CareerResult) {
	inputJSON, err := json.Marshal(input)
	if err != nil {
		s.log.Warn("Failed to serialize career input for persistence", "error", err)
		return
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		s.log.Warn("Failed to serialize career result for persistence", "error", err)
		return
	}
	record := &types.CareerSuggestion{
		UserID:  userID,
		Input:   datatypes.JSON(inputJSON),
		Result:  datatypes.JSON(resultJSON),
		Mood:    result.Mood,
		Insight: result.Insight,
	}
	if _, err := s.suggestionRepo.Create(ctx, nil, []*types.CareerSuggestion{record}); err != nil {
		s.log.Warn("Failed to persist career suggestion", "error", err)
		return
	}
	s.log.Debug("Career suggestion persisted", "source", result.Meta.Source)
}
