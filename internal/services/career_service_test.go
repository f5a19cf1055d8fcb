package services

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/udaan-app/udaan-backend/internal/logger"
	"github.com/udaan-app/udaan-backend/internal/types"
)

type fakeOpenAI struct {
	replies []string
	errs    []error
	calls   int
	systems []string
}

func (f *fakeOpenAI) ChatComplete(ctx context.Context, system string, messages []ChatTurn, opts ChatOptions) (string, error) {
	i := f.calls
	f.calls++
	f.systems = append(f.systems, system)
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	var reply string
	if i < len(f.replies) {
		reply = f.replies[i]
	}
	return reply, err
}

type fakeSuggestionRepo struct {
	created []*types.CareerSuggestion
}

func (f *fakeSuggestionRepo) Create(ctx context.Context, tx *gorm.DB, suggestions []*types.CareerSuggestion) ([]*types.CareerSuggestion, error) {
	f.created = append(f.created, suggestions...)
	return suggestions, nil
}

func newTestCareerService(t *testing.T, ai OpenAIClient, repo *fakeSuggestionRepo) CareerService {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return NewCareerService(nil, log, ai, NewTTLCache(time.Hour), DefaultFallbackRuleset(), repo, "test-model", 0)
}

const validModelJSON = `{"careers":[{"title":"Cloud Architect","description":"Designs cloud systems.","why":"Fits infra skills.","keySkills":["AWS"],"steps":["Get certified"]}],"mood":"😊 Happy","insight":"Strong infra profile."}`

func TestSuggestWithoutClientUsesFallbackAndCache(t *testing.T) {
	repo := &fakeSuggestionRepo{}
	svc := newTestCareerService(t, nil, repo)
	input := CareerInput{Interests: "software"}

	first, err := svc.Suggest(context.Background(), nil, input)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if first.Meta == nil || first.Meta.Source != "fallback" {
		t.Fatalf("first call should be tagged fallback, got %+v", first.Meta)
	}
	if len(repo.created) != 1 {
		t.Fatalf("first call should persist once, got %d", len(repo.created))
	}

	second, err := svc.Suggest(context.Background(), nil, input)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if second.Meta == nil || second.Meta.Source != "fallback_cache" {
		t.Fatalf("second call should be a cache hit, got %+v", second.Meta)
	}
	if len(repo.created) != 1 {
		t.Errorf("cache hits must not be re-persisted, got %d rows", len(repo.created))
	}
	if second.Careers[0].Title != first.Careers[0].Title {
		t.Errorf("cached result should match: %q vs %q", second.Careers[0].Title, first.Careers[0].Title)
	}
}

func TestSuggestValidModelResponse(t *testing.T) {
	repo := &fakeSuggestionRepo{}
	ai := &fakeOpenAI{replies: []string{validModelJSON}}
	svc := newTestCareerService(t, ai, repo)

	result, err := svc.Suggest(context.Background(), nil, CareerInput{Interests: "cloud"})
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if ai.calls != 1 {
		t.Errorf("expected a single model call, got %d", ai.calls)
	}
	if result.Meta == nil || result.Meta.Source != "openai" {
		t.Fatalf("expected openai source, got %+v", result.Meta)
	}
	if result.Careers[0].Title != "Cloud Architect" {
		t.Errorf("got %q", result.Careers[0].Title)
	}
	if len(repo.created) != 1 {
		t.Errorf("expected one persisted row, got %d", len(repo.created))
	}
}

func TestSuggestRateLimitTagsFallback(t *testing.T) {
	repo := &fakeSuggestionRepo{}
	ai := &fakeOpenAI{errs: []error{&openAIHTTPError{StatusCode: 429, Body: "slow down"}}}
	svc := newTestCareerService(t, ai, repo)

	result, err := svc.Suggest(context.Background(), nil, CareerInput{Interests: "software"})
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if result.Meta == nil || result.Meta.Source != "fallback" {
		t.Fatalf("expected fallback source, got %+v", result.Meta)
	}
	if result.Meta.OpenAIError != "rate_limit" {
		t.Errorf("expected rate_limit tag, got %q", result.Meta.OpenAIError)
	}
	if len(result.Careers) == 0 {
		t.Error("fallback must still produce suggestions")
	}
}

func TestSuggestUpstreamErrorTagsFallback(t *testing.T) {
	repo := &fakeSuggestionRepo{}
	ai := &fakeOpenAI{errs: []error{&openAIHTTPError{StatusCode: 500, Body: "boom"}}}
	svc := newTestCareerService(t, ai, repo)

	result, err := svc.Suggest(context.Background(), nil, CareerInput{})
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if result.Meta.OpenAIError != "error" {
		t.Errorf("expected generic error tag, got %q", result.Meta.OpenAIError)
	}
}

func TestSuggestRepairRetrySucceeds(t *testing.T) {
	repo := &fakeSuggestionRepo{}
	ai := &fakeOpenAI{replies: []string{"Sure! Here are some careers:", validModelJSON}}
	svc := newTestCareerService(t, ai, repo)

	result, err := svc.Suggest(context.Background(), nil, CareerInput{Interests: "cloud"})
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if ai.calls != 2 {
		t.Fatalf("expected exactly one repair call, got %d total calls", ai.calls)
	}
	if ai.systems[1] != careerRepairPrompt {
		t.Error("second call should use the repair prompt")
	}
	if result.Meta == nil || result.Meta.Source != "openai" {
		t.Fatalf("repaired response should count as openai, got %+v", result.Meta)
	}
}

func TestSuggestRepairRetryFailsOnce(t *testing.T) {
	repo := &fakeSuggestionRepo{}
	ai := &fakeOpenAI{replies: []string{"not json", "still not json"}}
	svc := newTestCareerService(t, ai, repo)

	result, err := svc.Suggest(context.Background(), nil, CareerInput{Interests: "software"})
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if ai.calls != 2 {
		t.Fatalf("repair must not retry more than once, got %d calls", ai.calls)
	}
	if result.Meta == nil || result.Meta.Source != "fallback" {
		t.Fatalf("expected fallback, got %+v", result.Meta)
	}
	if !result.Meta.InvalidShape || !result.Meta.ParseError {
		t.Errorf("expected invalidShape and parseError, got %+v", result.Meta)
	}
}

func TestSuggestInvalidShapeSkipsRepair(t *testing.T) {
	repo := &fakeSuggestionRepo{}
	// Parses fine but fails validation: no key skills or steps.
	ai := &fakeOpenAI{replies: []string{`{"careers":[{"title":"Dev"}]}`}}
	svc := newTestCareerService(t, ai, repo)

	result, err := svc.Suggest(context.Background(), nil, CareerInput{Interests: "software"})
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if ai.calls != 1 {
		t.Fatalf("parseable output must not trigger repair, got %d calls", ai.calls)
	}
	if !result.Meta.InvalidShape {
		t.Error("expected invalidShape tag")
	}
	if result.Meta.ParseError {
		t.Error("parseError should be false when the payload parsed")
	}
}
