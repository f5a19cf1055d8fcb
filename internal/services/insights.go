package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"

	"github.com/udaan-app/udaan-backend/internal/logger"
	"github.com/udaan-app/udaan-backend/internal/repos"
	"github.com/udaan-app/udaan-backend/internal/types"
)

const (
	insightWindowDays   = 7
	defaultAverageSleep = 7.0
	defaultAverageMood  = 3.0

	moodScoreHappy   = "Happy"
	moodScoreNeutral = "Neutral"
	moodScoreStress  = "Stressed"
)

// moodValueLabels renders a 1-5 tracker value as a display tag for trend
// distributions.
var moodValueLabels = map[int]string{
	5: MoodTagHappy,
	4: MoodTagCalm,
	3: MoodTagNeutral,
	2: MoodTagAnxious,
	1: MoodTagBurntOut,
}

type InsightTrigger struct {
	Label  string `json:"label"`
	Detail string `json:"detail"`
}

type ChartPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// InsightReport is the weekly wellbeing snapshot returned to the dashboard
// and persisted as a MoodInsight row.
type InsightReport struct {
	Date           time.Time        `json:"date"`
	InferredMood   string           `json:"inferredMood"`
	Score          float64          `json:"score"`
	AverageMood    float64          `json:"averageMood"`
	CompletionRate float64          `json:"completionRate"`
	AverageSleep   float64          `json:"averageSleep"`
	Triggers       []InsightTrigger `json:"moodTriggers"`
	Message        string           `json:"message"`
	ChartData      []ChartPoint     `json:"chartData"`
}

type MoodTrendPoint struct {
	Date   time.Time `json:"date"`
	Value  int       `json:"value"`
	Note   string    `json:"note,omitempty"`
	Source string    `json:"source"`
}

type MoodTrendsReport struct {
	Days         int              `json:"days"`
	Average      float64          `json:"average"`
	Points       []MoodTrendPoint `json:"points"`
	Distribution map[string]int   `json:"distribution"`
}

type InsightsService interface {
	// Generate computes the rolling 7-day wellbeing snapshot and persists it.
	Generate(ctx context.Context, userID uuid.UUID) (*InsightReport, error)
	// MoodTrends returns raw mood history with a per-label distribution.
	// days is clamped to [1, 365].
	MoodTrends(ctx context.Context, userID uuid.UUID, days int) (*MoodTrendsReport, error)
}

type insightsService struct {
	log         *logger.Logger
	moodRepo    repos.MoodRepo
	journalRepo repos.JournalRepo
	taskRepo    repos.TaskRepo
	insightRepo repos.MoodInsightRepo
}

func NewInsightsService(
	baseLog *logger.Logger,
	moodRepo repos.MoodRepo,
	journalRepo repos.JournalRepo,
	taskRepo repos.TaskRepo,
	insightRepo repos.MoodInsightRepo,
) InsightsService {
	return &insightsService{
		log:         baseLog.With("service", "InsightsService"),
		moodRepo:    moodRepo,
		journalRepo: journalRepo,
		taskRepo:    taskRepo,
		insightRepo: insightRepo,
	}
}

func (s *insightsService) Generate(ctx context.Context, userID uuid.UUID) (*InsightReport, error) {
	end := time.Now().UTC()
	start := end.AddDate(0, 0, -insightWindowDays)

	var (
		moods   []*types.Mood
		entries []*types.JournalEntry
		tasks   []*types.Task
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		moods, err = s.moodRepo.ListSince(gctx, nil, userID, start)
		return err
	})
	g.Go(func() error {
		var err error
		entries, err = s.journalRepo.ListBetween(gctx, nil, userID, start, end)
		return err
	})
	g.Go(func() error {
		var err error
		tasks, err = s.taskRepo.ListForWindow(gctx, nil, userID, start, end)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load insight inputs: %w", err)
	}

	avgMood := averageMood(moods, entries)
	rate, taskTotal := completionRate(tasks, entries)
	avgSleep := averageSleep(entries)
	score := moodScore(avgMood, rate, avgSleep)
	inferred := inferMood(score)
	triggers := detectTriggers(taskTotal, rate, avgSleep)

	report := &InsightReport{
		Date:           end,
		InferredMood:   inferred,
		Score:          score,
		AverageMood:    avgMood,
		CompletionRate: rate,
		AverageSleep:   avgSleep,
		Triggers:       triggers,
		Message:        insightMessage(inferred, triggers),
		ChartData:      dailyMoodChart(moods, start, end),
	}
	s.persist(ctx, userID, report)
	return report, nil
}

func (s *insightsService) MoodTrends(ctx context.Context, userID uuid.UUID, days int) (*MoodTrendsReport, error) {
	if days < 1 {
		days = insightWindowDays
	}
	if days > 365 {
		days = 365
	}
	since := time.Now().UTC().AddDate(0, 0, -days)
	moods, err := s.moodRepo.ListSince(ctx, nil, userID, since)
	if err != nil {
		return nil, fmt.Errorf("load mood history: %w", err)
	}

	report := &MoodTrendsReport{
		Days:         days,
		Points:       make([]MoodTrendPoint, 0, len(moods)),
		Distribution: map[string]int{},
	}
	sum := 0
	for _, m := range moods {
		report.Points = append(report.Points, MoodTrendPoint{
			Date:   m.Date,
			Value:  m.Value,
			Note:   m.Note,
			Source: m.Source,
		})
		label, ok := moodValueLabels[m.Value]
		if !ok {
			label = MoodTagNeutral
		}
		report.Distribution[label]++
		sum += m.Value
	}
	if len(moods) > 0 {
		report.Average = float64(sum) / float64(len(moods))
	}
	return report, nil
}

// averageMood prefers explicit tracker entries; journal mood ratings are the
// secondary signal and a flat 3.0 covers users with no data at all.
func averageMood(moods []*types.Mood, entries []*types.JournalEntry) float64 {
	if len(moods) > 0 {
		sum := 0
		for _, m := range moods {
			sum += m.Value
		}
		return float64(sum) / float64(len(moods))
	}
	sum, count := 0, 0
	for _, e := range entries {
		if e.MoodValue != nil {
			sum += *e.MoodValue
			count++
		}
	}
	if count > 0 {
		return float64(sum) / float64(count)
	}
	return defaultAverageMood
}

// completionRate comes from Task rows when any exist in the window, otherwise
// from the journal entries' inline task counters.
func completionRate(tasks []*types.Task, entries []*types.JournalEntry) (float64, int) {
	if len(tasks) > 0 {
		completed := 0
		for _, t := range tasks {
			if t.Status == types.TaskStatusCompleted {
				completed++
			}
		}
		return float64(completed) / float64(len(tasks)), len(tasks)
	}
	total, completed := 0, 0
	for _, e := range entries {
		total += e.TaskTotal
		completed += e.TaskCompleted
	}
	if total > 0 {
		return float64(completed) / float64(total), total
	}
	return 0, 0
}

func averageSleep(entries []*types.JournalEntry) float64 {
	sum, count := 0.0, 0
	for _, e := range entries {
		if e.SleepHours > 0 {
			sum += e.SleepHours
			count++
		}
	}
	if count == 0 {
		return defaultAverageSleep
	}
	return sum / float64(count)
}

// moodScore blends the three signals: mood dominates, task completion and
// sleep nudge it. Sleep contribution saturates at 8 hours.
func moodScore(avgMood, completionRate, avgSleep float64) float64 {
	sleepFactor := avgSleep / 8
	if sleepFactor > 1 {
		sleepFactor = 1
	}
	return 0.6*(avgMood/5) + 0.2*completionRate + 0.1*sleepFactor
}

func inferMood(score float64) string {
	switch {
	case score > 0.75:
		return moodScoreHappy
	case score > 0.5:
		return moodScoreNeutral
	default:
		return moodScoreStress
	}
}

func detectTriggers(taskTotal int, completionRate, avgSleep float64) []InsightTrigger {
	var triggers []InsightTrigger
	if float64(taskTotal)/insightWindowDays > 5 {
		triggers = append(triggers, InsightTrigger{
			Label:  "High Workload",
			Detail: fmt.Sprintf("%d tasks touched this week", taskTotal),
		})
	}
	if avgSleep < 7 {
		triggers = append(triggers, InsightTrigger{
			Label:  "Lack of Sleep",
			Detail: fmt.Sprintf("averaging %.1f hours per night", avgSleep),
		})
	}
	if taskTotal > 0 && completionRate < 0.5 {
		triggers = append(triggers, InsightTrigger{
			Label:  "Low Task Completion",
			Detail: fmt.Sprintf("%.0f%% of tasks completed", completionRate*100),
		})
	}
	return triggers
}

func insightMessage(inferred string, triggers []InsightTrigger) string {
	if len(triggers) > 0 {
		switch triggers[0].Label {
		case "High Workload":
			return "Your week looks packed. Consider deferring one or two tasks so the important ones get real attention."
		case "Lack of Sleep":
			return "Sleep has been short lately. Even 30 extra minutes tonight will show up in tomorrow's mood."
		case "Low Task Completion":
			return "A lot of tasks are still open. Try picking just one to finish today and let the rest wait."
		}
	}
	switch inferred {
	case moodScoreHappy:
		return "You're in a good stretch. Note what's working this week so you can repeat it."
	case moodScoreNeutral:
		return "A steady week. A short walk or a quick journal entry could give it a lift."
	default:
		return "This week has been tough. Be kind to yourself and keep the next step small."
	}
}

// dailyMoodChart buckets tracked moods by calendar day and averages each
// bucket. Days without entries are omitted.
func dailyMoodChart(moods []*types.Mood, start, end time.Time) []ChartPoint {
	type bucket struct {
		sum   int
		count int
	}
	buckets := map[string]*bucket{}
	for _, m := range moods {
		day := m.Date.UTC().Format("2006-01-02")
		b, ok := buckets[day]
		if !ok {
			b = &bucket{}
			buckets[day] = b
		}
		b.sum += m.Value
		b.count++
	}

	var points []ChartPoint
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		key := day.UTC().Format("2006-01-02")
		if b, ok := buckets[key]; ok {
			points = append(points, ChartPoint{
				Date:  key,
				Value: float64(b.sum) / float64(b.count),
			})
		}
	}
	return points
}

func (s *insightsService) persist(ctx context.Context, userID uuid.UUID, report *InsightReport) {
	triggersJSON, err := json.Marshal(report.Triggers)
	if err != nil {
		s.log.Warn("Failed to serialize insight triggers", "error", err)
		triggersJSON = []byte("[]")
	}
	record := &types.MoodInsight{
		UserID:         userID,
		Date:           report.Date,
		InferredMood:   report.InferredMood,
		Score:          report.Score,
		CompletionRate: report.CompletionRate,
		AverageSleep:   report.AverageSleep,
		MoodTriggers:   datatypes.JSON(triggersJSON),
		Message:        report.Message,
	}
	if _, err := s.insightRepo.Create(ctx, nil, []*types.MoodInsight{record}); err != nil {
		s.log.Warn("Failed to persist mood insight", "error", err)
	}
}
