package services

import (
	"math"
	"testing"
	"time"

	"github.com/udaan-app/udaan-backend/internal/types"
)

func TestInferMood(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{0.9, moodScoreHappy},
		{0.76, moodScoreHappy},
		{0.75, moodScoreNeutral},
		{0.6, moodScoreNeutral},
		{0.51, moodScoreNeutral},
		{0.5, moodScoreStress},
		{0.2, moodScoreStress},
		{0, moodScoreStress},
	}
	for _, tt := range tests {
		if got := inferMood(tt.score); got != tt.want {
			t.Errorf("inferMood(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestMoodScore(t *testing.T) {
	// Perfect week: mood 5/5, everything done, 8h sleep.
	if got := moodScore(5, 1, 8); math.Abs(got-0.9) > 1e-9 {
		t.Errorf("perfect week score = %v, want 0.9", got)
	}
	// Sleep contribution saturates at 8 hours.
	if moodScore(3, 0.5, 10) != moodScore(3, 0.5, 8) {
		t.Error("sleep beyond 8h should not raise the score")
	}
	// Mood dominates the blend.
	low := moodScore(1, 1, 8)
	high := moodScore(5, 0, 0)
	if high <= low {
		t.Errorf("mood should dominate: high=%v low=%v", high, low)
	}
}

func TestAverageMoodPrecedence(t *testing.T) {
	three := 3
	five := 5
	moods := []*types.Mood{{Value: 4}, {Value: 2}}
	entries := []*types.JournalEntry{{MoodValue: &five}}

	if got := averageMood(moods, entries); got != 3 {
		t.Errorf("tracker entries should win: got %v", got)
	}
	if got := averageMood(nil, entries); got != 5 {
		t.Errorf("journal moods are the second choice: got %v", got)
	}
	if got := averageMood(nil, []*types.JournalEntry{{MoodValue: &three}, {}}); got != 3 {
		t.Errorf("unrated entries should be skipped: got %v", got)
	}
	if got := averageMood(nil, nil); got != defaultAverageMood {
		t.Errorf("no data should default to %v, got %v", defaultAverageMood, got)
	}
}

func TestCompletionRate(t *testing.T) {
	tasks := []*types.Task{
		{Status: types.TaskStatusCompleted},
		{Status: types.TaskStatusPending},
		{Status: types.TaskStatusCompleted},
		{Status: types.TaskStatusPending},
	}
	rate, total := completionRate(tasks, nil)
	if rate != 0.5 || total != 4 {
		t.Errorf("got rate=%v total=%d, want 0.5 and 4", rate, total)
	}

	// Journal counters cover users who only track inline tasks.
	entries := []*types.JournalEntry{
		{TaskTotal: 3, TaskCompleted: 3},
		{TaskTotal: 1, TaskCompleted: 0},
	}
	rate, total = completionRate(nil, entries)
	if rate != 0.75 || total != 4 {
		t.Errorf("got rate=%v total=%d, want 0.75 and 4", rate, total)
	}

	rate, total = completionRate(nil, nil)
	if rate != 0 || total != 0 {
		t.Errorf("no data should be zero, got rate=%v total=%d", rate, total)
	}
}

func TestAverageSleep(t *testing.T) {
	entries := []*types.JournalEntry{
		{SleepHours: 6},
		{SleepHours: 8},
		{SleepHours: 0}, // unrecorded, skipped
	}
	if got := averageSleep(entries); got != 7 {
		t.Errorf("got %v, want 7", got)
	}
	if got := averageSleep(nil); got != defaultAverageSleep {
		t.Errorf("no entries should default to %v, got %v", defaultAverageSleep, got)
	}
}

func TestDetectTriggers(t *testing.T) {
	tests := []struct {
		name       string
		taskTotal  int
		rate       float64
		sleep      float64
		wantLabels []string
	}{
		{"calm week", 3, 0.8, 7.5, nil},
		{"heavy workload", 36, 0.8, 7.5, []string{"High Workload"}},
		{"five per day is still fine", 35, 0.8, 7.5, nil},
		{"short sleep", 3, 0.8, 6.5, []string{"Lack of Sleep"}},
		{"low completion", 5, 0.4, 7.5, []string{"Low Task Completion"}},
		{"half done is fine", 5, 0.5, 7.5, nil},
		{"no tasks means no completion trigger", 0, 0, 7.5, nil},
		{"everything at once", 40, 0.1, 4, []string{"High Workload", "Lack of Sleep", "Low Task Completion"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			triggers := detectTriggers(tt.taskTotal, tt.rate, tt.sleep)
			if len(triggers) != len(tt.wantLabels) {
				t.Fatalf("got %d triggers %v, want %d", len(triggers), triggers, len(tt.wantLabels))
			}
			for i, want := range tt.wantLabels {
				if triggers[i].Label != want {
					t.Errorf("trigger[%d] = %q, want %q", i, triggers[i].Label, want)
				}
			}
		})
	}
}

func TestDailyMoodChart(t *testing.T) {
	day := func(offset int, value int) *types.Mood {
		return &types.Mood{
			Value: value,
			Date:  time.Date(2026, 8, 1+offset, 12, 0, 0, 0, time.UTC),
		}
	}
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 7, 0, 0, 0, 0, time.UTC)

	points := dailyMoodChart([]*types.Mood{day(0, 2), day(0, 4), day(2, 5)}, start, end)
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d: %v", len(points), points)
	}
	if points[0].Date != "2026-08-01" || points[0].Value != 3 {
		t.Errorf("same-day entries should average: %+v", points[0])
	}
	if points[1].Date != "2026-08-03" || points[1].Value != 5 {
		t.Errorf("got %+v", points[1])
	}
}
