package services

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/udaan-app/udaan-backend/internal/types"
)

func TestRuleBasedReply(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		wantMood string
		wantPart string
	}{
		{"journal intent", "should I write in my journal?", MoodTagCalm, "journal"},
		{"anxiety gets grounding", "I'm so stressed about exams", MoodTagAnxious, "breathe"},
		{"salary negotiation", "how do I ask for a raise", MoodTagMotivated, "number"},
		{"focus trouble", "I keep getting distracted", MoodTagNeutral, "timer"},
		{"good news", "I got the job!!", MoodTagHappy, "congratulations"},
		{"low mood", "feeling really sad today", MoodTagSad, "sorry"},
		{"burnout", "I am completely burned out", MoodTagBurntOut, "rest"},
		{"default reflection", "the weather is weird", MoodTagNeutral, "small step"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := ruleBasedReply("", tt.message)
			if reply.Mood != tt.wantMood {
				t.Errorf("mood = %q, want %q", reply.Mood, tt.wantMood)
			}
			if !strings.Contains(strings.ToLower(reply.Response), tt.wantPart) {
				t.Errorf("response %q should mention %q", reply.Response, tt.wantPart)
			}
		})
	}
}

func TestRuleBasedReplyGreetingWordBoundaries(t *testing.T) {
	tests := []struct {
		name      string
		message   string
		wantGreet bool
	}{
		{"bare hi", "hi", true},
		{"hey with text", "hey, got a minute?", true},
		{"hello mid sentence", "oh hello again", true},
		{"they is not hey", "can they really do that", false},
		{"this is not hi", "this keeps happening", false},
		{"whey is not hey", "is whey protein worth it", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := ruleBasedReply("", tt.message)
			got := reply.Summary == "Greeting"
			if got != tt.wantGreet {
				t.Errorf("greeting = %v for %q, want %v (reply %q)", got, tt.message, tt.wantGreet, reply.Response)
			}
		})
	}
}

func TestRuleBasedReplyGreetingUsesName(t *testing.T) {
	named := ruleBasedReply("Priya", "hello there")
	if !strings.Contains(named.Response, "Priya") {
		t.Errorf("greeting should use the first name: %q", named.Response)
	}
	anon := ruleBasedReply("", "hello there")
	if strings.Contains(anon.Response, "Priya") {
		t.Errorf("anonymous greeting leaked a name: %q", anon.Response)
	}
}

func TestChatCacheKey(t *testing.T) {
	userID := uuid.New()
	user := &types.User{ID: userID, Name: "Priya Sharma"}

	// Same text modulo whitespace and case must collide.
	a := chatCacheKey(user, "  How ARE   you? ")
	b := chatCacheKey(user, "how are you?")
	if a != b {
		t.Errorf("normalized texts should share a key: %q vs %q", a, b)
	}

	// Different users never share entries.
	other := &types.User{ID: uuid.New()}
	if chatCacheKey(user, "hi") == chatCacheKey(other, "hi") {
		t.Error("keys must be user-scoped")
	}
	if chatCacheKey(nil, "hi") == chatCacheKey(user, "hi") {
		t.Error("anonymous keys must not collide with user keys")
	}
}

func TestUserFirstName(t *testing.T) {
	tests := []struct {
		name string
		user *types.User
		want string
	}{
		{"nil user", nil, ""},
		{"empty name", &types.User{}, ""},
		{"single name", &types.User{Name: "Priya"}, "Priya"},
		{"full name", &types.User{Name: "Priya Sharma"}, "Priya"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := userFirstName(tt.user); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestChatMoodValuesStayOnScale(t *testing.T) {
	for tag, value := range chatMoodValues {
		if value < 1 || value > 5 {
			t.Errorf("mood %q maps to %d, outside the 1-5 scale", tag, value)
		}
	}
}
