package services

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/udaan-app/udaan-backend/internal/logger"
	"github.com/udaan-app/udaan-backend/internal/repos"
	"github.com/udaan-app/udaan-backend/internal/types"
)

const chatSystemPrompt = `You are Udaan, a warm and practical wellness companion for students and early professionals. You listen, reflect feelings back, and offer one small actionable next step. Keep replies to 2-4 sentences, never lecture.

Return ONLY a JSON object with exactly these keys:
- "response": your reply to the user
- "mood": your read of the user's current mood as a short tag, e.g. "😟 Anxious" or "😊 Happy"
- "summary": one short line summarizing the exchange for a dashboard
No markdown, no code fences, no text outside the JSON.`

// chatHistoryWindow bounds how much of the stored thread is replayed to the
// model on each turn.
const chatHistoryWindow = 20

// greetingRe matches greeting words on word boundaries only, so "they" or
// "this" never reads as a greeting.
var greetingRe = regexp.MustCompile(`\b(hello|hi|hey)\b`)

// chatMoodValues maps a mood tag onto the 1-5 tracker scale so chat exchanges
// show up in mood history alongside explicit check-ins.
var chatMoodValues = map[string]int{
	MoodTagHappy:     5,
	MoodTagMotivated: 5,
	MoodTagCalm:      4,
	MoodTagHopeful:   4,
	MoodTagNeutral:   3,
	MoodTagUnsure:    3,
	MoodTagAnxious:   2,
	MoodTagSad:       2,
	MoodTagBurntOut:  1,
}

type ChatReply struct {
	Response string `json:"response"`
	Mood     string `json:"mood,omitempty"`
	Summary  string `json:"summary,omitempty"`
}

type ChatService interface {
	// Respond produces a reply for message, maintains the user's stored
	// conversation thread, and records the inferred mood. user may be nil
	// for anonymous callers; those get a reply but nothing is persisted.
	Respond(ctx context.Context, user *types.User, message string) (*ChatReply, error)
}

type chatService struct {
	log              *logger.Logger
	ai               OpenAIClient // nil when no API key is configured
	cache            *TTLCache
	conversationRepo repos.ConversationRepo
	moodRepo         repos.MoodRepo
	model            string
}

func NewChatService(
	baseLog *logger.Logger,
	ai OpenAIClient,
	cache *TTLCache,
	conversationRepo repos.ConversationRepo,
	moodRepo repos.MoodRepo,
	model string,
) ChatService {
	return &chatService{
		log:              baseLog.With("service", "ChatService"),
		ai:               ai,
		cache:            cache,
		conversationRepo: conversationRepo,
		moodRepo:         moodRepo,
		model:            model,
	}
}

func chatCacheKey(user *types.User, text string) string {
	id := "anon"
	if user != nil {
		id = user.ID.String()
	}
	normalized := strings.ToLower(strings.Join(strings.Fields(text), " "))
	return "u:" + id + "|t:" + normalized
}

func (s *chatService) Respond(ctx context.Context, user *types.User, message string) (*ChatReply, error) {
	text := strings.TrimSpace(message)
	if text == "" {
		return &ChatReply{Response: "I'm here whenever you want to talk. What's on your mind?", Mood: MoodTagNeutral}, nil
	}

	history, conversation := s.loadHistory(ctx, user)

	key := chatCacheKey(user, text)
	var reply ChatReply
	if !s.cache.Get(key, &reply) {
		computed := s.computeReply(ctx, user, history, text)
		reply = *computed
		s.cache.Set(key, computed)
	}

	s.persistExchange(ctx, user, conversation, history, text, &reply)
	return &reply, nil
}

// computeReply tries the model first and falls back to the rule responder on
// any failure, including an unparseable or reply-less payload.
func (s *chatService) computeReply(ctx context.Context, user *types.User, history []types.ChatMessage, text string) *ChatReply {
	if s.ai == nil {
		return ruleBasedReply(userFirstName(user), text)
	}

	turns := make([]ChatTurn, 0, chatHistoryWindow+1)
	start := len(history) - chatHistoryWindow
	if start < 0 {
		start = 0
	}
	for _, m := range history[start:] {
		role := m.Role
		if role != "assistant" {
			role = "user"
		}
		turns = append(turns, ChatTurn{Role: role, Content: m.Text})
	}
	turns = append(turns, ChatTurn{Role: "user", Content: text})

	raw, err := s.ai.ChatComplete(ctx, chatSystemPrompt, turns,
		ChatOptions{Model: s.model, Temperature: 0.7, MaxTokens: 600})
	if err != nil {
		s.log.Warn("Chat completion failed, using rule-based reply", "error", err)
		return ruleBasedReply(userFirstName(user), text)
	}

	parsed := TryParseJSON(raw)
	if parsed == nil {
		// Unstructured but non-empty output is still a usable reply.
		if raw != "" {
			return &ChatReply{Response: raw, Mood: MoodTagNeutral}
		}
		return ruleBasedReply(userFirstName(user), text)
	}

	reply := &ChatReply{
		Response: firstString(parsed, "response", "reply", "message"),
		Mood:     firstString(parsed, "mood"),
		Summary:  firstString(parsed, "summary"),
	}
	if reply.Response == "" {
		return ruleBasedReply(userFirstName(user), text)
	}
	if reply.Mood == "" {
		reply.Mood = MoodTagNeutral
	}
	return reply
}

func (s *chatService) loadHistory(ctx context.Context, user *types.User) ([]types.ChatMessage, *types.Conversation) {
	if user == nil {
		return nil, nil
	}
	conversation, err := s.conversationRepo.GetByUser(ctx, nil, user.ID)
	if err != nil {
		s.log.Warn("Failed to load conversation, continuing without history", "error", err)
		return nil, nil
	}
	if conversation == nil {
		return nil, &types.Conversation{UserID: user.ID}
	}
	var history []types.ChatMessage
	if len(conversation.Messages) > 0 {
		if err := json.Unmarshal(conversation.Messages, &history); err != nil {
			s.log.Warn("Stored conversation is malformed, starting fresh", "error", err)
			history = nil
		}
	}
	return history, conversation
}

// persistExchange appends both turns to the thread and logs the inferred mood.
// Best-effort: the reply has already been computed and is returned regardless.
func (s *chatService) persistExchange(ctx context.Context, user *types.User, conversation *types.Conversation, history []types.ChatMessage, text string, reply *ChatReply) {
	if user == nil || conversation == nil {
		return
	}

	now := time.Now().UTC()
	history = append(history,
		types.ChatMessage{Role: "user", Text: text, Date: now},
		types.ChatMessage{Role: "assistant", Text: reply.Response, Date: now, Mood: reply.Mood},
	)
	encoded, err := json.Marshal(history)
	if err != nil {
		s.log.Warn("Failed to serialize conversation", "error", err)
		return
	}
	conversation.Messages = datatypes.JSON(encoded)
	if _, err := s.conversationRepo.Save(ctx, nil, conversation); err != nil {
		s.log.Warn("Failed to save conversation", "error", err)
	}

	if value, ok := chatMoodValues[reply.Mood]; ok {
		mood := &types.Mood{
			UserID: user.ID,
			Value:  value,
			Note:   reply.Summary,
			Source: types.MoodSourceChat,
			Date:   now,
		}
		if _, err := s.moodRepo.Create(ctx, nil, []*types.Mood{mood}); err != nil {
			s.log.Warn("Failed to record chat mood", "error", err)
		}
	}
}

func userFirstName(user *types.User) string {
	if user == nil {
		return ""
	}
	fields := strings.Fields(user.Name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// ruleBasedReply is the offline responder. Rules are checked top-down and the
// first match wins, so more specific intents sit above the generic mood ones.
func ruleBasedReply(name, text string) *ChatReply {
	lower := strings.ToLower(text)

	switch {
	case strings.Contains(lower, "journal"):
		return &ChatReply{
			Response: "Writing things down is a great instinct. Try opening your journal and finishing this sentence: \"Right now I feel... because...\". Even two lines count.",
			Mood:     MoodTagCalm,
			Summary:  "Encouraged journaling",
		}
	case containsAny(lower, []string{"anxious", "anxiety", "stressed", "worried", "panic", "overwhelmed"}):
		return &ChatReply{
			Response: "That sounds heavy. Let's slow it down: breathe in for 4 counts, hold for 4, out for 6, and repeat three times. Then name one thing that is within your control today.",
			Mood:     MoodTagAnxious,
			Summary:  "Offered a grounding exercise",
		}
	case containsAny(lower, []string{"raise", "salary", "negotiat"}):
		return &ChatReply{
			Response: "Asking for more is uncomfortable but normal. Write down three concrete things you delivered recently, pick a specific number, and practice saying it out loud once before the conversation.",
			Mood:     MoodTagMotivated,
			Summary:  "Shared negotiation prep steps",
		}
	case containsAny(lower, []string{"focus", "distract", "procrastinat"}):
		return &ChatReply{
			Response: "Focus is easier with a smaller target. Pick the single next task, set a 25 minute timer, and put your phone in another room until it rings.",
			Mood:     MoodTagNeutral,
			Summary:  "Suggested a focus sprint",
		}
	case containsAny(lower, []string{"happy", "excited", "great news", "got the job", "promoted"}):
		return &ChatReply{
			Response: "That's wonderful, congratulations! Take a moment to actually savor it. What do you think made it happen?",
			Mood:     MoodTagHappy,
			Summary:  "Celebrated a win",
		}
	case containsAny(lower, []string{"sad", "down", "lonely", "cry"}):
		return &ChatReply{
			Response: "I'm sorry it feels like that right now. You don't have to fix it today. Would reaching out to one person you trust, even with a short message, feel doable?",
			Mood:     MoodTagSad,
			Summary:  "Acknowledged low mood",
		}
	case containsAny(lower, []string{"burnt out", "burned out", "burnout", "exhausted"}):
		return &ChatReply{
			Response: "Burnout is a signal, not a weakness. Look at your next three days and cancel or shrink one commitment. Rest is part of the work.",
			Mood:     MoodTagBurntOut,
			Summary:  "Flagged burnout and suggested cutting load",
		}
	case greetingRe.MatchString(lower):
		greeting := "Hey, good to see you. How are you feeling today?"
		if name != "" {
			greeting = "Hey " + name + ", good to see you. How are you feeling today?"
		}
		return &ChatReply{Response: greeting, Mood: MoodTagNeutral, Summary: "Greeting"}
	default:
		return &ChatReply{
			Response: "Thanks for sharing that. What would feel like a small step forward from here?",
			Mood:     MoodTagNeutral,
			Summary:  "Open reflection",
		}
	}
}
