// Package turn implements the turn generator function: it builds a
// system+user prompt pair from show state and delegates generation to the
// chat-completion API.
package turn

import (
	"fmt"
	"strings"
)

// historyWindow is how many trailing history entries make it into the prompt.
const historyWindow = 6

const (
	defaultTone        = "casual"
	defaultPersonality = "thoughtful and engaging"
)

// toneDescriptions maps a tone name to the speaking-style phrase injected
// into the system prompt. Unknown tones fall back to casual.
var toneDescriptions = map[string]string{
	"casual":    "relaxed and conversational, like riffing with a friend",
	"technical": "precise and detail-oriented, comfortable going deep",
	"hardcore":  "intense and opinionated, no hedging and no hand-holding",
	"interview": "curious and probing, always digging for the real story",
}

// Host describes one of the show's simulated participants.
type Host struct {
	Name        string `json:"name" validate:"required"`
	Role        string `json:"role" validate:"required"`
	Personality string `json:"personality"`
}

// Options tune how the next turn is generated.
type Options struct {
	Tone            string `json:"tone"`
	IncludeExamples bool   `json:"includeExamples"`
	RAGContext      string `json:"ragContext"`
}

// Request is the inbound show state for one generated turn.
type Request struct {
	CurrentHost         Host     `json:"currentHost"`
	OtherHost           Host     `json:"otherHost"`
	Topic               string   `json:"topic" validate:"required"`
	ConversationHistory []string `json:"conversationHistory"`
	Options             Options  `json:"options"`
}

// Response carries the generated utterance.
type Response struct {
	Text string `json:"text"`
}

func toneDescription(tone string) string {
	if desc, ok := toneDescriptions[tone]; ok {
		return desc
	}
	return toneDescriptions[defaultTone]
}

// recentHistory returns the last historyWindow entries joined by newlines,
// oldest first.
func recentHistory(history []string) string {
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	return strings.Join(history, "\n")
}

// BuildSystemPrompt renders the speaker's identity, personality, tone, and
// the response instructions.
func (r *Request) BuildSystemPrompt() string {
	personality := r.CurrentHost.Personality
	if personality == "" {
		personality = defaultPersonality
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are %s, %s on a two-host audio show.\n", r.CurrentHost.Name, r.CurrentHost.Role)
	fmt.Fprintf(&b, "Your personality: %s.\n", personality)
	fmt.Fprintf(&b, "Your speaking style is %s.\n", toneDescription(r.Options.Tone))
	b.WriteString("Respond in 2-3 sentences, building on what was just said.")

	if r.Options.IncludeExamples {
		b.WriteString("\nInclude a concrete example to illustrate your point.")
	}
	if r.Options.RAGContext != "" {
		fmt.Fprintf(&b, "\n\nReference material:\n%s", r.Options.RAGContext)
	}

	return b.String()
}

// BuildUserPrompt renders the recent history, the other host's introduction,
// and the continuation question.
func (r *Request) BuildUserPrompt() string {
	var b strings.Builder
	if history := recentHistory(r.ConversationHistory); history != "" {
		b.WriteString(history)
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "Your co-host is %s, %s.\n", r.OtherHost.Name, r.OtherHost.Role)
	fmt.Fprintf(&b, "What do you say next to keep the conversation about %s going?", r.Topic)
	return b.String()
}
