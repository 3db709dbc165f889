package assistant

import (
	"strings"

	"mindly-be/pkg/llm"
	"mindly-be/pkg/wellness"
)

// ReplyPromptBuilder assembles the system instruction and chat turns for a
// companion reply.
type ReplyPromptBuilder struct {
	message           string
	history           []string
	assessmentContext string
}

func NewReplyPromptBuilder(message string, history []string, assessmentContext string) *ReplyPromptBuilder {
	return &ReplyPromptBuilder{
		message:           message,
		history:           history,
		assessmentContext: assessmentContext,
	}
}

// Build returns the system message, the recent exchanges and the new user message.
func (b *ReplyPromptBuilder) Build() []llm.Message {
	var system strings.Builder
	b.writePersona(&system)
	b.writeGuidelines(&system)
	b.writeAssessmentContext(&system)

	messages := make([]llm.Message, 0, len(b.history)+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: strings.TrimSpace(system.String())})
	messages = append(messages, historyMessages(b.history)...)
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: b.message})
	return messages
}

func (b *ReplyPromptBuilder) writePersona(prompt *strings.Builder) {
	prompt.WriteString("<persona>\n")
	prompt.WriteString("You are Mindly, a supportive and empathetic mental health companion for university students.\n")
	prompt.WriteString("You listen carefully, validate feelings and offer practical, gentle coping ideas.\n")
	prompt.WriteString("</persona>\n\n")
}

func (b *ReplyPromptBuilder) writeGuidelines(prompt *strings.Builder) {
	prompt.WriteString("<guidelines>\n")
	prompt.WriteString("- Respond with care and empathy in a warm, conversational tone\n")
	prompt.WriteString("- Keep replies concise; ask at most one follow-up question\n")
	prompt.WriteString("- Do not diagnose; you are not a replacement for professional help\n")
	prompt.WriteString("- If the student mentions self-harm or being in danger, encourage them to contact local emergency services or a crisis line right away\n")
	prompt.WriteString("</guidelines>\n\n")
}

func (b *ReplyPromptBuilder) writeAssessmentContext(prompt *strings.Builder) {
	if strings.TrimSpace(b.assessmentContext) == "" {
		return
	}
	prompt.WriteString("<assessment_context>\n")
	prompt.WriteString("Latest wellbeing questionnaire: ")
	prompt.WriteString(b.assessmentContext)
	prompt.WriteString("\nUse this only to inform your tone; do not quote scores back unless asked.\n")
	prompt.WriteString("</assessment_context>\n")
}

// historyMessages maps alternating user/bot history entries onto chat roles.
// The last entry is always a bot reply.
func historyMessages(history []string) []llm.Message {
	messages := make([]llm.Message, len(history))
	for i, content := range history {
		role := llm.RoleAssistant
		if (len(history)-1-i)%2 == 1 {
			role = llm.RoleUser
		}
		messages[i] = llm.Message{Role: role, Content: content}
	}
	return messages
}

// BuildMetricsPrompt asks for a strict JSON rating of the student's latest message.
func BuildMetricsPrompt(message string, history []string) []llm.Message {
	var prompt strings.Builder

	prompt.WriteString("<task>\n")
	prompt.WriteString("Rate the student's current wellbeing from their latest message and the recent conversation.\n")
	prompt.WriteString("Each indicator is a number from 0 (none) to 10 (extreme). For motivation, 10 means highly motivated.\n")
	prompt.WriteString("</task>\n\n")

	if len(history) > 0 {
		prompt.WriteString("<recent_conversation>\n")
		for _, m := range historyMessages(history) {
			speaker := "Student"
			if m.Role == llm.RoleAssistant {
				speaker = "Companion"
			}
			prompt.WriteString(speaker + ": " + m.Content + "\n")
		}
		prompt.WriteString("</recent_conversation>\n\n")
	}

	prompt.WriteString("<latest_message>\n")
	prompt.WriteString(message)
	prompt.WriteString("\n</latest_message>\n\n")

	prompt.WriteString("<output_format>\n")
	prompt.WriteString("Reply with only a JSON object with exactly these keys: ")
	prompt.WriteString(strings.Join(wellness.Keys, ", "))
	prompt.WriteString(".\n</output_format>\n")

	return []llm.Message{{Role: llm.RoleUser, Content: prompt.String()}}
}
