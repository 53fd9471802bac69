package ia

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

// chatHistoryWindow : nombre d'échanges passés réinjectés dans la conversation.
const chatHistoryWindow = 5

// Exchange est un tour de conversation déjà joué.
type Exchange struct {
	Question string
	Answer   string
}

// generate rend le template nommé avec le transcript et envoie un seul message.
func (c *Client) generate(ctx context.Context, tmplName, transcript string) (string, error) {
	if err := checkTranscript(transcript); err != nil {
		return "", err
	}
	prompt, err := renderPrompt(tmplName, promptData{Transcript: transcript})
	if err != nil {
		return "", err
	}
	return c.complete(ctx, []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleUser, Content: prompt},
	})
}

// Summary produit un résumé structuré du transcript.
func (c *Client) Summary(ctx context.Context, transcript string) (string, error) {
	return c.generate(ctx, "summary", transcript)
}

// KeyQuotes extrait les citations les plus marquantes.
func (c *Client) KeyQuotes(ctx context.Context, transcript string) (string, error) {
	return c.generate(ctx, "quotes", transcript)
}

// StudyGuide construit un guide d'étude complet.
func (c *Client) StudyGuide(ctx context.Context, transcript string) (string, error) {
	return c.generate(ctx, "study_guide", transcript)
}

// QuestionsAnswers génère une session de questions/réponses.
func (c *Client) QuestionsAnswers(ctx context.Context, transcript string) (string, error) {
	return c.generate(ctx, "qa", transcript)
}

// Flashcards produit des cartes mémoire recto/verso.
func (c *Client) Flashcards(ctx context.Context, transcript string) (string, error) {
	return c.generate(ctx, "flashcards", transcript)
}

// Insights dégage les enseignements clés du transcript.
func (c *Client) Insights(ctx context.Context, transcript string) (string, error) {
	return c.generate(ctx, "insights", transcript)
}

// Chat répond à une question sur le transcript. Les derniers échanges sont
// rejoués comme messages user/assistant pour garder le fil de la conversation.
func (c *Client) Chat(ctx context.Context, transcript, question string, history []Exchange) (string, error) {
	if err := checkTranscript(transcript); err != nil {
		return "", err
	}
	prompt, err := renderPrompt("chat", promptData{Transcript: transcript, Question: question})
	if err != nil {
		return "", err
	}

	// fenêtre glissante sur l'historique
	if len(history) > chatHistoryWindow {
		history = history[len(history)-chatHistoryWindow:]
	}

	msgs := make([]openai.ChatCompletionMessage, 0, len(history)*2+1)
	for _, ex := range history {
		msgs = append(msgs,
			openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: ex.Question},
			openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: ex.Answer},
		)
	}
	msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: prompt})

	return c.complete(ctx, msgs)
}
