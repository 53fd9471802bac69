// Package ia pilote l'assistant d'étude via un endpoint de complétion
// compatible OpenAI (Gemini par défaut). Chaque opération construit un
// prompt depuis un template embarqué et envoie une seule requête.
package ia

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// maxTranscriptBytes : taille maximale du transcript injecté dans un prompt.
const maxTranscriptBytes = 400_000

var (
	// ErrNoAPIKey : aucune clé d'API fournie, l'assistant est indisponible.
	ErrNoAPIKey = errors.New("aucune clé d'API configurée")

	// ErrPromptTooLong : le transcript dépasse le seuil autorisé.
	ErrPromptTooLong = errors.New("prompt dépasse le seuil autorisé")

	// ErrEmptyResponse : le modèle n'a retourné aucun choix.
	ErrEmptyResponse = errors.New("réponse vide du modèle")
)

// Client enveloppe l'API de chat completion.
type Client struct {
	api   *openai.Client
	model string
}

// NewClient construit un client pour un endpoint compatible OpenAI.
// Une clé vide retourne ErrNoAPIKey : l'appelant décide si c'est bloquant.
func NewClient(apiKey, baseURL, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrNoAPIKey
	}
	cfg := openai.DefaultConfig(apiKey)
	if strings.TrimSpace(baseURL) != "" {
		cfg.BaseURL = baseURL
	}
	return &Client{
		api:   openai.NewClientWithConfig(cfg),
		model: model,
	}, nil
}

// complete envoie les messages et retourne le texte du premier choix.
func (c *Client) complete(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion : %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}

// checkTranscript borne la taille du transcript avant de construire le prompt.
func checkTranscript(transcript string) error {
	if len(transcript) > maxTranscriptBytes {
		return fmt.Errorf("%w: taille %d > %d", ErrPromptTooLong, len(transcript), maxTranscriptBytes)
	}
	return nil
}
