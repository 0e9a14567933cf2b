package gemini

import (
	"errors"
	"strings"

	"github.com/Cyclone1070/sqlagent/internal/provider/models"
	"google.golang.org/genai"
)

// toGeminiContents converts a prompt and history to Gemini Content format.
func toGeminiContents(prompt string, history []models.Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history)+1)

	for _, msg := range history {
		if content := messageToGeminiContent(msg); content != nil {
			contents = append(contents, content)
		}
	}

	contents = append(contents, genai.NewContentFromText(prompt, genai.RoleUser))

	return contents
}

// messageToGeminiContent converts a single message to Gemini Content format.
func messageToGeminiContent(msg models.Message) *genai.Content {
	if msg.Content == "" {
		return nil
	}

	var role genai.Role = genai.RoleUser
	if msg.Role == models.RoleAssistant {
		role = genai.RoleModel
	}

	return genai.NewContentFromText(msg.Content, role)
}

// toGeminiConfig builds the request config.
func toGeminiConfig(maxOutputTokens int32) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		MaxOutputTokens: maxOutputTokens,
		SafetySettings:  defaultSafetySettings(),
	}
}

// defaultSafetySettings returns safety settings with blocking turned off for all categories.
func defaultSafetySettings() []*genai.SafetySetting {
	return []*genai.SafetySetting{
		{
			Category:  genai.HarmCategoryHateSpeech,
			Threshold: genai.HarmBlockThresholdOff,
		},
		{
			Category:  genai.HarmCategoryDangerousContent,
			Threshold: genai.HarmBlockThresholdOff,
		},
		{
			Category:  genai.HarmCategoryHarassment,
			Threshold: genai.HarmBlockThresholdOff,
		},
		{
			Category:  genai.HarmCategorySexuallyExplicit,
			Threshold: genai.HarmBlockThresholdOff,
		},
	}
}

// fromGeminiResponse extracts the text of the first candidate.
func fromGeminiResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", &models.ProviderError{
			Code:    models.ErrorCodeEmptyResponse,
			Message: "no candidates in response",
		}
	}

	candidate := resp.Candidates[0]

	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", &models.ProviderError{
			Code:    models.ErrorCodeContentBlocked,
			Message: "content blocked by safety filters",
		}
	}

	text := candidateText(candidate)

	if candidate.FinishReason == genai.FinishReasonMaxTokens {
		// Return partial response with error
		return text, &models.ProviderError{
			Code:    models.ErrorCodeContextLength,
			Message: "response truncated due to max tokens",
		}
	}

	if text == "" {
		return "", &models.ProviderError{
			Code:    models.ErrorCodeEmptyResponse,
			Message: "no text in response",
		}
	}

	return text, nil
}

func candidateText(candidate *genai.Candidate) string {
	if candidate.Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		sb.WriteString(part.Text)
	}
	return sb.String()
}

// mapGeminiError maps Gemini API errors to provider errors.
func mapGeminiError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return models.FromStatus(apiErr.Code, apiErr.Message, err)
	}

	// Generic network error
	return &models.ProviderError{
		Code:       models.ErrorCodeNetwork,
		Message:    "network error",
		Underlying: err,
		Retryable:  true,
	}
}
