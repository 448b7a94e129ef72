package schemas

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Normalization of raw model output: strip markdown artifacts, parse the JSON
// the prompt asked for, validate it against the endpoint schema and fall back
// to a deterministic canned payload when the model did not cooperate.
// Normalize* functions never return an error: parse failures are recovered
// locally, the bool result reports whether the fallback path was taken.

// StripCodeFences убирает маркеры ```json / ``` и окружающие пробелы.
func StripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// extractSpan вырезает подстроку от первого open до последнего close.
func extractSpan(s string, open, close byte) (string, bool) {
	start := strings.IndexByte(s, open)
	end := strings.LastIndexByte(s, close)
	if start == -1 || end == -1 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}

// decodePayload разбирает сырой текст модели в out по схеме.
// Порядок попыток: очистка от код-фенсов -> прямой парсинг -> повторный
// парсинг по срезу {...} -> ошибка (вызывающий уходит на fallback).
func decodePayload(raw string, schema Schema, out interface{}) error {
	cleaned := StripCodeFences(raw)

	if err := parseAndValidate(cleaned, schema, out); err == nil {
		return nil
	}

	span, ok := extractSpan(cleaned, '{', '}')
	if !ok {
		return fmt.Errorf("no JSON object found in model output")
	}
	return parseAndValidate(span, schema, out)
}

func parseAndValidate(text string, schema Schema, out interface{}) error {
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(text), &data); err != nil {
		return fmt.Errorf("failed to parse model output: %w", err)
	}
	if err := schema.Validate(data); err != nil {
		return fmt.Errorf("model output failed schema validation: %w", err)
	}
	// Текст уже прошел парсинг и валидацию, повторный Unmarshal не упадет.
	return json.Unmarshal([]byte(text), out)
}

// NormalizeNiches превращает сырой ответ модели в NichePayload.
// answerText нужен fallback-пути для подбора заготовок по ключевым словам.
func NormalizeNiches(raw, answerText string) (*NichePayload, bool) {
	var payload NichePayload
	if err := decodePayload(raw, NicheSchema, &payload); err != nil {
		fallback := FallbackNiches(answerText)
		return fallback, true
	}
	return &payload, false
}

// NormalizeIdeas превращает сырой ответ модели в IdeaPayload.
func NormalizeIdeas(raw, answerText string) (*IdeaPayload, bool) {
	var payload IdeaPayload
	if err := decodePayload(raw, IdeaSchema, &payload); err != nil {
		fallback := FallbackIdeas(answerText)
		return fallback, true
	}
	return &payload, false
}

// NormalizeGeneratedPrompt превращает сырой ответ модели в PromptPayload.
func NormalizeGeneratedPrompt(raw, originalInput, purpose string) (*PromptPayload, bool) {
	var payload PromptPayload
	if err := decodePayload(raw, PromptSchema, &payload); err != nil {
		fallback := FallbackGeneratedPrompt(originalInput, purpose)
		return fallback, true
	}
	return &payload, false
}
