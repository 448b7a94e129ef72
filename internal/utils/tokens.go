package utils

import (
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// EstimateTokens оценивает количество токенов в тексте через tiktoken
// (кодировка cl100k_base). Если словарь недоступен, используется грубая
// оценка по словам, чтобы вызывающему не приходилось обрабатывать ошибку.
func EstimateTokens(text string) int {
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return len(strings.Fields(text)) * 4 / 3
	}
	return len(enc.Encode(text, nil, nil))
}
