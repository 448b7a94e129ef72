package schemas

import (
	"regexp"
	"strings"
)

// Пересказ фильма - единственный текстовый (не-JSON) результат модели.
// Модель просят начинать каждую строку с таймкода вида [MM:SS–MM:SS];
// формат не исправляется, но расхождения подсчитываются для наблюдаемости.

// timestampLineRe - строка сегмента: "[00:00–02:30] описание..."
// Допускаем и en dash, и обычный дефис: модели их путают.
var timestampLineRe = regexp.MustCompile(`^\[\d{2}:\d{2}[–-]\d{2}:\d{2}\]\s*\S`)

// CleanRecap убирает код-фенсы и окружающие пробелы из текста пересказа.
func CleanRecap(raw string) string {
	return StripCodeFences(raw)
}

// CountMalformedSegments возвращает число непустых строк пересказа,
// не начинающихся с корректного таймкода. Текст не модифицируется.
func CountMalformedSegments(recap string) int {
	malformed := 0
	for _, line := range strings.Split(recap, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !timestampLineRe.MatchString(line) {
			malformed++
		}
	}
	return malformed
}
