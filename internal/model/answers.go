package model

import "strings"

// QA представляет одну пару вопрос/ответ из анкеты пользователя.
// Question может быть пустым, если клиент прислал просто список ответов.
type QA struct {
	Question string
	Answer   string
}

// AnswerText склеивает все ответы в одну строку для поиска ключевых слов.
func AnswerText(answers []QA) string {
	parts := make([]string, 0, len(answers))
	for _, qa := range answers {
		parts = append(parts, qa.Answer)
	}
	return strings.Join(parts, " ")
}
