package schemas

import (
	"fmt"
	"strings"
)

// Схема результата описана явным объектом, а не только прозой в промпте.
// Один и тот же Schema рендерит JSON-блок с форматом ответа для компилятора
// промптов и валидирует разобранный ответ модели, так что промпт и проверка
// не могут разъехаться.

// FieldKind - тип значения поля в схеме ответа.
type FieldKind int

const (
	KindString FieldKind = iota
	KindInt
	KindBool
	KindStringArray
	KindObject
	KindObjectArray
)

// Field описывает одно поле ожидаемого JSON-ответа.
type Field struct {
	Name     string
	Kind     FieldKind
	Enum     []string // допустимые значения, рендерятся как "High/Medium/Low"
	Hint     string   // текст-подсказка, рендерится вместо значения
	Fields   []Field  // вложенные поля для KindObject / KindObjectArray
	Optional bool     // поле не обязательно в ответе модели
}

// Schema - полная схема полезной нагрузки одного эндпоинта.
type Schema struct {
	Fields []Field
}

// RenderExample рендерит JSON-блок, который встраивается в текст промпта
// как описание требуемого формата ответа.
func (s Schema) RenderExample() string {
	var b strings.Builder
	renderFields(&b, s.Fields, 0)
	return b.String()
}

func renderFields(b *strings.Builder, fields []Field, depth int) {
	indent := strings.Repeat("  ", depth)
	inner := strings.Repeat("  ", depth+1)
	b.WriteString("{\n")
	for i, f := range fields {
		b.WriteString(inner)
		b.WriteString(fmt.Sprintf("%q: ", f.Name))
		renderValue(b, f, depth+1)
		if i < len(fields)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(indent)
	b.WriteString("}")
}

func renderValue(b *strings.Builder, f Field, depth int) {
	switch f.Kind {
	case KindString:
		if len(f.Enum) > 0 {
			b.WriteString(fmt.Sprintf("%q", strings.Join(f.Enum, "/")))
		} else {
			b.WriteString(fmt.Sprintf("%q", f.Hint))
		}
	case KindInt:
		if f.Hint == "" {
			b.WriteString("0")
		} else {
			b.WriteString(f.Hint)
		}
	case KindBool:
		b.WriteString("true")
	case KindStringArray:
		b.WriteString(fmt.Sprintf("[%q]", f.Hint))
	case KindObject:
		renderFields(b, f.Fields, depth)
	case KindObjectArray:
		b.WriteString("[\n")
		b.WriteString(strings.Repeat("  ", depth+1))
		renderFields(b, f.Fields, depth+1)
		b.WriteString("\n")
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString("]")
	}
}

// Validate проверяет разобранный ответ модели по схеме: обязательные ключи
// верхнего уровня, контейнерные типы и обязательные массивы внутри элементов.
// Валидный JSON без нужного ключа (например, без массива ideas) считается
// браком и уводит вызывающего на fallback-путь.
func (s Schema) Validate(data map[string]interface{}) error {
	return validateFields(data, s.Fields, "")
}

func validateFields(data map[string]interface{}, fields []Field, path string) error {
	for _, f := range fields {
		value, ok := data[f.Name]
		if !ok || value == nil {
			if f.Optional {
				continue
			}
			return fmt.Errorf("missing required field %q", path+f.Name)
		}
		switch f.Kind {
		case KindStringArray, KindObjectArray:
			items, ok := value.([]interface{})
			if !ok {
				return fmt.Errorf("field %q is not an array", path+f.Name)
			}
			if f.Kind == KindObjectArray {
				for i, item := range items {
					obj, ok := item.(map[string]interface{})
					if !ok {
						return fmt.Errorf("element %d of %q is not an object", i, path+f.Name)
					}
					elemPath := fmt.Sprintf("%s%s[%d].", path, f.Name, i)
					if err := validateFields(obj, f.Fields, elemPath); err != nil {
						return err
					}
				}
			}
		case KindObject:
			obj, ok := value.(map[string]interface{})
			if !ok {
				return fmt.Errorf("field %q is not an object", path+f.Name)
			}
			if err := validateFields(obj, f.Fields, path+f.Name+"."); err != nil {
				return err
			}
		}
		// Скалярные поля проверяем только на присутствие: модель нередко
		// возвращает число строкой, клиент это переживает.
	}
	return nil
}

// NicheSchema - схема ответа эндпоинта подбора ниш.
var NicheSchema = Schema{Fields: []Field{
	{Name: "niches", Kind: KindObjectArray, Fields: []Field{
		{Name: "name", Kind: KindString, Hint: "Niche Name"},
		{Name: "reason", Kind: KindString, Hint: "Detailed explanation why this fits their answers and works for faceless content"},
		{Name: "contentIdeas", Kind: KindStringArray, Hint: "3 concrete video ideas"},
		{Name: "monetizationPotential", Kind: KindString, Enum: []string{"High", "Medium", "Low"}},
		{Name: "competitionLevel", Kind: KindString, Enum: []string{"High", "Medium", "Low"}},
		{Name: "trends", Kind: KindStringArray, Hint: "array of trends"},
		{Name: "audience", Kind: KindStringArray, Hint: "array of audience"},
		{Name: "ideas", Kind: KindStringArray, Hint: "array of ideas"},
	}},
}}

// IdeaSchema - схема ответа эндпоинта генерации идей контента.
// recommendedNiches и contentStrategy модель присылает не всегда.
var IdeaSchema = Schema{Fields: []Field{
	{Name: "ideas", Kind: KindObjectArray, Fields: []Field{
		{Name: "title", Kind: KindString, Hint: "Video title here"},
		{Name: "description", Kind: KindString, Hint: "Brief description"},
		{Name: "niche", Kind: KindString, Hint: "Niche category"},
		{Name: "format", Kind: KindString, Enum: []string{"Tutorial", "Explainer", "List"}},
		{Name: "targetAudience", Kind: KindStringArray, Hint: "Audience 1"},
		{Name: "productionDifficulty", Kind: KindString, Enum: []string{"Easy", "Medium", "Hard"}},
		{Name: "monetizationStrategies", Kind: KindStringArray, Hint: "Adsense"},
	}},
	{Name: "recommendedNiches", Kind: KindObjectArray, Optional: true, Fields: []Field{
		{Name: "name", Kind: KindString, Hint: "Niche name"},
		{Name: "reason", Kind: KindString, Hint: "Why this niche fits"},
		{Name: "growthPotential", Kind: KindString, Enum: []string{"High", "Medium", "Low"}},
		{Name: "competitionLevel", Kind: KindString, Enum: []string{"High", "Medium", "Low"}},
	}},
	{Name: "contentStrategy", Kind: KindObject, Optional: true, Fields: []Field{
		{Name: "topNiches", Kind: KindStringArray, Optional: true, Hint: "Top niche"},
		{Name: "contentPillars", Kind: KindStringArray, Optional: true, Hint: "Educational"},
		{Name: "postingFrequency", Kind: KindString, Optional: true, Hint: "1-2 times per week"},
	}},
}}

// PromptSchema - схема ответа эндпоинта prompt engineering.
var PromptSchema = Schema{Fields: []Field{
	{Name: "category", Kind: KindString, Hint: "video"},
	{Name: "originalInput", Kind: KindString, Hint: "User's original input"},
	{Name: "generatedPrompt", Kind: KindObject, Fields: []Field{
		{Name: "type", Kind: KindString, Hint: "Prompt Type"},
		{Name: "prompt", Kind: KindString, Hint: "Full detailed prompt text here..."},
		{Name: "useCase", Kind: KindString, Hint: "When to use this prompt"},
		{Name: "strengths", Kind: KindStringArray, Hint: "Strength 1"},
		{Name: "estimatedTokens", Kind: KindInt, Hint: "150"},
		{Name: "modelOptimized", Kind: KindBool},
	}},
}}
