package prompts

import (
	"encoding/json"
	"fmt"
	"strings"

	"velia-server/internal/model"
	"velia-server/internal/schemas"
)

// Компилятор промптов: чистые детерминированные функции шаблон -> строка.
// Никаких часов, случайности и внешнего состояния: одинаковый вход всегда
// дает байт-в-байт одинаковый промпт. Блок с форматом ответа рендерится из
// той же схемы, по которой потом валидируется ответ модели.

// CompileNicheSuggestion собирает промпт подбора ниш из ответов анкеты.
func CompileNicheSuggestion(answers []string) string {
	var numbered strings.Builder
	for i, answer := range answers {
		fmt.Fprintf(&numbered, "%d. %s\n", i+1, answer)
	}

	return fmt.Sprintf(`You are a YouTube niche expert specializing in faceless channels. Based on the user's answers below, suggest 2 perfect content niches for a faceless YouTube channel.

USER'S ANSWERS:
%s
CRITERIA FOR FACELESS CHANNELS:
- No personal appearance required
- Can use voiceover, stock footage, animations, or screen recordings
- Evergreen content potential
- Monetization friendly
- Searchable topics

Please analyze their interests, skills, and preferences to suggest niches that match these criteria.

Respond ONLY with valid JSON in this exact format, with 2 entries in "niches":
%s
`, numbered.String(), schemas.NicheSchema.RenderExample())
}

// CompileContentIdeas собирает промпт генерации идей из пар вопрос/ответ.
func CompileContentIdeas(answers []model.QA) string {
	var background strings.Builder
	for i, qa := range answers {
		if i > 0 {
			background.WriteString("\n\n")
		}
		if qa.Question != "" {
			fmt.Fprintf(&background, "Q: %s\nA: %s", qa.Question, qa.Answer)
		} else {
			fmt.Fprintf(&background, "A: %s", qa.Answer)
		}
	}

	return fmt.Sprintf(`You are a YouTube content strategist specializing in faceless channels. Analyze the user's answers and generate content ideas.

USER'S BACKGROUND:
%s

Generate 5-8 specific content ideas for faceless channels. Each idea should include title, description, niche, format, and target audience.

IMPORTANT: You MUST respond with VALID JSON only, no other text. Use this exact format:

%s

Keep the response clean and ensure the JSON is valid.
`, background.String(), schemas.IdeaSchema.RenderExample())
}

// purposeTemplate - системная роль и структура для одной категории промптов.
type purposeTemplate struct {
	SystemRole string
	Structure  string
}

var purposeTemplates = map[string]purposeTemplate{
	"video": {
		SystemRole: "You are a professional AI video prompt engineer specializing in creating detailed, cinematic prompts for video generation models.",
		Structure: `Create an enhanced video generation prompt based on the user's input.

The prompt should include:
- Scene description with visual details
- Camera movements and angles
- Lighting and color palette
- Style references (film genres, artists)
- Mood and atmosphere
- Technical specifications if applicable`,
	},
	"image": {
		SystemRole: "You are an expert AI image prompt engineer with deep knowledge of visual arts, photography, and digital art styles.",
		Structure: `Generate a sophisticated image generation prompt.

The prompt must specify:
- Subject and composition
- Art style or medium (digital painting, oil painting, photo, etc.)
- Lighting conditions and time of day
- Color scheme and mood
- Technical details (resolution, aspect ratio)
- Artist influences or references`,
	},
	"text": {
		SystemRole: "You are a master AI text prompt engineer specializing in crafting precise instructions for language models.",
		Structure: `Create an optimized text generation prompt.

The prompt should define:
- Desired output format and length
- Tone and style (formal, casual, academic, etc.)
- Key points to cover
- Target audience
- Specific constraints or requirements`,
	},
	"audio": {
		SystemRole: "You are an audio engineering expert specializing in AI music and sound generation prompts.",
		Structure: `Generate a detailed audio generation prompt.

The prompt must include:
- Genre or sound type
- Instruments or sound sources
- Tempo, rhythm, or duration
- Mood and emotional tone
- Technical specifications (bitrate, format if needed)
- Reference artists or similar sounds`,
	},
}

// IsValidPurpose сообщает, поддерживается ли категория промпта.
func IsValidPurpose(purpose string) bool {
	_, ok := purposeTemplates[strings.ToLower(purpose)]
	return ok
}

// CompileEngineeredPrompt собирает мета-промпт для prompt engineering.
// purpose должен быть одним из video/image/text/audio (регистр не важен).
func CompileEngineeredPrompt(input, purpose, targetModel string) (string, error) {
	template, ok := purposeTemplates[strings.ToLower(purpose)]
	if !ok {
		return "", fmt.Errorf("unknown prompt purpose %q", purpose)
	}
	if targetModel == "" {
		targetModel = "General AI"
	}

	return fmt.Sprintf(`SYSTEM ROLE: %s

USER'S ORIGINAL INPUT: %q
CATEGORY: %s GENERATION
TARGET MODEL: %s

%s

COMPLEXITY GUIDELINES: Add moderate detail and creative elements

IMPORTANT: Return ONLY valid JSON in this exact format:
%s

Ensure the prompt is self-contained and ready to use with AI models.
`, template.SystemRole, input, strings.ToUpper(purpose), targetModel,
		template.Structure, schemas.PromptSchema.RenderExample()), nil
}

// CompileMovieRecap собирает промпт пятичастного пересказа фильма.
// runtime в минутах; при нуле берется типовая длительность 120 минут.
func CompileMovieRecap(title, overview string, runtime int) string {
	if runtime == 0 {
		runtime = 120
	}
	if overview == "" {
		overview = "Overview not provided"
	}

	return fmt.Sprintf(`Create a detailed 5-part timestamped recap for the movie %q.

MOVIE OVERVIEW:
%s

RUNTIME: %d minutes

Create a compelling scene-by-scene breakdown with precise timestamps. Each segment should:

- Advance the main plot
- Highlight character development
- Maintain narrative flow
- Use engaging, cinematic language

Format each segment exactly like:
[00:00–02:30] Description of what happens...
[10:25–40:30] Description of what happens...

Rules:
1. Use the EXACT timestamp format above - DO NOT change it
2. Each line must start with the timestamp in square brackets
3. Write sentences per segment describing key events
4. No extra text before or after the segment lines
5. Keep descriptions concise and focused on major plot points
Make the recap detailed enough to understand the story structure.
`, title, overview, runtime)
}

// CompileSimpleNiche собирает короткий текстовый запрос рекомендации ниши.
// Ответ здесь - свободный текст, без JSON-схемы.
func CompileSimpleNiche(answers []string) string {
	encoded, _ := json.Marshal(answers)

	return fmt.Sprintf(`You are a business strategist helping creators find profitable niches.
Based on the following responses, suggest a specific niche they should focus on.

Answers: %s

Respond in this format:
- Recommended Niche: <niche>
- Why it's a good fit: <1-2 sentence explanation>
- Example Content Ideas: <3 bullet points>
`, string(encoded))
}
