package schemas

// Типизированные полезные нагрузки AI-эндпоинтов. Формы повторяют то, что
// модель просят вернуть в промпте; поле Fallback выставляется нормализатором,
// когда ответ модели не удалось разобрать и подставлена заготовка.

// Niche - одна предложенная ниша для faceless-канала.
type Niche struct {
	Name                  string   `json:"name"`
	Reason                string   `json:"reason"`
	ContentIdeas          []string `json:"contentIdeas"`
	MonetizationPotential string   `json:"monetizationPotential"`
	CompetitionLevel      string   `json:"competitionLevel"`
	Trends                []string `json:"trends"`
	Audience              []string `json:"audience"`
	Ideas                 []string `json:"ideas"`
}

// NichePayload - ответ эндпоинта подбора ниш.
type NichePayload struct {
	Niches   []Niche `json:"niches"`
	Fallback bool    `json:"fallback"`
}

// ContentIdea - одна идея контента.
type ContentIdea struct {
	Title                  string   `json:"title"`
	Description            string   `json:"description"`
	Niche                  string   `json:"niche"`
	Format                 string   `json:"format"`
	TargetAudience         []string `json:"targetAudience"`
	ProductionDifficulty   string   `json:"productionDifficulty"`
	MonetizationStrategies []string `json:"monetizationStrategies"`
}

// RecommendedNiche - рекомендация ниши, сопровождающая идеи контента.
type RecommendedNiche struct {
	Name             string `json:"name"`
	Reason           string `json:"reason"`
	GrowthPotential  string `json:"growthPotential"`
	CompetitionLevel string `json:"competitionLevel"`
}

// ContentStrategy - сводная стратегия канала.
type ContentStrategy struct {
	TopNiches         []string `json:"topNiches,omitempty"`
	ContentPillars    []string `json:"contentPillars,omitempty"`
	PostingFrequency  string   `json:"postingFrequency,omitempty"`
	ChannelGrowthTips []string `json:"channelGrowthTips,omitempty"`
	EquipmentNeeded   []string `json:"equipmentNeeded,omitempty"`
}

// IdeaPayload - ответ эндпоинта генерации идей контента.
type IdeaPayload struct {
	Ideas             []ContentIdea      `json:"ideas"`
	RecommendedNiches []RecommendedNiche `json:"recommendedNiches"`
	ContentStrategy   ContentStrategy    `json:"contentStrategy"`
	Fallback          bool               `json:"fallback"`
}

// GeneratedPrompt - один инженерный промпт, подготовленный моделью.
type GeneratedPrompt struct {
	Type            string   `json:"type"`
	Prompt          string   `json:"prompt"`
	UseCase         string   `json:"useCase"`
	Strengths       []string `json:"strengths"`
	EstimatedTokens int      `json:"estimatedTokens"`
	ModelOptimized  bool     `json:"modelOptimized"`
}

// PromptPayload - ответ эндпоинта prompt engineering.
type PromptPayload struct {
	Category        string          `json:"category"`
	OriginalInput   string          `json:"originalInput"`
	GeneratedPrompt GeneratedPrompt `json:"generatedPrompt"`
	Fallback        bool            `json:"fallback"`
}
