package schemas

import (
	"fmt"
	"strings"

	"velia-server/internal/utils"
)

// Детерминированные заготовки на случай неразборчивого ответа модели.
// Содержимое подбирается по ключевым словам в тексте ответов пользователя;
// никакой случайности - одинаковый вход всегда дает одинаковую заготовку.

// interestKeyword связывает подстроки в ответах с названием интереса.
type interestKeyword struct {
	Interest string
	Words    []string
}

// Порядок фиксирован: он определяет порядок интересов в результате.
var interestKeywords = []interestKeyword{
	{"Technology", []string{"tech", "programming"}},
	{"Cooking", []string{"cook", "food"}},
	{"Personal Finance", []string{"finance", "money"}},
	{"Travel", []string{"travel", "adventure"}},
	{"Gaming", []string{"game", "gaming"}},
	{"Education", []string{"educat", "learn"}},
}

// DetectInterests ищет известные ключевые слова в тексте ответов.
// Если ничего не найдено, возвращает интересы по умолчанию.
func DetectInterests(answerText string) []string {
	lowered := strings.ToLower(answerText)
	var detected []string
	for _, kw := range interestKeywords {
		for _, word := range kw.Words {
			if strings.Contains(lowered, word) {
				detected = append(detected, kw.Interest)
				break
			}
		}
	}
	if len(detected) == 0 {
		detected = []string{"Personal Development", "How-To Guides"}
	}
	return detected
}

// Канонические ниши-заготовки по интересам.
var fallbackNiches = map[string]Niche{
	"Technology": {
		Name:                  "Technology Explainers",
		Reason:                "Software tutorials and tech breakdowns work well with screen recordings and voiceover, no face required",
		ContentIdeas:          []string{"Software tutorials", "App comparisons", "Tech news recaps"},
		MonetizationPotential: "High",
		CompetitionLevel:      "High",
		Trends:                []string{"AI tools", "No-code platforms", "Productivity apps"},
		Audience:              []string{"Developers", "Tech enthusiasts", "Students"},
		Ideas:                 []string{"Top 5 AI tools this month", "Beginner's roadmap to coding", "Automating your workflow"},
	},
	"Cooking": {
		Name:                  "Cooking & Recipes",
		Reason:                "Recipe content films hands and ingredients only, which makes it a natural faceless format",
		ContentIdeas:          []string{"Quick recipes", "Meal prep guides", "Ingredient substitutions"},
		MonetizationPotential: "High",
		CompetitionLevel:      "Medium",
		Trends:                []string{"15-minute meals", "Budget cooking", "High-protein recipes"},
		Audience:              []string{"Home cooks", "Busy professionals", "Students"},
		Ideas:                 []string{"5 dinners under $10", "One-pan weeknight meals", "Pantry staples explained"},
	},
	"Personal Finance": {
		Name:                  "Personal Finance & Investing",
		Reason:                "Financial education content performs well with voiceover and graphics",
		ContentIdeas:          []string{"Stock market analysis", "Budgeting tips", "Investment strategies"},
		MonetizationPotential: "High",
		CompetitionLevel:      "High",
		Trends:                []string{"Index investing", "Side hustles", "FIRE movement"},
		Audience:              []string{"Young professionals", "Beginner investors"},
		Ideas:                 []string{"How compound interest works", "Budgeting apps compared", "First steps in investing"},
	},
	"Travel": {
		Name:                  "Travel Guides",
		Reason:                "Destination guides built from stock footage and maps need no personal appearance",
		ContentIdeas:          []string{"City guides", "Budget travel hacks", "Hidden destinations"},
		MonetizationPotential: "Medium",
		CompetitionLevel:      "Medium",
		Trends:                []string{"Slow travel", "Digital nomad spots", "Off-season trips"},
		Audience:              []string{"Backpackers", "Remote workers", "Families"},
		Ideas:                 []string{"48 hours in Lisbon", "Cheapest countries to visit", "Packing mistakes to avoid"},
	},
	"Gaming": {
		Name:                  "Gaming Guides & Lore",
		Reason:                "Gameplay capture with voiceover commentary is the classic faceless format",
		ContentIdeas:          []string{"Game walkthroughs", "Lore explainers", "Patch breakdowns"},
		MonetizationPotential: "Medium",
		CompetitionLevel:      "High",
		Trends:                []string{"Indie games", "Speedrunning", "Retro revivals"},
		Audience:              []string{"Casual gamers", "Completionists"},
		Ideas:                 []string{"Hidden mechanics explained", "Best builds this season", "History of a franchise"},
	},
	"Education": {
		Name:                  "Educational How-To Guides",
		Reason:                "Based on your interests, creating step-by-step tutorial content works well for faceless channels",
		ContentIdeas:          []string{"Software tutorials", "DIY projects", "Learning skills"},
		MonetizationPotential: "High",
		CompetitionLevel:      "Medium",
		Trends:                []string{"Microlearning", "Skill challenges", "Study techniques"},
		Audience:              []string{"Students", "Lifelong learners"},
		Ideas:                 []string{"Learn anything faster", "Note-taking systems compared", "30-day skill challenge"},
	},
}

// genericNiche используется, когда интерес не попал в таблицу заготовок.
var genericNiche = Niche{
	Name:                  "Animation & Storytelling",
	Reason:                "Creative content that can be produced without showing your face",
	ContentIdeas:          []string{"Animated stories", "Moral tales", "Educational animations"},
	MonetizationPotential: "Medium",
	CompetitionLevel:      "Low",
	Trends:                []string{"Short-form stories", "Whiteboard animation"},
	Audience:              []string{"General audience"},
	Ideas:                 []string{"Animated fable series", "Explainers with simple motion graphics"},
}

// FallbackNiches строит заготовку ответа подбора ниш по ключевым словам.
func FallbackNiches(answerText string) *NichePayload {
	interests := DetectInterests(answerText)
	niches := make([]Niche, 0, 2)
	for _, interest := range interests {
		if len(niches) == 2 {
			break
		}
		if niche, ok := fallbackNiches[interest]; ok {
			niches = append(niches, niche)
		}
	}
	for len(niches) < 2 {
		niches = append(niches, genericNiche)
	}
	return &NichePayload{Niches: niches, Fallback: true}
}

// FallbackIdeas строит заготовку ответа генерации идей контента.
// Идеи универсальные, ниша подставляется из первого найденного интереса.
func FallbackIdeas(answerText string) *IdeaPayload {
	interests := DetectInterests(answerText)
	primary := interests[0]

	ideas := []ContentIdea{
		{
			Title:                  "Beginner's Guide to Your Niche",
			Description:            "Comprehensive introduction to get started in your area of interest",
			Niche:                  primary,
			Format:                 "Tutorial",
			TargetAudience:         []string{"Beginners", "Enthusiasts"},
			ProductionDifficulty:   "Easy",
			MonetizationStrategies: []string{"Adsense", "Affiliate marketing"},
		},
		{
			Title:                  "Top Tools and Resources List",
			Description:            "Curated list of essential tools for your niche",
			Niche:                  primary,
			Format:                 "List",
			TargetAudience:         []string{"Professionals", "Students"},
			ProductionDifficulty:   "Easy",
			MonetizationStrategies: []string{"Adsense", "Affiliate marketing"},
		},
		{
			Title:                  "Common Mistakes to Avoid",
			Description:            "Learn from others' experiences and avoid pitfalls",
			Niche:                  primary,
			Format:                 "Educational",
			TargetAudience:         []string{"Beginners", "Intermediate"},
			ProductionDifficulty:   "Medium",
			MonetizationStrategies: []string{"Adsense", "Sponsorships"},
		},
		{
			Title:                  "Latest Trends and Updates",
			Description:            "Stay current with the newest developments in your field",
			Niche:                  primary,
			Format:                 "News",
			TargetAudience:         []string{"Professionals", "Enthusiasts"},
			ProductionDifficulty:   "Easy",
			MonetizationStrategies: []string{"Adsense", "Sponsorships"},
		},
		{
			Title:                  "Success Story Case Study",
			Description:            "Analyze what makes successful projects work in your niche",
			Niche:                  primary,
			Format:                 "Case Study",
			TargetAudience:         []string{"Advanced", "Professionals"},
			ProductionDifficulty:   "Hard",
			MonetizationStrategies: []string{"Adsense", "Digital products"},
		},
	}

	recommended := make([]RecommendedNiche, 0, len(interests))
	for _, interest := range interests {
		recommended = append(recommended, RecommendedNiche{
			Name:             interest,
			Reason:           fmt.Sprintf("Based on your interests in %s", strings.ToLower(interest)),
			GrowthPotential:  "Medium",
			CompetitionLevel: "Medium",
		})
	}

	topNiches := interests
	if len(topNiches) > 2 {
		topNiches = topNiches[:2]
	}

	return &IdeaPayload{
		Ideas:             ideas,
		RecommendedNiches: recommended,
		ContentStrategy: ContentStrategy{
			TopNiches:        topNiches,
			ContentPillars:   []string{"Educational", "How-To", "Trends"},
			PostingFrequency: "1-2 times per week",
			ChannelGrowthTips: []string{
				"Focus on one niche initially",
				"Engage with comments regularly",
				"Use relevant hashtags and SEO",
			},
			EquipmentNeeded: []string{
				"Good microphone",
				"Video editing software",
				"Screen recording tool",
			},
		},
		Fallback: true,
	}
}

// FallbackGeneratedPrompt строит заготовку ответа prompt engineering:
// исходный запрос оборачивается в простой усиленный промпт.
func FallbackGeneratedPrompt(originalInput, purpose string) *PromptPayload {
	prompt := fmt.Sprintf(
		"Create a detailed, high-quality %s based on the following description. "+
			"Be specific about style, mood and composition. Description: %s",
		purpose, originalInput,
	)
	return &PromptPayload{
		Category:      purpose,
		OriginalInput: originalInput,
		GeneratedPrompt: GeneratedPrompt{
			Type:            "Practical Prompt",
			Prompt:          prompt,
			UseCase:         "A safe starting point when you need a usable prompt right away",
			Strengths:       []string{"Self-contained", "Easy to refine", "Works with any model"},
			EstimatedTokens: utils.EstimateTokens(prompt),
			ModelOptimized:  false,
		},
		Fallback: true,
	}
}
