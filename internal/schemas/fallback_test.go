package schemas_test

import (
	"testing"

	"velia-server/internal/schemas"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectInterests(t *testing.T) {
	t.Run("Known keywords map to interests in fixed order", func(t *testing.T) {
		interests := schemas.DetectInterests("I like gaming and cooking good food")
		assert.Equal(t, []string{"Cooking", "Gaming"}, interests)
	})

	t.Run("Matching is case-insensitive", func(t *testing.T) {
		interests := schemas.DetectInterests("PROGRAMMING is my passion")
		assert.Equal(t, []string{"Technology"}, interests)
	})

	t.Run("No keywords yields default interests", func(t *testing.T) {
		interests := schemas.DetectInterests("I enjoy gardening")
		assert.Equal(t, []string{"Personal Development", "How-To Guides"}, interests)
	})
}

func TestFallbackNiches(t *testing.T) {
	t.Run("Cooking keyword yields cooking niche with content ideas", func(t *testing.T) {
		payload := schemas.FallbackNiches("I love to cook for my family")

		assert.True(t, payload.Fallback)
		require.Len(t, payload.Niches, 2)
		assert.Equal(t, "Cooking & Recipes", payload.Niches[0].Name)
		assert.NotEmpty(t, payload.Niches[0].ContentIdeas)
		// Второй слот добивается универсальной нишей
		assert.Equal(t, "Animation & Storytelling", payload.Niches[1].Name)
	})

	t.Run("Unknown interests yield generic niches", func(t *testing.T) {
		payload := schemas.FallbackNiches("gardening")

		require.Len(t, payload.Niches, 2)
		for _, niche := range payload.Niches {
			assert.NotEmpty(t, niche.Name)
			assert.NotEmpty(t, niche.Reason)
		}
	})

	t.Run("Same input gives same output", func(t *testing.T) {
		first := schemas.FallbackNiches("travel and adventure")
		second := schemas.FallbackNiches("travel and adventure")
		assert.Equal(t, first, second)
	})
}

func TestFallbackIdeas(t *testing.T) {
	payload := schemas.FallbackIdeas("tech and finance")

	assert.True(t, payload.Fallback)
	assert.Len(t, payload.Ideas, 5)
	// Ниша первой идеи берется из первого найденного интереса
	assert.Equal(t, "Technology", payload.Ideas[0].Niche)
	require.Len(t, payload.RecommendedNiches, 2)
	assert.Equal(t, "Technology", payload.RecommendedNiches[0].Name)
	assert.Equal(t, "Personal Finance", payload.RecommendedNiches[1].Name)
	assert.Equal(t, "1-2 times per week", payload.ContentStrategy.PostingFrequency)
}

func TestFallbackGeneratedPrompt(t *testing.T) {
	payload := schemas.FallbackGeneratedPrompt("a neon city at night", "image")

	assert.True(t, payload.Fallback)
	assert.Equal(t, "image", payload.Category)
	assert.Equal(t, "a neon city at night", payload.OriginalInput)
	assert.Contains(t, payload.GeneratedPrompt.Prompt, "a neon city at night")
	assert.False(t, payload.GeneratedPrompt.ModelOptimized)
	assert.Greater(t, payload.GeneratedPrompt.EstimatedTokens, 0)
}
