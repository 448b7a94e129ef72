package schemas_test

import (
	"encoding/json"
	"testing"

	"velia-server/internal/schemas"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Пример из RenderExample попадает в промпт как образец формата, поэтому он
// сам обязан быть валидным JSON и проходить собственную схему.
func TestRenderExampleRoundTrip(t *testing.T) {
	for name, schema := range map[string]schemas.Schema{
		"niche":  schemas.NicheSchema,
		"idea":   schemas.IdeaSchema,
		"prompt": schemas.PromptSchema,
	} {
		t.Run(name, func(t *testing.T) {
			example := schema.RenderExample()

			var data map[string]interface{}
			require.NoError(t, json.Unmarshal([]byte(example), &data), example)
			assert.NoError(t, schema.Validate(data))
		})
	}
}

func TestSchemaValidate(t *testing.T) {
	schema := schemas.Schema{Fields: []schemas.Field{
		{Name: "title", Kind: schemas.KindString},
		{Name: "tags", Kind: schemas.KindStringArray},
		{Name: "extra", Kind: schemas.KindString, Optional: true},
		{Name: "items", Kind: schemas.KindObjectArray, Fields: []schemas.Field{
			{Name: "name", Kind: schemas.KindString},
		}},
	}}

	t.Run("Valid payload passes", func(t *testing.T) {
		data := map[string]interface{}{
			"title": "x",
			"tags":  []interface{}{"a"},
			"items": []interface{}{map[string]interface{}{"name": "y"}},
		}
		assert.NoError(t, schema.Validate(data))
	})

	t.Run("Missing required field fails", func(t *testing.T) {
		data := map[string]interface{}{
			"title": "x",
			"items": []interface{}{},
		}
		err := schema.Validate(data)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"tags"`)
	})

	t.Run("Missing optional field passes", func(t *testing.T) {
		data := map[string]interface{}{
			"title": "x",
			"tags":  []interface{}{},
			"items": []interface{}{},
		}
		assert.NoError(t, schema.Validate(data))
	})

	t.Run("Wrong container type fails", func(t *testing.T) {
		data := map[string]interface{}{
			"title": "x",
			"tags":  "not an array",
			"items": []interface{}{},
		}
		assert.Error(t, schema.Validate(data))
	})

	t.Run("Nested element missing field fails with path", func(t *testing.T) {
		data := map[string]interface{}{
			"title": "x",
			"tags":  []interface{}{},
			"items": []interface{}{map[string]interface{}{}},
		}
		err := schema.Validate(data)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "items[0].name")
	})
}
