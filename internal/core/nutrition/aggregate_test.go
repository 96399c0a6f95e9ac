package nutrition

import (
	"testing"

	"recipe-ingest/internal/pkg/common"

	"github.com/stretchr/testify/assert"
)

func TestAggregateExternalEstimateWins(t *testing.T) {
	recipe := &common.Recipe{
		Title:    "Brigadeiro",
		Language: "pt-BR",
		Ingredients: []common.Ingredient{
			{Name: "leite condensado", Amount: "1", Unit: "lata"},
		},
	}
	estimate := &common.NutritionEstimate{
		PortionCount:       24,
		CaloriesPerPortion: 85,
	}

	Aggregate(recipe, estimate)

	assert.Equal(t, "~24 porções", recipe.Servings)
	assert.Equal(t, "85 kcal por porção (~24 porções)", recipe.Nutrition.CaloriesPerServing)
	assert.Equal(t, "~2040 kcal no total", recipe.Nutrition.TotalCalories)
}

func TestAggregateExternalTotalOnly(t *testing.T) {
	recipe := &common.Recipe{
		Title:    "Soup",
		Language: "en-US",
	}
	estimate := &common.NutritionEstimate{
		PortionCount:  4,
		TotalCalories: 1000,
	}

	Aggregate(recipe, estimate)

	assert.Equal(t, "~4 servings", recipe.Servings)
	assert.Equal(t, "250 kcal per serving (~4 servings)", recipe.Nutrition.CaloriesPerServing)
	assert.Equal(t, "~1000 kcal in total", recipe.Nutrition.TotalCalories)
}

func TestAggregateTreatHeuristic(t *testing.T) {
	recipe := &common.Recipe{
		Title:    "Brigadeiro tradicional",
		Language: "pt-BR",
		Ingredients: []common.Ingredient{
			{Name: "leite condensado", Amount: "1", Unit: "lata"},
			{Name: "manteiga", Amount: "1", Unit: "colher de sopa"},
		},
	}

	Aggregate(recipe, nil)

	// 395 g + 14.25 g at 20 g per brigadeiro -> 20 treats
	assert.Equal(t, "~20 porções", recipe.Servings)
	assert.Contains(t, recipe.Nutrition.CaloriesPerServing, "(~20 porções)")
}

func TestAggregateMassHeuristic(t *testing.T) {
	recipe := &common.Recipe{
		Title:    "Arroz simples",
		Language: "pt-BR",
		Ingredients: []common.Ingredient{
			{Name: "arroz", Amount: "500", Unit: "g"},
		},
	}

	Aggregate(recipe, nil)

	// 500 g at 250 g per serving -> 2 servings
	assert.Equal(t, "~2 porções", recipe.Servings)
	assert.Equal(t, "~1800 kcal no total", recipe.Nutrition.TotalCalories)
}

func TestAggregateFallbackDefaults(t *testing.T) {
	recipe := &common.Recipe{
		Title:    "Empty recipe",
		Language: "en-US",
	}

	Aggregate(recipe, nil)

	assert.Equal(t, "~4 servings", recipe.Servings)
	assert.Equal(t, "200 kcal per serving (~4 servings)", recipe.Nutrition.CaloriesPerServing)
	assert.Equal(t, "~800 kcal in total", recipe.Nutrition.TotalCalories)
}

func TestAggregateStatedServingsUsedWithoutMass(t *testing.T) {
	recipe := &common.Recipe{
		Title:    "Family stew",
		Language: "en-US",
		Servings: "Serves 6 people",
	}

	Aggregate(recipe, nil)

	assert.Equal(t, "~6 servings", recipe.Servings)
}

func TestComputeSnapshotCookingMethodMultiplier(t *testing.T) {
	base := &common.Recipe{
		Ingredients: []common.Ingredient{
			{Name: "farinha", Amount: "100", Unit: "g"},
		},
	}
	fried := &common.Recipe{
		Ingredients: base.Ingredients,
		Instructions: []common.InstructionStep{
			{Description: "Frite em óleo quente"},
		},
	}

	plain := ComputeSnapshot(base)
	withFry := ComputeSnapshot(fried)

	assert.InDelta(t, plain.TotalCalories*1.12, withFry.TotalCalories, 1e-6)
}

func TestAggregateLocalizedLabels(t *testing.T) {
	for lang, want := range map[string]string{
		"es-ES": "~4 porciones",
		"fr-FR": "~4 portions",
		"de-DE": "~4 servings",
	} {
		recipe := &common.Recipe{Title: "x", Language: lang}
		Aggregate(recipe, nil)
		assert.Equal(t, want, recipe.Servings, "language %s", lang)
	}
}
