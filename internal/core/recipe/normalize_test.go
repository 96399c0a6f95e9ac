package recipe

import (
	"testing"

	"recipe-ingest/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePayloadWellFormed(t *testing.T) {
	raw := `{
		"title": "Bolo de cenoura",
		"description": "Um clássico",
		"servings": "8 porções",
		"ingredients": [
			{"name": "cenoura", "amount": "3", "unit": "unidade"},
			{"name": "açúcar", "amount": "2", "unit": "xícaras"}
		],
		"instructions": [
			{"step_number": 1, "description": "Bata tudo no liquidificador", "timer_seconds": 120}
		],
		"tags": ["doce", "brasileiro"]
	}`

	r, err := ParsePayload(raw)
	require.NoError(t, err)

	assert.Equal(t, "Bolo de cenoura", r.Title)
	assert.Len(t, r.Ingredients, 2)
	assert.Equal(t, "cenoura", r.Ingredients[0].Name)
	require.Len(t, r.Instructions, 1)
	require.NotNil(t, r.Instructions[0].TimerSeconds)
	assert.Equal(t, 120, *r.Instructions[0].TimerSeconds)
	assert.Equal(t, []string{"doce", "brasileiro"}, r.Tags)
}

func TestParsePayloadMarkdownFence(t *testing.T) {
	raw := "```json\n{\"title\": \"Sopa\", \"ingredients\": [], \"instructions\": []}\n```"

	r, err := ParsePayload(raw)
	require.NoError(t, err)
	assert.Equal(t, "Sopa", r.Title)
}

func TestParsePayloadRepairsTruncatedJSON(t *testing.T) {
	// unterminated string and missing closing brackets
	raw := `{"title": "Bolo", "ingredients": [{"name": "farinha`

	r, err := ParsePayload(raw)
	require.NoError(t, err)
	assert.Equal(t, "Bolo", r.Title)
	require.Len(t, r.Ingredients, 1)
	assert.Equal(t, "farinha", r.Ingredients[0].Name)
}

func TestParsePayloadStringInstructions(t *testing.T) {
	raw := `{"title": "Chá", "ingredients": [], "instructions": ["Ferva a água", "Adicione as folhas"]}`

	r, err := ParsePayload(raw)
	require.NoError(t, err)
	require.Len(t, r.Instructions, 2)
	assert.Equal(t, "Ferva a água", r.Instructions[0].Description)
}

func TestParsePayloadGarbageFails(t *testing.T) {
	_, err := ParsePayload("sorry, I cannot help with that")
	assert.Error(t, err)
}

func TestRepairFillsPlaceholders(t *testing.T) {
	r := &common.Recipe{
		Ingredients: []common.Ingredient{
			{Name: "", Amount: "2", Unit: "xícaras"},
			{Name: "ovo"},
		},
		Instructions: []common.InstructionStep{
			{Description: ""},
		},
	}

	Repair(r)

	assert.Equal(t, "Untitled recipe", r.Title)
	assert.Equal(t, "Ingredient 1 (name missing, edit before use)", r.Ingredients[0].Name)
	// supplied fields survive the repair
	assert.Equal(t, "2", r.Ingredients[0].Amount)
	assert.Equal(t, "xícaras", r.Ingredients[0].Unit)
	assert.Equal(t, "ovo", r.Ingredients[1].Name)
	assert.Equal(t, "Step 1 (description missing, edit before use)", r.Instructions[0].Description)
	assert.Equal(t, 1, r.Instructions[0].StepNumber)
}

func TestRepairEmptyArraysGetOneEntry(t *testing.T) {
	r := &common.Recipe{Title: "Algo"}

	Repair(r)

	require.Len(t, r.Ingredients, 1)
	require.Len(t, r.Instructions, 1)
	assert.NotEmpty(t, r.Ingredients[0].Name)
	assert.NotEmpty(t, r.Instructions[0].Description)
}

func TestRepairRenumbersSteps(t *testing.T) {
	r := &common.Recipe{
		Title: "x",
		Instructions: []common.InstructionStep{
			{StepNumber: 3, Description: "Primeiro"},
			{StepNumber: 9, Description: "Segundo"},
		},
	}

	Repair(r)

	assert.Equal(t, 1, r.Instructions[0].StepNumber)
	assert.Equal(t, 2, r.Instructions[1].StepNumber)
}

func TestRepairTimerBoundaries(t *testing.T) {
	keep := 14400
	tooLong := 14401
	negative := -5
	r := &common.Recipe{
		Title: "x",
		Instructions: []common.InstructionStep{
			{Description: "Asse por quatro horas", TimerSeconds: &keep},
			{Description: "Espere um pouco", TimerSeconds: &tooLong},
			{Description: "Mexa", TimerSeconds: &negative},
		},
	}

	Repair(r)

	require.NotNil(t, r.Instructions[0].TimerSeconds)
	assert.Equal(t, 14400, *r.Instructions[0].TimerSeconds)
	assert.Nil(t, r.Instructions[1].TimerSeconds)
	assert.Nil(t, r.Instructions[2].TimerSeconds)
}

func TestRepairClearsTimerOnLongRest(t *testing.T) {
	timer := 600
	r := &common.Recipe{
		Title: "x",
		Instructions: []common.InstructionStep{
			{Description: "Leave the dough to rest overnight in the fridge", TimerSeconds: &timer},
		},
	}

	Repair(r)

	assert.Nil(t, r.Instructions[0].TimerSeconds)
}

func TestRepairIdempotent(t *testing.T) {
	timer := 900
	r := &common.Recipe{
		Ingredients: []common.Ingredient{
			{Name: ""},
		},
		Instructions: []common.InstructionStep{
			{Description: "Misture bem", TimerSeconds: &timer},
			{Description: ""},
		},
	}

	Repair(r)

	first, err := common.ToJSON(r)
	require.NoError(t, err)

	Repair(r)

	second, err := common.ToJSON(r)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCleanInstructionText(t *testing.T) {
	assert.Equal(t, "misture tudo", CleanInstructionText("Galera, misture tudo"))
	assert.Equal(t, "misture o creme", CleanInstructionText("misture   o  creme"))
	assert.Equal(t, "adicione o sal, depois mexa", CleanInstructionText("adicione o sal , depois mexa"))
	assert.Equal(t, "bata as claras", CleanInstructionText("merda, bata as claras"))
}

func TestHasLongRest(t *testing.T) {
	assert.True(t, HasLongRest("deixe descansar durante a noite"))
	assert.True(t, HasLongRest("let it rest overnight"))
	assert.True(t, HasLongRest("leve à geladeira por 8 horas"))
	assert.True(t, HasLongRest("deixe de 4 a 6 horas"))
	assert.True(t, HasLongRest("chill for 5 hours"))
	assert.False(t, HasLongRest("asse por 2 horas"))
	assert.False(t, HasLongRest("deixe por 30 minutos"))
	assert.False(t, HasLongRest("mexa bem"))
}
