package nutrition

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"recipe-ingest/internal/core/units"
	"recipe-ingest/internal/pkg/common"

	"go.uber.org/zap"
)

// 無任何訊號時的保守後備值
const (
	fallbackServings           = 4
	fallbackCaloriesPerServing = 200.0
	gramsPerServing            = 250.0
)

// cookingMethodRule 烹調方式的熱量倍率，多個命中時倍率相乘
type cookingMethodRule struct {
	pattern    *regexp.Regexp
	multiplier float64
}

var cookingMethodRules = []cookingMethodRule{
	// 油炸
	{regexp.MustCompile(`(?i)\bfrit|deep.?fry|\bfry\b|\bfried\b|\bfrying\b|\bfreir\b|\bfritur`), 1.12},
	// 烘烤
	{regexp.MustCompile(`(?i)\bbake|\broast|\bassar\b|\basse\b|\bforno\b|\bhorno\b|\bhornear\b|\bau four\b`), 1.02},
}

// treatRule 小點心類別，每類有自己的單顆克數
// 有序清單：先宣告者優先命中
type treatRule struct {
	pattern      *regexp.Regexp
	gramsPerItem float64
}

var treatRules = []treatRule{
	{regexp.MustCompile(`(?i)brigadeiro|trufa|truffle|bombom`), 20},
	{regexp.MustCompile(`(?i)cookie|biscoito|galleta|bolacha`), 25},
	{regexp.MustCompile(`(?i)muffin|cupcake`), 60},
	{regexp.MustCompile(`(?i)brownie|barrinha|\bbars?\b`), 45},
	{regexp.MustCompile(`(?i)docinho|candy|caramelo|caramel|beijinho`), 15},
}

// Snapshot 純靠食材數學與文字樣式比對得到的熱量/份數快照，不含任何外部 AI 輸入
type Snapshot struct {
	TotalGrams    float64
	TotalCalories float64
	MassServings  int
	TreatServings int
	TreatDetected bool
}

// ComputeSnapshot 計算食譜的啟發式快照
func ComputeSnapshot(recipe *common.Recipe) Snapshot {
	var snap Snapshot

	for _, ing := range recipe.Ingredients {
		c := EstimateIngredient(ing)
		snap.TotalGrams += c.Grams
		snap.TotalCalories += c.Calories
	}

	// 烹調方式倍率掃描合併後的步驟文字
	var sb strings.Builder
	for _, step := range recipe.Instructions {
		sb.WriteString(step.Description)
		sb.WriteString("\n")
	}
	instructionText := units.StripDiacritics(sb.String())

	for _, rule := range cookingMethodRules {
		if rule.pattern.MatchString(instructionText) {
			snap.TotalCalories *= rule.multiplier
		}
	}

	// 質量推導的份數
	snap.MassServings = atLeastOne(math.Round(snap.TotalGrams / gramsPerServing))

	// 小點心類別：標題、標籤與步驟文字中的關鍵字
	searchText := units.StripDiacritics(recipe.Title + " " + strings.Join(recipe.Tags, " ") + " " + sb.String())
	for _, rule := range treatRules {
		if rule.pattern.MatchString(searchText) {
			snap.TreatDetected = true
			snap.TreatServings = atLeastOne(math.Round(snap.TotalGrams / rule.gramsPerItem))
			break
		}
	}

	return snap
}

// firstIntPattern 食譜原本的份量標籤裡的第一個整數（"4 porções" -> 4）
var firstIntPattern = regexp.MustCompile(`\d+`)

// Aggregate 彙總食譜營養：填入 servings 與 nutrition 的本地化標籤
// 外部估算（若有）永遠優先於啟發式；啟發式內部小點心優先於質量推導
func Aggregate(recipe *common.Recipe, estimate *common.NutritionEstimate) {
	snap := ComputeSnapshot(recipe)

	var servings int
	var total, perServing float64

	if estimate.HasPortionCount() {
		// 外部份數視為權威
		servings = atLeastOne(math.Round(estimate.PortionCount))

		switch {
		case estimate.CaloriesPerPortion > 0:
			perServing = estimate.CaloriesPerPortion
		case estimate.TotalCalories > 0:
			perServing = estimate.TotalCalories / float64(servings)
		case snap.TotalCalories > 0:
			perServing = snap.TotalCalories / float64(servings)
		default:
			perServing = fallbackCaloriesPerServing
		}

		if estimate.TotalCalories > 0 {
			total = estimate.TotalCalories
		} else {
			total = perServing * float64(servings)
		}
		if total < 1 {
			total = 1
		}

		common.LogDebug("採用外部營養估算",
			zap.Int("servings", servings),
			zap.Float64("per_serving", perServing),
		)
	} else {
		// 純啟發式：小點心 > 質量推導 > 食譜原本的份量 > 預設
		switch {
		case snap.TreatDetected:
			servings = snap.TreatServings
		case snap.TotalGrams > 0:
			servings = snap.MassServings
		case parseStatedServings(recipe.Servings) > 0:
			servings = parseStatedServings(recipe.Servings)
		default:
			servings = fallbackServings
		}

		total = snap.TotalCalories
		if total <= 0 {
			total = float64(servings) * fallbackCaloriesPerServing
		}
		perServing = total / float64(servings)
	}

	perServingInt := atLeastOne(math.Round(perServing))
	totalInt := atLeastOne(math.Round(total))

	lang := labelLanguage(recipe.Language)
	recipe.Servings = servingsLabel(lang, servings)
	recipe.Nutrition = common.Nutrition{
		CaloriesPerServing: perServingLabel(lang, perServingInt, servings),
		TotalCalories:      totalLabel(lang, totalInt),
	}
}

// parseStatedServings 從原本的份量標籤取第一個整數
func parseStatedServings(label string) int {
	m := firstIntPattern.FindString(label)
	if m == "" {
		return 0
	}
	var n int
	if _, err := fmt.Sscanf(m, "%d", &n); err != nil {
		return 0
	}
	return n
}

func atLeastOne(v float64) int {
	if v < 1 {
		return 1
	}
	return int(v)
}

// labelLanguage 將 BCP-47 語言碼折疊到標籤支援的語言
func labelLanguage(code string) string {
	lower := strings.ToLower(code)
	switch {
	case strings.HasPrefix(lower, "pt"):
		return "pt"
	case strings.HasPrefix(lower, "es"):
		return "es"
	case strings.HasPrefix(lower, "fr"):
		return "fr"
	default:
		return "en"
	}
}

func servingsLabel(lang string, servings int) string {
	switch lang {
	case "pt":
		return fmt.Sprintf("~%d porções", servings)
	case "es":
		return fmt.Sprintf("~%d porciones", servings)
	case "fr":
		return fmt.Sprintf("~%d portions", servings)
	default:
		return fmt.Sprintf("~%d servings", servings)
	}
}

func perServingLabel(lang string, perServing, servings int) string {
	switch lang {
	case "pt":
		return fmt.Sprintf("%d kcal por porção (~%d porções)", perServing, servings)
	case "es":
		return fmt.Sprintf("%d kcal por porción (~%d porciones)", perServing, servings)
	case "fr":
		return fmt.Sprintf("%d kcal par portion (~%d portions)", perServing, servings)
	default:
		return fmt.Sprintf("%d kcal per serving (~%d servings)", perServing, servings)
	}
}

func totalLabel(lang string, total int) string {
	switch lang {
	case "pt":
		return fmt.Sprintf("~%d kcal no total", total)
	case "es":
		return fmt.Sprintf("~%d kcal en total", total)
	case "fr":
		return fmt.Sprintf("~%d kcal au total", total)
	default:
		return fmt.Sprintf("~%d kcal in total", total)
	}
}
