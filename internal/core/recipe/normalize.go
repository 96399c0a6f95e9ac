package recipe

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"recipe-ingest/internal/core/units"
	"recipe-ingest/internal/pkg/common"
)

// 計時器上限：四小時；超過即視為無效
const maxTimerSeconds = 14400

// 長時間靜置的門檻（小時），達到即把計時器歸零
const longRestHours = 5

// ParsePayload 將生成協作者回傳的原始 JSON 轉為食譜
// 上游輸出不可信任：以無型別樹逐欄位驗證，除 schema 必填的
// title/ingredients/instructions 外不假設任何欄位存在
// 第一次解析失敗時做盡力修復後重試，仍失敗才回傳錯誤
func ParsePayload(raw string) (*common.Recipe, error) {
	content := common.ExtractJSONObject(raw)

	var tree map[string]interface{}
	if err := common.ParseJSON(content, &tree); err != nil {
		repaired := common.RepairJSON(raw)
		if err2 := common.ParseJSON(repaired, &tree); err2 != nil {
			return nil, fmt.Errorf("malformed generation output: %w", err)
		}
	}

	r := &common.Recipe{
		Title:       asString(tree["title"]),
		Description: asString(tree["description"]),
		Cuisine:     asString(tree["cuisine"]),
		PrepTime:    asString(tree["prep_time"]),
		CookTime:    asString(tree["cook_time"]),
		Servings:    asString(tree["servings"]),
		Tags:        asStringSlice(tree["tags"]),
	}

	if items, ok := tree["ingredients"].([]interface{}); ok {
		for _, item := range items {
			entry, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			r.Ingredients = append(r.Ingredients, common.Ingredient{
				Name:   asString(entry["name"]),
				Amount: asString(entry["amount"]),
				Unit:   asString(entry["unit"]),
				Notes:  asString(entry["notes"]),
			})
		}
	}

	if items, ok := tree["instructions"].([]interface{}); ok {
		for _, item := range items {
			switch entry := item.(type) {
			case map[string]interface{}:
				step := common.InstructionStep{
					StepNumber:  asInt(entry["step_number"]),
					Description: asString(entry["description"]),
				}
				if timer := asInt(entry["timer_seconds"]); timer > 0 {
					step.TimerSeconds = &timer
				}
				r.Instructions = append(r.Instructions, step)
			case string:
				// 有些模型直接回傳字串陣列
				r.Instructions = append(r.Instructions, common.InstructionStep{Description: entry})
			}
		}
	}

	if nut, ok := tree["nutrition"].(map[string]interface{}); ok {
		r.Nutrition = common.Nutrition{
			CaloriesPerServing: asString(nut["calories_per_serving"]),
			TotalCalories:      asString(nut["total_calories"]),
		}
	}

	return r, nil
}

// asString 容忍 null 與非字串值
func asString(v interface{}) string {
	switch s := v.(type) {
	case string:
		if s == "null" {
			return ""
		}
		return s
	case json.Number:
		return s.String()
	default:
		return ""
	}
}

func asStringSlice(v interface{}) []string {
	items, ok := v.([]interface{})
	if !ok {
		return nil
	}
	var out []string
	for _, item := range items {
		if s := asString(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func asInt(v interface{}) int {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0
		}
		return int(f)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0
		}
		return i
	default:
		return 0
	}
}

// Repair 把不可信的食譜修復到符合資料模型不變量
// 永不失敗：一律回傳盡力修復後的結果，且重複執行結果不變
func Repair(r *common.Recipe) {
	if strings.TrimSpace(r.Title) == "" {
		r.Title = "Untitled recipe"
	}

	// 最終輸出不允許空陣列：補一筆佔位
	if len(r.Ingredients) == 0 {
		r.Ingredients = []common.Ingredient{{}}
	}
	if len(r.Instructions) == 0 {
		r.Instructions = []common.InstructionStep{{}}
	}

	for i := range r.Ingredients {
		if strings.TrimSpace(r.Ingredients[i].Name) == "" {
			r.Ingredients[i].Name = fmt.Sprintf("Ingredient %d (name missing, edit before use)", i+1)
		}
	}

	for i := range r.Instructions {
		step := &r.Instructions[i]
		step.StepNumber = i + 1

		if strings.TrimSpace(step.Description) == "" {
			step.Description = fmt.Sprintf("Step %d (description missing, edit before use)", i+1)
		}
		step.Description = CleanInstructionText(step.Description)

		// 長時間靜置（過夜冷藏等）不該配短倒數計時
		if HasLongRest(step.Description) {
			step.TimerSeconds = nil
		} else if step.TimerSeconds != nil {
			if *step.TimerSeconds <= 0 || *step.TimerSeconds > maxTimerSeconds {
				step.TimerSeconds = nil
			}
		}
	}

	if r.Tags == nil {
		r.Tags = []string{}
	}
}

// fillerPatterns 口語贅詞與不雅字樣（依語系的種子清單）
var fillerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(galera|pessoal|gente|beleza|tipo assim)\b[,!]?\s*`),
	regexp.MustCompile(`(?i)\bné(?:[,?]+\s*|\s+|$)`),
	regexp.MustCompile(`(?i)\b(you know|i mean|like i said)\b[,]?\s*`),
	regexp.MustCompile(`(?i)\b(bueno pues|o sea)\b[,]?\s*`),
	regexp.MustCompile(`(?i)\b(merda|caralho|porra|mierda|joder|shit|fuck\w*|damn)\b[,!]?\s*`),
}

var (
	whitespacePattern      = regexp.MustCompile(`\s+`)
	spaceBeforePunctuation = regexp.MustCompile(`\s+([,.;:!?])`)
)

// CleanInstructionText 清理步驟文字：去除贅詞、收斂空白與標點前空格
func CleanInstructionText(text string) string {
	cleaned := text
	for _, p := range fillerPatterns {
		cleaned = p.ReplaceAllString(cleaned, "")
	}
	cleaned = whitespacePattern.ReplaceAllString(cleaned, " ")
	cleaned = spaceBeforePunctuation.ReplaceAllString(cleaned, "$1")
	return strings.TrimSpace(cleaned)
}

// longRestKeywords 明確表示過夜/長時間靜置的字樣
var longRestKeywords = []string{
	"overnight",
	"durante a noite",
	"de um dia para o outro",
	"de vespera",
	"toda la noche",
	"de un dia para otro",
	"toute la nuit",
	"du jour au lendemain",
}

// hourMentionPattern 文字中的小時數（含範圍："4 a 6 horas"、"8h"）
var hourMentionPattern = regexp.MustCompile(`(?i)(\d+)(?:\s*(?:a|à|-|–|to)\s*(\d+))?\s*(?:h\b|hrs?\b|horas?\b|hours?\b|heures?\b)`)

// HasLongRest 判斷步驟文字是否表示跨越數小時的靜置
// 命中關鍵字，或文字提到 >= 5 小時的時數（單值或範圍上緣）
func HasLongRest(text string) bool {
	cleaned := units.StripDiacritics(strings.ToLower(text))

	for _, kw := range longRestKeywords {
		if strings.Contains(cleaned, kw) {
			return true
		}
	}

	for _, m := range hourMentionPattern.FindAllStringSubmatch(cleaned, -1) {
		hours, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if m[2] != "" {
			if hi, err := strconv.Atoi(m[2]); err == nil && hi > hours {
				hours = hi
			}
		}
		if hours >= longRestHours {
			return true
		}
	}

	return false
}
