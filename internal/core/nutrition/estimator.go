package nutrition

import (
	"recipe-ingest/internal/core/units"
	"recipe-ingest/internal/pkg/common"
)

// 未命中熱量檔案時的保守預設值
const (
	defaultCaloriesPerGram = 1.2
	defaultUnitGrams       = 60.0
	defaultCanGrams        = 395.0
)

// Contribution 單一食材的估算貢獻
type Contribution struct {
	Calories float64
	Grams    float64
}

// EstimateIngredient 估算單一食材的質量（克）與熱量
// 解析順序：amount 欄位、name 欄位內嵌數量、「適量」歸零、預設 1
func EstimateIngredient(ing common.Ingredient) Contribution {
	// 「適量」無論其他解析結果為何都視為零貢獻
	if IsNegligible(ing.Amount + " " + ing.Unit) {
		return Contribution{}
	}

	amount, ok := ParseAmount(ing.Amount)
	if !ok {
		// 數量有時寫在名稱裡（"2 ovos"）
		amount, ok = ParseAmount(ing.Name)
	}
	if !ok {
		amount = 1
	}
	if amount == 0 {
		return Contribution{}
	}

	profile := units.LookupProfile(ing.Name)
	unit := units.Normalize(ing.Unit)

	var grams, calories float64

	switch {
	case unit == "unit" && profile != nil && profile.CaloriesPerUnit > 0:
		grams = unitGrams(profile) * amount
		calories = profile.CaloriesPerUnit * amount

	case unit == "can":
		g := defaultCanGrams
		if profile != nil && profile.GramsPerUnit > 0 {
			g = profile.GramsPerUnit
		}
		grams = g * amount
		calories = grams * gramRate(profile)

	default:
		if def, found := units.Lookup(unit); found && def.Class == units.ClassWeight {
			grams = amount * def.Factor
			calories = grams * gramRate(profile)
		} else if found && def.Class == units.ClassVolume {
			ml := amount * def.Factor
			density := 1.0
			if profile != nil && profile.Density > 0 {
				density = profile.Density
			}
			grams = ml * density
			if profile != nil && profile.CaloriesPerML > 0 {
				calories = ml * profile.CaloriesPerML
			} else {
				calories = grams * gramRate(profile)
			}
		} else if profile != nil && profile.CaloriesPerUnit > 0 {
			// 單位無法辨識，但檔案有單顆熱量：當成離散食材
			grams = unitGrams(profile) * amount
			calories = profile.CaloriesPerUnit * amount
		}
	}

	// 補算缺漏的一側
	if grams == 0 {
		grams = amount * unitGrams(profile)
	}
	if calories == 0 {
		calories = grams * gramRate(profile)
	}

	return Contribution{Calories: calories, Grams: grams}
}

func gramRate(profile *units.CalorieProfile) float64 {
	if profile != nil && profile.CaloriesPerGram > 0 {
		return profile.CaloriesPerGram
	}
	return defaultCaloriesPerGram
}

func unitGrams(profile *units.CalorieProfile) float64 {
	if profile != nil && profile.GramsPerUnit > 0 {
		return profile.GramsPerUnit
	}
	return defaultUnitGrams
}
