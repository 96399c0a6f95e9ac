package units

import (
	"strings"
)

// CalorieProfile 食材熱量檔案
// 關鍵字以不含變音符號的小寫宣告，查詢時做同樣處理
// 至少要有一個熱量欄位（每克、每毫升或每顆）
type CalorieProfile struct {
	Keywords        []string
	CaloriesPerGram float64
	CaloriesPerML   float64
	CaloriesPerUnit float64
	Density         float64 // g/mL
	GramsPerUnit    float64 // 離散食材（蛋、罐頭）的單顆重量
}

// CalorieProfiles 依優先序排列的熱量檔案表
// 是有序切片而非 map：前面的關鍵字優先命中
// （leite condensado 必須在 leite 之前，molho de tomate 必須在 tomate 之前）
// 這份清單是種子資料，混有葡/西/英文關鍵字，擴充時往後附加即可
var CalorieProfiles = []CalorieProfile{
	{Keywords: []string{"leite condensado", "condensed milk", "leche condensada"}, CaloriesPerGram: 3.2, Density: 1.3},
	{Keywords: []string{"creme de leite", "heavy cream", "nata", "creme fraiche"}, CaloriesPerGram: 3.0, Density: 1.0},
	{Keywords: []string{"leite", "milk", "leche", "lait"}, CaloriesPerML: 0.64, Density: 1.03, CaloriesPerGram: 0.62},
	{Keywords: []string{"iogurte", "yogurt", "yogur"}, CaloriesPerGram: 0.6, Density: 1.03},
	{Keywords: []string{"manteiga", "butter", "mantequilla", "beurre"}, CaloriesPerGram: 7.2, Density: 0.95},
	{Keywords: []string{"azeite", "oleo", "oil", "aceite", "huile"}, CaloriesPerGram: 8.8, CaloriesPerML: 8.1, Density: 0.92},
	{Keywords: []string{"acucar", "sugar", "azucar", "sucre"}, CaloriesPerGram: 4.0, Density: 0.85},
	{Keywords: []string{"mel", "honey", "miel"}, CaloriesPerGram: 3.0, Density: 1.4},
	{Keywords: []string{"farinha", "flour", "harina", "farine"}, CaloriesPerGram: 3.6, Density: 0.53},
	{Keywords: []string{"chocolate", "choco"}, CaloriesPerGram: 5.4, Density: 0.65},
	{Keywords: []string{"cacau", "cocoa", "cacao"}, CaloriesPerGram: 2.3, Density: 0.5},
	{Keywords: []string{"ovo", "egg", "huevo", "oeuf"}, CaloriesPerUnit: 72, GramsPerUnit: 50, CaloriesPerGram: 1.43},
	{Keywords: []string{"requeijao", "cream cheese"}, CaloriesPerGram: 3.4},
	{Keywords: []string{"queijo", "cheese", "queso", "fromage"}, CaloriesPerGram: 3.5},
	{Keywords: []string{"frango", "chicken", "pollo", "poulet"}, CaloriesPerGram: 1.65},
	{Keywords: []string{"carne", "beef", "picanha", "boeuf"}, CaloriesPerGram: 2.5},
	{Keywords: []string{"peixe", "fish", "pescado", "salmao", "salmon"}, CaloriesPerGram: 1.5},
	{Keywords: []string{"atum", "tuna"}, CaloriesPerGram: 1.2, GramsPerUnit: 170},
	{Keywords: []string{"arroz", "rice", "riz"}, CaloriesPerGram: 3.6, Density: 0.85},
	{Keywords: []string{"aveia", "oat", "avena"}, CaloriesPerGram: 3.8, Density: 0.4},
	{Keywords: []string{"macarrao", "massa", "pasta", "espaguete", "spaghetti"}, CaloriesPerGram: 3.7},
	{Keywords: []string{"batata", "potato", "papa", "pomme de terre"}, CaloriesPerGram: 0.77, GramsPerUnit: 170},
	{Keywords: []string{"molho de tomate", "tomato sauce", "salsa de tomate"}, CaloriesPerGram: 0.3, Density: 1.05, GramsPerUnit: 340},
	{Keywords: []string{"tomate", "tomato"}, CaloriesPerGram: 0.18, GramsPerUnit: 120, CaloriesPerUnit: 22},
	{Keywords: []string{"cebola", "onion", "oignon"}, CaloriesPerGram: 0.4, GramsPerUnit: 110, CaloriesPerUnit: 44},
	{Keywords: []string{"alho", "garlic", "ajo", "ail"}, CaloriesPerGram: 1.49, GramsPerUnit: 5, CaloriesPerUnit: 7},
	{Keywords: []string{"cenoura", "carrot", "zanahoria", "carotte"}, CaloriesPerGram: 0.41, GramsPerUnit: 60, CaloriesPerUnit: 25},
	{Keywords: []string{"banana"}, CaloriesPerGram: 0.89, GramsPerUnit: 120, CaloriesPerUnit: 105},
	{Keywords: []string{"maca", "apple", "manzana"}, CaloriesPerGram: 0.52, GramsPerUnit: 180, CaloriesPerUnit: 95},
	{Keywords: []string{"limao", "lemon", "lime", "limon"}, CaloriesPerGram: 0.29, GramsPerUnit: 80, CaloriesPerUnit: 20},
	{Keywords: []string{"milho", "corn", "maiz"}, CaloriesPerGram: 0.86, GramsPerUnit: 285},
	{Keywords: []string{"feijao", "bean", "frijol", "lentilha", "lentil"}, CaloriesPerGram: 1.3, GramsPerUnit: 400},
	{Keywords: []string{"coco", "coconut"}, CaloriesPerGram: 6.6, Density: 0.35},
	{Keywords: []string{"amendoim", "peanut", "pasta de amendoim"}, CaloriesPerGram: 5.7},
	{Keywords: []string{"castanha", "nozes", "walnut", "amendoa", "almond", "nuts"}, CaloriesPerGram: 6.5},
	{Keywords: []string{"fermento", "baking powder", "levadura", "yeast"}, CaloriesPerGram: 1.0, GramsPerUnit: 10},
	{Keywords: []string{"baunilha", "vanilla", "vainilla"}, CaloriesPerGram: 2.9, Density: 1.05},
	{Keywords: []string{"canela", "cinnamon", "cannelle"}, CaloriesPerGram: 2.5, Density: 0.56},
	{Keywords: []string{"agua", "water", "eau"}, CaloriesPerGram: 0.01, Density: 1.0},
	{Keywords: []string{"sal", "salt", "sel"}, CaloriesPerGram: 0.01, Density: 1.2},
}

// LookupProfile 以食材名稱查詢熱量檔案
// 不分大小寫的子字串比對，先宣告者優先；查無回傳 nil
func LookupProfile(name string) *CalorieProfile {
	cleaned := StripDiacritics(strings.ToLower(strings.TrimSpace(name)))
	if cleaned == "" {
		return nil
	}
	for i := range CalorieProfiles {
		for _, kw := range CalorieProfiles[i].Keywords {
			if strings.Contains(cleaned, kw) {
				return &CalorieProfiles[i]
			}
		}
	}
	return nil
}
