package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"recipe-ingest/internal/core/ai"
	"recipe-ingest/internal/core/ai/cache"
	"recipe-ingest/internal/infrastructure/config"
	"recipe-ingest/internal/pkg/common"

	"go.uber.org/zap"
)

// ResponseCache 回應緩存介面，記憶體與 Redis 後端皆實作
type ResponseCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Service AI 服務，統一封裝生成、轉錄、OCR 與營養估算
type Service struct {
	config   *config.Config
	provider ai.Provider
	cache    ResponseCache
}

// NewService 創建 AI 服務
func NewService(cfg *config.Config, provider ai.Provider, responseCache ResponseCache) *Service {
	return &Service{
		config:   cfg,
		provider: provider,
		cache:    responseCache,
	}
}

// Generate 帶緩存的生成請求
func (s *Service) Generate(ctx context.Context, system, prompt string, media []common.MediaFile) (string, error) {
	key := cache.BuildKey(system+"\n"+prompt, media)

	if s.config.Cache.Enabled && s.cache != nil {
		if val, err := s.cache.Get(ctx, key); err == nil && val != "" {
			common.LogDebug("生成結果取自快取", zap.String("鍵", key))
			return val, nil
		}
	}

	content, err := s.provider.Generate(ctx, system, prompt, media)
	if err != nil {
		return "", err
	}

	if s.config.Cache.Enabled && s.cache != nil {
		_ = s.cache.Set(ctx, key, content)
	}

	return content, nil
}

const transcribeSystem = "You are a precise transcription engine for cooking videos and voice notes."

// Transcribe 將音訊或影片轉錄為純文字
// language 為明確語言碼時指定轉錄語言，否則由模型自行判斷
// 失敗回傳錯誤，由呼叫端決定是否降級為空轉錄
func (s *Service) Transcribe(ctx context.Context, m common.MediaFile, language string) (string, error) {
	var sb strings.Builder
	sb.WriteString("Transcribe the speech in the attached media file.\n")
	if language != "" && language != "auto" {
		fmt.Fprintf(&sb, "The speech is in language %q. Transcribe in that language.\n", language)
	} else {
		sb.WriteString("Detect the spoken language and transcribe in that same language.\n")
	}
	sb.WriteString("Use full sentences with punctuation. ")
	sb.WriteString("Mark unintelligible passages as [inaudible]. ")
	sb.WriteString("Return only the transcript text, with no preamble and no formatting.")

	start := time.Now()
	transcript, err := s.Generate(ctx, transcribeSystem, sb.String(), []common.MediaFile{m})
	common.LogAICall("transcription", time.Since(start), err, "")
	return transcript, err
}

const ocrSystem = "You are a precise OCR engine for photographed and scanned recipes."

// RecognizeText 擷取圖片中的文字
func (s *Service) RecognizeText(ctx context.Context, m common.MediaFile) (string, error) {
	prompt := "Extract all visible text from the attached image in natural reading order. " +
		"Preserve line breaks between separate blocks. " +
		"If the image contains no readable text, return an empty response. " +
		"Return only the extracted text, with no preamble and no formatting."

	start := time.Now()
	text, err := s.Generate(ctx, ocrSystem, prompt, []common.MediaFile{m})
	common.LogAICall("ocr", time.Since(start), err, "")
	return text, err
}

const nutritionSystem = "You are a nutrition analyst. You respond with a single JSON object and nothing else."

// EstimateNutrition 向協作者索取份數與熱量的建議估算
// contextText 為轉錄、OCR 與使用者文字的彙整，供模型參考原始脈絡
// 估算僅供參考：任何失敗都回傳錯誤，呼叫端應吞掉錯誤並退回啟發式
func (s *Service) EstimateNutrition(ctx context.Context, recipe *common.Recipe, contextText string) (*common.NutritionEstimate, error) {
	recipeJSON, err := common.ToJSON(recipe)
	if err != nil {
		return nil, fmt.Errorf("failed to encode recipe: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("Estimate portions and calories for this recipe.\n")
	fmt.Fprintf(&sb, "Recipe: %s\n", recipeJSON)
	if contextText != "" {
		fmt.Fprintf(&sb, "Source context:\n%s\n", contextText)
	}
	sb.WriteString("Respond with exactly this JSON shape, numbers only for numeric fields:\n")
	sb.WriteString(`{"portion_count": 0, "portion_description": "", "total_calories": 0, "calories_per_portion": 0, "reasoning": ""}`)

	start := time.Now()
	raw, err := s.Generate(ctx, nutritionSystem, sb.String(), nil)
	common.LogAICall("nutrition_estimate", time.Since(start), err, "")
	if err != nil {
		return nil, err
	}

	content := common.ExtractJSONObject(raw)
	var estimate common.NutritionEstimate
	if err := common.ParseJSON(content, &estimate); err != nil {
		repaired := common.RepairJSON(raw)
		if err2 := common.ParseJSON(repaired, &estimate); err2 != nil {
			return nil, fmt.Errorf("malformed nutrition estimate: %w", err)
		}
	}

	return &estimate, nil
}

// Close 釋放持有的資源
func (s *Service) Close() error {
	if s.cache != nil {
		return s.cache.Close()
	}
	return nil
}
