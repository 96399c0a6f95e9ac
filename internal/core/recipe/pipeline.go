package recipe

import (
	"context"
	"strings"
	"sync"

	aiservice "recipe-ingest/internal/core/ai/service"
	"recipe-ingest/internal/core/lang"
	"recipe-ingest/internal/core/media"
	"recipe-ingest/internal/core/nutrition"
	"recipe-ingest/internal/infrastructure/config"
	"recipe-ingest/internal/pkg/common"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ImportRequest 匯入請求
// Media、Text、URL 至少要有一項
type ImportRequest struct {
	Media        []common.MediaFile
	Text         string
	URL          string
	LanguageHint string
	Instructions string
}

// Service 食譜匯入管線
// 串接：取得媒體、轉錄/OCR 扇出、語言偵測、生成、修復、營養彙總、封面挑選
type Service struct {
	config *config.Config
	ai     *aiservice.Service
	media  *media.Service
	frames *media.FrameSelector
}

// NewService 創建匯入管線
func NewService(cfg *config.Config, aiSvc *aiservice.Service, mediaSvc *media.Service, frames *media.FrameSelector) *Service {
	return &Service{
		config: cfg,
		ai:     aiSvc,
		media:  mediaSvc,
		frames: frames,
	}
}

// Import 執行完整匯入流程並回傳修復後的食譜
func (s *Service) Import(ctx context.Context, req *ImportRequest) (*common.Recipe, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	files := req.Media
	scrapedText := ""
	heroImage := ""

	// 遠端取得：失敗即終止，取得失敗是使用者可處理的錯誤
	if req.URL != "" {
		acquired, err := s.media.Acquire(ctx, req.URL)
		if err != nil {
			return nil, err
		}
		files = append(files, acquired.Media...)
		scrapedText = acquired.Text
		heroImage = acquired.HeroImage
	}

	// 轉錄與 OCR 扇出：單項失敗降級為空字串，不拖垮整批
	transcripts, ocrTexts := s.fanOutExtraction(ctx, files, req.LanguageHint)

	transcript := strings.TrimSpace(strings.Join(nonEmpty(transcripts), "\n"))
	ocrText := strings.TrimSpace(strings.Join(nonEmpty(ocrTexts), "\n"))

	combined := joinSections(transcript, ocrText, req.Text, scrapedText)
	language := lang.Detect(combined, req.LanguageHint)

	common.LogInfo("匯入素材就緒",
		zap.Int("media_count", len(files)),
		zap.Int("combined_text_length", len(combined)),
		zap.String("language", language),
	)

	// 生成是整個請求的成敗點：修復後仍解析不了就整體失敗
	raw, err := s.ai.Generate(ctx, generationSystem, s.buildPrompt(req, combined, language), files)
	if err != nil {
		return nil, common.ErrGenerationFailed.WithErr(err)
	}

	recipe, err := ParsePayload(raw)
	if err != nil {
		return nil, common.ErrGenerationFailed.WithErr(err)
	}
	Repair(recipe)

	recipe.SourceURL = req.URL
	recipe.Language = language
	// 轉錄與 OCR 都屬於從媒體擷取出的原始文字，一併放進 transcript
	recipe.Transcript = joinSections(transcript, ocrText)

	// 營養估算是附加強化：失敗只記錄，退回啟發式
	estimate, err := s.ai.EstimateNutrition(ctx, recipe, combined)
	if err != nil {
		common.LogWarn("營養估算協作者失敗，改用啟發式",
			zap.Error(err),
		)
		estimate = nil
	}
	nutrition.Aggregate(recipe, estimate)

	recipe.CoverImage = s.selectCover(ctx, files, heroImage)

	return recipe, nil
}

// validate 驗證請求：必須有內容，媒體數量與大小都有上限
func (s *Service) validate(req *ImportRequest) error {
	if len(req.Media) == 0 && strings.TrimSpace(req.Text) == "" && strings.TrimSpace(req.URL) == "" {
		return common.ErrNoContent
	}
	if len(req.Media) > s.config.Media.MaxUploadCount {
		return common.ErrTooManyMedia
	}
	for _, m := range req.Media {
		if int64(len(m.Data)) > s.config.Media.MaxUploadSizeBytes {
			return common.ErrMediaTooLarge
		}
	}
	return nil
}

// fanOutExtraction 對所有媒體並行做轉錄與 OCR
// 每一項各自捕捉錯誤並降級為空字串，等全部完成後回傳
func (s *Service) fanOutExtraction(ctx context.Context, files []common.MediaFile, languageHint string) (transcripts, ocrTexts []string) {
	transcripts = make([]string, len(files))
	ocrTexts = make([]string, len(files))

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	// 同時最多四個協作者請求
	g.SetLimit(4)

	for i, file := range files {
		i, file := i, file
		switch {
		case file.IsVideo() || file.IsAudio():
			g.Go(func() error {
				text, err := s.ai.Transcribe(gctx, file, languageHint)
				if err != nil {
					common.LogWarn("單項轉錄失敗，以空字串繼續",
						zap.Int("index", i),
						zap.String("mime_type", file.MimeType),
						zap.Error(err),
					)
					return nil
				}
				mu.Lock()
				transcripts[i] = text
				mu.Unlock()
				return nil
			})
		case file.IsImage():
			g.Go(func() error {
				text, err := s.ai.RecognizeText(gctx, file)
				if err != nil {
					common.LogWarn("單項 OCR 失敗，以空字串繼續",
						zap.Int("index", i),
						zap.String("mime_type", file.MimeType),
						zap.Error(err),
					)
					return nil
				}
				mu.Lock()
				ocrTexts[i] = text
				mu.Unlock()
				return nil
			})
		}
	}

	// 每項任務都自行吞錯，Wait 不會回傳錯誤
	_ = g.Wait()
	return transcripts, ocrTexts
}

const generationSystem = "You are a culinary editor. You convert raw cooking content into a single structured recipe. " +
	"You respond with exactly one JSON object and nothing else."

// buildPrompt 組生成提示：固定 schema、語言指示與所有蒐集到的文字素材
func (s *Service) buildPrompt(req *ImportRequest, combined, language string) string {
	var sb strings.Builder

	sb.WriteString("Produce one recipe as a JSON object with exactly this shape:\n")
	sb.WriteString(`{"title": "", "description": "", "cuisine": "", "prep_time": "", "cook_time": "", "servings": "", ` +
		`"ingredients": [{"name": "", "amount": "", "unit": "", "notes": ""}], ` +
		`"instructions": [{"step_number": 1, "description": "", "timer_seconds": null}], ` +
		`"nutrition": {}, "tags": []}` + "\n")
	sb.WriteString("The fields title, ingredients and instructions are required. Omit nothing, use empty strings for unknowns.\n")

	if language != "" && language != lang.AutoLanguage {
		sb.WriteString("Write all recipe text in language " + language + ".\n")
	} else {
		sb.WriteString("Write all recipe text in the dominant language of the source material.\n")
	}

	if req.Instructions != "" {
		sb.WriteString("Additional instructions from the user:\n" + req.Instructions + "\n")
	}
	if req.URL != "" {
		sb.WriteString("Source URL: " + req.URL + "\n")
	}
	if combined != "" {
		sb.WriteString("Source material:\n" + combined + "\n")
	}
	if combined == "" {
		sb.WriteString("Derive the recipe from the attached media.\n")
	}

	return sb.String()
}

// selectCover 挑封面：先試第一支影片的畫面取樣，失敗退回網頁主圖，再不行就放棄
func (s *Service) selectCover(ctx context.Context, files []common.MediaFile, heroImage string) string {
	for _, file := range files {
		if !file.IsVideo() {
			continue
		}
		cover, err := s.frames.SelectCover(ctx, file)
		if err == nil {
			return cover
		}
		common.LogWarn("影片封面取樣失敗",
			zap.Error(err),
		)
		break
	}

	if heroImage != "" {
		cover, err := s.media.FetchHeroImage(ctx, heroImage)
		if err == nil {
			return cover
		}
		common.LogWarn("主圖下載失敗，不設封面",
			zap.Error(err),
		)
	}

	return ""
}

func nonEmpty(items []string) []string {
	var out []string
	for _, item := range items {
		if strings.TrimSpace(item) != "" {
			out = append(out, item)
		}
	}
	return out
}

func joinSections(sections ...string) string {
	return strings.TrimSpace(strings.Join(nonEmpty(sections), "\n\n"))
}
