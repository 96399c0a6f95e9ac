package media

import (
	"context"
	"fmt"
	"strings"

	"recipe-ingest/internal/pkg/common"

	"go.uber.org/zap"
)

// Acquisition 遠端內容取得結果
// 三種形態：可播放媒體、純文字（可附主圖）、失敗
type Acquisition struct {
	Media     []common.MediaFile
	Text      string
	HeroImage string
}

// Acquire 依序嘗試三種策略取得遠端內容
// 鏈是嚴格循序的：前一策略失敗才進入下一個，不做競速
// 全部失敗（或擷取不到任何文字）時，把各策略的失敗原因串接後回報
func (s *Service) Acquire(ctx context.Context, rawURL string) (*Acquisition, error) {
	var reasons []string

	// 策略一：直接下載
	file, err := s.fetchDirect(ctx, rawURL)
	if err == nil {
		return &Acquisition{Media: []common.MediaFile{file}}, nil
	}
	reasons = append(reasons, err.Error())
	common.LogMediaProcessing("warn", "直接下載失敗，改用下載工具",
		zap.String("url", rawURL),
		zap.String("reason", err.Error()),
	)

	// 策略二：外部下載工具
	file, err = s.downloadWithTool(ctx, rawURL)
	if err == nil {
		return &Acquisition{Media: []common.MediaFile{file}}, nil
	}
	reasons = append(reasons, err.Error())
	common.LogMediaProcessing("warn", "下載工具失敗，改用網頁擷取",
		zap.String("url", rawURL),
		zap.String("reason", err.Error()),
	)

	// 策略三：網頁擷取
	scraped, err := s.scrapePage(ctx, rawURL)
	if err == nil && scraped.Text != "" {
		return &Acquisition{Text: scraped.Text, HeroImage: scraped.HeroImage}, nil
	}
	if err != nil {
		reasons = append(reasons, err.Error())
	} else {
		reasons = append(reasons, "scrape failed: page contains no text")
	}

	common.LogMediaProcessing("error", "所有取得策略皆失敗",
		zap.String("url", rawURL),
		zap.Strings("reasons", reasons),
	)

	return nil, common.ErrAcquisitionFailed.WithErr(
		fmt.Errorf("all acquisition strategies failed: %s", strings.Join(reasons, "; ")),
	)
}
