package media

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	_ "image/jpeg" // 取樣輸出為 JPEG

	"recipe-ingest/internal/infrastructure/config"
	"recipe-ingest/internal/pkg/common"

	"go.uber.org/zap"
)

// 取樣位置偏向片尾，成品通常出現在影片最後
var framePositions = []float64{0.40, 0.60, 0.75, 0.85, 0.90, 0.95, 0.99}

// FrameSelector 封面畫面選擇器
type FrameSelector struct {
	config *config.Config
}

// NewFrameSelector 創建封面畫面選擇器
func NewFrameSelector(cfg *config.Config) *FrameSelector {
	return &FrameSelector{config: cfg}
}

// frameStats 單一候選畫面的統計量
type frameStats struct {
	meanR, meanG, meanB       float64
	stddevR, stddevG, stddevB float64
	entropy                   float64
}

// SelectCover 從完整影片位元組中挑出封面畫面
// 回傳 JPEG data URI；完全取不出畫面時回傳空字串與錯誤
// 暫存檔案不論成敗都會清除
func (f *FrameSelector) SelectCover(ctx context.Context, video common.MediaFile) (string, error) {
	tmpDir := filepath.Join(os.TempDir(), "frames-"+common.GenerateUUID())
	if err := os.MkdirAll(tmpDir, 0o700); err != nil {
		return "", fmt.Errorf("frame extraction failed: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	videoPath := filepath.Join(tmpDir, "input")
	if err := os.WriteFile(videoPath, video.Data, 0o600); err != nil {
		return "", fmt.Errorf("frame extraction failed: %w", err)
	}

	duration, err := f.probeDuration(ctx, videoPath)
	if err != nil {
		return "", err
	}

	bestScore := math.Inf(-1)
	var bestFrame []byte
	extracted := 0

	for i, pos := range framePositions {
		framePath := filepath.Join(tmpDir, fmt.Sprintf("frame-%d.jpg", i))
		if err := f.extractFrame(ctx, videoPath, framePath, duration*pos); err != nil {
			common.LogMediaProcessing("warn", "畫面取樣失敗",
				zap.Int("index", i),
				zap.Float64("position", pos),
				zap.String("reason", err.Error()),
			)
			continue
		}

		data, err := os.ReadFile(framePath)
		if err != nil {
			continue
		}
		stats, err := computeFrameStats(data)
		if err != nil {
			continue
		}
		extracted++

		score := compositeScore(stats, i, len(framePositions))
		// 嚴格大於：同分時先出現的畫面保持領先
		if score > bestScore {
			bestScore = score
			bestFrame = data
		}
	}

	if bestFrame == nil {
		return "", fmt.Errorf("frame extraction failed: no usable frame out of %d positions", len(framePositions))
	}

	common.LogMediaProcessing("info", "封面畫面已選定",
		zap.Int("candidates", extracted),
		zap.Float64("score", bestScore),
	)

	encoded := base64.StdEncoding.EncodeToString(bestFrame)
	return "data:image/jpeg;base64," + encoded, nil
}

// probeDuration 透過 ffprobe 取得影片長度（秒）
func (f *FrameSelector) probeDuration(ctx context.Context, videoPath string) (float64, error) {
	cmd := exec.CommandContext(ctx, f.config.Media.FfprobePath,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		videoPath,
	)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("frame extraction failed: ffprobe: %w", err)
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil || duration <= 0 {
		return 0, fmt.Errorf("frame extraction failed: invalid duration %q", strings.TrimSpace(string(output)))
	}
	return duration, nil
}

// extractFrame 在指定秒數截一張圖，等比縮到設定寬度
func (f *FrameSelector) extractFrame(ctx context.Context, videoPath, framePath string, seconds float64) error {
	cmd := exec.CommandContext(ctx, f.config.Media.FfmpegPath,
		"-ss", fmt.Sprintf("%.3f", seconds),
		"-i", videoPath,
		"-frames:v", "1",
		"-vf", fmt.Sprintf("scale=%d:-1", f.config.Frames.Width),
		"-q:v", "2",
		"-y",
		framePath,
	)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg: %v (%s)", err, strings.TrimSpace(string(output)))
	}
	return nil
}

// computeFrameStats 計算各通道的平均值與標準差，以及灰階熵
func computeFrameStats(data []byte) (frameStats, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return frameStats{}, err
	}

	bounds := img.Bounds()
	total := float64(bounds.Dx() * bounds.Dy())
	if total == 0 {
		return frameStats{}, fmt.Errorf("empty frame")
	}

	var sumR, sumG, sumB float64
	var sumSqR, sumSqG, sumSqB float64
	var histogram [256]float64

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r16, g16, b16, _ := img.At(x, y).RGBA()
			r := float64(r16 >> 8)
			g := float64(g16 >> 8)
			b := float64(b16 >> 8)

			sumR += r
			sumG += g
			sumB += b
			sumSqR += r * r
			sumSqG += g * g
			sumSqB += b * b

			gray := int(0.299*r + 0.587*g + 0.114*b)
			if gray > 255 {
				gray = 255
			}
			histogram[gray]++
		}
	}

	stats := frameStats{
		meanR: sumR / total,
		meanG: sumG / total,
		meanB: sumB / total,
	}
	stats.stddevR = math.Sqrt(math.Max(0, sumSqR/total-stats.meanR*stats.meanR))
	stats.stddevG = math.Sqrt(math.Max(0, sumSqG/total-stats.meanG*stats.meanG))
	stats.stddevB = math.Sqrt(math.Max(0, sumSqB/total-stats.meanB*stats.meanB))

	for _, count := range histogram {
		if count == 0 {
			continue
		}
		p := count / total
		stats.entropy -= p * math.Log2(p)
	}

	return stats, nil
}

// compositeScore 候選畫面的綜合分數
// 偏好：細節多、對比高、暖色調、靠近片尾、亮度適中
func compositeScore(s frameStats, index, totalCount int) float64 {
	warmth := math.Max(0, 1.2*s.meanR+0.8*s.meanG-1.5*s.meanB)

	maxMean := math.Max(s.meanR, math.Max(s.meanG, s.meanB))
	minMean := math.Min(s.meanR, math.Min(s.meanG, s.meanB))
	saturation := maxMean - minMean

	variance := (s.stddevR + s.stddevG + s.stddevB) / 3

	recencyBoost := float64(index) / float64(totalCount) * 40

	brightness := (s.meanR + s.meanG + s.meanB) / 3
	var brightnessPenalty float64
	switch {
	case brightness < 40:
		brightnessPenalty = -100
	case brightness > 230:
		brightnessPenalty = -50
	}

	var wellLitBonus float64
	if brightness > 60 && brightness < 200 {
		wellLitBonus = 20
	}

	return s.entropy*40 + variance*5 + warmth*2.5 + saturation*2.0 +
		recencyBoost + wellLitBonus + brightnessPenalty
}
