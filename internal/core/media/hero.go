package media

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"

	_ "image/gif" // 支援 GIF
	_ "image/png" // 支援 PNG

	_ "golang.org/x/image/webp" // 支援 WebP

	"recipe-ingest/internal/pkg/common"

	"go.uber.org/zap"
)

// FetchHeroImage 下載網頁擷取到的主圖並統一轉為 JPEG data URI
// 圖片無法下載或解碼時回傳錯誤，由呼叫端決定是否放棄封面
func (s *Service) FetchHeroImage(ctx context.Context, imageURL string) (string, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		Get(imageURL)
	if err != nil {
		return "", fmt.Errorf("failed to download hero image: %w", err)
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("failed to download hero image: status %d", resp.StatusCode())
	}

	imageBytes := resp.Body()
	if int64(len(imageBytes)) > s.config.Media.MaxUploadSizeBytes {
		return "", fmt.Errorf("hero image size exceeds maximum limit of %d bytes", s.config.Media.MaxUploadSizeBytes)
	}

	img, format, err := image.Decode(bytes.NewReader(imageBytes))
	if err != nil {
		return "", fmt.Errorf("failed to decode hero image: %w", err)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
		return "", fmt.Errorf("failed to encode hero image as JPEG: %w", err)
	}

	common.LogMediaProcessing("info", "主圖處理完成",
		zap.String("format", format),
		zap.Int("bytes", buf.Len()),
	)

	encoded := base64.StdEncoding.EncodeToString(buf.Bytes())
	return fmt.Sprintf("data:image/jpeg;base64,%s", encoded), nil
}
