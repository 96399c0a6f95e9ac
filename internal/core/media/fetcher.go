package media

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"recipe-ingest/internal/pkg/common"

	"go.uber.org/zap"
)

// 直接下載只接受這些內容類型前綴
var supportedMediaPrefixes = []string{"video/", "audio/", "image/"}

// fetchDirect 直接對 URL 發 GET，僅在回應為可播放媒體時成功
// 其他結果（HTML 頁面、錯誤狀態）都是可恢復失敗，交給下一個策略
func (s *Service) fetchDirect(ctx context.Context, rawURL string) (common.MediaFile, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		Get(rawURL)
	if err != nil {
		return common.MediaFile{}, fmt.Errorf("direct fetch failed: %w", err)
	}

	if resp.StatusCode() != 200 {
		return common.MediaFile{}, fmt.Errorf("direct fetch failed: status %d", resp.StatusCode())
	}

	contentType := resp.Header().Get("Content-Type")
	mimeType := strings.TrimSpace(strings.Split(contentType, ";")[0])

	supported := false
	for _, prefix := range supportedMediaPrefixes {
		if strings.HasPrefix(mimeType, prefix) {
			supported = true
			break
		}
	}
	if !supported {
		return common.MediaFile{}, fmt.Errorf("direct fetch failed: unsupported content-type %q", mimeType)
	}

	body := resp.Body()
	if len(body) == 0 {
		return common.MediaFile{}, fmt.Errorf("direct fetch failed: empty body")
	}

	common.LogMediaProcessing("info", "直接下載成功",
		zap.String("mime_type", mimeType),
		zap.Int("bytes", len(body)),
	)

	return common.MediaFile{
		Data:     body,
		MimeType: mimeType,
		Filename: filenameFromURL(rawURL),
	}, nil
}

// filenameFromURL 從 URL 路徑取檔名，取不到時給個通用名稱
func filenameFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "media"
	}
	name := path.Base(u.Path)
	if name == "" || name == "/" || name == "." {
		return "media"
	}
	return name
}
