package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"recipe-ingest/internal/pkg/common"
)

// BuildKey 由提示文字與媒體內容雜湊組成快取鍵
// 相同提示但不同媒體必須產生不同的鍵
func BuildKey(prompt string, media []common.MediaFile) string {
	h := sha256.New()
	h.Write([]byte(prompt))
	for _, m := range media {
		h.Write([]byte(m.MimeType))
		h.Write(m.Data)
	}
	if len(media) == 0 {
		return fmt.Sprintf("text:%s", hex.EncodeToString(h.Sum(nil)))
	}
	return fmt.Sprintf("multimodal:%s", hex.EncodeToString(h.Sum(nil)))
}
