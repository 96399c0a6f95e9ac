package media

import (
	"time"

	"recipe-ingest/internal/infrastructure/config"

	"github.com/go-resty/resty/v2"
)

// 模擬瀏覽器的 User-Agent，部分網站會拒絕預設的 Go 客戶端
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// Service 媒體取得服務
// 封裝直接下載、外部下載工具與網頁擷取三種策略
type Service struct {
	config *config.Config
	client *resty.Client
}

// NewService 創建媒體取得服務
func NewService(cfg *config.Config) *Service {
	// 遠端媒體可能較大，逾時取設定值與 30 秒的較大者
	client := resty.New().
		SetTimeout(maxDuration(cfg.Media.FetchTimeout, 30*time.Second)).
		SetHeader("User-Agent", browserUserAgent).
		SetHeader("Accept-Language", "en-US,en;q=0.9").
		SetRetryCount(0).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(5))

	return &Service{
		config: cfg,
		client: client,
	}
}

func maxDuration(a, b time.Duration) time.Duration {
	if a > b {
		return a
	}
	return b
}
