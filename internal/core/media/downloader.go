package media

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"recipe-ingest/internal/pkg/common"

	"go.uber.org/zap"
)

// mediaExtensions 副檔名到 MIME 類型的靜態對照
// 下載工具輸出的容器種類有限，未列出的影片類副檔名退回 video/mp4
var mediaExtensions = map[string]string{
	".mp4":  "video/mp4",
	".m4v":  "video/mp4",
	".mkv":  "video/x-matroska",
	".webm": "video/webm",
	".mov":  "video/quicktime",
	".avi":  "video/x-msvideo",
	".flv":  "video/x-flv",
	".mp3":  "audio/mpeg",
	".m4a":  "audio/mp4",
	".aac":  "audio/aac",
	".wav":  "audio/wav",
	".ogg":  "audio/ogg",
	".opus": "audio/opus",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// videoLikeExtensions 看起來像影片但不在對照表內的副檔名
var videoLikeExtensions = map[string]bool{
	".ts":  true,
	".3gp": true,
	".wmv": true,
	".mpg": true,
}

// downloadWithTool 透過外部下載工具取得媒體（社群平台連結等直接 GET 拿不到的來源）
// 工具設定為模擬瀏覽器、繞過地區限制、合併為單一容器且不做任何互動提示
// 無論成敗，暫存目錄都會清掉
func (s *Service) downloadWithTool(ctx context.Context, rawURL string) (common.MediaFile, error) {
	tmpDir := filepath.Join(os.TempDir(), "media-dl-"+common.GenerateUUID())
	if err := os.MkdirAll(tmpDir, 0o700); err != nil {
		return common.MediaFile{}, fmt.Errorf("downloader failed: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	outputTemplate := filepath.Join(tmpDir, "media.%(ext)s")
	cmd := exec.CommandContext(ctx, s.config.Media.YtdlpPath,
		"--user-agent", browserUserAgent,
		"--geo-bypass",
		"--merge-output-format", "mp4",
		"--quiet",
		"--no-warnings",
		"--no-progress",
		"--no-playlist",
		"-o", outputTemplate,
		rawURL,
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return common.MediaFile{}, fmt.Errorf("downloader failed: %v (%s)", err, strings.TrimSpace(string(output)))
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		return common.MediaFile{}, fmt.Errorf("downloader failed: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		mimeType, recognized := mediaExtensions[ext]
		if !recognized {
			if !videoLikeExtensions[ext] {
				continue
			}
			mimeType = "video/mp4"
		}

		data, err := os.ReadFile(filepath.Join(tmpDir, entry.Name()))
		if err != nil {
			return common.MediaFile{}, fmt.Errorf("downloader failed: %w", err)
		}

		common.LogMediaProcessing("info", "下載工具取得媒體",
			zap.String("filename", entry.Name()),
			zap.String("mime_type", mimeType),
			zap.Int("bytes", len(data)),
		)

		return common.MediaFile{
			Data:     data,
			MimeType: mimeType,
			Filename: entry.Name(),
		}, nil
	}

	return common.MediaFile{}, fmt.Errorf("downloader failed: no media file produced")
}
