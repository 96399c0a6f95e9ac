package openrouter

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"recipe-ingest/internal/infrastructure/config"
	"recipe-ingest/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const baseURL = "https://openrouter.ai/api/v1"

// Client OpenRouter API 客戶端
type Client struct {
	config *config.Config
	client *resty.Client
}

// Message 消息結構，Content 可為純文字或多模態內容片段
type Message struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

// TextPart 文本內容片段
type TextPart struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ImagePart 圖片內容片段（data URI）
type ImagePart struct {
	Type     string   `json:"type"`
	ImageURL ImageURL `json:"image_url"`
}

// ImageURL 圖片 URL 結構
type ImageURL struct {
	URL string `json:"url"`
}

// FilePart 檔案內容片段，用於音訊與影片
type FilePart struct {
	Type string   `json:"type"`
	File FileData `json:"file"`
}

// FileData 檔案資料結構
type FileData struct {
	Filename string `json:"filename"`
	FileData string `json:"file_data"`
}

// Request 表示 API 請求
type Request struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`
	Stream      bool      `json:"stream,omitempty"`
}

// Response OpenRouter 響應結構
type Response struct {
	ID      string    `json:"id"`
	Choices []Choice  `json:"choices"`
	Usage   UsageInfo `json:"usage"`
}

// Choice 選擇結構
type Choice struct {
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
}

// UsageInfo 使用量信息
type UsageInfo struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Error 表示 API 錯誤
type Error struct {
	Error struct {
		Message string      `json:"message"`
		Type    string      `json:"type"`
		Code    interface{} `json:"code"`
	} `json:"error"`
}

// NewClient 創建新的 OpenRouter 客戶端
func NewClient(cfg *config.Config) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.OpenRouter.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", "Bearer "+cfg.OpenRouter.APIKey).
		SetHeader("HTTP-Referer", "https://recipe-ingest.app").
		SetHeader("X-Title", "Recipe Ingest")

	return &Client{
		config: cfg,
		client: client,
	}
}

// Generate 發送多模態生成請求並回傳純文字內容
func (c *Client) Generate(ctx context.Context, system, prompt string, media []common.MediaFile) (string, error) {
	parts := []interface{}{
		TextPart{Type: "text", Text: prompt},
	}
	for _, m := range media {
		parts = append(parts, mediaPart(m))
	}

	messages := []Message{}
	if system != "" {
		messages = append(messages, Message{Role: "system", Content: system})
	}
	messages = append(messages, Message{Role: "user", Content: parts})

	req := &Request{
		Model:     c.config.OpenRouter.Model,
		Messages:  messages,
		MaxTokens: c.config.OpenRouter.MaxTokens,
	}

	common.LogInfo("Sending request to OpenRouter",
		zap.String("model", req.Model),
		zap.Int("media_count", len(media)),
		zap.Int("prompt_length", len(prompt)),
	)

	var response Response
	var apiErr Error
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&response).
		SetError(&apiErr).
		Post("/chat/completions")
	if err != nil {
		common.LogError("Failed to send request to AI service",
			zap.Error(err),
			zap.String("model", req.Model),
		)
		return "", fmt.Errorf("failed to send request: %w", err)
	}

	if resp.IsError() {
		common.LogError("AI service returned error status",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("model", req.Model),
			zap.String("error_message", apiErr.Error.Message),
		)
		return "", fmt.Errorf("AI service error (status %d): %s", resp.StatusCode(), apiErr.Error.Message)
	}

	if len(response.Choices) == 0 {
		common.LogError("Empty choices in AI service response",
			zap.String("model", req.Model),
		)
		return "", fmt.Errorf("empty choices in response")
	}

	content := response.Choices[0].Message.Content
	if len(content) == 0 {
		common.LogError("Empty content in AI service response",
			zap.String("model", req.Model),
		)
		return "", fmt.Errorf("empty content in response")
	}

	common.LogInfo("Successfully generated response from AI service",
		zap.String("model", req.Model),
		zap.Int("content_length", len(content)),
		zap.Int("total_tokens", response.Usage.TotalTokens),
	)

	return content, nil
}

// mediaPart 將媒體檔案轉為請求內容片段
// 圖片走 image_url，音訊與影片走 file 片段，皆以 data URI 內嵌
func mediaPart(m common.MediaFile) interface{} {
	encoded := base64.StdEncoding.EncodeToString(m.Data)
	dataURI := fmt.Sprintf("data:%s;base64,%s", m.MimeType, encoded)

	if m.IsImage() {
		return ImagePart{
			Type:     "image_url",
			ImageURL: ImageURL{URL: dataURI},
		}
	}

	filename := m.Filename
	if filename == "" {
		ext := "bin"
		if idx := strings.LastIndex(m.MimeType, "/"); idx >= 0 && idx < len(m.MimeType)-1 {
			ext = m.MimeType[idx+1:]
		}
		filename = "media." + ext
	}
	return FilePart{
		Type: "file",
		File: FileData{Filename: filename, FileData: dataURI},
	}
}

// Close 關閉客戶端
func (c *Client) Close() error {
	c.client.GetClient().CloseIdleConnections()
	return nil
}
