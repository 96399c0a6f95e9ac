package recipe

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	recipecore "recipe-ingest/internal/core/recipe"
	"recipe-ingest/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 食譜匯入處理器
type Handler struct {
	pipeline *recipecore.Service
}

// NewHandler 創建匯入處理器
func NewHandler(pipeline *recipecore.Service) *Handler {
	return &Handler{pipeline: pipeline}
}

// importJSONRequest JSON 請求體（無檔案上傳時使用）
type importJSONRequest struct {
	Text         string `json:"text"`
	URL          string `json:"url"`
	Language     string `json:"language"`
	Instructions string `json:"instructions"`
}

// HandleImport 處理匯入請求
// 接受 multipart/form-data（media 欄位放檔案）或純 JSON 請求體
func (h *Handler) HandleImport(c *gin.Context) {
	req, err := h.parseRequest(c)
	if err != nil {
		common.LogWarn("匯入請求解析失敗",
			zap.Error(err),
			zap.String("client_ip", c.ClientIP()),
		)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid request body",
			"code":  common.ErrCodeInvalidRequest,
		})
		return
	}

	recipe, err := h.pipeline.Import(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recipe": recipe,
	})
}

// parseRequest 依內容類型解出匯入請求
func (h *Handler) parseRequest(c *gin.Context) (*recipecore.ImportRequest, error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		var body importJSONRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			return nil, err
		}
		return &recipecore.ImportRequest{
			Text:         body.Text,
			URL:          body.URL,
			LanguageHint: body.Language,
			Instructions: body.Instructions,
		}, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}

	req := &recipecore.ImportRequest{
		Text:         c.PostForm("text"),
		URL:          c.PostForm("url"),
		LanguageHint: c.PostForm("language"),
		Instructions: c.PostForm("instructions"),
	}

	for _, fileHeader := range form.File["media"] {
		file, err := readUpload(fileHeader)
		if err != nil {
			return nil, err
		}
		req.Media = append(req.Media, file)
	}

	return req, nil
}

// readUpload 讀取單一上傳檔案
func readUpload(fh *multipart.FileHeader) (common.MediaFile, error) {
	f, err := fh.Open()
	if err != nil {
		return common.MediaFile{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return common.MediaFile{}, err
	}

	mimeType := fh.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}

	return common.MediaFile{
		Data:     data,
		MimeType: mimeType,
		Filename: fh.Filename,
	}, nil
}

// writeError 將管線錯誤映射為 HTTP 響應
// 帶底層原因的錯誤（如各取得策略的失敗串接）會附在 details，呼叫端據此判斷補救方式
func (h *Handler) writeError(c *gin.Context, err error) {
	var custom *common.CustomError
	if errors.As(err, &custom) {
		common.LogWarn("匯入請求失敗",
			zap.String("code", custom.Code),
			zap.Error(err),
		)
		body := gin.H{
			"error": custom.Message,
			"code":  custom.Code,
		}
		if custom.Err != nil {
			body["details"] = custom.Err.Error()
		}
		c.JSON(custom.Status, body)
		return
	}

	common.LogError("匯入請求發生未預期錯誤", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "Internal server error",
		"code":  common.ErrCodeInternalError,
	})
}
