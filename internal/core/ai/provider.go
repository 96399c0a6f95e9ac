package ai

import (
	"context"

	"recipe-ingest/internal/pkg/common"
)

// Provider 定義多模態生成協作者介面
// 接收系統指令、提示文字與零或多份行內媒體，回傳純文字內容
// 回傳內容可能是良構 JSON，也可能需要修復後重新解析
type Provider interface {
	Generate(ctx context.Context, system, prompt string, media []common.MediaFile) (string, error)
}
