package recipe

import (
	"context"
	"errors"
	"strings"
	"testing"

	aiservice "recipe-ingest/internal/core/ai/service"
	"recipe-ingest/internal/infrastructure/config"
	"recipe-ingest/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProvider 依 system 提示分流的假協作者
// 營養估算走 default 分支回傳錯誤，驗證估算失敗會被吞掉
type stubProvider struct{}

func (stubProvider) Generate(_ context.Context, system, _ string, _ []common.MediaFile) (string, error) {
	switch {
	case strings.Contains(system, "OCR engine"):
		return "Farinha 200 g\nAçúcar 100 g", nil
	case strings.Contains(system, "culinary editor"):
		return `{"title": "Bolo simples", ` +
			`"ingredients": [{"name": "farinha", "amount": "200", "unit": "g"}], ` +
			`"instructions": [{"step_number": 1, "description": "Misture tudo e asse."}]}`, nil
	default:
		return "", errors.New("unsupported request kind")
	}
}

func pipelineConfig() *config.Config {
	return &config.Config{
		Media: config.MediaConfig{
			MaxUploadSizeBytes: 1024,
			MaxUploadCount:     2,
		},
	}
}

func TestImportRejectsEmptyRequest(t *testing.T) {
	s := NewService(pipelineConfig(), nil, nil, nil)

	_, err := s.Import(context.Background(), &ImportRequest{})
	assert.ErrorIs(t, err, common.ErrNoContent)

	_, err = s.Import(context.Background(), &ImportRequest{Text: "   ", URL: ""})
	assert.ErrorIs(t, err, common.ErrNoContent)
}

func TestImportRejectsTooManyMedia(t *testing.T) {
	s := NewService(pipelineConfig(), nil, nil, nil)

	req := &ImportRequest{
		Media: []common.MediaFile{
			{Data: []byte("a"), MimeType: "image/jpeg"},
			{Data: []byte("b"), MimeType: "image/jpeg"},
			{Data: []byte("c"), MimeType: "image/jpeg"},
		},
	}

	_, err := s.Import(context.Background(), req)
	assert.ErrorIs(t, err, common.ErrTooManyMedia)
}

func TestImportRejectsOversizedMedia(t *testing.T) {
	s := NewService(pipelineConfig(), nil, nil, nil)

	req := &ImportRequest{
		Media: []common.MediaFile{
			{Data: make([]byte, 2048), MimeType: "video/mp4"},
		},
	}

	_, err := s.Import(context.Background(), req)
	assert.ErrorIs(t, err, common.ErrMediaTooLarge)
}

func TestImportMergesRecognizedTextIntoTranscript(t *testing.T) {
	cfg := pipelineConfig()
	s := NewService(cfg, aiservice.NewService(cfg, stubProvider{}, nil), nil, nil)

	req := &ImportRequest{
		Media: []common.MediaFile{
			{Data: []byte("fake-image"), MimeType: "image/jpeg", Filename: "receita.jpg"},
		},
		Text: "Receita de bolo da vovó.",
	}

	got, err := s.Import(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "Bolo simples", got.Title)
	assert.Contains(t, got.Transcript, "Farinha 200 g")
	assert.NotEmpty(t, got.Ingredients)
	assert.NotEmpty(t, got.Instructions)
	// 估算協作者失敗時退回啟發式，熱量標籤仍要有值
	assert.NotEmpty(t, got.Nutrition.TotalCalories)
}

func TestJoinSections(t *testing.T) {
	assert.Equal(t, "a\n\nb", joinSections("a", "", "b"))
	assert.Equal(t, "", joinSections("", "  ", ""))
	assert.Equal(t, "only", joinSections("only"))
}
