package media

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"recipe-ingest/internal/infrastructure/config"
	"recipe-ingest/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func acquireConfig() *config.Config {
	return &config.Config{
		Media: config.MediaConfig{
			FetchTimeout:    5 * time.Second,
			YtdlpPath:       "/nonexistent/yt-dlp",
			ScrapeTextLimit: 15000,
		},
	}
}

func TestAcquireDirectFetchSucceeds(t *testing.T) {
	payload := []byte{0xff, 0xd8, 0xff, 0xe0}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	s := NewService(acquireConfig())
	got, err := s.Acquire(context.Background(), srv.URL+"/dish.jpg")
	require.NoError(t, err)

	require.Len(t, got.Media, 1)
	assert.Equal(t, "image/jpeg", got.Media[0].MimeType)
	assert.Equal(t, payload, got.Media[0].Data)
	assert.Empty(t, got.Text)
}

func TestAcquireFallsBackToScrape(t *testing.T) {
	page := `<html><head>
		<meta property="og:image" content="/img/hero.jpg">
	</head><body>
		<p>Misture a farinha com o açúcar e asse por 40 minutos.</p>
	</body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	s := NewService(acquireConfig())
	got, err := s.Acquire(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Empty(t, got.Media)
	assert.Contains(t, got.Text, "Misture a farinha com o açúcar")
	assert.Equal(t, srv.URL+"/img/hero.jpg", got.HeroImage)
}

func TestAcquireAllStrategiesFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	s := NewService(acquireConfig())
	_, err := s.Acquire(context.Background(), srv.URL)
	require.Error(t, err)

	var custom *common.CustomError
	require.ErrorAs(t, err, &custom)
	assert.Equal(t, common.ErrCodeAcquisitionFailed, custom.Code)

	// 錯誤訊息要保留三個策略各自的失敗原因
	msg := err.Error()
	assert.Contains(t, msg, "all acquisition strategies failed")
	assert.Contains(t, msg, "direct fetch failed")
	assert.Contains(t, msg, "downloader failed")
	assert.Contains(t, msg, "scrape failed")
}
