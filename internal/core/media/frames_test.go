package media

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompositeScoreBrightnessPenaltyBeatsRecency(t *testing.T) {
	// well lit, detailed frame at the sixth sampling position
	wellLit := frameStats{
		meanR: 200, meanG: 180, meanB: 160,
		stddevR: 50, stddevG: 50, stddevB: 50,
		entropy: 7,
	}
	// blown out frame at the last position
	overexposed := frameStats{
		meanR: 250, meanG: 250, meanB: 250,
		stddevR: 5, stddevG: 5, stddevB: 5,
		entropy: 1,
	}

	earlier := compositeScore(wellLit, 5, 7)
	later := compositeScore(overexposed, 6, 7)

	assert.Greater(t, earlier, later)
}

func TestCompositeScoreNearBlackPenalty(t *testing.T) {
	dark := frameStats{meanR: 20, meanG: 20, meanB: 20, entropy: 3}
	lit := frameStats{meanR: 120, meanG: 110, meanB: 90, entropy: 3}

	assert.Greater(t, compositeScore(lit, 0, 7), compositeScore(dark, 0, 7))
}

func TestCompositeScoreRecencyBreaksSimilarFrames(t *testing.T) {
	stats := frameStats{
		meanR: 150, meanG: 130, meanB: 100,
		stddevR: 30, stddevG: 30, stddevB: 30,
		entropy: 6,
	}

	assert.Greater(t, compositeScore(stats, 6, 7), compositeScore(stats, 0, 7))
}

func TestCompositeScoreWarmthFavorsFoodTones(t *testing.T) {
	warm := frameStats{meanR: 180, meanG: 140, meanB: 80, entropy: 5}
	cool := frameStats{meanR: 80, meanG: 140, meanB: 180, entropy: 5}

	assert.Greater(t, compositeScore(warm, 0, 7), compositeScore(cool, 0, 7))
}

func TestComputeFrameStatsUniformImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, color.RGBA{R: 128, G: 128, B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95}))

	stats, err := computeFrameStats(buf.Bytes())
	require.NoError(t, err)

	assert.InDelta(t, 128, stats.meanR, 5)
	assert.InDelta(t, 128, stats.meanG, 5)
	assert.InDelta(t, 128, stats.meanB, 5)
	// a flat frame carries almost no detail
	assert.Less(t, stats.entropy, 1.0)
	assert.Less(t, stats.stddevR, 5.0)
}

func TestComputeFrameStatsRejectsGarbage(t *testing.T) {
	_, err := computeFrameStats([]byte("not an image"))
	assert.Error(t, err)
}
