package upload

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"brainrot-pipeline/config"
	"brainrot-pipeline/types"
)

func testUploader() *Uploader {
	return New(&config.Config{
		Upload: config.UploadConfig{
			Visibility: "public",
			CategoryID: "27",
		},
	})
}

func TestBuildMetadata(t *testing.T) {
	script := &types.Script{Title: "The Mitochondria Is The Sigma Of The Cell"}
	meta := testUploader().BuildMetadata("mitochondria", script)

	require.Equal(t, script.Title, meta.Title)
	require.Contains(t, meta.Description, "mitochondria")
	require.Contains(t, meta.Description, "#brainrot")
	require.Contains(t, meta.Description, "#genalpha", "tag spaces collapse in hashtags")
	require.Equal(t, "27", meta.CategoryID)
	require.Equal(t, "public", meta.Visibility)
	require.Equal(t, defaultTags, meta.Tags)
}

func TestFileSizeMB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "video.mp4")
	require.NoError(t, os.WriteFile(path, make([]byte, 2*1024*1024), 0644))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	require.Equal(t, 2.0, fileSizeMB(f))

	closed, err := os.Open(path)
	require.NoError(t, err)
	require.NoError(t, closed.Close())
	require.Equal(t, 0.0, fileSizeMB(closed), "an unstattable file reports 0 instead of failing")
}

func TestBuildMetadataTruncatesLongTitles(t *testing.T) {
	script := &types.Script{Title: strings.Repeat("SKIBIDI ", 20)}
	meta := testUploader().BuildMetadata("physics", script)

	require.Len(t, meta.Title, 95)
	require.Contains(t, meta.Description, script.Title, "description keeps the full title")
}
