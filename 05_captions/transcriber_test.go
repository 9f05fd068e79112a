package captions

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const whisperFixture = `{
  "text": " Consider the rizz field.",
  "segments": [
    {
      "id": 0,
      "start": 0.0,
      "end": 2.1,
      "text": " Consider the rizz field.",
      "words": [
        {"word": " Consider", "start": 0.0, "end": 0.52, "probability": 0.98},
        {"word": " the", "start": 0.52, "end": 0.71, "probability": 0.99},
        {"word": " rizz", "start": 0.71, "end": 1.12, "probability": 0.61},
        {"word": " field.", "start": 1.12, "end": 2.1, "probability": 0.95}
      ]
    }
  ],
  "language": "en"
}`

func TestParseWhisperJSON(t *testing.T) {
	tr, err := ParseWhisperJSON([]byte(whisperFixture))
	require.NoError(t, err)

	require.Equal(t, "Consider the rizz field.", tr.Text)
	require.Len(t, tr.Segments, 1)

	seg := tr.Segments[0]
	require.Equal(t, 0.0, seg.Start)
	require.Equal(t, 2.1, seg.End)
	require.Len(t, seg.Words, 4)

	require.Equal(t, "Consider", seg.Words[0].Word, "words are trimmed")
	require.Equal(t, "rizz", seg.Words[2].Word)
	require.Equal(t, 0.71, seg.Words[2].Start)
	require.Equal(t, 1.12, seg.Words[2].End)
}

func TestParseWhisperJSONMalformed(t *testing.T) {
	_, err := ParseWhisperJSON([]byte("not json"))
	require.Error(t, err)
}

func TestParseWhisperJSONEmptySegments(t *testing.T) {
	tr, err := ParseWhisperJSON([]byte(`{"text": "", "segments": []}`))
	require.NoError(t, err)
	require.Empty(t, tr.Segments)
}
