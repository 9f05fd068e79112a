package compose

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"brainrot-pipeline/types"
)

func transcriptionFixture(words ...types.Word) types.Transcription {
	return types.Transcription{Segments: []types.Segment{{Words: words}}}
}

func TestBuildCuesGroupsWords(t *testing.T) {
	tr := transcriptionFixture(
		types.Word{Word: "the", Start: 0.0, End: 0.2},
		types.Word{Word: "mitochondria", Start: 0.2, End: 0.9},
		types.Word{Word: "is", Start: 0.9, End: 1.0},
		types.Word{Word: "literally", Start: 1.0, End: 1.5},
		types.Word{Word: "sigma", Start: 1.5, End: 2.0},
	)

	cues := BuildCues([]types.Transcription{tr}, []float64{0}, 1.0)
	require.Len(t, cues, 2)
	require.Equal(t, "the mitochondria is literally", cues[0].Text)
	require.Equal(t, "sigma", cues[1].Text)
	require.Equal(t, 0.0, cues[0].Start)
	require.Equal(t, 1.5, cues[0].End)
}

// Word times are clip-relative; the clip's offset in the concatenated
// narration shifts them, and the speed factor compresses them onto the
// final timeline.
func TestBuildCuesOffsetAndSpeed(t *testing.T) {
	tr := transcriptionFixture(types.Word{Word: "hello", Start: 1.0, End: 2.0})

	cues := BuildCues([]types.Transcription{tr}, []float64{4.0}, 2.0)
	require.Len(t, cues, 1)
	require.Equal(t, 2.5, cues[0].Start)
	require.Equal(t, 3.0, cues[0].End)
}

func TestBuildCuesSkipsMissingClips(t *testing.T) {
	present := transcriptionFixture(types.Word{Word: "kept", Start: 0.0, End: 0.5})
	skipped := transcriptionFixture(types.Word{Word: "dropped", Start: 0.0, End: 0.5})

	cues := BuildCues([]types.Transcription{skipped, present}, []float64{-1, 0}, 1.0)
	require.Len(t, cues, 1)
	require.Equal(t, "kept", cues[0].Text)
}

func TestWriteSRT(t *testing.T) {
	tr := transcriptionFixture(
		types.Word{Word: "skibidi", Start: 0.0, End: 0.4},
		types.Word{Word: "physics", Start: 0.4, End: 1.0},
	)
	out := filepath.Join(t.TempDir(), "captions.srt")

	require.NoError(t, WriteSRT([]types.Transcription{tr}, []float64{0}, 1.0, out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, "1\n00:00:00,000 --> 00:00:01,000\nskibidi physics\n\n", string(data))
}

func TestWriteSRTNoCues(t *testing.T) {
	out := filepath.Join(t.TempDir(), "captions.srt")
	require.Error(t, WriteSRT(nil, nil, 1.0, out))
}

func TestSRTTimestamp(t *testing.T) {
	require.Equal(t, "00:00:00,000", srtTimestamp(0))
	require.Equal(t, "00:01:05,250", srtTimestamp(65.25))
	require.Equal(t, "01:00:00,001", srtTimestamp(3600.001))
	require.Equal(t, "00:00:00,000", srtTimestamp(-1))
}
