package compose

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildTrackMixFilter(t *testing.T) {
	tracks := []Track{
		{Path: "tts_1.wav", StartSec: 0, Speed: 1.35},
		{Path: "tts_2.wav", StartSec: 4.5, Speed: 1.35},
		{Path: "vine_boom.wav", StartSec: 2.0, Volume: 1.5},
	}
	f := BuildTrackMixFilter(tracks, false)

	require.Contains(t, f, "[1:a]atempo=1.350,adelay=0|0[t1]")
	require.Contains(t, f, "[2:a]atempo=1.350,adelay=4500|4500[t2]")
	require.Contains(t, f, "[3:a]volume=1.50,adelay=2000|2000[t3]")
	require.Contains(t, f, "[t1][t2][t3]amix=inputs=3:duration=first:normalize=0[aout]")
}

// Layering effects over a video that already carries narration must mix
// the base stream in, not replace it.
func TestBuildTrackMixFilterKeepsBaseAudio(t *testing.T) {
	tracks := []Track{
		{Path: "boom.wav", StartSec: 0, Volume: 1.5},
		{Path: "boom.wav", StartSec: 5.4, Volume: 1.5},
	}
	f := BuildTrackMixFilter(tracks, true)

	require.Contains(t, f, "[0:a][t1][t2]amix=inputs=3:duration=first:normalize=0[aout]",
		"base audio is the first amix input and anchors duration=first")
}

func TestBuildTrackMixFilterUnitFactorsOmitted(t *testing.T) {
	f := BuildTrackMixFilter([]Track{{Path: "a.wav", StartSec: 1.0, Speed: 1.0, Volume: 1.0}}, false)
	require.NotContains(t, f, "atempo")
	require.NotContains(t, f, "volume")
	require.Contains(t, f, "adelay=1000|1000")
}

func TestScanSFXDir(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"boom.wav", "zap.MP3", "readme.txt", "thud.ogg"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}

	clips := ScanSFXDir(dir)
	require.Equal(t, []string{
		filepath.Join(dir, "boom.wav"),
		filepath.Join(dir, "thud.ogg"),
		filepath.Join(dir, "zap.MP3"),
	}, clips)

	require.Nil(t, ScanSFXDir(filepath.Join(dir, "missing")))
}

func TestSceneSFXTracks(t *testing.T) {
	clips := []string{"boom.wav", "zap.wav"}
	offsets := []float64{0, -1, 5.4, 10.8}

	tracks := SceneSFXTracks(offsets, clips, 1.35, 1.5)
	require.Len(t, tracks, 3, "scenes without narration get no effect")

	require.Equal(t, "boom.wav", tracks[0].Path)
	require.Equal(t, "zap.wav", tracks[1].Path)
	require.Equal(t, "boom.wav", tracks[2].Path, "clips cycle")

	require.InDelta(t, 4.0, tracks[1].StartSec, 1e-9, "offsets land on the sped-up timeline")
	require.Equal(t, 1.5, tracks[1].Volume)
	require.Zero(t, tracks[1].Speed)

	require.Nil(t, SceneSFXTracks(offsets, nil, 1.35, 1.5))
}

func TestNarrationAndSFXTracks(t *testing.T) {
	timings := []TimedClip{
		{StartSec: 0, Path: "tts_1.wav"},
		{StartSec: 5.2, Path: "tts_2.wav"},
	}

	narration := NarrationTracks(timings, 1.35)
	require.Len(t, narration, 2)
	require.Equal(t, 1.35, narration[0].Speed)
	require.Equal(t, 5.2, narration[1].StartSec)
	require.Zero(t, narration[0].Volume)

	sfx := SFXTracks([]TimedClip{{StartSec: 2.0, Path: "boom.wav"}}, 1.5)
	require.Len(t, sfx, 1)
	require.Equal(t, 1.5, sfx[0].Volume)
	require.Zero(t, sfx[0].Speed)
}
