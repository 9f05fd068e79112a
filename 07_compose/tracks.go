package compose

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
)

// Track is one independently placed audio clip: a start offset on the
// video timeline plus its own speed and volume scaling. Narration lines
// and sound effects are just two populations of tracks sharing this one
// mechanism.
type Track struct {
	Path     string
	StartSec float64
	Speed    float64 // 0 or 1 = unchanged
	Volume   float64 // 0 or 1 = unchanged
}

// NarrationTracks builds a track population from (start, path) timing
// pairs with a shared speed factor
func NarrationTracks(timings []TimedClip, speed float64) []Track {
	var tracks []Track
	for _, t := range timings {
		tracks = append(tracks, Track{Path: t.Path, StartSec: t.StartSec, Speed: speed})
	}
	return tracks
}

// SFXTracks builds a track population at normal speed with a volume boost
func SFXTracks(timings []TimedClip, gain float64) []Track {
	var tracks []Track
	for _, t := range timings {
		tracks = append(tracks, Track{Path: t.Path, StartSec: t.StartSec, Volume: gain})
	}
	return tracks
}

// TimedClip is a literal (start_time, filename) placement
type TimedClip struct {
	StartSec float64
	Path     string
}

// ScanSFXDir returns the sound-effect clips in dir, sorted by name.
// A missing or empty dir means no SFX pass.
func ScanSFXDir(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var clips []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".wav", ".mp3", ".ogg":
			clips = append(clips, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(clips)
	return clips
}

// SceneSFXTracks places one effect clip at each scene's narration start
// on the final (sped-up) timeline, cycling through the clip list.
// Negative offsets (scenes without narration) are skipped.
func SceneSFXTracks(offsets []float64, clips []string, speed, gain float64) []Track {
	if len(clips) == 0 {
		return nil
	}
	if speed <= 0 {
		speed = 1.0
	}
	var tracks []Track
	n := 0
	for _, off := range offsets {
		if off < 0 {
			continue
		}
		tracks = append(tracks, Track{
			Path:     clips[n%len(clips)],
			StartSec: off / speed,
			Volume:   gain,
		})
		n++
	}
	return tracks
}

// RunTracks layers every existing track onto the base video at its own
// start time and exports the result. Missing track files are skipped
// with a warning; a missing base video is fatal.
func (c *Compositor) RunTracks(ctx context.Context, videoPath string, tracks []Track, outPath string) (string, error) {
	if _, err := os.Stat(videoPath); err != nil {
		return "", fmt.Errorf("input video missing: %w", err)
	}

	var live []Track
	for _, t := range tracks {
		if _, err := os.Stat(t.Path); err != nil {
			log.Printf("[compose] Track missing, skipping: %s", t.Path)
			continue
		}
		live = append(live, t)
	}

	args := []string{"-y", "-i", videoPath}
	for _, t := range live {
		args = append(args, "-i", t.Path)
	}

	if len(live) == 0 {
		// No audio to mix — pass the video through unchanged
		args = append(args, "-c", "copy", outPath)
	} else {
		baseAudio, err := hasAudioStream(ctx, videoPath)
		if err != nil {
			return "", fmt.Errorf("probe audio streams: %w", err)
		}
		args = append(args,
			"-filter_complex", BuildTrackMixFilter(live, baseAudio),
			"-map", "0:v",
			"-map", "[aout]",
			"-c:v", "copy",
			"-c:a", "aac",
			"-b:a", "192k",
			outPath,
		)
	}

	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("ffmpeg track mix: %w", err)
	}

	log.Printf("[compose] ✅ Track mix exported: %s (%d tracks)", outPath, len(live))
	return outPath, nil
}

// BuildTrackMixFilter builds the additive mix filtergraph: per-track
// tempo, volume and delay, then a single amix over all of them. Track i
// corresponds to ffmpeg input i+1 (the video is input 0). When the base
// video carries audio, its stream is the first amix input so the
// existing narration survives the mix and anchors duration=first.
func BuildTrackMixFilter(tracks []Track, baseAudio bool) string {
	var parts []string
	var labels []string
	if baseAudio {
		labels = append(labels, "[0:a]")
	}

	for i, t := range tracks {
		var chain []string
		if t.Speed != 0 && t.Speed != 1.0 {
			chain = append(chain, fmt.Sprintf("atempo=%.3f", t.Speed))
		}
		if t.Volume != 0 && t.Volume != 1.0 {
			chain = append(chain, fmt.Sprintf("volume=%.2f", t.Volume))
		}
		delayMs := int(t.StartSec * 1000)
		chain = append(chain, fmt.Sprintf("adelay=%d|%d", delayMs, delayMs))

		label := fmt.Sprintf("[t%d]", i+1)
		parts = append(parts, fmt.Sprintf("[%d:a]%s%s", i+1, strings.Join(chain, ","), label))
		labels = append(labels, label)
	}

	parts = append(parts, fmt.Sprintf(
		"%samix=inputs=%d:duration=first:normalize=0[aout]",
		strings.Join(labels, ""), len(labels),
	))
	return strings.Join(parts, ";")
}
