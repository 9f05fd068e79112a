package compose

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"brainrot-pipeline/config"
	"brainrot-pipeline/types"
)

// Compositor muxes the silent render with narration audio and captions
// into the final exported video
type Compositor struct {
	cfg *config.Config
}

// New creates a new Compositor
func New(cfg *config.Config) *Compositor {
	return &Compositor{cfg: cfg}
}

// Run composes the final video: concatenated narration attached to the
// silent render, hard-truncated to the video's duration when longer,
// left short otherwise (silent tail), then the speed multiplier and
// optional caption burn-in, exported as H.264/AAC.
//
// A missing input video is fatal. Missing individual audio files are
// silently skipped so partial pipelines still produce output.
func (c *Compositor) Run(ctx context.Context, videoPath string, audioPaths []string, transcriptions []types.Transcription, outPath string) (string, error) {
	if _, err := os.Stat(videoPath); err != nil {
		return "", fmt.Errorf("input video missing: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return "", err
	}

	speed := c.cfg.Compose.Speed
	workDir := filepath.Dir(outPath)

	videoDur, err := probeDuration(ctx, videoPath)
	if err != nil {
		return "", fmt.Errorf("probe video duration: %w", err)
	}

	// Clips absent on disk are skipped; offsets track where each
	// surviving clip lands in the concatenated narration so caption
	// timings stay aligned.
	offsets, err := c.ClipOffsets(ctx, audioPaths)
	if err != nil {
		return "", err
	}
	var existing []string
	for i, p := range audioPaths {
		if offsets[i] >= 0 {
			existing = append(existing, p)
		}
	}

	combinedAudio := ""
	if len(existing) > 0 {
		combinedAudio = filepath.Join(workDir, "narration_combined.wav")
		if err := c.concatAudio(ctx, existing, workDir, combinedAudio); err != nil {
			return "", fmt.Errorf("concatenate narration: %w", err)
		}
	}

	srtFile := ""
	if c.cfg.Compose.BurnCaptions && len(transcriptions) > 0 {
		srtFile = filepath.Join(workDir, "captions.srt")
		if err := WriteSRT(transcriptions, offsets, speed, srtFile); err != nil {
			log.Printf("[compose] ⚠️  Caption generation failed: %v — continuing without captions", err)
			srtFile = ""
		}
	}

	if err := c.export(ctx, videoPath, combinedAudio, srtFile, videoDur, speed, outPath); err != nil {
		return "", fmt.Errorf("export final video: %w", err)
	}

	log.Printf("[compose] ✅ Final video: %s", outPath)
	return outPath, nil
}

// ClipOffsets probes each clip and returns its start offset in the
// concatenated narration. Missing or empty entries get -1.
func (c *Compositor) ClipOffsets(ctx context.Context, audioPaths []string) ([]float64, error) {
	offsets := make([]float64, len(audioPaths))
	cursor := 0.0
	for i, p := range audioPaths {
		offsets[i] = -1
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err != nil {
			log.Printf("[compose] Audio clip missing, skipping: %s", p)
			continue
		}
		dur, err := probeDuration(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("probe audio clip %s: %w", p, err)
		}
		offsets[i] = cursor
		cursor += dur
	}
	return offsets, nil
}

// concatAudio joins the narration clips in order with the concat demuxer
func (c *Compositor) concatAudio(ctx context.Context, paths []string, workDir, outFile string) error {
	listFile := filepath.Join(workDir, "narration_concat.txt")
	var lines []string
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			abs = p
		}
		lines = append(lines, fmt.Sprintf("file '%s'", abs))
	}
	if err := os.WriteFile(listFile, []byte(strings.Join(lines, "\n")), 0644); err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, "ffmpeg", "-y",
		"-f", "concat",
		"-safe", "0",
		"-i", listFile,
		"-c:a", "pcm_s16le",
		outFile,
	)
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// export runs the single mux pass: trim, attach, speed, caption burn
func (c *Compositor) export(ctx context.Context, videoPath, audioPath, srtFile string, videoDur, speed float64, outPath string) error {
	args := []string{"-y", "-i", videoPath}
	if audioPath != "" {
		args = append(args, "-i", audioPath)
	}

	vf := VideoFilter(speed, srtFile, c.cfg)
	args = append(args, "-filter_complex", buildExportFilter(vf, audioPath != "", videoDur, speed))
	args = append(args, "-map", "[v]")
	if audioPath != "" {
		args = append(args, "-map", "[a]")
	}

	args = append(args,
		"-c:v", "libx264",
		"-preset", "fast",
		"-c:a", "aac",
		"-b:a", "192k",
		"-r", fmt.Sprintf("%d", c.cfg.Render.FPS),
		"-movflags", "+faststart",
		outPath,
	)

	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// buildExportFilter assembles the filtergraph for the export pass. The
// audio chain trims to the video duration before the tempo change so the
// truncation law holds in source time.
func buildExportFilter(videoFilter string, hasAudio bool, videoDur, speed float64) string {
	var parts []string
	parts = append(parts, fmt.Sprintf("[0:v]%s[v]", videoFilter))
	if hasAudio {
		parts = append(parts, fmt.Sprintf("[1:a]%s[a]", AudioFilter(videoDur, speed)))
	}
	return strings.Join(parts, ";")
}

// VideoFilter builds the video-side chain: speed first, captions burned
// on the sped-up timeline. Speed exactly 1.0 is a no-op.
func VideoFilter(speed float64, srtFile string, cfg *config.Config) string {
	var chain []string
	if speed != 1.0 {
		chain = append(chain, fmt.Sprintf("setpts=PTS/%.3f", speed))
	}
	if srtFile != "" {
		chain = append(chain, fmt.Sprintf(
			"subtitles=%s:force_style='FontName=Arial,FontSize=%d,Bold=1,PrimaryColour=&H00FFFFFF,OutlineColour=&H00000000,Outline=2,Alignment=2,MarginV=%d'",
			escapeSubtitlePath(srtFile),
			cfg.Compose.FontSize,
			cfg.Compose.MarginBottom,
		))
	}
	if len(chain) == 0 {
		chain = append(chain, "null")
	}
	return strings.Join(chain, ",")
}

// AudioFilter builds the audio-side chain: hard truncation to the video
// duration, then the matching tempo change
func AudioFilter(videoDur, speed float64) string {
	chain := []string{fmt.Sprintf("atrim=duration=%.3f", videoDur), "asetpts=PTS-STARTPTS"}
	if speed != 1.0 {
		chain = append(chain, fmt.Sprintf("atempo=%.3f", speed))
	}
	return strings.Join(chain, ",")
}

// TrimmedAudioDuration returns the duration the attached narration track
// will have against a video of videoDur: never longer than the video,
// never padded when shorter.
func TrimmedAudioDuration(audioDur, videoDur float64) float64 {
	if audioDur > videoDur {
		return videoDur
	}
	return audioDur
}

func escapeSubtitlePath(path string) string {
	path = strings.ReplaceAll(path, "\\", "/")
	path = strings.ReplaceAll(path, ":", "\\:")
	return path
}

// hasAudioStream reports whether the file carries at least one audio
// stream
func hasAudioStream(ctx context.Context, path string) (bool, error) {
	out, err := exec.CommandContext(ctx, "ffprobe",
		"-v", "error",
		"-select_streams", "a",
		"-show_entries", "stream=index",
		"-of", "csv=p=0",
		path,
	).Output()
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(string(out)) != "", nil
}

// probeDuration reads a media file's duration via ffprobe
func probeDuration(ctx context.Context, path string) (float64, error) {
	out, err := exec.CommandContext(ctx, "ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	).Output()
	if err != nil {
		return 0, err
	}
	var dur float64
	_, err = fmt.Sscanf(strings.TrimSpace(string(out)), "%f", &dur)
	return dur, err
}
