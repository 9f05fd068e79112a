package captions

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"brainrot-pipeline/config"
	"brainrot-pipeline/types"
)

// Transcriber produces word-level timestamps for narration clips via the
// whisper CLI
type Transcriber struct {
	cfg *config.Config
}

// New creates a new Transcriber
func New(cfg *config.Config) *Transcriber {
	return &Transcriber{cfg: cfg}
}

// Run transcribes the ordered audio list into a positionally aligned
// transcription list. Empty path entries (scenes whose TTS failed under
// the continue policy) get an empty Transcription so alignment holds.
// Each whisper invocation loads the model, so the batch runs one clip at
// a time.
func (t *Transcriber) Run(ctx context.Context, audioPaths []string, outputDir string) ([]types.Transcription, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, err
	}

	results := make([]types.Transcription, len(audioPaths))
	for i, path := range audioPaths {
		if path == "" {
			log.Printf("[captions] Scene %d: no audio — skipping", i+1)
			continue
		}
		log.Printf("[captions] Transcribing scene %d/%d...", i+1, len(audioPaths))
		tr, err := t.Transcribe(ctx, path, outputDir)
		if err != nil {
			return nil, fmt.Errorf("scene %d transcription: %w", i+1, err)
		}
		results[i] = tr
	}

	log.Printf("[captions] ✅ %d transcriptions complete", len(results))
	return results, nil
}

// Transcribe runs whisper with word-level timestamps on one clip and
// parses its JSON output
func (t *Transcriber) Transcribe(ctx context.Context, audioPath, outputDir string) (types.Transcription, error) {
	cmd := exec.CommandContext(ctx,
		"whisper",
		audioPath,
		"--model", t.cfg.Captions.WhisperModel,
		"--language", t.cfg.Captions.Language,
		"--output_format", "json",
		"--output_dir", outputDir,
		"--word_timestamps", "True",
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return types.Transcription{}, fmt.Errorf("whisper failed: %w", err)
	}

	// Whisper writes <audio basename>.json into the output dir
	base := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	jsonPath := filepath.Join(outputDir, base+".json")
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return types.Transcription{}, fmt.Errorf("read whisper output: %w", err)
	}
	return ParseWhisperJSON(data)
}

// whisperResult mirrors the whisper CLI's JSON schema
type whisperResult struct {
	Text     string `json:"text"`
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Words []struct {
			Word  string  `json:"word"`
			Start float64 `json:"start"`
			End   float64 `json:"end"`
		} `json:"words"`
	} `json:"segments"`
}

// ParseWhisperJSON converts raw whisper JSON into a Transcription
func ParseWhisperJSON(data []byte) (types.Transcription, error) {
	var raw whisperResult
	if err := json.Unmarshal(data, &raw); err != nil {
		return types.Transcription{}, fmt.Errorf("parse whisper JSON: %w", err)
	}

	tr := types.Transcription{Text: strings.TrimSpace(raw.Text)}
	for _, seg := range raw.Segments {
		segment := types.Segment{Start: seg.Start, End: seg.End}
		for _, w := range seg.Words {
			segment.Words = append(segment.Words, types.Word{
				Word:  strings.TrimSpace(w.Word),
				Start: w.Start,
				End:   w.End,
			})
		}
		tr.Segments = append(tr.Segments, segment)
	}
	return tr, nil
}
