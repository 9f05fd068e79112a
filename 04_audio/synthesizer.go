package audio

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"brainrot-pipeline/config"
	"brainrot-pipeline/types"
)

// Synthesizer turns narration text into per-scene WAV files. The engine
// is resolved once at construction and shared by every call, so the
// pipeline pays the setup cost a single time and tests can substitute a
// fake command.
type Synthesizer struct {
	cfg     *config.Config
	command string
}

// New resolves the TTS engine: the TTS_COMMAND env override first, then
// edge-tts on PATH.
func New(cfg *config.Config) (*Synthesizer, error) {
	command := strings.TrimSpace(os.Getenv("TTS_COMMAND"))
	if command == "" {
		if _, err := exec.LookPath("edge-tts"); err != nil {
			return nil, fmt.Errorf("no TTS engine found: set TTS_COMMAND or install edge-tts (pip install edge-tts)")
		}
		command = "edge-tts"
		log.Println("[audio] Using edge-tts as TTS engine")
	}
	return &Synthesizer{cfg: cfg, command: command}, nil
}

// Run synthesizes narration for every scene into outputDir as
// tts_<id>.wav. Paths are index-aligned with the scene list; the failure
// policy matches the image generator's.
func (s *Synthesizer) Run(ctx context.Context, scenes []types.Scene, outputDir string) ([]string, []error, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, nil, fmt.Errorf("create audio dir: %w", err)
	}

	paths := make([]string, len(scenes))
	sceneErrs := make([]error, len(scenes))

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(s.cfg.Pipeline.Workers)

	for i := range scenes {
		i := i
		scene := scenes[i]
		eg.Go(func() error {
			log.Printf("[audio] Scene %d/%d: synthesizing narration...", i+1, len(scenes))
			out := filepath.Join(outputDir, fmt.Sprintf("tts_%d.wav", scene.SceneID))
			if err := s.Synthesize(gctx, scene.Narration, out); err != nil {
				if s.cfg.Pipeline.ContinueOnSceneFailure {
					log.Printf("[audio] ⚠️  Scene %d TTS failed: %v — continuing", scene.SceneID, err)
					sceneErrs[i] = err
					return nil
				}
				return fmt.Errorf("scene %d TTS: %w", scene.SceneID, err)
			}
			paths[i] = out
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}

	ok := 0
	for _, p := range paths {
		if p != "" {
			ok++
		}
	}
	log.Printf("[audio] ✅ %d/%d narration clips synthesized", ok, len(scenes))
	return paths, sceneErrs, nil
}

// Synthesize writes one narration clip, retrying transient engine
// failures with linear backoff
func (s *Synthesizer) Synthesize(ctx context.Context, text, outFile string) error {
	var err error
	for attempt := 1; attempt <= s.cfg.Audio.MaxRetries; attempt++ {
		cmd := exec.CommandContext(ctx, s.command, s.buildArgs(text, outFile)...)
		cmd.Stderr = os.Stderr
		if err = cmd.Run(); err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if attempt < s.cfg.Audio.MaxRetries {
			log.Printf("[audio] TTS attempt %d failed: %v — retrying...", attempt, err)
			select {
			case <-time.After(time.Duration(attempt) * 2 * time.Second):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return err
}

// buildArgs maps the narration onto the resolved engine's CLI surface
func (s *Synthesizer) buildArgs(text, outFile string) []string {
	if s.command == "edge-tts" {
		return []string{
			"--voice", s.cfg.Audio.Voice,
			"--text", text,
			"--write-media", outFile,
		}
	}
	// Generic engine contract: --text "..." --output path
	return []string{"--text", text, "--output", outFile}
}
