package images

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
	"google.golang.org/genai"

	"brainrot-pipeline/config"
	"brainrot-pipeline/types"
)

// styleSuffix is appended to every scene prompt for a consistent look
const styleSuffix = "Style: vibrant neon colors on dark background, " +
	"9:16 vertical aspect ratio, digital art, " +
	"high contrast brainrot aesthetic, glowing elements."

// Generator creates per-scene background images via Gemini native image
// generation
type Generator struct {
	cfg    *config.Config
	client *genai.Client
}

// New creates a new image Generator sharing one Gemini client
func New(cfg *config.Config, client *genai.Client) *Generator {
	return &Generator{cfg: cfg, client: client}
}

// Run generates one image per scene into outputDir as scene_<id>.png.
// The returned path list is index-aligned with the scene list. Under the
// abort policy the first failure cancels the remaining scenes; under the
// continue policy failed scenes get an empty path and are reported in the
// index-aligned error list (the renderer tolerates the missing file).
func (g *Generator) Run(ctx context.Context, scenes []types.Scene, outputDir string) ([]string, []error, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, nil, fmt.Errorf("create image dir: %w", err)
	}

	paths := make([]string, len(scenes))
	sceneErrs := make([]error, len(scenes))

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.cfg.Pipeline.Workers)

	for i := range scenes {
		i := i
		scene := scenes[i]
		eg.Go(func() error {
			log.Printf("[images] Generating image for scene %d/%d...", i+1, len(scenes))
			out := filepath.Join(outputDir, fmt.Sprintf("scene_%d.png", scene.SceneID))
			if err := g.generateImage(gctx, scene.ImagePrompt, out); err != nil {
				if g.cfg.Pipeline.ContinueOnSceneFailure {
					log.Printf("[images] ⚠️  Scene %d image failed: %v — continuing", scene.SceneID, err)
					sceneErrs[i] = err
					return nil
				}
				return fmt.Errorf("scene %d image: %w", scene.SceneID, err)
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
	log.Printf("[images] ✅ %d/%d images generated", ok, len(scenes))
	return paths, sceneErrs, nil
}

// generateImage asks Gemini for combined image+text output and writes the
// first image part's raw bytes to outPath
func (g *Generator) generateImage(ctx context.Context, prompt, outPath string) error {
	decorated := fmt.Sprintf("%s. %s", prompt, styleSuffix)

	resp, err := g.client.Models.GenerateContent(
		ctx,
		g.cfg.Images.GeminiModel,
		genai.Text(decorated),
		&genai.GenerateContentConfig{
			ResponseModalities: []string{"IMAGE", "TEXT"},
		},
	)
	if err != nil {
		return fmt.Errorf("gemini image request: %w", err)
	}

	data, err := FirstImagePart(resp)
	if err != nil {
		return err
	}
	return os.WriteFile(outPath, data, 0644)
}

// FirstImagePart scans a response for the first part whose payload is
// declared as an image MIME type
func FirstImagePart(resp *genai.GenerateContentResponse) ([]byte, error) {
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && strings.HasPrefix(part.InlineData.MIMEType, "image/") {
				return part.InlineData.Data, nil
			}
		}
	}
	return nil, fmt.Errorf("no image part in gemini response")
}
