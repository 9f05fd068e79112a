package script

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"google.golang.org/genai"

	"brainrot-pipeline/config"
	"brainrot-pipeline/types"
)

const systemPrompt = `You are a brainrot video script writer in the style of 3Blue1Brown meets
internet brain-rot culture. You produce scripts for short-form vertical
videos (30-60 seconds) that apply serious math/science presentation to
absurd Gen-Alpha meme concepts.

RULES:
- The script must have 5-7 scenes.
- Each scene needs: narration text (1-2 sentences), a visual description
  for an image prompt, and a list of on-screen math/text elements.
- Use brainrot vocabulary: Skibidi, Sigma, Rizz, Ohio, Gyatt, Aura, Mog,
  Fanum Tax, Mewing, Looksmaxxing, etc.
- Include at least 2 fake LaTeX-style equations.
- The tone is deadpan educational — present memes as if they are
  serious academic discoveries.
- Keep narration SHORT and punchy for TTS.

OUTPUT FORMAT — respond with ONLY valid JSON matching this schema:
{
  "title": "string",
  "scenes": [
    {
      "scene_id": 1,
      "narration": "TTS text for this scene",
      "image_prompt": "Detailed image generation prompt for background visual",
      "math_elements": ["LaTeX string or on-screen text"],
      "duration_hint": 5
    }
  ]
}`

// Writer generates scripts using the Gemini API
type Writer struct {
	cfg    *config.Config
	client *genai.Client
}

// New creates a new script Writer sharing one Gemini client
func New(cfg *config.Config, client *genai.Client) *Writer {
	return &Writer{cfg: cfg, client: client}
}

// Run generates a full brainrot script for the topic. A service failure
// or a malformed response is fatal — no retry, no substituted default.
func (w *Writer) Run(ctx context.Context, topic string) (*types.Script, error) {
	log.Printf("[script] Generating script via Gemini (%s)...", w.cfg.Script.GeminiModel)

	resp, err := w.client.Models.GenerateContent(
		ctx,
		w.cfg.Script.GeminiModel,
		genai.Text(fmt.Sprintf("Write a brainrot video script about: %s", topic)),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
			Temperature:       genai.Ptr(float32(w.cfg.Script.Temperature)),
			MaxOutputTokens:   int32(w.cfg.Script.MaxOutputTokens),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("gemini script request: %w", err)
	}

	scr, err := Parse(resp.Text())
	if err != nil {
		return nil, err
	}

	log.Printf("[script] ✅ Script ready: %q, %d scenes", scr.Title, len(scr.Scenes))
	return scr, nil
}

// Parse turns raw model output into a validated Script. The raw payload
// is kept in the error for diagnostics when it does not parse.
func Parse(raw string) (*types.Script, error) {
	content := cleanJSON(raw)

	var scr types.Script
	if err := json.Unmarshal([]byte(content), &scr); err != nil {
		return nil, fmt.Errorf("parse script JSON: %w\nraw content: %s", err, truncate(content, 200))
	}

	scr.Normalize()
	if err := scr.Validate(); err != nil {
		return nil, err
	}
	return &scr, nil
}

// cleanJSON strips markdown fences if the model wraps its response in ```json ... ```
func cleanJSON(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
