package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"google.golang.org/genai"

	topic "brainrot-pipeline/01_topic"
	script "brainrot-pipeline/02_script"
	images "brainrot-pipeline/03_images"
	audio "brainrot-pipeline/04_audio"
	captions "brainrot-pipeline/05_captions"
	render "brainrot-pipeline/06_render"
	compose "brainrot-pipeline/07_compose"
	upload "brainrot-pipeline/08_upload"
	"brainrot-pipeline/config"
	"brainrot-pipeline/types"
)

const banner = `
 ____  ____    _    ___ _   _ ____   ___ _____
| __ )|  _ \  / \  |_ _| \ | |  _ \ / _ \_   _|
|  _ \| |_) |/ _ \  | ||  \| | |_) | | | || |
| |_) |  _ </ ___ \ | || |\  |  _ <| |_| || |
|____/|_| \_\_/   \_\___|_| \_|_| \_\\___/ |_|

   AI-Powered Brainrot Video Generator
   Gemini Script · Gemini Images · TTS · Whisper · FFmpeg
`

func main() {
	fmt.Print(banner)

	// Load .env (local dev only)
	_ = godotenv.Load()

	mode, err := parseMode(flag.NewFlagSet("brainrot", flag.ContinueOnError), os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "Usage: exactly one of --random, --topic <string>, or --research is required")
		os.Exit(1)
	}

	if os.Getenv("GEMINI_API_KEY") == "" {
		fmt.Fprintln(os.Stderr, "❌ Error: GEMINI_API_KEY environment variable is not set.")
		fmt.Fprintln(os.Stderr, "   Get a key at https://ai.google.dev/")
		os.Exit(1)
	}

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	runID := uuid.NewString()[:8]
	runDir := filepath.Join(cfg.Paths.Output, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		log.Fatalf("Failed to create run dir: %v", err)
	}

	log.Printf("🧠 Brainrot Pipeline starting — Run ID: %s", runID)
	log.Printf("📁 Output dir: %s", runDir)

	ctx := context.Background()
	start := time.Now()
	state := &types.PipelineState{
		RunID:     runID,
		StartedAt: time.Now().UTC().Format(time.RFC3339),
	}

	defer func() {
		state.CompletedAt = time.Now().UTC().Format(time.RFC3339)
		saveJSON(filepath.Join(runDir, "pipeline_state.json"), state)
		if state.Error != "" {
			log.Printf("❌ Pipeline failed: %s", state.Error)
			os.Exit(1)
		}
		log.Printf("✅ Done in %.1fs — final video: %s", time.Since(start).Seconds(), state.FinalVideo)
	}()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  os.Getenv("GEMINI_API_KEY"),
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		state.Error = fmt.Sprintf("Gemini client: %v", err)
		return
	}

	stageTimeout := time.Duration(cfg.Pipeline.StageTimeoutMin) * time.Minute

	// ─────────────────────────────────────────────
	// STAGE 1: Topic
	// ─────────────────────────────────────────────
	log.Println("\n━━━ STAGE 1: Topic ━━━")
	var chosen string
	switch {
	case mode.topicSet:
		chosen = topic.Pick(mode.topic)
	case mode.research:
		researcher, err := topic.NewResearcher(cfg)
		if err != nil {
			state.Error = fmt.Sprintf("Stage 1 Topic: %v", err)
			return
		}
		tctx, cancel := context.WithTimeout(ctx, stageTimeout)
		chosen, err = researcher.Run(tctx)
		cancel()
		if err != nil {
			state.Error = fmt.Sprintf("Stage 1 Topic: %v", err)
			return
		}
	default:
		chosen = topic.Random()
	}
	state.Topic = chosen
	log.Printf("[topic] Topic: %s", chosen)

	// ─────────────────────────────────────────────
	// STAGE 2: Script
	// ─────────────────────────────────────────────
	log.Println("\n━━━ STAGE 2: Script ━━━")
	writer := script.New(cfg, client)
	sctx, cancel := context.WithTimeout(ctx, stageTimeout)
	scr, err := writer.Run(sctx, chosen)
	cancel()
	if err != nil {
		state.Error = fmt.Sprintf("Stage 2 Script: %v", err)
		return
	}
	state.Script = scr
	saveJSON(filepath.Join(runDir, "script.json"), scr)

	// ─────────────────────────────────────────────
	// STAGE 3: Assets (images + narration)
	// ─────────────────────────────────────────────
	log.Println("\n━━━ STAGE 3: Asset Generation ━━━")
	imageGen := images.New(cfg, client)
	ictx, cancel := context.WithTimeout(ctx, stageTimeout)
	imagePaths, imageErrs, err := imageGen.Run(ictx, scr.Scenes, filepath.Join(runDir, "generated_assets"))
	cancel()
	if err != nil {
		state.Error = fmt.Sprintf("Stage 3 Images: %v", err)
		return
	}
	if err := scr.ValidateAligned("image", len(imagePaths)); err != nil {
		state.Error = fmt.Sprintf("Stage 3 Images: %v", err)
		return
	}
	state.ImageFiles = imagePaths
	recordSceneFailures(state, "image", imageErrs)

	synth, err := audio.New(cfg)
	if err != nil {
		state.Error = fmt.Sprintf("Stage 3 Audio: %v", err)
		return
	}
	actx, cancel := context.WithTimeout(ctx, stageTimeout)
	audioPaths, audioErrs, err := synth.Run(actx, scr.Scenes, filepath.Join(runDir, "audio"))
	cancel()
	if err != nil {
		state.Error = fmt.Sprintf("Stage 3 Audio: %v", err)
		return
	}
	if err := scr.ValidateAligned("audio", len(audioPaths)); err != nil {
		state.Error = fmt.Sprintf("Stage 3 Audio: %v", err)
		return
	}
	state.AudioFiles = audioPaths
	recordSceneFailures(state, "audio", audioErrs)

	// ─────────────────────────────────────────────
	// STAGE 4: Captions
	// ─────────────────────────────────────────────
	log.Println("\n━━━ STAGE 4: Captions ━━━")
	transcriber := captions.New(cfg)
	cctx, cancel := context.WithTimeout(ctx, stageTimeout)
	transcriptions, err := transcriber.Run(cctx, audioPaths, filepath.Join(runDir, "captions"))
	cancel()
	if err != nil {
		// Captions are a soft dependency: the compositor treats the
		// transcription list as optional input
		log.Printf("⚠️  Stage 4 Captions failed: %v — continuing without captions", err)
		transcriptions = nil
	}
	if transcriptions != nil {
		if err := scr.ValidateAligned("transcription", len(transcriptions)); err != nil {
			state.Error = fmt.Sprintf("Stage 4 Captions: %v", err)
			return
		}
	}

	// ─────────────────────────────────────────────
	// STAGE 5: Render
	// ─────────────────────────────────────────────
	log.Println("\n━━━ STAGE 5: Render ━━━")
	renderer := render.New(cfg)
	rctx, cancel := context.WithTimeout(ctx, stageTimeout)
	silentVideo, err := renderer.Run(rctx, scr, imagePaths, filepath.Join(runDir, "media"))
	cancel()
	if err != nil {
		state.Error = fmt.Sprintf("Stage 5 Render: %v", err)
		return
	}
	state.SilentVideo = silentVideo

	// ─────────────────────────────────────────────
	// STAGE 6: Compose
	// ─────────────────────────────────────────────
	log.Println("\n━━━ STAGE 6: Compose ━━━")
	compositor := compose.New(cfg)
	mctx, cancel := context.WithTimeout(ctx, stageTimeout)
	finalVideo, err := compositor.Run(mctx, silentVideo, audioPaths, transcriptions, filepath.Join(runDir, "final_brainrot.mp4"))
	cancel()
	if err != nil {
		state.Error = fmt.Sprintf("Stage 6 Compose: %v", err)
		return
	}
	state.FinalVideo = finalVideo

	// Optional SFX pass: one effect clip at each scene's narration start
	if sfxClips := compose.ScanSFXDir(cfg.Paths.SFX); len(sfxClips) > 0 {
		log.Printf("[compose] Layering %d SFX clip(s) at scene starts...", len(sfxClips))
		xctx, cancel := context.WithTimeout(ctx, stageTimeout)
		offsets, err := compositor.ClipOffsets(xctx, audioPaths)
		if err == nil {
			tracks := compose.SceneSFXTracks(offsets, sfxClips, cfg.Compose.Speed, cfg.Compose.SFXVolumeGain)
			withSFX, terr := compositor.RunTracks(xctx, finalVideo, tracks, filepath.Join(runDir, "final_brainrot_sfx.mp4"))
			err = terr
			if terr == nil {
				finalVideo = withSFX
				state.FinalVideo = withSFX
			}
		}
		cancel()
		if err != nil {
			// SFX are garnish: keep the composed video on failure
			log.Printf("⚠️  SFX pass failed: %v — keeping %s", err, finalVideo)
		}
	}

	// ─────────────────────────────────────────────
	// STAGE 7: Upload (optional)
	// ─────────────────────────────────────────────
	if cfg.Upload.Enabled {
		log.Println("\n━━━ STAGE 7: Upload ━━━")
		uploader := upload.New(cfg)
		meta := uploader.BuildMetadata(chosen, scr)
		state.Metadata = meta
		uctx, cancel := context.WithTimeout(ctx, stageTimeout)
		_, videoURL, err := uploader.Run(uctx, finalVideo, meta)
		cancel()
		if err != nil {
			state.Error = fmt.Sprintf("Stage 7 Upload: %v", err)
			return
		}
		state.YouTubeURL = videoURL
	}
}

// runMode is the topic selection the CLI flags chose
type runMode struct {
	random   bool
	topic    string
	topicSet bool
	research bool
}

// parseMode parses the CLI flags and enforces that exactly one topic
// mode was given. A present --topic counts even when its value is empty;
// the selector accepts empty topics.
func parseMode(fs *flag.FlagSet, args []string) (runMode, error) {
	random := fs.Bool("random", false, "pick a random brainrot topic")
	explicit := fs.String("topic", "", "specify a custom topic for the video")
	research := fs.Bool("research", false, "pull a trending topic from Reddit")
	if err := fs.Parse(args); err != nil {
		return runMode{}, err
	}

	mode := runMode{random: *random, topic: *explicit, research: *research}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "topic" {
			mode.topicSet = true
		}
	})

	modes := 0
	for _, on := range []bool{mode.random, mode.topicSet, mode.research} {
		if on {
			modes++
		}
	}
	if modes != 1 {
		return runMode{}, fmt.Errorf("exactly one of --random, --topic, or --research is required")
	}
	return mode, nil
}

// recordSceneFailures keeps per-scene asset failures visible in the run
// state without aborting the pipeline
func recordSceneFailures(state *types.PipelineState, kind string, errs []error) {
	for i, err := range errs {
		if err != nil {
			state.SceneFailures = append(state.SceneFailures,
				fmt.Sprintf("scene %d %s: %v", i+1, kind, err))
		}
	}
}

func saveJSON(path string, v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Printf("Warning: could not marshal JSON for %s: %v", path, err)
		return
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		log.Printf("Warning: could not save %s: %v", path, err)
	}
}
