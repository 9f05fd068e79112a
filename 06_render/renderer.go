package render

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"brainrot-pipeline/config"
	"brainrot-pipeline/types"
)

// Renderer executes a choreography Sequence into a silent vertical video
type Renderer struct {
	cfg  *config.Config
	pick colorPicker
}

// New creates a new Renderer with a random accent-color picker
func New(cfg *config.Config) *Renderer {
	return &Renderer{
		cfg:  cfg,
		pick: func() string { return chaosColors[rand.Intn(len(chaosColors))] },
	}
}

// Run renders every scene plus the finale and returns the output path
// directly — callers never have to guess or scan for it.
func (r *Renderer) Run(ctx context.Context, script *types.Script, imagePaths []string, outputDir string) (string, error) {
	log.Printf("[render] Rendering %d scenes + finale at %dx%d@%dfps...",
		len(script.Scenes), r.cfg.Render.PixelWidth, r.cfg.Render.PixelHeight, r.cfg.Render.FPS)

	segDir := filepath.Join(outputDir, "segments")
	if err := os.MkdirAll(segDir, 0755); err != nil {
		return "", err
	}

	seq := BuildSequence(script, imagePaths, r.cfg, r.pick)

	var segFiles []string
	for i, seg := range seq.Segments {
		outFile := filepath.Join(segDir, fmt.Sprintf("seg_%02d_%s.mp4", i, seg.Name))
		log.Printf("[render] Segment %d/%d (%s, %.2fs)...", i+1, len(seq.Segments), seg.Name, seg.Duration)
		if err := r.renderSegment(ctx, seg, outFile); err != nil {
			return "", fmt.Errorf("render segment %s: %w", seg.Name, err)
		}
		segFiles = append(segFiles, outFile)
	}

	outFile := filepath.Join(outputDir, "silent_video.mp4")
	if err := r.concatSegments(ctx, segFiles, segDir, outFile); err != nil {
		return "", fmt.Errorf("concat segments: %w", err)
	}

	log.Printf("[render] ✅ Silent video ready: %s", outFile)
	return outFile, nil
}

// renderSegment renders one segment from a lavfi background plus the
// segment's filtergraph
func (r *Renderer) renderSegment(ctx context.Context, seg Segment, outFile string) error {
	w, h, fps := r.cfg.Render.PixelWidth, r.cfg.Render.PixelHeight, r.cfg.Render.FPS

	args := []string{"-y",
		"-f", "lavfi",
		"-i", fmt.Sprintf("color=c=%s:s=%dx%d:d=%.3f:r=%d", bgDark, w, h, seg.Duration, fps),
	}
	if seg.BGImage != "" {
		args = append(args,
			"-loop", "1",
			"-t", fmt.Sprintf("%.3f", seg.Duration),
			"-i", seg.BGImage,
		)
	}

	args = append(args,
		"-filter_complex", BuildFilter(seg, w, h, r.cfg.Render.BGOpacity),
		"-map", "[out]",
		"-t", fmt.Sprintf("%.3f", seg.Duration),
		"-r", fmt.Sprintf("%d", fps),
		"-c:v", "libx264",
		"-preset", "fast",
		"-crf", "22",
		"-pix_fmt", "yuv420p",
		"-an",
		outFile,
	)

	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg segment: %w", err)
	}
	return nil
}

// concatSegments joins the segment files in order with the concat demuxer
func (r *Renderer) concatSegments(ctx context.Context, segFiles []string, workDir, outFile string) error {
	listFile := filepath.Join(workDir, "segments_concat.txt")
	var lines []string
	for _, f := range segFiles {
		lines = append(lines, fmt.Sprintf("file '%s'", f))
	}
	if err := os.WriteFile(listFile, []byte(strings.Join(lines, "\n")), 0644); err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, "ffmpeg", "-y",
		"-f", "concat",
		"-safe", "0",
		"-i", listFile,
		"-c", "copy",
		outFile,
	)
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// BuildFilter translates a segment into one ffmpeg filtergraph. The
// background image, when present, is input 1 and is laid over the dark
// base at reduced opacity; every element becomes a drawtext or drawbox
// link in the chain.
func BuildFilter(seg Segment, w, h int, bgOpacity float64) string {
	var sb strings.Builder
	cur := "[0:v]"

	if seg.BGImage != "" {
		sb.WriteString(fmt.Sprintf(
			"[1:v]scale=%d:%d:force_original_aspect_ratio=increase,crop=%d:%d,format=rgba,colorchannelmixer=aa=%.2f[bg];",
			w, h, w, h, bgOpacity,
		))
		sb.WriteString("[0:v][bg]overlay=0:0[base];")
		cur = "[base]"
	}

	var filters []string
	for _, el := range seg.Elements {
		filters = append(filters, elementFilter(el, seg))
	}

	sb.WriteString(cur)
	sb.WriteString(strings.Join(filters, ","))
	sb.WriteString("[out]")
	return sb.String()
}

// elementFilter renders one element as a single filter expression
func elementFilter(el Element, seg Segment) string {
	if el.Kind == ElementFlash {
		return fmt.Sprintf(
			"drawbox=x=0:y=0:w=iw:h=ih:color=white:t=fill:enable='between(t,%.3f,%.3f)'",
			el.EnterAt, el.EnterAt+0.08,
		)
	}

	exitAt := el.ExitAt
	if exitAt <= 0 {
		exitAt = seg.Duration
	}

	return fmt.Sprintf(
		"drawtext=font=Arial:text='%s':fontsize=%d:fontcolor=%s:x='%s':y='%s':enable='between(t,%.3f,%.3f)'",
		escapeDrawtext(el.Text),
		el.FontSize,
		el.Color,
		xExpr(el),
		yExpr(el),
		el.EnterAt, exitAt,
	)
}

// xExpr builds the element's horizontal position expression: centered on
// its XPos fraction, with optional jitter and convergence toward frame
// center
func xExpr(el Element) string {
	base := fmt.Sprintf("(w*%.4f-text_w/2)", el.XPos)
	return posExpr(base, "(w-text_w)/2", el)
}

func yExpr(el Element) string {
	base := fmt.Sprintf("(h*%.4f-text_h/2)", el.YPos)
	return posExpr(base, "(h-text_h)/2", el)
}

// posExpr composes the base position with convergence and jitter terms
func posExpr(base, center string, el Element) string {
	expr := base
	if el.Converge != nil {
		// Linear pull from the base position to frame center over Dur,
		// clamped so the element stays centered afterwards
		expr = fmt.Sprintf(
			"%s+(%s-%s)*(1-clip(1-(t-%.3f)/%.3f,0,1))",
			base, center, base, el.Converge.At, el.Converge.Dur,
		)
	}
	if el.Jitter > 0 {
		expr = fmt.Sprintf("%s+(random(1)-0.5)*%.1f", expr, el.Jitter*2)
	}
	return expr
}

// escapeDrawtext escapes drawtext's metacharacters. Literal newlines are
// kept — drawtext renders them as line breaks.
func escapeDrawtext(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "'", "\\'")
	s = strings.ReplaceAll(s, ":", "\\:")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, "%", "\\%")
	return s
}
