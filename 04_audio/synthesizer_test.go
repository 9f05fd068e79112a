package audio

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"brainrot-pipeline/config"
	"brainrot-pipeline/types"
)

func testConfig() *config.Config {
	return &config.Config{
		Audio:    config.AudioConfig{Voice: "en-US-GuyNeural", MaxRetries: 1},
		Pipeline: config.PipelineConfig{Workers: 2},
	}
}

func testScenes() []types.Scene {
	return []types.Scene{
		{SceneID: 1, Narration: "The rizz field is divergence-free."},
		{SceneID: 2, Narration: "Ohio does not exist."},
	}
}

func TestNewRequiresAnEngine(t *testing.T) {
	t.Setenv("TTS_COMMAND", "")
	t.Setenv("PATH", t.TempDir()) // no edge-tts anywhere
	_, err := New(testConfig())
	require.Error(t, err)
}

func TestBuildArgsEdgeTTS(t *testing.T) {
	s := &Synthesizer{cfg: testConfig(), command: "edge-tts"}
	args := s.buildArgs("hello", "out.wav")
	require.Equal(t, []string{"--voice", "en-US-GuyNeural", "--text", "hello", "--write-media", "out.wav"}, args)
}

func TestBuildArgsGenericEngine(t *testing.T) {
	s := &Synthesizer{cfg: testConfig(), command: "/opt/tts/run.py"}
	args := s.buildArgs("hello", "out.wav")
	require.Equal(t, []string{"--text", "hello", "--output", "out.wav"}, args)
}

func TestRunPreservesSceneOrder(t *testing.T) {
	t.Setenv("TTS_COMMAND", "true") // always succeeds, writes nothing
	s, err := New(testConfig())
	require.NoError(t, err)

	dir := t.TempDir()
	paths, sceneErrs, err := s.Run(context.Background(), testScenes(), dir)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	require.Equal(t, filepath.Join(dir, "tts_1.wav"), paths[0])
	require.Equal(t, filepath.Join(dir, "tts_2.wav"), paths[1])
	for _, e := range sceneErrs {
		require.NoError(t, e)
	}
}

func TestRunAbortPolicy(t *testing.T) {
	t.Setenv("TTS_COMMAND", "false") // always fails
	s, err := New(testConfig())
	require.NoError(t, err)

	_, _, err = s.Run(context.Background(), testScenes(), t.TempDir())
	require.Error(t, err)
}

func TestRunContinuePolicyReportsPerScene(t *testing.T) {
	t.Setenv("TTS_COMMAND", "false")
	cfg := testConfig()
	cfg.Pipeline.ContinueOnSceneFailure = true
	s, err := New(cfg)
	require.NoError(t, err)

	paths, sceneErrs, err := s.Run(context.Background(), testScenes(), t.TempDir())
	require.NoError(t, err, "continue policy must not abort the batch")
	require.Len(t, paths, 2)
	for i := range paths {
		require.Empty(t, paths[i])
		require.Error(t, sceneErrs[i])
	}
}
