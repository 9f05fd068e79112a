package main

import (
	"flag"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) (runMode, error) {
	t.Helper()
	fs := flag.NewFlagSet("brainrot", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return parseMode(fs, args)
}

func TestParseModeExactlyOne(t *testing.T) {
	mode, err := parse(t, "--random")
	require.NoError(t, err)
	require.True(t, mode.random)

	mode, err = parse(t, "--topic", "The Fanum Tax: A Game Theory Analysis")
	require.NoError(t, err)
	require.True(t, mode.topicSet)
	require.Equal(t, "The Fanum Tax: A Game Theory Analysis", mode.topic)

	mode, err = parse(t, "--research")
	require.NoError(t, err)
	require.True(t, mode.research)
}

func TestParseModeEmptyTopicIsExplicit(t *testing.T) {
	mode, err := parse(t, "--topic", "")
	require.NoError(t, err, "a present --topic counts even with an empty value")
	require.True(t, mode.topicSet)
	require.Equal(t, "", mode.topic)
}

func TestParseModeRejectsNoneOrMany(t *testing.T) {
	_, err := parse(t)
	require.Error(t, err)

	_, err = parse(t, "--random", "--research")
	require.Error(t, err)

	_, err = parse(t, "--random", "--topic", "x")
	require.Error(t, err)
}
