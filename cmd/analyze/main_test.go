package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/solitaire-engine/game/config"
	"github.com/wricardo/solitaire-engine/game/engine"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := newCommand(&out).Run(context.Background(), append([]string{"analyze"}, args...))
	return out.String(), err
}

func TestLimits(t *testing.T) {
	out, err := run(t, "limits", "--free-cells", "1", "--stacks", "2")
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Equal(t, []string{"0", "1", "2", "4"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"1", "2", "4", "8"}, strings.Fields(lines[2]))
}

func TestLimits_OutOfRange(t *testing.T) {
	_, err := run(t, "limits", "--free-cells", "7")
	assert.Error(t, err)
}

func TestDeal(t *testing.T) {
	dir := t.TempDir()

	first, err := run(t, "deal", "--seed", "7", "--config-dir", dir)
	require.NoError(t, err)
	second, err := run(t, "deal", "--seed", "7", "--config-dir", dir)
	require.NoError(t, err)

	assert.Equal(t, first, second, "same seed must deal the same table")
	assert.Contains(t, first, "seed 7")
	assert.Contains(t, first, "play:7")
	assert.NotContains(t, first, "play:8")

	other, err := run(t, "deal", "--seed", "8", "--config-dir", dir)
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestDeal_UnknownVariant(t *testing.T) {
	_, err := run(t, "deal", "--config", "nope", "--config-dir", "/non/existent")
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrConfigNotFound)
}

func TestAutoplay(t *testing.T) {
	out, err := run(t, "autoplay", "--config", "easy", "--from", "1", "--to", "3", "--config-dir", t.TempDir())
	require.NoError(t, err)

	assert.Contains(t, out, "Average cleared")
	assert.Contains(t, out, "of 26")
}

func TestAutoplay_BadRange(t *testing.T) {
	_, err := run(t, "autoplay", "--from", "5", "--to", "1")
	assert.Error(t, err)
}

func TestPlaySeed(t *testing.T) {
	variant := engine.Presets()["normal"]

	r, err := playSeed(variant, 42)
	require.NoError(t, err)

	assert.Equal(t, int64(42), r.Seed)
	assert.LessOrEqual(t, r.Safe, r.Total)
	assert.LessOrEqual(t, r.Total, variant.Suits*engine.SuitLength)

	again, err := playSeed(variant, 42)
	require.NoError(t, err)
	assert.Equal(t, r, again)
}

func TestLoadVariant_CopiesCachedConfig(t *testing.T) {
	dir := t.TempDir()

	v, err := loadVariant(dir, "hard")
	require.NoError(t, err)
	v.Seed = 99

	again, err := loadVariant(dir, "hard")
	require.NoError(t, err)
	assert.Equal(t, int64(0), again.Seed)
}
