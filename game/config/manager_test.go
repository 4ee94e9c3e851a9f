package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/solitaire-engine/game/engine"
)

func createValidConfig() *engine.GameConfig {
	return &engine.GameConfig{
		Name:        "Test Config",
		Description: "Test configuration",
		Variant:     engine.VariantFreeCell,
		Suits:       4,
		Stacks:      8,
		FreeCells:   4,
	}
}

func writeConfigFile(t *testing.T, dir, name string, config *engine.GameConfig) {
	t.Helper()
	data, err := json.MarshalIndent(config, "", "  ")
	require.NoError(t, err)

	filename := name
	if filepath.Ext(filename) == "" {
		filename = name + ".json"
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, filename), data, 0644))
}

func writeRaw(t *testing.T, dir, filename, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, filename), []byte(body), 0644))
}

func TestNewManager(t *testing.T) {
	t.Run("file overrides the default preset", func(t *testing.T) {
		dir := t.TempDir()
		config := createValidConfig()
		config.Name = "My Normal"
		writeConfigFile(t, dir, "normal", config)

		manager, err := NewManager(dir)
		require.NoError(t, err)
		assert.Equal(t, "My Normal", manager.GetDefault().Name)
	})

	t.Run("non-existent directory", func(t *testing.T) {
		_, err := NewManager("/non/existent/path")
		assert.Error(t, err)
	})

	t.Run("empty directory falls back to presets", func(t *testing.T) {
		manager, err := NewManager(t.TempDir())
		require.NoError(t, err)
		require.NotNil(t, manager.GetDefault())
		assert.Equal(t, DefaultConfigName, manager.GetDefault().Name)
	})

	t.Run("broken default file", func(t *testing.T) {
		dir := t.TempDir()
		writeRaw(t, dir, "normal.json", `{"name":"normal","suits":0}`)
		_, err := NewManager(dir)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestManager_LoadConfig(t *testing.T) {
	dir := t.TempDir()

	easy := createValidConfig()
	easy.Name = "Easy"
	easy.FreeCells = 2
	writeConfigFile(t, dir, "easy", easy)
	writeRaw(t, dir, "stairs.yaml", "name: Stairs\nvariant: staircase\nsuits: 8\nstacks: 8\nfree_cells: 4\n")

	manager, err := NewManager(dir)
	require.NoError(t, err)

	t.Run("load json config", func(t *testing.T) {
		config, err := manager.LoadConfig("easy")
		require.NoError(t, err)
		assert.Equal(t, "Easy", config.Name)
		assert.Equal(t, 2, config.FreeCells)
	})

	t.Run("load with extension", func(t *testing.T) {
		config, err := manager.LoadConfig("easy.json")
		require.NoError(t, err)
		assert.Equal(t, "Easy", config.Name)
	})

	t.Run("load yaml config", func(t *testing.T) {
		config, err := manager.LoadConfig("stairs")
		require.NoError(t, err)
		assert.Equal(t, engine.VariantStaircase, config.Variant)
		assert.Equal(t, 8, config.Suits)
	})

	t.Run("load from cache", func(t *testing.T) {
		config1, _ := manager.LoadConfig("easy")
		config2, err := manager.LoadConfig("easy")
		require.NoError(t, err)
		assert.Same(t, config1, config2)
	})

	t.Run("load preset", func(t *testing.T) {
		config, err := manager.LoadConfig("hard")
		require.NoError(t, err)
		assert.Equal(t, 12, config.Stacks)
		assert.Equal(t, 2.0, config.Difficulty)
	})

	t.Run("load non-existent config", func(t *testing.T) {
		_, err := manager.LoadConfig("non-existent")
		assert.ErrorIs(t, err, ErrConfigNotFound)
	})

	t.Run("load invalid config", func(t *testing.T) {
		writeRaw(t, dir, "invalid.json", `{"name": ""}`)
		_, err := manager.LoadConfig("invalid")
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("load malformed JSON", func(t *testing.T) {
		writeRaw(t, dir, "malformed.json", `{"name": "Malformed", invalid json}`)
		_, err := manager.LoadConfig("malformed")
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestManager_ListConfigs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"alpha", "beta", "hard"} {
		config := createValidConfig()
		config.Name = name
		writeConfigFile(t, dir, name, config)
	}
	writeRaw(t, dir, "gamma.yml", "name: gamma\nsuits: 2\nstacks: 6\nfree_cells: 1\n")
	writeRaw(t, dir, "broken.json", "{")
	writeRaw(t, dir, "readme.txt", "readme")

	manager, err := NewManager(dir)
	require.NoError(t, err)

	configList, err := manager.ListConfigs()
	require.NoError(t, err)

	byID := make(map[string]bool)
	builtin := make(map[string]bool)
	for _, info := range configList {
		byID[info.ConfigID] = true
		if info.Builtin {
			builtin[info.ConfigID] = true
		}
	}

	for _, id := range []string{"alpha", "beta", "gamma", "hard", "normal", "easy", "staircase"} {
		assert.True(t, byID[id], "missing %s", id)
	}
	assert.False(t, byID["broken"])
	assert.False(t, byID["readme"])
	assert.False(t, builtin["hard"], "file shadows the preset")
	assert.True(t, builtin["staircase"])
	assert.Len(t, configList, 7)
}

func TestManager_SaveConfig(t *testing.T) {
	dir := t.TempDir()
	manager, err := NewManager(dir)
	require.NoError(t, err)

	config := createValidConfig()
	config.Name = "Saved"
	require.NoError(t, manager.SaveConfig("saved", config))
	_, err = os.Stat(filepath.Join(dir, "saved.json"))
	require.NoError(t, err)

	yamlConfig := createValidConfig()
	yamlConfig.Name = "Saved YAML"
	require.NoError(t, manager.SaveConfig("saved2.yaml", yamlConfig))

	require.NoError(t, manager.RefreshCache())
	loaded, err := manager.LoadConfig("saved2")
	require.NoError(t, err)
	assert.Equal(t, "Saved YAML", loaded.Name)

	bad := createValidConfig()
	bad.Stacks = 0
	assert.ErrorIs(t, manager.SaveConfig("bad", bad), ErrInvalidConfig)
	assert.ErrorIs(t, manager.SaveConfig("../escape", config), ErrInvalidConfig)
}

func TestManager_SetDefault(t *testing.T) {
	manager, err := NewManager(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, manager.SetDefault("easy"))
	assert.Equal(t, "easy", manager.GetDefault().Name)
	assert.ErrorIs(t, manager.SetDefault("nope"), ErrConfigNotFound)
}

func TestManager_ConcurrentAccess(t *testing.T) {
	dir := t.TempDir()
	for i := 1; i <= 5; i++ {
		config := createValidConfig()
		config.Name = "Config" + string(rune('0'+i))
		writeConfigFile(t, dir, "config"+string(rune('0'+i)), config)
	}

	manager, err := NewManager(dir)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 50)

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			if _, err := manager.LoadConfig("config" + string(rune('0'+((id%5)+1)))); err != nil {
				errs <- err
			}
		}(i)
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Unexpected error during concurrent access: %v", err)
	}
	// five files plus the default
	assert.Equal(t, 6, manager.Count())
}
