package runtime_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/palisade/internal/runtime"
	"github.com/aretw0/palisade/pkg/domain"
)

func TestResolvePollConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg := runtime.ResolvePollConfig(&domain.TransitionDefinition{}, nil)
		assert.Equal(t, 10000, cfg.TimeoutMs)
		assert.Equal(t, 500, cfg.SleepMs)
	})

	t.Run("Nil Definition", func(t *testing.T) {
		cfg := runtime.ResolvePollConfig(nil, nil)
		assert.Equal(t, runtime.DefaultPollConfig(), cfg)
	})

	t.Run("Valid Values", func(t *testing.T) {
		def := &domain.TransitionDefinition{Timeout: "2500", Sleep: " 100 "}
		cfg := runtime.ResolvePollConfig(def, nil)
		assert.Equal(t, 2500, cfg.TimeoutMs)
		assert.Equal(t, 100, cfg.SleepMs)
	})

	t.Run("Malformed Values Fall Back", func(t *testing.T) {
		def := &domain.TransitionDefinition{Timeout: "ten seconds", Sleep: "0.5s"}
		cfg := runtime.ResolvePollConfig(def, nil)
		assert.Equal(t, 10000, cfg.TimeoutMs)
		assert.Equal(t, 500, cfg.SleepMs)
	})

	t.Run("Non Positive Values Fall Back", func(t *testing.T) {
		def := &domain.TransitionDefinition{Timeout: "-1", Sleep: "0"}
		cfg := runtime.ResolvePollConfig(def, nil)
		assert.Equal(t, 10000, cfg.TimeoutMs)
		assert.Equal(t, 500, cfg.SleepMs)
	})
}

func TestResolvePlaceholders(t *testing.T) {
	item := domain.Item{Path: "/sitecore/content/Home", Language: "en", Version: 3}

	assert.Equal(t,
		"Item /sitecore/content/Home v3",
		runtime.ResolvePlaceholders("Item $itemPath$ v$itemVersion$", item))

	assert.Equal(t,
		"lang=en",
		runtime.ResolvePlaceholders("lang=$itemLanguage$", item))

	assert.Equal(t, "", runtime.ResolvePlaceholders("", item))

	// Unrecognized tokens pass through.
	assert.Equal(t,
		"$itemOwner$ on /sitecore/content/Home",
		runtime.ResolvePlaceholders("$itemOwner$ on $itemPath$", item))
}
