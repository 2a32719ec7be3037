package feed

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFeedFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestConfigCacheLoadValidConfig(t *testing.T) {
	tempDir := t.TempDir()

	writeFeedFile(t, tempDir, "wwk.yml", `
url: "https://example.com/wwk.xml"

settings:
  enabled: true
  timeout: 15
  batch_size: 5
`)

	configCache := NewConfigCache(tempDir)
	if err := configCache.Run(nil); err != nil {
		t.Fatal(err)
	}

	if configCache.GetConfigCount() != 1 {
		t.Errorf("Expected 1 feedConfig, got %d", configCache.GetConfigCount())
	}

	feedConfig, err := configCache.GetConfig("wwk")
	if err != nil {
		t.Fatal(err)
	}

	if feedConfig.Name != "wwk" {
		t.Errorf("Expected name 'wwk', got '%s'", feedConfig.Name)
	}
	if feedConfig.URL != "https://example.com/wwk.xml" {
		t.Errorf("Expected URL 'https://example.com/wwk.xml', got '%s'", feedConfig.URL)
	}
	if !feedConfig.Settings.Enabled {
		t.Error("Expected feed to be enabled")
	}
	if feedConfig.Settings.Timeout != 15 {
		t.Errorf("Expected timeout 15, got %d", feedConfig.Settings.Timeout)
	}
	if feedConfig.Settings.BatchSize != 5 {
		t.Errorf("Expected batch size 5, got %d", feedConfig.Settings.BatchSize)
	}
}

func TestConfigCacheLoadConfigWithDefaults(t *testing.T) {
	tempDir := t.TempDir()

	writeFeedFile(t, tempDir, "minimal.yml", `url: "https://example.com/feed.xml"`)

	configCache := NewConfigCache(tempDir)
	if err := configCache.Run(nil); err != nil {
		t.Fatal(err)
	}

	feedConfig, err := configCache.GetConfig("minimal")
	if err != nil {
		t.Fatal(err)
	}

	if !feedConfig.Settings.Enabled {
		t.Error("Expected feed to be enabled by default")
	}
	if feedConfig.Settings.Timeout != 30 {
		t.Errorf("Expected default timeout 30, got %d", feedConfig.Settings.Timeout)
	}
	if feedConfig.Settings.BatchSize != DefaultBatchSize {
		t.Errorf("Expected default batch size %d, got %d", DefaultBatchSize, feedConfig.Settings.BatchSize)
	}
}

func TestConfigCacheDisabledFeed(t *testing.T) {
	tempDir := t.TempDir()

	writeFeedFile(t, tempDir, "a.yml", `url: "https://example.com/a.xml"`)
	writeFeedFile(t, tempDir, "b.yml", `
url: "https://example.com/b.xml"
settings:
  enabled: false
`)

	configCache := NewConfigCache(tempDir)
	if err := configCache.Run(nil); err != nil {
		t.Fatal(err)
	}

	if len(configCache.GetConfigs()) != 2 {
		t.Errorf("Expected 2 configs, got %d", len(configCache.GetConfigs()))
	}

	enabled := configCache.GetEnabledConfigs()
	if len(enabled) != 1 || enabled[0].Name != "a" {
		t.Errorf("Expected only 'a' to be enabled, got %v", enabled)
	}
}

func TestConfigCacheInvalidConfig(t *testing.T) {
	tempDir := t.TempDir()

	writeFeedFile(t, tempDir, "broken.yml", "url: [unclosed")

	configCache := NewConfigCache(tempDir)
	if err := configCache.Run(nil); err == nil {
		t.Error("Expected error for invalid YAML")
	}
}

func TestConfigCacheMissingURL(t *testing.T) {
	tempDir := t.TempDir()

	writeFeedFile(t, tempDir, "nourl.yml", "settings:\n  timeout: 10\n")

	configCache := NewConfigCache(tempDir)
	if err := configCache.Run(nil); err == nil {
		t.Error("Expected error for missing URL")
	}
}

func TestConfigCacheMissingDirectory(t *testing.T) {
	configCache := NewConfigCache(filepath.Join(t.TempDir(), "does-not-exist"))
	if err := configCache.Run(nil); err != nil {
		t.Errorf("Expected no error for missing directory, got %v", err)
	}
	if configCache.GetConfigCount() != 0 {
		t.Errorf("Expected 0 configs, got %d", configCache.GetConfigCount())
	}
}

func TestConfigCacheURLsComeFirstInOrder(t *testing.T) {
	tempDir := t.TempDir()
	writeFeedFile(t, tempDir, "file-feed.yml", `url: "https://example.com/file.xml"`)

	configCache := NewConfigCache(tempDir)
	err := configCache.Run([]string{
		"https://feeds.example.com/second.xml",
		" ",
		"https://feeds.example.com/first.xml",
	})
	if err != nil {
		t.Fatal(err)
	}

	configs := configCache.GetConfigs()
	want := []string{
		"feeds-example-com-second-xml",
		"feeds-example-com-first-xml",
		"file-feed",
	}
	if len(configs) != len(want) {
		t.Fatalf("Expected %d configs, got %d", len(want), len(configs))
	}
	for i, name := range want {
		if configs[i].Name != name {
			t.Errorf("configs[%d] = %s, want %s", i, configs[i].Name, name)
		}
	}

	if configs[0].URL != "https://feeds.example.com/second.xml" {
		t.Errorf("Expected URL to be kept, got %s", configs[0].URL)
	}
	if configs[0].Settings.BatchSize != DefaultBatchSize || !configs[0].Settings.Enabled {
		t.Errorf("Expected defaults for env feed, got %+v", configs[0].Settings)
	}
}

func TestConfigCacheCollidingURLNames(t *testing.T) {
	configCache := NewConfigCache("")
	err := configCache.Run([]string{
		"http://x.com/feed",
		"https://x.com/feed",
		"https://x.com/feed/",
		"https://x.com/feed",
	})
	if err != nil {
		t.Fatal(err)
	}

	configs := configCache.GetConfigs()
	want := []struct {
		name string
		url  string
	}{
		{"x-com-feed", "http://x.com/feed"},
		{"x-com-feed-2", "https://x.com/feed"},
		{"x-com-feed-3", "https://x.com/feed/"},
	}
	if len(configs) != len(want) {
		t.Fatalf("Expected %d configs, got %d", len(want), len(configs))
	}
	for i, w := range want {
		if configs[i].Name != w.name || configs[i].URL != w.url {
			t.Errorf("configs[%d] = %s (%s), want %s (%s)", i, configs[i].Name, configs[i].URL, w.name, w.url)
		}
	}
}

func TestConfigCacheGetConfigNotFound(t *testing.T) {
	configCache := NewConfigCache("")
	if _, err := configCache.GetConfig("missing"); err == nil {
		t.Error("Expected error for unknown feed")
	}
}

func TestConfigCacheValidateConfigNegativeValues(t *testing.T) {
	configCache := NewConfigCache("")

	err := configCache.validateConfig(&Config{
		Name:     "neg",
		URL:      "https://example.com/feed.xml",
		Settings: ConfigSettings{Timeout: -1},
	})
	if err == nil {
		t.Error("Expected error for negative timeout")
	}

	if err := configCache.validateConfig(nil); err == nil {
		t.Error("Expected error for nil config")
	}
}

func TestNameFromURL(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"https://feeds.example.com/show.xml", "feeds-example-com-show-xml"},
		{"http://Example.com/Podcast/RSS/", "example-com-podcast-rss"},
		{"not a url", "not-a-url"},
	}

	for _, tt := range tests {
		if got := NameFromURL(tt.input); got != tt.want {
			t.Errorf("NameFromURL(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
