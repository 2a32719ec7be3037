package feed

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

type ConfigCache struct {
	feedsDir string
	cache    map[string]*Config
	order    []string
	mu       sync.RWMutex
}

func NewConfigCache(feedsDir string) *ConfigCache {
	return &ConfigCache{
		feedsDir: feedsDir,
		cache:    make(map[string]*Config),
	}
}

// Run registers the env-supplied feed URLs in the given order, followed by
// every *.yml file in the feeds directory.
func (cc *ConfigCache) Run(urls []string) error {
	for _, feedURL := range urls {
		feedURL = strings.TrimSpace(feedURL)
		if feedURL == "" {
			continue
		}
		if cc.hasURL(feedURL) {
			slog.Warn("Duplicate feed URL, skipping", "url", feedURL)
			continue
		}

		feedConfig := &Config{Name: cc.uniqueName(NameFromURL(feedURL), feedURL), URL: feedURL, Settings: ConfigSettings{Enabled: true}}
		applyDefaults(feedConfig)
		cc.store(feedConfig)
	}

	if cc.feedsDir == "" {
		return nil
	}
	if _, err := os.Stat(cc.feedsDir); os.IsNotExist(err) {
		return nil
	}

	files, err := filepath.Glob(filepath.Join(cc.feedsDir, "*.yml"))
	if err != nil {
		return fmt.Errorf("failed to find YML files: %w", err)
	}

	for _, file := range files {
		fileName := filepath.Base(file)
		feedName := strings.TrimSuffix(fileName, ".yml")

		if existing, err := cc.GetConfig(feedName); err == nil {
			slog.Warn("Feed file replaces a feed with the same name", "feed", feedName, "url", existing.URL, "file", file)
		}

		feedConfig, err := cc.LoadConfig(feedName)
		if err != nil {
			return fmt.Errorf("error loading %s: %w", file, err)
		}

		slog.Debug("Configuration loaded", "feed", feedName, "enabled", feedConfig.Settings.Enabled, "batch_size", feedConfig.Settings.BatchSize)
	}

	return nil
}

func (cc *ConfigCache) LoadConfig(feedName string) (*Config, error) {
	configFile := cc.getConfigFilePath(feedName)
	feedConfig, err := cc.parseConfig(configFile)
	if err != nil {
		return nil, err
	}

	feedConfig.Name = feedName

	if err := cc.validateConfig(feedConfig); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configFile, err)
	}

	cc.store(feedConfig)

	return feedConfig, nil
}

func (cc *ConfigCache) store(feedConfig *Config) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	if _, ok := cc.cache[feedConfig.Name]; !ok {
		cc.order = append(cc.order, feedConfig.Name)
	}
	cc.cache[feedConfig.Name] = feedConfig
}

func (cc *ConfigCache) GetConfig(feedName string) (*Config, error) {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	feedConfig, ok := cc.cache[feedName]
	if !ok {
		return nil, fmt.Errorf("feed config with name '%s' not found", feedName)
	}
	return feedConfig, nil
}

// GetConfigs returns every registered feed in registration order.
func (cc *ConfigCache) GetConfigs() []*Config {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	configs := make([]*Config, 0, len(cc.order))
	for _, name := range cc.order {
		configs = append(configs, cc.cache[name])
	}
	return configs
}

func (cc *ConfigCache) GetEnabledConfigs() []*Config {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	var enabled []*Config
	for _, name := range cc.order {
		if feedConfig := cc.cache[name]; feedConfig.Settings.Enabled {
			enabled = append(enabled, feedConfig)
		}
	}
	return enabled
}

func (cc *ConfigCache) GetConfigCount() int {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	return len(cc.cache)
}

func (cc *ConfigCache) parseConfig(configFile string) (*Config, error) {
	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	// Feeds are enabled unless the file says otherwise.
	feedConfig := Config{Settings: ConfigSettings{Enabled: true}}
	if err := yaml.Unmarshal(data, &feedConfig); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	applyDefaults(&feedConfig)

	return &feedConfig, nil
}

func applyDefaults(feedConfig *Config) {
	if feedConfig.Settings.Timeout == 0 {
		feedConfig.Settings.Timeout = 30
	}
	if feedConfig.Settings.BatchSize == 0 {
		feedConfig.Settings.BatchSize = DefaultBatchSize
	}
}

func (cc *ConfigCache) validateConfig(feedConfig *Config) error {
	if feedConfig == nil {
		return fmt.Errorf("feedConfig is nil")
	}

	requiredFeedFields := map[string]string{
		"feed name": feedConfig.Name,
		"feed URL":  feedConfig.URL,
	}

	for fieldName, fieldValue := range requiredFeedFields {
		if fieldValue == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
	}

	nonNegativeFields := map[string]int{
		"timeout":    feedConfig.Settings.Timeout,
		"batch size": feedConfig.Settings.BatchSize,
	}

	for fieldName, fieldValue := range nonNegativeFields {
		if fieldValue < 0 {
			return fmt.Errorf("%s must be non-negative", fieldName)
		}
	}

	return nil
}

// NameFromURL derives a path-safe feed name from a feed URL, e.g.
// "https://feeds.example.com/show.xml" becomes "feeds-example-com-show-xml".
func NameFromURL(rawURL string) string {
	name := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		name = u.Host + u.Path
	}

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func (cc *ConfigCache) hasURL(feedURL string) bool {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	for _, feedConfig := range cc.cache {
		if feedConfig.URL == feedURL {
			return true
		}
	}
	return false
}

// uniqueName appends -2, -3, ... to name until no registered feed uses it.
func (cc *ConfigCache) uniqueName(name, feedURL string) string {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	if _, taken := cc.cache[name]; !taken {
		return name
	}

	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d", name, i)
		if _, taken := cc.cache[candidate]; !taken {
			slog.Warn("Feed name already registered, using suffix", "name", name, "url", feedURL, "assigned", candidate)
			return candidate
		}
	}
}

func (cc *ConfigCache) getConfigFilePath(feedName string) string {
	return filepath.Join(cc.feedsDir, feedName+".yml")
}
