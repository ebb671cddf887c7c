// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"github.com/poiesic/promptclass/classify"
	yamlv3 "gopkg.in/yaml.v3"
)

const (
	maxConfigFileSize = 1024 * 1024 // 1MB

	// DefaultEnvPrefix prefixes environment overrides.
	DefaultEnvPrefix = "PROMPTCLASS_"
)

// Reserved top-level keys.
const (
	keyWeights         = "weights"
	keyThreshold       = "threshold"
	keyBoostFactor     = "boost_factor"
	keyApplyThreshold  = "apply_threshold"
	keyBoostCategories = "boost_categories"
	keyClamp           = "clamp"
	keyPositives       = "positives"
)

var reservedKeys = []string{
	keyWeights,
	keyThreshold,
	keyBoostFactor,
	keyApplyThreshold,
	keyBoostCategories,
	keyClamp,
}

// envKeys are the settings that may be overridden from the environment.
var envKeys = []string{
	keyThreshold,
	keyBoostFactor,
	keyApplyThreshold,
	keyClamp,
}

type loader struct {
	logger    *slog.Logger
	envPrefix string
}

// Option configures loading.
type Option func(*loader)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *loader) {
		if logger == nil {
			logger = slog.Default()
		}
		l.logger = logger.With("component", "config")
	}
}

// WithEnvPrefix sets the prefix for environment overrides.
// An empty prefix disables environment overrides.
// Default is DefaultEnvPrefix.
func WithEnvPrefix(prefix string) Option {
	return func(l *loader) {
		l.envPrefix = prefix
	}
}

func newLoader(opts ...Option) *loader {
	l := &loader{
		logger:    slog.Default().With("component", "config"),
		envPrefix: DefaultEnvPrefix,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads a keyword file from path and returns validated settings.
//
// Configuration precedence (highest to lowest):
//  1. Environment variables (PROMPTCLASS_THRESHOLD, PROMPTCLASS_BOOST_FACTOR,
//     PROMPTCLASS_APPLY_THRESHOLD, PROMPTCLASS_CLAMP)
//  2. The keyword file
//  3. classify.DefaultThreshold and classify.DefaultBoostFactor
func Load(path string, opts ...Option) (classify.Settings, error) {
	f, err := os.Open(path)
	if err != nil {
		return classify.Settings{}, fmt.Errorf("failed to open keyword file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return classify.Settings{}, fmt.Errorf("failed to stat keyword file: %w", err)
	}
	if info.Size() > maxConfigFileSize {
		return classify.Settings{}, fmt.Errorf("%w: %d bytes (max %d)", ErrConfigTooLarge, info.Size(), maxConfigFileSize)
	}

	// The stat size can lie for special files; cap the read as well.
	content, err := io.ReadAll(io.LimitReader(f, maxConfigFileSize+1))
	if err != nil {
		return classify.Settings{}, fmt.Errorf("failed to read keyword file: %w", err)
	}

	settings, err := Parse(content, opts...)
	if err != nil {
		return classify.Settings{}, fmt.Errorf("failed to load keyword file %s: %w", path, err)
	}
	return settings, nil
}

// Parse builds validated settings from the contents of a keyword file.
func Parse(content []byte, opts ...Option) (classify.Settings, error) {
	l := newLoader(opts...)

	if len(content) > maxConfigFileSize {
		return classify.Settings{}, fmt.Errorf("%w: %d bytes (max %d)", ErrConfigTooLarge, len(content), maxConfigFileSize)
	}

	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
		return classify.Settings{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if l.envPrefix != "" {
		prefix := l.envPrefix
		if err := k.Load(env.Provider(prefix, ".", func(s string) string {
			// PROMPTCLASS_BOOST_FACTOR -> boost_factor
			key := strings.ToLower(strings.TrimPrefix(s, prefix))
			if !slices.Contains(envKeys, key) {
				return ""
			}
			return key
		}), nil); err != nil {
			return classify.Settings{}, fmt.Errorf("failed to load environment variables: %w", err)
		}
	}

	settings, err := l.build(k)
	if err != nil {
		return classify.Settings{}, err
	}
	settings.OrderCategories(topLevelKeys(content))
	return settings, nil
}

// topLevelKeys returns the document's top-level mapping keys in file order.
// koanf flattens into maps, so the order is recovered from the YAML node tree.
// JSON input parses the same way.
func topLevelKeys(content []byte) []string {
	var doc yamlv3.Node
	if err := yamlv3.Unmarshal(content, &doc); err != nil {
		return nil
	}
	if doc.Kind != yamlv3.DocumentNode || len(doc.Content) == 0 {
		return nil
	}
	root := doc.Content[0]
	if root.Kind != yamlv3.MappingNode {
		return nil
	}
	keys := make([]string, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		keys = append(keys, root.Content[i].Value)
	}
	return keys
}

func (l *loader) build(k *koanf.Koanf) (classify.Settings, error) {
	keywords := make(map[string][]string)
	for key, value := range k.Raw() {
		if slices.Contains(reservedKeys, key) {
			continue
		}
		section, ok := value.(map[string]any)
		if !ok {
			l.logger.Warn("ignoring non-category key", "key", key)
			continue
		}
		if _, ok := section[keyPositives]; !ok {
			l.logger.Warn("ignoring section without positives", "key", key)
			continue
		}
		keywords[key] = k.Strings(key + "." + keyPositives)
	}
	if len(keywords) == 0 {
		return classify.Settings{}, fmt.Errorf("%w: no categories defined", ErrInvalidConfig)
	}

	weights := k.Float64Map(keyWeights)
	if k.Exists(keyWeights) && len(weights) == 0 && len(k.MapKeys(keyWeights)) > 0 {
		return classify.Settings{}, fmt.Errorf("%w: weights must be numbers", ErrInvalidConfig)
	}
	for name := range weights {
		if _, ok := keywords[name]; !ok {
			l.logger.Warn("ignoring weight for unknown category", "category", name)
		}
	}

	threshold := classify.DefaultThreshold
	if k.Exists(keyThreshold) {
		v, err := float(k, keyThreshold)
		if err != nil {
			return classify.Settings{}, err
		}
		threshold = v
	}

	boostFactor := classify.DefaultBoostFactor
	if k.Exists(keyBoostFactor) {
		v, err := float(k, keyBoostFactor)
		if err != nil {
			return classify.Settings{}, err
		}
		boostFactor = v
	}

	settings := classify.NewSettings(keywords, weights, threshold, boostFactor)

	if k.Exists(keyApplyThreshold) {
		var err error
		if settings.ApplyThreshold, err = boolean(k.Get(keyApplyThreshold), keyApplyThreshold); err != nil {
			return classify.Settings{}, err
		}
	}
	if k.Exists(keyClamp) {
		var err error
		if settings.Clamp, err = boolean(k.Get(keyClamp), keyClamp); err != nil {
			return classify.Settings{}, err
		}
	}

	for _, name := range k.Strings(keyBoostCategories) {
		if _, ok := keywords[name]; !ok {
			l.logger.Warn("ignoring boost scope for unknown category", "category", name)
			continue
		}
		settings.BoostCategories = append(settings.BoostCategories, name)
	}

	if err := settings.Validate(); err != nil {
		return classify.Settings{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	l.logger.Debug("keyword configuration loaded",
		"categories", len(settings.Categories),
		"threshold", settings.Threshold,
		"boost_factor", settings.BoostFactor,
		"apply_threshold", settings.ApplyThreshold,
		"clamp", settings.Clamp)

	return settings, nil
}

// float reads key as a number, rejecting values koanf would silently
// coerce to zero.
func float(k *koanf.Koanf, key string) (float64, error) {
	switch v := k.Get(key).(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %s must be a number, got %q", ErrInvalidConfig, key, v)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%w: %s must be a number, got %T", ErrInvalidConfig, key, v)
	}
}

func boolean(v any, key string) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "1", "yes", "on":
			return true, nil
		case "false", "0", "no", "off", "":
			return false, nil
		}
	}
	return false, fmt.Errorf("%w: %s must be a boolean, got %v", ErrInvalidConfig, key, v)
}
