package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Environment keys read by LoadSyncEnv.
const (
	EnvSupabaseURL = "ROAD_SUPABASE_URL"
	EnvSupabaseKey = "ROAD_SUPABASE_KEY"
	EnvSyncTimeout = "ROAD_SYNC_TIMEOUT"
)

// Placeholder values mean the remote sink is unconfigured.
const (
	PlaceholderURL = "https://placeholder.supabase.co"
	PlaceholderKey = "placeholder-key"
)

// minKeyLength is the shortest API key accepted as real.
const minKeyLength = 32

// SyncEnv holds remote persistence settings sourced from the environment.
type SyncEnv struct {
	URL     string
	Key     string
	Timeout time.Duration
}

// IsPlaceholder reports whether the remote sink should run as a no-op.
func (e SyncEnv) IsPlaceholder() bool {
	return strings.Contains(e.URL, "placeholder")
}

// LoadSyncEnv reads remote sink settings from v.
// Malformed values fall back to the placeholder; the returned error describes
// what was rejected and is meant to be logged as a warning, not treated as fatal.
func LoadSyncEnv(v *viper.Viper) (SyncEnv, error) {
	v.SetDefault(EnvSupabaseURL, PlaceholderURL)
	v.SetDefault(EnvSupabaseKey, PlaceholderKey)
	v.SetDefault(EnvSyncTimeout, 5*time.Second)

	env := SyncEnv{
		URL:     strings.TrimRight(v.GetString(EnvSupabaseURL), "/"),
		Key:     v.GetString(EnvSupabaseKey),
		Timeout: v.GetDuration(EnvSyncTimeout),
	}
	if env.Timeout <= 0 {
		env.Timeout = 5 * time.Second
	}

	placeholder := SyncEnv{URL: PlaceholderURL, Key: PlaceholderKey, Timeout: env.Timeout}

	if !strings.Contains(env.URL, "placeholder") {
		u, err := url.Parse(env.URL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return placeholder, fmt.Errorf("invalid %s format, using placeholder", EnvSupabaseURL)
		}
	}

	if !strings.Contains(env.Key, "placeholder") && len(env.Key) < minKeyLength {
		return placeholder, fmt.Errorf("%s appears to be too short, using placeholder", EnvSupabaseKey)
	}

	return env, nil
}
