package config

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// File mirrors the optional YAML configuration file. Environment variables
// still win over anything set here.
type File struct {
	Debug        *bool   `yaml:"debug"`
	RelayTimeout *int    `yaml:"relay_timeout"`
	RelayProxy   *string `yaml:"relay_proxy"`

	Horde struct {
		BaseURL         *string `yaml:"base_url"`
		ClientAgent     *string `yaml:"client_agent"`
		PublicAPIKey    *string `yaml:"public_api_key"`
		PollIntervalMs  *int    `yaml:"poll_interval_ms"`
		MaxPollAttempts *int    `yaml:"max_poll_attempts"`
	} `yaml:"horde"`

	Bytez struct {
		BaseURL *string `yaml:"base_url"`
		APIKey  *string `yaml:"api_key"`
	} `yaml:"bytez"`

	ModelCacheSeconds *int  `yaml:"model_cache_seconds"`
	JobLogEnabled     *bool `yaml:"job_log_enabled"`
	MetricEnabled     *bool `yaml:"metric_enabled"`
}

func LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "read config file")
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return errors.Wrapf(err, "parse config file %s", path)
	}
	f.Apply()
	return nil
}

func (f *File) Apply() {
	setBool(&DebugEnabled, f.Debug, "DEBUG")
	setInt(&RelayTimeout, f.RelayTimeout, "RELAY_TIMEOUT")
	setString(&RelayProxy, f.RelayProxy, "RELAY_PROXY")

	setString(&HordeBaseURL, f.Horde.BaseURL, "HORDE_BASE_URL")
	setString(&HordeClientAgent, f.Horde.ClientAgent, "HORDE_CLIENT_AGENT")
	setString(&HordePublicAPIKey, f.Horde.PublicAPIKey, "HORDE_PUBLIC_API_KEY")
	if f.Horde.PollIntervalMs != nil && *f.Horde.PollIntervalMs >= 0 && os.Getenv("HORDE_POLL_INTERVAL") == "" {
		HordePollInterval = time.Duration(*f.Horde.PollIntervalMs) * time.Millisecond
	}
	setInt(&HordeMaxPollAttempts, f.Horde.MaxPollAttempts, "HORDE_MAX_POLL_ATTEMPTS")

	setString(&BytezBaseURL, f.Bytez.BaseURL, "BYTEZ_BASE_URL")
	setString(&BytezAPIKey, f.Bytez.APIKey, "BYTEZ_API_KEY")

	setInt(&ModelCacheSeconds, f.ModelCacheSeconds, "MODEL_CACHE_SECONDS")
	setBool(&JobLogEnabled, f.JobLogEnabled, "JOB_LOG_ENABLED")
	setBool(&MetricEnabled, f.MetricEnabled, "METRIC_ENABLED")
}

func setString(dst *string, v *string, envKey string) {
	if v != nil && os.Getenv(envKey) == "" {
		*dst = *v
	}
}

func setInt(dst *int, v *int, envKey string) {
	if v != nil && os.Getenv(envKey) == "" {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool, envKey string) {
	if v != nil && os.Getenv(envKey) == "" {
		*dst = *v
	}
}
