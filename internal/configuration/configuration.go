package configuration

import (
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	DefaultConfigPath = "./haproxy-statsd.conf"
	HostnameMarker    = "(HOSTNAME)"
)

var (
	ErrInvalidPort     = errors.New("statsd_port must be between 1 and 65535")
	ErrInvalidInterval = errors.New("interval must be positive")
	ErrInvalidTimeout  = errors.New("timeout must be positive")
	ErrMissingSource   = errors.New("either haproxy_socket or haproxy_url must be set")
)

type Config struct {
	HAProxyURL      string   `toml:"haproxy_url" env:"HAPROXY_HOST"`
	HAProxySocket   string   `toml:"haproxy_socket" env:"HAPROXY_SOCKET"`
	HAProxyUser     string   `toml:"haproxy_user" env:"HAPROXY_USER"`
	HAProxyPassword string   `toml:"haproxy_password" env:"HAPROXY_PASS"`
	StatsdHost      string   `toml:"statsd_host" env:"STATSD_HOST"`
	StatsdPort      int      `toml:"statsd_port" env:"STATSD_PORT"`
	StatsdNamespace string   `toml:"statsd_namespace" env:"STATSD_NAMESPACE"`
	Interval        float64  `toml:"interval" env:"HAPROXYSTATSD_INTERVAL"`
	Timeout         float64  `toml:"timeout" env:"HAPROXYSTATSD_TIMEOUT"`
	IncludeProxies  []string `toml:"include_proxies" env:"HAPROXYSTATSD_INCLUDE_PROXIES" envSeparator:","`
	ExcludeProxies  []string `toml:"exclude_proxies" env:"HAPROXYSTATSD_EXCLUDE_PROXIES" envSeparator:","`
	StatusListen    string   `toml:"status_listen" env:"HAPROXYSTATSD_STATUS_LISTEN"`
	LogLevel        string   `toml:"log_level" env:"HAPROXYSTATSD_LOG_LEVEL"`
}

type file struct {
	Agent Config `toml:"haproxy-statsd"`
}

func Default() Config {
	return Config{
		HAProxyURL:      "http://127.0.0.1:1936/;csv",
		StatsdHost:      "127.0.0.1",
		StatsdPort:      8125,
		StatsdNamespace: "haproxy." + HostnameMarker,
		Interval:        5,
		Timeout:         5,
		LogLevel:        "info",
	}
}

// Load builds the configuration from defaults, then the environment, then
// the config file at path. A missing file is only an error when required.
func Load(path string, required bool) (*Config, error) {
	config := Default()

	if err := env.Parse(&config); err != nil {
		return nil, errors.Wrap(err, "failed to parse environment")
	}

	if err := config.readFile(path, required); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (config *Config) readFile(path string, required bool) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		return errors.Wrapf(err, "failed to read config file %s", path)
	}

	doc := file{Agent: *config}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return errors.Wrapf(err, "failed to parse config file %s (TOML, quote string values)", path)
	}
	*config = doc.Agent

	return nil
}

func (config *Config) Validate() error {
	if config.StatsdPort < 1 || config.StatsdPort > 65535 {
		return ErrInvalidPort
	}
	if config.PollInterval() <= 0 {
		return ErrInvalidInterval
	}
	if config.RequestTimeout() <= 0 {
		return ErrInvalidTimeout
	}
	if config.HAProxySocket == "" && config.HAProxyURL == "" {
		return ErrMissingSource
	}
	if _, err := config.Level(); err != nil {
		return err
	}
	return nil
}

func (config *Config) UseSocket() bool {
	return config.HAProxySocket != ""
}

func (config *Config) PollInterval() time.Duration {
	return seconds(config.Interval)
}

func (config *Config) RequestTimeout() time.Duration {
	return seconds(config.Timeout)
}

func (config *Config) Level() (zerolog.Level, error) {
	if config.LogLevel == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(config.LogLevel))
	if err != nil {
		return zerolog.NoLevel, errors.Wrapf(err, "invalid log_level %q", config.LogLevel)
	}
	return level, nil
}

// Namespace resolves the hostname marker of the statsd namespace. Dots in
// hostname are replaced so it stays one path segment.
func (config *Config) Namespace(hostname string) string {
	return ResolveNamespace(config.StatsdNamespace, hostname)
}

func ResolveNamespace(template, hostname string) string {
	if !strings.Contains(template, HostnameMarker) {
		return template
	}
	return strings.ReplaceAll(template, HostnameMarker, strings.ReplaceAll(hostname, ".", "_"))
}

func seconds(value float64) time.Duration {
	return time.Duration(value * float64(time.Second))
}
