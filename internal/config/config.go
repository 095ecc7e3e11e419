package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
}

// EngineConfig represents computation engine configuration
type EngineConfig struct {
	ExecutionMode string `yaml:"execution_mode"` // auto, parallel, sequential
	Workers       int    `yaml:"workers"`        // Max concurrent sample evaluations
}

// DefaultsConfig holds the values the input form starts from.
type DefaultsConfig struct {
	OptionType     string  `yaml:"option_type"`
	Spot           float64 `yaml:"spot"`
	Strike         float64 `yaml:"strike"`
	TimeToMaturity float64 `yaml:"time_to_maturity"`
	RiskFreeRate   float64 `yaml:"risk_free_rate"`
	Volatility     float64 `yaml:"volatility"`
	Premium        float64 `yaml:"premium"`
	SmileBaseVol   float64 `yaml:"smile_base_vol"`
}

// CSVConfig represents CSV export configuration
type CSVConfig struct {
	FilenameFormat string `yaml:"filename_format"`
	OutputDir      string `yaml:"output_dir"`
}

type Config struct {
	// Server settings
	Port string

	// Logging settings
	Logging LoggingConfig `yaml:"logging"`
	// Engine settings
	Engine EngineConfig `yaml:"engine"`
	// Form defaults
	Defaults DefaultsConfig `yaml:"defaults"`
	// CSV export settings
	CSV CSVConfig `yaml:"csv"`
}

type YAMLConfig struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Logging  LoggingConfig  `yaml:"logging"`
	Engine   EngineConfig   `yaml:"engine"`
	Defaults DefaultsConfig `yaml:"defaults"`
	CSV      CSVConfig      `yaml:"csv"`
}

const defaultFilenameFormat = "{time}_{sweep}_{option_type}.csv"

func Load() *Config {
	// .env never overrides variables already exported
	_ = godotenv.Load(getEnv("ENV_FILE", ".env"))

	cfg := &Config{
		Port: getEnv("PORT", "8080"),
		Logging: LoggingConfig{
			LogLevel: getEnv("LOG_LEVEL", "info"),
			LogFile:  getEnv("LOG_FILE", "vanilla.log"),
		},

		// Default engine configuration
		Engine: EngineConfig{
			ExecutionMode: getEnv("ENGINE_EXECUTION_MODE", "auto"),
			Workers:       getEnvInt("ENGINE_WORKERS", 0), // 0 = GOMAXPROCS
		},

		Defaults: DefaultsConfig{
			OptionType:     getEnv("DEFAULT_OPTION_TYPE", "call"),
			Spot:           getEnvFloat("DEFAULT_SPOT", 100.0),
			Strike:         getEnvFloat("DEFAULT_STRIKE", 100.0),
			TimeToMaturity: getEnvFloat("DEFAULT_TIME_TO_MATURITY", 1.0),
			RiskFreeRate:   getEnvFloat("DEFAULT_RISK_FREE_RATE", 0.01),
			Volatility:     getEnvFloat("DEFAULT_VOLATILITY", 0.2),
			Premium:        getEnvFloat("DEFAULT_PREMIUM", 0),
			SmileBaseVol:   getEnvFloat("SMILE_BASE_VOL", 0.2),
		},

		CSV: CSVConfig{
			FilenameFormat: getEnv("CSV_FILENAME_FORMAT", defaultFilenameFormat),
			OutputDir:      getEnv("CSV_OUTPUT_DIR", "exports"),
		},
	}

	// YAML values win over environment defaults when present
	if yamlCfg := loadYAMLConfig(getEnv("CONFIG_FILE", "config.yaml")); yamlCfg != nil {
		if yamlCfg.Server.Port != "" {
			cfg.Port = yamlCfg.Server.Port
		}

		if yamlCfg.Logging.LogLevel != "" {
			cfg.Logging.LogLevel = yamlCfg.Logging.LogLevel
		}
		if yamlCfg.Logging.LogFile != "" {
			cfg.Logging.LogFile = yamlCfg.Logging.LogFile
		}

		if yamlCfg.Engine.ExecutionMode != "" {
			cfg.Engine.ExecutionMode = yamlCfg.Engine.ExecutionMode
		}
		if yamlCfg.Engine.Workers > 0 {
			cfg.Engine.Workers = yamlCfg.Engine.Workers
		}

		mergeDefaults(&cfg.Defaults, yamlCfg.Defaults)

		if yamlCfg.CSV.FilenameFormat != "" {
			cfg.CSV.FilenameFormat = yamlCfg.CSV.FilenameFormat
		}
		if yamlCfg.CSV.OutputDir != "" {
			cfg.CSV.OutputDir = yamlCfg.CSV.OutputDir
		}
	}

	// Validate execution mode
	switch cfg.Engine.ExecutionMode {
	case "auto", "parallel", "sequential":
	default:
		cfg.Engine.ExecutionMode = "auto"
	}

	return cfg
}

// mergeDefaults copies every non-zero field of src into dst. Rate and
// premium may legitimately be zero, so a zero in YAML keeps the env value.
func mergeDefaults(dst *DefaultsConfig, src DefaultsConfig) {
	if src.OptionType != "" {
		dst.OptionType = src.OptionType
	}
	if src.Spot != 0 {
		dst.Spot = src.Spot
	}
	if src.Strike != 0 {
		dst.Strike = src.Strike
	}
	if src.TimeToMaturity != 0 {
		dst.TimeToMaturity = src.TimeToMaturity
	}
	if src.RiskFreeRate != 0 {
		dst.RiskFreeRate = src.RiskFreeRate
	}
	if src.Volatility != 0 {
		dst.Volatility = src.Volatility
	}
	if src.Premium != 0 {
		dst.Premium = src.Premium
	}
	if src.SmileBaseVol != 0 {
		dst.SmileBaseVol = src.SmileBaseVol
	}
}

func loadYAMLConfig(path string) *YAMLConfig {
	data, err := os.ReadFile(path)
	if err != nil {
		// Could not read config file - silently return nil
		return nil
	}

	var yamlCfg YAMLConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		// Could not parse config file - silently return nil
		return nil
	}

	return &yamlCfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// FormatCSVFilename formats sweep export filenames using the configured template
func FormatCSVFilename(format, sweep, optionType, timestamp string) string {
	if format == "" {
		format = defaultFilenameFormat
	}
	result := format
	result = strings.ReplaceAll(result, "{sweep}", sweep)
	result = strings.ReplaceAll(result, "{option_type}", optionType)
	result = strings.ReplaceAll(result, "{time}", timestamp)
	return result
}
