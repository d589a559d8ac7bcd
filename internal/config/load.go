package config

import (
	"errors"
	"fmt"
	"io/fs"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/abhisek/grammiz/internal/llm"
)

// EnvPrefix prefixes every environment override, e.g. GRAMMIZ_LOG_LEVEL.
const EnvPrefix = "GRAMMIZ"

// Load reads .env from the working directory when present, then builds the
// configuration from defaults, the YAML file at path (optional, "" to skip)
// and the environment. Environment variables win over the file.
func Load(path string) (*Config, error) {
	if err := loadDotenv(".env"); err != nil {
		return nil, err
	}
	return load(path)
}

// loadDotenv exports the variables in the given files without overriding
// ones already set. Missing files are ignored.
func loadDotenv(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

func load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.UserID = strings.TrimSpace(cfg.UserID)

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults registers every key so AutomaticEnv can see it during
// Unmarshal.
func setDefaults(v *viper.Viper) {
	llmDefaults := llm.DefaultConfig()

	v.SetDefault("user_id", "default")
	v.SetDefault("db", "")
	v.SetDefault("catalog_path", "")
	v.SetDefault("log.mode", "dev")
	v.SetDefault("log.level", "warn")
	v.SetDefault("session.exercises", 10)
	v.SetDefault("session.tolerate_typos", false)
	v.SetDefault("session.squeeze_spaces", false)
	v.SetDefault("explain.language", "English")

	v.SetDefault("llm.provider", "")
	v.SetDefault("llm.timeout", llmDefaults.Timeout.String())
	for name, model := range map[string]string{
		"anthropic":  llmDefaults.Anthropic.Model,
		"openai":     llmDefaults.OpenAI.Model,
		"gemini":     llmDefaults.Gemini.Model,
		"openrouter": llmDefaults.OpenRouter.Model,
	} {
		v.SetDefault("llm."+name+".api_key", "")
		v.SetDefault("llm."+name+".model", model)
		v.SetDefault("llm."+name+".base_url", "")
	}
}

var validate = newValidator()

func newValidator() func(*Config) error {
	vd := validator.New()
	// Report fields by their config key instead of the Go name.
	vd.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return func(cfg *Config) error {
		err := vd.Struct(cfg)
		if err == nil {
			return nil
		}
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validate config: %w", err)
		}
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			key := strings.TrimPrefix(fe.Namespace(), "Config.")
			msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", key, constraint(fe), fe.Value()))
		}
		return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
	}
}

func constraint(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}
