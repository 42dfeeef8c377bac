package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix prefixes every environment override, e.g.
// NAMEPICK_DECISIONS__BACKEND=sqlite.
const EnvPrefix = "NAMEPICK_"

// Config is the full namepick configuration.
type Config struct {
	Vocabulary Vocabulary `koanf:"vocabulary"`
	Decisions  Decisions  `koanf:"decisions"`
	Scoring    Scoring    `koanf:"scoring"`
	Web        Web        `koanf:"web"`
	Log        Log        `koanf:"log"`
}

// Vocabulary locates the character pool.
type Vocabulary struct {
	Path          string   `koanf:"path" validate:"required"`
	GitURL        string   `koanf:"git_url"`
	ReposDir      string   `koanf:"repos_dir" validate:"required_with=GitURL"`
	SpellingPairs []string `koanf:"spelling_pairs" validate:"dive,contains=-"`
}

// Decisions selects where accepted and refused pairs are kept.
type Decisions struct {
	Backend      string `koanf:"backend" validate:"oneof=text sqlite"`
	AcceptedPath string `koanf:"accepted_path" validate:"required_if=Backend text"`
	RefusedPath  string `koanf:"refused_path" validate:"required_if=Backend text,nefield=AcceptedPath"`
	DBPath       string `koanf:"db_path" validate:"required_if=Backend sqlite"`
}

// Scoring tunes the candidate ranking.
type Scoring struct {
	SelfPairSentinel float64 `koanf:"self_pair_sentinel" validate:"lt=-1"`
}

// Web configures the browser review surface.
type Web struct {
	Addr string `koanf:"addr" validate:"required,hostname_port"`
}

// Log configures the slog handler.
type Log struct {
	Level  string `koanf:"level" validate:"oneof=debug info warn error"`
	Format string `koanf:"format" validate:"oneof=text json"`
}

// Default returns the configuration used when nothing overrides it. Paths are
// relative to the working directory.
func Default() Config {
	return Config{
		Vocabulary: Vocabulary{
			Path:     "words-selected.yaml",
			ReposDir: "repos",
		},
		Decisions: Decisions{
			Backend:      "text",
			AcceptedPath: "names-selected.txt",
			RefusedPath:  "names-refused.txt",
			DBPath:       "namepick.db",
		},
		Scoring: Scoring{SelfPairSentinel: -2.0},
		Web:     Web{Addr: "localhost:8080"},
		Log:     Log{Level: "info", Format: "text"},
	}
}

// RegisterFlags adds the command-line overrides to fs. Flag names are the
// koanf keys, so posflag maps them without a callback.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.String("vocabulary.path", d.Vocabulary.Path, "Vocabulary file (spelling -> sound -> characters)")
	fs.String("vocabulary.git_url", d.Vocabulary.GitURL, "Git repository holding the vocabulary file")
	fs.String("vocabulary.repos_dir", d.Vocabulary.ReposDir, "Directory vocabulary repositories are cloned into")
	fs.StringSlice("vocabulary.spelling_pairs", nil, "Only pair these spellings, e.g. an-xin")
	fs.String("decisions.backend", d.Decisions.Backend, "Decision store: text or sqlite")
	fs.String("decisions.accepted_path", d.Decisions.AcceptedPath, "Accepted names file")
	fs.String("decisions.refused_path", d.Decisions.RefusedPath, "Refused names file")
	fs.String("decisions.db_path", d.Decisions.DBPath, "SQLite database file")
	fs.Float64("scoring.self_pair_sentinel", d.Scoring.SelfPairSentinel, "Score of (a, a) pairs before anything is accepted")
	fs.String("web.addr", d.Web.Addr, "Listen address for the web review surface")
	fs.String("log.level", d.Log.Level, "Log level: debug, info, warn, error")
	fs.String("log.format", d.Log.Format, "Log format: text or json")
}

// Load layers defaults, the YAML file at path (optional, may be empty),
// NAMEPICK_ environment variables and the flags in fs, then validates.
func Load(path string, fs *pflag.FlagSet) (Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return Config{}, fmt.Errorf("failed to load config file %s: %w", path, err)
			}
		}
	}

	err := k.Load(env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
		key = strings.ReplaceAll(key, "__", ".")
		if key == "vocabulary.spelling_pairs" {
			return key, strings.Split(value, ",")
		}
		return key, value
	}), nil)
	if err != nil {
		return Config{}, fmt.Errorf("failed to load environment: %w", err)
	}

	if fs != nil {
		if err := k.Load(posflag.Provider(fs, ".", k), nil); err != nil {
			return Config{}, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the struct tags and reports every failing field.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
