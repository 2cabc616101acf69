package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	apperrors "studyroutine/internal/platform/errors"
)

const (
	envPrefix      = "STUDYROUTINE"
	configName     = "studyroutine"
	dateLayout     = "2006-01-02"
	defaultSubject = "민법,경제학,회계학,부동산학,감정평가관계법규"
)

type Config struct {
	DataDir      string
	TablePath    string
	GoalsPath    string
	IndexPath    string
	LogPath      string
	ExportPrefix string
	BaseDate     time.Time
	WeekCount    int
	Subjects     []string
	Location     *time.Location
	LogLevel     log.Level
	HTTPAddr     string
}

// Options carries the values given on the command line. Empty fields
// leave the file, environment or default value in place.
type Options struct {
	DataDir    string
	ConfigFile string
	LogLevel   string
}

func Load(opts Options) (Config, error) {
	dataDir := strings.TrimSpace(opts.DataDir)
	if dataDir == "" {
		dataDir = "."
	}

	if err := loadDotEnv(filepath.Join(dataDir, ".env")); err != nil {
		return Config{}, err
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(dataDir)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("%w: read config: %v", apperrors.ErrInvalidConfiguration, err)
		}
	}
	if opts.LogLevel != "" {
		v.Set("log_level", opts.LogLevel)
	}
	return fromViper(v, dataDir)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("table_file", "study_tracker_data.csv")
	v.SetDefault("goals_file", "monthly_goals.csv")
	v.SetDefault("index_file", filepath.Join(".studyroutine", "index.db"))
	v.SetDefault("log_file", filepath.Join(".studyroutine", "studyroutine.log"))
	v.SetDefault("export_prefix", "감정평가사_학습루틴")
	v.SetDefault("base_date", "2025-06-03")
	v.SetDefault("week_count", 156)
	v.SetDefault("subjects", defaultSubject)
	v.SetDefault("timezone", "Asia/Seoul")
	v.SetDefault("log_level", "info")
	v.SetDefault("http_addr", ":8080")
}

func fromViper(v *viper.Viper, dataDir string) (Config, error) {
	baseDate, err := time.Parse(dateLayout, strings.TrimSpace(v.GetString("base_date")))
	if err != nil {
		return Config{}, fmt.Errorf("%w: base_date must be YYYY-MM-DD: %v", apperrors.ErrInvalidConfiguration, err)
	}
	weekCount := v.GetInt("week_count")
	if weekCount <= 0 {
		return Config{}, fmt.Errorf("%w: week_count must be positive, got %d", apperrors.ErrInvalidConfiguration, weekCount)
	}
	subjects := splitList(v.GetStringSlice("subjects"))
	if len(subjects) == 0 {
		return Config{}, fmt.Errorf("%w: subjects must not be empty", apperrors.ErrInvalidConfiguration)
	}
	loc, err := time.LoadLocation(v.GetString("timezone"))
	if err != nil {
		return Config{}, fmt.Errorf("%w: timezone: %v", apperrors.ErrInvalidConfiguration, err)
	}
	level, err := log.ParseLevel(strings.TrimSpace(v.GetString("log_level")))
	if err != nil {
		return Config{}, fmt.Errorf("%w: log_level: %v", apperrors.ErrInvalidConfiguration, err)
	}
	prefix := strings.TrimSpace(v.GetString("export_prefix"))
	if prefix == "" {
		return Config{}, fmt.Errorf("%w: export_prefix must not be empty", apperrors.ErrInvalidConfiguration)
	}

	return Config{
		DataDir:      dataDir,
		TablePath:    resolve(dataDir, v.GetString("table_file")),
		GoalsPath:    resolve(dataDir, v.GetString("goals_file")),
		IndexPath:    resolve(dataDir, v.GetString("index_file")),
		LogPath:      resolve(dataDir, v.GetString("log_file")),
		ExportPrefix: prefix,
		BaseDate:     baseDate,
		WeekCount:    weekCount,
		Subjects:     subjects,
		Location:     loc,
		LogLevel:     level,
		HTTPAddr:     v.GetString("http_addr"),
	}, nil
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// splitList accepts both real lists (config files) and comma separated
// strings (environment variables, defaults).
func splitList(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		for _, part := range strings.Split(item, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func resolve(dataDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dataDir, path)
}
