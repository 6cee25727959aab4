package cmd

import (
	"errors"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"exportscan.dev/pkg/exportscan/internal/controller"
	"exportscan.dev/pkg/exportscan/internal/domain"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "exportscan"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	maxDepthFlagName    = "max-depth"
	excludeFlagName     = "exclude"
	privateFlagName     = "private"
	valuesFlagName      = "values"
	classesFlagName     = "classes"
	prototypesFlagName  = "prototypes"
	debugFlagName       = "debug"
	runParallelFlagName = "parallel"
	formatFlagName      = "format"
	verboseFlagName     = "verbose"
	logFileFlagName     = "log-file"
	diffContextFlagName = "context"

	maxDepthConfigKey    = "scan.max_depth"
	excludeConfigKey     = "scan.exclude"
	privateConfigKey     = "scan.include_private"
	valuesConfigKey      = "scan.include_values"
	classesConfigKey     = "scan.include_classes"
	prototypesConfigKey  = "scan.follow_prototypes"
	debugConfigKey       = "scan.debug"
	runParallelConfigKey = "run.parallel"
	formatConfigKey      = "output.format"
	diffContextConfigKey = "diff.context"

	defaultRunParallel = 1
	defaultDiffContext = 3

	envPrefix = "EXPORTSCAN"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".exportscan.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)

	// Scan defaults mirror the engine defaults.
	viper.SetDefault(maxDepthConfigKey, domain.DefaultMaxDepth)
	viper.SetDefault(excludeConfigKey, domain.DefaultExclude)
	viper.SetDefault(privateConfigKey, false)
	viper.SetDefault(valuesConfigKey, false)
	viper.SetDefault(classesConfigKey, true)
	viper.SetDefault(prototypesConfigKey, true)
	viper.SetDefault(debugConfigKey, false)
	viper.SetDefault(runParallelConfigKey, defaultRunParallel)
	viper.SetDefault(formatConfigKey, controller.FormatText)
	viper.SetDefault(diffContextConfigKey, defaultDiffContext)

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return
		}

		return
	}
}

// parseSlogLevel accepts slog level names ("info", "WARN", "debug-2"), the
// "warning" alias and numeric levels, falling back to defaultLevel.
func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	value = strings.TrimSpace(value)
	if value == "" {
		return defaultLevel
	}

	if strings.EqualFold(value, "warning") {
		return slog.LevelWarn
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err == nil {
		return level
	}

	if n, err := strconv.Atoi(value); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// logSettings is the resolved log.* configuration.
type logSettings struct {
	filename   string
	level      slog.Level
	maxSize    int
	maxBackups int
	maxAge     int
	compress   bool
}

// readLogSettings resolves the log.* keys; an explicit logPath wins over
// log.filename and verbose forces debug level.
func readLogSettings(logPath string, verbose bool) logSettings {
	settings := logSettings{
		filename:   strings.TrimSpace(logPath),
		level:      parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo),
		maxSize:    viper.GetInt(logMaxSizeKey),
		maxBackups: viper.GetInt(logMaxBackupsKey),
		maxAge:     viper.GetInt(logMaxAgeKey),
		compress:   viper.GetBool(logCompressKey),
	}

	if settings.filename == "" {
		settings.filename = strings.TrimSpace(viper.GetString(logFilenameKey))
	}

	if settings.filename == "" {
		settings.filename = defaultLogFilename
	}

	if verbose {
		settings.level = slog.LevelDebug
	}

	return settings
}

// configureLogger installs a rotating file logger as the slog default. Scan
// traces requested with --debug go to stderr instead, see scanOptions.
func configureLogger(logPath string, verbose bool) {
	settings := readLogSettings(logPath, verbose)

	writer := &lumberjack.Logger{
		Filename:   settings.filename,
		MaxSize:    settings.maxSize,
		MaxBackups: settings.maxBackups,
		MaxAge:     settings.maxAge,
		Compress:   settings.compress,
	}

	globalLogger = slog.New(slog.NewTextHandler(writer, &slog.HandlerOptions{
		AddSource: true,
		Level:     settings.level,
	}))
	slog.SetDefault(globalLogger)
}
