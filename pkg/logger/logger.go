package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger логгер с printf-подобным API поверх zerolog
type Logger struct {
	zl   zerolog.Logger
	file *os.File
}

// New создает логгер. Если filePath не пустой, пишет одновременно в stdout и в файл
func New(filePath string, level string) (*Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	writers := []io.Writer{zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}}

	var file *os.File
	if filePath != "" {
		if dir := filepath.Dir(filePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create log dir: %w", err)
			}
		}
		file, err = os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		writers = append(writers, file)
	}

	zl := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(lvl).
		With().
		Timestamp().
		Logger()

	return &Logger{zl: zl, file: file}, nil
}

// NewWithWriter создает логгер поверх произвольного writer (используется в тестах)
func NewWithWriter(w io.Writer, level string) (*Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}
	return &Logger{zl: zerolog.New(w).Level(lvl).With().Timestamp().Logger()}, nil
}

// Nop логгер, который ничего не пишет
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

// Debug пишет сообщение уровня debug
func (l *Logger) Debug(format string, v ...interface{}) {
	l.zl.Debug().Msgf(format, v...)
}

// Info пишет сообщение уровня info
func (l *Logger) Info(format string, v ...interface{}) {
	l.zl.Info().Msgf(format, v...)
}

// Warn пишет сообщение уровня warn
func (l *Logger) Warn(format string, v ...interface{}) {
	l.zl.Warn().Msgf(format, v...)
}

// Error пишет сообщение уровня error
func (l *Logger) Error(format string, v ...interface{}) {
	l.zl.Error().Msgf(format, v...)
}

// Fatal пишет сообщение и завершает процесс
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.zl.Fatal().Msgf(format, v...)
}

// Close закрывает файл лога
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

func parseLevel(level string) (zerolog.Level, error) {
	if strings.TrimSpace(level) == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}
