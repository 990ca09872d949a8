package log

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// 未调用 InitLog 之前也可以安全使用，默认只输出 warn 以上
var logger = newLogger(os.Stdout, "", log.WarnLevel)

func newLogger(w io.Writer, prefix string, level log.Level) *log.Logger {
	l := log.New(w)
	l.SetPrefix(prefix)
	l.SetReportTimestamp(true)
	l.SetTimeFormat(time.DateTime)
	l.SetLevel(level)
	return l
}

// InitLog 初始化进程级日志，logLevel 为空时使用 info
func InitLog(appName string, logLevel string) {
	// 使用 os.Stdout 而不是 os.Stderr, 控制台不会把所有日志都标红
	logger = newLogger(os.Stdout, appName, ParseLevel(logLevel))
	// 显示文件名和行号
	logger.SetReportCaller(true)
}

// SetOutput 重定向日志输出, 测试里用来捕获日志
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

func SetLevel(logLevel string) {
	logger.SetLevel(ParseLevel(logLevel))
}

func ParseLevel(logLevel string) log.Level {
	if logLevel == "" {
		return log.InfoLevel
	}
	level, err := log.ParseLevel(strings.ToLower(logLevel))
	if err != nil {
		return log.InfoLevel
	}
	return level
}

func Enabled(logLevel string) bool {
	return logger.GetLevel() <= ParseLevel(logLevel)
}

func Fatal(format string, args ...any) {
	if len(args) == 0 {
		logger.Fatal(format)
		return
	}
	logger.Fatalf(format, args...)
}

func Info(format string, args ...any) {
	if len(args) == 0 {
		logger.Info(format)
		return
	}
	logger.Infof(format, args...)
}

func Warn(format string, args ...any) {
	if len(args) == 0 {
		logger.Warn(format)
		return
	}
	logger.Warnf(format, args...)
}

func Error(format string, args ...any) {
	if len(args) == 0 {
		logger.Error(format)
		return
	}
	logger.Errorf(format, args...)
}

func Debug(format string, args ...any) {
	if len(args) == 0 {
		logger.Debug(format)
		return
	}
	logger.Debugf(format, args...)
}
