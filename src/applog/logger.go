package applog

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// LogLevel represents severity.
type LogLevel int32

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = map[string]LogLevel{
	"debug":   LevelDebug,
	"info":    LevelInfo,
	"warn":    LevelWarn,
	"warning": LevelWarn,
	"error":   LevelError,
}

func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	}
	return "unknown"
}

var currentLevel int32 = int32(LevelInfo)

var baseLogger atomic.Pointer[zerolog.Logger]

func init() { SetOutput(os.Stderr) }

func newLogger(w io.Writer) *zerolog.Logger {
	cw := zerolog.ConsoleWriter{Out: w, TimeFormat: "2006/01/02 15:04:05.000000", NoColor: true}
	l := zerolog.New(cw).With().Timestamp().Logger()
	return &l
}

// SetOutput redirects all log output. Safe to call while other goroutines log.
func SetOutput(w io.Writer) { baseLogger.Store(newLogger(w)) }

// SetLogLevel parses and sets global log level. Unknown names are ignored.
func SetLogLevel(s string) {
	l, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return
	}
	atomic.StoreInt32(&currentLevel, int32(l))
}

// ApplyLevel sets the level named by s. An unknown name keeps the current level
// and logs a warning; an empty one is ignored.
func ApplyLevel(s string) {
	if strings.TrimSpace(s) == "" {
		return
	}
	if !ValidLevel(s) {
		Warnf("unknown log level %q, keeping %s", s, GetLogLevel())
		return
	}
	SetLogLevel(s)
}

// ValidLevel reports whether s names a known level.
func ValidLevel(s string) bool {
	_, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

func getLevel() LogLevel { return LogLevel(atomic.LoadInt32(&currentLevel)) }

// GetLogLevel returns current global log level.
func GetLogLevel() LogLevel { return getLevel() }

func logf(l LogLevel, format string, args ...interface{}) {
	if getLevel() > l {
		return
	}
	lg := baseLogger.Load()
	var ev *zerolog.Event
	switch l {
	case LevelDebug:
		ev = lg.Debug()
	case LevelWarn:
		ev = lg.Warn()
	case LevelError:
		ev = lg.Error()
	default:
		ev = lg.Info()
	}
	// Only format when there are args so literal % in prebuilt messages survive.
	if len(args) == 0 {
		ev.Msg(format)
		return
	}
	ev.Msg(fmt.Sprintf(format, args...))
}

func Debugf(format string, a ...interface{}) { logf(LevelDebug, format, a...) }
func Infof(format string, a ...interface{})  { logf(LevelInfo, format, a...) }
func Warnf(format string, a ...interface{})  { logf(LevelWarn, format, a...) }
func Errorf(format string, a ...interface{}) { logf(LevelError, format, a...) }

// TimeTrack logs the duration of a phase at debug level.
func TimeTrack(start time.Time, label string) {
	Debugf("%s took %s", label, time.Since(start))
}
