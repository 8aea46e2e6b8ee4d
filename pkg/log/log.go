package log

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Flags that change the layout of each line
const (
	FTimestamp = 1 << iota
	FShowFile
)

// Level is a log level. Messages below a Logger's minimum level are dropped
type Level int

// Available log levels, in increasing severity
const (
	TRACE Level = 10 * iota
	DEBUG
	INFO
	WARN
	ERROR
	CRIT
	PANIC
)

var levelNames = map[Level]string{
	TRACE: "TRACE",
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
	CRIT:  "CRIT",
	PANIC: "PANIC",
}

// String returns the level name padded to five characters, for aligned output
func (l Level) String() string {
	name, ok := levelNames[l]
	if !ok {
		return "?????"
	}

	return fmt.Sprintf("%-5s", name)
}

// ParseLevel converts a level name (case insensitive) to a Level
func ParseLevel(name string) (Level, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for lvl, n := range levelNames {
		if n == name {
			return lvl, nil
		}
	}

	return INFO, fmt.Errorf("unknown log level %q", name)
}

// Logger is a level based logging engine. Loggers made with Clone share their output lock
type Logger struct {
	flags    int
	output   io.Writer
	prefix   string
	wMutex   *sync.Mutex
	minLevel Level
}

// New creates a new logger with the set options
func New(flags int, output io.Writer, prefix string, minLevel Level) *Logger {
	return &Logger{flags: flags, output: output, prefix: prefix, minLevel: minLevel, wMutex: new(sync.Mutex)}
}

// Discard returns a Logger that throws everything away. Useful as a default and in tests
func Discard() *Logger {
	return New(0, io.Discard, "", PANIC+1)
}

// Prefix returns the prefix of this Logger
func (l *Logger) Prefix() string { return l.prefix }

// SetPrefix sets the prefix and returns the Logger for chaining
func (l *Logger) SetPrefix(prefix string) *Logger {
	l.prefix = prefix
	return l
}

// MinLevel returns the lowest level this Logger will write
func (l *Logger) MinLevel() Level { return l.minLevel }

// SetMinLevel changes the lowest level this Logger will write
func (l *Logger) SetMinLevel(level Level) *Logger {
	l.minLevel = level
	return l
}

// Clone returns a copy of the Logger. The copy writes to the same output
func (l *Logger) Clone() *Logger {
	out := *l
	return &out
}

func shortenFilename(filename string) string {
	if idx := strings.LastIndexByte(filename, '/'); idx != -1 {
		return filename[idx+1:]
	}

	return filename
}

func (l *Logger) writeOut(msg string, level Level) {
	if level < l.minLevel {
		return
	}

	out := strings.Builder{}
	if l.flags&FTimestamp != 0 {
		out.WriteString("[" + time.Now().Format("15:04:05.000") + "] ")
	}

	out.WriteString("[" + level.String() + "] ")

	if l.flags&FShowFile != 0 {
		_, file, line, ok := runtime.Caller(2)
		if !ok {
			out.WriteString("[???] ")
		} else {
			out.WriteString("[" + shortenFilename(file) + ":" + strconv.Itoa(line) + "] ")
		}
	}

	if l.prefix != "" {
		out.WriteString("[" + l.prefix + "] ")
	}

	out.WriteString(strings.TrimRight(msg, "\r\n"))
	out.WriteByte('\n')

	l.wMutex.Lock()
	defer l.wMutex.Unlock()
	_, _ = io.WriteString(l.output, out.String())
}

// Trace logs the passed data at the TRACE level
func (l *Logger) Trace(args ...interface{}) { l.writeOut(fmt.Sprint(args...), TRACE) }

// Tracef formats and logs the passed data at the TRACE level
func (l *Logger) Tracef(format string, args ...interface{}) {
	l.writeOut(fmt.Sprintf(format, args...), TRACE)
}

// Debug logs the passed data at the DEBUG level
func (l *Logger) Debug(args ...interface{}) { l.writeOut(fmt.Sprint(args...), DEBUG) }

// Debugf formats and logs the passed data at the DEBUG level
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.writeOut(fmt.Sprintf(format, args...), DEBUG)
}

// Info logs the passed data at the INFO level
func (l *Logger) Info(args ...interface{}) { l.writeOut(fmt.Sprint(args...), INFO) }

// Infof formats and logs the passed data at the INFO level
func (l *Logger) Infof(format string, args ...interface{}) {
	l.writeOut(fmt.Sprintf(format, args...), INFO)
}

// Warn logs the passed data at the WARN level
func (l *Logger) Warn(args ...interface{}) { l.writeOut(fmt.Sprint(args...), WARN) }

// Warnf formats and logs the passed data at the WARN level
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.writeOut(fmt.Sprintf(format, args...), WARN)
}

// Error logs the passed data at the ERROR level
func (l *Logger) Error(args ...interface{}) { l.writeOut(fmt.Sprint(args...), ERROR) }

// Errorf formats and logs the passed data at the ERROR level
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.writeOut(fmt.Sprintf(format, args...), ERROR)
}

// Crit logs the passed data at the CRIT level and exits the program
func (l *Logger) Crit(args ...interface{}) {
	l.writeOut(fmt.Sprint(args...), CRIT)
	os.Exit(1)
}

// Critf formats and logs the passed data at the CRIT level and exits the program
func (l *Logger) Critf(format string, args ...interface{}) {
	l.writeOut(fmt.Sprintf(format, args...), CRIT)
	os.Exit(1)
}

// Panicf formats and logs the passed data at the PANIC level, then panics with the message
func (l *Logger) Panicf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.writeOut(msg, PANIC)
	panic(msg)
}
