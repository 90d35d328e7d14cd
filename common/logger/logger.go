package logger

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/contributory/ai-gateway/common/config"
	"github.com/contributory/ai-gateway/common/helper"
	"github.com/gin-gonic/gin"
)

const (
	loggerDEBUG = "debug"
	loggerINFO  = "info"
	loggerWarn  = "warn"
	loggerError = "error"
)

// LogEntry is one JSON log line.
type LogEntry struct {
	Ts        string `json:"ts"`
	Level     string `json:"level"`
	RequestId string `json:"request_id,omitempty"`
	Msg       string `json:"msg"`
	Service   string `json:"service"`
	Instance  string `json:"instance"`
}

// switchWriter forwards to a target that SetupLogger can replace while other
// goroutines are logging.
type switchWriter struct {
	mu     sync.RWMutex
	target io.Writer
}

func (w *switchWriter) Write(p []byte) (int, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.target.Write(p)
}

// swap installs target and returns the previous one. Writes in flight finish
// on the old target first.
func (w *switchWriter) swap(target io.Writer) io.Writer {
	w.mu.Lock()
	defer w.mu.Unlock()
	old := w.target
	w.target = target
	return old
}

var (
	generalWriter = &switchWriter{target: os.Stdout}
	errorWriter   = &switchWriter{target: os.Stderr}
)

func init() {
	gin.DefaultWriter = generalWriter
	gin.DefaultErrorWriter = errorWriter
}

var setupLogLock sync.Mutex
var setupLogDate atomic.Value // string
var generalLogFile *os.File
var errorLogFile *os.File

func currentLogDate() string {
	date, _ := setupLogDate.Load().(string)
	return date
}

// SetupLogger tees the log writers into daily files under LogDir. It is
// called at startup and again lazily whenever the date rolls over.
func SetupLogger() {
	if LogDir == "" {
		return
	}
	if !setupLogLock.TryLock() {
		return
	}
	defer setupLogLock.Unlock()

	dateStr := time.Now().Format("20060102")
	if dateStr == currentLogDate() {
		return
	}

	rotateLogFiles(dateStr)
	setupLogDate.Store(dateStr)
}

// rotateLogFiles points the writers at the files for dateStr. The caller
// holds setupLogLock.
func rotateLogFiles(dateStr string) {
	generalLogPath := filepath.Join(LogDir, fmt.Sprintf("gateway-%s.log", dateStr))
	fd, err := os.OpenFile(generalLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Fatal("failed to open general log file")
	}
	errorLogPath := filepath.Join(LogDir, fmt.Sprintf("gateway-error-%s.log", dateStr))
	errFd, err := os.OpenFile(errorLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Fatal("failed to open error log file")
	}

	generalWriter.swap(io.MultiWriter(os.Stdout, fd))
	errorWriter.swap(io.MultiWriter(os.Stderr, errFd))
	// old files are closed only once no writer can reach them
	if generalLogFile != nil {
		_ = generalLogFile.Close()
	}
	if errorLogFile != nil {
		_ = errorLogFile.Close()
	}
	generalLogFile = fd
	errorLogFile = errFd
}

func writeJSONLog(writer io.Writer, level, requestId, msg string) {
	entry := LogEntry{
		Ts:        time.Now().Format(time.RFC3339Nano),
		Level:     level,
		RequestId: requestId,
		Msg:       msg,
		Service:   config.ServiceName,
		Instance:  config.InstanceId,
	}
	jsonBytes, err := json.Marshal(entry)
	if err != nil {
		_, _ = fmt.Fprintf(writer, `{"ts":"%s","level":"%s","msg":"json marshal error","service":"%s","instance":"%s"}`+"\n",
			entry.Ts, level, config.ServiceName, config.InstanceId)
		return
	}
	_, _ = writer.Write(append(jsonBytes, '\n'))
}

func SysLog(s string) {
	writeJSONLog(generalWriter, loggerINFO, "", s)
}

func SysError(s string) {
	writeJSONLog(errorWriter, loggerError, "", s)
}

func Debug(ctx context.Context, msg string) {
	if config.DebugEnabled {
		logHelper(ctx, loggerDEBUG, msg)
	}
}

func Info(ctx context.Context, msg string) {
	logHelper(ctx, loggerINFO, msg)
}

func Warn(ctx context.Context, msg string) {
	logHelper(ctx, loggerWarn, msg)
}

func Error(ctx context.Context, msg string) {
	logHelper(ctx, loggerError, msg)
}

func Debugf(ctx context.Context, format string, a ...any) {
	Debug(ctx, fmt.Sprintf(format, a...))
}

func Infof(ctx context.Context, format string, a ...any) {
	Info(ctx, fmt.Sprintf(format, a...))
}

func Warnf(ctx context.Context, format string, a ...any) {
	Warn(ctx, fmt.Sprintf(format, a...))
}

func Errorf(ctx context.Context, format string, a ...any) {
	Error(ctx, fmt.Sprintf(format, a...))
}

func logHelper(ctx context.Context, level string, msg string) {
	var writer io.Writer = generalWriter
	if level == loggerError {
		writer = errorWriter
	}

	id := ""
	if ctx != nil {
		if v := ctx.Value(RequestIdKey); v != nil {
			id = fmt.Sprintf("%v", v)
		}
	}
	if id == "" {
		id = helper.GenRequestID()
	}

	writeJSONLog(writer, level, id, msg)

	if LogDir != "" && currentLogDate() != time.Now().Format("20060102") {
		go SetupLogger()
	}
}

func FatalLog(v ...any) {
	msg := fmt.Sprintf("%v", v)
	writeJSONLog(errorWriter, "fatal", "", msg)
	os.Exit(1)
}
