package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	l    *zap.Logger
	once sync.Once
)

// Init 按配置初始化全局 logger；重复调用仅第一次生效。
func Init(level string, development bool) {
	once.Do(func() {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			lvl = zapcore.InfoLevel
		}
		var encCfg zapcore.EncoderConfig
		var enc zapcore.Encoder
		if development {
			encCfg = zap.NewDevelopmentEncoderConfig()
			enc = zapcore.NewConsoleEncoder(encCfg)
		} else {
			encCfg = zap.NewProductionEncoderConfig()
			enc = zapcore.NewJSONEncoder(encCfg)
		}
		core := zapcore.NewCore(enc, zapcore.Lock(os.Stdout), lvl)
		l = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	})
}

func get() *zap.Logger {
	if l == nil {
		Init("info", false)
	}
	return l
}

func Debug(msg string, fields ...zap.Field) { get().Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { get().Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { get().Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { get().Error(msg, fields...) }

// Sync 刷新缓冲日志，进程退出前调用。
func Sync() { _ = get().Sync() }
