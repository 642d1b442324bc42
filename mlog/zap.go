package mlog

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileConfig 文件日志配置, 文件按大小滚动
type FileConfig struct {
	Path       string
	Name       string
	Level      Level
	StdOut     bool
	MaxSizeMB  int // 单个文件大小上限, 默认 100MB
	MaxBackups int // 保留的历史文件数, 0 表示全部保留
}

// zapLogger 用 zap 输出, 级别过滤在本层完成, zap 只负责编码和写入
type zapLogger struct {
	sugar *zap.SugaredLogger
	level Level
}

// NewZapLogger 基于任意 zapcore.Core 创建 Logger
func NewZapLogger(core zapcore.Core, level Level) Logger {
	return &zapLogger{
		sugar: zap.New(core).Sugar(),
		level: level,
	}
}

// UseZapLogger 创建文件日志并设为全局 Logger, 返回的函数用于退出前刷盘
func UseZapLogger(conf FileConfig) (sync func(), err error) {
	path := conf.Path
	if len(path) == 0 {
		path = "."
	}
	if err = os.MkdirAll(path, 0755); err != nil {
		return nil, err
	}
	maxSize := conf.MaxSizeMB
	if maxSize <= 0 {
		maxSize = 100
	}
	writer := &lumberjack.Logger{
		Filename:   filepath.Join(path, genLogName(conf.Name)),
		MaxSize:    maxSize,
		MaxBackups: conf.MaxBackups,
		LocalTime:  true,
	}

	encConf := zap.NewProductionEncoderConfig()
	encConf.EncodeTime = zapcore.ISO8601TimeEncoder
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(encConf), zapcore.AddSync(writer), zapcore.DebugLevel),
	}
	if conf.StdOut {
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(encConf), zapcore.Lock(os.Stdout), zapcore.DebugLevel))
	}
	l := NewZapLogger(zapcore.NewTee(cores...), conf.Level).(*zapLogger)
	SetLogger(l)
	return func() {
		_ = l.sugar.Sync()
		_ = writer.Close()
	}, nil
}

func genLogName(logName string) string {
	if logName == "" {
		logName = "mlog"
	}
	return logName + ".log"
}

func (l *zapLogger) IsLevelEnabled(level Level) bool {
	return l.level >= level
}

func (l *zapLogger) Trace(v ...any) {
	if l.IsLevelEnabled(TraceLevel) {
		l.sugar.Debug(v...)
	}
}

func (l *zapLogger) Tracef(format string, v ...any) {
	if l.IsLevelEnabled(TraceLevel) {
		l.sugar.Debugf(format, v...)
	}
}

func (l *zapLogger) Debug(v ...any) {
	if l.IsLevelEnabled(DebugLevel) {
		l.sugar.Debug(v...)
	}
}

func (l *zapLogger) Debugf(format string, v ...any) {
	if l.IsLevelEnabled(DebugLevel) {
		l.sugar.Debugf(format, v...)
	}
}

func (l *zapLogger) Info(v ...any) {
	if l.IsLevelEnabled(InfoLevel) {
		l.sugar.Info(v...)
	}
}

func (l *zapLogger) Infof(format string, v ...any) {
	if l.IsLevelEnabled(InfoLevel) {
		l.sugar.Infof(format, v...)
	}
}

func (l *zapLogger) Notice(v ...any) {
	if l.IsLevelEnabled(NoticeLevel) {
		l.sugar.Info(v...)
	}
}

func (l *zapLogger) Noticef(format string, v ...any) {
	if l.IsLevelEnabled(NoticeLevel) {
		l.sugar.Infof(format, v...)
	}
}

func (l *zapLogger) Warn(v ...any) {
	if l.IsLevelEnabled(WarnLevel) {
		l.sugar.Warn(v...)
	}
}

func (l *zapLogger) Warnf(format string, v ...any) {
	if l.IsLevelEnabled(WarnLevel) {
		l.sugar.Warnf(format, v...)
	}
}

func (l *zapLogger) Error(v ...any) {
	if l.IsLevelEnabled(ErrorLevel) {
		l.sugar.Error(v...)
	}
}

func (l *zapLogger) Errorf(format string, v ...any) {
	if l.IsLevelEnabled(ErrorLevel) {
		l.sugar.Errorf(format, v...)
	}
}

func (l *zapLogger) Fatal(v ...any) {
	l.sugar.Fatal(v...)
}

func (l *zapLogger) Fatalf(format string, v ...any) {
	l.sugar.Fatalf(format, v...)
}
