package mlog

import "sync/atomic"

type Logger interface {
	Trace(v ...any)
	Debug(v ...any)
	Info(v ...any)
	Notice(v ...any)
	Warn(v ...any)
	Error(v ...any)
	Fatal(v ...any)

	Tracef(format string, v ...any)
	Debugf(format string, v ...any)
	Infof(format string, v ...any)
	Noticef(format string, v ...any)
	Warnf(format string, v ...any)
	Errorf(format string, v ...any)
	Fatalf(format string, v ...any)
}

// logger 全局日志, 未设置时所有输出被丢弃.
// 轮询协程随时在写日志, 替换必须是原子的
var logger atomic.Pointer[Logger]

// SetLogger 可以在其他协程写日志时调用, nil 表示关闭输出
func SetLogger(l Logger) {
	if l == nil {
		logger.Store(nil)
		return
	}
	logger.Store(&l)
}

// GetLogger 返回当前的全局日志, 未设置时为 nil
func GetLogger() Logger {
	if p := logger.Load(); p != nil {
		return *p
	}
	return nil
}

func UseStdLogger(level Level) {
	SetLogger(newStdoutLogger(level))
}

type Level uint32

const (
	FatalLevel Level = iota
	ErrorLevel
	WarnLevel
	NoticeLevel
	InfoLevel
	DebugLevel
	TraceLevel
)

func Trace(a ...any) {
	l := GetLogger()
	if l == nil {
		return
	}
	l.Trace(a...)
}

func Tracef(format string, a ...any) {
	l := GetLogger()
	if l == nil {
		return
	}
	l.Tracef(format, a...)
}

func Debug(a ...any) {
	l := GetLogger()
	if l == nil {
		return
	}
	l.Debug(a...)
}

func Debugf(format string, a ...any) {
	l := GetLogger()
	if l == nil {
		return
	}
	l.Debugf(format, a...)
}

func Info(a ...any) {
	l := GetLogger()
	if l == nil {
		return
	}
	l.Info(a...)
}

func Infof(format string, a ...any) {
	l := GetLogger()
	if l == nil {
		return
	}
	l.Infof(format, a...)
}

func Notice(a ...any) {
	l := GetLogger()
	if l == nil {
		return
	}
	l.Notice(a...)
}

func Noticef(format string, a ...any) {
	l := GetLogger()
	if l == nil {
		return
	}
	l.Noticef(format, a...)
}

func Warn(a ...any) {
	l := GetLogger()
	if l == nil {
		return
	}
	l.Warn(a...)
}

func Warnf(format string, a ...any) {
	l := GetLogger()
	if l == nil {
		return
	}
	l.Warnf(format, a...)
}

func Error(a ...any) {
	l := GetLogger()
	if l == nil {
		return
	}
	l.Error(a...)
}

func Errorf(format string, a ...any) {
	l := GetLogger()
	if l == nil {
		return
	}
	l.Errorf(format, a...)
}

func Fatal(a ...any) {
	l := GetLogger()
	if l == nil {
		return
	}
	l.Fatal(a...)
}

func Fatalf(format string, a ...any) {
	l := GetLogger()
	if l == nil {
		return
	}
	l.Fatalf(format, a...)
}
