package config

import (
	"encoding/json"
	"os"

	"github.com/fixkme/ticktimer/errs"
	"github.com/fixkme/ticktimer/mlog"
)

var Config *AppConfig

type AppConfig struct {
	AppVersion  string `json:"app_version" mapstructure:"app_version"`
	LogConfig   `json:",inline" mapstructure:",inline"`
	ClockConfig `json:",inline" mapstructure:",inline"`
	IsDebug     bool `json:"is_debug" mapstructure:"is_debug"`
}

type LogConfig struct {
	LogPath       string `json:"log_path" mapstructure:"log_path"`
	LogName       string `json:"log_name" mapstructure:"log_name"`
	LogLevel      int    `json:"log_level" mapstructure:"log_level"`             //0 fatal ~ 6 trace
	LogStdOut     bool   `json:"log_std_out" mapstructure:"log_std_out"`
	LogMaxSizeMB  int    `json:"log_max_size_mb" mapstructure:"log_max_size_mb"`
	LogMaxBackups int    `json:"log_max_backups" mapstructure:"log_max_backups"`
}

type ClockConfig struct {
	ClockCycleMs      int    `json:"clock_cycle_ms" mapstructure:"clock_cycle_ms"`             //轮询节拍 毫秒
	ClockResolution   string `json:"clock_resolution" mapstructure:"clock_resolution"`         //milli 或 micro
	ClockTaskChanSize int    `json:"clock_task_chan_size" mapstructure:"clock_task_chan_size"` //任务队列长度
	HeartbeatMs       int    `json:"heartbeat_ms" mapstructure:"heartbeat_ms"`                 //心跳任务周期 毫秒
}

const (
	ResolutionMilli = "milli"
	ResolutionMicro = "micro"
)

// LoadConfig 文件和环境变量都没有设置的字段保留默认值
func LoadConfig(configFile string, loadConfigFromEnv func(*AppConfig) error) error {
	Config = newDefaultConfig()
	if len(configFile) == 0 {
		if loadConfigFromEnv == nil {
			return errs.InvalidConfig.Print("no config file")
		}
		if err := loadConfigFromEnv(Config); err != nil {
			return err
		}
		return Config.Validate()
	}
	if err := loadConfigFromFile(configFile); err != nil {
		return err
	}
	if loadConfigFromEnv != nil {
		if err := loadConfigFromEnv(Config); err != nil {
			return err
		}
	}
	return Config.Validate()
}

func newDefaultConfig() *AppConfig {
	conf := new(AppConfig)
	conf.LogLevel = int(mlog.InfoLevel)
	return conf
}

func loadConfigFromFile(configFile string) error {
	data, err := os.ReadFile(configFile)
	if err != nil {
		return err
	}
	if err = json.Unmarshal(data, Config); err != nil {
		return errs.Unmarshal.Printf("%s: %v", configFile, err)
	}
	return nil
}

// Validate 检查并填充默认值
func (conf *AppConfig) Validate() error {
	if conf.ClockResolution == "" {
		conf.ClockResolution = ResolutionMilli
	}
	if conf.ClockResolution != ResolutionMilli && conf.ClockResolution != ResolutionMicro {
		return errs.InvalidConfig.Printf("clock_resolution=%s", conf.ClockResolution)
	}
	if conf.ClockCycleMs < 0 || conf.HeartbeatMs < 0 || conf.ClockTaskChanSize < 0 {
		return errs.InvalidConfig.Print("negative clock option")
	}
	if conf.LogLevel < int(mlog.FatalLevel) || conf.LogLevel > int(mlog.TraceLevel) {
		return errs.InvalidConfig.Printf("log_level=%d", conf.LogLevel)
	}
	return nil
}

// FileLogConfig 转换为 mlog 的文件日志配置
func (conf *LogConfig) FileLogConfig() mlog.FileConfig {
	return mlog.FileConfig{
		Path:       conf.LogPath,
		Name:       conf.LogName,
		Level:      mlog.Level(conf.LogLevel),
		StdOut:     conf.LogStdOut,
		MaxSizeMB:  conf.LogMaxSizeMB,
		MaxBackups: conf.LogMaxBackups,
	}
}

func (conf *AppConfig) JsonFormat() string {
	if conf == nil {
		return "{}"
	}
	data, err := json.MarshalIndent(conf, "", "  ")
	if err != nil {
		return ""
	}
	return string(data)
}
