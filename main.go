package main

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fixkme/ticktimer/framework/app"
	"github.com/fixkme/ticktimer/framework/config"
	"github.com/fixkme/ticktimer/mlog"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configFile string
		console    bool
	)
	cmd := &cobra.Command{
		Use:          "ticktimer",
		Short:        "Run phase-aligned periodic timers on a polling clock",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadConfig(configFile, loadConfigFromEnv); err != nil {
				return err
			}
			if console {
				mlog.UseStdLogger(mlog.Level(config.Config.LogLevel))
			} else {
				flush, err := mlog.UseZapLogger(config.Config.FileLogConfig())
				if err != nil {
					return err
				}
				defer flush()
			}
			mlog.Infof("config: %s", config.Config.JsonFormat())
			return app.DefaultApp().Run(newClockModule(&config.Config.ClockConfig))
		},
	}
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "json config file")
	cmd.Flags().BoolVar(&console, "console", false, "log to stdout only")
	return cmd
}

// loadConfigFromEnv 环境变量覆盖配置文件
func loadConfigFromEnv(conf *config.AppConfig) error {
	if v := os.Getenv("TICKTIMER_CLOCK_RESOLUTION"); v != "" {
		conf.ClockResolution = v
	}
	ints := map[string]*int{
		"TICKTIMER_CLOCK_CYCLE_MS": &conf.ClockCycleMs,
		"TICKTIMER_HEARTBEAT_MS":   &conf.HeartbeatMs,
		"TICKTIMER_LOG_LEVEL":      &conf.LogLevel,
	}
	for key, p := range ints {
		v := os.Getenv(key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*p = n
	}
	if v := os.Getenv("TICKTIMER_LOG_STDOUT"); v != "" {
		conf.LogStdOut = v == "1" || v == "true"
	}
	return nil
}
