package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/xiaorui77/goutils/wait"
	"github.com/xiaorui77/ifacex-watch/internal/config"
	"github.com/xiaorui77/ifacex-watch/internal/engine"
	"github.com/xiaorui77/ifacex-watch/internal/engine/download"
	"github.com/xiaorui77/ifacex-watch/internal/view"
	"github.com/xiaorui77/ifacex-watch/internal/view/model"
)

var (
	cfgFile   string
	ephemeral bool

	conf *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "ifacex",
	Short: "Watch ifaceX tasks from the terminal",
	Long: `ifacex polls an ifaceX server for its task list and shows which tasks
passed or failed. Without a sub-command it starts the terminal UI.`,
	PersistentPreRun: setup,
	Run:              runUI,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default $HOME/.config/ifacex/ifacex.yaml)")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "keep credentials in memory only")

	rootCmd.AddCommand(loginCmd, logoutCmd, statusCmd, watchCmd)
}

func main() {
	_, stopCtx := wait.SetupStopSignal()

	if err := rootCmd.ExecuteContext(stopCtx); err != nil {
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, args []string) {
	c, err := config.Load(cfgFile)
	if err != nil {
		fatal("Failed to load config: %v", err)
	}
	if ephemeral {
		c.Storage.Backend = config.BackendMemory
	}
	conf = c
	setupLogger(conf, nil)
}

func runUI(cmd *cobra.Command, args []string) {
	store := mustStore()

	// the terminal belongs to the UI from here on
	logs := model.NewLogsBuffer()
	setupLogger(conf, logs)

	fetcher := download.NewDownloader()
	login := engine.NewLogin(fetcher, store, conf.Login.Timeout, conf.AuthCodes())
	newPoller := func() *engine.Poller {
		return engine.NewPoller(fetcher, store, conf.Poll.Interval, conf.Poll.Timeout)
	}

	ui := view.NewUI(conf, login, newPoller, logs)
	ui.Init(engine.Gate(store))
	ui.Run(cmd.Context())
	logrus.Infof("[main] bye")
}
