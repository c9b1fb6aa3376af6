package main

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/xiaorui77/goutils/wait"
	"github.com/xiaorui77/ifacex-watch/internal/stub"
)

var (
	addr   string
	apiKey string
	delay  time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "stubserver",
	Short: "Serve a fixture task list for local development",
	Long: `stubserver answers GET /tasks/index.json?apiKey=<key> with a fixture task
list. Task states can be changed at runtime through /api/v1/tasks.`,
	Run: run,
}

func init() {
	rootCmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "listen address")
	rootCmd.Flags().StringVarP(&apiKey, "key", "k", "abc123", "accepted API key")
	rootCmd.Flags().DurationVar(&delay, "delay", 0, "delay before every tasks/index.json answer")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) {
	_, stopCtx := wait.SetupStopSignal()
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	s := stub.NewServer(addr, apiKey, stub.Fixture())
	s.SetDelay(delay)
	s.Run(stopCtx)
}
