package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/xiaorui77/ifacex-watch/internal/engine"
	"github.com/xiaorui77/ifacex-watch/internal/engine/download"
	"github.com/xiaorui77/ifacex-watch/internal/engine/types"
	"github.com/xiaorui77/ifacex-watch/internal/storage"
	"github.com/xiaorui77/ifacex-watch/internal/view"
	"github.com/xiaorui77/ifacex-watch/pkg/model"
)

const exitFailing = 2

var (
	loginURL string
	loginKey string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Check and store the server credentials",
	Long: `Probe the server with the given URL and API key and store them when the
server accepts them. The URL may omit the scheme, http:// is assumed.`,
	Run: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored credentials",
	Run:   runLogout,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Poll once and print the active tasks",
	Long:  `Poll once and print the active tasks. Exits with status 2 when any task failed.`,
	Run:   runStatus,
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll on the configured interval and print every result",
	Run:   runWatch,
}

func init() {
	loginCmd.Flags().StringVarP(&loginURL, "url", "u", "", "server URL, e.g. example.com:8080")
	loginCmd.Flags().StringVarP(&loginKey, "key", "k", os.Getenv("IFACEX_API_KEY"), "API key (default $IFACEX_API_KEY)")
}

func runLogin(cmd *cobra.Command, args []string) {
	store := mustStore()
	login := engine.NewLogin(download.NewDownloader(), store, conf.Login.Timeout, conf.AuthCodes())

	creds, err := login.Submit(cmd.Context(), loginURL, loginKey)
	if err != nil {
		fatal("Login failed: %v", err)
	}
	fmt.Printf("Logged in to %s\n", creds.EndpointURL)
}

func runLogout(cmd *cobra.Command, args []string) {
	if err := mustStore().Clear(); err != nil {
		fatal("Logout failed: %v", err)
	}
	fmt.Println("Logged out.")
}

func runStatus(cmd *cobra.Command, args []string) {
	tasks, err := pollOnce(cmd.Context(), mustStore(), download.NewDownloader())
	if err != nil {
		fatal("%v", err)
	}
	view.PrintTasks(os.Stdout, tasks)
	if code := exitCode(tasks); code != 0 {
		os.Exit(code)
	}
}

func runWatch(cmd *cobra.Command, args []string) {
	console := view.NewConsole(os.Stdout)
	poller := engine.NewPoller(download.NewDownloader(), mustStore(), conf.Poll.Interval, conf.Poll.Timeout).
		SetListener(console).SetNotifier(console).SetRouter(console)
	if err := poller.Start(cmd.Context()); err != nil {
		fatal("%v, run `ifacex login` first", err)
	}

	select {
	case <-cmd.Context().Done():
	case route := <-console.Routes():
		if route == types.RouteLogin {
			fmt.Fprintln(os.Stderr, "Session ended, run `ifacex login` again.")
		}
	}
	poller.Stop()
	<-poller.Done()
}

// pollOnce runs one poll with the stored credentials and returns the
// displayed (active) tasks.
func pollOnce(ctx context.Context, store storage.Store, fetcher types.Fetcher) ([]model.Task, error) {
	creds, err := store.Load()
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w, run `ifacex login` first", engine.ErrNoCredentials)
	}
	if err != nil {
		return nil, err
	}
	list, err := fetcher.Fetch(ctx, types.TasksURL(creds.EndpointURL, creds.APIKey), conf.Poll.Timeout)
	if err != nil {
		return nil, err
	}
	return model.ActiveOnly(list.Tasks), nil
}

func exitCode(tasks []model.Task) int {
	if model.AnyFailed(tasks) {
		return exitFailing
	}
	return 0
}
