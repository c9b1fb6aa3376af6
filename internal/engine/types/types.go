package types

import (
	"net/url"
	"strings"
)

const TasksPath = "tasks/index.json"

// Route is a top-level view of the client.
type Route int

const (
	RouteLogin Route = iota
	RouteMain
	RouteNotFound
)

var routeNames = map[Route]string{
	RouteLogin:    "login",
	RouteMain:     "main",
	RouteNotFound: "not-found",
}

func (r Route) String() string {
	if s, ok := routeNames[r]; ok {
		return s
	}
	return "unknown"
}

// Trigger says why a poll was started.
type Trigger int

const (
	TriggerInitial Trigger = iota
	TriggerScheduled
	TriggerManual
)

func (t Trigger) String() string {
	switch t {
	case TriggerInitial:
		return "initial"
	case TriggerScheduled:
		return "scheduled"
	case TriggerManual:
		return "manual"
	}
	return "unknown"
}

// NormalizeURL trims the input, adds "http://" when no http(s) scheme is
// given and ends the result with exactly one "/". Applying it twice yields
// the same string.
func NormalizeURL(raw string) string {
	u := strings.TrimSpace(raw)
	lower := strings.ToLower(u)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		u = "http://" + u
	}
	return strings.TrimRight(u, "/") + "/"
}

// TasksURL builds the status endpoint for a normalized base URL.
func TasksURL(base, apiKey string) string {
	return base + TasksPath + "?apiKey=" + url.QueryEscape(apiKey)
}
