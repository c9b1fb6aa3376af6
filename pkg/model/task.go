package model

import "strings"

const (
	True  = "true"
	False = "false"
)

// Task is one monitored job as reported by the server. Every field is a
// string on the wire, including the boolean-like ones.
type Task struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Active       string `json:"active"`
	LastStatus   string `json:"laststatus"`
	Records      string `json:"records"`
	LastExecuted string `json:"lastexecuted"`
}

func (t Task) IsActive() bool {
	return t.Active == True
}

// Failed reports whether the last run failed. Only the literal "false" counts.
func (t Task) Failed() bool {
	return t.LastStatus == False
}

func (t Task) Passed() bool {
	return t.LastStatus == True
}

// TaskList is the body of tasks/index.json.
type TaskList struct {
	Tasks []Task `json:"tasks"`
}

// ActiveOnly keeps the tasks with active == "true" in server order.
func ActiveOnly(tasks []Task) []Task {
	res := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t.IsActive() {
			res = append(res, t)
		}
	}
	return res
}

func AnyFailed(tasks []Task) bool {
	for _, t := range tasks {
		if t.Failed() {
			return true
		}
	}
	return false
}

// Credentials are the two secrets the client needs to talk to the server.
type Credentials struct {
	EndpointURL string `json:"endpointUrl"`
	APIKey      string `json:"apiKey"`
}

// Present is true only when both fields are non-empty.
func (c Credentials) Present() bool {
	return strings.TrimSpace(c.EndpointURL) != "" && strings.TrimSpace(c.APIKey) != ""
}
