package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActiveOnlyKeepsServerOrder(t *testing.T) {
	tasks := []Task{
		{ID: "3", Name: "c", Active: True},
		{ID: "1", Name: "a", Active: False},
		{ID: "2", Name: "b", Active: True},
		{ID: "4", Name: "d", Active: "TRUE"},
		{ID: "5", Name: "e", Active: True},
	}

	got := ActiveOnly(tasks)

	require.Len(t, got, 3)
	assert.Equal(t, "c", got[0].Name)
	assert.Equal(t, "b", got[1].Name)
	assert.Equal(t, "e", got[2].Name)
	assert.Len(t, tasks, 5, "input must not be modified")
}

func TestActiveOnlyEmpty(t *testing.T) {
	assert.Empty(t, ActiveOnly(nil))
	assert.NotNil(t, ActiveOnly(nil))
}

func TestAnyFailed(t *testing.T) {
	assert.False(t, AnyFailed([]Task{{LastStatus: True}, {LastStatus: ""}}))
	assert.True(t, AnyFailed([]Task{{LastStatus: True}, {LastStatus: False}}))
}

func TestDecodeKeepsStrings(t *testing.T) {
	body := `{"tasks":[{"id":"1","name":"job-a","active":"true","laststatus":"false","records":"0","lastexecuted":"2024-01-01"}]}`

	var list TaskList
	require.NoError(t, json.Unmarshal([]byte(body), &list))
	require.Len(t, list.Tasks, 1)

	task := list.Tasks[0]
	assert.Equal(t, "job-a", task.Name)
	assert.Equal(t, "false", task.LastStatus)
	assert.True(t, task.IsActive())
	assert.True(t, task.Failed())
	assert.Equal(t, "0", task.Records)
}

func TestCredentialsPresent(t *testing.T) {
	assert.True(t, Credentials{EndpointURL: "http://x/", APIKey: "k"}.Present())
	assert.False(t, Credentials{EndpointURL: "http://x/"}.Present())
	assert.False(t, Credentials{EndpointURL: "  ", APIKey: "k"}.Present())
}
