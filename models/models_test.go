package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccount(t *testing.T) {
	profile := ProviderProfile{ProviderID: "abc123", DisplayName: "Jane Doe", Email: "jane@x.com"}

	acct := NewAccount(profile)

	assert.Empty(t, acct.LocalID, "local id is assigned by the store")
	assert.Equal(t, "abc123", acct.ProviderID)
	assert.Equal(t, "Jane Doe", acct.DisplayName)
	assert.Equal(t, "jane@x.com", acct.Email)
	assert.False(t, acct.CreatedAt.IsZero())
}

func TestAccount_TableName(t *testing.T) {
	assert.Equal(t, "accounts", Account{}.TableName())
}

func TestAccount_JSONMarshaling(t *testing.T) {
	acct := Account{LocalID: "id-1", ProviderID: "abc123", DisplayName: "Jane Doe", Email: "jane@x.com"}

	data, err := json.Marshal(acct)
	require.NoError(t, err)

	assert.JSONEq(t, `{"localId":"id-1","providerId":"abc123","displayName":"Jane Doe","email":"jane@x.com"}`, string(data))
}

func TestAccount_Reference(t *testing.T) {
	acct := &Account{LocalID: "id-1"}

	ref := acct.Reference()
	assert.Equal(t, "id-1", ref.LocalID)
	assert.False(t, ref.IsZero())
	assert.True(t, SessionReference{}.IsZero())
}

func TestNewTask(t *testing.T) {
	task := NewTask("Title", "Desc")

	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "Title", task.Title)
	assert.False(t, task.Completed)
	assert.Equal(t, "tasks", Task{}.TableName())
}

func TestSampleTasks(t *testing.T) {
	tasks := SampleTasks()
	require.Len(t, tasks, 2)
	assert.NotEqual(t, tasks[0].ID, tasks[1].ID)
}
