package client

import (
	"testing"
	"time"

	"github.com/rpggio/itemboard/internal/domain/item"
	"github.com/stretchr/testify/require"
)

const testAPIURL = "http://localhost:8080/api"

func sampleItems() []item.Item {
	now := time.Now().UTC()
	return []item.Item{
		{ID: 1, Name: "Sample Item 1", CreatedAt: now},
		{ID: 2, Name: "Sample Item 2", CreatedAt: now},
		{ID: 3, Name: "Sample Item 3", CreatedAt: now},
	}
}

func TestState_LoadCycle(t *testing.T) {
	s := NewState(testAPIURL)
	require.NotNil(t, s.Items)

	s, ok := s.BeginLoad()
	require.True(t, ok)
	require.True(t, s.Loading)

	_, ok = s.BeginLoad()
	require.False(t, ok, "second load while one is in flight")

	s = s.LoadSucceeded(sampleItems())
	require.False(t, s.Loading)
	require.Len(t, s.Items, 3)
	require.Empty(t, s.Error)
}

func TestState_LoadFailedKeepsItems(t *testing.T) {
	s := NewState(testAPIURL).LoadSucceeded(sampleItems())

	s, _ = s.BeginLoad()
	s = s.LoadFailed()
	require.False(t, s.Loading)
	require.Len(t, s.Items, 3)
	require.Equal(t,
		"Failed to fetch items from http://localhost:8080/api. Make sure the backend is running.",
		s.Error)

	// First-load failure leaves the collection empty.
	fresh := NewState(testAPIURL).LoadFailed()
	require.Empty(t, fresh.Items)
}

func TestState_LoadSuccessClearsError(t *testing.T) {
	s := NewState(testAPIURL).LoadFailed()
	require.NotEmpty(t, s.Error)

	s = s.LoadSucceeded(nil)
	require.Empty(t, s.Error)
	require.NotNil(t, s.Items)
}

func TestState_BeginAddGuards(t *testing.T) {
	s := NewState(testAPIURL)

	for _, name := range []string{"", "   ", "\t\n"} {
		_, ok := s.SetDraft(Draft{Name: name, Description: "d"}).BeginAdd()
		require.False(t, ok, "blank name %q must not be sent", name)
	}

	s = s.SetDraft(Draft{Name: "Widget"})
	s, ok := s.BeginAdd()
	require.True(t, ok)
	require.True(t, s.Loading)

	_, ok = s.BeginAdd()
	require.False(t, ok, "second submit while in flight")
}

func TestState_AddSucceeded(t *testing.T) {
	s := NewState(testAPIURL).LoadSucceeded(sampleItems())
	original := s.Items
	s = s.SetDraft(Draft{Name: "Widget", Description: "x"})
	s, _ = s.BeginAdd()

	desc := "x"
	s = s.AddSucceeded(item.Item{ID: 4, Name: "Widget", Description: &desc, CreatedAt: time.Now()})
	require.Len(t, s.Items, 4)
	require.Equal(t, int64(4), s.Items[3].ID)
	require.Equal(t, Draft{}, s.Draft)
	require.False(t, s.Loading)
	require.Len(t, original, 3, "previous state must not be mutated")
}

func TestState_AddFailedKeepsDraft(t *testing.T) {
	s := NewState(testAPIURL).SetDraft(Draft{Name: "Widget", Description: "x"})
	s, _ = s.BeginAdd()
	s = s.AddFailed()

	require.Equal(t, MessageAddFailed, s.Error)
	require.Equal(t, "Widget", s.Draft.Name)
	require.False(t, s.Loading)
	require.Empty(t, s.Items)
}

func TestState_Delete(t *testing.T) {
	s := NewState(testAPIURL).LoadSucceeded(sampleItems())

	failed := s.DeleteFailed()
	require.Equal(t, MessageDeleteFailed, failed.Error)
	require.Len(t, failed.Items, 3)

	s = failed.DeleteSucceeded(2)
	require.Empty(t, s.Error)
	require.Len(t, s.Items, 2)
	require.Equal(t, int64(1), s.Items[0].ID)
	require.Equal(t, int64(3), s.Items[1].ID)

	// Unknown ids leave the collection alone.
	require.Len(t, s.DeleteSucceeded(99).Items, 2)
}

func TestState_ErrorReplacedNotQueued(t *testing.T) {
	s := NewState(testAPIURL).DeleteFailed().AddFailed()
	require.Equal(t, MessageAddFailed, s.Error)
}
