package client

import (
	"fmt"
	"strings"

	"github.com/rpggio/itemboard/internal/domain/item"
)

// User-facing failure messages. Each replaces whatever message was showing.
const (
	MessageAddFailed    = "Failed to add item"
	MessageDeleteFailed = "Failed to delete item"
)

// FetchFailedMessage names the API location the client could not reach.
func FetchFailedMessage(apiURL string) string {
	return fmt.Sprintf("Failed to fetch items from %s. Make sure the backend is running.", apiURL)
}

// Draft is the item being composed but not yet submitted.
type Draft struct {
	Name        string
	Description string
}

// Blank reports whether the draft has no usable name.
func (d Draft) Blank() bool {
	return strings.TrimSpace(d.Name) == ""
}

// State is the client's view of the world: a mirror of the last successful
// list plus local edits. Transitions return a new State and never mutate
// the receiver's slices.
type State struct {
	APIURL  string
	Items   []item.Item
	Draft   Draft
	Error   string
	Loading bool
}

// NewState returns the empty state shown before the first load.
func NewState(apiURL string) State {
	return State{APIURL: apiURL, Items: []item.Item{}}
}

// BeginLoad marks a list request in flight. ok is false when another list
// or add request is already running, in which case nothing should be sent.
func (s State) BeginLoad() (State, bool) {
	if s.Loading {
		return s, false
	}
	s.Loading = true
	return s, true
}

// LoadSucceeded replaces the collection and clears the error.
func (s State) LoadSucceeded(items []item.Item) State {
	s.Items = append(make([]item.Item, 0, len(items)), items...)
	s.Error = ""
	s.Loading = false
	return s
}

// LoadFailed keeps the collection and reports the API location.
func (s State) LoadFailed() State {
	s.Error = FetchFailedMessage(s.APIURL)
	s.Loading = false
	return s
}

// SetDraft replaces the draft.
func (s State) SetDraft(d Draft) State {
	s.Draft = d
	return s
}

// BeginAdd marks a create request in flight. ok is false for a blank draft
// or while another request is running; nothing should be sent then.
func (s State) BeginAdd() (State, bool) {
	if s.Loading || s.Draft.Blank() {
		return s, false
	}
	s.Loading = true
	return s, true
}

// AddSucceeded appends the stored item and resets the draft.
func (s State) AddSucceeded(created item.Item) State {
	items := make([]item.Item, 0, len(s.Items)+1)
	items = append(items, s.Items...)
	s.Items = append(items, created)
	s.Draft = Draft{}
	s.Error = ""
	s.Loading = false
	return s
}

// AddFailed keeps the draft so the user can retry.
func (s State) AddFailed() State {
	s.Error = MessageAddFailed
	s.Loading = false
	return s
}

// DeleteSucceeded drops the item with the given id.
func (s State) DeleteSucceeded(id int64) State {
	items := make([]item.Item, 0, len(s.Items))
	for _, it := range s.Items {
		if it.ID != id {
			items = append(items, it)
		}
	}
	s.Items = items
	s.Error = ""
	return s
}

// DeleteFailed leaves the collection untouched.
func (s State) DeleteFailed() State {
	s.Error = MessageDeleteFailed
	return s
}
