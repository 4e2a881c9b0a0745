package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/oclettings/internal/models"
)

var (
	_ list.Item = menuItem{}
	_ list.Item = lettingItem{}
	_ list.Item = profileItem{}
)

// menuItem is an entry of the home menu.
type menuItem struct {
	title string
	desc  string
	view  ViewState
}

func (i menuItem) FilterValue() string { return i.title }
func (i menuItem) Title() string       { return i.title }
func (i menuItem) Description() string { return i.desc }

// lettingItem wraps [models.Letting] to implement [list.Item].
type lettingItem struct {
	letting *models.Letting
}

func (i lettingItem) FilterValue() string { return i.letting.Title }
func (i lettingItem) Title() string       { return i.letting.Title }
func (i lettingItem) Description() string {
	if i.letting.Address == nil {
		return fmt.Sprintf("#%d", i.letting.ID)
	}
	return fmt.Sprintf("#%d • %s • %s, %s", i.letting.ID, i.letting.Address, i.letting.Address.City, i.letting.Address.State)
}

// profileItem wraps [models.Profile] to implement [list.Item].
type profileItem struct {
	profile *models.Profile
}

func (i profileItem) FilterValue() string { return i.profile.String() }
func (i profileItem) Title() string       { return i.profile.String() }
func (i profileItem) Description() string {
	if i.profile.FavoriteCity == "" {
		return "no favorite city"
	}
	return fmt.Sprintf("favorite city • %s", i.profile.FavoriteCity)
}

func newList(title string, items []list.Item, width, height int) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = title
	l.SetShowHelp(false)
	return l
}

func lettingItems(lettings []*models.Letting) []list.Item {
	items := make([]list.Item, len(lettings))
	for i, l := range lettings {
		items[i] = lettingItem{letting: l}
	}
	return items
}

func profileItems(profiles []*models.Profile) []list.Item {
	items := make([]list.Item, len(profiles))
	for i, p := range profiles {
		items[i] = profileItem{profile: p}
	}
	return items
}
