package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/oclettings/internal/models"
	"github.com/desertthunder/oclettings/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	MenuView ViewState = iota
	LettingListView
	LettingDetailView
	ProfileListView
	ProfileDetailView
)

// LettingResolver lists lettings and resolves one by id.
type LettingResolver interface {
	List(ctx context.Context) ([]*models.Letting, error)
	Get(ctx context.Context, id int64) (*models.Letting, error)
}

// ProfileResolver lists profiles and resolves one by username.
type ProfileResolver interface {
	List(ctx context.Context) ([]*models.Profile, error)
	Get(ctx context.Context, username string) (*models.Profile, error)
}

// Model represents the TUI application state.
type Model struct {
	ctx         context.Context
	view        ViewState
	lettings    LettingResolver
	profiles    ProfileResolver
	width       int
	height      int
	menu        list.Model
	lettingList list.Model
	profileList list.Model
	letting     *models.Letting
	profile     *models.Profile
	notice      string
	err         error
	help        help.Model
	keys        keyMap
}

// NewModel creates a new TUI model over the given resolvers.
func NewModel(ctx context.Context, lettings LettingResolver, profiles ProfileResolver) *Model {
	menu := newList("Orange County Lettings", []list.Item{
		menuItem{title: "Lettings", desc: "Browse every letting", view: LettingListView},
		menuItem{title: "Profiles", desc: "Browse every profile", view: ProfileListView},
	}, 0, 0)

	return &Model{
		ctx:         ctx,
		view:        MenuView,
		lettings:    lettings,
		profiles:    profiles,
		menu:        menu,
		lettingList: newList("Lettings", nil, 0, 0),
		profileList: newList("Profiles", nil, 0, 0),
		help:        help.New(),
		keys:        newKeyMap(),
	}
}

// State returns the current view state.
func (m *Model) State() ViewState {
	return m.view
}

// Err returns the last fatal error, if any.
func (m *Model) Err() error {
	return m.err
}

// Init shows the menu; lists are fetched when opened.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for _, l := range []*list.Model{&m.menu, &m.lettingList, &m.profileList} {
			l.SetSize(msg.Width-4, msg.Height-6)
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.quit) && !m.filtering() {
			return m, tea.Quit
		}
		if m.err != nil {
			if key.Matches(msg, m.keys.back) {
				m.err = nil
				m.view = MenuView
			}
			return m, nil
		}
		switch m.view {
		case MenuView:
			return m.handleMenuKeys(msg)
		case LettingListView:
			return m.handleLettingListKeys(msg)
		case ProfileListView:
			return m.handleProfileListKeys(msg)
		case LettingDetailView, ProfileDetailView:
			return m.handleDetailKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	return m.updateLists(msg)
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgLettingsFetched:
		res := msg.data.(lettingsResult)
		if res.err != nil {
			m.err = res.err
			return m, nil
		}
		cmd := m.lettingList.SetItems(lettingItems(res.lettings))
		m.view = LettingListView
		return m, cmd

	case MsgProfilesFetched:
		res := msg.data.(profilesResult)
		if res.err != nil {
			m.err = res.err
			return m, nil
		}
		cmd := m.profileList.SetItems(profileItems(res.profiles))
		m.view = ProfileListView
		return m, cmd

	case MsgLettingFetched:
		res := msg.data.(lettingResult)
		if errors.Is(res.err, shared.ErrNotFound) {
			m.notice = res.err.Error()
			return m, nil
		}
		if res.err != nil {
			m.err = res.err
			return m, nil
		}
		m.letting = res.letting
		m.notice = ""
		m.view = LettingDetailView
		return m, nil

	case MsgProfileFetched:
		res := msg.data.(profileResult)
		if errors.Is(res.err, shared.ErrNotFound) {
			m.notice = res.err.Error()
			return m, nil
		}
		if res.err != nil {
			m.err = res.err
			return m, nil
		}
		m.profile = res.profile
		m.notice = ""
		m.view = ProfileDetailView
		return m, nil
	}

	return m, nil
}

// filtering reports whether the active list is capturing keystrokes for its filter.
func (m *Model) filtering() bool {
	switch m.view {
	case MenuView:
		return m.menu.SettingFilter()
	case LettingListView:
		return m.lettingList.SettingFilter()
	case ProfileListView:
		return m.profileList.SettingFilter()
	}
	return false
}

func (m *Model) handleMenuKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.lettings):
		return m, m.fetchLettings()
	case key.Matches(msg, m.keys.profiles):
		return m, m.fetchProfiles()
	case key.Matches(msg, m.keys.enter):
		if item, ok := m.menu.SelectedItem().(menuItem); ok {
			if item.view == ProfileListView {
				return m, m.fetchProfiles()
			}
			return m, m.fetchLettings()
		}
	}

	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

func (m *Model) handleLettingListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.lettingList.SettingFilter() {
		switch {
		case key.Matches(msg, m.keys.back):
			m.view = MenuView
			m.err = nil
			return m, nil
		case key.Matches(msg, m.keys.refresh):
			return m, m.fetchLettings()
		case key.Matches(msg, m.keys.enter):
			if item, ok := m.lettingList.SelectedItem().(lettingItem); ok {
				return m, m.fetchLetting(item.letting.ID)
			}
		}
	}

	var cmd tea.Cmd
	m.lettingList, cmd = m.lettingList.Update(msg)
	return m, cmd
}

func (m *Model) handleProfileListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.profileList.SettingFilter() {
		switch {
		case key.Matches(msg, m.keys.back):
			m.view = MenuView
			m.err = nil
			return m, nil
		case key.Matches(msg, m.keys.refresh):
			return m, m.fetchProfiles()
		case key.Matches(msg, m.keys.enter):
			if item, ok := m.profileList.SelectedItem().(profileItem); ok {
				return m, m.fetchProfile(item.profile.String())
			}
		}
	}

	var cmd tea.Cmd
	m.profileList, cmd = m.profileList.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.back) {
		if m.view == ProfileDetailView {
			m.view = ProfileListView
		} else {
			m.view = LettingListView
		}
	}
	return m, nil
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case MenuView:
		m.menu, cmd = m.menu.Update(msg)
	case LettingListView:
		m.lettingList, cmd = m.lettingList.Update(msg)
	case ProfileListView:
		m.profileList, cmd = m.profileList.Update(msg)
	}
	return m, cmd
}

func (m *Model) fetchLettings() tea.Cmd {
	return func() tea.Msg {
		lettings, err := m.lettings.List(m.ctx)
		return lettingsFetchedMsg(lettings, err)
	}
}

func (m *Model) fetchLetting(id int64) tea.Cmd {
	return func() tea.Msg {
		letting, err := m.lettings.Get(m.ctx, id)
		return lettingFetchedMsg(letting, err)
	}
}

func (m *Model) fetchProfiles() tea.Cmd {
	return func() tea.Msg {
		profiles, err := m.profiles.List(m.ctx)
		return profilesFetchedMsg(profiles, err)
	}
}

func (m *Model) fetchProfile(username string) tea.Cmd {
	return func() tea.Msg {
		profile, err := m.profiles.Get(m.ctx, username)
		return profileFetchedMsg(profile, err)
	}
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n" +
			m.help.ShortHelpView([]key.Binding{m.keys.back, m.keys.quit})
	}

	var body string
	switch m.view {
	case MenuView:
		body = m.renderList(m.menu, m.keys.enter, m.keys.lettings, m.keys.profiles, m.keys.quit)
	case LettingListView:
		body = m.renderList(m.lettingList, m.keys.enter, m.keys.refresh, m.keys.back, m.keys.quit)
	case ProfileListView:
		body = m.renderList(m.profileList, m.keys.enter, m.keys.refresh, m.keys.back, m.keys.quit)
	case LettingDetailView:
		body = m.renderLetting()
	case ProfileDetailView:
		body = m.renderProfile()
	}

	if m.notice != "" {
		body += "\n" + styles.warn.Render(m.notice)
	}
	return body
}

func (m *Model) renderList(l list.Model, keys ...key.Binding) string {
	if len(l.Items()) == 0 && m.view != MenuView {
		return fmt.Sprintf("%s\n%s\n\n%s", styles.title.Render(l.Title), styles.help.Render("Nothing here yet."), m.help.ShortHelpView(keys))
	}
	return fmt.Sprintf("%s\n\n%s", l.View(), m.help.ShortHelpView(keys))
}

func field(label, value string) string {
	return styles.label.Render(label) + value
}

func (m *Model) renderLetting() string {
	if m.letting == nil {
		return ""
	}

	lines := []string{styles.title.Render(m.letting.Title)}
	if a := m.letting.Address; a != nil {
		lines = append(lines,
			field("Street", a.String()),
			field("City", a.City),
			field("State", a.State),
			field("Zip code", fmt.Sprintf("%d", a.ZipCode)),
			field("Country", a.CountryISOCode),
		)
	}
	lines = append(lines, "", m.help.ShortHelpView([]key.Binding{m.keys.back, m.keys.quit}))

	return strings.Join(lines, "\n")
}

func (m *Model) renderProfile() string {
	if m.profile == nil {
		return ""
	}

	lines := []string{styles.title.Render(m.profile.String())}
	if u := m.profile.User; u != nil {
		lines = append(lines,
			field("First name", u.FirstName),
			field("Last name", u.LastName),
			field("Email", u.Email),
		)
	}
	city := m.profile.FavoriteCity
	if city == "" {
		city = "-"
	}
	lines = append(lines, field("Favorite city", city), "", m.help.ShortHelpView([]key.Binding{m.keys.back, m.keys.quit}))

	return strings.Join(lines, "\n")
}
