package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/oclettings/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgLettingsFetched MsgKind = iota
	MsgLettingFetched
	MsgProfilesFetched
	MsgProfileFetched
)

type lettingsResult struct {
	lettings []*models.Letting
	err      error
}

type lettingResult struct {
	letting *models.Letting
	err     error
}

type profilesResult struct {
	profiles []*models.Profile
	err      error
}

type profileResult struct {
	profile *models.Profile
	err     error
}

// lettingsFetchedMsg is the constructor for [MsgLettingsFetched]
func lettingsFetchedMsg(lettings []*models.Letting, err error) Msg {
	return Msg{kind: MsgLettingsFetched, data: lettingsResult{lettings, err}}
}

// lettingFetchedMsg is the constructor for [MsgLettingFetched]
func lettingFetchedMsg(letting *models.Letting, err error) Msg {
	return Msg{kind: MsgLettingFetched, data: lettingResult{letting, err}}
}

// profilesFetchedMsg is the constructor for [MsgProfilesFetched]
func profilesFetchedMsg(profiles []*models.Profile, err error) Msg {
	return Msg{kind: MsgProfilesFetched, data: profilesResult{profiles, err}}
}

// profileFetchedMsg is the constructor for [MsgProfileFetched]
func profileFetchedMsg(profile *models.Profile, err error) Msg {
	return Msg{kind: MsgProfileFetched, data: profileResult{profile, err}}
}
