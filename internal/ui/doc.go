// Package ui implements an interactive terminal browser for lettings and profiles using bubbletea's Elm architecture.
//
// The TUI mirrors the site's pages:
//  1. [MenuView] : Choose lettings or profiles (the home page)
//  2. [LettingListView] : Browse every letting
//  3. [LettingDetailView] : Show one letting with its address
//  4. [ProfileListView] : Browse every profile
//  5. [ProfileDetailView] : Show one profile with its user
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Lookups run as [tea.Cmd] functions against the same resolvers the web handlers use.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, l/p, r, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
