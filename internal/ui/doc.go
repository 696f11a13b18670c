// Package ui hosts a menubar.Bar in a Bubble Tea program: the bar sits on
// the top row, open menus drop down below it, and a content region fills
// the rest of the screen.
//
// Message flow:
//   - Update routes every tea.Msg through a typed handler registry.
//   - Key presses go to the bar's focused node first while the bar owns
//     focus (navigation.go); keys it leaves unhandled fall through to host
//     shortcuts such as tab and q.
//   - Activations run their callback command through the command bus and
//     report back as menu.ActionResult messages.
//
// Focus ownership:
//   - Leaving the bar passes through OwnerNone before the new owner
//     settles. The bar's focus monitor schedules a menubar.Check that
//     collapses every open menu once focus has really left (focus.go).
//
// Reload:
//   - With a backend.Watcher configured, a changed spec file is rebuilt
//     into a new bar and swapped in; a failed rebuild keeps the old one.
package ui
