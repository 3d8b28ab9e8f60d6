// Package layout renders the page chrome shared by every screen.
package layout

import "github.com/mcoot/qrinvite/internal/session"

// FlashMessage is a one-shot notice carried across a redirect
type FlashMessage struct {
	Type    string
	Message string
}

// PageData is what every page passes to the layout
type PageData struct {
	Title string
	// Greeting is empty on public pages
	Greeting string
	Flash    *FlashMessage
	// Active is the path of the current nav entry
	Active string
}

type navItem struct {
	path  string
	label string
}

var nav = []navItem{
	{session.DashboardPath, "Dashboard"},
	{session.CreatePath, "Criar convite"},
	{session.ListPath, "Convites"},
	{session.ValidatePath, "Validar"},
}

func flashClass(f *FlashMessage) string {
	return "flash flash-" + f.Type
}
