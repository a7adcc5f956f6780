package models

import "time"

// Location names. Every user is bound to at most one of them.
const (
	LocationDefault  = "default"
	LocationNangi    = "nangi"
	LocationPulchowk = "pulchowk"
	LocationDharan   = "dharan"
	LocationDhangadi = "dhangadi"
	LocationAll      = "all"
)

// Location describes the pages served for one location tag.
type Location struct {
	Name string
	// StatusTemplate is rendered on GET /<name>.
	StatusTemplate string
	// StatusHref is the link offered on the status page; empty for statusall.
	StatusHref string
	// Title of the listing page. Locations without a data directory leave it empty.
	Title string
	// ListsStations marks the overview location whose status page links every
	// other station instead of a single data page.
	ListsStations bool
}

// HasData reports whether the location owns a data directory and a /<name>data listing.
func (l Location) HasData() bool { return l.Title != "" }

// DataDir is the directory of the location relative to the public root.
func (l Location) DataDir() string { return "data/" + l.Name }

// DisplayPrefix is prepended to file names on the listing page.
func (l Location) DisplayPrefix() string { return "../data/" + l.Name + "/" }

// Locations is the closed set of location tags in route order.
var Locations = []Location{
	{Name: LocationDefault, StatusTemplate: "status", StatusHref: "../datadefault.txt"},
	{Name: LocationNangi, StatusTemplate: "status", StatusHref: "/nangidata", Title: "data of nangi"},
	{Name: LocationPulchowk, StatusTemplate: "status", StatusHref: "/pulchowkdata", Title: "data of Pulchowk"},
	{Name: LocationDharan, StatusTemplate: "status", StatusHref: "/dharandata", Title: "data of Dharan"},
	{Name: LocationDhangadi, StatusTemplate: "status", StatusHref: "/dhangadidata", Title: "data of Dhangadi"},
	{Name: LocationAll, StatusTemplate: "statusall", ListsStations: true},
}

// LookupLocation returns the location with the given name.
func LookupLocation(name string) (Location, bool) {
	for _, l := range Locations {
		if l.Name == name {
			return l, true
		}
	}
	return Location{}, false
}

// LocationStatus is a point-in-time summary of a location's data directory.
type LocationStatus struct {
	Location   string    `json:"location"`
	FileCount  int       `json:"file_count"`
	LatestFile string    `json:"latest_file,omitempty"`
	LatestTime string    `json:"latest_time,omitempty"`
	CheckedAt  time.Time `json:"checked_at"`
}
