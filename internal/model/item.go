// Package model defines the data shared across the spotdl-bulk packages:
// work items, per-item outcomes and the run summary.
package model

import "strings"

// URL kinds recognised in Spotify links.
const (
	KindAlbum    = "album"
	KindArtist   = "artist"
	KindPlaylist = "playlist"
	KindTrack    = "track"
	KindUnknown  = "unknown"
)

// kindOrder is the match order used by Classify.
var kindOrder = []string{KindAlbum, KindArtist, KindPlaylist, KindTrack}

var kindLabels = map[string]string{
	KindAlbum:    "Album",
	KindArtist:   "Artist (full discography)",
	KindPlaylist: "Playlist",
	KindTrack:    "Single track",
}

// WorkItem is one URL to hand to the download tool.
// Kind is informational and only used for display.
type WorkItem struct {
	URL  string `yaml:"url"`
	Kind string `yaml:"kind"`
}

// NewWorkItem builds a WorkItem, deriving its Kind from the URL path.
func NewWorkItem(url string) WorkItem {
	return WorkItem{URL: url, Kind: Classify(url)}
}

// Classify returns the first kind whose "/<kind>/" segment appears in url,
// or KindUnknown.
func Classify(url string) string {
	for _, k := range kindOrder {
		if strings.Contains(url, "/"+k+"/") {
			return k
		}
	}
	return KindUnknown
}

// KindLabel returns the human-readable label for a kind.
func KindLabel(kind string) string {
	if label, ok := kindLabels[kind]; ok {
		return label
	}
	return "Unknown"
}
