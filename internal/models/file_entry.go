package models

// FileEntry is one download link on a listing page.
type FileEntry struct {
	FileName string `json:"file_name"` // display path, e.g. ../data/nangi/report.pdf
	FileTime string `json:"file_time"` // creation time, HTTP-date
}
