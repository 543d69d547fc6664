package common

// Field names of the document handoff consumed by the chat and quiz features.
const (
	HandoffContentField = "pdfContent"
	HandoffNameField    = "pdfName"
	HandoffURLField     = "pdfUrl"
)

// BookmarkKindResource is the bookmark namespace used by the catalog.
const BookmarkKindResource = "resource"

// DefaultPageSize is the number of catalog cards shown per page.
const DefaultPageSize = 6
