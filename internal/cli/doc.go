// Package cli implements the interactive resourcehub client.
//
// A single goroutine reads commands and drives the catalog view; thumbnail
// derivations are the only background work.
//
// Commands:
//
//	list | l               show the current page
//	search <text>          filter by name or description (empty clears)
//	bookmarked on|off      show only bookmarked resources
//	next | n, prev | p     page navigation
//	page <n>               jump to page n (clamped)
//	bookmark <k>           toggle the bookmark of card k on the page
//	open <k>               print the download URL of card k
//	chat <k>, quiz <k>     send card k's document to chat or quiz
//	upload                 upload a new resource
//	reload                 fetch the catalog again
//	login, logout          sign in with an access token / sign out
//	help, exit | quit
package cli
