package tui

import (
	"github.com/EricChiu147/link-saver/internal/router"
	"github.com/EricChiu147/link-saver/internal/store"
)

type linksLoadedMsg struct {
	links []store.Link
}

type linkSavedMsg struct {
	result router.SaveResult
}

type linkDeletedMsg struct {
	result router.StatusResult
}

type answerMsg struct {
	result router.SearchResult
}

type errMsg struct {
	err error
}
