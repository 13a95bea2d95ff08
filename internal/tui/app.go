// Package tui is the interactive surface over the saved-link collection:
// a two-pane browser with inline add, delete, and ask-AI flows. All state
// changes go through the router; the list re-queries the store after every
// mutation.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/EricChiu147/link-saver/internal/browser"
	"github.com/EricChiu147/link-saver/internal/capture"
	"github.com/EricChiu147/link-saver/internal/router"
	"github.com/EricChiu147/link-saver/internal/store"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeAsk
	modeAnswer
)

type App struct {
	router *router.Router

	links  []store.Link
	cursor int
	mode   mode

	width  int
	height int

	addInput textinput.Model
	askInput textinput.Model
	spinner  spinner.Model

	busy     bool
	question string
	answer   string
	status   string
	err      error
}

func NewApp(r *router.Router) *App {
	add := textinput.New()
	add.Placeholder = "https://..."
	add.Prompt = promptStyle.Render("add ")
	add.CharLimit = 500

	ask := textinput.New()
	ask.Placeholder = "Ask about your saved links..."
	ask.Prompt = promptStyle.Render("? ")
	ask.CharLimit = 200

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	return &App{
		router:   r,
		addInput: add,
		askInput: ask,
		spinner:  sp,
	}
}

func Run(r *router.Router) error {
	p := tea.NewProgram(NewApp(r), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (a *App) Init() tea.Cmd {
	return a.loadLinksCmd()
}

func (a *App) loadLinksCmd() tea.Cmd {
	r := a.router
	return func() tea.Msg {
		res := r.Dispatch(context.Background(), router.ListLinks{})
		list, ok := res.(router.ListResult)
		if !ok || !list.OK {
			return errMsg{err: fmt.Errorf("loading links: %s", list.Error)}
		}
		return linksLoadedMsg{links: list.Links}
	}
}

func (a *App) saveCmd(url string) tea.Cmd {
	r := a.router
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
		defer cancel()

		page, err := capture.Fetch(ctx, url)
		if err != nil {
			return errMsg{err: err}
		}
		res := r.Dispatch(ctx, router.SaveLink{URL: page.URL, Title: page.Title, Content: page.Text})
		saved, ok := res.(router.SaveResult)
		if !ok {
			return errMsg{err: fmt.Errorf("unexpected response %T", res)}
		}
		return linkSavedMsg{result: saved}
	}
}

func (a *App) deleteCmd(id int64) tea.Cmd {
	r := a.router
	return func() tea.Msg {
		res := r.Dispatch(context.Background(), router.DeleteLink{ID: id})
		status, ok := res.(router.StatusResult)
		if !ok {
			return errMsg{err: fmt.Errorf("unexpected response %T", res)}
		}
		return linkDeletedMsg{result: status}
	}
}

func (a *App) askCmd(question string) tea.Cmd {
	r := a.router
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
		defer cancel()

		res := r.Dispatch(ctx, router.Search{Query: question})
		search, ok := res.(router.SearchResult)
		if !ok {
			return errMsg{err: fmt.Errorf("unexpected response %T", res)}
		}
		return answerMsg{result: search}
	}
}

func openBrowserCmd(url string) tea.Cmd {
	return func() tea.Msg {
		if err := browser.Open(url); err != nil {
			return errMsg{err: err}
		}
		return nil
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		a.err = nil
		return a.handleKey(msg)

	case spinner.TickMsg:
		if !a.busy {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case linksLoadedMsg:
		a.links = msg.links
		if a.cursor >= len(a.links) {
			a.cursor = max(0, len(a.links)-1)
		}
		return a, nil

	case linkSavedMsg:
		a.busy = false
		if msg.result.OK {
			a.status = fmt.Sprintf("saved #%d", msg.result.ID)
		} else {
			a.status = msg.result.Message
		}
		return a, a.loadLinksCmd()

	case linkDeletedMsg:
		a.busy = false
		if msg.result.OK {
			a.status = "deleted"
		} else {
			a.status = msg.result.Error
		}
		return a, a.loadLinksCmd()

	case answerMsg:
		a.busy = false
		if msg.result.OK {
			a.answer = msg.result.Answer
			a.mode = modeAnswer
		} else {
			a.status = msg.result.Error
			a.mode = modeList
		}
		return a, nil

	case errMsg:
		a.busy = false
		a.err = msg.err
		if a.mode == modeAdd || a.mode == modeAsk {
			a.mode = modeList
		}
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.mode {
	case modeAdd:
		return a.handleAddKey(msg)
	case modeAsk:
		return a.handleAskKey(msg)
	case modeAnswer:
		switch msg.String() {
		case "esc", "enter":
			a.mode = modeList
			a.answer = ""
		case "q", "ctrl+c":
			return a, tea.Quit
		}
		return a, nil
	}
	return a.handleListKey(msg)
}

func (a *App) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit

	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}

	case "down", "j":
		if a.cursor < len(a.links)-1 {
			a.cursor++
		}

	case "a":
		a.mode = modeAdd
		a.addInput.SetValue("")
		a.addInput.Focus()
		return a, textinput.Blink

	case "/":
		a.mode = modeAsk
		a.askInput.SetValue("")
		a.askInput.Focus()
		return a, textinput.Blink

	case "d":
		if l := a.selected(); l != nil {
			a.busy = true
			return a, tea.Batch(a.spinner.Tick, a.deleteCmd(l.ID))
		}

	case "o":
		if l := a.selected(); l != nil {
			return a, openBrowserCmd(l.URL)
		}

	case "r":
		a.status = ""
		return a, a.loadLinksCmd()
	}
	return a, nil
}

func (a *App) handleAddKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = modeList
		return a, nil
	case "enter":
		url := a.addInput.Value()
		if url == "" {
			a.mode = modeList
			return a, nil
		}
		a.mode = modeList
		a.busy = true
		a.status = "saving " + truncateStr(url, 40)
		return a, tea.Batch(a.spinner.Tick, a.saveCmd(url))
	}
	var cmd tea.Cmd
	a.addInput, cmd = a.addInput.Update(msg)
	return a, cmd
}

func (a *App) handleAskKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = modeList
		return a, nil
	case "enter":
		q := a.askInput.Value()
		if q == "" {
			a.mode = modeList
			return a, nil
		}
		a.question = q
		a.busy = true
		a.status = "asking..."
		return a, tea.Batch(a.spinner.Tick, a.askCmd(q))
	}
	var cmd tea.Cmd
	a.askInput, cmd = a.askInput.Update(msg)
	return a, cmd
}

func (a *App) selected() *store.Link {
	if a.cursor < 0 || a.cursor >= len(a.links) {
		return nil
	}
	return &a.links[a.cursor]
}

func (a *App) View() string {
	if a.width == 0 {
		return "loading..."
	}

	header := headerStyle.Render("link-saver")
	if a.busy {
		header += " " + a.spinner.View()
	}
	if a.err != nil {
		header += "  " + errorStyle.Render(a.err.Error())
	}

	inputLine := ""
	switch a.mode {
	case modeAdd:
		inputLine = a.addInput.View()
	case modeAsk:
		inputLine = a.askInput.View()
	}

	chrome := 3 // header + status bar + input line
	paneHeight := a.height - chrome
	if paneHeight < 3 {
		paneHeight = 3
	}

	listWidth := a.width / 2
	previewWidth := a.width - listWidth - 4

	list := listPaneActiveStyle.
		Width(listWidth).
		Height(paneHeight - 2).
		Render(renderList(a.links, a.cursor, paneHeight-2, listWidth))

	var previewContent string
	if a.mode == modeAnswer {
		previewContent = renderAnswer(a.question, a.answer, previewWidth, paneHeight-2)
	} else {
		previewContent = renderPreview(a.selected(), previewWidth, paneHeight-2)
	}
	preview := previewPaneStyle.
		Width(previewWidth).
		Height(paneHeight - 2).
		Render(previewContent)

	panes := lipgloss.JoinHorizontal(lipgloss.Top, list, preview)
	status := renderStatusBar(len(a.links), a.width, a.mode, a.busy, a.status)

	return lipgloss.JoinVertical(lipgloss.Left, header, inputLine, panes, status)
}
