package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"erlt/internal/domain"
)

// HistoryViewer displays recorded runs in an interactive TUI
type HistoryViewer struct{}

// NewHistoryViewer creates a new HistoryViewer
func NewHistoryViewer() *HistoryViewer {
	return &HistoryViewer{}
}

// View displays runs newest first; Enter or → focuses the output, ← or Esc goes back, q or Ctrl+C exits
func (hv *HistoryViewer) View(records []domain.RunRecord) error {
	if len(records) == 0 {
		color.Yellow("No recorded runs")
		return nil
	}

	// Newest first
	ordered := make([]domain.RunRecord, len(records))
	for i, r := range records {
		ordered[len(records)-1-i] = r
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	for i, r := range ordered {
		list.AddItem(hv.formatListItem(i, r), "", 0, nil)
	}
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true).
		SetText(fmt.Sprintf(" Test Runs (%d) | ↑↓ navigate, → view output, ← back, q to exit ", len(ordered)))

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(detailsView, 0, 2, false)

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index >= 0 && index < len(ordered) {
			detailsView.SetText(hv.formatDetails(ordered[index]))
			detailsView.ScrollToBeginning()
		}
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'q' {
				app.Stop()
				return nil
			}
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(int, string, string, rune) {
		updateDetails()
	})
	updateDetails()

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func (hv *HistoryViewer) formatListItem(index int, r domain.RunRecord) string {
	mark := "[red]✗"
	if r.State == domain.StatePassed.String() || r.State == domain.StateMultiplePassed.String() {
		mark = "[green]✓"
	}
	return fmt.Sprintf("%s [yellow]%d.[white] %s", mark, index+1, tview.Escape(r.Target.FunctionName))
}

// formatDetails renders one run using tview color tags
func (hv *HistoryViewer) formatDetails(r domain.RunRecord) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[cyan]Test:[white] %s:%s\n", tview.Escape(r.Target.TestsModule()), tview.Escape(r.Target.FunctionName))
	fmt.Fprintf(&b, "[cyan]Module:[white] %s\n", tview.Escape(r.Target.ModuleFilename))
	fmt.Fprintf(&b, "[cyan]Root:[white] %s\n", tview.Escape(r.Root))
	fmt.Fprintf(&b, "[cyan]Result:[white] %s\n", hv.resultText(r))
	fmt.Fprintf(&b, "[cyan]Duration:[white] %.2fs\n", r.DurationSeconds)
	fmt.Fprintf(&b, "[cyan]At:[white] %s\n\n", r.Timestamp)

	if r.Output != "" {
		fmt.Fprintf(&b, "[yellow]Output:[white]\n%s\n", tview.Escape(r.Output))
	}
	return b.String()
}

func (hv *HistoryViewer) resultText(r domain.RunRecord) string {
	switch r.State {
	case domain.StatePassed.String():
		return "[green]test passed[white]"
	case domain.StateMultiplePassed.String():
		return fmt.Sprintf("[green]%d tests passed[white]", r.Count)
	case domain.StateFailed.String():
		if r.Count == domain.UnknownCount {
			return "[red]test(s) failed[white]"
		}
		return fmt.Sprintf("[red]%d test(s) failed[white]", r.Count)
	}
	return "[red]aborted[white]"
}
