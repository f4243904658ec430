package model

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/retouch/internal/cli/styles"
	"github.com/bnema/retouch/internal/domain/entity"
	"github.com/bnema/retouch/internal/logging"
)

// historyLoadedMsg is sent when prompt records are loaded.
type historyLoadedMsg struct {
	records []entity.PromptRecord
	err     error
}

// historyChangedMsg is sent after a delete or clear.
type historyChangedMsg struct {
	err error
}

func (m ChatModel) loadHistory() tea.Msg {
	log := logging.FromContext(m.ctx)

	collection, err := m.deps.Prompts.LoadAll(m.ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to load prompt history")
		return historyLoadedMsg{err: err}
	}

	// Newest first.
	records := make([]entity.PromptRecord, 0, len(collection.Items))
	for i := len(collection.Items) - 1; i >= 0; i-- {
		records = append(records, collection.Items[i])
	}
	log.Debug().Int("count", len(records)).Msg("loaded prompt history")
	return historyLoadedMsg{records: records}
}

func (m ChatModel) deleteRecord(id string) tea.Cmd {
	return func() tea.Msg {
		return historyChangedMsg{err: m.deps.Prompts.Delete(m.ctx, id)}
	}
}

func (m ChatModel) clearHistory() tea.Msg {
	return historyChangedMsg{err: m.deps.Prompts.Clear(m.ctx)}
}

func (m ChatModel) handleHistoryLoaded(msg historyLoadedMsg) (tea.Model, tea.Cmd) {
	m.historyErr = msg.err
	if msg.err != nil {
		m.records = nil
	} else {
		m.records = msg.records
	}
	m.table.SetRows(historyRows(m.records))
	if m.table.Cursor() >= len(m.records) {
		m.table.SetCursor(max(len(m.records)-1, 0))
	}
	return m, nil
}

func (m ChatModel) handleHistoryChanged(msg historyChangedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil && !errors.Is(msg.err, entity.ErrRecordNotFound) {
		m.historyErr = msg.err
		return m, nil
	}
	return m, m.loadHistory
}

func (m ChatModel) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Delete):
		if rec, ok := m.selectedRecord(); ok {
			return m, m.deleteRecord(rec.ID)
		}
		return m, nil
	case key.Matches(msg, m.keys.Clear):
		m.enqueue(m.clearHistoryDialog())
		return m, nil
	case key.Matches(msg, m.keys.Send):
		// Reuse the selected prompt in the chat tab.
		if rec, ok := m.selectedRecord(); ok {
			m.input.SetValue(rec.Prompt)
			if rec.ImagePath != "" && m.image == "" {
				m.image = rec.ImagePath
			}
			m.tabs.SetActive(styles.TabChat)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ChatModel) selectedRecord() (entity.PromptRecord, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.records) {
		return entity.PromptRecord{}, false
	}
	return m.records[i], true
}

func (m ChatModel) renderHistory() string {
	if m.historyErr != nil {
		text := m.theme.ErrorStyle.Render(styles.IconX + " " + m.historyErr.Error())
		if entity.IsFormatError(m.historyErr) {
			text += "\n" + m.theme.Subtle.Render("The history file is unreadable. Press C to start over.")
		}
		return m.theme.Box.Render(text)
	}
	if len(m.records) == 0 {
		return m.theme.Box.Render(m.theme.Subtle.Render("No prompts yet."))
	}
	return m.table.View()
}

func historyRows(records []entity.PromptRecord) []table.Row {
	rows := make([]table.Row, 0, len(records))
	for _, r := range records {
		rows = append(rows, styles.HistoryRow(r))
	}
	return rows
}
