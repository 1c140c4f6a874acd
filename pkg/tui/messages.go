package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/adforge/adforge-cli/pkg/api"
	"github.com/adforge/adforge-cli/pkg/models"
	"github.com/adforge/adforge-cli/pkg/rules"
)

// Messages produced by backend calls. Fetches run as bubbletea commands;
// the pure core never blocks.

type dataSourcesLoadedMsg struct {
	sources []models.DataSource
}

type snapshotLoadedMsg struct {
	sourceID string
	columns  []models.Column
	rows     []models.DataRow
}

type rulesLoadedMsg struct {
	rules []rules.Rule
}

type generationDoneMsg struct {
	result *models.GenerationResult
}

type apiErrorMsg struct {
	err error
}

type statusMsg string

type clearStatusMsg struct{}

const requestTimeout = 20 * time.Second

func fetchDataSources(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		sources, err := client.ListDataSources(ctx)
		if err != nil {
			return apiErrorMsg{err: err}
		}
		return dataSourcesLoadedMsg{sources: sources}
	}
}

func fetchSnapshot(client *api.Client, sourceID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		columns, err := client.GetColumns(ctx, sourceID)
		if err != nil {
			return apiErrorMsg{err: err}
		}
		rows, err := client.GetSampleRows(ctx, sourceID, api.DefaultSampleLimit)
		if err != nil {
			return apiErrorMsg{err: err}
		}
		return snapshotLoadedMsg{sourceID: sourceID, columns: columns, rows: rows}
	}
}

func fetchRules(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		out, err := client.ListRules(ctx)
		if err != nil {
			return apiErrorMsg{err: err}
		}
		return rulesLoadedMsg{rules: out}
	}
}

func submitGeneration(client *api.Client, req api.GenerationRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		result, err := client.SubmitGeneration(ctx, req)
		if err != nil {
			return apiErrorMsg{err: err}
		}
		return generationDoneMsg{result: result}
	}
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
