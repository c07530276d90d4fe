package main

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/ankify/ankify-api/internal/domain"
)

const maxCellWidth = 60

func renderCards(cards []domain.Flashcard) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Header = text.FormatDefault
	tw.AppendHeader(table.Row{"#", "Question", "Answer"})

	for i, card := range cards {
		tw.AppendRow(table.Row{strconv.Itoa(i + 1), card.Question, card.Answer})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 2, WidthMax: maxCellWidth},
		{Number: 3, WidthMax: maxCellWidth},
	})

	return tw.Render()
}
