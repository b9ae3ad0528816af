package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rxtech-lab/mt5-dashboard/internal/trading"
	"github.com/rxtech-lab/mt5-dashboard/internal/types"
)

var levelPrefix = map[trading.Level]string{
	trading.LevelSuccess: "OK",
	trading.LevelInfo:    "  ",
	trading.LevelWarning: "!!",
	trading.LevelError:   "XX",
}

func printNotices(w io.Writer, notices []trading.Notice) {
	for _, notice := range notices {
		fmt.Fprintf(w, "%s %s\n", levelPrefix[notice.Level], notice.Text)
	}
}

func printAccount(w io.Writer, status trading.Status) {
	fmt.Fprintf(w, "Status:   %s\n", status.Label())

	account := status.Account
	if account == nil {
		return
	}

	fmt.Fprintf(w, "Login:    %d (%s)\n", account.Login, account.Name)
	fmt.Fprintf(w, "Server:   %s\n", account.Server)
	fmt.Fprintf(w, "Balance:  %s %s\n", trading.FormatAmount(account.Balance), account.Currency)
	fmt.Fprintf(w, "Equity:   %s %s\n", trading.FormatAmount(account.Equity), account.Currency)
	fmt.Fprintf(w, "Profit:   %s %s\n", trading.FormatAmount(account.Profit), account.Currency)
}

func printPositions(w io.Writer, view *trading.PositionView) {
	printNotices(w, []trading.Notice{view.Filter.Notice()})

	if view.HasCaption() {
		fmt.Fprintln(w, view.Caption())
	}

	if notice, empty := view.Empty(); empty {
		printNotices(w, []trading.Notice{notice})

		return
	}

	rows := make([][]string, 0, len(view.Positions))
	for _, position := range view.Positions {
		rows = append(rows, []string{
			strconv.FormatUint(position.Ticket, 10),
			position.Symbol,
			position.Type.String(),
			trading.FormatNumber(position.Volume),
			trading.FormatNumber(position.PriceOpen),
			trading.FormatNumber(position.PriceCurrent),
			trading.FormatAmount(position.Profit),
			trading.FormatLevel(position.StopLoss()),
			trading.FormatLevel(position.TakeProfit()),
			position.Comment,
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Ticket", "Symbol", "Type", "Volume", "Open", "Current", "Profit", "SL", "TP", "Comment").
		Rows(rows...)

	fmt.Fprintln(w, t.Render())
	fmt.Fprintf(w, "Total profit: %s\n", view.ProfitLabel())
}

func printJournal(w io.Writer, entries []types.JournalEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No journal entries")

		return
	}

	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		outcome := strconv.Itoa(entry.Retcode) + " " + entry.ResultComment
		if entry.Error != "" {
			outcome = entry.Error
		}

		rows = append(rows, []string{
			entry.Time.Local().Format("2006-01-02 15:04:05"),
			string(entry.Kind),
			entry.Symbol,
			entry.Side.String(),
			trading.FormatNumber(entry.Volume),
			trading.FormatNumber(entry.Price),
			entry.Comment,
			outcome,
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Time", "Kind", "Symbol", "Side", "Volume", "Price", "Comment", "Result").
		Rows(rows...)

	fmt.Fprintln(w, t.Render())
}
