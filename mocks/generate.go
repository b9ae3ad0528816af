package mocks

//go:generate mockgen -destination=./mock_terminal.go -package=mocks github.com/rxtech-lab/mt5-dashboard/internal/terminal Terminal
//go:generate mockgen -destination=./mock_journal.go -package=mocks github.com/rxtech-lab/mt5-dashboard/internal/trading Journal
