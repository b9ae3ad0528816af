package dashboard

import (
	"html/template"
	"net/http"
	"strconv"

	"github.com/rxtech-lab/mt5-dashboard/internal/config"
	"github.com/rxtech-lab/mt5-dashboard/internal/trading"
	"github.com/rxtech-lab/mt5-dashboard/internal/types"
)

var templateFuncs = template.FuncMap{
	"amount": trading.FormatAmount,
	"number": trading.FormatNumber,
	"login": func(login int64) string {
		if login == 0 {
			return ""
		}

		return strconv.FormatInt(login, 10)
	},
	"selected": func(a, b int) bool { return a == b },
}

// positionCard is one rendered position.
type positionCard struct {
	Ticket       uint64
	Symbol       string
	Side         string
	Volume       string
	PriceOpen    string
	PriceCurrent string
	Profit       string
	InProfit     bool
	StopLoss     string
	TakeProfit   string
	Comment      string
}

func newPositionCard(position types.Position) positionCard {
	return positionCard{
		Ticket:       position.Ticket,
		Symbol:       position.Symbol,
		Side:         position.Type.String(),
		Volume:       trading.FormatNumber(position.Volume),
		PriceOpen:    trading.FormatNumber(position.PriceOpen),
		PriceCurrent: trading.FormatNumber(position.PriceCurrent),
		Profit:       trading.FormatAmount(position.Profit),
		InProfit:     position.InProfit(),
		StopLoss:     trading.FormatLevel(position.StopLoss()),
		TakeProfit:   trading.FormatLevel(position.TakeProfit()),
		Comment:      position.Comment,
	}
}

type pageData struct {
	Status           trading.Status
	Session          Session
	Flashes          []trading.Notice
	FilterNotice     trading.Notice
	RefreshIntervals []int
	View             *trading.PositionView
	ViewNotice       *trading.Notice
	Cards            []positionCard
	Footer           []string
	Version          string
}

func (s *Server) buildPage(r *http.Request, session Session, flashes []trading.Notice) pageData {
	data := pageData{
		Status:           s.desk.Status(),
		Session:          session,
		Flashes:          flashes,
		FilterNotice:     session.Filter.Notice(),
		RefreshIntervals: config.RefreshIntervals,
		View:             nil,
		ViewNotice:       nil,
		Cards:            nil,
		Footer:           trading.Footer,
		Version:          s.options.Version,
	}

	if !data.Status.Connected {
		data.ViewNotice = &trading.Notice{Level: trading.LevelWarning, Text: trading.MsgConnectToView}

		return data
	}

	view, err := s.desk.Positions(r.Context(), session.Filter)
	if err != nil {
		notice := errorNotice(err)
		data.ViewNotice = &notice

		return data
	}

	data.View = view

	if notice, empty := view.Empty(); empty {
		data.ViewNotice = &notice

		return data
	}

	data.Cards = make([]positionCard, 0, len(view.Positions))
	for _, position := range view.Positions {
		data.Cards = append(data.Cards, newPositionCard(position))
	}

	return data
}
