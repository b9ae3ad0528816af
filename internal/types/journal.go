package types

import "time"

// JournalKind classifies a journaled order request.
type JournalKind string

const (
	JournalKindOpen     JournalKind = "OPEN"
	JournalKindClose    JournalKind = "CLOSE"
	JournalKindCloseAll JournalKind = "CLOSE_ALL"
)

// JournalEntry records one order_send call and what came back.
type JournalEntry struct {
	ID            string      `json:"id" yaml:"id"`
	Time          time.Time   `json:"time" yaml:"time"`
	Kind          JournalKind `json:"kind" yaml:"kind"`
	Symbol        string      `json:"symbol" yaml:"symbol"`
	Side          OrderType   `json:"side" yaml:"side"`
	Volume        float64     `json:"volume" yaml:"volume"`
	Price         float64     `json:"price" yaml:"price"`
	SL            float64     `json:"sl" yaml:"sl"`
	TP            float64     `json:"tp" yaml:"tp"`
	Comment       string      `json:"comment" yaml:"comment"`
	Position      uint64      `json:"position" yaml:"position"`
	Retcode       int         `json:"retcode" yaml:"retcode"`
	Order         uint64      `json:"order" yaml:"order"`
	ResultComment string      `json:"result_comment" yaml:"result_comment"`
	Error         string      `json:"error" yaml:"error"`
}
