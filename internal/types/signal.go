package types

type SignalKind string

const (
	// SignalKindBuy is emitted when a strategy's buy condition fires
	SignalKindBuy SignalKind = "buy"
	// SignalKindSell is emitted when a strategy's sell condition fires
	SignalKindSell SignalKind = "sell"
)

type Signal struct {
	// Index is the sample index the signal fired on
	Index int `json:"index"`
	// Kind is the direction of the signal
	Kind SignalKind `json:"kind"`
	// Strategy is the id of the strategy that produced the signal
	Strategy string `json:"strategy,omitempty"`
	// Color is the display color of the producing strategy
	Color string `json:"color,omitempty"`
}
