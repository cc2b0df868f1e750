package types

type IndicatorType string

const (
	IndicatorTypeSMA            IndicatorType = "sma"
	IndicatorTypeEMA            IndicatorType = "ema"
	IndicatorTypeBollingerBands IndicatorType = "boll"
	IndicatorTypeExpression     IndicatorType = "expr"
)

// Overlay is a named, colored series handed to the chart layer.
type Overlay struct {
	Name   string `json:"name"`
	Color  string `json:"color"`
	Series Series `json:"series"`
}
