// Package config loads workspace definitions from YAML: how to generate the
// price series and which indicators and strategies to register over it.
package config

import (
	"context"
	"encoding/json"
	"os"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-formula/internal/pricegen"
	"github.com/rxtech-lab/argo-formula/internal/types"
	"github.com/rxtech-lab/argo-formula/internal/version"
	"github.com/rxtech-lab/argo-formula/internal/workspace"
	"github.com/rxtech-lab/argo-formula/pkg/errors"
	"gopkg.in/yaml.v3"
)

const DefaultSeed = 42

type DataConfig struct {
	Points     int     `yaml:"points" json:"points" jsonschema:"title=Points,description=Number of close prices to generate,minimum=50,maximum=5000,default=500" validate:"gte=50,lte=5000"`
	Volatility float64 `yaml:"volatility" json:"volatility" jsonschema:"title=Volatility,description=Annualised volatility of the random walk,minimum=0.1,maximum=10,default=1.5" validate:"gte=0.1,lte=10"`
	Seed       int64   `yaml:"seed" json:"seed" jsonschema:"title=Seed,description=Random seed; the same seed reproduces the same series"`
}

// IndicatorConfig declares one indicator. Built-in types use Period and, for
// Bollinger bands, Multiplier. Expression indicators use Formula.
type IndicatorConfig struct {
	Type       types.IndicatorType `yaml:"type" json:"type" jsonschema:"title=Type,description=Indicator type,required" validate:"required,oneof=sma ema boll expr"`
	Period     int                 `yaml:"period,omitempty" json:"period,omitempty" jsonschema:"title=Period,description=Window length for built-in indicators,minimum=1" validate:"required_unless=Type expr"`
	Multiplier float64             `yaml:"multiplier,omitempty" json:"multiplier,omitempty" jsonschema:"title=Multiplier,description=Bollinger standard deviation multiplier (default 2),minimum=0"`
	Formula    string              `yaml:"formula,omitempty" json:"formula,omitempty" jsonschema:"title=Formula,description=Formula for expression indicators e.g. sma(close, 50)" validate:"required_if=Type expr"`
}

type StrategyConfig struct {
	Left     string         `yaml:"left,omitempty" json:"left,omitempty" jsonschema:"title=Left,description=Left formula (defaults to close)"`
	Operator types.Operator `yaml:"operator" json:"operator" jsonschema:"title=Operator,description=Comparison or crossing rule,required" validate:"required,oneof=crosses_above crosses_below > >= < <= =="`
	Right    string         `yaml:"right" json:"right" jsonschema:"title=Right,description=Right formula,required" validate:"required"`
}

// Config is the top-level workspace definition file.
type Config struct {
	Version    string            `yaml:"version" json:"version" jsonschema:"title=Version,description=Library version this file was written for"`
	Data       DataConfig        `yaml:"data" json:"data" jsonschema:"title=Data,description=Synthetic price series parameters"`
	Indicators []IndicatorConfig `yaml:"indicators" json:"indicators" jsonschema:"title=Indicators,description=Chart overlays to compute" validate:"dive"`
	Strategies []StrategyConfig  `yaml:"strategies" json:"strategies" jsonschema:"title=Strategies,description=Rules that produce buy and sell signals" validate:"dive"`
}

// EmptyConfig returns a Config with default data parameters and no definitions.
func EmptyConfig() Config {
	return Config{
		Version: version.GetVersion(),
		Data: DataConfig{
			Points:     pricegen.DefaultPoints,
			Volatility: pricegen.DefaultVolatility,
			Seed:       DefaultSeed,
		},
		Indicators: []IndicatorConfig{},
		Strategies: []StrategyConfig{},
	}
}

// SampleConfig returns a small working configuration used as a starting point.
func SampleConfig() Config {
	config := EmptyConfig()
	config.Indicators = []IndicatorConfig{
		{Type: types.IndicatorTypeSMA, Period: 20},
		{Type: types.IndicatorTypeBollingerBands, Period: 20, Multiplier: 2},
		{Type: types.IndicatorTypeExpression, Formula: "ema(close, 21)"},
	}
	config.Strategies = []StrategyConfig{
		{Left: "close", Operator: types.OperatorCrossesAbove, Right: "sma(close, 50)"},
		{Left: "close", Operator: types.OperatorCrossesBelow, Right: "sma(close, 50)"},
	}

	return config
}

// Parse decodes YAML on top of EmptyConfig and validates the result.
func Parse(data []byte) (*Config, error) {
	config := EmptyConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Load reads and parses a YAML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config %s", path)
	}

	return Parse(data)
}

// Validate checks field constraints and version compatibility.
// Formulas are only checked when the config is applied to a workspace.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid config", err)
	}

	return version.CheckConfigCompatibility(version.GetVersion(), c.Version)
}

// Apply generates the price series and registers every indicator and strategy
// on ws. The first failing definition aborts with its error.
func (c *Config) Apply(ctx context.Context, ws *workspace.Workspace) error {
	ws.SetDataParams(c.Data.Points, c.Data.Volatility)

	if err := ws.Regenerate(ctx); err != nil {
		return err
	}

	for i, ind := range c.Indicators {
		var err error

		if ind.Type == types.IndicatorTypeExpression {
			_, err = ws.AddCustomIndicator(ind.Formula)
		} else {
			_, err = ws.AddBuiltinIndicator(ind.Type, ind.Period, ind.multiplier())
		}

		if err != nil {
			return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "indicator %d", i)
		}
	}

	for i, st := range c.Strategies {
		if _, err := ws.AddStrategy(st.Left, string(st.Operator), st.Right); err != nil {
			return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "strategy %d", i)
		}
	}

	return nil
}

// NewWorkspace builds a workspace seeded from the config and applies it.
func (c *Config) NewWorkspace(ctx context.Context, opts ...workspace.Option) (*workspace.Workspace, error) {
	opts = append([]workspace.Option{workspace.WithPriceSource(pricegen.NewGenerator(c.Data.Seed))}, opts...)
	ws := workspace.New(opts...)

	if err := c.Apply(ctx, ws); err != nil {
		return nil, err
	}

	return ws, nil
}

func (i IndicatorConfig) multiplier() optional.Option[float64] {
	if i.Multiplier == 0 {
		return optional.None[float64]()
	}

	return optional.Some(i.Multiplier)
}

// GenerateSchema generates a JSON schema for Config.
func (c *Config) GenerateSchema() (*jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			switch t {
			case reflect.TypeOf(types.Operator("")):
				enum := make([]any, 0, len(types.AllOperators))
				for _, op := range types.AllOperators {
					enum = append(enum, string(op))
				}

				return &jsonschema.Schema{Type: "string", Enum: enum}
			case reflect.TypeOf(types.IndicatorType("")):
				return &jsonschema.Schema{
					Type: "string",
					Enum: []any{
						string(types.IndicatorTypeSMA),
						string(types.IndicatorTypeEMA),
						string(types.IndicatorTypeBollingerBands),
						string(types.IndicatorTypeExpression),
					},
				}
			}

			return nil
		},
	}

	schema := reflector.Reflect(c)
	schema.Title = "argo-formula-config"
	schema.Description = "Workspace definition for argo-formula"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema, nil
}

// GenerateSchemaJSON generates the JSON schema as an indented string.
func (c *Config) GenerateSchemaJSON() (string, error) {
	schema, err := c.GenerateSchema()
	if err != nil {
		return "", err
	}

	schemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}
