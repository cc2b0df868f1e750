package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rxtech-lab/argo-formula/internal/config"
	"github.com/rxtech-lab/argo-formula/internal/types"
	"github.com/rxtech-lab/argo-formula/internal/version"
	"github.com/rxtech-lab/argo-formula/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type GenerateCmdTestSuite struct {
	suite.Suite
	dir string
}

func TestGenerateCmdSuite(t *testing.T) {
	suite.Run(t, new(GenerateCmdTestSuite))
}

func (suite *GenerateCmdTestSuite) SetupTest() {
	suite.dir = filepath.Join(suite.T().TempDir(), "config")
}

func (suite *GenerateCmdTestSuite) readSchema() map[string]any {
	data, err := os.ReadFile(filepath.Join(suite.dir, schemaName))
	suite.Require().NoError(err)

	var schema map[string]any
	suite.Require().NoError(json.Unmarshal(data, &schema))

	return schema
}

func (suite *GenerateCmdTestSuite) readSample() string {
	data, err := os.ReadFile(filepath.Join(suite.dir, sampleConfigName))
	suite.Require().NoError(err)

	return string(data)
}

// findProperty returns the first property schema called name, searching
// nested properties and definitions.
func findProperty(node any, name string) map[string]any {
	obj, ok := node.(map[string]any)
	if !ok {
		return nil
	}

	if props, ok := obj["properties"].(map[string]any); ok {
		if prop, ok := props[name].(map[string]any); ok {
			return prop
		}
	}

	for _, child := range obj {
		if found := findProperty(child, name); found != nil {
			return found
		}
	}

	return nil
}

func (suite *GenerateCmdTestSuite) TestGenerateWritesSchemaAndSample() {
	suite.Require().NoError(generate(suite.dir))

	schema := suite.readSchema()
	suite.Equal("argo-formula-config", schema["title"])

	sample := suite.readSample()
	suite.True(strings.HasPrefix(sample, "# yaml-language-server: $schema="+schemaName+"\n"))
}

func (suite *GenerateCmdTestSuite) TestSchemaEnumeratesOperatorsAndIndicatorTypes() {
	suite.Require().NoError(generate(suite.dir))

	schema := suite.readSchema()

	operator := findProperty(schema, "operator")
	suite.Require().NotNil(operator, "operator property missing from schema")

	operators := make([]any, 0, len(types.AllOperators))
	for _, op := range types.AllOperators {
		operators = append(operators, string(op))
	}

	suite.Equal(operators, operator["enum"])

	indicatorType := findProperty(schema, "type")
	suite.Require().NotNil(indicatorType, "type property missing from schema")
	suite.Equal([]any{"sma", "ema", "boll", "expr"}, indicatorType["enum"])
}

func (suite *GenerateCmdTestSuite) TestSchemaCarriesDataBounds() {
	suite.Require().NoError(generate(suite.dir))

	points := findProperty(suite.readSchema(), "points")
	suite.Require().NotNil(points)
	suite.EqualValues(50, points["minimum"])
	suite.EqualValues(5000, points["maximum"])
}

func (suite *GenerateCmdTestSuite) TestSampleBuildsWorkspace() {
	suite.Require().NoError(generate(suite.dir))

	cfg, err := config.Parse([]byte(suite.readSample()))
	suite.Require().NoError(err)
	suite.Equal(config.SampleConfig(), *cfg)

	ws, err := cfg.NewWorkspace(context.Background())
	suite.Require().NoError(err)
	suite.Equal(cfg.Data.Points, ws.Len())

	overlays, err := ws.Overlays()
	suite.Require().NoError(err)
	// SMA, three Bollinger bands and one expression
	suite.Len(overlays, 5)
	suite.Len(ws.Strategies(), 2)
}

func (suite *GenerateCmdTestSuite) TestEditedSampleFailures() {
	suite.Require().NoError(generate(suite.dir))

	sample := suite.readSample()

	tests := []struct {
		name    string
		from    string
		to      string
		code    errors.ErrorCode
		onApply bool
	}{
		{name: "unknown operator", from: "operator: crosses_above", to: "operator: crosses", code: errors.ErrCodeInvalidConfiguration},
		{name: "too few points", from: "points: 500", to: "points: 10", code: errors.ErrCodeInvalidConfiguration},
		{name: "newer major version", from: "version: " + version.GetVersion(), to: "version: v9.0.0", code: errors.ErrCodeVersionMismatch},
		{name: "formula arity", from: "formula: ema(close, 21)", to: "formula: ema(close)", code: errors.ErrCodeArity, onApply: true},
		{name: "formula syntax", from: "right: sma(close, 50)", to: "right: sma(close, 50", code: errors.ErrCodeSyntax, onApply: true},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.Require().Contains(sample, tt.from)
			edited := strings.Replace(sample, tt.from, tt.to, 1)

			cfg, err := config.Parse([]byte(edited))
			if !tt.onApply {
				suite.Require().Error(err)
				suite.True(errors.HasCode(err, tt.code), "got %v", err)

				return
			}

			suite.Require().NoError(err)

			_, err = cfg.NewWorkspace(context.Background())
			suite.Require().Error(err)
			suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))

			var wrapped *errors.Error
			suite.Require().True(errors.As(err, &wrapped))
			suite.Equal(tt.code, errors.GetCode(wrapped.Cause), "got %v", err)
		})
	}
}

func (suite *GenerateCmdTestSuite) TestRerunKeepsEditedSampleAndRefreshesSchema() {
	suite.Require().NoError(generate(suite.dir))

	samplePath := filepath.Join(suite.dir, sampleConfigName)
	edited := strings.Replace(suite.readSample(), "seed: 42", "seed: 7", 1)
	suite.Require().NoError(os.WriteFile(samplePath, []byte(edited), 0644))
	suite.Require().NoError(os.WriteFile(filepath.Join(suite.dir, schemaName), []byte("stale"), 0644))

	suite.Require().NoError(generate(suite.dir))

	suite.Equal(edited, suite.readSample())
	suite.Equal("argo-formula-config", suite.readSchema()["title"])

	cfg, err := config.Parse([]byte(edited))
	suite.Require().NoError(err)
	suite.Equal(int64(7), cfg.Data.Seed)
}

func (suite *GenerateCmdTestSuite) TestGenerateIntoFile() {
	blocker := filepath.Join(suite.T().TempDir(), "blocker")
	suite.Require().NoError(os.WriteFile(blocker, []byte("x"), 0644))

	err := generate(filepath.Join(blocker, "config"))
	suite.Require().Error(err)
	suite.Contains(err.Error(), "failed to create directory")
}

func (suite *GenerateCmdTestSuite) TestValidateSchemaName() {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{name: "json file", input: "argo-formula-config.json"},
		{name: "empty", input: "", wantErr: "cannot be empty"},
		{name: "yaml extension", input: "argo-formula-config.yaml", wantErr: "must have .json extension"},
		{name: "no extension", input: "schema", wantErr: "must have .json extension"},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			err := validateSchemaName(tt.input)
			if tt.wantErr == "" {
				suite.NoError(err)
				return
			}

			suite.Require().Error(err)
			suite.Contains(err.Error(), tt.wantErr)
		})
	}
}

func (suite *GenerateCmdTestSuite) TestValidatePaths() {
	suite.NoError(validatePaths("a.json", "a.yaml"))
	suite.ErrorContains(validatePaths("", "a.yaml"), "schema path")
	suite.ErrorContains(validatePaths("a.json", ""), "sample config path")
}
