package report

import (
	"encoding/json"
	"os"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"

	"github.com/CodeWithUtkarsha/TradeJournal-sub000/internal/forex"
	"github.com/CodeWithUtkarsha/TradeJournal-sub000/internal/types"
	"github.com/CodeWithUtkarsha/TradeJournal-sub000/pkg/errors"
)

// Config controls report generation.
type Config struct {
	StartingBalance float64 `yaml:"starting_balance" json:"starting_balance" jsonschema:"title=Starting Balance,description=Account balance before the first journaled trade in account currency,minimum=0" validate:"required,gt=0"`
	// AccountSize feeds the risk distribution. Defaults to the starting
	// balance when omitted.
	AccountSize float64 `yaml:"account_size" json:"account_size" jsonschema:"title=Account Size,description=Account size used for risk banding; defaults to the starting balance" validate:"gt=0"`
	// Dimensions selects the dimensional breakdowns to compute, in report
	// order. Defaults to every supported dimension.
	Dimensions []types.Dimension `yaml:"dimensions" json:"dimensions" jsonschema:"title=Dimensions,description=Dimensional breakdowns to include in the report" validate:"dive,oneof=time_of_day weekday month strategy setup timeframe market_condition"`
	// Instruments are extra instrument definitions registered before the
	// report runs, on top of the built-in forex table.
	Instruments []forex.Instrument `yaml:"instruments" json:"instruments" jsonschema:"title=Instruments,description=Extra instruments to register on top of the built-in forex table" validate:"dive"`
}

// DefaultConfig returns a config with every dimension enabled.
func DefaultConfig(startingBalance float64) Config {
	return Config{
		StartingBalance: startingBalance,
		AccountSize:     startingBalance,
		Dimensions:      types.AllDimensions(),
	}
}

// LoadConfig reads a YAML config file, fills defaults for omitted fields and
// validates the result.
func LoadConfig(path string) (Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config %s", path)
	}

	return ParseConfig(content)
}

// ParseConfig parses a YAML config document, fills defaults and validates.
func ParseConfig(content []byte) (Config, error) {
	var config Config
	if err := yaml.Unmarshal(content, &config); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse config", err)
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

// applyDefaults fills the account size and dimension list when omitted.
func (c *Config) applyDefaults() {
	if c.AccountSize == 0 {
		c.AccountSize = c.StartingBalance
	}

	if len(c.Dimensions) == 0 {
		c.Dimensions = types.AllDimensions()
	}
}

// Validate validates the Config struct.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid report config", err)
	}

	return nil
}

// RegisterInstruments adds the configured instrument definitions to the
// instrument table.
func (c *Config) RegisterInstruments() error {
	for _, instrument := range c.Instruments {
		if err := forex.RegisterInstrument(instrument); err != nil {
			return err
		}
	}

	return nil
}

// GenerateSchema generates a JSON schema for the report Config.
func (c *Config) GenerateSchema() (*jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t == reflect.TypeOf(types.Dimension("")) {
				enum := make([]any, 0, len(types.AllDimensions()))
				for _, dimension := range types.AllDimensions() {
					enum = append(enum, string(dimension))
				}

				return &jsonschema.Schema{
					Type: "string",
					Enum: enum,
				}
			}

			return nil
		},
	}

	schema := reflector.Reflect(c)

	schema.Title = "analytics-report-config"
	schema.Description = "Configuration schema for analytics report generation"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema, nil
}

// GenerateSchemaJSON generates a JSON schema string for the report Config.
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
