package models

import (
	"encoding/json"
	"strconv"
)

// CommandType identifies the parsed intent of an inbound message
type CommandType string

const (
	CommandTypeDeploy       CommandType = "deploy"
	CommandTypeConfigure    CommandType = "configure"
	CommandTypeUnrecognized CommandType = "unrecognized"
)

// Command is the parsed form of an inbound message's text. Exactly the fields
// matching Type are populated; a Command is never mutated after parsing.
type Command struct {
	Type CommandType

	// Deploy
	DeployCount int

	// Configure
	ConfigureURL string
	Config       ConfigValue
}

// ConfigValueKind identifies which decoding the configuration payload took
type ConfigValueKind string

const (
	ConfigValueJSON   ConfigValueKind = "json"
	ConfigValueNumber ConfigValueKind = "number"
	ConfigValueString ConfigValueKind = "string"
)

// ConfigValue is the three-way decoded configuration argument of /configure:
// a JSON object/array, a bare number, or a raw string fallback.
type ConfigValue struct {
	Kind   ConfigValueKind
	JSON   json.RawMessage
	Number float64
	Text   string
}

// JSONConfigValue builds a ConfigValue holding a raw JSON object or array
func JSONConfigValue(raw json.RawMessage) ConfigValue {
	return ConfigValue{Kind: ConfigValueJSON, JSON: raw}
}

// NumberConfigValue builds a ConfigValue holding a numeric payload
func NumberConfigValue(n float64) ConfigValue {
	return ConfigValue{Kind: ConfigValueNumber, Number: n}
}

// StringConfigValue builds a ConfigValue holding a raw string payload
func StringConfigValue(s string) ConfigValue {
	return ConfigValue{Kind: ConfigValueString, Text: s}
}

// MarshalJSON encodes the value as whichever variant it holds, so the
// configuration-update request body carries the payload the user wrote.
func (v ConfigValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case ConfigValueJSON:
		return v.JSON, nil
	case ConfigValueNumber:
		return []byte(strconv.FormatFloat(v.Number, 'f', -1, 64)), nil
	default:
		return json.Marshal(v.Text)
	}
}
