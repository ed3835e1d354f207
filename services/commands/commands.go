package commands

import (
	"encoding/json"
	"log"
	"strconv"
	"strings"

	"deploybot/models"
	"deploybot/services"
)

// CommandsService parses inbound message text into typed commands
type CommandsService struct{}

func NewCommandsService() *CommandsService {
	return &CommandsService{}
}

// Parse turns raw message text into a Command. A recognized command with bad
// arguments returns a *services.ParseError; text that matches no command at
// all returns CommandTypeUnrecognized with a nil error.
func (s *CommandsService) Parse(text string) (models.Command, error) {
	trimmed := strings.TrimSpace(text)
	fields := strings.Fields(trimmed)
	if len(fields) == 0 {
		return models.Command{Type: models.CommandTypeUnrecognized}, nil
	}

	switch fields[0] {
	case "/deploy":
		return s.parseDeploy(fields)
	case "/configure":
		return s.parseConfigure(trimmed)
	default:
		return models.Command{Type: models.CommandTypeUnrecognized}, nil
	}
}

func (s *CommandsService) parseDeploy(fields []string) (models.Command, error) {
	if len(fields) == 1 {
		return models.Command{Type: models.CommandTypeDeploy, DeployCount: 1}, nil
	}

	if len(fields) > 2 {
		return models.Command{}, &services.ParseError{
			UserMessage: "Please provide a valid number of deployments (e.g. /deploy 3).",
		}
	}

	count, err := strconv.Atoi(fields[1])
	if err != nil || count <= 0 {
		log.Printf("❌ Invalid deployment count: %q", fields[1])
		return models.Command{}, &services.ParseError{
			UserMessage: "Please provide a valid number of deployments (e.g. /deploy 3).",
		}
	}

	return models.Command{Type: models.CommandTypeDeploy, DeployCount: count}, nil
}

func (s *CommandsService) parseConfigure(text string) (models.Command, error) {
	rest := strings.TrimSpace(strings.TrimPrefix(text, "/configure"))

	sep := strings.IndexAny(rest, " \t\n")
	if rest == "" || sep < 0 {
		return models.Command{}, &services.ParseError{
			UserMessage: "Invalid format. Use:\n/configure <URL> <JSON_CONFIG>",
		}
	}

	url := rest[:sep]
	rawConfig := strings.TrimSpace(rest[sep:])
	if rawConfig == "" {
		return models.Command{}, &services.ParseError{
			UserMessage: "Invalid format. Use:\n/configure <URL> <JSON_CONFIG>",
		}
	}

	config, err := decodeConfigValue(rawConfig)
	if err != nil {
		return models.Command{}, err
	}

	return models.Command{
		Type:         models.CommandTypeConfigure,
		ConfigureURL: url,
		Config:       config,
	}, nil
}

// decodeConfigValue applies the three-way decoding precedence: JSON
// object/array, then bare number, then raw string fallback.
func decodeConfigValue(raw string) (models.ConfigValue, error) {
	if looksLikeJSON(raw) {
		if !json.Valid([]byte(raw)) {
			log.Printf("❌ Configuration payload looks like JSON but does not parse: %q", raw)
			return models.ConfigValue{}, &services.ParseError{
				UserMessage: "Invalid configuration format. Provide valid JSON.",
			}
		}
		return models.JSONConfigValue(json.RawMessage(raw)), nil
	}

	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return models.NumberConfigValue(n), nil
	}

	return models.StringConfigValue(raw), nil
}

func looksLikeJSON(raw string) bool {
	return (strings.HasPrefix(raw, "{") && strings.HasSuffix(raw, "}")) ||
		(strings.HasPrefix(raw, "[") && strings.HasSuffix(raw, "]"))
}
