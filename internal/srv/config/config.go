package config

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const paramFilename = "param.yaml"

type ServerConfig struct {
	ConfigDir      string
	DebugMode      bool
	SimulationMode bool

	*ServerParam
}

func NewServerConfig(configDir string, debugMode bool, simulationMode bool) *ServerConfig {
	serverConfig, err := LoadServerConfig(configDir, debugMode, simulationMode)
	if err != nil {
		logrus.Fatalf("%v\n", err)
	}
	return serverConfig
}

// LoadServerConfig reads the param file of configDir, creating the folder and
// a default param file when they are missing. Values absent from the param
// file keep their default.
func LoadServerConfig(configDir string, debugMode bool, simulationMode bool) (*ServerConfig, error) {
	serverConfig := &ServerConfig{
		ConfigDir:      configDir,
		DebugMode:      debugMode,
		SimulationMode: simulationMode,
		ServerParam:    &ServerParam{},
	}

	// Check Configuration folder
	_, err := os.Stat(configDir)
	if err != nil {
		if os.IsNotExist(err) {
			logrus.Printf("Creation of config folder: %s", configDir)
			err = os.MkdirAll(configDir, 0770)
			if err != nil {
				return nil, fmt.Errorf("unable to create config folder: %w", err)
			}
		} else {
			return nil, fmt.Errorf("unable to access config folder %s: %w", configDir, err)
		}
	}

	err = yaml.Unmarshal(ParamDefaultFile, serverConfig.ServerParam)
	if err != nil {
		return nil, fmt.Errorf("unable to interpret default param file: %w", err)
	}

	// Open param file
	rawConfig, err := ioutil.ReadFile(serverConfig.GetCompleteParamFilename())
	if err == nil {
		// Interpret param file
		err = yaml.Unmarshal(rawConfig, serverConfig.ServerParam)
		if err != nil {
			return nil, fmt.Errorf("unable to interpret param file: %w", err)
		}
	} else if os.IsNotExist(err) {
		// Create default param file
		logrus.Infof("Create default param file")
		err = ioutil.WriteFile(serverConfig.GetCompleteParamFilename(), ParamDefaultFile, 0660)
		if err != nil {
			return nil, fmt.Errorf("unable to save param file: %w", err)
		}
	} else {
		return nil, fmt.Errorf("unable to read param file: %w", err)
	}

	if err = serverConfig.ServerParam.Validate(); err != nil {
		return nil, err
	}

	return serverConfig, nil
}

func (sc *ServerConfig) GetCompleteParamFilename() string {
	return filepath.Join(sc.ConfigDir, paramFilename)
}

// Validate checks the values the display and the effect loop rely on.
func (sp *ServerParam) Validate() error {
	switch sp.Panel.Driver {
	case ILI9341_DRIVER, SSD1306_DRIVER:
	default:
		return fmt.Errorf("unknown panel driver %q", sp.Panel.Driver)
	}
	if sp.Panel.Width <= 0 || sp.Panel.Height <= 0 {
		return fmt.Errorf("invalid panel size %dx%d", sp.Panel.Width, sp.Panel.Height)
	}
	if sp.Effects.MinDelayMs < 0 || sp.Effects.MaxDelayMs < sp.Effects.MinDelayMs {
		return fmt.Errorf("invalid delay range [%d,%d) ms", sp.Effects.MinDelayMs, sp.Effects.MaxDelayMs)
	}
	if sp.Effects.PauseMs < 0 {
		return fmt.Errorf("invalid pause %d ms", sp.Effects.PauseMs)
	}
	if sp.ApiParam.Enabled && sp.ApiParam.ApiKey == "" {
		return fmt.Errorf("api enabled without api key")
	}
	return nil
}
