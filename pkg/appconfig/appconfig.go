/*
 * Copyright 2024 Skills-Go Project Authors. Licensed under Apache-2.0.
 */

// Package appconfig is process level configuration. It is first in the
// initialization order, keep it free of dependencies on business packages.
package appconfig

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

var std = struct {
	dev bool
}{
	dev: false,
}

var StdConfig = Config{}

type (
	Config struct {
		Server  ServerConfig  `json:"server" yaml:"server" toml:"server"`
		Backend BackendConfig `json:"backend" yaml:"backend" toml:"backend"`
		Tools   ToolsConfig   `json:"tools" yaml:"tools" toml:"tools"`
		LogDir  string        `json:"logDir" yaml:"logDir" toml:"logDir"`
	}
	ServerConfig struct {
		Listen string `json:"listen" yaml:"listen" toml:"listen"`
	}
	BackendConfig struct {
		Addr               string `json:"addr" yaml:"addr" toml:"addr"`
		Username           string `json:"username" yaml:"username" toml:"username"`
		Password           string `json:"password" yaml:"password" toml:"password"`
		Secure             bool   `json:"secure" yaml:"secure" toml:"secure"`
		InsecureSkipVerify bool   `json:"insecureSkipVerify" yaml:"insecureSkipVerify" toml:"insecureSkipVerify"`
		TimeoutSeconds     int    `json:"timeoutSeconds" yaml:"timeoutSeconds" toml:"timeoutSeconds"`
		RatePerSecond      int    `json:"ratePerSecond" yaml:"ratePerSecond" toml:"ratePerSecond"`
	}
	ToolsConfig struct {
		LogPattern LogPatternConfig `json:"logPattern" yaml:"logPattern" toml:"logPattern"`
	}
	LogPatternConfig struct {
		PatternField           string  `json:"patternField,omitempty" yaml:"patternField" toml:"patternField"`
		Pattern                string  `json:"pattern,omitempty" yaml:"pattern" toml:"pattern"`
		TopNPattern            int     `json:"topNPattern" yaml:"topNPattern" toml:"topNPattern"`
		SampleLogSize          int     `json:"sampleLogSize" yaml:"sampleLogSize" toml:"sampleLogSize"`
		VariableCountThreshold int     `json:"variableCountThreshold" yaml:"variableCountThreshold" toml:"variableCountThreshold"`
		ThresholdPercentage    float64 `json:"thresholdPercentage" yaml:"thresholdPercentage" toml:"thresholdPercentage"`
		DocSize                int     `json:"docSize" yaml:"docSize" toml:"docSize"`
		// Clustering selects the token clustering strategy instead of
		// alphabet masking. Mutually exclusive with Pattern.
		Clustering bool `json:"clustering" yaml:"clustering" toml:"clustering"`
	}
)

func IsDev() bool {
	return std.dev
}

func SetDev(enabled bool) {
	std.dev = enabled
}

func SetupAppConfig() error {

	// defaults
	StdConfig.Server.Listen = ":9201"
	StdConfig.LogDir = "logs"
	StdConfig.Tools.LogPattern = LogPatternConfig{
		TopNPattern:            3,
		SampleLogSize:          20,
		VariableCountThreshold: 5,
		ThresholdPercentage:    0.3,
		DocSize:                1000,
	}

	// load from config file
	{
		fileBytes, err := os.ReadFile("skills.yaml")
		if os.IsNotExist(err) {
			fileBytes, err = os.ReadFile("conf/skills.yaml")
		}
		if err == nil {
			if err = yaml.Unmarshal(fileBytes, &StdConfig); err != nil {
				fmt.Fprintf(os.Stderr, "fail to parse skills.yaml\n%s\n", string(fileBytes))
			}
		}
	}
	{
		fileBytes, err := os.ReadFile("skills.toml")
		if os.IsNotExist(err) {
			fileBytes, err = os.ReadFile("conf/skills.toml")
		}
		if err == nil {
			if err = toml.Unmarshal(fileBytes, &StdConfig); err != nil {
				fmt.Fprintf(os.Stderr, "fail to parse skills.toml\n%s\n", string(fileBytes))
			}
		}
	}

	// load from env
	if s := os.Getenv("SKILLS_LISTEN"); s != "" {
		StdConfig.Server.Listen = s
	}
	if s := os.Getenv("SKILLS_LOG_DIR"); s != "" {
		StdConfig.LogDir = s
	}
	if s := os.Getenv("SKILLS_BACKEND_ADDR"); s != "" {
		StdConfig.Backend.Addr = s
	}
	if s := os.Getenv("SKILLS_BACKEND_USERNAME"); s != "" {
		StdConfig.Backend.Username = s
	}
	if s := os.Getenv("SKILLS_BACKEND_PASSWORD"); s != "" {
		StdConfig.Backend.Password = s
	}
	if s := os.Getenv("SKILLS_BACKEND_SECURE"); s != "" {
		StdConfig.Backend.Secure = cast.ToBool(s)
	}
	if s := os.Getenv("SKILLS_BACKEND_SKIP_VERIFY"); s != "" {
		StdConfig.Backend.InsecureSkipVerify = cast.ToBool(s)
	}
	if s := os.Getenv("SKILLS_BACKEND_TIMEOUT_SECONDS"); s != "" {
		StdConfig.Backend.TimeoutSeconds = cast.ToInt(s)
	}
	if s := os.Getenv("SKILLS_BACKEND_RATE_PER_SECOND"); s != "" {
		StdConfig.Backend.RatePerSecond = cast.ToInt(s)
	}
	if s := os.Getenv("SKILLS_TOOL_CLUSTERING"); s != "" {
		StdConfig.Tools.LogPattern.Clustering = cast.ToBool(s)
	}
	if s := os.Getenv("SKILLS_DEV"); s != "" {
		SetDev(cast.ToBool(s))
	}

	return nil
}
