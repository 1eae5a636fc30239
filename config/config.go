// Package config provides configuration structures for the application.
package config

type Config struct {
	Path        string `json:"path" yaml:"path" mapstructure:"path"`
	Port        uint32 `json:"port" yaml:"port" mapstructure:"port"`
	Debug       bool   `json:"debug" yaml:"debug" mapstructure:"debug"`
	DisableANSI bool   `json:"disableANSI" yaml:"disableANSI" mapstructure:"disableANSI"`
	ConfigPath  string `json:"configPath" yaml:"configPath" mapstructure:"configPath"`
	Test        Test   `json:"test" yaml:"test" mapstructure:"test"`
}

// Test holds the run options shared by the CLI and the API defaults.
type Test struct {
	SuiteFile     string `json:"suiteFile" yaml:"suiteFile" mapstructure:"suiteFile"`
	Collection    string `json:"collection" yaml:"collection" mapstructure:"collection"`
	Folder        string `json:"folder" yaml:"folder" mapstructure:"folder"`
	StopOnFailure bool   `json:"stopOnFailure" yaml:"stopOnFailure" mapstructure:"stopOnFailure"`
	Delay         int64  `json:"delay" yaml:"delay" mapstructure:"delay"`
	RPS           int    `json:"rps" yaml:"rps" mapstructure:"rps"`
}
