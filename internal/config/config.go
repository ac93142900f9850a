package config

type Config interface {
	EnvConfig
	CorsConfig
	WidgetConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
}

type mainConfig struct {
	EnvVars
	Cors
	Widget
}

func New() Config {
	return mainConfig{}
}
