package constants

const (
	AppName = "interiora"

	ConfigName   = "config"
	ConfigFormat = "yaml"
	EnvPrefix    = "INTERIORA"
	DotEnvFile   = ".env"
)

// Environments
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Lead sources
const (
	SourceWeb = "web"
	SourceAPI = "api"
	SourceCLI = "cli"
)

// NATS subjects
const (
	SubjectLeadCreatedPrefix = "interiora.lead.created."
	SubjectLeadCreatedAll    = "interiora.lead.created.*"
)
