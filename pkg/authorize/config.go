package authorize

import "github.com/Alijeyrad/interiora_backend/config"

// Config holds configuration for the authorization system
type Config struct {
	// ModelPath is the casbin model file. Empty uses DefaultModel.
	ModelPath string

	// PolicyPath is a CSV policy file. Empty seeds DefaultPolicies in memory.
	PolicyPath string

	// EnableAudit logs every decision.
	EnableAudit bool
}

func DefaultConfig() Config {
	return Config{EnableAudit: true}
}

// FromCentralConfig converts central config.AuthorizationConfig to package Config
func FromCentralConfig(c config.AuthorizationConfig) Config {
	return Config{
		ModelPath:   c.CasbinModelPath,
		PolicyPath:  c.CasbinPolicyPath,
		EnableAudit: true,
	}
}
