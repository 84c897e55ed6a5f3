package config

import (
	"github.com/spf13/viper"
	"github.com/tungsten-replicator/configure-service/lib/properties"
)

// EnvPrefix prefixes environment variables that override parameters,
// e.g. TUNGSTEN_REPL_SVC_CHANNELS.
const EnvPrefix = "TUNGSTEN"

// NewViper returns a viper instance that reads overrides from the environment.
// Callers bind their command line flags to it with BindPFlag(p.Key, ...).
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	return v
}

// OverridesFromViper collects the override layer: every catalogue key that
// was set explicitly through a changed flag, the environment or viper.Set.
// Flag defaults do not count.
func OverridesFromViper(v *viper.Viper) *properties.Set {
	overrides := properties.New()
	for _, p := range parameters {
		if v.IsSet(p.Key) {
			overrides.Set(p.Key, v.GetString(p.Key))
		}
	}
	return overrides
}
