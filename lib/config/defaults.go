package config

import "github.com/tungsten-replicator/configure-service/lib/properties"

// BaselineDefaults holds the fixed values of the local service parameters.
// They are applied after the persisted file is loaded, so they replace any
// persisted value for the same key. Only command line and environment
// overrides can change them.
type BaselineDefaults struct {
	// Channels is the number of parallel apply channels.
	// Default: 1
	Channels string

	// EnforceHome makes the shard filter enforce shard homes.
	// Default: false
	EnforceHome string

	// MasterPort is the THL port of the remote master.
	// Default: 2112
	MasterPort string

	// THLPort is the local THL listener port.
	// Default: 2112
	THLPort string

	// BinlogMode selects between reading the binlog and the slave relay log.
	// Default: master
	BinlogMode string

	// ShardDefaultDB controls use of the default db for shard IDs.
	// Default: stringent
	ShardDefaultDB string

	// AllowBidiUnsafe lets unsafe SQL through from a remote service.
	// Default: false
	AllowBidiUnsafe string

	// AllowAnyRemoteService accepts events from any remote service.
	// Default: false
	AllowAnyRemoteService string

	// ParallelizationType picks the in-memory or THL-backed parallel queue.
	// Default: memory
	ParallelizationType string

	// NativeSlaveTakeover replaces native MySQL slave replication.
	// Default: false
	NativeSlaveTakeover string
}

// Defaults returns the built-in baseline.
func Defaults() BaselineDefaults {
	return BaselineDefaults{
		Channels:              "1",
		EnforceHome:           "false",
		MasterPort:            "2112",
		THLPort:               "2112",
		BinlogMode:            "master",
		ShardDefaultDB:        "stringent",
		AllowBidiUnsafe:       "false",
		AllowAnyRemoteService: "false",
		ParallelizationType:   ParallelizationMemory,
		NativeSlaveTakeover:   "false",
	}
}

// Properties returns d as a baseline layer.
func (d BaselineDefaults) Properties() *properties.Set {
	return properties.FromPairs(
		SvcChannels, d.Channels,
		SvcEnforceHome, d.EnforceHome,
		SvcMasterPort, d.MasterPort,
		SvcTHLPort, d.THLPort,
		SvcBinlogMode, d.BinlogMode,
		SvcShardDefaultDB, d.ShardDefaultDB,
		SvcAllowBidiUnsafe, d.AllowBidiUnsafe,
		SvcAllowAnyService, d.AllowAnyRemoteService,
		SvcParallelizationType, d.ParallelizationType,
		SvcNativeSlaveTakeover, d.NativeSlaveTakeover,
	)
}

// Baseline is shorthand for Defaults().Properties().
func Baseline() *properties.Set {
	return Defaults().Properties()
}
