package config

// Installation-wide parameter names, as written to tungsten.cfg by the installer.
const (
	GlobalHost      = "host_name"
	GlobalDSName    = "local_service_name"
	ReplRole        = "repl_role"
	ReplAutoEnable  = "repl_auto_enable"
	ReplMasterHost  = "repl_master_host"
	ReplLogDir      = "repl_log_dir"
	ReplRelayLogDir = "repl_relay_log_dir"
	ReplBufferSize  = "repl_buffer_size"

	ReplDataServerHost = "repl_datasource_host"
	ReplDBPort         = "repl_datasource_port"
	ReplDBLogin        = "repl_datasource_user"
	ReplDBPassword     = "repl_datasource_password"

	ReplExtractMethod           = "repl_extractor_method"
	ReplTHLDoChecksum           = "repl_thl_do_checksum"
	ReplTHLLogConnectionTimeout = "repl_thl_log_connection_timeout"
	ReplTHLLogFileSize          = "repl_thl_log_file_size"
)

// Local service parameter names. These only make sense per service and most
// of them are reset to the baseline on every load.
const (
	SvcAllowAnyService     = "repl_svc_allow_any_remote_service"
	SvcAllowBidiUnsafe     = "repl_svc_allow_bidi_unsafe"
	SvcBinlogMode          = "repl_svc_binlog_mode"
	SvcChannels            = "repl_svc_channels"
	SvcEnforceHome         = "repl_svc_enforce_home"
	SvcExtractDBHost       = "repl_svc_extract_db_host"
	SvcExtractDBPassword   = "repl_svc_extract_db_password"
	SvcExtractDBPort       = "repl_svc_extract_db_port"
	SvcExtractDBUser       = "repl_svc_extract_db_user"
	SvcMasterPort          = "repl_svc_masterport"
	SvcNativeSlaveTakeover = "repl_svc_native_slave_takeover"
	SvcParallelizationType = "repl_svc_parallelization_type"
	SvcServiceType         = "repl_svc_service_type"
	SvcShardDefaultDB      = "repl_svc_shard_default_db"
	SvcTHLPort             = "repl_svc_thl_port"
)

// Values with special meaning to the generator.
const (
	ExtractMethodRelay    = "relay"
	ParallelizationMemory = "memory"
	ServiceTypeLocal      = "local"
	ServiceTypeRemote     = "remote"
)

// Parameter describes one command line override.
type Parameter struct {
	// Flag is the long flag name without dashes.
	Flag string
	// Key is the property the flag overrides.
	Key string
	// Usage is the help text.
	Usage string
	// DisplayKey is the property shown as the current default in help
	// output. It differs from Key for the extract-db-* flags, whose
	// defaults come from the installation's main datasource.
	DisplayKey string
}

var parameters = []Parameter{
	{Flag: "allow-bidi-unsafe", Key: SvcAllowBidiUnsafe, Usage: "Allow unsafe SQL from remote service"},
	{Flag: "allow-any-remote-service", Key: SvcAllowAnyService, Usage: "Replicate from any service"},
	{Flag: "auto-enable", Key: ReplAutoEnable, Usage: "If true, service goes online at startup"},
	{Flag: "binlog-mode", Key: SvcBinlogMode, Usage: "Read MySQL binlog or slave relay log (master|slave-relay)"},
	{Flag: "buffer-size", Key: ReplBufferSize, Usage: "Size of buffers for block commit and queues"},
	{Flag: "channels", Key: SvcChannels, Usage: "Number of channels for parallel apply"},
	{Flag: "enforce-home", Key: SvcEnforceHome, Usage: "Enforce shard homes"},
	{Flag: "extract-db-host", Key: SvcExtractDBHost, Usage: "Extractor DBMS host name", DisplayKey: ReplDataServerHost},
	{Flag: "extract-db-password", Key: SvcExtractDBPassword, Usage: "Extractor DBMS password", DisplayKey: ReplDBPassword},
	{Flag: "extract-db-port", Key: SvcExtractDBPort, Usage: "Extractor DBMS port number", DisplayKey: ReplDBPort},
	{Flag: "extract-db-user", Key: SvcExtractDBUser, Usage: "Extractor DBMS user", DisplayKey: ReplDBLogin},
	{Flag: "extract-method", Key: ReplExtractMethod, Usage: "Binlog extraction method (direct|relay)"},
	{Flag: "local-service-name", Key: GlobalDSName, Usage: "Replicator service that owns master"},
	{Flag: "master-host", Key: ReplMasterHost, Usage: "Replicator remote master host name"},
	{Flag: "master-port", Key: SvcMasterPort, Usage: "Replicator remote master port"},
	{Flag: "native-slave-takeover", Key: SvcNativeSlaveTakeover, Usage: "Replacing native slave replication"},
	{Flag: "parallelization-type", Key: SvcParallelizationType, Usage: "Parallelization method (disk|memory)"},
	{Flag: "relay-log-dir", Key: ReplRelayLogDir, Usage: "Directory for relay log files"},
	{Flag: "role", Key: ReplRole, Usage: "Replicator role"},
	{Flag: "service-type", Key: SvcServiceType, Usage: "Replicator service type (local|remote)"},
	{Flag: "shard-default-db", Key: SvcShardDefaultDB, Usage: "Use default db for shard ID (stringent|relaxed)"},
	{Flag: "thl-conn-timeout", Key: ReplTHLLogConnectionTimeout, Usage: "Idle timeout on internal THL connections"},
	{Flag: "thl-do-checksum", Key: ReplTHLDoChecksum, Usage: "If true, checksum THL records"},
	{Flag: "thl-log-dir", Key: ReplLogDir, Usage: "Directory for THL log files"},
	{Flag: "thl-logfile-size", Key: ReplTHLLogFileSize, Usage: "Size in bytes of THL log files"},
	{Flag: "thl-port", Key: SvcTHLPort, Usage: "THL server listener port"},
}

// Parameters returns the override catalogue in help order.
func Parameters() []Parameter {
	out := make([]Parameter, len(parameters))
	for i, p := range parameters {
		if p.DisplayKey == "" {
			p.DisplayKey = p.Key
		}
		out[i] = p
	}
	return out
}
