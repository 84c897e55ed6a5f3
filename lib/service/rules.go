package service

import (
	"github.com/tungsten-replicator/configure-service/lib/config"
	"github.com/tungsten-replicator/configure-service/lib/transformer"
)

// Parallel queue implementations, selected by the parallelization type.
const (
	memoryParallelQueue     = "com.continuent.tungsten.replicator.storage.parallel.ParallelQueueStore"
	memoryParallelExtractor = "com.continuent.tungsten.replicator.storage.parallel.ParallelQueueExtractor"
	memoryParallelApplier   = "com.continuent.tungsten.replicator.storage.parallel.ParallelQueueApplier"
	diskParallelQueue       = "com.continuent.tungsten.replicator.thl.THLParallelQueue"
	diskParallelExtractor   = "com.continuent.tungsten.replicator.thl.THLParallelQueueExtractor"
	diskParallelApplier     = "com.continuent.tungsten.replicator.thl.THLParallelQueueApplier"
)

// ServiceType returns the replicator.service.type for the named service:
// the explicit repl_svc_service_type when set, otherwise "local" when the
// name equals local_service_name and "remote" when it does not.
func ServiceType(cfg *config.Resolved, name string) string {
	if explicit, ok := cfg.Lookup(config.SvcServiceType); ok {
		return explicit
	}
	if cfg.Equals(config.GlobalDSName, name) {
		return config.ServiceTypeLocal
	}
	return config.ServiceTypeRemote
}

// Rules builds the rule table that turns the service template into the
// static properties of id. Every key has exactly one rule and rules match
// on the exact "key=" prefix, so local.service.name and service.name never
// shadow each other.
func Rules(cfg *config.Resolved, id Identity) transformer.Table {
	key := func(k string) transformer.ValueFunc { return transformer.FromKey(cfg, k) }
	memory := func() bool { return cfg.Equals(config.SvcParallelizationType, config.ParallelizationMemory) }
	pick := func(inMemory, onDisk string) transformer.ValueFunc {
		return func() (string, bool) {
			if memory() {
				return inMemory, true
			}
			return onDisk, true
		}
	}

	return transformer.Table{
		transformer.KeyRule("replicator.global.extract.db.host", key(config.SvcExtractDBHost)),
		transformer.KeyRule("replicator.global.extract.db.port", key(config.SvcExtractDBPort)),
		transformer.KeyRule("replicator.global.extract.db.user", key(config.SvcExtractDBUser)),
		transformer.KeyRule("replicator.global.extract.db.password", key(config.SvcExtractDBPassword)),
		transformer.KeyRule("replicator.role", key(config.ReplRole)),
		transformer.KeyRule("replicator.nativeSlaveTakeover", boolValue(cfg, config.SvcNativeSlaveTakeover, "true")),
		transformer.KeyRule("local.service.name", key(config.GlobalDSName)),
		transformer.KeyRule("service.name", transformer.Const(id.Name)),
		transformer.KeyRule("replicator.service.type", transformer.Const(ServiceType(cfg, id.Name))),
		transformer.KeyRule("replicator.auto_enable", key(config.ReplAutoEnable)),
		transformer.KeyRule("replicator.extractor.mysql.binlogMode", key(config.SvcBinlogMode)),
		transformer.KeyRule("replicator.master.connect.uri", thlURI(key(config.ReplMasterHost), key(config.SvcMasterPort))),
		transformer.KeyRule("replicator.master.listen.uri", thlURI(key(config.GlobalHost), key(config.SvcTHLPort))),
		transformer.KeyRule("replicator.store.thl.storageListenerUri", thlURI(transformer.Const("0.0.0.0"), key(config.SvcTHLPort))),
		transformer.KeyRule("replicator.extractor.mysql.useRelayLogs", boolValue(cfg, config.ReplExtractMethod, config.ExtractMethodRelay)),
		transformer.GuardedKeyRule("replicator.extractor.mysql.relayLogDir", cfg.RelayMode, pathValue(id.RelayLogDir)),
		transformer.KeyRule("replicator.global.apply.channels", key(config.SvcChannels)),
		transformer.KeyRule("replicator.global.buffer.size", key(config.ReplBufferSize)),
		transformer.KeyRule("replicator.store.thl.doChecksum", key(config.ReplTHLDoChecksum)),
		transformer.KeyRule("replicator.store.thl.logConnectionTimeout", key(config.ReplTHLLogConnectionTimeout)),
		transformer.KeyRule("replicator.store.thl.log_dir", pathValue(id.LogDir)),
		transformer.KeyRule("replicator.store.thl.log_file_size", key(config.ReplTHLLogFileSize)),
		transformer.KeyRule("replicator.store.parallel-queue", pick(memoryParallelQueue, diskParallelQueue)),
		transformer.KeyRule("replicator.extractor.parallel-q-extractor", pick(memoryParallelExtractor, diskParallelExtractor)),
		transformer.KeyRule("replicator.applier.parallel-q-applier", pick(memoryParallelApplier, diskParallelApplier)),
		transformer.KeyRule("replicator.shard.default.db", key(config.SvcShardDefaultDB)),
		transformer.KeyRule("replicator.filter.bidiSlave.allowBidiUnsafe", key(config.SvcAllowBidiUnsafe)),
		transformer.KeyRule("replicator.filter.bidiSlave.allowAnyRemoteService", key(config.SvcAllowAnyService)),
		transformer.KeyRule("replicator.filter.shardfilter.enforceHome", key(config.SvcEnforceHome)),
	}
}

// boolValue yields "true" when key equals want and "false" otherwise,
// including when key is absent.
func boolValue(cfg *config.Resolved, key, want string) transformer.ValueFunc {
	return func() (string, bool) {
		if cfg.Equals(key, want) {
			return "true", true
		}
		return "false", true
	}
}

// thlURI yields thl://host:port/ when both parts are present.
func thlURI(host, port transformer.ValueFunc) transformer.ValueFunc {
	return func() (string, bool) {
		h, ok := host()
		if !ok {
			return "", false
		}
		p, ok := port()
		if !ok {
			return "", false
		}
		return "thl://" + h + ":" + p + "/", true
	}
}

func pathValue(path string) transformer.ValueFunc {
	return func() (string, bool) { return path, path != "" }
}
