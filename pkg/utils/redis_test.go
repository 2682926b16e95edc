package utils

import "testing"

func TestIngestSlotScriptsCompile(t *testing.T) {
	// Compile-time smoke test: scripts should be initialized.
	if ingestSlotAcquireScript == nil || ingestSlotReleaseScript == nil {
		t.Fatalf("expected scripts to be initialized")
	}
}

func TestRedisConfigDefaults(t *testing.T) {
	cfg := RedisConfig{Addr: "localhost:6379"}.withDefaults()
	if cfg.PoolSize != 20 {
		t.Fatalf("pool size default = %d", cfg.PoolSize)
	}
	if cfg.DialTimeout <= 0 || cfg.PingTimeout <= 0 {
		t.Fatalf("timeout defaults not applied: %+v", cfg)
	}
}
