package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"myregistry/adapters/myredis"
	"myregistry/service"
)

// Defaults for the timing knobs, all overridable via *_MS env variables.
const (
	defaultSweepIntervalMs   = 60000
	defaultInstanceTimeoutMs = 300000
	defaultMutexTimeoutMs    = 5000
)

type MyRegistryConfig struct {
	Redis        myredis.RedisConfig
	HTTPPort     int
	Registry     service.Config
	FlushOnStart bool
	MemoryStore  bool
}

// LoadConfig loads configuration from environment variables.
// SERVICE_PORT_HTTP is always required; REDIS_ADDR is required unless
// MEMORY_STORE=true selects the in-memory backend.
func LoadConfig() (*MyRegistryConfig, error) {
	memoryStore, err := boolEnv("MEMORY_STORE", false)
	if err != nil {
		return nil, err
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" && !memoryStore {
		return nil, fmt.Errorf("REDIS_ADDR is required")
	}

	httpPortStr := os.Getenv("SERVICE_PORT_HTTP")
	if httpPortStr == "" {
		return nil, fmt.Errorf("SERVICE_PORT_HTTP is required")
	}
	httpPort, err := strconv.Atoi(httpPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVICE_PORT_HTTP: %w", err)
	}

	sweepInterval, err := durationEnv("GC_INTERVAL_MS", defaultSweepIntervalMs)
	if err != nil {
		return nil, err
	}
	instanceTimeout, err := durationEnv("INSTANCE_TIMEOUT_MS", defaultInstanceTimeoutMs)
	if err != nil {
		return nil, err
	}
	mutexTimeout, err := durationEnv("MUTEX_TIMEOUT_MS", defaultMutexTimeoutMs)
	if err != nil {
		return nil, err
	}

	flushOnStart, err := boolEnv("FLUSH_ON_START", false)
	if err != nil {
		return nil, err
	}

	return &MyRegistryConfig{
		Redis: myredis.RedisConfig{
			Addr: redisAddr,
		},
		HTTPPort: httpPort,
		Registry: service.Config{
			SweepInterval:   sweepInterval,
			InstanceTimeout: instanceTimeout,
			MutexTimeout:    mutexTimeout,
		},
		FlushOnStart: flushOnStart,
		MemoryStore:  memoryStore,
	}, nil
}

func durationEnv(name string, defaultMs int) (time.Duration, error) {
	value := os.Getenv(name)
	if value == "" {
		return time.Duration(defaultMs) * time.Millisecond, nil
	}
	ms, err := strconv.Atoi(value)
	if err != nil || ms <= 0 {
		return 0, fmt.Errorf("invalid %s: must be a positive number of milliseconds", name)
	}
	return time.Duration(ms) * time.Millisecond, nil
}

func boolEnv(name string, defaultValue bool) (bool, error) {
	value := os.Getenv(name)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", name, err)
	}
	return b, nil
}
