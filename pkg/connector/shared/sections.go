// Package shared holds the configuration sections every connector carries.
//
// Connector configs embed Base next to their own fields; metadata.Reflect
// turns each section into a nested object field (performance, timeouts,
// reliability, security, observability). The defaults mirror what the
// runtime applies when a section is omitted.
package shared

import "time"

// Base groups the sections common to all connectors. Embed it last in a
// connector config so connector specific groups are listed first.
type Base struct {
	Performance   Performance   `json:"performance" group:"performance" desc:"Throughput and resource usage"`
	Timeouts      Timeouts      `json:"timeouts" group:"timeouts" desc:"Connection and operation timeouts"`
	Reliability   Reliability   `json:"reliability" group:"reliability" desc:"Retries, circuit breaking and rate limiting"`
	Security      Security      `json:"security" group:"security" desc:"TLS settings"`
	Observability Observability `json:"observability" group:"observability" desc:"Connector level metrics and logging" importance:"low"`
}

// Performance controls throughput and resource usage
type Performance struct {
	BatchSize       int           `json:"batch_size" default:"1000" order:"1" importance:"high" desc:"Records processed together in one batch"`
	BufferSize      int           `json:"buffer_size" default:"10000" order:"2" desc:"Records buffered between read and write"`
	Workers         int           `json:"workers" default:"0" order:"3" desc:"Concurrent workers, 0 uses the number of CPUs"`
	MaxConcurrency  int           `json:"max_concurrency" default:"10" order:"4"`
	FlushInterval   time.Duration `json:"flush_interval" default:"10s" order:"5" desc:"Maximum time a partial batch is held"`
	MemoryLimitMB   int           `json:"memory_limit_mb" default:"1024" order:"6" importance:"low"`
	EnableStreaming bool          `json:"enable_streaming" default:"true" order:"7"`
	AsyncOperations bool          `json:"async_operations" default:"true" order:"8" internal:"true"`
}

// Timeouts defines the timeout durations of a connector
type Timeouts struct {
	Request      time.Duration `json:"request" default:"30s" order:"1"`
	Connection   time.Duration `json:"connection" default:"10s" order:"2"`
	Idle         time.Duration `json:"idle" default:"5m0s" order:"3"`
	ReadTimeout  time.Duration `json:"read_timeout" default:"30s" order:"4"`
	WriteTimeout time.Duration `json:"write_timeout" default:"30s" order:"5"`
	KeepAlive    time.Duration `json:"keep_alive" default:"30s" order:"6"`
}

// Reliability contains retry and resilience settings
type Reliability struct {
	RetryAttempts   int           `json:"retry_attempts" default:"3" order:"1" importance:"high"`
	RetryDelay      time.Duration `json:"retry_delay" default:"1s" order:"2"`
	RetryMultiplier float64       `json:"retry_multiplier" default:"2" order:"3" desc:"Backoff factor applied after each retry"`
	MaxRetryDelay   time.Duration `json:"max_retry_delay" default:"1m0s" order:"4"`
	CircuitBreaker  bool          `json:"circuit_breaker" default:"true" order:"5"`
	RateLimitPerSec int           `json:"rate_limit_per_sec" default:"0" order:"6" desc:"Requests per second, 0 disables rate limiting"`
	HealthCheck     bool          `json:"health_check" default:"true" order:"7"`
	FailFast        bool          `json:"fail_fast" default:"false" order:"8"`
}

// Security contains TLS settings. Credentials live on the connector config.
type Security struct {
	EnableTLS       bool   `json:"enable_tls" default:"true" order:"1"`
	TLSSkipVerify   bool   `json:"tls_skip_verify" default:"false" order:"2" importance:"low" desc:"Accept any server certificate"`
	CertificatePath string `json:"certificate_path" order:"3"`
	KeyPath         string `json:"key_path" order:"4"`
	CAPath          string `json:"ca_path" order:"5"`
}

// Observability contains per connector telemetry settings
type Observability struct {
	EnableMetrics     bool          `json:"enable_metrics" default:"true" order:"1"`
	MetricsInterval   time.Duration `json:"metrics_interval" default:"30s" order:"2"`
	LogLevel          string        `json:"log_level" default:"info" enum:"debug,info,warn,error" order:"3"`
	TracingSampleRate float64       `json:"tracing_sample_rate" default:"0.1" order:"4"`
	Debug             bool          `json:"debug" default:"false" internal:"true"`
}

// ConnectionConfig is the network endpoint and credentials of a database
// style connector.
type ConnectionConfig struct {
	Host     string `json:"host" required:"true" group:"connection" order:"1" importance:"high" desc:"Server host name or address"`
	Port     int    `json:"port" required:"true" group:"connection" order:"2" importance:"high"`
	Username string `json:"username" group:"connection" order:"3" desc:"User to authenticate as"`
	Password string `json:"password" group:"connection" order:"4" format:"password"`
}

// Compression configures payload compression for file and message based
// connectors. Level values are filled in by Apply from the codec libraries.
type Compression struct {
	Algorithm    string `json:"algorithm" default:"none" enum:"none,gzip,snappy,lz4,zstd,s2,deflate" order:"1"`
	ZstdLevel    string `json:"zstd_level" order:"2" desc:"Encoder level when algorithm is zstd"`
	LZ4Level     string `json:"lz4_level" order:"3" desc:"Compression level when algorithm is lz4"`
	LZ4BlockSize string `json:"lz4_block_size" order:"4" importance:"low"`
	Threshold    int    `json:"threshold" default:"1024" order:"5" desc:"Payloads smaller than this many bytes are not compressed"`
}
