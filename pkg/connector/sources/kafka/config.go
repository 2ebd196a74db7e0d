// Package kafka describes the Kafka consumer source. Defaults track
// sarama's client configuration.
package kafka

import (
	"time"

	"github.com/IBM/sarama"

	"github.com/ajitpratap0/nebula-schemagen/pkg/connector/metadata"
	"github.com/ajitpratap0/nebula-schemagen/pkg/connector/shared"
)

// ID is the connector id of the Kafka source
const ID = "kafka"

// Config is the configuration accepted by the Kafka source
type Config struct {
	Brokers          []string `json:"brokers" required:"true" group:"connection" order:"1" importance:"high" desc:"Bootstrap brokers as host:port"`
	Topics           []string `json:"topics" required:"true" group:"connection" order:"2" importance:"high"`
	ClientID         string   `json:"client_id" group:"connection" order:"3"`
	KafkaVersion     string   `json:"kafka_version" group:"connection" order:"4" desc:"Oldest broker version the client must talk to"`
	SecurityProtocol string   `json:"security_protocol" default:"PLAINTEXT" enum:"PLAINTEXT,SSL,SASL_PLAINTEXT,SASL_SSL" group:"connection" order:"5"`
	SASLMechanism    string   `json:"sasl_mechanism" group:"connection" order:"6"`
	SASLUsername     string   `json:"sasl_username" group:"connection" order:"7"`
	SASLPassword     string   `json:"sasl_password" format:"password" group:"connection" order:"8"`

	Consumer   Consumer   `json:"consumer" group:"consumer" desc:"Consumer group settings"`
	DeadLetter DeadLetter `json:"dead_letter" group:"dead_letter" desc:"Producer used to park records that fail to decode"`

	shared.Base
}

// Consumer holds consumer group settings
type Consumer struct {
	GroupID            string        `json:"group_id" required:"true" order:"1"`
	AutoOffsetReset    string        `json:"auto_offset_reset" enum:"earliest,latest" order:"2"`
	EnableAutoCommit   bool          `json:"enable_auto_commit" order:"3"`
	AutoCommitInterval time.Duration `json:"auto_commit_interval" order:"4"`
	SessionTimeout     time.Duration `json:"session_timeout" order:"5"`
	HeartbeatInterval  time.Duration `json:"heartbeat_interval" order:"6"`
	RebalanceStrategy  string        `json:"rebalance_strategy" order:"7"`
	FetchDefaultBytes  int           `json:"fetch_default_bytes" order:"8" importance:"low"`
	MaxWaitTime        time.Duration `json:"max_wait_time" order:"9" importance:"low"`
	ChannelBufferSize  int           `json:"channel_buffer_size" order:"10" internal:"true"`
}

// DeadLetter configures the dead letter producer
type DeadLetter struct {
	Topic           string `json:"topic" order:"1" desc:"Topic receiving undecodable records, empty disables the dead letter queue"`
	Compression     string `json:"compression" order:"2"`
	RequiredAcks    string `json:"required_acks" enum:"none,local,all" order:"3"`
	MaxMessageBytes int    `json:"max_message_bytes" order:"4"`
	RetryMax        int    `json:"retry_max" order:"5"`
}

// Compressions lists the codecs the producer supports
func Compressions() []string {
	codecs := []sarama.CompressionCodec{
		sarama.CompressionNone,
		sarama.CompressionGZIP,
		sarama.CompressionSnappy,
		sarama.CompressionLZ4,
		sarama.CompressionZSTD,
	}
	out := make([]string, len(codecs))
	for i, c := range codecs {
		out[i] = c.String()
	}
	return out
}

// SASLMechanisms lists the SASL mechanisms the client supports
func SASLMechanisms() []string {
	return []string{
		sarama.SASLTypePlaintext,
		sarama.SASLTypeSCRAMSHA256,
		sarama.SASLTypeSCRAMSHA512,
		sarama.SASLTypeOAuth,
		sarama.SASLTypeGSSAPI,
	}
}

// RebalanceStrategies lists the consumer group balance strategies
func RebalanceStrategies() []string {
	return []string{
		sarama.RangeBalanceStrategyName,
		sarama.RoundRobinBalanceStrategyName,
		sarama.StickyBalanceStrategyName,
	}
}

// acksName maps sarama's RequiredAcks to the names used in the config
func acksName(a sarama.RequiredAcks) string {
	switch a {
	case sarama.NoResponse:
		return "none"
	case sarama.WaitForAll:
		return "all"
	default:
		return "local"
	}
}

// offsetName maps sarama's initial offset to auto_offset_reset
func offsetName(o int64) string {
	if o == sarama.OffsetOldest {
		return "earliest"
	}
	return "latest"
}

// Descriptor returns the connector identity
func Descriptor() metadata.Descriptor {
	return metadata.Descriptor{
		ID:          ID,
		Name:        "Kafka",
		Type:        metadata.ConnectorTypeSource,
		Version:     "1.0.0",
		Description: "Kafka consumer group source",
	}
}

// Provider returns the metadata provider of the Kafka source
func Provider() metadata.Provider {
	return shared.NewProvider(Descriptor(), Config{},
		shared.SetEnum("sasl_mechanism", SASLMechanisms()...),
		shared.SetEnum("consumer.rebalance_strategy", RebalanceStrategies()...),
		shared.SetEnum("dead_letter.compression", Compressions()...),
		clientDefaults,
	)
}

func clientDefaults(fields []metadata.Field) {
	cfg := sarama.NewConfig()

	for path, v := range map[string]any{
		"client_id":                     cfg.ClientID,
		"kafka_version":                 cfg.Version.String(),
		"sasl_mechanism":                sarama.SASLTypePlaintext,
		"consumer.auto_offset_reset":    offsetName(cfg.Consumer.Offsets.Initial),
		"consumer.enable_auto_commit":   cfg.Consumer.Offsets.AutoCommit.Enable,
		"consumer.auto_commit_interval": cfg.Consumer.Offsets.AutoCommit.Interval.String(),
		"consumer.session_timeout":      cfg.Consumer.Group.Session.Timeout.String(),
		"consumer.heartbeat_interval":   cfg.Consumer.Group.Heartbeat.Interval.String(),
		"consumer.rebalance_strategy":   sarama.RangeBalanceStrategyName,
		"consumer.fetch_default_bytes":  int64(cfg.Consumer.Fetch.Default),
		"consumer.max_wait_time":        cfg.Consumer.MaxWaitTime.String(),
		"consumer.channel_buffer_size":  int64(cfg.ChannelBufferSize),
		"dead_letter.compression":       cfg.Producer.Compression.String(),
		"dead_letter.required_acks":     acksName(cfg.Producer.RequiredAcks),
		"dead_letter.max_message_bytes": int64(cfg.Producer.MaxMessageBytes),
		"dead_letter.retry_max":         int64(cfg.Producer.Retry.Max),
	} {
		shared.SetDefault(path, v)(fields)
	}
}
