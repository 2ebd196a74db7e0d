// Package connector groups everything that describes Nebula connectors to the
// schema generator.
//
// # Architecture Overview
//
// The connector package is organized into several sub-packages:
//
//   - metadata: Defines the Provider and Metadata interfaces and the Field
//     model of a configuration surface. Reflect builds fields from tagged
//     config structs.
//
//   - shared: Configuration sections common to every connector (performance,
//     timeouts, reliability, security, observability, compression) and the
//     NewProvider helper used by the built-in connectors.
//
//   - sources: Source connector descriptions for databases (PostgreSQL,
//     MySQL and their CDC variants, MongoDB change streams), Kafka and CSV.
//
//   - destinations: Destination connector descriptions for data warehouses
//     (Snowflake, BigQuery) and object storage (S3, GCS).
//
//   - registry: Holds connector providers and schema formats. Packages
//     self-register during initialization; the generator enumerates them
//     without naming any concrete type.
//
// # Client libraries
//
// Connector packages read defaults and allowed values from the client
// libraries the connectors run on (pgx, go-sql-driver/mysql, go-mysql,
// mongo-driver, sarama, aws-sdk-go-v2, the Google Cloud clients and
// gosnowflake), so a published schema changes when the library does.
//
// # Example Usage
//
// Registering a connector:
//
//	type Config struct {
//		shared.ConnectionConfig
//		Database string `json:"database" required:"true" group:"connection"`
//		shared.Base
//	}
//
//	func init() {
//		registry.MustRegisterProvider(shared.NewProvider(metadata.Descriptor{
//			ID:   "warehouse",
//			Name: "Warehouse",
//			Type: metadata.ConnectorTypeDestination,
//		}, Config{}))
//	}
package connector
