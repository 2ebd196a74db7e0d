// Package mongodb_cdc describes the MongoDB change stream source.
package mongodb_cdc

import (
	"time"

	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/ajitpratap0/nebula-schemagen/pkg/connector/metadata"
	"github.com/ajitpratap0/nebula-schemagen/pkg/connector/shared"
)

// ID is the connector id of the MongoDB CDC source
const ID = "mongodb_cdc"

// Config is the configuration accepted by the MongoDB CDC source
type Config struct {
	ConnectionString string   `json:"connection_string" required:"true" format:"password" group:"connection" order:"1" importance:"high" desc:"MongoDB URI of a replica set or sharded cluster"`
	Database         string   `json:"database" required:"true" group:"connection" order:"2"`
	Collections      []string `json:"collections" group:"connection" order:"3" desc:"Collections to watch, empty watches the whole database"`
	ReadPreference   string   `json:"read_preference" group:"connection" order:"4"`

	FullDocument             string        `json:"full_document" group:"change_stream" order:"1"`
	FullDocumentBeforeChange string        `json:"full_document_before_change" group:"change_stream" order:"2"`
	ResumeToken              string        `json:"resume_token" group:"change_stream" order:"3" desc:"Resume token of the last processed event"`
	BatchSize                int32         `json:"batch_size" default:"1000" group:"change_stream" order:"4"`
	MaxAwaitTime             time.Duration `json:"max_await_time" default:"1s" group:"change_stream" order:"5"`
	IncludeOperationTypes    []string      `json:"include_operation_types" default:"insert,update,replace,delete" group:"change_stream" order:"6"`

	shared.Base
}

// ReadPreferences lists the read preference modes of the driver
func ReadPreferences() []string {
	modes := []readpref.Mode{
		readpref.PrimaryMode,
		readpref.PrimaryPreferredMode,
		readpref.SecondaryMode,
		readpref.SecondaryPreferredMode,
		readpref.NearestMode,
	}
	out := make([]string, len(modes))
	for i, m := range modes {
		out[i] = m.String()
	}
	return out
}

// Descriptor returns the connector identity
func Descriptor() metadata.Descriptor {
	return metadata.Descriptor{
		ID:          ID,
		Name:        "MongoDB CDC",
		Type:        metadata.ConnectorTypeSource,
		Version:     "1.0.0",
		Description: "MongoDB change data capture through change streams",
	}
}

// Provider returns the metadata provider of the MongoDB CDC source
func Provider() metadata.Provider {
	return shared.NewProvider(Descriptor(), Config{},
		shared.SetEnum("read_preference", ReadPreferences()...),
		shared.SetDefault("read_preference", readpref.PrimaryMode.String()),
		shared.SetEnum("full_document",
			string(options.Default), string(options.UpdateLookup),
			string(options.WhenAvailable), string(options.Required)),
		shared.SetDefault("full_document", string(options.UpdateLookup)),
		shared.SetEnum("full_document_before_change",
			string(options.Off), string(options.WhenAvailable), string(options.Required)),
		shared.SetDefault("full_document_before_change", string(options.Off)),
	)
}
