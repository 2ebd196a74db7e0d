package metadata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/nebula-schemagen/pkg/errors"
)

type retrySection struct {
	Attempts int           `json:"attempts" default:"3" group:"reliability" order:"1"`
	Delay    time.Duration `json:"delay" default:"1s"`
}

type embedded struct {
	Host string `json:"host" required:"true" group:"connection" order:"1" importance:"high"`
	Port int32  `json:"port" default:"5432" group:"connection" order:"2"`
}

type sampleConfig struct {
	embedded

	Password   string            `json:"password" format:"password" group:"connection" order:"3"`
	Tables     []string          `json:"tables" default:"a,b" desc:"Tables to read"`
	Labels     map[string]string `json:"labels"`
	Mode       string            `json:"mode" enum:"snapshot, stream" default:"stream" display:"Capture mode"`
	Ratio      float64           `json:"ratio" default:"0.5"`
	MaxBytes   int64             `json:"max_bytes"`
	Debug      bool              `json:"debug" default:"false" internal:"true"`
	Legacy     string            `json:"legacy" deprecated:"true"`
	Retry      retrySection      `json:"retry"`
	Inline     retrySection      `json:",inline"`
	Ignored    string            `json:"-"`
	unexported string
}

func TestReflectFieldSurface(t *testing.T) {
	fields, err := Reflect(&sampleConfig{})
	require.NoError(t, err)

	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{
		"host", "port", "password", "tables", "labels", "mode", "ratio",
		"max_bytes", "debug", "legacy", "retry", "attempts", "delay",
	}, names)

	host := Lookup(fields, "host")
	require.NotNil(t, host)
	assert.Equal(t, TypeString, host.Type)
	assert.True(t, host.Required)
	assert.Equal(t, "connection", host.Group)
	assert.Equal(t, 1, host.GroupOrder)
	assert.Equal(t, ImportanceHigh, host.Importance)
	assert.Equal(t, "Host", host.DisplayName)

	assert.Equal(t, TypeInt, Lookup(fields, "port").Type)
	assert.Equal(t, int64(5432), Lookup(fields, "port").Default)
	assert.Equal(t, TypePassword, Lookup(fields, "password").Type)
	assert.Equal(t, TypeLong, Lookup(fields, "max_bytes").Type)
	assert.Equal(t, TypeDouble, Lookup(fields, "ratio").Type)
	assert.Equal(t, 0.5, Lookup(fields, "ratio").Default)

	tables := Lookup(fields, "tables")
	assert.Equal(t, TypeList, tables.Type)
	require.NotNil(t, tables.Elem)
	assert.Equal(t, TypeString, tables.Elem.Type)
	assert.Equal(t, []string{"a", "b"}, tables.Default)
	assert.Equal(t, "Tables to read", tables.Description)

	labels := Lookup(fields, "labels")
	assert.Equal(t, TypeMap, labels.Type)
	assert.Equal(t, TypeString, labels.Elem.Type)

	mode := Lookup(fields, "mode")
	assert.Equal(t, []string{"snapshot", "stream"}, mode.AllowedValues)
	assert.Equal(t, "Capture mode", mode.DisplayName)

	assert.True(t, Lookup(fields, "debug").Internal)
	assert.Equal(t, false, Lookup(fields, "debug").Default)
	assert.True(t, Lookup(fields, "legacy").Deprecated)

	retry := Lookup(fields, "retry")
	assert.Equal(t, TypeObject, retry.Type)
	require.Len(t, retry.Fields, 2)
	assert.Equal(t, TypeDuration, Lookup(fields, "retry.delay").Type)
	assert.Equal(t, "1s", Lookup(fields, "retry.delay").Default)
	assert.Equal(t, "Max bytes", Lookup(fields, "max_bytes").DisplayName)
}

func TestLookupAdjustsInPlace(t *testing.T) {
	fields := MustReflect(sampleConfig{})
	Lookup(fields, "retry.attempts").Default = int64(10)

	assert.Equal(t, int64(10), fields[10].Fields[0].Default)
	assert.Nil(t, Lookup(fields, "retry.missing"))
	assert.Nil(t, Lookup(fields, "nope"))
}

func TestReflectErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  any
	}{
		{"not a struct", 42},
		{"nil", nil},
		{"bad default", struct {
			N int `json:"n" default:"many"`
		}{}},
		{"bad duration", struct {
			D time.Duration `json:"d" default:"soon"`
		}{}},
		{"password on int", struct {
			P int `json:"p" format:"password"`
		}{}},
		{"non string map key", struct {
			M map[int]string `json:"m"`
		}{}},
		{"unsupported kind", struct {
			C chan int `json:"c"`
		}{}},
		{"bad order", struct {
			S string `json:"s" order:"first"`
		}{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Reflect(tt.cfg)
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
		})
	}
}

func TestHumanize(t *testing.T) {
	assert.Equal(t, "Batch size", humanize("batch_size"))
	assert.Equal(t, "Database hostname", humanize("database.hostname"))
	assert.Equal(t, "Url", humanize("URL"))
	assert.Equal(t, "___", humanize("___"))
}

type listNode struct {
	Name string    `json:"name"`
	Next *listNode `json:"next"`
}

type treeNode struct {
	Children []treeNode `json:"children"`
}

type ping struct {
	Pong *pong `json:"pong"`
}

type pong struct {
	Ping map[string]ping `json:"ping"`
}

type twoSections struct {
	Primary   retrySection `json:"primary"`
	Secondary retrySection `json:"secondary"`
}

func TestReflectRecursiveTypes(t *testing.T) {
	for name, cfg := range map[string]any{
		"pointer": listNode{},
		"slice":   treeNode{},
		"mutual":  &ping{},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Reflect(cfg)
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
			assert.Contains(t, err.Error(), "recursive configuration type")
		})
	}
}

func TestReflectRepeatedSiblingTypes(t *testing.T) {
	fields, err := Reflect(twoSections{})
	require.NoError(t, err)
	require.Len(t, fields, 2)
	assert.Len(t, Lookup(fields, "primary").Fields, 2)
	assert.Len(t, Lookup(fields, "secondary").Fields, 2)
}
