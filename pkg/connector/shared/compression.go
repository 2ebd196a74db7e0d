package shared

import (
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/ajitpratap0/nebula-schemagen/pkg/connector/metadata"
)

// ZstdLevels returns the zstd encoder level names from fastest to best
func ZstdLevels() []string {
	levels := []zstd.EncoderLevel{
		zstd.SpeedFastest,
		zstd.SpeedDefault,
		zstd.SpeedBetterCompression,
		zstd.SpeedBestCompression,
	}
	out := make([]string, len(levels))
	for i, l := range levels {
		out[i] = l.String()
	}
	return out
}

// LZ4Levels returns the lz4 compression level names, Fast first
func LZ4Levels() []string {
	levels := []lz4.CompressionLevel{
		lz4.Fast,
		lz4.Level1, lz4.Level2, lz4.Level3,
		lz4.Level4, lz4.Level5, lz4.Level6,
		lz4.Level7, lz4.Level8, lz4.Level9,
	}
	out := make([]string, len(levels))
	for i, l := range levels {
		out[i] = l.String()
	}
	return out
}

// LZ4BlockSizes returns the lz4 frame block size names
func LZ4BlockSizes() []string {
	sizes := []lz4.BlockSize{lz4.Block64Kb, lz4.Block256Kb, lz4.Block1Mb, lz4.Block4Mb}
	out := make([]string, len(sizes))
	for i, s := range sizes {
		out[i] = s.String()
	}
	return out
}

// ApplyCompression fills the codec derived values of a Compression section
// reflected under prefix (usually "compression").
func ApplyCompression(fields []metadata.Field, prefix string) {
	if f := metadata.Lookup(fields, prefix+".zstd_level"); f != nil {
		f.AllowedValues = ZstdLevels()
		f.Default = zstd.SpeedDefault.String()
	}
	if f := metadata.Lookup(fields, prefix+".lz4_level"); f != nil {
		f.AllowedValues = LZ4Levels()
		f.Default = lz4.Fast.String()
	}
	if f := metadata.Lookup(fields, prefix+".lz4_block_size"); f != nil {
		f.AllowedValues = LZ4BlockSizes()
		f.Default = lz4.Block4Mb.String()
	}
}
