// Package artifact computes where generated schemas go and writes them.
package artifact

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/ajitpratap0/nebula-schemagen/pkg/errors"
)

// Extension is appended to every artifact file name
const Extension = ".json"

const (
	dirMode  = 0o755
	fileMode = 0o644
)

// Naming holds the output naming configuration of a run
type Naming struct {
	BaseDir           string
	GroupPerConnector bool
	Prefix            string
	Suffix            string
}

// Path returns the artifact path of the connector with the given id
func (n Naming) Path(id string) string {
	return ComputePath(n.BaseDir, n.GroupPerConnector, n.Prefix, id, n.Suffix)
}

// Plan computes the path of every connector id, in order. Two ids mapping to
// the same path is a conflict.
func (n Naming) Plan(ids []string) ([]string, error) {
	paths := make([]string, 0, len(ids))
	owner := make(map[string]string, len(ids))
	for _, id := range ids {
		p := n.Path(id)
		if prev, ok := owner[p]; ok {
			return nil, errors.New(errors.ErrorTypeConflict, "two connectors map to the same output path").
				WithDetail("path", p).
				WithDetail("connector", id).
				WithDetail("other_connector", prev)
		}
		owner[p] = id
		paths = append(paths, p)
	}
	return paths, nil
}

// ComputePath returns baseDir/[id/]prefix+id+suffix.json. It is a pure
// function of its arguments.
func ComputePath(baseDir string, groupPerConnector bool, prefix, id, suffix string) string {
	name := prefix + id + suffix + Extension
	if groupPerConnector {
		return filepath.Join(baseDir, id, name)
	}
	return filepath.Join(baseDir, name)
}

// Output is a rendered artifact and its destination
type Output struct {
	ConnectorID string
	Path        string
	Content     []byte
}

// Write creates the missing parent directories of path and writes content,
// replacing any existing file.
func Write(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return errors.Wrap(err, errors.ErrorTypeWrite, "failed to create directory").
			WithDetail("path", dir)
	}
	if err := os.WriteFile(path, content, fileMode); err != nil { //nolint:gosec
		return errors.Wrap(err, errors.ErrorTypeWrite, "failed to write file").
			WithDetail("path", path)
	}
	return nil
}

// Writer persists outputs. With DryRun set nothing touches the filesystem.
type Writer struct {
	DryRun bool
	logger *zap.Logger
}

// NewWriter creates a Writer
func NewWriter(logger *zap.Logger, dryRun bool) *Writer {
	return &Writer{
		DryRun: dryRun,
		logger: logger.With(zap.String("component", "artifact_writer")),
	}
}

// Write persists out
func (w *Writer) Write(out Output) error {
	if w.DryRun {
		w.logger.Info("dry run, skipping write",
			zap.String("connector", out.ConnectorID),
			zap.String("path", out.Path),
			zap.Int("bytes", len(out.Content)))
		return nil
	}

	if err := Write(out.Path, out.Content); err != nil {
		return errors.Wrap(err, errors.ErrorTypeWrite, "failed to write schema").
			WithDetail("connector", out.ConnectorID)
	}

	w.logger.Debug("schema written",
		zap.String("connector", out.ConnectorID),
		zap.String("path", out.Path),
		zap.Int("bytes", len(out.Content)))
	return nil
}
