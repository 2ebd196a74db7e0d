package testutil

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// OutputSuite provides a context and a fresh output directory per test
type OutputSuite struct {
	suite.Suite
	ctx     context.Context
	cancel  context.CancelFunc
	tempDir string
}

// SetupTest runs before each test in the suite
func (s *OutputSuite) SetupTest() {
	s.ctx, s.cancel = context.WithTimeout(context.Background(), 30*time.Second)

	tempDir, err := os.MkdirTemp("", "schemagen-test-*")
	require.NoError(s.T(), err)
	s.tempDir = tempDir
}

// TearDownTest runs after each test in the suite
func (s *OutputSuite) TearDownTest() {
	s.cancel()
	if err := os.RemoveAll(s.tempDir); err != nil {
		s.T().Logf("failed to clean up %s: %v", s.tempDir, err)
	}
}

// Context returns the test context
func (s *OutputSuite) Context() context.Context {
	return s.ctx
}

// OutputDir returns a path under the temp directory that does not exist yet
func (s *OutputSuite) OutputDir() string {
	return filepath.Join(s.tempDir, "out")
}

// Files returns the files written under OutputDir
func (s *OutputSuite) Files() map[string]string {
	return ReadTree(s.T(), s.OutputDir())
}
