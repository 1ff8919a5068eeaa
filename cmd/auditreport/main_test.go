package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/auditreport-go/pkg/auditreport"
	"github.com/ukaji3/auditreport-go/pkg/auditreport/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&cliState{})
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestInitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auditreport.yaml")

	out, err := execute(t, "init-config", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	cfg, err := config.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)

	_, err = execute(t, "init-config", path)
	assert.ErrorContains(t, err, "already exists")

	_, err = execute(t, "init-config", "--force", path)
	assert.NoError(t, err)
}

func TestExportRequiresSelection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auditreport.yaml")
	_, err := execute(t, "init-config", path)
	require.NoError(t, err)

	_, err = execute(t, "export", "--config", path, "--template", "高新", "--format", "Word")
	assert.ErrorIs(t, err, auditreport.ErrInvalidSelection)
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auditreport.yaml")
	_, err := execute(t, "init-config", path)
	require.NoError(t, err)

	_, err = execute(t, "export", "--config", path, "--template", "高新", "--type", "年报", "--format", "html")
	assert.ErrorContains(t, err, "unsupported export format")
}

func TestExplicitConfigMustExist(t *testing.T) {
	_, err := execute(t, "inspect", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")
}
