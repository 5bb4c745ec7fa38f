package app

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/soocke/pagegrab-go/config"
	"github.com/soocke/pagegrab-go/domain/errs"
	"github.com/soocke/pagegrab-go/domain/pipeline"
	"github.com/soocke/pagegrab-go/ui/model"
)

func TestApplyForm_UpdatesConfig(t *testing.T) {
	c := &Container{Config: config.DefaultConfig()}
	fields := model.SettingsValues(c.Config)
	fields[model.FieldPages] = " 12 "
	fields[model.FieldFolder] = "Chemistry"
	fields[model.FieldDeletePNGs] = "yes"

	require.NoError(t, c.ApplyForm(fields))
	require.Equal(t, 12, c.Config.Pages)
	require.Equal(t, "Chemistry", c.Config.FolderName)
	require.True(t, c.Config.DeleteIntermediates)

	rc := c.RunConfig(pipeline.ModeComplete)
	require.Equal(t, 12, rc.Pages)
	require.Equal(t, filepath.Join(c.Config.OutputRoot, "Chemistry"), rc.Folder())
}

func TestApplyForm_InvalidLeavesConfig(t *testing.T) {
	c := &Container{Config: config.DefaultConfig()}
	before := *c.Config
	fields := model.SettingsValues(c.Config)
	fields[model.FieldX1] = "left"
	fields[model.FieldPages] = "20"

	err := c.ApplyForm(fields)
	require.ErrorIs(t, err, errs.ErrInvalidConfiguration)
	require.Contains(t, err.Error(), "x1")
	require.Equal(t, before, *c.Config)
}

func TestSaveConfig_WithoutPathIsNoop(t *testing.T) {
	c := &Container{Config: config.DefaultConfig()}
	require.NoError(t, c.SaveConfig())
}

func TestDescribe(t *testing.T) {
	require.Equal(t, "unknown", Describe(42))
	require.Equal(t, "fake", Describe(named{}))
}

type named struct{}

func (named) Name() string { return "fake" }
