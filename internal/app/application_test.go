package app

import (
	"context"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"student-records/internal/config"
	"student-records/internal/controllers"
	"student-records/internal/gateway"
	"student-records/internal/models"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Database.DSN = ":memory:"
	cfg.Log.Level = "error"
	cfg.Log.File = filepath.Join(t.TempDir(), "logs", "app.log")
	return cfg
}

func TestBuild(t *testing.T) {
	a, err := build(test.NewTempApp(t), testConfig(t))
	require.NoError(t, err)
	defer a.Shutdown()

	state, action := a.Controller().State()
	assert.Equal(t, controllers.StateIdle, state)
	assert.Equal(t, controllers.ActionNone, action)
	assert.Equal(t, "No records found.", a.View().StatusBar().GetStatus())
	assert.Equal(t, 0, a.View().Table().Len())
	assert.FileExists(t, a.config.Log.File)
}

func TestBuildShowsExistingRecords(t *testing.T) {
	a, err := build(test.NewTempApp(t), testConfig(t))
	require.NoError(t, err)
	defer a.Shutdown()

	require.NoError(t, a.store.Add(context.Background(), models.StudentRecord{
		RollNo: 1, Name: "Asha", FathersName: "Ravi", Subject: "Maths", Grade: "A",
	}))

	a.Controller().ShowAll()
	assert.Equal(t, 1, a.View().Table().Len())
	assert.Equal(t, "Showing 1 records.", a.View().StatusBar().GetStatus())
}

func TestBuildFailsOnBadDatabase(t *testing.T) {
	cfg := testConfig(t)
	cfg.Database.Driver = "oracle"

	a, err := build(test.NewTempApp(t), cfg)
	assert.Error(t, err)
	assert.Nil(t, a)
	assert.Contains(t, err.Error(), "database connection failed")
}

func TestBuildFailsOnBadLogFormat(t *testing.T) {
	cfg := testConfig(t)
	cfg.Log.Format = "xml"

	_, err := build(test.NewTempApp(t), cfg)
	assert.Error(t, err)
}

func TestQuitReleasesGateway(t *testing.T) {
	a, err := build(test.NewTempApp(t), testConfig(t))
	require.NoError(t, err)

	a.lifecycle.Quit()
	a.lifecycle.Quit()

	_, err = a.store.FetchAll(context.Background())
	assert.ErrorIs(t, err, gateway.ErrClosed)
}
