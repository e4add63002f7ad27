package plugin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/clapgo/pkg/clap"
	fwplugin "github.com/justyntemme/clapgo/pkg/framework/plugin"
)

type testPlugin struct {
	t *testing.T
}

func (p testPlugin) GetInfo() fwplugin.Info { return testInfo }

func (p testPlugin) CreateProcessor() Processor { return newTestCore(p.t, nil) }

func TestNewRequiresRegistration(t *testing.T) {
	Register(nil)
	_, err := New(clap.HostInfo{})
	assert.ErrorIs(t, err, ErrNoPlugin)
}

func TestInstanceTable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogLevel = "off"
	SetConfig(cfg)
	Register(testPlugin{t})
	t.Cleanup(func() {
		Register(nil)
		SetConfig(nil)
	})

	require.NotNil(t, Registered())

	a, err := New(clap.HostInfo{Name: "host"})
	require.NoError(t, err)
	b, err := New(clap.HostInfo{Name: "host"})
	require.NoError(t, err)

	assert.NotZero(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Same(t, a, Lookup(a.ID()))
	assert.Nil(t, Lookup(0))

	require.NoError(t, a.Init())
	require.NoError(t, a.Activate(48000, 1, 64))
	Release(a.ID())
	assert.Nil(t, Lookup(a.ID()))
	assert.False(t, a.IsActive())

	Release(b.ID())
	Release(b.ID())
	assert.Nil(t, Lookup(b.ID()))
}

func TestNewReadsConfigFromEnvironment(t *testing.T) {
	SetConfig(nil)
	Register(testPlugin{t})
	t.Cleanup(func() { Register(nil) })

	path := writeFile(t, t.TempDir(), "env.toml", "log_level = \"off\"\nchannel_io = \"1-1\"\n")
	t.Setenv(EnvConfigPath, path)

	b, err := New(clap.HostInfo{})
	require.NoError(t, err)
	t.Cleanup(func() { Release(b.ID()) })
	assert.Equal(t, uint32(1), b.AudioPortsConfigCount())
}
