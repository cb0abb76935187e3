package configbinder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tigerroll/pipelines/pkg/web/support/util/configbinder"
)

type serverSection struct {
	Address string `yaml:"address"`
	Port    int    `yaml:"port"`
}

type rootSection struct {
	Server  serverSection `yaml:"server"`
	Enabled bool          `yaml:"enabled"`
}

func TestBindProperties_WeaklyTypedAndPreservesDefaults(t *testing.T) {
	target := rootSection{Server: serverSection{Address: "127.0.0.1", Port: 8080}}

	err := configbinder.BindProperties(map[string]interface{}{
		"server":  map[string]interface{}{"port": "9090"},
		"enabled": "true",
	}, &target)

	require.NoError(t, err)
	assert.Equal(t, 9090, target.Server.Port)
	assert.Equal(t, "127.0.0.1", target.Server.Address, "unspecified fields keep their value")
	assert.True(t, target.Enabled)
}

func TestBindProperties_UnknownKey(t *testing.T) {
	var target rootSection
	err := configbinder.BindProperties(map[string]interface{}{"sever": map[string]interface{}{"port": "1"}}, &target)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rootSection")
}

func TestBindProperties_BadValue(t *testing.T) {
	var target rootSection
	err := configbinder.BindProperties(map[string]interface{}{"server": map[string]interface{}{"port": "eighty"}}, &target)
	assert.Error(t, err)
}

func TestBindProperties_Empty(t *testing.T) {
	target := rootSection{Enabled: true}
	require.NoError(t, configbinder.BindProperties(nil, &target))
	assert.True(t, target.Enabled)
}

func TestExpandDottedKeys(t *testing.T) {
	nested, err := configbinder.ExpandDottedKeys(map[string]string{
		"Server.Port":    "9090",
		"server.address": "0.0.0.0",
		"enabled":        "false",
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{
		"server":  map[string]interface{}{"port": "9090", "address": "0.0.0.0"},
		"enabled": "false",
	}, nested)
}

func TestExpandDottedKeys_Conflicts(t *testing.T) {
	_, err := configbinder.ExpandDottedKeys(map[string]string{"server": "x", "server.port": "1"})
	assert.Error(t, err)

	_, err = configbinder.ExpandDottedKeys(map[string]string{"server..port": "1"})
	assert.Error(t, err)
}
