package parsers

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleCorrectYaml = `name: "test-network"
orgs:
  - org: 1
    peerEndpoint: peer0.org1.example.com:7051
    discoveryAsLocalhost: false
    timeouts:
      evaluate: 2s
      commitStatus: 90s
  - org: 3
    channel: channel3
    chaincode: assets
    tlsCert: /tmp/org3/ca.crt`

func TestCanParseCorrectYaml(t *testing.T) {
	t.Run("test no error", func(t *testing.T) {
		_, err := parseNetworkYaml([]byte(exampleCorrectYaml))
		assert.NoError(t, err)
	})

	t.Run("test all struct fields", func(t *testing.T) {
		c, err := parseNetworkYaml([]byte(exampleCorrectYaml))
		require.NoError(t, err)

		assert.Equal(t, "test-network", c.Name)
		require.Len(t, c.Orgs, 2)

		org1 := c.Override(1)
		require.NotNil(t, org1)
		assert.Equal(t, "peer0.org1.example.com:7051", org1.PeerEndpoint)
		require.NotNil(t, org1.DiscoveryAsLocalhost)
		assert.False(t, *org1.DiscoveryAsLocalhost)
		assert.Equal(t, 2*time.Second, org1.Timeouts.Evaluate)
		assert.Equal(t, 90*time.Second, org1.Timeouts.CommitStatus)
		assert.Zero(t, org1.Timeouts.Endorse)

		org3 := c.Override(3)
		require.NotNil(t, org3)
		assert.Equal(t, "channel3", org3.ChannelName)
		assert.Equal(t, "assets", org3.ChaincodeName)
		assert.Equal(t, "/tmp/org3/ca.crt", org3.TLSCertPath)
		assert.Nil(t, org3.DiscoveryAsLocalhost)

		assert.Nil(t, c.Override(2))
	})
}

func TestRejectsBadOrgs(t *testing.T) {
	_, err := parseNetworkYaml([]byte("orgs:\n  - org: 0\n"))
	assert.Error(t, err)

	_, err = parseNetworkYaml([]byte("orgs:\n  - org: 2\n  - org: 2\n"))
	assert.Error(t, err)

	_, err = parseNetworkYaml([]byte("orgs: [:"))
	assert.Error(t, err)
}

func TestParseNetworkConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "network.yaml")
	require.NoError(t, os.WriteFile(path, []byte(exampleCorrectYaml), 0600))

	c, err := ParseNetworkConfig(path)
	require.NoError(t, err)
	assert.Len(t, c.Orgs, 2)

	_, err = ParseNetworkConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
