package clientinterfaces

import (
	"asset-transfer-gateway/core/configs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func profileConfig() *configs.OrgConfig {
	return &configs.OrgConfig{
		Org:                  2,
		ChannelName:          "org2",
		RelayChannelName:     "mychannel",
		ChaincodeName:        "basic",
		MspID:                "Org2MSP",
		UserName:             "User1",
		CryptoPath:           "/crypto/peerOrganizations/org2.example.com",
		TLSCertPath:          "/crypto/peerOrganizations/org2.example.com/peers/peer0.org2.example.com/tls/ca.crt",
		PeerEndpoint:         "localhost:9051",
		PeerHostAlias:        "peer0.org2.example.com",
		DiscoveryAsLocalhost: true,
		CredentialStorePath:  "/tmp/store/org2",
		Timeouts: configs.Timeouts{
			Evaluate:     configs.DefaultEvaluateTimeout,
			Endorse:      configs.DefaultEndorseTimeout,
			Submit:       configs.DefaultSubmitTimeout,
			CommitStatus: configs.DefaultCommitStatusTimeout,
		},
	}
}

func TestConnectionProfile(t *testing.T) {
	raw, err := buildConnectionProfile(profileConfig())
	require.NoError(t, err)

	var profile map[string]interface{}
	require.NoError(t, yaml.Unmarshal(raw, &profile))

	client := profile["client"].(map[string]interface{})
	assert.Equal(t, "Org2", client["organization"])
	assert.Equal(t, "15s", client["peer"].(map[string]interface{})["timeout"].(map[string]interface{})["response"])
	assert.Equal(t, "5s", client["orderer"].(map[string]interface{})["timeout"].(map[string]interface{})["response"])
	global := client["global"].(map[string]interface{})["timeout"].(map[string]interface{})
	assert.Equal(t, "5s", global["query"])
	assert.Equal(t, "1m0s", global["execute"])

	peers := profile["peers"].(map[string]interface{})
	peer := peers["peer0.org2.example.com"].(map[string]interface{})
	assert.Equal(t, "grpcs://localhost:9051", peer["url"])
	assert.Equal(t, "peer0.org2.example.com", peer["grpcOptions"].(map[string]interface{})["ssl-target-name-override"])
	assert.Equal(t, profileConfig().TLSCertPath, peer["tlsCACerts"].(map[string]interface{})["path"])

	channels := profile["channels"].(map[string]interface{})
	assert.Contains(t, channels, "org2")
	assert.Contains(t, channels, "mychannel")

	org := profile["organizations"].(map[string]interface{})["Org2"].(map[string]interface{})
	assert.Equal(t, "Org2MSP", org["mspid"])
	assert.Equal(t, "users/{username}@org2.example.com/msp", org["cryptoPath"])

	assert.Contains(t, profile, "entityMatchers")
}

func TestConnectionProfileWithoutLocalhostDiscovery(t *testing.T) {
	cfg := profileConfig()
	cfg.DiscoveryAsLocalhost = false
	cfg.RelayChannelName = ""

	raw, err := buildConnectionProfile(cfg)
	require.NoError(t, err)

	var profile map[string]interface{}
	require.NoError(t, yaml.Unmarshal(raw, &profile))
	assert.NotContains(t, profile, "entityMatchers")
	assert.Len(t, profile["channels"], 1)
}
