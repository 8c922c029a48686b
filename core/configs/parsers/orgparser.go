package parsers

import (
	"asset-transfer-gateway/core/configs"
	"asset-transfer-gateway/core/configs/validators"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Configuration keys and the environment variables bound to them.
// ORG<N>_<variable> takes precedence over the bare variable.
const (
	keyChannel        = "channel"
	keyRelayChannel   = "relayChannel"
	keyChaincode      = "chaincode"
	keyMspID          = "mspID"
	keyUser           = "user"
	keyCryptoPath     = "cryptoPath"
	keyKeyDirectory   = "keyDirectory"
	keyCertDirectory  = "certDirectory"
	keyTLSCert        = "tlsCert"
	keyPeerEndpoint   = "peerEndpoint"
	keyPeerHostAlias  = "peerHostAlias"
	keyDiscoveryLocal = "discoveryAsLocalhost"
	keyCredStore      = "credentialStore"
	keyEvaluate       = "timeouts.evaluate"
	keyEndorse        = "timeouts.endorse"
	keySubmit         = "timeouts.submit"
	keyCommitStatus   = "timeouts.commitStatus"
)

var envBindings = map[string]string{
	keyChannel:        "CHANNEL_NAME",
	keyRelayChannel:   "RELAY_CHANNEL_NAME",
	keyChaincode:      "CHAINCODE_NAME",
	keyMspID:          "MSP_ID",
	keyUser:           "USER_NAME",
	keyCryptoPath:     "CRYPTO_PATH",
	keyKeyDirectory:   "KEY_DIRECTORY_PATH",
	keyCertDirectory:  "CERT_DIRECTORY_PATH",
	keyTLSCert:        "TLS_CERT_PATH",
	keyPeerEndpoint:   "PEER_ENDPOINT",
	keyPeerHostAlias:  "PEER_HOST_ALIAS",
	keyDiscoveryLocal: "DISCOVERY_AS_LOCALHOST",
	keyCredStore:      "CREDENTIAL_STORE_PATH",
	keyEvaluate:       "EVALUATE_TIMEOUT",
	keyEndorse:        "ENDORSE_TIMEOUT",
	keySubmit:         "SUBMIT_TIMEOUT",
	keyCommitStatus:   "COMMIT_STATUS_TIMEOUT",
}

// LoadOrgConfigs builds the configuration of every requested organization.
// network may be nil when no network file was given.
func LoadOrgConfigs(orgs []int, network *configs.NetworkConfig) ([]*configs.OrgConfig, error) {
	cfgs := make([]*configs.OrgConfig, 0, len(orgs))
	for _, org := range orgs {
		cfg, err := LoadOrgConfig(org, network)
		if err != nil {
			return nil, err
		}
		cfgs = append(cfgs, cfg)
	}
	return cfgs, nil
}

// LoadOrgConfig resolves the configuration of one organization.
// Precedence: ORG<N>_ variable, bare variable, network file, computed default.
func LoadOrgConfig(org int, network *configs.NetworkConfig) (*configs.OrgConfig, error) {
	if org <= 0 {
		return nil, errors.Errorf("org number %d must be positive", org)
	}

	v := viper.New()
	setDefaults(v, org)
	fromFile := applyOverride(v, network.Override(org))

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, err
		}
		if value, ok := os.LookupEnv(fmt.Sprintf("ORG%d_%s", org, env)); ok && value != "" {
			v.Set(key, value)
		}
	}

	// Paths below the crypto path follow it unless the file sets them.
	// Variables take precedence over defaults either way.
	cryptoPath := v.GetString(keyCryptoPath)
	user := v.GetString(keyUser)
	userMSP := filepath.Join(cryptoPath, "users", fmt.Sprintf("%s@org%d.example.com", user, org), "msp")
	derived := map[string]string{
		keyKeyDirectory:  filepath.Join(userMSP, "keystore"),
		keyCertDirectory: filepath.Join(userMSP, "signcerts"),
		keyTLSCert:       filepath.Join(cryptoPath, "peers", fmt.Sprintf("peer0.org%d.example.com", org), "tls", "ca.crt"),
	}
	for key, value := range derived {
		if !fromFile[key] {
			v.SetDefault(key, value)
		}
	}

	cfg := &configs.OrgConfig{
		Org:                  org,
		ChannelName:          v.GetString(keyChannel),
		RelayChannelName:     v.GetString(keyRelayChannel),
		ChaincodeName:        v.GetString(keyChaincode),
		MspID:                v.GetString(keyMspID),
		UserName:             user,
		CryptoPath:           cryptoPath,
		KeyDirectoryPath:     v.GetString(keyKeyDirectory),
		CertDirectoryPath:    v.GetString(keyCertDirectory),
		TLSCertPath:          v.GetString(keyTLSCert),
		PeerEndpoint:         v.GetString(keyPeerEndpoint),
		PeerHostAlias:        v.GetString(keyPeerHostAlias),
		DiscoveryAsLocalhost: v.GetBool(keyDiscoveryLocal),
		CredentialStorePath:  v.GetString(keyCredStore),
		Timeouts: configs.Timeouts{
			Evaluate:     v.GetDuration(keyEvaluate),
			Endorse:      v.GetDuration(keyEndorse),
			Submit:       v.GetDuration(keySubmit),
			CommitStatus: v.GetDuration(keyCommitStatus),
		},
	}

	if _, err := validators.ValidateOrgConfig(cfg); err != nil {
		return nil, errors.Wrapf(err, "invalid configuration for org %d", org)
	}

	zap.L().Debug("loaded org config",
		zap.Int("org", org),
		zap.String("channel", cfg.ChannelName),
		zap.String("chaincode", cfg.ChaincodeName),
		zap.String("mspID", cfg.MspID),
		zap.String("cryptoPath", cfg.CryptoPath),
		zap.String("keyDirectory", cfg.KeyDirectoryPath),
		zap.String("certDirectory", cfg.CertDirectoryPath),
		zap.String("tlsCert", cfg.TLSCertPath),
		zap.String("peerEndpoint", cfg.PeerEndpoint),
		zap.String("peerHostAlias", cfg.PeerHostAlias))

	return cfg, nil
}

// setDefaults registers the values derived from the org number.
func setDefaults(v *viper.Viper, org int) {
	v.SetDefault(keyChannel, fmt.Sprintf("org%d", org))
	v.SetDefault(keyRelayChannel, "mychannel")
	v.SetDefault(keyChaincode, "basic")
	v.SetDefault(keyMspID, fmt.Sprintf("Org%dMSP", org))
	v.SetDefault(keyUser, "User1")
	v.SetDefault(keyCryptoPath, defaultCryptoPath(org))
	v.SetDefault(keyPeerEndpoint, "localhost:"+strconv.Itoa(7051+(org-1)*2000))
	v.SetDefault(keyPeerHostAlias, fmt.Sprintf("peer0.org%d.example.com", org))
	v.SetDefault(keyDiscoveryLocal, true)
	v.SetDefault(keyCredStore, filepath.Join(os.TempDir(), "asset-transfer-gateway", fmt.Sprintf("org%d", org)))
	v.SetDefault(keyEvaluate, configs.DefaultEvaluateTimeout)
	v.SetDefault(keyEndorse, configs.DefaultEndorseTimeout)
	v.SetDefault(keySubmit, configs.DefaultSubmitTimeout)
	v.SetDefault(keyCommitStatus, configs.DefaultCommitStatusTimeout)
}

// applyOverride layers the network file entry on top of the defaults and
// returns the keys it set.
func applyOverride(v *viper.Viper, o *configs.OrgOverride) map[string]bool {
	set := make(map[string]bool)
	if o == nil {
		return set
	}

	strs := map[string]string{
		keyChannel:       o.ChannelName,
		keyRelayChannel:  o.RelayChannelName,
		keyChaincode:     o.ChaincodeName,
		keyMspID:         o.MspID,
		keyUser:          o.UserName,
		keyCryptoPath:    o.CryptoPath,
		keyKeyDirectory:  o.KeyDirectoryPath,
		keyCertDirectory: o.CertDirectoryPath,
		keyTLSCert:       o.TLSCertPath,
		keyPeerEndpoint:  o.PeerEndpoint,
		keyPeerHostAlias: o.PeerHostAlias,
	}
	for key, value := range strs {
		if value != "" {
			v.SetDefault(key, value)
			set[key] = true
		}
	}

	if o.DiscoveryAsLocalhost != nil {
		v.SetDefault(keyDiscoveryLocal, *o.DiscoveryAsLocalhost)
	}

	durations := map[string]time.Duration{
		keyEvaluate:     o.Timeouts.Evaluate,
		keyEndorse:      o.Timeouts.Endorse,
		keySubmit:       o.Timeouts.Submit,
		keyCommitStatus: o.Timeouts.CommitStatus,
	}
	for key, value := range durations {
		if value > 0 {
			v.SetDefault(key, value)
		}
	}

	return set
}

func defaultCryptoPath(org int) string {
	p := filepath.Join("..", "..", "test-network", "organizations", "peerOrganizations", fmt.Sprintf("org%d.example.com", org))
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
