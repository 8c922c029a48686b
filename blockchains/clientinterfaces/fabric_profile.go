package clientinterfaces

import (
	"asset-transfer-gateway/core/configs"
	"fmt"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// peerConnectionTimeout bounds dialing the gateway peer and the orderers.
const peerConnectionTimeout = 10 * time.Second

// connectionProfile is the subset of the fabric-sdk-go network
// configuration needed to reach a single gateway peer.
type connectionProfile struct {
	Version        string                         `yaml:"version"`
	Client         profileClient                  `yaml:"client"`
	Channels       map[string]profileChannel      `yaml:"channels"`
	Organizations  map[string]profileOrganization `yaml:"organizations"`
	Peers          map[string]profilePeer         `yaml:"peers"`
	EntityMatchers *profileEntityMatchers         `yaml:"entityMatchers,omitempty"`
}

type profileClient struct {
	Organization    string                 `yaml:"organization"`
	Logging         map[string]string      `yaml:"logging"`
	CryptoConfig    profilePath            `yaml:"cryptoconfig"`
	CredentialStore profileCredentialStore `yaml:"credentialStore"`
	BCCSP           profileBCCSP           `yaml:"BCCSP"`
	TLSCerts        map[string]bool        `yaml:"tlsCerts"`
	Peer            profileTimeouts        `yaml:"peer"`
	Orderer         profileTimeouts        `yaml:"orderer"`
	Global          profileTimeouts        `yaml:"global"`
}

type profilePath struct {
	Path string `yaml:"path"`
}

type profileCredentialStore struct {
	Path        string      `yaml:"path"`
	CryptoStore profilePath `yaml:"cryptoStore"`
}

type profileBCCSP struct {
	Security profileSecurity `yaml:"security"`
}

type profileSecurity struct {
	Enabled       bool              `yaml:"enabled"`
	Default       map[string]string `yaml:"default"`
	HashAlgorithm string            `yaml:"hashAlgorithm"`
	SoftVerify    bool              `yaml:"softVerify"`
	Level         int               `yaml:"level"`
}

type profileTimeouts struct {
	Timeout map[string]string `yaml:"timeout"`
}

type profileChannel struct {
	Peers map[string]profileChannelPeer `yaml:"peers"`
}

type profileChannelPeer struct {
	EndorsingPeer  bool `yaml:"endorsingPeer"`
	ChaincodeQuery bool `yaml:"chaincodeQuery"`
	LedgerQuery    bool `yaml:"ledgerQuery"`
	EventSource    bool `yaml:"eventSource"`
}

type profileOrganization struct {
	MspID      string   `yaml:"mspid"`
	CryptoPath string   `yaml:"cryptoPath"`
	Peers      []string `yaml:"peers"`
}

type profilePeer struct {
	URL         string                 `yaml:"url"`
	GRPCOptions map[string]interface{} `yaml:"grpcOptions"`
	TLSCACerts  profilePath            `yaml:"tlsCACerts"`
}

type profileEntityMatchers struct {
	Peer    []profileMatcher `yaml:"peer"`
	Orderer []profileMatcher `yaml:"orderer"`
}

type profileMatcher struct {
	Pattern                             string `yaml:"pattern"`
	URLSubstitutionExp                  string `yaml:"urlSubstitutionExp"`
	SSLTargetOverrideURLSubstitutionExp string `yaml:"sslTargetOverrideUrlSubstitutionExp"`
	MappedHost                          string `yaml:"mappedHost"`
}

// localhostMatcher rewrites discovered host:port endpoints to localhost:port
// and keeps the discovered host as the TLS server name.
var localhostMatcher = profileMatcher{
	Pattern:                             `([^:]+):(\d+)`,
	URLSubstitutionExp:                  "localhost:${2}",
	SSLTargetOverrideURLSubstitutionExp: "${1}",
	MappedHost:                          "${1}",
}

// buildConnectionProfile renders the network configuration of one
// organization: its gateway peer (TLS root certificate plus host name
// override), the demo and relay channels, and the per-operation timeouts.
func buildConnectionProfile(cfg *configs.OrgConfig) ([]byte, error) {
	peerName := cfg.PeerHostAlias
	channelPeer := profileChannelPeer{
		EndorsingPeer:  true,
		ChaincodeQuery: true,
		LedgerQuery:    true,
		EventSource:    true,
	}

	channels := map[string]profileChannel{
		cfg.ChannelName: {Peers: map[string]profileChannelPeer{peerName: channelPeer}},
	}
	if cfg.RelayChannelName != "" {
		channels[cfg.RelayChannelName] = profileChannel{Peers: map[string]profileChannelPeer{peerName: channelPeer}}
	}

	profile := connectionProfile{
		Version: "1.0.0",
		Client: profileClient{
			Organization: cfg.OrgName(),
			Logging:      map[string]string{"level": "info"},
			CryptoConfig: profilePath{Path: cfg.CryptoPath},
			CredentialStore: profileCredentialStore{
				Path:        filepath.Join(cfg.CredentialStorePath, "state-store"),
				CryptoStore: profilePath{Path: filepath.Join(cfg.CredentialStorePath, "msp")},
			},
			BCCSP: profileBCCSP{Security: profileSecurity{
				Enabled:       true,
				Default:       map[string]string{"provider": "SW"},
				HashAlgorithm: "SHA2",
				SoftVerify:    true,
				Level:         256,
			}},
			TLSCerts: map[string]bool{"systemCertPool": false},
			Peer: profileTimeouts{Timeout: map[string]string{
				"connection": peerConnectionTimeout.String(),
				"response":   cfg.Timeouts.Endorse.String(),
			}},
			Orderer: profileTimeouts{Timeout: map[string]string{
				"connection": peerConnectionTimeout.String(),
				"response":   cfg.Timeouts.Submit.String(),
			}},
			Global: profileTimeouts{Timeout: map[string]string{
				"query":   cfg.Timeouts.Evaluate.String(),
				"execute": cfg.Timeouts.CommitStatus.String(),
			}},
		},
		Channels: channels,
		Organizations: map[string]profileOrganization{
			cfg.OrgName(): {
				MspID:      cfg.MspID,
				CryptoPath: filepath.Join("users", fmt.Sprintf("{username}@org%d.example.com", cfg.Org), "msp"),
				Peers:      []string{peerName},
			},
		},
		Peers: map[string]profilePeer{
			peerName: {
				URL: cfg.PeerURL(),
				GRPCOptions: map[string]interface{}{
					"ssl-target-name-override": cfg.PeerHostAlias,
					"hostnameOverride":         cfg.PeerHostAlias,
					"fail-fast":                false,
					"allow-insecure":           false,
				},
				TLSCACerts: profilePath{Path: cfg.TLSCertPath},
			},
		},
	}

	if cfg.DiscoveryAsLocalhost {
		profile.EntityMatchers = &profileEntityMatchers{
			Peer:    []profileMatcher{localhostMatcher},
			Orderer: []profileMatcher{localhostMatcher},
		}
	}

	return yaml.Marshal(&profile)
}
