package configs

import (
	"fmt"
	"path/filepath"
	"time"
)

// Default per-operation timeouts applied to every gateway request.
const (
	DefaultEvaluateTimeout     = 5 * time.Second
	DefaultEndorseTimeout      = 15 * time.Second
	DefaultSubmitTimeout       = 5 * time.Second
	DefaultCommitStatusTimeout = 1 * time.Minute
)

// Timeouts bounds the individual gateway calls.
type Timeouts struct {
	Evaluate     time.Duration `yaml:"evaluate,omitempty"`     // read-only queries
	Endorse      time.Duration `yaml:"endorse,omitempty"`      // proposal endorsement
	Submit       time.Duration `yaml:"submit,omitempty"`       // ordering service submission
	CommitStatus time.Duration `yaml:"commitStatus,omitempty"` // waiting for the commit event
}

// OrgConfig is everything needed to run the client as one organization.
// One instance exists per organization; nothing is shared between them.
type OrgConfig struct {
	Org                  int
	ChannelName          string // channel the demo runs on
	RelayChannelName     string // channel events are mirrored to
	ChaincodeName        string
	MspID                string
	UserName             string
	CryptoPath           string // peerOrganizations/orgN.example.com
	KeyDirectoryPath     string
	CertDirectoryPath    string
	TLSCertPath          string
	PeerEndpoint         string // host:port of the gateway peer
	PeerHostAlias        string // TLS server name override
	DiscoveryAsLocalhost bool
	CredentialStorePath  string // keystore used by the SDK's crypto suite
	Timeouts             Timeouts
}

// PeerURL is the grpcs URL of the organization's peer.
func (c *OrgConfig) PeerURL() string {
	return "grpcs://" + c.PeerEndpoint
}

// OrgName is the organization name used in the connection profile.
func (c *OrgConfig) OrgName() string {
	return fmt.Sprintf("Org%d", c.Org)
}

// UserMSPPath is the MSP directory of the configured user.
func (c *OrgConfig) UserMSPPath() string {
	return filepath.Join(c.CryptoPath, "users", fmt.Sprintf("%s@org%d.example.com", c.UserName, c.Org), "msp")
}
