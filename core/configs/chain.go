package configs

// NetworkConfig contains the optional per-organization overrides read from
// the network configuration file.
type NetworkConfig struct {
	Name string        `yaml:"name"` // Name of the network (used in log output only)
	Orgs []OrgOverride `yaml:"orgs"` // Organization overrides, keyed by org number
}

// OrgOverride holds the values of a single organization in the network file.
// Empty fields keep their computed defaults.
type OrgOverride struct {
	Org                  int      `yaml:"org"`
	ChannelName          string   `yaml:"channel,omitempty"`
	RelayChannelName     string   `yaml:"relayChannel,omitempty"`
	ChaincodeName        string   `yaml:"chaincode,omitempty"`
	MspID                string   `yaml:"mspID,omitempty"`
	UserName             string   `yaml:"user,omitempty"`
	CryptoPath           string   `yaml:"cryptoPath,omitempty"`
	KeyDirectoryPath     string   `yaml:"keyDirectory,omitempty"`
	CertDirectoryPath    string   `yaml:"certDirectory,omitempty"`
	TLSCertPath          string   `yaml:"tlsCert,omitempty"`
	PeerEndpoint         string   `yaml:"peerEndpoint,omitempty"`
	PeerHostAlias        string   `yaml:"peerHostAlias,omitempty"`
	DiscoveryAsLocalhost *bool    `yaml:"discoveryAsLocalhost,omitempty"`
	Timeouts             Timeouts `yaml:"timeouts,omitempty"`
}

// Override returns the entry for the given organization, or nil when the
// file does not mention it.
func (n *NetworkConfig) Override(org int) *OrgOverride {
	if n == nil {
		return nil
	}
	for i := range n.Orgs {
		if n.Orgs[i].Org == org {
			return &n.Orgs[i]
		}
	}
	return nil
}
