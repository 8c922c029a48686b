package validators

import (
	"asset-transfer-gateway/core/configs"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Validates all fields of the organization configuration
// Determines the validity and returns a boolean whether it is
// valid or invalid.
func ValidateOrgConfig(c *configs.OrgConfig) (bool, error) {
	if c.Org <= 0 {
		return false, errors.Errorf("org number %d must be positive", c.Org)
	}

	if len(c.ChannelName) == 0 {
		return false, errors.New("missing channel name")
	}

	if len(c.ChaincodeName) == 0 {
		return false, errors.New("missing chaincode name")
	}

	if len(c.MspID) == 0 {
		return false, errors.New("missing MSP id")
	}

	// The endpoint must be host:port, the scheme is added by the connector.
	if strings.Contains(c.PeerEndpoint, "://") || !strings.Contains(c.PeerEndpoint, ":") {
		return false, errors.Errorf("peer endpoint %q must be host:port", c.PeerEndpoint)
	}

	// Relaying into the channel we listen on re-emits every relayed asset.
	if c.RelayChannelName == c.ChannelName {
		zap.L().Warn("relay channel is the same as the listening channel",
			zap.Int("org", c.Org),
			zap.String("channel", c.ChannelName))
	}

	t := c.Timeouts
	if t.Evaluate <= 0 || t.Endorse <= 0 || t.Submit <= 0 || t.CommitStatus <= 0 {
		return false, errors.Errorf("timeouts must be positive, got %+v", t)
	}

	return true, nil
}
