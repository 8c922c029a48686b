// Package parsers builds the per-organization configuration from the
// optional network file, the environment and the computed defaults.
package parsers

import (
	"asset-transfer-gateway/core/configs"
	"io/ioutil"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Parse the network configuration file.
// This function both (a) reads the file from disk, and (b) calls the YAML
// to be parsed.
func ParseNetworkConfig(filePath string) (*configs.NetworkConfig, error) {

	// Get the bytes of the file
	configFileBytes, err := ioutil.ReadFile(filePath)

	if err != nil {
		return nil, errors.Wrapf(err, "failed to read network config %s", filePath)
	}

	return parseNetworkYaml(configFileBytes)
}

// Parse the network configuration in the YAML files.
func parseNetworkYaml(fileContents []byte) (*configs.NetworkConfig, error) {
	var networkConfig configs.NetworkConfig
	err := yaml.Unmarshal(fileContents, &networkConfig)

	if err != nil {
		return nil, errors.Wrap(err, "failed to parse network config")
	}

	seen := make(map[int]bool, len(networkConfig.Orgs))
	for _, o := range networkConfig.Orgs {
		if o.Org <= 0 {
			return nil, errors.Errorf("invalid org number %d in network config", o.Org)
		}
		if seen[o.Org] {
			return nil, errors.Errorf("org %d listed twice in network config", o.Org)
		}
		seen[o.Org] = true
	}

	return &networkConfig, nil
}
