package clientinterfaces

import (
	"asset-transfer-gateway/blockchains/types"
	"asset-transfer-gateway/core/configs"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// FirstFileInDir returns the path of the first entry in dir.
// The MSP keystore and signcerts directories hold a single file each.
func FirstFileInDir(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read directory %s", dir)
	}
	if len(entries) == 0 {
		return "", errors.Errorf("no files in directory: %s", dir)
	}
	return filepath.Join(dir, entries[0].Name()), nil
}

// LoadUser reads the enrollment certificate and private key of the
// organization's user. Nothing is retried; the first failure aborts.
func LoadUser(cfg *configs.OrgConfig) (*types.FabricUser, error) {
	certPath, err := FirstFileInDir(cfg.CertDirectoryPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to locate certificate")
	}
	cert, err := ioutil.ReadFile(filepath.Clean(certPath))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read certificate")
	}

	keyPath, err := FirstFileInDir(cfg.KeyDirectoryPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to locate private key")
	}
	key, err := ioutil.ReadFile(filepath.Clean(keyPath))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read private key")
	}

	zap.L().Debug("loaded user identity",
		zap.Int("org", cfg.Org),
		zap.String("mspID", cfg.MspID),
		zap.String("cert", certPath),
		zap.String("key", keyPath))

	return &types.FabricUser{
		Label: cfg.UserName,
		MspID: cfg.MspID,
		Cert:  cert,
		Key:   key,
	}, nil
}
