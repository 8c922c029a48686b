package types

import (
	"fmt"

	"github.com/hyperledger/fabric-protos-go/peer"
)

// Asset is the ledger-resident record managed by the asset-transfer chaincode.
// The JSON keys match the chaincode's world state encoding.
type Asset struct {
	ID             string `json:"ID"`
	Color          string `json:"Color"`
	Size           int    `json:"Size"`
	Owner          string `json:"Owner"`
	AppraisedValue int    `json:"AppraisedValue"`
}

// FabricUser is the identity of the organization user we connect as.
// Cert and Key hold PEM encoded material read from the user's MSP directory.
type FabricUser struct {
	Label string // user name, e.g. User1
	MspID string // membership service provider the certificate belongs to
	Cert  []byte // enrollment certificate (PEM)
	Key   []byte // private key used to build the signer (PEM)
}

// CommitStatus is the outcome of a submitted transaction once the
// network has validated (or rejected) it.
type CommitStatus struct {
	TransactionID string
	Code          peer.TxValidationCode
	Successful    bool
	BlockNumber   uint64 // zero when the connector does not report it
}

func (s *CommitStatus) String() string {
	return fmt.Sprintf("%s: %s (%d)", s.TransactionID, s.Code.String(), int32(s.Code))
}

// ChaincodeEvent is an event emitted by a chaincode in a committed transaction.
type ChaincodeEvent struct {
	TransactionID string
	ChaincodeID   string
	EventName     string
	Payload       []byte
	BlockNumber   uint64
}
