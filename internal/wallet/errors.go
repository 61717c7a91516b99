package wallet

import (
	"errors"

	"github.com/btcsuite/btcd/btcjson"
)

// Operation names a wallet management call whose errors are classified.
type Operation string

var (
	OperationCreate Operation = "create_wallet"
	OperationLoad   Operation = "load_wallet"
)

// Disposition tells the caller whether an error may be ignored.
type Disposition int

const (
	Fatal Disposition = iota
	Ignorable
)

func (d Disposition) String() string {
	switch d {
	case Ignorable:
		return "ignorable"
	default:
		return "fatal"
	}
}

// ErrRPCWalletAlreadyLoaded is bitcoind's RPC_WALLET_ALREADY_LOADED; btcjson has no constant for it.
const ErrRPCWalletAlreadyLoaded btcjson.RPCErrorCode = -35

// benignCodes lists node error codes that leave the wallet in the desired state.
var benignCodes = map[Operation]map[btcjson.RPCErrorCode]struct{}{
	// -4: wallet database already exists.
	OperationCreate: {btcjson.ErrRPCWallet: {}},
	OperationLoad:   {ErrRPCWalletAlreadyLoaded: {}},
}

// Classify maps an error returned by op to its disposition. Errors that are not
// node RPC errors are always fatal.
func Classify(op Operation, err error) Disposition {
	if err == nil {
		return Ignorable
	}
	var rpcErr *btcjson.RPCError
	if !errors.As(err, &rpcErr) {
		return Fatal
	}
	if _, ok := benignCodes[op][rpcErr.Code]; ok {
		return Ignorable
	}
	return Fatal
}
