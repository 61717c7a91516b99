package bitcoin

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/wire"
)

// DecodeTransaction deserializes a hex-encoded transaction in wire format.
func DecodeTransaction(rawHex string) (*wire.MsgTx, error) {
	raw, err := hex.DecodeString(rawHex)
	if err != nil {
		return nil, fmt.Errorf("decode tx hex: %w", err)
	}

	reader := bytes.NewReader(raw)
	tx := wire.NewMsgTx(wire.TxVersion)
	if err := tx.Deserialize(reader); err != nil {
		return nil, fmt.Errorf("deserialize tx: %w", err)
	}
	if reader.Len() != 0 {
		return nil, fmt.Errorf("deserialize tx: %d trailing bytes", reader.Len())
	}
	return tx, nil
}

// SpentOutput returns the output of prev referenced by index.
func SpentOutput(prev *wire.MsgTx, index uint32) (*wire.TxOut, error) {
	if int64(index) >= int64(len(prev.TxOut)) {
		return nil, fmt.Errorf("tx %s has %d outputs, index %d out of range", prev.TxHash(), len(prev.TxOut), index)
	}
	return prev.TxOut[index], nil
}
