package bitcoin

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/regtest-walkthrough/internal/model"
)

// ScriptDecoder derives addresses from output scripts using params of one network.
type ScriptDecoder struct {
	params *chaincfg.Params
}

// NewScriptDecoder initializes a decoder for the provided network.
func NewScriptDecoder(network model.Network) (*ScriptDecoder, error) {
	params, err := ChainParams(network)
	if err != nil {
		return nil, err
	}
	return &ScriptDecoder{params: params}, nil
}

// Params returns the chain params the decoder works with.
func (d *ScriptDecoder) Params() *chaincfg.Params {
	return d.params
}

// Address returns the single destination encoded by a standard output script.
// Scripts without exactly one destination (bare multisig, pay-to-pubkey,
// OP_RETURN, non-standard) yield false. Witness programs of versions 1 to 16
// that btcutil has no address type for are encoded as bech32m.
func (d *ScriptDecoder) Address(pkScript []byte) (btcutil.Address, bool) {
	class, addrs, _, err := txscript.ExtractPkScriptAddrs(pkScript, d.params)
	if err != nil {
		return nil, false
	}
	switch class {
	case txscript.PubKeyHashTy,
		txscript.ScriptHashTy,
		txscript.WitnessV0PubKeyHashTy,
		txscript.WitnessV0ScriptHashTy,
		txscript.WitnessV1TaprootTy:
		if len(addrs) != 1 {
			return nil, false
		}
		return addrs[0], true
	case txscript.NonStandardTy:
		addr, err := d.futureWitnessAddress(pkScript)
		if err != nil {
			return nil, false
		}
		return addr, true
	default:
		return nil, false
	}
}

func (d *ScriptDecoder) futureWitnessAddress(pkScript []byte) (*witnessAddress, error) {
	if !txscript.IsWitnessProgram(pkScript) {
		return nil, errors.New("not a witness program")
	}
	version, program, err := txscript.ExtractWitnessProgramInfo(pkScript)
	if err != nil {
		return nil, err
	}
	// v0 programs of other lengths are invalid.
	if version == 0 {
		return nil, fmt.Errorf("invalid v0 witness program length %d", len(program))
	}
	return newWitnessAddress(d.params.Bech32HRPSegwit, byte(version), program)
}

// witnessAddress is a segwit destination btcutil cannot represent.
type witnessAddress struct {
	hrp     string
	program []byte
	encoded string
}

func newWitnessAddress(hrp string, version byte, program []byte) (*witnessAddress, error) {
	converted, err := bech32.ConvertBits(program, 8, 5, true)
	if err != nil {
		return nil, err
	}
	encoded, err := bech32.EncodeM(hrp, append([]byte{version}, converted...))
	if err != nil {
		return nil, fmt.Errorf("encode v%d witness address: %w", version, err)
	}
	return &witnessAddress{hrp: hrp, program: append([]byte(nil), program...), encoded: encoded}, nil
}

func (a *witnessAddress) EncodeAddress() string { return a.encoded }

func (a *witnessAddress) ScriptAddress() []byte { return a.program }

func (a *witnessAddress) IsForNet(params *chaincfg.Params) bool {
	return a.hrp == params.Bech32HRPSegwit
}

func (a *witnessAddress) String() string { return a.encoded }

// DecodeOutputs maps every output of tx to a domain output. Outputs without a
// standard destination keep an empty Address.
func (d *ScriptDecoder) DecodeOutputs(tx *wire.MsgTx) []model.TransactionOutput {
	outputs := make([]model.TransactionOutput, 0, len(tx.TxOut))
	for idx, out := range tx.TxOut {
		output := model.TransactionOutput{
			Index: uint32(idx),
			Value: btcutil.Amount(out.Value),
		}
		if addr, ok := d.Address(out.PkScript); ok {
			output.Address = addr.EncodeAddress()
		}
		outputs = append(outputs, output)
	}
	return outputs
}
