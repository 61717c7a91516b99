// Package rpcclient wraps the btcd RPC client with metrics and throttling.
package rpcclient

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/regtest-walkthrough/internal/bitcoin"
	"github.com/goodnatureofminers/regtest-walkthrough/internal/model"
	"go.uber.org/ratelimit"
)

// ObservedClient instruments one node session. A session is either unscoped
// or bound to a wallet through its endpoint path.
type ObservedClient struct {
	client     RPCClient
	rpcMetrics RPCMetrics
	limiter    ratelimit.Limiter
}

// NewObservedClient wraps client. rps <= 0 disables throttling.
func NewObservedClient(client RPCClient, rpcMetrics RPCMetrics, rps int) *ObservedClient {
	limiter := ratelimit.NewUnlimited()
	if rps > 0 {
		limiter = ratelimit.New(rps)
	}
	return &ObservedClient{
		client:     client,
		rpcMetrics: rpcMetrics,
		limiter:    limiter,
	}
}

func (r *ObservedClient) observe(operation string, started time.Time, err error) {
	r.rpcMetrics.Observe(operation, err, started)
}

// CreateWallet creates a named wallet with node defaults.
func (r *ObservedClient) CreateWallet(name string) (res *btcjson.CreateWalletResult, err error) {
	r.limiter.Take()
	started := time.Now()
	defer func() {
		r.observe("create_wallet", started, err)
	}()
	return r.client.CreateWallet(name)
}

// LoadWallet loads a named wallet.
func (r *ObservedClient) LoadWallet(name string) (res *btcjson.LoadWalletResult, err error) {
	r.limiter.Take()
	started := time.Now()
	defer func() {
		r.observe("load_wallet", started, err)
	}()
	return r.client.LoadWallet(name)
}

// GetNewAddress generates a fresh address tagged with label.
func (r *ObservedClient) GetNewAddress(label string) (addr btcutil.Address, err error) {
	r.limiter.Take()
	started := time.Now()
	defer func() {
		r.observe("get_new_address", started, err)
	}()
	return r.client.GetNewAddress(label)
}

// GenerateToAddress mines blocks paying the coinbase to address.
func (r *ObservedClient) GenerateToAddress(numBlocks int64, address btcutil.Address) (hashes []*chainhash.Hash, err error) {
	r.limiter.Take()
	started := time.Now()
	defer func() {
		r.observe("generate_to_address", started, err)
	}()
	return r.client.GenerateToAddress(numBlocks, address, nil)
}

// GetBalance returns the trusted spendable balance of the session wallet.
func (r *ObservedClient) GetBalance() (amount btcutil.Amount, err error) {
	r.limiter.Take()
	started := time.Now()
	defer func() {
		r.observe("get_balance", started, err)
	}()
	return r.client.GetBalance("*")
}

// SendToAddress pays amount to address with the wallet's default fee policy.
func (r *ObservedClient) SendToAddress(address btcutil.Address, amount btcutil.Amount) (hash *chainhash.Hash, err error) {
	r.limiter.Take()
	started := time.Now()
	defer func() {
		r.observe("send_to_address", started, err)
	}()
	return r.client.SendToAddress(address, amount)
}

// GetMempoolEntry returns the raw getmempoolentry result for txid.
func (r *ObservedClient) GetMempoolEntry(txid string) (entry json.RawMessage, err error) {
	r.limiter.Take()
	started := time.Now()
	defer func() {
		r.observe("get_mempool_entry", started, err)
	}()

	param, err := json.Marshal(txid)
	if err != nil {
		return nil, fmt.Errorf("marshal txid: %w", err)
	}
	return r.client.RawRequest("getmempoolentry", []json.RawMessage{param})
}

// getTransactionResult mirrors the gettransaction fields the walkthrough reads.
// btcjson.GetTransactionResult does not carry blockheight.
type getTransactionResult struct {
	TxID          string   `json:"txid"`
	Hex           string   `json:"hex"`
	Fee           *float64 `json:"fee"`
	Confirmations int64    `json:"confirmations"`
	BlockHash     string   `json:"blockhash"`
	BlockHeight   *int64   `json:"blockheight"`
}

// GetTransaction looks up a wallet transaction, including watch-only outputs.
func (r *ObservedClient) GetTransaction(txHash *chainhash.Hash) (tx *model.WalletTransaction, err error) {
	r.limiter.Take()
	started := time.Now()
	defer func() {
		r.observe("get_transaction", started, err)
	}()

	txid, err := json.Marshal(txHash.String())
	if err != nil {
		return nil, fmt.Errorf("marshal txid: %w", err)
	}
	watchOnly, err := json.Marshal(true)
	if err != nil {
		return nil, fmt.Errorf("marshal include_watchonly: %w", err)
	}

	raw, err := r.client.RawRequest("gettransaction", []json.RawMessage{txid, watchOnly})
	if err != nil {
		return nil, err
	}
	return decodeWalletTransaction(raw)
}

func decodeWalletTransaction(raw json.RawMessage) (*model.WalletTransaction, error) {
	var res getTransactionResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, fmt.Errorf("decode gettransaction result: %w", err)
	}

	var fee btcutil.Amount
	if res.Fee != nil {
		amt, err := bitcoin.AmountFromBTC(*res.Fee)
		if err != nil {
			return nil, fmt.Errorf("tx %s fee: %w", res.TxID, err)
		}
		fee = amt
	}

	return &model.WalletTransaction{
		TxID:          res.TxID,
		Hex:           res.Hex,
		Fee:           fee,
		Confirmations: res.Confirmations,
		BlockHash:     res.BlockHash,
		BlockHeight:   res.BlockHeight,
	}, nil
}
