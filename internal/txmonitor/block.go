package txmonitor

import "github.com/blocksentry/blocksentry/internal/pkg/types"

// Transaction represents a blockchain transaction as listed inside a block,
// sourced verbatim from the chain client and immutable once fetched.
type Transaction struct {
	Hash     string    // Unique transaction hash identifier
	From     string    // Sender address
	To       string    // Recipient address
	Value    types.Hex // Transferred amount in base units
	Gas      types.Hex // Gas limit supplied by the sender
	GasPrice types.Hex // Price per gas unit in base units
}

// Block represents a blockchain block with its number, hash,
// and the transactions included in the block, in listed order.
type Block struct {
	Number       types.Hex     // Block number represented as a hex quantity
	Hash         string        // Unique block hash
	Transactions []Transaction // Transactions contained in the block
}

// Receipt holds the post-execution outcome of a transaction. It is fetched
// per transaction and may be absent when the lookup fails; downstream logic
// treats a missing receipt as an unknown (zero) gas fee rather than an error.
type Receipt struct {
	Status  bool      // true if the transaction executed successfully
	GasUsed types.Hex // Gas actually consumed, in gas units
}
