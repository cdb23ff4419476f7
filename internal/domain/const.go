package domain

const (
	// Royalty constants
	ROYALTY_DENOMINATOR   = 10000
	MAX_ROYALTY_BASIS_BPS = 10000

	// Collection constants
	DEFAULT_MAX_BATCH_SIZE = 100
	TOKEN_URI_SUFFIX       = ".json"

	// Blockchain constants
	ETHEREUM_ZERO_ADDRESS = "0x0000000000000000000000000000000000000000"
)
