package currency

// ShortenAddress renders an address as its first 6 characters, an ellipsis,
// and its last 4 characters. It is a cosmetic helper: inputs too short to
// shorten (including the empty string) are returned unchanged.
func ShortenAddress(address string) string {
	if len(address) <= 10 {
		return address
	}

	return address[:6] + "..." + address[len(address)-4:]
}
