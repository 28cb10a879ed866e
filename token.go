package dispatcher

import "strconv"

// defaultTokenPrefix is prepended to the monotonic counter when minting
// tokens. Override per dispatcher with WithTokenPrefix.
const defaultTokenPrefix = "ID_"

// Token identifies a registered callback. Tokens are opaque to callers:
// their only use is referencing a registration in Unregister and WaitFor.
type Token string

// newToken mints the token for the id-th registration. Uniqueness within
// one dispatcher's lifetime follows from the counter never being reset
// or reused, even after Unregister.
func newToken(prefix string, id uint64) Token {
	return Token(prefix + strconv.FormatUint(id, 10))
}
