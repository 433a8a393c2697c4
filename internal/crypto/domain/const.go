package domain

// Sizes of the key material and of the fields inside a sealed envelope.
const (
	// KeySize is the size in bytes of the symmetric key used for every seal/open.
	KeySize = 32

	// NonceSize is the size in bytes of the random nonce generated for each seal.
	NonceSize = 16

	// TagSize is the size in bytes of the HMAC-SHA256 integrity tag.
	TagSize = 32

	// BlockSize is the size in bytes of one keystream block (one SHA-256 digest).
	BlockSize = 32
)

// EnvelopeMagic tags the first line of every sealed file. Content that does not start
// with the magic followed by a newline is legacy plaintext.
const EnvelopeMagic = "MYDEMANDS_ENC_V1"

// PayloadKind tells how a decoded file was stored on disk.
type PayloadKind int

const (
	// Encrypted marks content recovered from an authenticated envelope.
	Encrypted PayloadKind = iota

	// LegacyPlaintext marks content written by older versions without any envelope.
	// It is passed through unchanged and never authenticated.
	LegacyPlaintext
)

// String returns the lower-case name of the kind, used in logs.
func (k PayloadKind) String() string {
	switch k {
	case Encrypted:
		return "encrypted"
	case LegacyPlaintext:
		return "legacy_plaintext"
	default:
		return "unknown"
	}
}
