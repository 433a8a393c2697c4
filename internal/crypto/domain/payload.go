package domain

// Payload is the result of opening a stored blob.
//
// The Kind field keeps the two decode paths auditable: callers that care about
// plaintext files written by older versions (for example to re-save them encrypted)
// check Kind instead of sniffing the content themselves.
type Payload struct {
	Kind PayloadKind
	Data []byte
}

// IsLegacy reports whether the payload came from an unencrypted legacy file.
func (p Payload) IsLegacy() bool {
	return p.Kind == LegacyPlaintext
}
