package models

// EncryptedBlob is the base64 text produced by the record cipher. It is the
// only form of a VaultRecord allowed to leave the client or touch storage.
type EncryptedBlob string

// String implements [fmt.Stringer].
func (b EncryptedBlob) String() string {
	return string(b)
}

// IsEmpty reports whether the blob carries no payload at all.
func (b EncryptedBlob) IsEmpty() bool {
	return len(b) == 0
}
