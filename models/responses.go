package models

// VaultItemRequest is the body of create and update requests.
type VaultItemRequest struct {
	// Payload is the opaque encrypted record.
	Payload EncryptedBlob `json:"encryptedData"`
}

// VaultItemResponse wraps a single item together with a human-readable
// message.
type VaultItemResponse struct {
	Message string     `json:"message,omitempty"`
	Data    *VaultItem `json:"data,omitempty"`
}

// VaultListResponse wraps the items returned by the list endpoint.
type VaultListResponse struct {
	Data []VaultItem `json:"data"`
}

// MessageResponse is the generic body for errors and payload-less
// acknowledgements.
type MessageResponse struct {
	Message string `json:"message"`
}

// MeResponse is returned by the session introspection endpoint.
type MeResponse struct {
	User Identity `json:"user"`
}

// SaltResponse carries the caller's key-derivation salt, hex encoded.
type SaltResponse struct {
	Salt string `json:"salt"`
}
