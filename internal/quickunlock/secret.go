package quickunlock

// CachedUnlockSecret is the wrapped credential material that re-opens a
// database without its master password: the password itself, a key file, or
// both. KeyFileData is base64 in the stored JSON (encoding/json []byte).
type CachedUnlockSecret struct {
	Password    string `json:"password,omitempty"`
	KeyFileData []byte `json:"keyFileData,omitempty"`
	KeyFileName string `json:"keyFileName,omitempty"`
}

// Usable reports whether the secret can actually unlock anything. The type
// itself does not enforce this; Save validates before persisting.
func (s CachedUnlockSecret) Usable() bool {
	return s.Password != "" || len(s.KeyFileData) > 0
}
