package binary

// textKey is added to stored name bytes to recover the plain text.
const textKey = 0x30

// DecodeText turns stored (obfuscated) name bytes into plain bytes.
func DecodeText(stored []byte) []byte {
	plain := make([]byte, len(stored))
	for i, b := range stored {
		plain[i] = b + textKey
	}
	return plain
}

// EncodeText turns plain name bytes into their stored form.
func EncodeText(plain []byte) []byte {
	stored := make([]byte, len(plain))
	for i, b := range plain {
		stored[i] = b - textKey
	}
	return stored
}
