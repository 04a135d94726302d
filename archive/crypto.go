package archive

import (
	"crypto/aes"
	"crypto/cipher"

	"github.com/nullsector/assetkit/internal/binreader"
)

// archiveAESKey is the fixed AES-128 key baked into every client that
// reads this archive format; it is not a secret held by the archive
// itself. Grounded on svarog-p4k's crypto.rs P4K_AES_KEY.
var archiveAESKey = [16]byte{
	0x5E, 0x7A, 0x20, 0x02, 0x30, 0x2E, 0xEB, 0x1A, 0x3B, 0xB6, 0x17, 0xC3, 0x0F, 0xDE, 0x1E, 0x47,
}

// archiveAESIV is the all-zero initialization vector used for every
// entry; the format carries no per-entry IV.
var archiveAESIV = [16]byte{}

// decryptEntry runs AES-128-CBC over data (which must be a multiple of
// the block size) with the archive's fixed key and zero IV, then trims
// the trailing NUL padding the encoder used instead of PKCS#7. The
// standard library's crypto/aes has hardware-accelerated AES-NI/ARMv8
// paths built in, so there's no third-party AES crate to wire here —
// see DESIGN.md.
func decryptEntry(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if len(data)%aes.BlockSize != 0 {
		return nil, &DecryptionError{Reason: "ciphertext length is not a multiple of the AES block size"}
	}

	block, err := aes.NewCipher(archiveAESKey[:])
	if err != nil {
		return nil, &DecryptionError{Reason: err.Error()}
	}

	out := make([]byte, len(data))
	mode := cipher.NewCBCDecrypter(block, archiveAESIV[:])
	mode.CryptBlocks(out, data)

	return out[:binreader.FindLastNonZero(out)], nil
}
