package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashBytes 返回内容的 sha256，用于跨运行对比输出是否变化。
func HashBytes(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
