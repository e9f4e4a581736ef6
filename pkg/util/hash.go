package util

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// HashJSON 返回任意可序列化值的稳定 hash，用于内容变更对比。
// encoding/json 对 map 键做排序，同一内容总是得到同一结果。
func HashJSON(v any) string {
	h := sha256.New()
	data, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(h, "%+v", v)
	} else {
		h.Write(data)
	}
	return hex.EncodeToString(h.Sum(nil))
}
