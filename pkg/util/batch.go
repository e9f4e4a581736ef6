package util

// Batch 把切片按固定大小拆成独立的块，最后一块可能不满。
// size 不大于零时整个切片作为一块返回。
func Batch[T any](items []T, size int) [][]T {
	if len(items) == 0 {
		return nil
	}
	if size <= 0 {
		size = len(items)
	}
	result := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		chunk := make([]T, end-start)
		copy(chunk, items[start:end])
		result = append(result, chunk)
	}
	return result
}
