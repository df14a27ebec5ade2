package util

import "strconv"

// StrSliceToUInt64Slice 字符串切片转 uint64 切片
func StrSliceToUInt64Slice(strs []string) ([]uint64, error) {
	ids := make([]uint64, 0, len(strs))
	for _, s := range strs {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
