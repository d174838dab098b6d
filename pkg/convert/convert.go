package convert

import (
	"strconv"
	"strings"
)

type StrTo string

func (s StrTo) String() string {
	return string(s)
}

func (s StrTo) Int() (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s.String()))
	return v, err
}

func (s StrTo) MustInt() int {
	v, _ := s.Int()
	return v
}

func (s StrTo) Int64() (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(s.String()), 10, 64)
}

func (s StrTo) MustInt64() int64 {
	v, _ := s.Int64()
	return v
}

// Int64Slice parses a comma separated id list such as "1, 2,3"; empty items are skipped
// Int64Slice 解析逗号分隔的 id 列表，例如 "1, 2,3"，空项会被跳过
func (s StrTo) Int64Slice() ([]int64, error) {
	var out []int64
	for _, part := range strings.Split(s.String(), ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		v, err := StrTo(part).Int64()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
