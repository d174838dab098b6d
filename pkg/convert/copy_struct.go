package convert

import (
	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
)

// MergePatch copies only the set fields of patch onto dst; nil pointer fields
// are treated as unspecified and leave dst untouched
// MergePatch 只把 patch 中已设置的字段复制到 dst，nil 指针字段视为未指定
func MergePatch(dst any, patch any) error {
	return errors.Wrap(copier.CopyWithOption(dst, patch, copier.Option{IgnoreEmpty: true}), "convert")
}
