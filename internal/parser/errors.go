package parser

import "fmt"

// InputError 输入文件无法打开或读取（整个解析失败，不返回部分结果）
type InputError struct {
	Path string
	Op   string
	Err  error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("failed to %s input %s: %v", e.Op, e.Path, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}
