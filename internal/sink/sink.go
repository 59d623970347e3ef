package sink

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"netbox2prom/internal/discovery"
)

// StdoutPath 是“直接写标准输出”的哨兵路径，此时不做临时文件暂存。
const StdoutPath = "-"

// Sink 接收渲染完成的发现文档。
type Sink interface {
	Write(doc []byte) error
}

// Render 把目标组序列化成输出文档：JSON 数组、四空格缩进、末尾换行。
// 空结果渲染为 []，而不是 null。
func Render(groups []discovery.TargetGroup) ([]byte, error) {
	if groups == nil {
		groups = []discovery.TargetGroup{}
	}
	data, err := json.MarshalIndent(groups, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("序列化发现文档失败: %w", err)
	}
	return append(data, '\n'), nil
}

// New 根据输出路径选择落盘方式，路径为 "-" 时直接写标准输出。
func New(path string) Sink {
	if path == StdoutPath {
		return &WriterSink{W: os.Stdout}
	}
	return &FileSink{Path: path}
}

// FileSink 原子写入文件：先写临时文件再 rename，读方不会看到半截文档。
type FileSink struct {
	Path string
}

// Write 落盘文档。任何一步失败都会清理临时文件，原文件保持不动。
func (s *FileSink) Write(doc []byte) error {
	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, doc, 0o644); err != nil {
		return fmt.Errorf("写入临时文件失败: %w", err)
	}
	if err := os.Rename(tmp, s.Path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("替换输出文件失败: %w", err)
	}
	return nil
}

// WriterSink 把文档写进任意 io.Writer，主要给标准输出和测试用。
type WriterSink struct {
	W io.Writer
}

func (s *WriterSink) Write(doc []byte) error {
	if _, err := s.W.Write(doc); err != nil {
		return fmt.Errorf("写出文档失败: %w", err)
	}
	return nil
}
