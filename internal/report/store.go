package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Store 报告文件落盘
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Save 将人员档案写成 JSON 文件，返回文件路径
// 文件名格式 <Name>_report_<20060102_150405>.json，空格替换为下划线
func (s *Store) Save(name string, personData interface{}) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report dir: %w", err)
	}

	data, err := json.MarshalIndent(personData, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}

	safeName := strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
	if safeName == "" {
		safeName = "unknown"
	}
	filename := fmt.Sprintf("%s_report_%s.json", safeName, time.Now().Format("20060102_150405"))
	filePath := filepath.Join(s.dir, filename)

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report file: %w", err)
	}

	return filePath, nil
}

// Load 读取报告文件内容
func (s *Store) Load(filePath string) ([]byte, error) {
	// 只允许读取报告目录内的文件
	cleaned := filepath.Clean(filePath)
	if !strings.HasPrefix(cleaned, filepath.Clean(s.dir)+string(filepath.Separator)) {
		return nil, fmt.Errorf("report path outside store dir: %s", filePath)
	}
	return os.ReadFile(cleaned)
}
