// Package wal 是以 JSON Lines 格式寫入的 Write-Ahead Log。
// 每筆紀錄寫入後立即 fsync，重放時依寫入順序回呼。
package wal

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync"
)

// rw-r--r--
const FileMode fs.FileMode = 0644

type WAL struct {
	file *os.File
	mu   sync.Mutex
}

// Open 開啟或建立一個 WAL 檔案 (O_APPEND：每次寫入都接在檔尾)
func Open(path string) (*WAL, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_RDWR, FileMode)
	if err != nil {
		return nil, fmt.Errorf("open wal %s: %w", path, err)
	}
	return &WAL{file: file}, nil
}

// Append 寫入一筆紀錄並刷入硬碟
func (w *WAL) Append(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	data = append(data, '\n')

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := w.file.Write(data); err != nil {
		return err
	}
	return w.file.Sync()
}

// Replay 從頭讀取所有紀錄
// 檔尾若有寫到一半的紀錄 (崩潰時留下) 會被截掉，之後的 Append 從乾淨的一行開始
func (w *WAL) Replay(fn func(raw json.RawMessage) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := w.file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	reader := bufio.NewReader(w.file)
	// 最後一筆完整紀錄的結尾位置
	var offset int64
	for {
		line, err := reader.ReadBytes('\n')
		if errors.Is(err, io.EOF) {
			// 沒有換行結尾代表最後一筆沒寫完
			if len(line) == 0 {
				return nil
			}
			if err := w.file.Truncate(offset); err != nil {
				return fmt.Errorf("truncate torn wal tail: %w", err)
			}
			return w.file.Sync()
		}
		if err != nil {
			return err
		}
		if !json.Valid(line) {
			return fmt.Errorf("corrupt wal record: %q", line)
		}
		if err := fn(json.RawMessage(line)); err != nil {
			return err
		}
		offset += int64(len(line))
	}
}

// Close 關閉檔案
func (w *WAL) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.Close()
}
