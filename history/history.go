package history

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"github.com/samber/lo"
)

const historyFileName = ".cligram_history"

// Item is one executed prompt line with its unix timestamp.
type Item struct {
	Cmd string
	Ts  int64
}

// Helper keeps prompt history in a JSON-lines file under dir and serves
// prefix queries for completion.
type Helper struct {
	items []Item
	hFile *os.File
}

// NewHelper loads existing history from dir and opens the file for appending.
// A broken or missing file degrades to in-memory history only.
func NewHelper(dir string) *Helper {
	filePath := path.Join(dir, historyFileName)

	var items []Item
	readFile, err := os.Open(filePath)
	if err == nil {
		scanner := bufio.NewScanner(readFile)
		for scanner.Scan() {
			var item Item
			if err := json.Unmarshal(scanner.Bytes(), &item); err == nil {
				items = append(items, item)
			}
		}
		readFile.Close()
	}

	hFile, err := os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Println("[WARN] failed to open history file", err.Error())
	}

	return &Helper{
		items: items,
		hFile: hFile,
	}
}

// AddLog appends cmd to the history. Empty lines and immediate repeats are
// dropped.
func (h *Helper) AddLog(cmd string) {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return
	}
	if len(h.items) > 0 && h.items[len(h.items)-1].Cmd == cmd {
		return
	}
	item := Item{
		Cmd: cmd,
		Ts:  time.Now().Unix(),
	}
	if h.hFile != nil {
		bs, _ := json.Marshal(item)
		h.hFile.Write(bs)
		h.hFile.WriteString("\n")
	}
	h.items = append(h.items, item)
}

// List returns history items starting with input, oldest first.
func (h *Helper) List(input string) []Item {
	return lo.Filter(h.items, func(item Item, _ int) bool {
		return strings.HasPrefix(item.Cmd, input)
	})
}

// Commands returns every stored command line, oldest first.
func (h *Helper) Commands() []string {
	return lo.Map(h.items, func(item Item, _ int) string {
		return item.Cmd
	})
}

func (h *Helper) Close() {
	if h.hFile != nil {
		h.hFile.Close()
	}
}
