// Package snbt scans text-format (SNBT) dumps for backpack blocks without
// parsing the full document. It is the fallback path for saves that were
// exported as text rather than binary NBT.
package snbt

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"backpack-visualizer/internal/mcuuid"
)

var (
	rePlayerName = regexp.MustCompile(`(?i)playerName\s*:\s*(?:"([^"]+)"|([A-Za-z0-9_\-]+))`)
	reUUIDInts   = regexp.MustCompile(`(?i)backpackUuid\s*:\s*\[I;\s*([-\d,\s]+)\]`)
	reAccessTime = regexp.MustCompile(`(?i)accessTime\s*:\s*([0-9]+)L?`)
	reItemID     = regexp.MustCompile(`id\s*:\s*(?:"([^"]+)"|([A-Za-z0-9:_\-.]+))`)
	reCount      = regexp.MustCompile(`count\s*:\s*([0-9]+)`)

	reBlockStart = regexp.MustCompile(`\bbackpackContents\s*:\s*\[`)
)

// OwnerInfo is the metadata regex-extracted from one backpack block.
type OwnerInfo struct {
	PlayerName string
	UUID       string
	AccessTime int64 // unix millis, 0 = unknown
}

// ItemRef is one item id found in a block. Count is -1 when no count could
// be read near the id.
type ItemRef struct {
	ID    string
	Count int64
}

// ScanBlocks streams the file line by line, collecting brace-balanced blocks
// that start at a backpackContents marker, and calls fn for each block.
func ScanBlocks(path string, fn func(block string)) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("snbt: open %s: %w", path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	collecting := false
	braceLevel := 0
	var buf []string

	for sc.Scan() {
		line := sc.Text()
		if !collecting {
			if reBlockStart.MatchString(line) || strings.Contains(line, "backpackContents") {
				collecting = true
				buf = []string{line}
				braceLevel = strings.Count(line, "{") - strings.Count(line, "}")
			}
			continue
		}

		buf = append(buf, line)
		braceLevel += strings.Count(line, "{") - strings.Count(line, "}")
		if braceLevel <= 0 {
			fn(strings.Join(buf, "\n"))
			collecting = false
			braceLevel = 0
			buf = nil
		}
	}
	if collecting && len(buf) > 0 {
		fn(strings.Join(buf, "\n"))
	}
	return sc.Err()
}

// ExtractOwner pulls owner name, uuid and access time out of a block.
func ExtractOwner(block string) OwnerInfo {
	var info OwnerInfo

	if m := rePlayerName.FindStringSubmatch(block); m != nil {
		if m[1] != "" {
			info.PlayerName = m[1]
		} else {
			info.PlayerName = m[2]
		}
	}

	if m := reUUIDInts.FindStringSubmatch(block); m != nil {
		var ints []int64
		for _, part := range strings.Split(m[1], ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			v, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				ints = nil
				break
			}
			ints = append(ints, v)
		}
		if uuid, ok := mcuuid.FromInts(ints); ok {
			info.UUID = uuid
		}
	}

	if m := reAccessTime.FindStringSubmatch(block); m != nil {
		info.AccessTime, _ = strconv.ParseInt(m[1], 10, 64)
	}

	return info
}

// SummarizeItems lists up to maxItems item ids found in a block. The count is
// read from the text right after the id when present, so adjacent items keep
// their own counts; a count written before the id is picked up from the
// preceding window as a fallback.
func SummarizeItems(block string, maxItems int) []ItemRef {
	var items []ItemRef
	for _, loc := range reItemID.FindAllStringSubmatchIndex(block, -1) {
		id := submatch(block, loc, 1)
		if id == "" {
			id = submatch(block, loc, 2)
		}

		start := loc[0] - 120
		if start < 0 {
			start = 0
		}
		end := loc[1] + 20
		if end > len(block) {
			end = len(block)
		}
		count := int64(-1)
		if m := reCount.FindStringSubmatch(block[loc[1]:end]); m != nil {
			count, _ = strconv.ParseInt(m[1], 10, 64)
		} else if m := reCount.FindStringSubmatch(block[start:loc[0]]); m != nil {
			count, _ = strconv.ParseInt(m[1], 10, 64)
		}

		items = append(items, ItemRef{ID: id, Count: count})
		if len(items) >= maxItems {
			break
		}
	}
	return items
}

func submatch(s string, loc []int, n int) string {
	if loc[2*n] < 0 {
		return ""
	}
	return s[loc[2*n]:loc[2*n+1]]
}

// LooksBinary sniffs whether a file is binary NBT (raw or gzip) rather than
// an SNBT text dump.
func LooksBinary(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	head := make([]byte, 4096)
	n, _ := f.Read(head)
	head = head[:n]
	if len(head) == 0 {
		return false
	}
	if head[0] == 0x0a || (len(head) >= 2 && head[0] == 0x1f && head[1] == 0x8b) {
		return true
	}
	for _, b := range head {
		if b == 0 {
			return true
		}
	}
	return false
}
