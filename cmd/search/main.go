// Command search queries a Sophisticated Backpacks save without rendering:
// it prints a table of backpacks matching an owner, item or upgrade query.
// Binary NBT saves are parsed structurally; text SNBT dumps fall back to a
// regex block scan.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"backpack-visualizer/internal/record"
	"backpack-visualizer/internal/snbt"
	"backpack-visualizer/internal/tagtree"
)

func main() {
	file := flag.String("f", "", "Path to backpacks .dat file")
	flag.StringVar(file, "file", "", "Alias for -f")
	byOwner := flag.Bool("owner", false, "Search by owner name or uuid")
	byItem := flag.Bool("item", false, "Search for item id (mod:item)")
	byUpgrade := flag.Bool("upgrade", false, "Search for upgrade id (mod:upgrade_name)")
	flag.Parse()

	modes := 0
	for _, b := range []bool{*byOwner, *byItem, *byUpgrade} {
		if b {
			modes++
		}
	}
	query := flag.Arg(0)
	if *file == "" || modes != 1 || query == "" {
		fmt.Fprintln(os.Stderr, "Usage: search -f <file> (-owner|-item|-upgrade) <query>")
		os.Exit(1)
	}

	mode := "owner"
	if *byItem {
		mode = "item"
	} else if *byUpgrade {
		mode = "upgrade"
	}

	var err error
	if snbt.LooksBinary(*file) {
		err = searchBinary(*file, mode, query)
	} else {
		err = searchText(*file, mode, query)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func searchBinary(path, mode, query string) error {
	doc, err := tagtree.Load(path)
	if err != nil {
		return err
	}
	payload, _, err := tagtree.Locate(doc)
	if err != nil {
		return fmt.Errorf("could not locate 'backpackContents' in %s: %w", path, err)
	}

	owners := record.BuildOwnerIndex(payload.Get("accessLogRecords"))
	records, _ := record.ParseBackpacks(payload, owners)

	q := strings.ToLower(query)
	var rows [][]string

	for i := range records {
		rec := &records[i]
		switch mode {
		case "owner":
			if strings.EqualFold(query, rec.UUID) ||
				strings.Contains(strings.ToLower(rec.PlayerName), q) {
				rows = append(rows, ownerRow(rec, ""))
			}

		case "item":
			matched := false
			var found []string
			for _, it := range rec.Inventory {
				if strings.Contains(it.ID, q) {
					matched = true
				}
				if len(found) < 5 {
					found = append(found, fmt.Sprintf("%s x%d", it.ID, it.Count))
				}
			}
			for _, u := range rec.Upgrades {
				if strings.Contains(u.ID, q) {
					matched = true
				}
				if len(found) < 10 {
					found = append(found, fmt.Sprintf("[Up] %s x%d", u.ID, u.Count))
				}
			}
			if matched {
				rows = append(rows, ownerRow(rec, strings.Join(found, ", ")))
			}

		case "upgrade":
			for _, u := range rec.Upgrades {
				if strings.Contains(u.ID, q) {
					rows = append(rows, ownerRow(rec, ""))
					break
				}
			}
		}
	}

	printResults(mode, query, rows, "binary nbt")
	return nil
}

func ownerRow(rec *record.Record, items string) []string {
	access := ""
	if rec.AccessTime != 0 {
		access = time.UnixMilli(rec.AccessTime).Format(time.RFC3339)
	}
	row := []string{rec.PlayerName, rec.UUID, access}
	if items != "" {
		row = append(row, items)
	}
	return row
}

func searchText(path, mode, query string) error {
	q := strings.ToLower(query)
	var rows [][]string

	err := snbt.ScanBlocks(path, func(block string) {
		info := snbt.ExtractOwner(block)
		items := snbt.SummarizeItems(block, 20)

		matched := false
		switch mode {
		case "owner":
			matched = info.PlayerName != "" &&
				strings.Contains(strings.ToLower(info.PlayerName), q)
		case "item":
			for _, it := range items {
				if strings.Contains(strings.ToLower(it.ID), q) {
					matched = true
					break
				}
			}
		case "upgrade":
			if strings.Contains(block, "upgradeInventory") {
				for _, it := range items {
					if strings.Contains(strings.ToLower(it.ID), q) {
						matched = true
						break
					}
				}
			}
		}
		if !matched {
			return
		}

		access := ""
		if info.AccessTime != 0 {
			access = time.UnixMilli(info.AccessTime).Format(time.RFC3339)
		}
		var summary []string
		for _, it := range items {
			if len(summary) >= 10 {
				break
			}
			cnt := "?"
			if it.Count >= 0 {
				cnt = fmt.Sprintf("%d", it.Count)
			}
			summary = append(summary, fmt.Sprintf("%s x%s", it.ID, cnt))
		}
		rows = append(rows, []string{info.PlayerName, info.UUID, access, strings.Join(summary, ", ")})
	})
	if err != nil {
		return err
	}

	printResults(mode, query, rows, "text scan")
	return nil
}

func printResults(mode, query string, rows [][]string, source string) {
	var title string
	columns := []string{"playerName", "backpackUuid", "accessTime"}
	switch mode {
	case "owner":
		title = fmt.Sprintf("Backpacks for owner '%s' (%s)", query, source)
	case "item":
		title = fmt.Sprintf("Backpacks containing '%s' (%s)", query, source)
		columns = append(columns, "items_found")
	case "upgrade":
		title = fmt.Sprintf("Backpacks with upgrade '%s' (%s)", query, source)
	}
	if source == "text scan" {
		columns = []string{"playerName", "backpackUuid", "accessTime", "items_found"}
	}

	fmt.Printf("=== %s ===\n", title)
	if len(rows) == 0 {
		fmt.Println("(no results)")
		return
	}
	printTable(columns, rows)
}

func printTable(columns []string, rows [][]string) {
	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = len(col)
	}
	for _, row := range rows {
		for i := range columns {
			if i < len(row) && len(row[i]) > widths[i] {
				widths[i] = len(row[i])
			}
		}
	}

	printRow := func(cells []string) {
		parts := make([]string, len(columns))
		for i := range columns {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			parts[i] = fmt.Sprintf("%-*s", widths[i], cell)
		}
		fmt.Println(strings.TrimRight(strings.Join(parts, "  "), " "))
	}

	printRow(columns)
	total := 0
	for _, w := range widths {
		total += w
	}
	fmt.Println(strings.Repeat("-", total+2*(len(widths)-1)))
	for _, row := range rows {
		printRow(row)
	}
}
