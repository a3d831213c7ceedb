package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"backpack-visualizer/internal/assets"
	"backpack-visualizer/internal/avatar"
	"backpack-visualizer/internal/batch"
	"backpack-visualizer/internal/config"
	"backpack-visualizer/internal/container"
	"backpack-visualizer/internal/filter"
	"backpack-visualizer/internal/record"
	"backpack-visualizer/internal/tagtree"
)

// confirmThreshold is the image count above which the run asks before
// generating.
const confirmThreshold = 50

func main() {
	file := flag.String("f", "", "Path to .dat (backpacks) or .json (containers) file")
	flag.StringVar(file, "file", "", "Alias for -f")
	mode := flag.String("mode", "backpack", "Processing mode: backpack or container")
	configFile := flag.String("config", "", "Path to config.json file")

	owner := flag.String("owner", "", "Filter by owner name/uuid substring (backpacks)")
	item := flag.String("item", "", "Filter by item id substring")
	upgrade := flag.String("upgrade", "", "Filter by upgrade id substring (backpacks)")
	noDungeon := flag.Bool("nodungeon", false, "Exclude dungeon containers")
	ctype := flag.String("ctype", "", "Filter by container id substring")
	rawNBT := flag.String("nbt", "", "Filter by raw substring over container items")

	outputDir := flag.String("output", "", "Output directory (default: backpack_images)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU+2)")
	webp := flag.Bool("webp", false, "Write WebP instead of PNG")
	noAvatar := flag.Bool("noavatar", false, "Skip fetching owner avatars")

	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "Error: -f/-file is required.")
		flag.Usage()
		os.Exit(1)
	}

	// Auto-detect mode from extension unless it contradicts the data.
	ext := strings.ToLower(filepath.Ext(*file))
	if ext == ".json" && *mode == "backpack" {
		*mode = "container"
		fmt.Println("[Main] Detected '.json' extension, switching mode to 'container'.")
	} else if ext == ".dat" && *mode == "container" {
		*mode = "backpack"
		fmt.Println("[Main] Detected '.dat' extension, switching mode to 'backpack'.")
	}

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	} else {
		cfg = config.Config{FetchAvatars: true}
	}
	cfg.Resolve(config.Flags{
		OutputDir: *outputDir,
		Workers:   *workers,
		WebP:      *webp,
		NoAvatar:  *noAvatar,
	})

	renderCtx, err := assets.Load(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	crit := filter.Criteria{
		Owner:         *owner,
		Item:          *item,
		Upgrade:       *upgrade,
		ContainerType: *ctype,
		NoDungeon:     *noDungeon,
		RawNBT:        *rawNBT,
		Query:         flag.Arg(0),
	}

	var records []record.Record
	if *mode == "container" {
		records, err = loadContainers(*file, crit)
	} else {
		records, err = loadBackpacks(*file, crit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	count := len(records)
	fmt.Printf("[Main] Found %d records matching filters.\n", count)
	if count == 0 {
		return
	}

	if count > confirmThreshold && !confirm(fmt.Sprintf("Generate %d images? [y/N] ", count)) {
		return
	}

	var fetcher *avatar.Fetcher
	if cfg.FetchAvatars && *mode == "backpack" {
		fetcher = avatar.NewFetcher(5 * time.Second)
	}

	fmt.Printf("[Main] Rendering %d records, %d workers → %s\n", count, cfg.Workers, cfg.OutputDir)
	start := time.Now()

	results := batch.Run(batch.Config{
		OutputDir:  cfg.OutputDir,
		Format:     cfg.Format,
		Workers:    cfg.Workers,
		Render:     renderCtx,
		Avatars:    fetcher,
		FetchLimit: cfg.FetchLimit,
	}, records)

	success, failed := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("[Done] %d/%d images in %.1fs\n", success, count, time.Since(start).Seconds())
	if missing := renderCtx.Atlas.MissingCount(); missing > 0 {
		fmt.Printf("[Done] %d item ids had no atlas sprite.\n", missing)
	}

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := 20
		if len(errors) < limit {
			limit = len(errors)
		}
		for _, e := range errors[:limit] {
			fmt.Printf("  %s: %s\n", e.Identity, e.Error)
		}
	}

	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	}

	if failed > 0 {
		os.Exit(1)
	}
}

func loadBackpacks(path string, crit filter.Criteria) ([]record.Record, error) {
	fmt.Printf("[Scan] Reading NBT file: %s...\n", path)
	doc, err := tagtree.Load(path)
	if err != nil {
		return nil, err
	}

	payload, where, err := tagtree.Locate(doc)
	if err != nil {
		return nil, fmt.Errorf("could not locate 'backpackContents' in %s: %w", path, err)
	}
	fmt.Printf("[Scan] Payload at %s\n", where)

	owners := record.BuildOwnerIndex(payload.Get("accessLogRecords"))
	all, skipped := record.ParseBackpacks(payload, owners)
	fmt.Printf("[Scan] Found %d backpacks (%d malformed entries skipped).\n", len(all), skipped)

	var matched []record.Record
	for i := range all {
		if crit.Matches(&all[i]) {
			matched = append(matched, all[i])
		}
	}
	return matched, nil
}

func loadContainers(path string, crit filter.Criteria) ([]record.Record, error) {
	fmt.Printf("[Scan] Reading container data from %s...\n", path)
	raw, err := container.Load(path)
	if err != nil {
		return nil, err
	}

	var matched []record.Record
	for _, c := range raw {
		rec := container.Normalize(c)
		if crit.Matches(&rec) {
			matched = append(matched, rec)
		}
	}
	return matched, nil
}

func confirm(prompt string) bool {
	fmt.Print(prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	return strings.ToLower(strings.TrimSpace(line)) == "y"
}
