// Package batch drives the render pipeline: a fixed worker pool turns
// normalized records into image files, with remote avatar fetches admitted
// through a counting gate so they cannot swamp the network.
package batch

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/HugoSmits86/nativewebp"

	"backpack-visualizer/internal/avatar"
	"backpack-visualizer/internal/layout"
	"backpack-visualizer/internal/record"
)

// Config holds all shared resources for a batch run.
type Config struct {
	OutputDir  string
	Format     string // "png" or "webp"
	Workers    int
	Render     *layout.Context
	Avatars    *avatar.Fetcher // nil disables avatar fetching
	FetchLimit int             // concurrent avatar fetches
}

// Result holds the outcome of processing one record.
type Result struct {
	Identity string
	Owner    string
	File     string
	Success  bool
	Error    string
}

// Run processes all records using a worker pool. Output order matches input
// order; completion order is irrelevant since every record writes its own
// file.
func Run(cfg Config, records []record.Record) []Result {
	total := len(records)
	results := make([]Result, total)
	var processed atomic.Int64

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		for i := range results {
			results[i] = Result{Identity: records[i].Identity(), Error: err.Error()}
		}
		return results
	}

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					fmt.Printf("  [%d/%d] %.1f images/sec\n", p, total, rate)
				}
			}
		}
	}()

	fetchGate := make(chan struct{}, max(1, cfg.FetchLimit))

	recChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range recChan {
				results[idx] = process(cfg, &records[idx], fetchGate)
				processed.Add(1)
			}
		}()
	}

	for i := range records {
		recChan <- i
	}
	close(recChan)

	wg.Wait()
	close(done)

	return results
}

func process(cfg Config, rec *record.Record, fetchGate chan struct{}) (res Result) {
	res = Result{Identity: rec.Identity(), Owner: rec.PlayerName}

	// A malformed record must not take down the batch.
	defer func() {
		if r := recover(); r != nil {
			res.Success = false
			res.Error = fmt.Sprintf("render panic: %v", r)
		}
	}()

	var head *image.NRGBA
	if rec.Kind == record.KindBackpack && cfg.Avatars != nil {
		fetchGate <- struct{}{}
		head = cfg.Avatars.Fetch(rec.PlayerName)
		<-fetchGate
	}

	img := cfg.Render.Render(rec, head)

	ext := ".png"
	if cfg.Format == "webp" {
		ext = ".webp"
	}
	outPath := filepath.Join(cfg.OutputDir, rec.Identity()+ext)

	f, err := os.Create(outPath)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	defer f.Close()

	if cfg.Format == "webp" {
		err = nativewebp.Encode(f, img, nil)
	} else {
		err = png.Encode(f, img)
	}
	if err != nil {
		res.Error = fmt.Sprintf("encode: %v", err)
		return res
	}

	res.File = outPath
	res.Success = true
	return res
}
