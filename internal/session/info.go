package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"texturetool/internal/gallery"
	"texturetool/internal/pipeline"
	"texturetool/internal/settings"
)

type InfoResult struct {
	CacheDir string
	Records  int
	Fallback bool
}

// GetInfo extracts input into a fresh cache directory, then lists the
// archive with the compiler and builds the gallery from its output. When the
// listing yields no records the cache is scanned instead.
func (s *Session) GetInfo(ctx context.Context, input string) (InfoResult, error) {
	release, err := s.acquire("info")
	if err != nil {
		return InfoResult{}, err
	}
	defer release()

	input = filepath.Clean(input)
	s.collectOldCaches()
	s.renderer.Log("[INFO] ----- Starting Get Info -----")

	s.gallery.Reset("")
	s.mu.Lock()
	previous := s.cacheDir
	s.cacheDir = ""
	s.mu.Unlock()
	if previous != "" {
		if err := os.RemoveAll(previous); err != nil {
			s.renderer.Logf("[WARN] Could not fully remove previous cache: %v", err)
		}
	}

	cacheDir, err := os.MkdirTemp(s.opts.TempDir, cachePrefix)
	if err != nil {
		s.renderer.Logf("[ERROR] Could not create temporary cache directory: %v", err)
		return InfoResult{}, fmt.Errorf("create info cache: %w", err)
	}
	s.mu.Lock()
	s.cacheDir = cacheDir
	s.mu.Unlock()
	s.renderer.Logf("[INFO] Created temporary image cache: %s", cacheDir)
	s.Publish(Update{Percent: 0, Status: "Step 1/2: Caching images..."})

	exe, dir := s.toolCommand(Extractor)
	extract := pipeline.NewJob("info-extract", exe, "-o", cacheDir, "-c", input)
	extract.Dir = dir
	err = s.runJob(ctx, extract, jobHooks{silent: true, progress: func(p pipeline.Progress) {
		s.Publish(Update{Percent: p.Percent, Status: cacheStatus(p.Message)})
	}})
	if err != nil {
		s.renderer.Logf("[ERROR] Failed during silent extraction phase: %v", err)
		s.Publish(Update{Percent: 0, Status: "Error caching images."})
		return InfoResult{CacheDir: cacheDir}, err
	}

	s.renderer.Log("[INFO] Image cache created successfully.")
	s.Publish(Update{Percent: 0, Status: "Step 2/2: Reading texture information..."})
	s.gallery.Reset(cacheDir)

	exe, dir = s.toolCommand(Compiler)
	list := pipeline.NewJob("info", exe, "-info", input)
	list.Dir = dir
	err = s.runJob(ctx, list, jobHooks{
		progress: func(p pipeline.Progress) {
			s.Publish(Update{Percent: p.Percent, Status: infoStatus(p.Message)})
		},
		lines: func(lines []pipeline.OutputLine) {
			for _, line := range lines {
				s.gallery.Apply(line)
			}
		},
	})
	if err != nil {
		s.renderer.Logf("[ERROR] Get Info task failed with code: %d.", exitCode(err))
		s.renderer.Logf("[ERROR] %v", err)
		return InfoResult{CacheDir: cacheDir, Records: s.gallery.Len()}, err
	}

	s.renderer.Log("[INFO] ----- Get Info Complete (Data Parsed) -----")

	res := InfoResult{CacheDir: cacheDir}
	if s.gallery.Len() == 0 {
		res.Fallback = true
		s.scanFallback(ctx, cacheDir)
	}
	res.Records = s.gallery.Len()
	if res.Records > 0 {
		s.gallery.First()
	}

	s.Publish(Update{Percent: 100, Status: "Info retrieval complete."})
	s.remember(settings.DecompileFiles, input, settings.DecompileInput, filepath.Dir(input))
	if res.Records == 0 {
		return res, ErrNoRecords
	}
	return res, nil
}

func (s *Session) scanFallback(ctx context.Context, cacheDir string) {
	s.renderer.Log("[WARN] TextureCompiler returned no text data. Scanning cache directory directly...")
	records, err := gallery.ScanDir(ctx, cacheDir)
	if err != nil {
		s.renderer.Logf("[ERROR] Error during fallback scan: %v", err)
		return
	}
	if len(records) == 0 {
		s.renderer.Log("[WARN] Fallback scan found no images in cache.")
		return
	}
	s.gallery.Add(records...)
	s.renderer.Logf("[INFO] Fallback scan found %d images.", len(records))
}

// collectOldCaches removes info caches left behind by earlier runs.
func (s *Session) collectOldCaches() {
	s.renderer.Log("[INFO] Performing cleanup of old temporary info caches...")
	entries, err := os.ReadDir(s.opts.TempDir)
	if err != nil {
		s.renderer.Logf("[WARN] An error occurred during temp folder cleanup: %v", err)
		return
	}

	cleaned := 0
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), cachePrefix) {
			continue
		}
		path := filepath.Join(s.opts.TempDir, entry.Name())
		if err := os.RemoveAll(path); err != nil {
			s.renderer.Logf("[WARN] Could not remove old cache directory '%s': %v", path, err)
			continue
		}
		s.renderer.Logf("[INFO] Removed orphaned cache directory: %s", path)
		cleaned++
	}
	if cleaned == 0 {
		s.renderer.Log("[INFO] No old info caches found to clean up.")
	}
}
