package gallery

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"io"
	"os"
	"runtime"
	"sync"

	"github.com/woozymasta/edds"

	"texturetool/pkg/imgutil"
)

var ErrUnsupportedImage = errors.New("unsupported image type")

type ProbeSummary struct {
	Probed  int
	Failed  int
	Skipped int
}

type probeJob struct {
	index int
	path  string
}

type probeResult struct {
	index  int
	width  int
	height int
	err    error
}

// ProbeMissing reads real dimensions from disk for every record that has
// none. progress is called from a single goroutine after each probed file.
func (g *Gallery) ProbeMissing(ctx context.Context, workers int, progress func(done, total int)) (ProbeSummary, error) {
	return Probe(ctx, g.records, workers, progress)
}

// Probe fills Dimensions in place for records whose dimensions are N/A.
func Probe(ctx context.Context, records []Record, workers int, progress func(done, total int)) (ProbeSummary, error) {
	summary := ProbeSummary{}
	if ctx == nil {
		ctx = context.Background()
	}

	var pending []probeJob
	for i, rec := range records {
		if rec.Dimensions != NotAvailable && rec.Dimensions != "" {
			summary.Skipped++
			continue
		}
		pending = append(pending, probeJob{index: i, path: rec.Path})
	}
	if len(pending) == 0 {
		return summary, nil
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, len(pending))

	jobs := make(chan probeJob)
	results := make(chan probeResult)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			probeWorker(ctx, jobs, results)
		}()
	}

	collectorDone := make(chan struct{})
	go func() {
		defer close(collectorDone)
		done := 0
		for res := range results {
			done++
			if res.err != nil {
				summary.Failed++
			} else {
				records[res.index].Dimensions = FormatDimensions(res.width, res.height)
				summary.Probed++
			}
			if progress != nil {
				progress(done, len(pending))
			}
		}
	}()

	producerErr := make(chan error, 1)
	go func() {
		defer close(jobs)
		for _, job := range pending {
			select {
			case jobs <- job:
			case <-ctx.Done():
				producerErr <- ctx.Err()
				return
			}
		}
		producerErr <- nil
	}()

	wg.Wait()
	close(results)
	<-collectorDone

	return summary, <-producerErr
}

func probeWorker(ctx context.Context, jobs <-chan probeJob, results chan<- probeResult) {
	for job := range jobs {
		if ctx.Err() != nil {
			return
		}
		w, h, err := ReadDimensions(job.path)
		results <- probeResult{index: job.index, width: w, height: h, err: err}
	}
}

// ReadDimensions reads the pixel size of an image file without decoding it.
func ReadDimensions(path string) (int, int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer file.Close()

	kind, err := imgutil.SniffReader(file)
	if err != nil {
		return 0, 0, err
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return 0, 0, err
	}

	switch kind {
	case imgutil.KindPNG:
		return pngDimensions(file)
	case imgutil.KindJPEG, imgutil.KindGIF:
		cfg, _, err := image.DecodeConfig(file)
		if err != nil {
			return 0, 0, err
		}
		return cfg.Width, cfg.Height, nil
	case imgutil.KindBMP:
		return bmpDimensions(file)
	case imgutil.KindTIFF:
		return tiffDimensions(file)
	case imgutil.KindDDS:
		cfg, err := edds.ReadConfig(path)
		if err != nil {
			return 0, 0, err
		}
		return cfg.Width, cfg.Height, nil
	default:
		return 0, 0, fmt.Errorf("%s: %w", path, ErrUnsupportedImage)
	}
}
