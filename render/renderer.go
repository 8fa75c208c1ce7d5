package render

import (
	"fmt"
	"mandelbrot/mandelbrot"
	"mandelbrot/misc"
	"mandelbrot/task"
	"time"

	"github.com/BrugadaSyndrome/bslogger"
	"gopkg.in/tomb.v2"
)

type Renderer struct {
	logger   bslogger.Logger
	settings Settings
}

func NewRenderer(settings Settings) (*Renderer, error) {
	if err := settings.Verify(); err != nil {
		return nil, err
	}
	return &Renderer{
		logger:   misc.NewLogger("Renderer"),
		settings: settings,
	}, nil
}

// Render computes the grayscale image described by options.
//
// The buffer is split up front into one band per thread and each band is rendered on its own goroutine, writing only
// into its own byte range. Render returns once every band is done. The split is static: a band full of slow escaping
// points is not helped by the others.
//
// Options with non-positive bounds are a programming error and panic. A band that panics aborts the render and no
// buffer is returned.
func (r *Renderer) Render(options mandelbrot.Options) ([]byte, error) {
	if err := options.Verify(); err != nil {
		panic(err)
	}

	var startTime = time.Now()
	pixels := make([]byte, options.Bounds.Pixels())
	bands := task.Partition(options, r.settings.Threads)
	r.logger.Debugf("Rendering %s in %d bands of %d rows", options.String(), len(bands), task.RowsPerBand(options.Bounds.Height, len(bands)))

	var t tomb.Tomb
	// Spawn from inside the tomb so it cannot die between two bands starting.
	t.Go(func() error {
		for _, band := range bands {
			band := band
			region := pixels[band.Start():band.End():band.End()]
			t.Go(func() error {
				return renderBand(region, band)
			})
		}
		return nil
	})
	if err := t.Wait(); err != nil {
		r.logger.Errorf("Render of %s aborted: %s", options.String(), err)
		return nil, err
	}

	r.logger.Debugf("Rendered %s pixels in %s", misc.FormatCount(len(pixels)), time.Since(startTime))
	return pixels, nil
}

func renderBand(region []byte, band task.Band) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("band %d failed: %v", band.ID, recovered)
		}
	}()
	Band(region, band)
	return nil
}
