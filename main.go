package main

import (
	"errors"
	"fmt"
	"io"
	"mandelbrot/coordinator"
	"mandelbrot/mandelbrot"
	"mandelbrot/misc"
	"mandelbrot/output"
	"mandelbrot/render"
	"mandelbrot/worker"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/alexflint/go-arg"
	"github.com/pkg/profile"
)

type status int

const (
	statusOK status = iota
	statusUsage
	statusRenderFailed
	statusWriteFailed
)

type arguments struct {
	File       string `arg:"positional" help:"image file to write, the extension picks png, jpg, tiff or bmp"`
	Pixels     string `arg:"positional" help:"image size in pixels, e.g. 1000x750"`
	UpperLeft  string `arg:"positional" help:"upper left corner on the complex plane, e.g. -1.2,0.35"`
	LowerRight string `arg:"positional" help:"lower right corner on the complex plane, e.g. -1.0,0.2"`

	Threads     int    `arg:"-t,--threads" help:"bands rendered in parallel, 0 for one per CPU"`
	Supersample int    `arg:"--supersample" default:"1" help:"render at this multiple of the size and scale down"`
	Serve       string `arg:"--serve" help:"hand bands out to workers from this address instead of rendering locally"`
	Bands       int    `arg:"--bands" help:"bands handed out to workers with --serve, 0 for one per CPU"`
	Worker      string `arg:"--worker" help:"render bands for the coordinator at this address"`
	Workers     int    `arg:"--workers" default:"1" help:"worker connections opened with --worker"`
	Profile     string `arg:"--profile" help:"write a cpu, mem or trace profile"`
	ProfilePath string `arg:"--profile-path" default:"." help:"directory profiles are written to"`
	Verbose     bool   `arg:"-v,--verbose" help:"log everything"`
	Quiet       bool   `arg:"-q,--quiet" help:"only log errors"`
}

func (a *arguments) Verify() error {
	switch a.Profile {
	case "", "cpu", "mem", "trace":
	default:
		return fmt.Errorf("unknown profile %q", a.Profile)
	}
	if a.Worker != "" {
		if a.Serve != "" {
			return errors.New("--worker and --serve cannot be combined")
		}
		if a.Workers < 1 {
			return errors.New("--workers must be at least 1")
		}
		return nil
	}
	if a.File == "" || a.Pixels == "" || a.UpperLeft == "" || a.LowerRight == "" {
		return errors.New("FILE, PIXELS, UPPERLEFT and LOWERRIGHT are required")
	}
	if a.Supersample < 1 {
		return errors.New("--supersample must be at least 1")
	}
	if a.Serve != "" && a.Supersample != 1 {
		return errors.New("--supersample cannot be combined with --serve")
	}
	if a.Threads < 0 || a.Bands < 0 {
		return errors.New("--threads and --bands must not be negative")
	}
	return nil
}

func main() {
	os.Exit(int(run(os.Args[0], os.Args[1:], os.Stderr)))
}

func usage(w io.Writer, command string) {
	fmt.Fprintf(w, "Usage: %s FILE PIXELS UPPERLEFT LOWERRIGHT\n", command)
	fmt.Fprintf(w, "Example: %s mandel.png 1000x750 -1.2,0.35 -1.0,0.2\n", command)
}

// escapeNegativePoints keeps corner points such as -1.2,0.35 from being read as flags by prefixing them with a space.
func escapeNegativePoints(argv []string) []string {
	escaped := make([]string, len(argv))
	for i, a := range argv {
		if _, ok := mandelbrot.ParseComplex(a); ok && strings.HasPrefix(a, "-") {
			a = " " + a
		}
		escaped[i] = a
	}
	return escaped
}

func run(command string, argv []string, stderr io.Writer) status {
	var args arguments
	parser, err := arg.NewParser(arg.Config{Program: filepath.Base(command)}, &args)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return statusUsage
	}
	err = parser.Parse(escapeNegativePoints(argv))
	if err == arg.ErrHelp {
		parser.WriteHelp(stderr)
		return statusOK
	}
	if err == nil {
		err = args.Verify()
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		usage(stderr, command)
		return statusUsage
	}

	switch {
	case args.Verbose:
		misc.Verbosity = bslogger.All
	case args.Quiet:
		misc.Verbosity = bslogger.Minimal
	}
	logger := misc.NewLogger("Main")

	if args.Profile != "" {
		mode := map[string]func(*profile.Profile){
			"cpu":   profile.CPUProfile,
			"mem":   profile.MemProfile,
			"trace": profile.TraceProfile,
		}[args.Profile]
		defer profile.Start(mode, profile.ProfilePath(args.ProfilePath), profile.Quiet).Stop()
	}

	if args.Worker != "" {
		return runWorkers(logger, args)
	}

	options, err := mandelbrot.ParseOptions(args.Pixels, strings.TrimSpace(args.UpperLeft), strings.TrimSpace(args.LowerRight))
	if err != nil {
		fmt.Fprintln(stderr, err)
		usage(stderr, command)
		return statusUsage
	}
	if _, err := output.Format(args.File); err != nil {
		fmt.Fprintln(stderr, err)
		usage(stderr, command)
		return statusUsage
	}

	var startTime = time.Now()
	var pixels []byte
	if args.Serve != "" {
		pixels, err = serve(logger, args, options)
	} else {
		pixels, err = renderLocally(args, options)
	}
	if err != nil {
		logger.Errorf("Error rendering image: %s", err)
		return statusRenderFailed
	}
	logger.Infof("Rendered %s pixels in %s", misc.FormatCount(len(pixels)), time.Since(startTime))

	if err := output.WriteImage(args.File, pixels, options.Bounds); err != nil {
		logger.Errorf("Error writing image file: %s", err)
		return statusWriteFailed
	}
	logger.Infof("Saved image to %s", args.File)
	return statusOK
}

func renderLocally(args arguments, options mandelbrot.Options) ([]byte, error) {
	renderer, err := render.NewRenderer(render.Settings{Threads: args.Threads})
	if err != nil {
		return nil, err
	}
	return renderer.Supersample(options, args.Supersample)
}

func serve(logger bslogger.Logger, args arguments, options mandelbrot.Options) ([]byte, error) {
	c, err := coordinator.NewCoordinator(coordinator.Settings{Bands: args.Bands, ServerAddress: args.Serve}, options)
	if err != nil {
		return nil, err
	}
	logger.Infof("Waiting for workers at %s", c.Address())
	pixels := c.Wait()
	misc.CheckError(c.Stop(), logger, misc.Warning)
	return pixels, nil
}

func runWorkers(logger bslogger.Logger, args arguments) status {
	var wg sync.WaitGroup
	failed := make(chan error, args.Workers)
	host := misc.LocalAddressOr("localhost")

	// Start up the requested amount of workers
	for i := 0; i < args.Workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			w, err := worker.NewWorker(worker.Settings{
				CoordinatorAddress: args.Worker,
				Name:               fmt.Sprintf("%s-%d-%d", host, os.Getpid(), i),
			})
			if err == nil {
				err = w.ProcessTasks()
			}
			if err != nil {
				failed <- err
			}
		}(i)
	}

	// Wait for all workers to be done with their work
	wg.Wait()
	close(failed)

	result := statusOK
	for err := range failed {
		logger.Errorf("Worker failed: %s", err)
		result = statusRenderFailed
	}
	return result
}
