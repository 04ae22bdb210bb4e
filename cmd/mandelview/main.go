// Command mandelview drives the mandel engine from the terminal: it submits
// a single View, waits for refinement to complete, and draws the final frame
// with half-block characters and 24-bit ANSI colors. It stands in for the
// interactive viewer the engine is designed to sit under.
package main

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/gogpu/mandel"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type renderFlags struct {
	width    int
	height   int
	maxIter  int
	zoom     float64
	re, im   float64
	mode     string
	palette  string
	location string
	workers  int
	verbose  bool
}

func rootCmd() *cobra.Command {
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "mandelview",
		Short: "Render a view of the Mandelbrot set to the terminal",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return runRender(flags)
		},
	}

	cmd.Flags().IntVar(&flags.width, "width", 120, "viewport width in pixels")
	cmd.Flags().IntVar(&flags.height, "height", 80, "viewport height in pixels")
	cmd.Flags().IntVar(&flags.maxIter, "iterations", 500, "iteration budget")
	cmd.Flags().Float64Var(&flags.zoom, "zoom", 1, "magnification factor")
	cmd.Flags().Float64Var(&flags.re, "real", -0.5, "center, real part")
	cmd.Flags().Float64Var(&flags.im, "imag", 0, "center, imaginary part")
	cmd.Flags().StringVar(&flags.mode, "mode", "auto", "precision mode: auto, fixed, arbitrary")
	cmd.Flags().StringVar(&flags.palette, "palette", "sine", "palette: sine, triangle")
	cmd.Flags().StringVar(&flags.location, "location", "", "render a named location instead of --real/--imag/--zoom")
	cmd.Flags().IntVar(&flags.workers, "workers", 0, "worker count (0 = all CPUs)")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "log pass progress to stderr")

	cmd.AddCommand(locationsCmd())
	return cmd
}

func locationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "locations",
		Short: "List the built-in location bookmarks",
		Args:  cobra.ExactArgs(0),
		Run: func(*cobra.Command, []string) {
			for _, l := range mandel.Locations() {
				fmt.Printf("%-24s %v + %vi, zoom %g\n", l.Name, real(l.Center), imag(l.Center), l.Zoom)
			}
		},
	}
}

func runRender(flags *renderFlags) error {
	if flags.verbose {
		mandel.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	view, err := buildView(flags)
	if err != nil {
		return err
	}

	var palette mandel.Palette
	switch flags.palette {
	case "sine":
		palette = mandel.NewSinePalette()
	case "triangle":
		palette = mandel.NewTrianglePalette()
	default:
		return fmt.Errorf("unknown palette %q", flags.palette)
	}

	// The final frame arrives on the coordinator goroutine; the mutex
	// publishes it to this one once the request is done.
	var mu sync.Mutex
	var final *image.RGBA
	eng := mandel.NewEngine(
		mandel.WithWorkers(flags.workers),
		mandel.WithPalette(palette),
		mandel.WithOnFrame(func(f mandel.Frame) {
			if f.Final {
				mu.Lock()
				final = f.Image
				mu.Unlock()
			}
		}),
	)
	defer eng.Close()

	req, err := eng.Submit(view)
	if err != nil {
		return err
	}
	<-req.Done()
	if err := req.Err(); err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()
	fmt.Print(ansiImage(final))
	return nil
}

func buildView(flags *renderFlags) (mandel.View, error) {
	mode, err := mandel.ParseMode(flags.mode)
	if err != nil {
		return mandel.View{}, err
	}

	view := mandel.View{
		Center:  complex(flags.re, flags.im),
		Zoom:    flags.zoom,
		Width:   flags.width,
		Height:  flags.height,
		MaxIter: flags.maxIter,
		Mode:    mode,
	}
	if flags.location != "" {
		found := false
		for _, l := range mandel.Locations() {
			if l.Name == flags.location {
				view.Center, view.Zoom = l.Center, l.Zoom
				found = true
				break
			}
		}
		if !found {
			return mandel.View{}, fmt.Errorf("unknown location %q (see `mandelview locations`)", flags.location)
		}
	}
	return view, nil
}

// ansiImage renders two image rows per terminal line using the upper
// half-block glyph: foreground carries the top pixel, background the bottom.
func ansiImage(img *image.RGBA) string {
	if img == nil {
		return ""
	}
	b := img.Bounds()
	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		for x := b.Min.X; x < b.Max.X; x++ {
			top := img.RGBAAt(x, y)
			bottom := top
			if y+1 < b.Max.Y {
				bottom = img.RGBAAt(x, y+1)
			}
			fmt.Fprintf(&sb, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀",
				top.R, top.G, top.B, bottom.R, bottom.G, bottom.B)
		}
		sb.WriteString("\x1b[0m\n")
	}
	return sb.String()
}
