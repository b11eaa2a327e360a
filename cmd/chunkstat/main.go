// Command chunkstat streams a window of chunks without a window or GL
// context and reports what the mesher produced.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"os"
	"text/tabwriter"
	"time"

	"voxelforge/internal/atlas"
	"voxelforge/internal/config"
	"voxelforge/internal/profiling"
	"voxelforge/internal/registry"
	"voxelforge/internal/streaming"
	"voxelforge/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/xlab/closer"
)

type options struct {
	config     string
	metrics    string
	atlasOut   string
	atlasScale int
	focus      [3]float64
	timeout    time.Duration
	edits      int
}

func main() {
	var o options
	flag.StringVar(&o.config, "config", "", "YAML config file; empty uses the built-in defaults")
	flag.StringVar(&o.metrics, "metrics", "", "serve Prometheus metrics on this address and keep running")
	flag.StringVar(&o.atlasOut, "atlas", "", "write the generated block atlas to this PNG file")
	flag.IntVar(&o.atlasScale, "atlas-scale", 4, "pixel scale of the written atlas")
	flag.Float64Var(&o.focus[0], "x", 0, "focus X in blocks")
	flag.Float64Var(&o.focus[1], "y", 32, "focus Y in blocks")
	flag.Float64Var(&o.focus[2], "z", 0, "focus Z in blocks")
	flag.DurationVar(&o.timeout, "timeout", time.Minute, "give up waiting for the window to settle after this long")
	flag.IntVar(&o.edits, "edits", 0, "carve this many random blocks near the focus and settle again")
	flag.Parse()

	defer closer.Close()
	if err := run(o); err != nil {
		closer.Fatalln(err)
	}
}

func run(o options) error {
	cfg := config.Default()
	if o.config != "" {
		var err error
		if cfg, err = config.Load(o.config); err != nil {
			return err
		}
	}
	cfg.LogSummary()

	reg, err := cfg.NewRegistry()
	if err != nil {
		return err
	}
	if o.atlasOut != "" {
		if err := writeAtlas(reg, o.atlasOut, o.atlasScale); err != nil {
			return err
		}
	}
	gen, err := cfg.NewGenerator()
	if err != nil {
		return err
	}

	promReg := prometheus.NewRegistry()
	promReg.MustRegister(collectors.NewGoCollector())
	opts := cfg.StreamingOptions()
	opts.Metrics = streaming.NewMetrics(promReg)
	if o.metrics != "" {
		serveMetrics(o.metrics, promReg)
	}

	chunks, err := streaming.New(reg, gen, opts)
	if err != nil {
		return err
	}
	defer chunks.Close()

	focus := mgl32.Vec3{float32(o.focus[0]), float32(o.focus[1]), float32(o.focus[2])}
	if err := settle(chunks, focus, o.timeout, "initial window"); err != nil {
		return err
	}
	report(os.Stdout, chunks)

	if o.edits > 0 {
		n := carve(chunks, focus, o.edits)
		if err := settle(chunks, focus, o.timeout, fmt.Sprintf("%d edits", n)); err != nil {
			return err
		}
		report(os.Stdout, chunks)
	}

	if o.metrics != "" {
		log.Printf("serving metrics on %s; interrupt to exit", o.metrics)
		closer.Hold()
	}
	return nil
}

func settle(chunks *streaming.Manager, focus mgl32.Vec3, timeout time.Duration, what string) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	profiling.ResetFrame()
	start := time.Now()
	chunks.Update(focus)
	if err := chunks.Settle(ctx); err != nil {
		return fmt.Errorf("settle %s: %w", what, err)
	}
	log.Printf("settled %s in %v; slowest: %s", what, time.Since(start).Round(time.Millisecond), profiling.TopN(5))
	return nil
}

// carve replaces up to n random non-air blocks within 16 blocks of focus
// with air and returns how many edits took effect.
func carve(chunks *streaming.Manager, focus mgl32.Vec3, n int) int {
	rng := rand.New(rand.NewSource(1))
	applied := 0
	for try := 0; try < n*64 && applied < n; try++ {
		x := int(focus.X()) + rng.Intn(33) - 16
		y := int(focus.Y()) + rng.Intn(33) - 16
		z := int(focus.Z()) + rng.Intn(33) - 16
		if chunks.Block(x, y, z) == world.Air {
			continue
		}
		if chunks.SetBlock(x, y, z, world.Air) {
			applied++
		}
	}
	return applied
}

func report(w io.Writer, chunks *streaming.Manager) {
	s := chunks.Stats()
	exposed := chunks.ExposedFaces()

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "tracked\t%d\n", s.Tracked)
	fmt.Fprintf(tw, "ready\t%d\n", s.Ready)
	fmt.Fprintf(tw, "empty\t%d\n", s.Empty)
	fmt.Fprintf(tw, "pending\t%d generating, %d meshing, %d dirty\n", s.Generating, s.Meshing, s.Dirty)
	fmt.Fprintf(tw, "quads\t%d\n", s.Quads)
	fmt.Fprintf(tw, "triangles\t%d\n", s.Triangles)
	fmt.Fprintf(tw, "exposed faces\t%d\n", exposed)
	if exposed > 0 {
		fmt.Fprintf(tw, "greedy ratio\t%.3f\n", float64(s.Quads)/float64(exposed))
	}
	tw.Flush()
}

func writeAtlas(reg *registry.Registry, path string, scale int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("atlas: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err := atlas.Generate(reg).WritePNG(f, max(scale, 1)); err != nil {
		return fmt.Errorf("atlas: %w", err)
	}
	log.Printf("wrote atlas to %s", path)
	return nil
}

func serveMetrics(addr string, reg *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("metrics server: %v", err)
		}
	}()
	closer.Bind(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})
}
