package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/akmonengine/prism"
	"github.com/akmonengine/prism/frame"
	"github.com/akmonengine/prism/scene"
)

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, stderr io.Writer) error {
	flags := flag.NewFlagSet("prismScene", flag.ContinueOnError)
	flags.SetOutput(stderr)
	count := flags.Int("count", 10, "number of prisms")
	seed := flags.Int64("seed", 0, "scene random seed")
	radiusXZ := flags.Float64("radius-xz", 5, "region radius on the XZ plane")
	radiusY := flags.Float64("radius-y", 5, "region radius on Y")
	maxScale := flags.Float64("max-scale", 5, "maximum prism scale")
	depth := flags.Int("depth", 5, "quadtree depth")
	interval := flags.Duration("interval", 500*time.Millisecond, "tick interval")
	ticks := flags.Int("ticks", 20, "ticks to run, 0 runs until interrupted")
	workers := flags.Int("workers", 1, "workers refreshing the bounds")
	framesPath := flags.String("frames", "", "write msgpack frames to this file")
	if err := flags.Parse(args); err != nil {
		return err
	}

	logger := log.New(stderr, "[prism] ", log.LstdFlags)

	sceneCfg := scene.DefaultConfig()
	sceneCfg.Count = *count
	sceneCfg.RegionRadiusXZ = *radiusXZ
	sceneCfg.RegionRadiusY = *radiusY
	sceneCfg.MaxScaleXZ = *maxScale
	sceneCfg.MaxScaleY = *maxScale

	prisms, err := scene.Generate(sceneCfg, rand.New(rand.NewSource(*seed)))
	if err != nil {
		return fmt.Errorf("scene: %w", err)
	}

	cfg := prism.DefaultConfig()
	cfg.ShapeCount = *count
	cfg.RegionRadiusXZ = *radiusXZ
	cfg.RegionRadiusY = *radiusY
	cfg.QuadtreeDepth = *depth
	cfg.TickInterval = *interval
	cfg.Workers = *workers
	cfg.Logger = logger

	world, err := prism.NewWorld(cfg, prisms)
	if err != nil {
		return fmt.Errorf("world: %w", err)
	}

	world.Events.Subscribe(prism.COLLISION_ENTER, func(event prism.Event) {
		e := event.(prism.CollisionEnterEvent)
		logger.Printf("%v %d/%d", event.Type(), e.PrismA.ID, e.PrismB.ID)
	})
	world.Events.Subscribe(prism.COLLISION_EXIT, func(event prism.Event) {
		e := event.(prism.CollisionExitEvent)
		logger.Printf("%v %d/%d", event.Type(), e.PrismA.ID, e.PrismB.ID)
	})

	var file *os.File
	var encoder *frame.Encoder
	if *framesPath != "" {
		file, err = os.Create(*framesPath)
		if err != nil {
			return fmt.Errorf("frames: %w", err)
		}
		encoder = frame.NewEncoder(file)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Printf("running %d prisms, depth %d, every %v", *count, *depth, *interval)

	err = world.Run(ctx, func(stats prism.TickStats) {
		logger.Printf("tick %d: %d candidates, %d collisions, %d skipped",
			stats.Tick, stats.Candidates, stats.Collisions, stats.Degenerate)

		if encoder != nil {
			if err := encoder.Encode(frame.Capture(world)); err != nil {
				logger.Printf("frames: %v", err)
			}
		}

		if *ticks > 0 && stats.Tick >= uint64(*ticks) {
			stop()
		}
	})
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	if err != nil {
		err = fmt.Errorf("run: %w", err)
	}

	// The frames file is closed on every path, a failed close loses frames
	if file != nil {
		if closeErr := file.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("frames: %w", closeErr))
		}
	}
	if err != nil {
		return err
	}

	colliding := 0
	for _, p := range world.Prisms {
		if world.IsColliding(p.ID) {
			colliding++
		}
	}
	logger.Printf("stopped after %d ticks, %d prisms still colliding", world.Tick(), colliding)

	return nil
}
