// Command cubectl runs the 3D automaton without a window and writes the
// result as OBJ, glTF or snapshot files.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"strings"

	"sugarcube/internal/export"
	"sugarcube/internal/sims/automata3d"
)

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

func (l kvList) Map() map[string]string {
	out := make(map[string]string, len(l))
	for _, kv := range l {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			continue
		}
		out[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	return out
}

// outputs are the files written after a run.
type outputs struct {
	obj       string
	glb       string
	instanced string
	snapshot  string
}

func (o *outputs) bind(fs *flag.FlagSet) {
	fs.StringVar(&o.obj, "obj", "", "write the surface mesh as OBJ to this path")
	fs.StringVar(&o.glb, "glb", "", "write the surface mesh as binary glTF to this path")
	fs.StringVar(&o.instanced, "instanced", "", "write one cube node per live cell as binary glTF to this path")
	fs.StringVar(&o.snapshot, "snapshot", "", "write a .scube snapshot to this path")
}

func (o *outputs) write(w *automata3d.World) error {
	if o.obj != "" || o.glb != "" {
		faces := w.Faces()
		if o.obj != "" {
			if err := export.SaveOBJ(o.obj, faces); err != nil {
				return err
			}
			log.Printf("wrote %s (%d faces)", o.obj, len(faces))
		}
		if o.glb != "" {
			if err := export.SaveGLB(o.glb, faces); err != nil {
				return err
			}
			log.Printf("wrote %s (%d faces)", o.glb, len(faces))
		}
	}
	if o.instanced != "" {
		if err := export.SaveInstancedGLB(o.instanced, w.Positions()); err != nil {
			return err
		}
		log.Printf("wrote %s (%d cells)", o.instanced, len(w.Positions()))
	}
	if o.snapshot != "" {
		snap := export.Snapshot{
			Lattice:    w.Lattice(),
			Generation: w.Generation(),
			Thresholds: w.Rule().Thresholds(),
		}
		if err := export.SaveSnapshotFile(o.snapshot, snap); err != nil {
			return err
		}
		log.Printf("wrote %s", o.snapshot)
	}
	return nil
}

func main() {
	log.SetFlags(0)
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	var err error
	switch os.Args[1] {
	case "run":
		err = runCmd(os.Args[2:])
	case "load":
		err = loadCmd(os.Args[2:])
	case "-h", "-help", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", os.Args[1])
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: cubectl run [flags]    seed a lattice and step it")
	fmt.Fprintln(os.Stderr, "       cubectl load [flags]   continue from a .scube snapshot")
}

func runCmd(args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	steps := fs.Int("steps", 20, "generations to simulate")
	untilStable := fs.Bool("until-stable", false, "stop early once the lattice stops changing")
	seed := fs.Int64("seed", 0, "RNG seed for the noise shape (0 keeps the configured seed)")
	workers := fs.Int("workers", runtime.NumCPU(), "goroutines per step")
	var overrides kvList
	fs.Var(&overrides, "set", "parameter override in key=value form (repeatable)")
	var out outputs
	out.bind(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := automata3d.FromMap(overrides.Map())
	if *seed != 0 {
		cfg.Seed = *seed
	}
	cfg.Workers = *workers
	world, err := automata3d.NewWithConfig(cfg)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}
	if world.Lattice().Live() == 0 {
		log.Printf("%s seed left the %v lattice empty", cfg.Params.Shape, cfg.Size)
	}

	ran := advance(world, *steps, *untilStable)
	summarize(world, ran)
	return out.write(world)
}

func loadCmd(args []string) error {
	fs := flag.NewFlagSet("load", flag.ExitOnError)
	in := fs.String("in", "", "snapshot to load (required)")
	steps := fs.Int("steps", 0, "generations to simulate after loading")
	untilStable := fs.Bool("until-stable", false, "stop early once the lattice stops changing")
	workers := fs.Int("workers", runtime.NumCPU(), "goroutines per step")
	var out outputs
	out.bind(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return fmt.Errorf("load: -in is required")
	}

	snap, err := export.LoadSnapshotFile(*in)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	cfg := automata3d.DefaultConfig()
	cfg.Size = snap.Lattice.Size()
	cfg.Workers = *workers
	world, err := automata3d.NewWithConfig(cfg)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	if err := world.Restore(snap.Lattice, snap.Generation, automata3d.RuleFromThresholds(snap.Thresholds)); err != nil {
		return fmt.Errorf("load: %w", err)
	}

	ran := advance(world, *steps, *untilStable)
	summarize(world, ran)
	return out.write(world)
}

// advance steps w up to steps times and returns how many steps ran.
func advance(w *automata3d.World, steps int, untilStable bool) int {
	for i := 0; i < steps; i++ {
		w.Step()
		if untilStable && w.Stable() {
			return i + 1
		}
	}
	if steps < 0 {
		return 0
	}
	return steps
}

func summarize(w *automata3d.World, ran int) {
	fmt.Printf("size %v  rule %s  steps %d  generation %d  live %d  faces %d\n",
		w.Size(), w.Rule(), ran, w.Generation(), w.Lattice().Live(), len(w.Faces()))
	switch {
	case w.Stable():
		fmt.Println("state: stable")
	case w.Period() > 1:
		fmt.Printf("state: oscillating, period %d\n", w.Period())
	default:
		fmt.Println("state: changing")
	}
	fmt.Printf("fingerprint %016x\n", w.Fingerprint())
}
