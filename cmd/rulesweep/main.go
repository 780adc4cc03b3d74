// Command rulesweep runs every rule in a band range from the same seed and
// ranks them by final population.
package main

import (
	"flag"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

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

type scenarioResult struct {
	rule       automata3d.RuleConfig
	live       int
	peak       int
	generation int
	stable     bool
	period     int
	extinct    int
}

func (r scenarioResult) state() string {
	switch {
	case r.live == 0:
		return fmt.Sprintf("extinct@%d", r.extinct)
	case r.stable:
		return "stable"
	case r.period > 1:
		return fmt.Sprintf("period %d", r.period)
	default:
		return "changing"
	}
}

func main() {
	steps := flag.Int("steps", 30, "generations to simulate per rule")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	maxBand := flag.Int("max", 8, "largest threshold tried in either band")
	top := flag.Int("top", 10, "results to print")
	var overrides kvList
	flag.Var(&overrides, "set", "base config override in key=value form (repeatable)")
	flag.Parse()

	base := automata3d.FromMap(overrides.Map())
	base.Workers = 1
	rules := enumerate(*maxBand)

	fmt.Printf("Sweeping %d rules on %v from %s (%d workers, %d steps)\n",
		len(rules), base.Size, base.Params.Shape, *workers, *steps)

	jobs := make(chan automata3d.RuleConfig)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for rule := range jobs {
				results <- runScenario(base, rule, *steps)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, rule := range rules {
			jobs <- rule
		}
		close(jobs)
	}()

	start := time.Now()
	var all []scenarioResult
	for res := range results {
		all = append(all, res)
	}
	rank(all)
	elapsed := time.Since(start)

	fmt.Printf("\nTop %d results (elapsed %s):\n", *top, elapsed.Round(time.Millisecond))
	for i := 0; i < len(all) && i < *top; i++ {
		res := all[i]
		fmt.Printf("%2d) rule=%s live=%d peak=%d gen=%d %s\n",
			i+1, res.rule, res.live, res.peak, res.generation, res.state())
	}
}

// enumerate lists every rule with 0 <= eL <= eU <= limit and
// 1 <= fL <= fU <= limit. A zero birth threshold fills empty space at once.
func enumerate(limit int) []automata3d.RuleConfig {
	if limit > automata3d.MaxNeighbors {
		limit = automata3d.MaxNeighbors
	}
	var rules []automata3d.RuleConfig
	for el := 0; el <= limit; el++ {
		for eu := el; eu <= limit; eu++ {
			for fl := 1; fl <= limit; fl++ {
				for fu := fl; fu <= limit; fu++ {
					rules = append(rules, automata3d.RuleConfig{ELower: el, EUpper: eu, FLower: fl, FUpper: fu})
				}
			}
		}
	}
	return rules
}

func runScenario(base automata3d.Config, rule automata3d.RuleConfig, steps int) scenarioResult {
	cfg := base
	cfg.Rule = rule
	res := scenarioResult{rule: rule}
	world, err := automata3d.NewWithConfig(cfg)
	if err != nil {
		return res
	}
	res.peak = world.Lattice().Live()
	for i := 0; i < steps; i++ {
		world.Step()
		live := world.Lattice().Live()
		if live > res.peak {
			res.peak = live
		}
		if live == 0 {
			res.extinct = world.Generation()
			break
		}
		if world.Stable() {
			break
		}
	}
	res.live = world.Lattice().Live()
	res.generation = world.Generation()
	res.stable = world.Stable()
	res.period = world.Period()
	return res
}

// rank orders results by final population, then peak, then rule text so
// the output is deterministic.
func rank(all []scenarioResult) {
	sort.Slice(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if a.live != b.live {
			return a.live > b.live
		}
		if a.peak != b.peak {
			return a.peak > b.peak
		}
		return a.rule.String() < b.rule.String()
	})
}
