// Command varelim reads a program of top-level function forms, runs
// the redundant local-variable elimination pass over each function
// body in turn, and writes the rewritten program back out.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	env "github.com/xyproto/env/v2"

	"github.com/xyproto/varelim/internal/elim"
	"github.com/xyproto/varelim/internal/engine"
	"github.com/xyproto/varelim/internal/sexpr"
	"github.com/xyproto/varelim/internal/watch"
)

const versionString = "varelim 1.0.0"

const envMaxUses = "C67_VARELIM_MAX_USES"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("varelim", flag.ExitOnError)
	maxUsesFlag := fs.Int("max-uses", elim.MaxUses, "maximum read count a variable may have and still be eliminated")
	outFlag := fs.String("o", "", "output file (default: stdout)")
	verbose := fs.Bool("v", false, "print per-function elimination counts to stderr")
	watchFlag := fs.String("watch", "", "re-run the pass on FILE every time it changes")
	debounceFlag := fs.Duration("debounce", 300*time.Millisecond, "coalesce a burst of writes within this window before re-running -watch")
	version := fs.Bool("version", false, "print version information and exit")
	suggestFlag := fs.Bool("suggest-typos", false, "with -v, list surviving locals whose names are close to each eliminated variable")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *version {
		fmt.Printf("%s (%s)\n", versionString, engine.Host())
		return nil
	}

	maxUses := *maxUsesFlag
	if v := env.Str(envMaxUses); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("varelim: invalid %s value %q: %w", envMaxUses, v, err)
		}
		maxUses = n
	}
	cfg := elim.Config{MaxUses: maxUses}

	inputs := fs.Args()
	if *watchFlag != "" {
		return runWatch(*watchFlag, cfg, *outFlag, *verbose, *suggestFlag, *debounceFlag)
	}
	if len(inputs) != 1 {
		return fmt.Errorf("varelim: expected exactly one input file")
	}

	return processFile(inputs[0], cfg, *outFlag, *verbose, *suggestFlag)
}

func processFile(path string, cfg elim.Config, outPath string, verbose, suggestTypos bool) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("varelim: %w", err)
	}

	out, err := processSource(string(src), cfg, verbose, suggestTypos)
	if err != nil {
		return fmt.Errorf("varelim: %s: %w", path, err)
	}

	if outPath == "" {
		fmt.Println(out)
		return nil
	}

	buf := engine.NewOutputBuffer(outPath)
	buf.Verbose = verbose
	if _, err := buf.Write([]byte(out + "\n")); err != nil {
		return fmt.Errorf("varelim: %w", err)
	}
	if err := buf.WriteFile(outPath, 0o644); err != nil {
		return fmt.Errorf("varelim: %w", err)
	}
	return nil
}

// processSource implements §6's driver contract: parse a program into
// its top-level function forms, run the pass on each body in turn, and
// re-serialize the rewritten program.
func processSource(src string, cfg elim.Config, verbose, suggestTypos bool) (string, error) {
	fns, err := sexpr.Decode(src)
	if err != nil {
		return "", err
	}

	for i := range fns {
		fn := &fns[i]
		result := elim.Eliminate(fn.Body, cfg)
		reportResult(fn.Name, result, verbose, suggestTypos)
	}

	return sexpr.Encode(fns), nil
}

func reportResult(name string, result elim.Result, verbose, suggestTypos bool) {
	if !verbose {
		return
	}
	if result.Skipped {
		fmt.Fprintf(os.Stderr, "%s: skipped (closure or with present)\n", name)
		return
	}
	fmt.Fprintf(os.Stderr, "%s: eliminated %d variable(s)\n", name, result.Count)

	if !suggestTypos {
		return
	}
	declared := map[string]bool{}
	for _, n := range result.Declared {
		declared[n] = true
	}
	for _, n := range result.Eliminated {
		delete(declared, n)
	}
	for _, n := range result.Eliminated {
		hints := engine.SimilarNames(n, declared, 2)
		if len(hints) > 0 {
			fmt.Fprintf(os.Stderr, "%s: %s eliminated, similarly-named locals nearby: %v\n", name, n, hints)
		}
	}
}

func runWatch(path string, cfg elim.Config, outPath string, verbose, suggestTypos bool, debounce time.Duration) error {
	process := func(changed string) {
		if err := processFile(changed, cfg, outPath, verbose, suggestTypos); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}

	w, err := watch.New(path, debounce, verbose, process)
	if err != nil {
		return fmt.Errorf("varelim: %w", err)
	}
	defer w.Close()

	process(path)
	fmt.Fprintf(os.Stderr, "watching %s for changes\n", path)
	return w.Watch()
}
