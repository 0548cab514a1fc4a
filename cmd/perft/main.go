package main

import (
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"hardcoded-chess/hcmg"
	"hardcoded-chess/internal/oracle"
)

func main() {
	fen := pflag.String("fen", hcmg.FENStartPos, "FEN string (defaults to initial position)")
	depth := pflag.Int("depth", 0, "Perft depth (required)")
	divide := pflag.Bool("divide", false, "Print per-move node counts at root")
	verify := pflag.Bool("verify", false, "Compare the per-move counts against the reference generator")
	repeat := pflag.Int("repeat", 1, "Repeat perft N times and report aggregate (for steadier timings)")
	label := pflag.String("label", "", "Optional label prefix for one-line output")
	cpuProf := pflag.String("cpuprofile", "", "Write CPU profile to file during run")
	memProf := pflag.String("memprofile", "", "Write heap profile to file after run")
	pflag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "--depth must be > 0")
		os.Exit(2)
	}

	board, _, err := hcmg.ParseFEN(*fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ParseFEN error: %v\n", err)
		os.Exit(2)
	}

	if *verify {
		os.Exit(verifyDivide(board, *fen, *depth))
	}

	if *divide {
		div := hcmg.PerftDivide(board, *depth)
		counts := make(map[string]uint64, len(div))
		for m, n := range div {
			counts[m.String()] = n
		}
		keys := maps.Keys(counts)
		slices.Sort(keys)
		var sum uint64
		for _, k := range keys {
			fmt.Printf("%s: %d\n", k, counts[k])
			sum += counts[k]
		}
		fmt.Printf("Total: %d\n", sum)
		return
	}

	if *cpuProf != "" {
		f, err := os.Create(*cpuProf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating cpuprofile: %v\n", err)
			os.Exit(2)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "start cpu profile: %v\n", err)
			os.Exit(2)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	var totalNodes uint64
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		totalNodes += hcmg.Perft(board, *depth)
	}
	elapsed := time.Since(start)
	nps := float64(totalNodes) / elapsed.Seconds()

	// Label Depth Nodes Time NPS
	fmt.Printf("%s \t%d \t\t%d \t\t%s \t%.0f\n", *label, *depth, totalNodes, elapsed, nps)

	if *memProf != "" {
		f, err := os.Create(*memProf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating memprofile: %v\n", err)
			os.Exit(2)
		}
		if err := pprof.WriteHeapProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "write heap profile: %v\n", err)
			os.Exit(2)
		}
		_ = f.Close()
	}
}

// verifyDivide prints every root move whose count differs from the reference
// and returns the process exit code.
func verifyDivide(board *hcmg.Board, fen string, depth int) int {
	ours := make(map[string]uint64)
	for m, n := range hcmg.PerftDivide(board, depth) {
		ours[m.String()] = n
	}
	theirs := oracle.Divide(fen, depth)

	keys := maps.Keys(theirs)
	for k := range ours {
		if _, ok := theirs[k]; !ok {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)

	mismatches := 0
	for _, k := range keys {
		if ours[k] != theirs[k] {
			fmt.Printf("%s: got %d want %d\n", k, ours[k], theirs[k])
			mismatches++
		}
	}
	if mismatches > 0 {
		fmt.Printf("%d of %d root moves differ\n", mismatches, len(keys))
		return 1
	}
	fmt.Printf("ok: %d root moves match at depth %d\n", len(keys), depth)
	return 0
}
