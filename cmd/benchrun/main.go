package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/spf13/pflag"
)

// run executes a command and prints its combined output. Returns exit code.
func run(name string, args ...string) int {
	cmd := exec.Command(name, args...)
	cmd.Env = os.Environ()
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	fmt.Print(out.String())
	if err == nil {
		return 0
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return ee.ExitCode()
	}
	fmt.Fprintf(os.Stderr, "error running %s: %v\n", name, err)
	return 1
}

type perftRun struct {
	label string
	fen   string
	depth int
}

const kiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

var perftRuns = []perftRun{
	{"Initial", "", 3},
	{"Initial", "", 4},
	{"Initial", "", 5},
	{"Kiwipete", kiwipete, 3},
	{"Kiwipete", kiwipete, 4},
}

func main() {
	benchtime := pflag.String("benchtime", "1s", "passed to go test -benchtime")
	skipPerft := pflag.Bool("skip-perft", false, "only run the go benchmarks")
	searchDepth := pflag.Int("search-depth", 5, "depth of the searchbench run, 0 to skip")
	pflag.Parse()

	// Format: BenchmarkName  Iterations  ns/op  B/op  allocs/op
	fmt.Println("Columns: BENCHMARK  N  ns/op  B/op  allocs/op")
	code := run("go", "test", "./bench", "-run", "^$", "-bench", ".", "-benchmem", "-benchtime="+*benchtime)
	if code != 0 {
		os.Exit(code)
	}

	if !*skipPerft {
		fmt.Println("\nPerft Performance:")
		fmt.Println("TEST \t\tDepth \t\tNodes \t\tTime \tNPS")
		for _, r := range perftRuns {
			args := []string{"run", "./cmd/perft", "--depth", strconv.Itoa(r.depth), "--label", r.label}
			if r.fen != "" {
				args = append(args, "--fen", r.fen)
			}
			run("go", args...)
		}
	}

	if *searchDepth > 0 {
		fmt.Println("\nSearch Performance:")
		run("go", "run", "./cmd/searchbench", "--depth", strconv.Itoa(*searchDepth), "--repeat", "3")
	}
}
