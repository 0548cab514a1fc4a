package main

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"lukechampine.com/frand"

	"hardcoded-chess/engine"
	"hardcoded-chess/hcmg"
)

func main() {
	depthFlag := pflag.Int("depth", engine.DefaultMaxDepth, "search depth in plies")
	repeatFlag := pflag.Int("repeat", 1, "number of searches to run")
	fenFlag := pflag.String("fen", hcmg.FENStartPos, "FEN to search")
	moveTime := pflag.Duration("movetime", 0, "time budget per search, 0 for none")
	randomPlies := pflag.Int("random-plies", 0, "random legal moves played from the FEN before every search")
	quiescence := pflag.Int("quiescence-depth", engine.DefaultQuiescenceDepth, "capture plies searched past the horizon")
	showInfo := pflag.Bool("info", false, "print the protocol output of every search")
	cpuProfile := pflag.String("cpuprofile", "", "write CPU profile to file")
	memProfile := pflag.String("memprofile", "", "write memory profile (heap) to file")
	pflag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if *depthFlag <= 0 {
		log.Fatal().Int("depth", *depthFlag).Msg("depth must be positive")
	}
	root, _, err := hcmg.ParseFEN(*fenFlag)
	if err != nil {
		log.Fatal().Err(err).Str("fen", *fenFlag).Msg("bad-fen")
	}

	if *cpuProfile != "" {
		cpuFile, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create CPU profile")
		}
		if err := pprof.StartCPUProfile(cpuFile); err != nil {
			log.Fatal().Err(err).Msg("could not start CPU profile")
		}
		defer func() {
			pprof.StopCPUProfile()
			cpuFile.Close()
		}()
	}

	var out io.Writer = io.Discard
	if *showInfo {
		out = os.Stdout
	}
	settings := engine.DefaultSettings()
	settings.MaxDepth = *depthFlag
	settings.QuiescenceDepth = *quiescence
	analyser := engine.NewAnalyser(engine.NewLineWriter(out), settings)

	fmt.Printf("searchbench: fen=%q depth=%d repeat=%d\n", *fenFlag, *depthFlag, *repeatFlag)

	var totalNodes uint64
	startAll := time.Now()
	for i := 0; i < *repeatFlag; i++ {
		board := *root
		playRandom(&board, *randomPlies)

		analysis := engine.NewAnalysis(&board)
		analysis.MaxTime = *moveTime
		iterStart := time.Now()
		if !analyser.Start(analysis) {
			log.Fatal().Msg("analyser busy")
		}
		analyser.Wait()
		iterElapsed := time.Since(iterStart)
		totalNodes += analysis.Nodes

		fmt.Printf("iteration %d: fen=%q bestmove %v depth=%d nodes=%d nps=%d time=%v\n",
			i+1, board.ToFEN(), analysis.BestMove, analysis.Depth, analysis.Nodes,
			engine.NodesPerSecond(analysis.Nodes, iterElapsed), iterElapsed)
	}
	totalElapsed := time.Since(startAll)
	fmt.Printf("total time: %v nodes: %d nps: %d\n", totalElapsed, totalNodes, engine.NodesPerSecond(totalNodes, totalElapsed))

	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create memory profile")
		}
		defer f.Close()

		runtime.GC() // get up-to-date heap info
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatal().Err(err).Msg("could not write memory profile")
		}
	}
}

// playRandom plays up to n uniformly chosen legal moves, stopping early at
// the end of the game.
func playRandom(b *hcmg.Board, n int) {
	for i := 0; i < n; i++ {
		moves := b.GenerateMoves()
		if len(moves) == 0 {
			return
		}
		b.Play(moves[frand.Intn(len(moves))])
	}
}
