package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"

	"github.com/iburimskiy/dreamseed/internal/config"
	"github.com/iburimskiy/dreamseed/internal/dream"
	"github.com/iburimskiy/dreamseed/internal/game"
)

func main() {
	var (
		seedStr string
		width   int
		height  int
		showHUD bool
	)
	flag.StringVar(&seedStr, "seed", "", "Scene seed (integer); random when empty")
	flag.IntVar(&width, "width", config.WindowWidth, "Window width")
	flag.IntVar(&height, "height", config.WindowHeight, "Window height")
	flag.BoolVar(&showHUD, "hud", true, "Show seed, tempo and palette overlay")
	flag.Parse()

	seed := dream.NormalizeSeed(rand.Int63n(1_000_000_000))
	if seedStr != "" {
		s, err := dream.ParseSeed(seedStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid seed: %v\n", err)
			os.Exit(2)
		}
		seed = s
	}
	log.Printf("seed %d", seed)

	g := game.New(seed, width, height, showHUD)
	if err := game.Run(g, "Dreamseed - R: new seed, wheel: tempo, O: audio, Esc/Q: quit"); err != nil {
		log.Fatal(err)
	}
}
