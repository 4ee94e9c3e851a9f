// Command analyze prints quick, human-readable heuristics about game
// variants: the table a seed deals, the movable-stack limit for every
// combination of empty cells, and how much of a deal autocomplete clears
// without any player moves.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/solitaire-engine/game/config"
	"github.com/wricardo/solitaire-engine/game/engine"
)

func main() {
	if err := newCommand(os.Stdout).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// variantFlags selects a variant. Each command gets its own flag values.
func variantFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Value:   config.DefaultConfigName,
			Usage:   "variant name, from the config directory or built in",
		},
		&cli.StringFlag{
			Name:    "config-dir",
			Value:   "configs",
			Usage:   "directory containing variant files",
			Sources: cli.EnvVars("CONFIG_DIR"),
		},
	}
}

func newCommand(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:   "analyze",
		Usage:  "inspect solitaire deals and variants",
		Writer: out,
		Commands: []*cli.Command{
			{
				Name:  "deal",
				Usage: "print the table a seed deals",
				Flags: append([]cli.Flag{
					&cli.Int64Flag{Name: "seed", Aliases: []string{"s"}, Value: 1, Usage: "deal seed"},
				}, variantFlags()...),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					variant, err := loadVariant(cmd.String("config-dir"), cmd.String("config"))
					if err != nil {
						return err
					}
					variant.Seed = cmd.Int64("seed")

					game, err := engine.NewEngine(variant, nil)
					if err != nil {
						return err
					}
					printDeal(out, game)
					return nil
				},
			},
			{
				Name:  "limits",
				Usage: "print the movable-stack limit table",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "free-cells", Value: engine.MaxFreeCells, Usage: "largest number of empty free cells"},
					&cli.IntFlag{Name: "stacks", Value: 4, Usage: "largest number of empty play stacks"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					free, stacks := cmd.Int("free-cells"), cmd.Int("stacks")
					if free < 0 || free > engine.MaxFreeCells || stacks < 0 || stacks > engine.MaxStacks {
						return fmt.Errorf("free-cells must be 0..%d and stacks 0..%d", engine.MaxFreeCells, engine.MaxStacks)
					}
					printLimits(out, free, stacks)
					return nil
				},
			},
			{
				Name:  "autoplay",
				Usage: "report how many cards autocomplete clears right after the deal",
				Flags: append([]cli.Flag{
					&cli.Int64Flag{Name: "from", Value: 1, Usage: "first seed"},
					&cli.Int64Flag{Name: "to", Value: 20, Usage: "last seed"},
				}, variantFlags()...),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					from, to := cmd.Int64("from"), cmd.Int64("to")
					if to < from {
						return errors.New("--to must not be below --from")
					}
					variant, err := loadVariant(cmd.String("config-dir"), cmd.String("config"))
					if err != nil {
						return err
					}
					return autoplay(ctx, out, variant, from, to)
				},
			},
		},
	}
}

// loadVariant reads name from dir, falling back to the built-in presets
// when dir does not exist
func loadVariant(dir, name string) (*engine.GameConfig, error) {
	manager, err := config.NewManager(dir)
	if err != nil {
		preset, ok := engine.Presets()[name]
		if !ok {
			return nil, fmt.Errorf("variant %q: %w", name, config.ErrConfigNotFound)
		}
		return preset, nil
	}

	variant, err := manager.LoadConfig(name)
	if err != nil {
		return nil, fmt.Errorf("variant %q: %w", name, err)
	}
	copied := *variant
	return &copied, nil
}

func printDeal(out io.Writer, game *engine.GameEngine) {
	state := game.GetState()
	fmt.Fprintf(out, "=== %s, seed %d ===\n", engine.ShortName(game.GetConfig()), state.Seed)
	fmt.Fprintf(out, "Free cells: %d  Foundations: %d  Movable limit: %d\n",
		len(state.FreeCells), len(state.Foundations), state.MovableLimit)
	if adj := game.DealAdjustment(); adj != nil && adj.Len() > 0 {
		fmt.Fprintf(out, "Difficulty bias moved %d cards\n", adj.Len())
	}
	fmt.Fprintln(out)

	for _, d := range state.PlayStacks {
		codes := make([]string, 0, len(d.Cards))
		for _, c := range d.Cards {
			code := c.Code
			if c.Draggable {
				code += "*"
			}
			codes = append(codes, code)
		}
		fmt.Fprintf(out, "%-8s %s\n", d.Ref, strings.Join(codes, " "))
	}
}

func printLimits(out io.Writer, free, stacks int) {
	fmt.Fprintf(out, "%-12s", "free\\stacks")
	for s := 0; s <= stacks; s++ {
		fmt.Fprintf(out, "%6d", s)
	}
	fmt.Fprintln(out)

	for f := 0; f <= free; f++ {
		fmt.Fprintf(out, "%-12d", f)
		for s := 0; s <= stacks; s++ {
			fmt.Fprintf(out, "%6d", engine.StackLimit(f, s, false))
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintln(out, "\nMoving onto an empty stack uses the column one to the left.")
}

// autoplayResult is what autocomplete achieved on one deal
type autoplayResult struct {
	Seed  int64
	Safe  int
	Total int
	Won   bool
}

func playSeed(variant *engine.GameConfig, seed int64) (autoplayResult, error) {
	cfg := *variant
	cfg.Seed = seed

	game, err := engine.NewEngine(&cfg, nil)
	if err != nil {
		return autoplayResult{}, err
	}

	safe := game.Autocomplete(true)
	total := safe + game.Autocomplete(false)
	return autoplayResult{Seed: seed, Safe: safe, Total: total, Won: game.HasWon()}, nil
}

func autoplay(ctx context.Context, out io.Writer, variant *engine.GameConfig, from, to int64) error {
	fmt.Fprintf(out, "=== %s, seeds %d..%d ===\n", engine.ShortName(variant), from, to)
	fmt.Fprintf(out, "%8s %6s %6s\n", "seed", "safe", "all")

	var sum, best, wins int
	for seed := from; seed <= to; seed++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		r, err := playSeed(variant, seed)
		if err != nil {
			return err
		}
		mark := ""
		if r.Won {
			mark = " won"
			wins++
		}
		fmt.Fprintf(out, "%8d %6d %6d%s\n", r.Seed, r.Safe, r.Total, mark)

		sum += r.Total
		best = max(best, r.Total)
	}

	n := int(to - from + 1)
	fmt.Fprintf(out, "\nAverage cleared: %.1f of %d  Best: %d  Won outright: %d\n",
		float64(sum)/float64(n), variant.Suits*engine.SuitLength, best, wins)
	return nil
}
