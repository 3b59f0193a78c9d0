package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/thoas/go-funk"
	"golang.org/x/sync/errgroup"

	"github.com/lantos1618/pocketaces/internal/config"
	"github.com/lantos1618/pocketaces/internal/deck"
	"github.com/lantos1618/pocketaces/internal/evaluator"
	"github.com/lantos1618/pocketaces/internal/game"
	"github.com/lantos1618/pocketaces/internal/randutil"
	"github.com/lantos1618/pocketaces/internal/stats"
	"github.com/lantos1618/pocketaces/internal/store"
)

type CLI struct {
	Verbose bool `short:"v" help:"Verbose logging"`

	Simulate SimulateCmd `cmd:"" help:"Run random-action hands across concurrent tables"`
	Rank     RankCmd     `cmd:"" help:"Evaluate a set of cards and print the best hand"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pocketaces"),
		kong.Description("Multi-player Texas hold'em engine"))

	level := log.InfoLevel
	if cli.Verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: level})

	ctx.FatalIfErrorf(ctx.Run(logger))
}

type SimulateCmd struct {
	Hands  int    `default:"10" help:"Hands to play per table"`
	Tables int    `default:"2" help:"Tables to run concurrently"`
	Seats  int    `default:"4" help:"Players per table"`
	Seed   int64  `default:"0" help:"RNG seed (0 for random)"`
	Config string `default:"pocketaces.hcl" help:"HCL config file"`
}

func (c *SimulateCmd) Run(logger *log.Logger) error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
	if c.Seats < 2 || c.Seats > 8 {
		return fmt.Errorf("seats must be between 2 and 8, got %d", c.Seats)
	}

	logger.Info("starting simulation", "tables", c.Tables,
		"hands", c.Hands, "seats", c.Seats, "seed", c.Seed)

	st := store.New(logger, store.WithSeed(c.Seed))
	stakes := cfg.Tables[0]

	start := time.Now()
	trackers := make([]*stats.Tracker, c.Tables)
	var g errgroup.Group
	for i := 0; i < c.Tables; i++ {
		i := i
		trackers[i] = &stats.Tracker{}
		g.Go(func() error {
			return c.playTable(st, stakes, *cfg.Room, i, trackers[i], logger)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	hero := &stats.Tracker{}
	for _, tr := range trackers {
		hero.Merge(tr)
	}

	results := st.Results()
	showdowns := 0
	for _, r := range results {
		if r.WinningHand != nil {
			showdowns++
		}
	}

	low, high := hero.ConfidenceInterval95()
	fmt.Printf("\n%d hands in %v across %d tables (%d showdowns, %d fold wins)\n",
		len(results), time.Since(start).Round(time.Millisecond), c.Tables,
		showdowns, len(results)-showdowns)
	fmt.Printf("hero: %.3f bb/hand (95%% CI [%.3f, %.3f]), median %.2f, biggest pot %.1f bb\n",
		hero.Mean(), low, high, hero.Median(), hero.MaxPotBB)
	return nil
}

// playTable runs one room to completion: seat the players, then deal hands
// until the count is reached or too few players remain funded. Every seat
// plays a uniformly random legal action.
func (c *SimulateCmd) playTable(st *store.Store, stakes config.Table, policy config.Room, idx int, tracker *stats.Tracker, logger *log.Logger) error {
	rng := randutil.New(c.Seed + int64(idx)*7919)

	room := st.CreateRoom(fmt.Sprintf("table-%d", idx), stakes, policy)
	heroID := fmt.Sprintf("hero-%d", idx)
	if _, err := st.JoinRoom(room.ID, game.Player{ID: heroID, Name: "hero", Human: true}); err != nil {
		return err
	}
	for n := 1; n < c.Seats; n++ {
		p := game.Player{
			Name:    fmt.Sprintf("bot-%d", n),
			AgentID: fmt.Sprintf("random-%d", n),
		}
		if _, err := st.JoinRoom(room.ID, p); err != nil {
			return err
		}
	}

	for hand := 0; hand < c.Hands; hand++ {
		gs, err := st.CreateGame(room.ID)
		if errors.Is(err, game.ErrCannotStart) {
			logger.Debug("table done early", "table", idx, "hands", hand)
			return nil
		}
		if err != nil {
			return err
		}

		for gs.Phase != game.Finished {
			pid := gs.Players[gs.ActivePlayer].ID
			actions := gs.LegalActions(pid)
			if len(actions) == 0 {
				return fmt.Errorf("table %d: no legal actions for active seat", idx)
			}

			action := actions[rng.IntN(len(actions))]
			amount := 0
			if action == game.Raise {
				amount = gs.CurrentBet + gs.MinRaise
			}

			gs, err = st.ApplyAction(gs.ID, pid, action, amount)
			if err != nil {
				return fmt.Errorf("table %d: %s by %s: %w", idx, action, pid, err)
			}
		}

		result, ok := st.ResultFor(gs.ID)
		if !ok {
			return fmt.Errorf("table %d: no result for finished hand %s", idx, gs.ID)
		}
		if pr, ok := result.Players[heroID]; ok {
			tracker.Add(stats.HandOutcome{
				ProfitBB: float64(pr.Profit) / float64(stakes.BigBlind),
				PotBB:    float64(result.Pot) / float64(stakes.BigBlind),
				Showdown: result.WinningHand != nil,
				Won:      funk.ContainsString(result.Winners, heroID),
			})
		}
	}
	return nil
}

type RankCmd struct {
	Cards []string `arg:"" help:"Five to seven cards, e.g. As Kd Qh Jc Ts"`
}

func (c *RankCmd) Run(logger *log.Logger) error {
	cards := make([]deck.Card, 0, len(c.Cards))
	for _, s := range c.Cards {
		card, err := deck.Parse(s)
		if err != nil {
			return err
		}
		cards = append(cards, card)
	}

	rank, err := evaluator.Evaluate(cards)
	if err != nil {
		return err
	}

	best := make([]string, 0, len(rank.Cards))
	for _, card := range rank.Cards {
		best = append(best, card.String())
	}
	fmt.Printf("%s (%s)\n", rank.Category, strings.Join(best, " "))
	return nil
}
