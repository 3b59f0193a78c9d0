package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the complete engine configuration
type Config struct {
	Tables []Table `hcl:"table,block"`
	Room   *Room   `hcl:"room,block"`
}

// Table defines the stakes and seating for a table
type Table struct {
	Name          string `hcl:"name,label"`
	SmallBlind    int    `hcl:"small_blind"`
	BigBlind      int    `hcl:"big_blind"`
	StartingChips int    `hcl:"starting_chips,optional"`
	MinPlayers    int    `hcl:"min_players,optional"`
	MaxPlayers    int    `hcl:"max_players,optional"`
}

// Room defines the start policy for rooms: how many human-controlled and
// agent-controlled seats must be filled before a hand may begin.
type Room struct {
	MinHumans int `hcl:"min_humans,optional"`
	MinAgents int `hcl:"min_agents,optional"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Tables: []Table{
			{
				Name:          "main",
				SmallBlind:    10,
				BigBlind:      20,
				StartingChips: 1000,
				MinPlayers:    2,
				MaxPlayers:    8,
			},
		},
		Room: &Room{
			MinHumans: 1,
			MinAgents: 1,
		},
	}
}

// Load loads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	def := Default()
	if len(c.Tables) == 0 {
		c.Tables = def.Tables
	}
	for i := range c.Tables {
		if c.Tables[i].StartingChips == 0 {
			c.Tables[i].StartingChips = c.Tables[i].BigBlind * 50
		}
		if c.Tables[i].MinPlayers == 0 {
			c.Tables[i].MinPlayers = 2
		}
		if c.Tables[i].MaxPlayers == 0 {
			c.Tables[i].MaxPlayers = 8
		}
	}
	if c.Room == nil {
		c.Room = def.Room
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if len(c.Tables) == 0 {
		return fmt.Errorf("at least one table must be configured")
	}

	for _, table := range c.Tables {
		if table.SmallBlind <= 0 {
			return fmt.Errorf("table %s: small blind must be positive", table.Name)
		}
		if table.BigBlind <= table.SmallBlind {
			return fmt.Errorf("table %s: big blind must be greater than small blind", table.Name)
		}
		if table.StartingChips < table.BigBlind {
			return fmt.Errorf("table %s: starting chips must cover the big blind", table.Name)
		}
		if table.MinPlayers < 2 {
			return fmt.Errorf("table %s: min players must be at least 2", table.Name)
		}
		if table.MaxPlayers < table.MinPlayers || table.MaxPlayers > 8 {
			return fmt.Errorf("table %s: max players must be between %d and 8", table.Name, table.MinPlayers)
		}
	}

	if c.Room == nil {
		return fmt.Errorf("room policy block is required")
	}
	if c.Room.MinHumans < 0 || c.Room.MinAgents < 0 {
		return fmt.Errorf("room policy: minimums cannot be negative")
	}
	return nil
}

// TableByName returns a table configuration by name
func (c *Config) TableByName(name string) *Table {
	for i := range c.Tables {
		if c.Tables[i].Name == name {
			return &c.Tables[i]
		}
	}
	return nil
}
