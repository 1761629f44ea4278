package quest

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"etherpets/internal/domain/pet"
)

//go:embed catalog.toml
var catalogTOML []byte

type Period string

const (
	PeriodDaily  Period = "daily"
	PeriodWeekly Period = "weekly"
)

type Objective struct {
	EventType pet.EventType `toml:"event_type" json:"type"`
	Target    int           `toml:"target" json:"target"`
}

type Reward struct {
	Experience int `toml:"experience" json:"experience"`
	Coins      int `toml:"coins" json:"coins"`
}

type Definition struct {
	ID          string    `toml:"id" json:"id"`
	Name        string    `toml:"name" json:"name"`
	Description string    `toml:"description" json:"description"`
	Period      Period    `toml:"period" json:"period"`
	Objective   Objective `toml:"objective" json:"objective"`
	Reward      Reward    `toml:"reward" json:"reward"`
}

type Catalog struct {
	defs []Definition
	byID map[string]Definition
}

func ParseCatalog(data []byte) (Catalog, error) {
	var doc struct {
		Quests []Definition `toml:"quests"`
	}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return Catalog{}, fmt.Errorf("parse quest catalog: %w", err)
	}
	if len(doc.Quests) == 0 {
		return Catalog{}, errors.New("quest catalog is empty")
	}

	c := Catalog{defs: doc.Quests, byID: make(map[string]Definition, len(doc.Quests))}
	for _, d := range doc.Quests {
		if d.ID == "" {
			return Catalog{}, errors.New("quest without id")
		}
		if _, dup := c.byID[d.ID]; dup {
			return Catalog{}, fmt.Errorf("duplicate quest id %q", d.ID)
		}
		if d.Period != PeriodDaily && d.Period != PeriodWeekly {
			return Catalog{}, fmt.Errorf("quest %q: unknown period %q", d.ID, d.Period)
		}
		if d.Objective.Target <= 0 || d.Objective.EventType == "" {
			return Catalog{}, fmt.Errorf("quest %q: invalid objective", d.ID)
		}
		c.byID[d.ID] = d
	}
	return c, nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog Catalog
)

func DefaultCatalog() Catalog {
	defaultOnce.Do(func() {
		c, err := ParseCatalog(catalogTOML)
		if err != nil {
			panic(err)
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

func (c Catalog) All() []Definition {
	out := make([]Definition, len(c.defs))
	copy(out, c.defs)
	return out
}

func (c Catalog) Get(id string) (Definition, bool) {
	d, ok := c.byID[id]
	return d, ok
}
