package catalog

import (
	"context"
	"encoding/json"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/charforge/charforge/internal/domain/rulebook"
	"github.com/charforge/charforge/internal/errors"
)

// Config holds what the fs-backed catalog needs
type Config struct {
	// FS is the root of the rule data tree (classes/, subclasses/,
	// spells/, spellSlots/, cantripsKnown/, infusions/, armor.json, ...)
	FS fs.FS
}

type fsCatalog struct {
	fsys fs.FS

	mu    sync.Mutex
	cache map[string][]byte
	group singleflight.Group
}

// New creates a Client reading JSON rule documents from the given fs.
// Documents are cached on first read; concurrent first reads of the
// same document are deduplicated.
func New(cfg *Config) (Client, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if cfg.FS == nil {
		return nil, errors.InvalidArgument("config.FS is required")
	}
	return &fsCatalog{
		fsys:  cfg.FS,
		cache: make(map[string][]byte),
	}, nil
}

// load reads and decodes one document, going through the cache and the
// singleflight group. Missing documents map to NotFound, bad JSON to
// Validation; callers decide whether either is fatal.
func (c *fsCatalog) load(ctx context.Context, name string, dest interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	data, ok := c.cache[name]
	c.mu.Unlock()

	if !ok {
		result, err, _ := c.group.Do(name, func() (interface{}, error) {
			raw, err := fs.ReadFile(c.fsys, name)
			if err != nil {
				return nil, errors.NotFoundf("catalog document %s", name)
			}
			c.mu.Lock()
			c.cache[name] = raw
			c.mu.Unlock()
			return raw, nil
		})
		if err != nil {
			return err
		}
		data = result.([]byte)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return errors.Validationf("malformed catalog document %s: %v", name, err)
	}
	return nil
}

func (c *fsCatalog) GetClass(ctx context.Context, id string) (*rulebook.Class, error) {
	var out rulebook.Class
	if err := c.load(ctx, path.Join("classes", id+".json"), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *fsCatalog) GetSubclass(ctx context.Context, source, id string) (*rulebook.Subclass, error) {
	var out rulebook.Subclass
	if err := c.load(ctx, path.Join("subclasses", source, id+".json"), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *fsCatalog) ListSubclasses(ctx context.Context, source string) ([]*rulebook.SubclassRef, error) {
	dir := path.Join("subclasses", source)
	entries, err := fs.ReadDir(c.fsys, dir)
	if err != nil {
		return nil, errors.NotFoundf("no subclasses for %s", source)
	}

	var refs []*rulebook.SubclassRef
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), ".json")
		sub, err := c.GetSubclass(ctx, source, id)
		if err != nil {
			return nil, err
		}
		refs = append(refs, &rulebook.SubclassRef{ID: sub.ID, Name: sub.Name})
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].ID < refs[j].ID })
	return refs, nil
}

func (c *fsCatalog) GetRace(ctx context.Context, id string) (*rulebook.Race, error) {
	var out rulebook.Race
	if err := c.load(ctx, path.Join("races", id+".json"), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *fsCatalog) GetBackground(ctx context.Context, id string) (*rulebook.Background, error) {
	var out rulebook.Background
	if err := c.load(ctx, path.Join("backgrounds", id+".json"), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *fsCatalog) GetSpellList(ctx context.Context, classID string) ([]*rulebook.Spell, error) {
	var out []*rulebook.Spell
	if err := c.load(ctx, path.Join("spells", classID+".json"), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *fsCatalog) GetSlotTable(ctx context.Context, classID string) (rulebook.SlotTable, error) {
	var out rulebook.SlotTable
	if err := c.load(ctx, path.Join("spellSlots", classID+".json"), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *fsCatalog) GetCantripsTable(ctx context.Context, classID string) (rulebook.CantripsTable, error) {
	var out rulebook.CantripsTable
	if err := c.load(ctx, path.Join("cantripsKnown", classID+".json"), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *fsCatalog) GetInfusions(ctx context.Context, classID string) ([]*rulebook.Infusion, error) {
	var out []*rulebook.Infusion
	if err := c.load(ctx, path.Join("infusions", classID+".json"), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *fsCatalog) GetInvocations(ctx context.Context) ([]*rulebook.Invocation, error) {
	var out []*rulebook.Invocation
	if err := c.load(ctx, "invocations.json", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *fsCatalog) GetPactBoons(ctx context.Context) ([]*rulebook.PactBoon, error) {
	var out []*rulebook.PactBoon
	if err := c.load(ctx, "pactBoons.json", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *fsCatalog) GetArmor(ctx context.Context) ([]*rulebook.Armor, error) {
	var out []*rulebook.Armor
	if err := c.load(ctx, "armor.json", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *fsCatalog) GetWeapons(ctx context.Context) ([]*rulebook.Weapon, error) {
	var out []*rulebook.Weapon
	if err := c.load(ctx, "weapons.json", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *fsCatalog) GetTools(ctx context.Context, category string) ([]string, error) {
	var all map[string][]string
	if err := c.load(ctx, "tools.json", &all); err != nil {
		return nil, err
	}
	if category == "" {
		var out []string
		for _, tools := range all {
			out = append(out, tools...)
		}
		sort.Strings(out)
		return out, nil
	}
	tools, ok := all[category]
	if !ok {
		return nil, errors.NotFoundf("no tool category %s", category)
	}
	return tools, nil
}

func (c *fsCatalog) GetLanguages(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.load(ctx, "languages.json", &out); err != nil {
		return nil, err
	}
	return out, nil
}
