package schema

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// yamlSchema is the YAML document shape a schema can be loaded from:
//
//	driver: postgres
//	graph_to_sql:
//	  person/name: member/name
//	pks:
//	  account: id
//	joins:
//	  account/members:
//	    path: [account/id, member/account_id]
//	  account/settings:
//	    path: [account/settings_id, settings/id]
//	    arity: to-one
//	  invoice/items:
//	    path: [invoice/id, invoice_items/invoice_id, invoice_items/item_id, item/id]
type yamlSchema struct {
	Driver     string            `yaml:"driver"`
	GraphToSQL map[Prop]Prop     `yaml:"graph_to_sql"`
	PKs        map[string]string `yaml:"pks"`
	Joins      map[Prop]yamlJoin `yaml:"joins"`
}

type yamlJoin struct {
	Path  []Prop `yaml:"path"`
	Arity string `yaml:"arity"`
}

// Parse builds a schema from a YAML document.
func Parse(data []byte) (*Schema, error) {
	var doc yamlSchema
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("schema: parse yaml: %w", err)
	}
	cfg := Config{
		Driver:     doc.Driver,
		GraphToSQL: doc.GraphToSQL,
		PKs:        doc.PKs,
		Joins:      make(map[Prop]Join, len(doc.Joins)),
	}
	// YAML omits empty maps; a declared-but-empty section decodes to nil.
	// Loading from a file counts as declaring all three sections.
	if cfg.GraphToSQL == nil {
		cfg.GraphToSQL = map[Prop]Prop{}
	}
	if cfg.PKs == nil {
		cfg.PKs = map[string]string{}
	}
	for jp, yj := range doc.Joins {
		j := Join{Path: yj.Path}
		switch yj.Arity {
		case "", "to-many":
			j.Arity = ToMany
		case "to-one":
			j.Arity = ToOne
		default:
			return nil, &ValidationError{
				Part:    "joins",
				Message: fmt.Sprintf("join %q has unknown arity %q", jp, yj.Arity),
			}
		}
		cfg.Joins[jp] = j
	}
	return New(cfg)
}

// Load reads and parses a schema YAML file.
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schema: load %s: %w", path, err)
	}
	return Parse(data)
}

// Watch reloads the schema file whenever it changes and hands the new
// schema to onChange. Parse failures are logged and the previous schema
// stays in effect. The returned stop function releases the watcher.
//
// The engine itself never mutates a schema; Watch is a development
// convenience for swapping the schema value between calls.
func Watch(path string, onChange func(*Schema)) (stop func() error, err error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory rather than the file: editors replace files on
	// save, which drops a file-level watch.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, err
	}
	target := filepath.Clean(path)
	go func() {
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				s, err := Load(path)
				if err != nil {
					slog.Warn("schema reload failed", "path", path, "err", err)
					continue
				}
				onChange(s)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Warn("schema watcher error", "path", path, "err", err)
			}
		}
	}()
	return watcher.Close, nil
}
