package console

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ylikuutio/ylikuutio/internal/core/factory"
	"github.com/ylikuutio/ylikuutio/internal/core/ontology"
	"github.com/ylikuutio/ylikuutio/internal/core/world"
)

func builtinCommands() map[string]command {
	return map[string]command{
		"create": {
			usage:   "create <scene|material|object|camera> <name> [parent]",
			help:    "create an entity under a parent",
			minArgs: 2,
			maxArgs: 3,
			run:     (*Console).create,
		},
		"delete": {
			usage:   "delete <name>",
			help:    "destroy an entity and everything it owns",
			minArgs: 1,
			maxArgs: 1,
			run:     (*Console).delete,
		},
		"move": {
			usage:   "move <name> <parent>",
			help:    "rebind an entity under another parent",
			minArgs: 2,
			maxArgs: 2,
			run:     (*Console).move,
		},
		"info": {
			usage:   "info <name>",
			help:    "show where an entity lives",
			minArgs: 1,
			maxArgs: 1,
			run:     (*Console).info,
		},
		"ls": {
			usage:   "ls [name]",
			help:    "list children, or every registered name",
			minArgs: 0,
			maxArgs: 1,
			run:     (*Console).ls,
		},
		"complete": {
			usage:   "complete <prefix>",
			help:    "complete a registered name",
			minArgs: 0,
			maxArgs: 1,
			run:     (*Console).complete,
		},
		"stats": {
			usage:   "stats",
			help:    "show entity counts and allocator usage",
			minArgs: 0,
			maxArgs: 0,
			run:     (*Console).stats,
		},
		"run": {
			usage:   "run <file.lua>",
			help:    "run a Lua script",
			minArgs: 1,
			maxArgs: 1,
			run:     (*Console).runScript,
		},
		"history": {
			usage:   "history",
			help:    "show previous commands",
			minArgs: 0,
			maxArgs: 0,
			run:     (*Console).showHistory,
		},
		"help": {
			usage:   "help",
			help:    "list commands",
			minArgs: 0,
			maxArgs: 0,
			run:     (*Console).showHelp,
		},
		"quit": {
			usage:   "quit",
			help:    "leave the console",
			minArgs: 0,
			maxArgs: 0,
			run:     func(*Console, []string) error { return errQuit },
		},
	}
}

func (c *Console) create(args []string) error {
	parent := ""
	if len(args) == 3 {
		parent = args[2]
	}
	e, err := c.factory.Create(args[0], args[1], parent)
	if err != nil {
		return c.withSuggestion(err, parent)
	}
	c.printf("created %s %q (child %d)\n", args[0], e.GlobalName(), e.ChildID())
	return nil
}

func (c *Console) delete(args []string) error {
	if err := c.factory.Delete(args[0]); err != nil {
		return c.withSuggestion(err, args[0])
	}
	c.printf("deleted %q\n", args[0])
	return nil
}

func (c *Console) move(args []string) error {
	if err := c.factory.Move(args[0], args[1]); err != nil {
		return c.withSuggestion(err, args[0], args[1])
	}
	c.printf("moved %q under %q\n", args[0], args[1])
	return nil
}

func (c *Console) info(args []string) error {
	e, err := c.entity(args[0])
	if err != nil {
		return err
	}
	parent := "-"
	if p := e.Parent(); p != nil {
		parent = nameOf(p)
	}
	c.printf("%s %q\n  child id:    %d\n  parent:      %s\n  children:    %d\n  descendants: %d\n",
		factory.KindOf(e), args[0], e.ChildID(), parent, e.NumberOfChildren(), e.NumberOfDescendants())
	return nil
}

func (c *Console) ls(args []string) error {
	if len(args) == 0 {
		for _, name := range c.factory.Universe().Registry().Names() {
			c.printf("%s\n", name)
		}
		return nil
	}
	e, err := c.entity(args[0])
	if err != nil {
		return err
	}
	for _, module := range modulesOf(e) {
		module.Each(func(child ontology.Entity) bool {
			c.printf("%4d  %-9s %s\n", child.ChildID(), factory.KindOf(child), nameOf(child))
			return true
		})
	}
	return nil
}

func (c *Console) complete(args []string) error {
	prefix := ""
	if len(args) == 1 {
		prefix = args[0]
	}
	registry := c.factory.Universe().Registry()
	matches := registry.GetCompletions(prefix)
	if len(matches) == 0 {
		if s := suggest(prefix, registry.Names()); s != "" {
			c.printf("no match for %q, did you mean %q?\n", prefix, s)
			return nil
		}
		c.printf("no match for %q\n", prefix)
		return nil
	}
	c.printf("%s\n", registry.Complete(prefix))
	if len(matches) > 1 {
		c.printf("  %s\n", strings.Join(matches, "  "))
	}
	return nil
}

func (c *Console) stats(_ []string) error {
	u := c.factory.Universe()
	c.printf("scenes: %d  entities: %d  names: %d\n",
		u.NumberOfChildren(), u.NumberOfDescendants(), u.Registry().Len())
	for _, s := range u.Hub().Stats() {
		c.printf("  %-9s tag %016x  slabs %d  instances %d\n", s.Kind, uint64(s.Tag), s.Storages, s.Instances)
	}
	m := c.factory.Bus().GetMetrics()
	c.printf("events: published %d  handlers %d  errors %d\n", m.Published, m.DeliveredHandlers, m.Errors)
	return nil
}

func (c *Console) runScript(args []string) error {
	if c.scripts == nil {
		return fmt.Errorf("run: scripting is not enabled")
	}
	return c.scripts.DoFile(args[0])
}

func (c *Console) showHistory(_ []string) error {
	for i, line := range c.History() {
		c.printf("%4d  %s\n", i+1, line)
	}
	return nil
}

func (c *Console) showHelp(_ []string) error {
	for _, name := range c.commandNames() {
		cmd := c.commands[name]
		c.printf("  %-55s %s\n", cmd.usage, cmd.help)
	}
	return nil
}

func (c *Console) entity(name string) (ontology.Entity, error) {
	if e := c.factory.Universe().Lookup(name); e != nil {
		return e, nil
	}
	if name == world.KindUniverse {
		return c.factory.Universe(), nil
	}
	return nil, c.withSuggestion(fmt.Errorf("%w: %q", factory.ErrNotFound, name), name)
}

// withSuggestion appends the closest registered name to err for the first
// of names that is not registered.
func (c *Console) withSuggestion(err error, names ...string) error {
	registry := c.factory.Universe().Registry()
	for _, name := range names {
		if name == "" || registry.IsName(name) {
			continue
		}
		if s := suggest(name, registry.Names()); s != "" {
			return fmt.Errorf("%w (did you mean %q?)", err, s)
		}
	}
	return err
}

func modulesOf(e ontology.Entity) []*ontology.ParentModule {
	switch v := e.(type) {
	case *world.Universe:
		return []*ontology.ParentModule{v.Scenes().Module()}
	case *world.Scene:
		return []*ontology.ParentModule{v.Materials().Module(), v.Cameras()}
	case *world.Material:
		return []*ontology.ParentModule{v.Objects().Module()}
	default:
		return nil
	}
}

func nameOf(e ontology.Entity) string {
	if name := e.GlobalName(); name != "" {
		return name
	}
	if name := e.LocalName(); name != "" {
		return name
	}
	return "#" + strconv.Itoa(e.ChildID())
}
