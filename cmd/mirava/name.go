package main

import (
	"fmt"
	"strings"
	"time"

	"mirava/internal/state"
	"mirava/internal/ui"
)

func cmdName(args []string) error {
	for _, a := range args {
		if a == "--help" || a == "-h" {
			fmt.Fprintln(ui.Out, "Usage: mirava name [new name]\n\nShow or change the course name. Without an argument you are prompted.")
			return nil
		}
	}

	start := time.Now()
	rt, err := loadRuntime()
	if err != nil {
		return err
	}

	newName, err := runName(rt.root, strings.Join(args, " "))
	rt.recordOp("name", start, map[string]any{"name": newName}, err)
	return err
}

// runName renames the course at root. An empty name prompts.
func runName(root, name string) (string, error) {
	c, err := state.Load(root)
	if err != nil {
		return "", err
	}

	if c.Name != "" {
		ui.Info("Current name: %s", c.Name)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = promptCourseName(root)
	}

	c.Name = name
	if err := state.Save(root, c); err != nil {
		return name, err
	}
	ui.Success("Course renamed to '%s'", name)
	return name, nil
}
