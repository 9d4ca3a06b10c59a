package cmds

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
)

func (p *Executor) PrintUsage(w io.Writer) {
	printCommands(w, p.commands, 0)
}

func printCommands(w io.Writer, commands map[string]*Command, depth int) {
	sorted := slices.Sorted(maps.Keys(commands))
	printed := make(map[*Command]bool)
	for _, name := range sorted {
		command := commands[name]
		if command == nil || printed[command] {
			continue
		}
		if strings.HasSuffix(name, ".") || strings.HasPrefix(name, "!") {
			// resetters of Var and Switch
			continue
		}
		printed[command] = true
		var names []string
		for _, alias := range sorted {
			if commands[alias] == command {
				names = append(names, alias)
			}
		}
		fmt.Fprintf(w, "%s%s\t%s\n",
			strings.Repeat("  ", depth),
			strings.Join(names, ", "),
			command.Description,
		)
		if len(command.Subs) > 0 {
			printCommands(w, command.Subs, depth+1)
		}
	}
}
