package main

import (
	"fmt"
	"os"

	"mirava/internal/ui"
)

var version = "dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

// run dispatches one command and returns the process exit status.
func run(argv []string) int {
	cmd := "sync"
	var args []string
	if len(argv) >= 1 {
		cmd = argv[0]
		args = argv[1:]
	}
	// Bare flags belong to the default command: "mirava --dry-run".
	if isSyncFlag(cmd) {
		cmd, args = "sync", argv
	}

	var err error
	switch cmd {
	case "sync":
		err = cmdSync(args)
	case "set":
		err = cmdSet(args)
	case "mark":
		err = cmdMark(args)
	case "unmark":
		err = cmdUnmark(args)
	case "name":
		err = cmdName(args)
	case "log":
		err = cmdLog(args)
	case "version", "-v", "--version":
		fmt.Fprintf(ui.Out, "mirava %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		ui.Error("Unknown command: %s", cmd)
		printUsage()
		return 1
	}

	if err != nil {
		ui.Error("%v", err)
		return 1
	}
	return 0
}

func isSyncFlag(arg string) bool {
	return arg == "--dry-run" || arg == "-n" || arg == "--json"
}
