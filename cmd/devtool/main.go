package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Command is a devtool subcommand.
type Command interface {
	Name() string
	Description() string
	Run(args []string) error
}

var commands = []Command{
	&WaitForDBCommand{},
	&MigrateCommand{},
	&SeedCommand{},
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	name := os.Args[1]
	for _, cmd := range commands {
		if cmd.Name() == name {
			if err := cmd.Run(os.Args[2:]); err != nil {
				PrintError("%v", err)
				os.Exit(1)
			}
			return
		}
	}

	printUsage()
	os.Exit(1)
}

func printUsage() {
	fmt.Println("Usage: devtool <command> [args...]")
	fmt.Println("Commands:")
	for _, cmd := range commands {
		fmt.Printf("  %-12s %s\n", cmd.Name(), cmd.Description())
	}
}
