// Command stmt extracts ledger items from bank and broker statements.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/statements/cmd"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/posener/complete/v2"
)

func main() {
	// layout overrides may come from a .env file of the working directory
	_ = godotenv.Load()

	complete.Complete("stmt", cmd.Completion(flag.CommandLine))

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
