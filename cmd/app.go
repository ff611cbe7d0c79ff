// Package cmd implements the subcommands of stmt, the statement importer.
package cmd

import (
	"flag"
	"os"
	"time"

	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// Verbose raises the log level to debug: bindings, blocks, created
// securities and rejected records.
var Verbose = flag.Bool("v", false, "log the details of extractions on stderr")

// commands lists the subcommands with their help group.
var commands = []struct {
	group string
	cmd   subcommands.Command
}{
	{"import", &importCSVCmd{}},
	{"import", &importPDFCmd{}},
	{"import", &importJSONCmd{}},
	{"reference", &fieldsCmd{}},
	{"reference", &parseNumberCmd{}},
	{"reference", &topicCmd{}},
}

// Register registers the subcommands and the help commands on c.
func Register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(c.CommandsCommand(), "")
	for _, e := range commands {
		c.Register(e.cmd, e.group)
	}
}

// newLogger returns the logger of a command, writing human readable lines on stderr.
func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if *Verbose {
		level = zerolog.DebugLevel
	}
	w := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
