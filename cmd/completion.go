package cmd

import (
	"flag"

	"github.com/etnz/statements/date"
	"github.com/etnz/statements/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// args predicts the arguments of the commands that take files.
var args = map[string]complete.Predictor{
	"import-csv":  predict.Files("*.csv"),
	"import-json": predict.Files("*.json"),
	"import-pdf":  predict.Files("*.txt"),
}

// Completion describes the command line of stmt for shell completion.
func Completion(global *flag.FlagSet) *complete.Command {
	c := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flags(global),
	}
	for _, e := range commands {
		fs := flag.NewFlagSet(e.cmd.Name(), flag.ContinueOnError)
		e.cmd.SetFlags(fs)
		sub := &complete.Command{Flags: flags(fs), Args: args[e.cmd.Name()]}
		if e.cmd.Name() == "topic" {
			names, _ := docs.All()
			sub.Args = predict.Set(append(names, "*"))
		}
		c.Sub[e.cmd.Name()] = sub
	}
	for _, name := range []string{"help", "flags", "commands"} {
		c.Sub[name] = &complete.Command{}
	}
	return c
}

// flags predicts the values of the flags of fs.
func flags(fs *flag.FlagSet) map[string]complete.Predictor {
	m := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			m[f.Name] = predict.Nothing
			return
		}
		switch f.Name {
		case "layout":
			m[f.Name] = predict.Files("*.yaml")
		case "securities":
			m[f.Name] = predict.Files("*.jsonl")
		case "html", "o":
			m[f.Name] = predict.Files("*")
		case "decimal":
			m[f.Name] = predict.Set{",", "."}
		case "extractor":
			m[f.Name] = predict.Set{"account", "portfolio"}
		case "date-pattern":
			var labels []string
			for _, p := range date.Patterns {
				labels = append(labels, p.Label)
			}
			m[f.Name] = predict.Set(labels)
		default:
			m[f.Name] = predict.Something
		}
	})
	return m
}
