// Command jsonype checks a JSON document against a type expression and
// prints the normalized document on success.
//
//	jsonype -t 'list[union[int,str]]' data.json
//	echo '{"a": 1}' | jsonype -t 'map[str,int]'
//
// The document is decoded against the type with the jsonype converter
// chain and re-encoded, so the output only contains what the type
// declares (unknown record keys are dropped unless --strict).
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/davecgh/go-spew/spew"
	"github.com/volkerstampa/jsonype"
	"github.com/volkerstampa/jsonype/internal/typeexpr"
)

// CLI defines the command-line interface
var CLI struct {
	Input   string `help:"Path to input JSON file. If not specified, reads from stdin." arg:"" optional:"" type:"path"`
	Type    string `help:"Type expression to check against, e.g. 'map[str,list[int]]'." short:"t" default:"any"`
	Strict  bool   `help:"Fail on JSON object keys not declared on the target type." short:"s"`
	Compact bool   `help:"Print the normalized JSON without indentation." short:"c"`
	Debug   bool   `help:"Dump the parsed type descriptor to stderr." short:"d"`
	Version bool   `help:"Show version information." short:"v"`
}

const version = "0.1.0"

func main() {
	parser := kong.Must(&CLI,
		kong.Name("jsonype"),
		kong.Description("Check a JSON document against a type expression"),
		kong.UsageOnError(),
	)
	if _, err := parser.Parse(os.Args[1:]); err != nil {
		os.Exit(1)
	}
	if CLI.Version {
		fmt.Printf("jsonype version %s\n", version)
		return
	}

	input := os.Stdin
	if CLI.Input != "" {
		file, err := os.Open(CLI.Input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "jsonype: %v\n", err)
			os.Exit(1)
		}
		defer file.Close()
		input = file
	}

	if err := run(input, os.Stdout, CLI.Type, CLI.Strict, CLI.Compact, CLI.Debug); err != nil {
		fmt.Fprintf(os.Stderr, "jsonype: %v\n", err)
		os.Exit(1)
	}
}

// run parses the document and the type expression, decodes the one
// against the other and writes the re-encoded result to w.
func run(r io.Reader, w io.Writer, typeExpr string, strict, compact, debug bool) error {
	target, err := typeexpr.Parse(typeExpr)
	if err != nil {
		return err
	}
	if debug {
		spew.Fdump(os.Stderr, target)
	}

	decoder := json.NewDecoder(r)
	decoder.UseNumber() // keep int/float distinction intact
	var js jsonype.Value
	if err := decoder.Decode(&js); err != nil {
		return fmt.Errorf("invalid JSON input: %w", err)
	}

	tj := jsonype.Default()
	if strict {
		tj = jsonype.DefaultStrict()
	}
	typed, err := tj.FromJSON(js, target)
	if err != nil {
		return err
	}
	normalized, err := tj.ToJSON(typed)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	if !compact {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(normalized)
}
