// Command lang is the console driver: `lang [file]` runs a program the
// way spec.md §6.3 describes, plus a debug/dump mode grounded on
// cmd/ccompiler/main.go's stage-by-stage printing.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"toylang/pkg/pipeline"
	"toylang/pkg/rawkey"
)

func main() {
	args := os.Args[1:]
	if len(args) > 0 && strings.HasPrefix(args[0], "-dump-") {
		runDump(args[0], args[1:])
		return
	}
	os.Exit(run(args))
}

func run(args []string) int {
	src, err := loadSource(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	keys := rawkey.New(os.Stdin)
	return pipeline.Run(src, keys, nil, os.Stdin, os.Stdout)
}

// loadSource reads args[0] if present, otherwise stdin up to a line that
// is exactly "END" (spec.md §6.3).
func loadSource(args []string) (string, error) {
	if len(args) > 0 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	var sb strings.Builder
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "END" {
			break
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func runDump(flag string, rest []string) {
	if len(rest) < 1 {
		fmt.Fprintf(os.Stderr, "usage: lang %s file.txt\n", flag)
		os.Exit(1)
	}
	data, err := os.ReadFile(rest[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	src := string(data)

	switch flag {
	case "-dump-tokens":
		toks := pipeline.Tokens(src)
		fmt.Printf("Tokens (%d)\n", len(toks))
		for _, tok := range toks {
			fmt.Println(" ", tok)
		}

	case "-dump-ast":
		prog, sink, err := pipeline.Compile(src)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
		fmt.Println("AST")
		for _, fn := range prog.Functions {
			fmt.Println(" ", fn)
		}
		if sink.HasErrors() {
			fmt.Println()
			sink.PrintAll()
		}

	case "-dump-ir":
		prog, sink, err := pipeline.Compile(src)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
		irProg := pipeline.Generate(prog)
		for _, fn := range irProg.Functions {
			fmt.Printf("func %s\n", fn.Name)
			for _, in := range fn.Instructions {
				fmt.Println(" ", in)
			}
		}
		if sink.HasErrors() {
			fmt.Println()
			sink.PrintAll()
		}

	default:
		fmt.Fprintf(os.Stderr, "unknown flag %s\n", flag)
		os.Exit(1)
	}
}
