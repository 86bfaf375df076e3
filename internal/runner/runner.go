package runner

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"ippvm/pkg/color"
	"ippvm/pkg/interpreter"
	"ippvm/pkg/loader"
	"ippvm/pkg/parser"
	"ippvm/pkg/program"
)

type Runner struct {
	SourceFile string // Path to the program, stdin when empty
	InputFile  string // Path to the READ input, stdin when empty
	Verbose    bool   // Print the program listing before running
	MaxSteps   int    // Step limit, 0 for unlimited

	Stdin  io.Reader // defaults to os.Stdin
	Stdout io.Writer // defaults to os.Stdout
	Stderr io.Writer // defaults to os.Stderr
}

// ExitCode maps an error to the process exit code. Errors that do not carry
// a code are internal errors.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var coded interface{ ExitCode() int }
	if errors.As(err, &coded) {
		return coded.ExitCode()
	}

	return interpreter.InternalError.ExitCode()
}

func (r *Runner) defaults() {
	if r.Stdin == nil {
		r.Stdin = os.Stdin
	}
	if r.Stdout == nil {
		r.Stdout = os.Stdout
	}
	if r.Stderr == nil {
		r.Stderr = os.Stderr
	}
}

// Load reads the program from XML or from source text starting with the .IPPcode23 header
func (r *Runner) Load() (program.Program, error) {
	r.defaults()

	data, err := r.readSource()
	if err != nil {
		return nil, err
	}

	if !parser.HasHeader(string(data)) {
		prog, err := loader.Load(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		log.Info("Program loaded", "format", "xml", "instructions", len(prog))
		return prog, nil
	}

	prog, err := parser.Parse(string(data))
	if err != nil {
		return nil, err
	}
	if err := program.Validate(prog); err != nil {
		return nil, err
	}

	log.Info("Program loaded", "format", "text", "instructions", len(prog))
	return prog, nil
}

// Run loads and executes the program, returning the process exit code
func (r *Runner) Run() (int, error) {
	prog, err := r.Load()
	if err != nil {
		return ExitCode(err), err
	}

	if r.Verbose {
		r.printListing(prog)
	}

	out := bufio.NewWriter(r.Stdout)
	defer out.Flush()

	opts, err := r.inputOption(out)
	if err != nil {
		return ExitCode(err), err
	}

	it, err := interpreter.NewInterpreter(prog,
		opts,
		interpreter.WithWriter(out),
		interpreter.WithErrWriter(flushFirst{w: r.Stderr, out: out}),
		interpreter.WithMaxSteps(r.MaxSteps),
		interpreter.WithColor(color.IsColorEnabled()),
	)
	if err != nil {
		return ExitCode(err), err
	}
	log.Debug("Labels indexed", "count", it.Labels())

	err = it.Run()
	if ferr := out.Flush(); ferr != nil && err == nil {
		err = fmt.Errorf("flushing output: %w", ferr)
	}

	log.Debug("Program finished", "steps", it.Steps(), "exit", it.ExitCode())

	if err != nil {
		return ExitCode(err), err
	}
	return it.ExitCode(), nil
}

// Assemble converts IPPcode23 source text to its XML representation
func (r *Runner) Assemble() error {
	r.defaults()

	data, err := r.readSource()
	if err != nil {
		return err
	}

	prog, err := parser.Parse(string(data))
	if err != nil {
		return err
	}

	out := bufio.NewWriter(r.Stdout)
	if err := loader.Encode(out, prog); err != nil {
		return err
	}
	return out.Flush()
}

// Dump writes the loaded program as YAML
func (r *Runner) Dump() error {
	prog, err := r.Load()
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(r.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(prog); err != nil {
		return err
	}
	return enc.Close()
}

func (r *Runner) readSource() ([]byte, error) {
	if r.SourceFile == "" {
		data, err := io.ReadAll(r.Stdin)
		if err != nil {
			return nil, program.Errorf(program.ExitOpenInput, 0, "cannot read source from stdin: %v", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(r.SourceFile)
	if err != nil {
		return nil, program.Errorf(program.ExitOpenInput, 0, "cannot read source %s: %v", r.SourceFile, err)
	}
	return data, nil
}

// inputOption picks the READ source. Interactive input flushes out before
// every line so prompts written by the program are visible.
func (r *Runner) inputOption(out *bufio.Writer) (interpreter.Option, error) {
	if r.InputFile == "" {
		return interpreter.WithInput(flushingReader{in: interpreter.NewScannerReader(r.Stdin), out: out}), nil
	}

	lines, err := loader.ReadLinesFile(r.InputFile)
	if err != nil {
		return nil, err
	}
	return interpreter.WithInputLines(lines), nil
}

type flushingReader struct {
	in  interpreter.LineReader
	out *bufio.Writer
}

func (f flushingReader) ReadLine() (string, error) {
	if err := f.out.Flush(); err != nil {
		return "", fmt.Errorf("flushing output: %w", err)
	}
	return f.in.ReadLine()
}

// flushFirst keeps diagnostics ordered after the buffered program output
type flushFirst struct {
	w   io.Writer
	out *bufio.Writer
}

func (f flushFirst) Write(p []byte) (int, error) {
	if err := f.out.Flush(); err != nil {
		return 0, err
	}
	return f.w.Write(p)
}

// printListing prints the numbered instruction listing to stderr
func (r *Runner) printListing(prog program.Program) {
	fmt.Fprintln(r.Stderr, color.GreenText("=== Program ==="))
	if len(prog) == 0 {
		fmt.Fprintln(r.Stderr, color.GrayText("No instructions."))
		return
	}

	for i, ins := range prog {
		args := ""
		for _, a := range ins.Args {
			args += " " + color.BlueText(a.String())
		}
		fmt.Fprintf(r.Stderr, "%s: %s%s %s\n",
			color.CyanText(fmt.Sprintf("%3d", i)),
			color.YellowText(string(ins.Op)),
			args,
			color.GrayText(fmt.Sprintf("(order %d)", ins.Order)))
	}
}
