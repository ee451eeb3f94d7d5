// Package tekhne translates a restricted CUDA kernel subset into WGSL
// compute shaders.
//
// The pipeline has two stages:
//   - Parse: tokenize CUDA source and build an AST
//   - Generate: walk the AST and emit WGSL, remapping scalar types and
//     injecting @builtin entry-point parameters
//
// Example usage:
//
//	source := `
//	__global__ void saxpy(int n, float a, float* x, float* y) {
//	    int i = threadIdx.x;
//	    if (i < n) {
//	        y[i] = a * x[i] + y[i];
//	    }
//	}
//	`
//	out, info, err := tekhne.Translate(source, wgsl.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// For more control, use Parse and Generate separately; the AST can also
// be fed to the viz package for diagram export.
package tekhne

import (
	"errors"
	"fmt"

	"github.com/boingboomtschak/tekhne/cuda"
	"github.com/boingboomtschak/tekhne/wgsl"
)

// Parse parses CUDA kernel source code to an AST.
//
// Malformed input fails with a *cuda.SyntaxError carrying the offending
// token and its position; no partial AST is produced.
func Parse(source string) (*cuda.Program, error) {
	// Tokenize
	lexer := cuda.NewLexer(source)
	tokens, err := lexer.Tokenize()
	if err != nil {
		return nil, fmt.Errorf("tokenization error: %w", err)
	}

	// Parse to AST
	parser := cuda.NewParser(tokens)
	program, err := parser.Parse()
	if err != nil {
		// Attach the source so the error can render caret context.
		var se *cuda.SyntaxError
		if errors.As(err, &se) {
			se.Source = source
		}
		return nil, fmt.Errorf("parse error: %w", err)
	}

	return program, nil
}

// Generate emits WGSL source for a parsed program.
//
// Recoverable coverage gaps are reported through the returned *wgsl.Info
// and the configured logger rather than as errors.
func Generate(program *cuda.Program, opts wgsl.Options) (string, *wgsl.Info, error) {
	out, info, err := wgsl.Compile(program, opts)
	if err != nil {
		return "", nil, fmt.Errorf("generation error: %w", err)
	}
	return out, info, nil
}

// Translate parses CUDA source and generates WGSL in one step.
func Translate(source string, opts wgsl.Options) (string, *wgsl.Info, error) {
	program, err := Parse(source)
	if err != nil {
		return "", nil, err
	}
	return Generate(program, opts)
}
