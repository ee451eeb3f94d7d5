package tekhne

import (
	"errors"
	"strings"
	"testing"

	"github.com/boingboomtschak/tekhne/cuda"
	"github.com/boingboomtschak/tekhne/wgsl"
)

const saxpySource = `
__global__ void saxpy(int n, float a, float* x, float* y) {
    int i = threadIdx.x;
    if (i < n) {
        y[i] = a * x[i] + y[i];
    }
}
`

func TestTranslateSaxpy(t *testing.T) {
	out, info, err := Translate(saxpySource, wgsl.DefaultOptions())
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}

	for _, want := range []string{
		"@group(0) @binding(0) var<uniform> n : i32;",
		"@group(0) @binding(1) var<uniform> a : f32;",
		"@group(0) @binding(2) var<storage, read_write> x : array<f32>;",
		"@group(0) @binding(3) var<storage, read_write> y : array<f32>;",
		"@compute @workgroup_size(64, 1, 1)",
		"fn main(@builtin(local_invocation_id) threadIdx : vec3<u32>) {",
		"var i : i32 = threadIdx.x;",
		"y[i] = a * x[i] + y[i];",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output:\n%s", want, out)
		}
	}
	if len(info.Diagnostics) != 0 {
		t.Errorf("Expected full coverage, got diagnostics %v", info.Diagnostics)
	}
}

func TestParseReportsSyntaxError(t *testing.T) {
	_, err := Parse("__global__ void k(int* a) {\n  int i = ;\n}")
	if err == nil {
		t.Fatal("Expected parse error")
	}

	var se *cuda.SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("Expected *cuda.SyntaxError in chain, got %v", err)
	}
	if se.Token.Line != 2 {
		t.Errorf("Expected error at line 2, got line %d", se.Token.Line)
	}
	if se.Source == "" {
		t.Error("Expected source attached for context formatting")
	}
	if !strings.Contains(se.FormatWithContext(), "^") {
		t.Errorf("Expected caret in context display:\n%s", se.FormatWithContext())
	}
}

func TestTranslateFailsWithoutPartialOutput(t *testing.T) {
	out, info, err := Translate("__global__ void k(int* a) { a[0] = 1;", wgsl.DefaultOptions())
	if err == nil {
		t.Fatal("Expected error for unterminated kernel")
	}
	if out != "" {
		t.Errorf("Expected empty output on error, got %q", out)
	}
	if info != nil {
		t.Errorf("Expected nil info on error, got %v", info)
	}
}

func TestTranslateEmptySource(t *testing.T) {
	out, info, err := Translate("", wgsl.DefaultOptions())
	if err != nil {
		t.Fatalf("Translate failed on empty source: %v", err)
	}
	if out != "" {
		t.Errorf("Expected empty output for empty source, got %q", out)
	}
	if len(info.Diagnostics) != 0 {
		t.Errorf("Expected no diagnostics, got %v", info.Diagnostics)
	}
}

func TestGenerateSeparately(t *testing.T) {
	program, err := Parse(saxpySource)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(program.Kernels) != 1 {
		t.Fatalf("Expected 1 kernel, got %d", len(program.Kernels))
	}

	opts := wgsl.DefaultOptions()
	opts.EntryPoint = "saxpy_entry"
	out, _, err := Generate(program, opts)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !strings.Contains(out, "fn saxpy_entry(") {
		t.Errorf("Expected custom entry point:\n%s", out)
	}
}
