package wgsl

import (
	"strings"
	"testing"

	"github.com/boingboomtschak/tekhne/cuda"
)

func compileSource(t *testing.T, source string, opts Options) (string, *Info) {
	t.Helper()

	tokens, err := cuda.NewLexer(source).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	prog, err := cuda.NewParser(tokens).Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	out, info, err := Compile(prog, opts)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	return out, info
}

func TestCompileSingleKernel(t *testing.T) {
	out, info := compileSource(t,
		"__global__ void k(int* a) { int i = threadIdx.x; a[i] += 1; }",
		DefaultOptions())

	want := `@group(0) @binding(0) var<storage, read_write> a : array<i32>;

@compute @workgroup_size(64, 1, 1)
fn main(@builtin(local_invocation_id) threadIdx : vec3<u32>) {
    var i : i32 = threadIdx.x;
    a[i] += 1;
}
`
	if out != want {
		t.Errorf("Output mismatch.\nGot:\n%s\nWant:\n%s", out, want)
	}
	if len(info.Diagnostics) != 0 {
		t.Errorf("Expected no diagnostics, got %v", info.Diagnostics)
	}
}

func TestCompileTypeRemapping(t *testing.T) {
	out, _ := compileSource(t,
		"__global__ void k(int* a, uint* b, float* c) { bool f = true; }",
		DefaultOptions())

	for _, want := range []string{"array<i32>", "array<u32>", "array<f32>", "var f : bool = true;"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output:\n%s", want, out)
		}
	}
}

func TestCompileUnknownTypePassesThrough(t *testing.T) {
	out, _ := compileSource(t,
		"__global__ void k(double* d) { double x = 0.5; }",
		DefaultOptions())

	if !strings.Contains(out, "array<double>") {
		t.Errorf("Expected unmapped type to pass through:\n%s", out)
	}
	if !strings.Contains(out, "var x : double = 0.5;") {
		t.Errorf("Expected double declaration unchanged:\n%s", out)
	}
}

func TestCompileBindings(t *testing.T) {
	out, _ := compileSource(t,
		"__global__ void k(float* x, float a, int n) {}",
		DefaultOptions())

	wantLines := []string{
		"@group(0) @binding(0) var<storage, read_write> x : array<f32>;",
		"@group(0) @binding(1) var<uniform> a : f32;",
		"@group(0) @binding(2) var<uniform> n : i32;",
	}
	for _, line := range wantLines {
		if !strings.Contains(out, line) {
			t.Errorf("Expected binding line %q in output:\n%s", line, out)
		}
	}
}

func TestCompileAssignmentOperators(t *testing.T) {
	out, _ := compileSource(t, `
__global__ void k(int* a) {
    a[0] = 1;
    a[1] += 2;
    a[2] -= 3;
    a[3] *= 4;
    a[4] /= 5;
    a[5] = -6;
}`, DefaultOptions())

	for _, want := range []string{
		"a[0] = 1;", "a[1] += 2;", "a[2] -= 3;", "a[3] *= 4;", "a[4] /= 5;",
		"a[5] = -6;",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output:\n%s", want, out)
		}
	}
}

func TestCompileParenthesesRoundTrip(t *testing.T) {
	out, _ := compileSource(t, `
__global__ void k(int a, int b, int c, int* r) {
    r[0] = (a + b) * c;
    r[1] = a + b * c;
}`, DefaultOptions())

	if !strings.Contains(out, "r[0] = (a + b) * c;") {
		t.Errorf("Expected source parentheses preserved:\n%s", out)
	}
	if !strings.Contains(out, "r[1] = a + b * c;") {
		t.Errorf("Expected no invented parentheses:\n%s", out)
	}
}

func TestCompileElseIfChain(t *testing.T) {
	out, _ := compileSource(t, `
__global__ void k(int* a, int n) {
    if (n < 1) { a[0] = 1; }
    else if (n < 2) { a[0] = 2; }
    else { a[0] = 3; }
}`, DefaultOptions())

	want := `    if (n < 1) {
        a[0] = 1;
    } else if (n < 2) {
        a[0] = 2;
    } else {
        a[0] = 3;
    }
`
	if !strings.Contains(out, want) {
		t.Errorf("Expected flattened else-if chain:\n%s", out)
	}
}

func TestCompileUnbracedBody(t *testing.T) {
	out, _ := compileSource(t, `
__global__ void k(int* a, int n) {
    int i = 0;
    while (i < n)
        i += 1;
    a[0] = i;
}`, DefaultOptions())

	want := `    while (i < n)
        i += 1;
    a[0] = i;
`
	if !strings.Contains(out, want) {
		t.Errorf("Expected unbraced body one level deeper:\n%s", out)
	}
}

func TestCompileForLoop(t *testing.T) {
	out, _ := compileSource(t, `
__global__ void k(int* a, int n) {
    for (int i = 0; i < n; i++) {
        a[i] = i;
    }
}`, DefaultOptions())

	want := `    for (var i : i32 = 0; i < n; i++) {
        a[i] = i;
    }
`
	if !strings.Contains(out, want) {
		t.Errorf("Expected for loop rendering:\n%s", out)
	}
}

func TestCompileBuiltinInjectionOrder(t *testing.T) {
	out, _ := compileSource(t, `
__global__ void k(int* a) {
    a[0] = gridDim.x;
    a[1] = threadIdx.x;
}`, DefaultOptions())

	want := "fn main(@builtin(local_invocation_id) threadIdx : vec3<u32>, " +
		"@builtin(num_workgroups) gridDim : vec3<u32>) {"
	if !strings.Contains(out, want) {
		t.Errorf("Expected builtins injected in table order:\n%s", out)
	}
	if strings.Contains(out, "workgroup_id") {
		t.Errorf("blockIdx not referenced; should not be injected:\n%s", out)
	}
}

func TestCompileNoBuiltins(t *testing.T) {
	out, info := compileSource(t,
		"__global__ void k(int* a) { a[0] = 1; }",
		DefaultOptions())

	if !strings.Contains(out, "fn main() {") {
		t.Errorf("Expected empty parameter list:\n%s", out)
	}
	if len(info.Diagnostics) != 0 {
		t.Errorf("Expected no diagnostics, got %v", info.Diagnostics)
	}
}

func TestCompileBlockDimUnresolved(t *testing.T) {
	out, info := compileSource(t,
		"__global__ void k(int* a) { a[0] = blockDim.x; }",
		DefaultOptions())

	if strings.Contains(out, "@builtin") {
		t.Errorf("blockDim must not inject a builtin parameter:\n%s", out)
	}
	if len(info.Diagnostics) != 1 {
		t.Fatalf("Expected 1 diagnostic, got %d", len(info.Diagnostics))
	}
	if info.Diagnostics[0].Kind != DiagUnresolved {
		t.Errorf("Expected DiagUnresolved, got %v", info.Diagnostics[0].Kind)
	}
	if info.Degraded() {
		t.Error("Unresolved mapping must not report as degraded output")
	}
	// The body reference still renders; resolution is the caller's problem.
	if !strings.Contains(out, "a[0] = blockDim.x;") {
		t.Errorf("Expected body reference preserved:\n%s", out)
	}
}

func TestCompileSharedHoisting(t *testing.T) {
	out, info := compileSource(t, `
__global__ void k(float* x) {
    __shared__ float tile[256];
    tile[threadIdx.x] = x[threadIdx.x];
}`, DefaultOptions())

	if !strings.Contains(out, "var<workgroup> tile : array<f32, 256>;") {
		t.Errorf("Expected hoisted workgroup variable:\n%s", out)
	}
	hoist := strings.Index(out, "var<workgroup>")
	entry := strings.Index(out, "@compute")
	if hoist > entry {
		t.Error("Workgroup variable must precede the entry point")
	}
	body := out[strings.Index(out, "fn main"):]
	if strings.Contains(body, "var tile") {
		t.Errorf("Hoisted declaration must emit nothing in the body:\n%s", body)
	}
	if len(info.Diagnostics) != 0 {
		t.Errorf("Expected no diagnostics, got %v", info.Diagnostics)
	}
}

func TestCompileSharedInitializerUnresolved(t *testing.T) {
	_, info := compileSource(t, `
__global__ void k(int* a) {
    __shared__ int flag = 0;
    a[0] = flag;
}`, DefaultOptions())

	if len(info.Diagnostics) != 1 || info.Diagnostics[0].Kind != DiagUnresolved {
		t.Errorf("Expected one unresolved diagnostic, got %v", info.Diagnostics)
	}
}

func TestCompileMultiNameDeclaration(t *testing.T) {
	out, _ := compileSource(t,
		"__global__ void k(int* a) { float u, v; }",
		DefaultOptions())

	if !strings.Contains(out, "var u : f32;\n") || !strings.Contains(out, "var v : f32;\n") {
		t.Errorf("Expected one var statement per name:\n%s", out)
	}
}

func TestCompileMultipleKernels(t *testing.T) {
	out, _ := compileSource(t, `
__global__ void first(int* a) { a[threadIdx.x] = 0; }
__global__ void second(int* b) { b[0] = 1; }
`, DefaultOptions())

	if !strings.Contains(out, "fn main_first(@builtin(local_invocation_id) threadIdx : vec3<u32>) {") {
		t.Errorf("Expected suffixed entry with builtin for first kernel:\n%s", out)
	}
	if !strings.Contains(out, "fn main_second() {") {
		t.Errorf("Builtin state leaked into second kernel:\n%s", out)
	}
	if strings.Count(out, "@binding(0)") != 2 {
		t.Errorf("Expected binding slots to restart per kernel:\n%s", out)
	}
	if !strings.Contains(out, "}\n\n@group") {
		t.Errorf("Expected a blank line between kernels:\n%s", out)
	}
}

func TestCompileDeterministic(t *testing.T) {
	source := `
__global__ void k(int* a, int n) {
    for (int i = 0; i < n; i++) {
        if (a[i] > 0) { a[i] = gridDim.x; }
        else { a[i] = threadIdx.x; }
    }
}`
	first, _ := compileSource(t, source, DefaultOptions())
	second, _ := compileSource(t, source, DefaultOptions())
	if first != second {
		t.Error("Expected byte-identical output across runs")
	}
}

func TestCompileCustomOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.EntryPoint = "kmain"
	opts.WorkgroupSize = [3]uint32{8, 8, 1}
	opts.IndentUnit = "\t"

	out, _ := compileSource(t,
		"__global__ void k(int* a) { a[0] = 1; }", opts)

	if !strings.Contains(out, "@compute @workgroup_size(8, 8, 1)") {
		t.Errorf("Expected custom workgroup size:\n%s", out)
	}
	if !strings.Contains(out, "fn kmain() {") {
		t.Errorf("Expected custom entry point:\n%s", out)
	}
	if !strings.Contains(out, "\ta[0] = 1;") {
		t.Errorf("Expected tab indentation:\n%s", out)
	}
}

func TestCompileZeroOptionsFilled(t *testing.T) {
	source := "__global__ void k(int* a) { a[0] = 1; }"
	def, _ := compileSource(t, source, DefaultOptions())
	zero, _ := compileSource(t, source, Options{})
	if def != zero {
		t.Error("Zero options should fill to defaults")
	}
}

func TestCompileNilProgram(t *testing.T) {
	if _, _, err := Compile(nil, DefaultOptions()); err == nil {
		t.Error("Expected error for nil program")
	}
}

func TestCompileIndentationBalanced(t *testing.T) {
	out, _ := compileSource(t, `
__global__ void k(int* a, int n) {
    for (int i = 0; i < n; i++) {
        while (a[i] < n) {
            if (a[i] > 0) { a[i] += 1; }
        }
    }
}`, DefaultOptions())

	for _, line := range strings.Split(out, "\n") {
		trimmed := strings.TrimLeft(line, " ")
		lead := len(line) - len(trimmed)
		if lead%4 != 0 {
			t.Errorf("Line %q has indentation %d, not a multiple of 4", line, lead)
		}
	}
	if !strings.HasSuffix(out, "\n}\n") {
		t.Errorf("Expected closing brace at depth zero:\n%s", out)
	}
}
