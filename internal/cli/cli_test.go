package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/idilsaglam/items/internal/console"
	"github.com/idilsaglam/items/internal/itemstest"
	"github.com/idilsaglam/items/internal/model"
	"github.com/idilsaglam/items/internal/ui"
)

type result struct {
	code   int
	out    string
	errOut string
}

// isolate points HOME at a temp dir so no real config or credentials leak in.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("ITEMS_API_URL", "")
	t.Setenv("ITEMS_HOST", "")
	t.Setenv("ITEMS_TOKEN", "")
	t.Cleanup(func() { ui.SetOutput(os.Stdout, os.Stderr) })
	return home
}

func runCLI(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var out, errOut bytes.Buffer
	code := run(context.Background(), args, strings.NewReader(stdin), &out, &errOut)
	return result{code: code, out: out.String(), errOut: errOut.String()}
}

func TestList(t *testing.T) {
	isolate(t)
	srv := itemstest.NewServer(t,
		model.Item{ID: 1, Name: "Pen", Quantity: 2},
		model.Item{ID: 2, Name: "Marker", Quantity: 3},
	)

	r := runCLI(t, "", "--api-url", srv.URL, "ls")
	if r.code != 0 {
		t.Fatalf("code = %d, stderr = %s", r.code, r.errOut)
	}
	if !strings.Contains(r.out, "Items loaded") {
		t.Fatalf("stdout = %s", r.out)
	}
	pen, marker := strings.Index(r.out, "Pen"), strings.Index(r.out, "Marker")
	if pen < 0 || marker < 0 || pen > marker {
		t.Fatalf("rows missing or out of order: %s", r.out)
	}
}

func TestAddUpdateRemove(t *testing.T) {
	isolate(t)
	srv := itemstest.NewServer(t)

	if r := runCLI(t, "", "--api-url", srv.URL, "add", "Marker", "3"); r.code != 0 || !strings.Contains(r.out, "Item added") {
		t.Fatalf("add: %+v", r)
	}
	id := srv.Items()[0].ID

	r := runCLI(t, "", "--api-url", srv.URL, "update", strconv.Itoa(id), "Updated Marker", "6")
	if r.code != 0 || !strings.Contains(r.out, "Item updated") {
		t.Fatalf("update: %+v", r)
	}
	if got := srv.Items()[0]; got.Name != "Updated Marker" || got.Quantity != 6 {
		t.Fatalf("server item = %+v", got)
	}

	if r := runCLI(t, "", "--api-url", srv.URL, "rm", strconv.Itoa(id)); r.code != 0 || !strings.Contains(r.out, "Item deleted") {
		t.Fatalf("rm: %+v", r)
	}
	r = runCLI(t, "", "--api-url", srv.URL, "rm", strconv.Itoa(id))
	if r.code != 1 || !strings.Contains(r.errOut, "Item not found") {
		t.Fatalf("second rm: %+v", r)
	}
}

func TestAdd_InvalidInputSendsNothing(t *testing.T) {
	isolate(t)
	srv := itemstest.NewServer(t)

	r := runCLI(t, "", "--api-url", srv.URL, "add", " ", "abc")
	if r.code != 1 || !strings.Contains(r.errOut, console.MsgRequired) {
		t.Fatalf("add: %+v", r)
	}
	if srv.Requests() != 0 {
		t.Fatalf("requests = %d", srv.Requests())
	}
}

func TestUsageErrors(t *testing.T) {
	isolate(t)
	cases := [][]string{
		{"add", "Marker"},
		{"rm", "seven"},
		{"update", "1", "x"},
		{"diag", "nope"},
		{"frobnicate"},
		{"ls", "--no-such-flag"},
	}
	for _, args := range cases {
		if r := runCLI(t, "", args...); r.code != 2 {
			t.Fatalf("%v: code = %d, stderr = %s", args, r.code, r.errOut)
		}
	}
}

func TestDiag(t *testing.T) {
	isolate(t)
	srv := itemstest.NewServer(t)

	r := runCLI(t, "", "--api-url", srv.URL, "--detail", "diag", "teapot")
	if r.code != 0 {
		t.Fatalf("code = %d, stderr = %s", r.code, r.errOut)
	}
	if !strings.Contains(r.errOut, "I'm a teapot") {
		t.Fatalf("stderr = %s", r.errOut)
	}
	if !strings.Contains(r.out, "GET /items?simulate=teapot") || !strings.Contains(r.out, "418") {
		t.Fatalf("detail missing: %s", r.out)
	}

	srv.IgnoreSimulate()
	r = runCLI(t, "", "--api-url", srv.URL, "diag", "server-error")
	if r.code != 1 || !strings.Contains(r.out, "Unexpected success: expected 500, got 200") {
		t.Fatalf("unexpected success: %+v", r)
	}
}

func TestDiagList(t *testing.T) {
	isolate(t)
	r := runCLI(t, "", "diag", "list")
	if r.code != 0 {
		t.Fatalf("code = %d", r.code)
	}
	for _, want := range []string{"bad-request", "unauthorized", "forbidden", "not-found", "teapot", "server-error", "/items/999999"} {
		if !strings.Contains(r.out, want) {
			t.Fatalf("missing %q in %s", want, r.out)
		}
	}
}

func TestExamples_FallsBackOffline(t *testing.T) {
	isolate(t)
	srv := itemstest.NewServer(t)
	root := srv.URL
	srv.Close()

	r := runCLI(t, "", "--api-url", root, "examples")
	if r.code != 0 || !strings.Contains(r.out, `"Marker"`) {
		t.Fatalf("examples: %+v", r)
	}
}

func TestConfigFile(t *testing.T) {
	home := isolate(t)
	srv := itemstest.NewServer(t, model.Item{ID: 4, Name: "Crate", Quantity: 1})
	path := filepath.Join(home, "items.yaml")
	if err := os.WriteFile(path, []byte("api_url: "+srv.URL+"\ntheme: mono\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	r := runCLI(t, "", "--config", path, "ls")
	if r.code != 0 || !strings.Contains(r.out, "Crate") {
		t.Fatalf("ls: %+v", r)
	}

	r = runCLI(t, "", "--config", path, "--theme", "plaid", "ls")
	if r.code != 2 || !strings.Contains(r.errOut, "theme") {
		t.Fatalf("bad theme: %+v", r)
	}
}

func TestAuthLifecycle(t *testing.T) {
	isolate(t)
	srv := itemstest.NewServer(t)

	if r := runCLI(t, "", "auth", "status"); r.code != 0 || !strings.Contains(r.out, "not logged in") {
		t.Fatalf("status: %+v", r)
	}
	if r := runCLI(t, "Bearer s3cret\n", "auth", "login"); r.code != 0 || !strings.Contains(r.out, "logged in") {
		t.Fatalf("login: %+v", r)
	}
	if r := runCLI(t, "", "--api-url", srv.URL, "ls"); r.code != 0 {
		t.Fatalf("ls: %+v", r)
	}
	if got := srv.LastAuthorization(); got != "Bearer s3cret" {
		t.Fatalf("authorization = %q", got)
	}
	if r := runCLI(t, "", "auth", "status"); !strings.Contains(r.out, "source: file") {
		t.Fatalf("status: %+v", r)
	}
	if r := runCLI(t, "", "auth", "logout"); r.code != 0 {
		t.Fatalf("logout: %+v", r)
	}
	if r := runCLI(t, "", "auth", "status"); !strings.Contains(r.out, "not logged in") {
		t.Fatalf("status after logout: %+v", r)
	}
}

func TestAuthLogout_CorruptCredentials(t *testing.T) {
	home := isolate(t)
	p := filepath.Join(home, ".items", "credentials.json")
	if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	r := runCLI(t, "", "auth", "logout")
	if r.code != 0 || !strings.Contains(r.out, "warning:") || !strings.Contains(r.out, "logged out") {
		t.Fatalf("logout: %+v", r)
	}
	if _, err := os.Stat(p); !os.IsNotExist(err) {
		t.Fatalf("credentials still present: %v", err)
	}
}

func TestExpiredTokenIsNotSent(t *testing.T) {
	isolate(t)
	srv := itemstest.NewServer(t)

	if r := runCLI(t, "s3cret\n", "auth", "login", "--expires", "1ns"); r.code != 0 {
		t.Fatalf("login: %+v", r)
	}
	r := runCLI(t, "", "--api-url", srv.URL, "ls")
	if r.code != 0 || !strings.Contains(r.errOut, "expired") {
		t.Fatalf("ls: %+v", r)
	}
	if got := srv.LastAuthorization(); got != "" {
		t.Fatalf("authorization = %q", got)
	}
	if r := runCLI(t, "", "auth", "status"); r.code != 1 || !strings.Contains(r.errOut, "token expired") {
		t.Fatalf("status: %+v", r)
	}
}
