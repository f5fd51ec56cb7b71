// CLI integration tests for librarian. TestMain builds the binary once;
// each test drives it in an isolated environment, including piped
// interactive menu sessions.
package integration

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mesh-intelligence/shelfmark/internal/sqlite"
	"github.com/mesh-intelligence/shelfmark/pkg/types"
)

// TestMain builds the librarian binary once before running tests.
func TestMain(m *testing.M) {
	projectRoot, err := FindProjectRoot()
	if err != nil {
		SetBuildErr(err)
		os.Exit(1)
	}

	tmpDir, err := os.MkdirTemp("", "librarian-test-*")
	if err != nil {
		SetBuildErr(err)
		os.Exit(1)
	}
	binPath := filepath.Join(tmpDir, "librarian")
	SetLibrarianBin(binPath)

	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/librarian")
	cmd.Dir = projectRoot
	if output, err := cmd.CombinedOutput(); err != nil {
		SetBuildErr(&BuildError{
			Err:    err,
			Output: string(output),
		})
		os.Exit(1)
	}

	code := m.Run()

	os.RemoveAll(tmpDir)

	os.Exit(code)
}

func TestCLI_Version(t *testing.T) {
	env := NewTestEnv(t)

	result := env.MustRunLibrarian("version")
	if !strings.Contains(result.Stdout, "librarian") {
		t.Errorf("expected version output, got %q", result.Stdout)
	}
}

func TestCLI_InitCreatesDatabase(t *testing.T) {
	env := NewTestEnv(t)

	result := env.MustRunLibrarian("init")
	if !strings.Contains(result.Stdout, "Catalog initialized successfully") {
		t.Errorf("unexpected init output: %q", result.Stdout)
	}

	if _, err := os.Stat(filepath.Join(env.DataDir, "library.db")); err != nil {
		t.Errorf("library.db not created: %v", err)
	}
	if _, err := os.Stat(filepath.Join(env.ConfigDir, "config.yaml")); err != nil {
		t.Errorf("config.yaml missing: %v", err)
	}
}

func TestCLI_BookAddAndList(t *testing.T) {
	env := NewTestEnv(t)

	result := env.MustRunLibrarian("book", "add",
		"--title", "The Go Programming Language",
		"--author", "Alan Donovan",
		"--year", "2015",
		"--copies", "2")
	if !strings.Contains(result.Stdout, "Added book id=1") {
		t.Errorf("unexpected add output: %q", result.Stdout)
	}

	result = env.MustRunLibrarian("book", "list")
	if !strings.Contains(result.Stdout, "The Go Programming Language") {
		t.Errorf("list missing title: %q", result.Stdout)
	}
	if !strings.Contains(result.Stdout, "Total: 1 book(s)") {
		t.Errorf("list missing total: %q", result.Stdout)
	}

	result = env.MustRunLibrarian("book", "list", "--json")
	books := ParseJSON[[]types.Book](t, result.Stdout)
	if len(books) != 1 {
		t.Fatalf("expected 1 book, got %d", len(books))
	}
	if books[0].CopiesAvailable != 2 || books[0].CopiesTotal != 2 {
		t.Errorf("unexpected copies: %+v", books[0])
	}
}

func TestCLI_BookAddRequiresTitle(t *testing.T) {
	env := NewTestEnv(t)

	result := env.RunLibrarian("book", "add", "--author", "Nobody")
	if result.ExitCode != 2 {
		t.Errorf("expected exit code 2 for missing flag, got %d", result.ExitCode)
	}
}

func TestCLI_BookSearch(t *testing.T) {
	env := NewTestEnv(t)
	env.MustRunLibrarian("seed")

	result := env.MustRunLibrarian("book", "search", "clean")
	if !strings.Contains(result.Stdout, "Clean Code") {
		t.Errorf("search missed Clean Code: %q", result.Stdout)
	}

	result = env.MustRunLibrarian("book", "search", "zzz")
	if !strings.Contains(result.Stdout, "No results.") {
		t.Errorf("expected no results, got %q", result.Stdout)
	}
}

func TestCLI_MemberDuplicateEmail(t *testing.T) {
	env := NewTestEnv(t)

	env.MustRunLibrarian("member", "add", "--name", "Alice Johnson", "--email", "alice@example.com")

	result := env.RunLibrarian("member", "add", "--name", "Impostor", "--email", "alice@example.com")
	if result.ExitCode != 1 {
		t.Errorf("expected exit code 1, got %d (stderr: %s)", result.ExitCode, result.Stderr)
	}
	if !strings.Contains(result.Stderr, "email already exists") {
		t.Errorf("unexpected stderr: %q", result.Stderr)
	}

	list := env.MustRunLibrarian("member", "list", "--json")
	members := ParseJSON[[]types.Member](t, list.Stdout)
	if len(members) != 1 {
		t.Errorf("expected 1 member, got %d", len(members))
	}
}

func TestCLI_LoanFlow(t *testing.T) {
	env := NewTestEnv(t)
	env.MustRunLibrarian("seed")

	result := env.MustRunLibrarian("loan", "issue", "--book", "1", "--member", "1")
	if !strings.Contains(result.Stdout, "Issued book 1 to member 1. Due on ") {
		t.Errorf("unexpected issue output: %q", result.Stdout)
	}

	result = env.MustRunLibrarian("loan", "list", "--active", "--json")
	active := ParseJSON[[]types.LoanRecord](t, result.Stdout)
	if len(active) != 1 {
		t.Fatalf("expected 1 active loan, got %d", len(active))
	}
	if active[0].BookTitle != "The Pragmatic Programmer" || active[0].MemberName != "Alice Johnson" {
		t.Errorf("unexpected joined names: %+v", active[0])
	}

	result = env.MustRunLibrarian("loan", "return", "1")
	if !strings.Contains(result.Stdout, "Book returned successfully.") {
		t.Errorf("unexpected return output: %q", result.Stdout)
	}

	result = env.MustRunLibrarian("loan", "list", "--active")
	if !strings.Contains(result.Stdout, "No loans found.") {
		t.Errorf("expected empty active list, got %q", result.Stdout)
	}

	// Error paths map to user-error exits.
	result = env.RunLibrarian("loan", "return", "1")
	if result.ExitCode != 1 || !strings.Contains(result.Stderr, "book already returned") {
		t.Errorf("double return: exit %d, stderr %q", result.ExitCode, result.Stderr)
	}
	result = env.RunLibrarian("loan", "return", "abc")
	if result.ExitCode != 1 || !strings.Contains(result.Stderr, "must be a number") {
		t.Errorf("bad loan id: exit %d, stderr %q", result.ExitCode, result.Stderr)
	}
	result = env.RunLibrarian("loan", "issue", "--book", "99", "--member", "1")
	if result.ExitCode != 1 || !strings.Contains(result.Stderr, "book not found") {
		t.Errorf("unknown book: exit %d, stderr %q", result.ExitCode, result.Stderr)
	}
}

func TestCLI_Export(t *testing.T) {
	env := NewTestEnv(t)
	env.MustRunLibrarian("seed")

	exportDir := filepath.Join(env.TempDir, "backup")
	result := env.MustRunLibrarian("export", "--dir", exportDir, "--format", "json", "--json")
	snapshot := ParseJSON[sqlite.Snapshot](t, result.Stdout)
	if snapshot.Books != 3 || snapshot.Members != 2 {
		t.Errorf("unexpected snapshot counts: %+v", snapshot)
	}

	for _, name := range []string{"books.json", "members.json", "loans.json", "manifest.json"} {
		if _, err := os.Stat(filepath.Join(exportDir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}

	result = env.RunLibrarian("export", "--format", "yaml")
	if result.ExitCode != 1 || !strings.Contains(result.Stderr, "unknown export format") {
		t.Errorf("bad format: exit %d, stderr %q", result.ExitCode, result.Stderr)
	}
}

func TestCLI_MenuSession(t *testing.T) {
	env := NewTestEnv(t)

	session := strings.Join([]string{
		"10",
		"2",
		"6", "1", "1", "",
		"8",
		"7", "1",
		"9",
		"0",
	}, "\n") + "\n"

	result := env.RunLibrarianStdin(session)
	if result.ExitCode != 0 {
		t.Fatalf("menu session failed: exit %d, stderr %s", result.ExitCode, result.Stderr)
	}

	for _, want := range []string{
		"Library Management - Menu",
		"Seeded sample books and members.",
		"[1] The Pragmatic Programmer - Andrew Hunt (1999) | available: 2/2",
		"Issued book 1 to member 1. Due on ",
		"Book: (1) The Pragmatic Programmer -> Member: (1) Alice Johnson | Issued |",
		"Book returned successfully.",
		"| Returned |",
		"Goodbye!",
	} {
		if !strings.Contains(result.Stdout, want) {
			t.Errorf("menu transcript missing %q", want)
		}
	}
}

func TestCLI_DataPersistsAcrossProcesses(t *testing.T) {
	env := NewTestEnv(t)

	env.MustRunLibrarian("book", "add", "--title", "Durable", "--copies", "3")
	env.MustRunLibrarian("member", "add", "--name", "Keeper", "--email", "keeper@example.com")
	env.MustRunLibrarian("loan", "issue", "--book", "1", "--member", "1", "--days", "7")

	// A fresh process sees the same state.
	result := env.MustRunLibrarian("book", "list", "--json")
	books := ParseJSON[[]types.Book](t, result.Stdout)
	if len(books) != 1 || books[0].CopiesAvailable != 2 {
		t.Errorf("unexpected books after restart: %+v", books)
	}

	result = env.MustRunLibrarian("loan", "list", "--json")
	loans := ParseJSON[[]types.LoanRecord](t, result.Stdout)
	if len(loans) != 1 || loans[0].BookTitle != "Durable" {
		t.Errorf("unexpected loans after restart: %+v", loans)
	}
}

func TestCLI_VerboseLogsToStderr(t *testing.T) {
	env := NewTestEnv(t)

	result := env.MustRunLibrarian("--verbose", "book", "add", "--title", "Logged")
	if !strings.Contains(result.Stderr, "book added") {
		t.Errorf("expected store log on stderr, got %q", result.Stderr)
	}
	if strings.Contains(result.Stdout, "book added") {
		t.Errorf("log leaked to stdout: %q", result.Stdout)
	}
}
