package inbox

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/folio/internal/model"
)

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"ID", "Name", "Email"}
	rows := [][]string{
		{"12", "Ada", "ada@example.com"},
		{"3", "Grace Hopper", "g@example.com"},
	}

	lines := formatTable(headers, rows, map[int]bool{0: true})
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "ID  Name          Email          " {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "12  Ada           ada@example.com" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != " 3  Grace Hopper  g@example.com  " {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableWideRunes(t *testing.T) {
	lines := formatTable([]string{"Name", "X"}, [][]string{{"山田", "1"}}, nil)
	if lines[1] != "山田  1" {
		t.Fatalf("expected wide runes to count double: %q", lines[1])
	}
}

func TestPreviewFlattensAndTruncates(t *testing.T) {
	if got := preview("hello\n\n  world", 20); got != "hello world" {
		t.Fatalf("unexpected preview %q", got)
	}
	got := preview(strings.Repeat("a", 30), 10)
	if got != "aaaaaaa..." {
		t.Fatalf("unexpected truncated preview %q", got)
	}
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTable(&buf, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
	if buf.String() != "No messages found.\n" {
		t.Fatalf("unexpected empty output %q", buf.String())
	}

	buf.Reset()
	msgs := []model.Message{{ID: 7, Name: "Ada", Email: "ada@example.com", Body: "Hi\nthere", CreatedAt: time.Now()}}
	if err := WriteTable(&buf, msgs); err != nil {
		t.Fatalf("write: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got %q", buf.String())
	}
	if !strings.HasPrefix(lines[0], "ID") || !strings.HasSuffix(lines[1], "Hi there") {
		t.Fatalf("unexpected table %q", buf.String())
	}
}
