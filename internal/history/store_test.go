package history

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"avis-insight/internal/sentiment"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "historique_avis.csv"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return s
}

func mustAppend(t *testing.T, s *Store, rec Record) {
	t.Helper()
	if _, err := s.Append(rec); err != nil {
		t.Fatalf("append %v: %v", rec, err)
	}
}

func TestOpenMissingFile(t *testing.T) {
	s := newStore(t)
	if s.Len() != 0 {
		t.Fatalf("expected empty store, got %d records", s.Len())
	}
	if s.SkippedRows() != 0 {
		t.Fatalf("unexpected skipped rows: %d", s.SkippedRows())
	}
}

func TestAppendPersistsAndReloads(t *testing.T) {
	s := newStore(t)
	n, err := s.Append(Record{UserID: "u1", Comment: "Excellent produit", Sentiment: sentiment.LabelPositive})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected length 1, got %d", n)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	want := "ID Utilisateur,Commentaire,Sentiment\nu1,Excellent produit,Positif\n"
	if string(data) != want {
		t.Fatalf("file content mismatch:\n got %q\nwant %q", data, want)
	}

	reloaded, err := Open(s.path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Len() != 1 || reloaded.All()[0] != s.All()[0] {
		t.Fatalf("reloaded store differs: %+v", reloaded.All())
	}
}

func TestAppendQuotesSpecialCharacters(t *testing.T) {
	s := newStore(t)
	recs := []Record{
		{UserID: "u2", Comment: "Mauvais, vraiment mauvais", Sentiment: sentiment.LabelNegative},
		{UserID: "u3", Comment: "ligne une\nligne deux", Sentiment: sentiment.LabelNeutral},
		{UserID: "u4", Comment: `il a dit "bof"`, Sentiment: sentiment.LabelNeutral},
	}
	for _, rec := range recs {
		mustAppend(t, s, rec)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if !strings.Contains(string(data), `"Mauvais, vraiment mauvais"`) {
		t.Fatalf("comma field not quoted:\n%s", data)
	}

	reloaded, err := Open(s.path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	got := reloaded.All()
	if len(got) != len(recs) {
		t.Fatalf("expected %d records, got %d", len(recs), len(got))
	}
	for i := range recs {
		if got[i] != recs[i] {
			t.Fatalf("record %d mismatch: got %+v want %+v", i, got[i], recs[i])
		}
	}
	if reloaded.SkippedRows() != 0 {
		t.Fatalf("unexpected skipped rows: %d", reloaded.SkippedRows())
	}
}

func TestDeleteShiftsSuffix(t *testing.T) {
	s := newStore(t)
	for _, c := range []string{"a", "b", "c"} {
		mustAppend(t, s, Record{UserID: "u", Comment: c, Sentiment: sentiment.LabelNeutral})
	}

	if err := s.DeleteAt(1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got := s.All()
	if len(got) != 2 || got[0].Comment != "a" || got[1].Comment != "c" {
		t.Fatalf("unexpected records after delete: %+v", got)
	}

	reloaded, err := Open(s.path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(reloaded.All()) != 2 || reloaded.All()[1].Comment != "c" {
		t.Fatalf("disk state diverged: %+v", reloaded.All())
	}
}

func TestDeleteOutOfRange(t *testing.T) {
	s := newStore(t)
	mustAppend(t, s, Record{UserID: "u", Comment: "a", Sentiment: sentiment.LabelNeutral})

	for _, idx := range []int{-1, 1, 42} {
		if err := s.DeleteAt(idx); !errors.Is(err, ErrIndexOutOfRange) {
			t.Fatalf("delete %d: expected ErrIndexOutOfRange, got %v", idx, err)
		}
	}
	if s.Len() != 1 {
		t.Fatalf("store mutated by failed delete: %d records", s.Len())
	}
}

// Seeds the store used by the filtered pagination scenario: ten reviews
// with sentiments P,N,P,P,Neu,N,P,P,N,P.
func seedScenario(t *testing.T, s *Store) {
	t.Helper()
	labels := []sentiment.Label{
		sentiment.LabelPositive, sentiment.LabelNegative, sentiment.LabelPositive,
		sentiment.LabelPositive, sentiment.LabelNeutral, sentiment.LabelNegative,
		sentiment.LabelPositive, sentiment.LabelPositive, sentiment.LabelNegative,
		sentiment.LabelPositive,
	}
	for i, l := range labels {
		mustAppend(t, s, Record{UserID: "u", Comment: string(rune('a' + i)), Sentiment: l})
	}
}

func TestFilterKeepsAbsoluteIndices(t *testing.T) {
	s := newStore(t)
	seedScenario(t, s)

	view := s.Filter(string(sentiment.LabelPositive))
	wantIdx := []int{0, 2, 3, 6, 7, 9}
	if len(view) != len(wantIdx) {
		t.Fatalf("expected %d entries, got %d", len(wantIdx), len(view))
	}
	for i, e := range view {
		if e.Index != wantIdx[i] {
			t.Fatalf("entry %d: expected absolute index %d, got %d", i, wantIdx[i], e.Index)
		}
	}

	if got := len(s.Filter(sentiment.FilterAll)); got != 10 {
		t.Fatalf("wildcard filter: expected 10 entries, got %d", got)
	}
}

func TestFilteredPaginationAndDelete(t *testing.T) {
	s := newStore(t)
	seedScenario(t, s)

	view := s.Filter(string(sentiment.LabelPositive))
	if got := TotalPages(len(view)); got != 2 {
		t.Fatalf("expected 2 pages, got %d", got)
	}

	// Second page of the filtered view shows absolute indices 7 and 9,
	// displayed as sequence numbers 8 and 10.
	page := Paginate(view, 1)
	if len(page) != 2 || page[0].Index != 7 || page[1].Index != 9 {
		t.Fatalf("unexpected page: %+v", page)
	}

	formerLast := s.All()[9]
	if err := s.DeleteAt(page[0].Index); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := s.All()[8]; got != formerLast {
		t.Fatalf("record at index 9 did not shift to 8: %+v", got)
	}
}

func TestPaginateCoversView(t *testing.T) {
	s := newStore(t)
	seedScenario(t, s)

	view := s.Filter(sentiment.FilterAll)
	var got []Entry
	for p := 0; p < TotalPages(len(view)); p++ {
		got = append(got, Paginate(view, p)...)
	}
	if len(got) != len(view) {
		t.Fatalf("concatenated pages have %d entries, view has %d", len(got), len(view))
	}
	for i := range view {
		if got[i] != view[i] {
			t.Fatalf("entry %d mismatch: %+v vs %+v", i, got[i], view[i])
		}
	}

	if Paginate(view, 99) != nil {
		t.Fatalf("expected nil slice past the last page")
	}
}

func TestTotalPagesMinimumOne(t *testing.T) {
	cases := map[int]int{0: 1, 1: 1, 4: 1, 5: 2, 8: 2, 9: 3}
	for n, want := range cases {
		if got := TotalPages(n); got != want {
			t.Fatalf("TotalPages(%d) = %d, want %d", n, got, want)
		}
	}
}

func TestExportMatchesDisk(t *testing.T) {
	s := newStore(t)
	mustAppend(t, s, Record{UserID: "u1", Comment: "très bien, merci", Sentiment: sentiment.LabelPositive})
	mustAppend(t, s, Record{UserID: "u2", Comment: "bof", Sentiment: sentiment.LabelNeutral})

	exported, err := s.Export()
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	onDisk, err := os.ReadFile(s.path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if string(exported) != string(onDisk) {
		t.Fatalf("export differs from disk:\n got %q\nwant %q", exported, onDisk)
	}
}

func TestAppendRollsBackOnPersistFailure(t *testing.T) {
	// Parent directory does not exist, so the rewrite cannot succeed.
	s, err := Open(filepath.Join(t.TempDir(), "missing", "historique_avis.csv"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	if _, err := s.Append(Record{UserID: "u", Comment: "a", Sentiment: sentiment.LabelNeutral}); err == nil {
		t.Fatalf("expected persistence error")
	}
	if s.Len() != 0 {
		t.Fatalf("in-memory append not rolled back: %d records", s.Len())
	}
}

func TestLoadSkipsMalformedRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "historique_avis.csv")
	content := "ID Utilisateur,Commentaire,Sentiment\n" +
		"u1,Excellent produit,Positif\n" +
		"u2,missing sentiment\n" +
		"u3,bad label,Génial\n" +
		",no user,Neutre\n" +
		"u4,ok,Neutre\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("expected 2 records, got %d: %+v", s.Len(), s.All())
	}
	if s.SkippedRows() != 3 {
		t.Fatalf("expected 3 skipped rows, got %d", s.SkippedRows())
	}
}
