package flatfile_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/SscSPs/demerit_registry/internal/adapters/flatfile"
	"github.com/SscSPs/demerit_registry/internal/apperrors"
	"github.com/SscSPs/demerit_registry/internal/core/domain"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const storePath = "/data/persons.txt"

func samplePerson() domain.Person {
	return domain.Person{
		PersonID:  "56s_@x#FAB",
		FirstName: "John",
		LastName:  "Doe",
		Address:   "32|Highland Street|Melbourne|Victoria|Australia",
		Birthdate: "15-11-2000",
	}
}

func newMemStore(t *testing.T, initial string) (*flatfile.PersonStore, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	if initial != "" {
		require.NoError(t, afero.WriteFile(fs, storePath, []byte(initial), 0o644))
	}
	return flatfile.NewPersonStore(fs, storePath, nil), fs
}

func readStore(t *testing.T, fs afero.Fs) string {
	t.Helper()
	data, err := afero.ReadFile(fs, storePath)
	require.NoError(t, err)
	return string(data)
}

func TestSaveAndFind(t *testing.T) {
	ctx := context.Background()
	store, fs := newMemStore(t, "")

	require.NoError(t, store.SavePerson(ctx, samplePerson()))
	assert.Equal(t, "56s_@x#FAB,John,Doe,32|Highland Street|Melbourne|Victoria|Australia,15-11-2000\n", readStore(t, fs))

	got, err := store.FindPersonByID(ctx, "56s_@x#FAB")
	require.NoError(t, err)
	want := samplePerson()
	assert.Equal(t, &want, got)
	assert.Nil(t, got.Offenses, "offenses are not restored from the store")
}

func TestFindPersonByID_NotFound(t *testing.T) {
	ctx := context.Background()

	store, _ := newMemStore(t, "")
	_, err := store.FindPersonByID(ctx, "56s_@x#FAB")
	assert.ErrorIs(t, err, apperrors.ErrRecordNotFound, "missing file")

	store, _ = newMemStore(t, "77ab@c!eXY,Ann,Lee,1|A St|Geelong|Victoria|Australia,01-01-1990\n")
	_, err = store.FindPersonByID(ctx, "56s_@x#FAB")
	assert.ErrorIs(t, err, apperrors.ErrRecordNotFound)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestFindPersonByID_SkipsShortLines(t *testing.T) {
	content := "56s_@x#FAB,Demerit:3,Date:15-03-2023\n" +
		"56s_@x#FAB,only,four,columns\n" +
		"56s_@x#FAB,John,Doe,32|Highland Street|Melbourne|Victoria|Australia,15-11-2000,C,notes\n"
	store, _ := newMemStore(t, content)

	got, err := store.FindPersonByID(context.Background(), "56s_@x#FAB")
	require.NoError(t, err)
	assert.Equal(t, "John", got.FirstName)
	assert.Equal(t, []string{"C", "notes"}, got.Extra)
}

func TestFindPersonByID_FirstMatchWins(t *testing.T) {
	content := "56s_@x#FAB,First,Match,32|Highland Street|Melbourne|Victoria|Australia,15-11-2000\n" +
		"56s_@x#FAB,Second,Match,32|Highland Street|Melbourne|Victoria|Australia,15-11-2000\n"
	store, _ := newMemStore(t, content)

	got, err := store.FindPersonByID(context.Background(), "56s_@x#FAB")
	require.NoError(t, err)
	assert.Equal(t, "First", got.FirstName)
}

func TestSavePerson_RejectsDelimiters(t *testing.T) {
	store, fs := newMemStore(t, "")

	p := samplePerson()
	p.FirstName = "John,Jr"
	err := store.SavePerson(context.Background(), p)
	assert.ErrorIs(t, err, apperrors.ErrUnencodableField)

	p = samplePerson()
	p.LastName = "Doe\nX"
	err = store.SavePerson(context.Background(), p)
	assert.ErrorIs(t, err, apperrors.ErrUnencodableField)

	exists, _ := afero.Exists(fs, storePath)
	assert.False(t, exists, "nothing written")
}

func TestAppendOffense(t *testing.T) {
	ctx := context.Background()
	store, fs := newMemStore(t, "")
	require.NoError(t, store.SavePerson(ctx, samplePerson()))

	require.NoError(t, store.AppendOffense(ctx, "56s_@x#FAB", 3, "15-03-2023"))
	require.NoError(t, store.AppendOffense(ctx, "56s_@x#FAB", 4, "01-05-2024"))

	assert.Equal(t,
		"56s_@x#FAB,John,Doe,32|Highland Street|Melbourne|Victoria|Australia,15-11-2000\n"+
			"56s_@x#FAB,Demerit:3,Date:15-03-2023\n"+
			"56s_@x#FAB,Demerit:4,Date:01-05-2024\n",
		readStore(t, fs))

	got, err := store.FindPersonByID(ctx, "56s_@x#FAB")
	require.NoError(t, err)
	assert.Equal(t, "Doe", got.LastName)
}

func TestListOffenses(t *testing.T) {
	content := "56s_@x#FAB,John,Doe,32|Highland Street|Melbourne|Victoria|Australia,15-11-2000\n" +
		"56s_@x#FAB,Demerit:3,Date:15-03-2023\n" +
		"77ab@c!eXY,Demerit:6,Date:01-01-2024\n" +
		"56s_@x#FAB,Demerit:x,Date:01-01-2024\n" +
		"56s_@x#FAB,Points:2,Date:01-01-2024\n" +
		"56s_@x#FAB,Demerit:4,Date:01-05-2024\n"
	store, _ := newMemStore(t, content)

	got, err := store.ListOffenses(context.Background(), "56s_@x#FAB")
	require.NoError(t, err)
	assert.Equal(t, []domain.OffenseRecord{
		{PersonID: "56s_@x#FAB", Points: 3, Date: "15-03-2023"},
		{PersonID: "56s_@x#FAB", Points: 4, Date: "01-05-2024"},
	}, got)

	empty, _ := newMemStore(t, "")
	got, err = empty.ListOffenses(context.Background(), "56s_@x#FAB")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRewritePerson_KeepsOtherLinesAndExtraColumns(t *testing.T) {
	content := "77ab@c!eXY,Ann,Lee,1|A St|Geelong|Victoria|Australia,01-01-1990\n" +
		"56s_@x#FAB,John,Doe,32|Highland Street|Melbourne|Victoria|Australia,15-11-2000,C,notes\n" +
		"56s_@x#FAB,Demerit:3,Date:15-03-2023\n" +
		"free text that is not a record\n"
	store, fs := newMemStore(t, content)

	updated := samplePerson()
	updated.PersonID = "57s_@x#FAB"
	updated.FirstName = "Jane"
	require.NoError(t, store.RewritePerson(context.Background(), "56s_@x#FAB", updated))

	assert.Equal(t,
		"77ab@c!eXY,Ann,Lee,1|A St|Geelong|Victoria|Australia,01-01-1990\n"+
			"57s_@x#FAB,Jane,Doe,32|Highland Street|Melbourne|Victoria|Australia,15-11-2000,C,notes\n"+
			"57s_@x#FAB,Demerit:3,Date:15-03-2023\n"+
			"free text that is not a record\n",
		readStore(t, fs))
}

func TestRewritePerson_IdentifierChangeMovesAuditTrail(t *testing.T) {
	ctx := context.Background()
	content := "56s_@x#FAB,John,Doe,32|Highland Street|Melbourne|Victoria|Australia,15-11-2000\n" +
		"56s_@x#FAB,Demerit:5,Date:01-01-2025\n" +
		"77ab@c!eXY,Demerit:2,Date:01-02-2025\n" +
		"56s_@x#FAB,Demerit:4,Date:01-03-2025\n"
	store, _ := newMemStore(t, content)

	updated := samplePerson()
	updated.PersonID = "57s_@x#FAB"
	require.NoError(t, store.RewritePerson(ctx, "56s_@x#FAB", updated))

	moved, err := store.ListOffenses(ctx, "57s_@x#FAB")
	require.NoError(t, err)
	assert.Equal(t, []domain.OffenseRecord{
		{PersonID: "57s_@x#FAB", Points: 5, Date: "01-01-2025"},
		{PersonID: "57s_@x#FAB", Points: 4, Date: "01-03-2025"},
	}, moved)

	old, err := store.ListOffenses(ctx, "56s_@x#FAB")
	require.NoError(t, err)
	assert.Empty(t, old)

	other, err := store.ListOffenses(ctx, "77ab@c!eXY")
	require.NoError(t, err)
	assert.Len(t, other, 1)

	_, err = store.FindPersonByID(ctx, "56s_@x#FAB")
	assert.ErrorIs(t, err, apperrors.ErrRecordNotFound)
}

func TestRewritePerson_UnchangedRecordIsByteIdentical(t *testing.T) {
	content := "56s_@x#FAB,John,Doe,32|Highland Street|Melbourne|Victoria|Australia,15-11-2000,C\n" +
		"56s_@x#FAB,Demerit:3,Date:15-03-2023"
	store, fs := newMemStore(t, content)

	require.NoError(t, store.RewritePerson(context.Background(), "56s_@x#FAB", samplePerson()))
	assert.Equal(t, content, readStore(t, fs))
}

func TestRewritePerson_NotFoundLeavesFileAlone(t *testing.T) {
	content := "56s_@x#FAB,Demerit:3,Date:15-03-2023\n"
	store, fs := newMemStore(t, content)

	err := store.RewritePerson(context.Background(), "56s_@x#FAB", samplePerson())
	assert.ErrorIs(t, err, apperrors.ErrRecordNotFound)
	assert.Equal(t, content, readStore(t, fs))
}

func TestRewritePerson_WriteFailureLeavesFileAlone(t *testing.T) {
	content := "56s_@x#FAB,John,Doe,32|Highland Street|Melbourne|Victoria|Australia,15-11-2000\n"
	base := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(base, storePath, []byte(content), 0o644))
	store := flatfile.NewPersonStore(afero.NewReadOnlyFs(base), storePath, nil)

	updated := samplePerson()
	updated.FirstName = "Jane"
	err := store.RewritePerson(context.Background(), "56s_@x#FAB", updated)
	assert.ErrorIs(t, err, apperrors.ErrIOFailure)

	data, readErr := afero.ReadFile(base, storePath)
	require.NoError(t, readErr)
	assert.Equal(t, content, string(data))

	err = store.AppendOffense(context.Background(), "56s_@x#FAB", 2, "01-01-2024")
	assert.ErrorIs(t, err, apperrors.ErrIOFailure)
}

func TestRewritePerson_OnDiskLeavesNoTempFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "persons.txt")
	store := flatfile.NewPersonStore(afero.NewOsFs(), path, nil)

	require.NoError(t, store.SavePerson(ctx, samplePerson()))
	require.NoError(t, store.AppendOffense(ctx, "56s_@x#FAB", 2, "01-01-2024"))

	updated := samplePerson()
	updated.Address = "7|Collins Street|Geelong|Victoria|Australia"
	require.NoError(t, store.RewritePerson(ctx, "56s_@x#FAB", updated))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "persons.txt", entries[0].Name())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"56s_@x#FAB,John,Doe,7|Collins Street|Geelong|Victoria|Australia,15-11-2000\n"+
			"56s_@x#FAB,Demerit:2,Date:01-01-2024\n",
		string(data))
}

func TestRewritePerson_KeepsFileMode(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "persons.txt")
	store := flatfile.NewPersonStore(afero.NewOsFs(), path, nil)

	require.NoError(t, store.SavePerson(ctx, samplePerson()))
	require.NoError(t, os.Chmod(path, 0o640))

	updated := samplePerson()
	updated.FirstName = "Jane"
	require.NoError(t, store.RewritePerson(ctx, "56s_@x#FAB", updated))

	fi, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), fi.Mode().Perm())
}

func TestCancelledContext(t *testing.T) {
	store, _ := newMemStore(t, "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, store.SavePerson(ctx, samplePerson()), context.Canceled)
	_, err := store.FindPersonByID(ctx, "56s_@x#FAB")
	assert.ErrorIs(t, err, context.Canceled)
}
