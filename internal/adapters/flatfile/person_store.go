// Package flatfile stores person records and offense audit lines in a single
// comma-delimited text file.
//
// Record line:  id,firstName,lastName,address,birthdate[,extra...]
// Audit line:   id,Demerit:<points>,Date:<DD-MM-YYYY>
//
// Lines with fewer than five columns are never treated as records.
package flatfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/SscSPs/demerit_registry/internal/apperrors"
	"github.com/SscSPs/demerit_registry/internal/core/domain"
	portsrepo "github.com/SscSPs/demerit_registry/internal/core/ports/repositories"
	"github.com/spf13/afero"
)

const (
	fieldSep        = ","
	recordColumns   = 5
	auditColumns    = 3
	demeritPrefix   = "Demerit:"
	auditDatePrefix = "Date:"

	storeFileMode fs.FileMode = 0o644
)

// PersonStore is a file-backed person repository.
type PersonStore struct {
	fs     afero.Fs
	path   string
	logger *slog.Logger
	mu     sync.Mutex
}

// NewPersonStore creates a store over path on fsys. The file is created on first write.
func NewPersonStore(fsys afero.Fs, path string, logger *slog.Logger) *PersonStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PersonStore{
		fs:     fsys,
		path:   path,
		logger: logger.With(slog.String("component", "flatfile")),
	}
}

var _ portsrepo.PersonRepositoryFacade = (*PersonStore)(nil)

// Path returns the store location.
func (s *PersonStore) Path() string {
	return s.path
}

// FindPersonByID returns the first record line whose identifier matches.
func (s *PersonStore) FindPersonByID(ctx context.Context, personID string) (*domain.Person, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, _, err := s.readLines()
	if err != nil {
		return nil, err
	}
	for _, line := range lines {
		cols := strings.Split(line, fieldSep)
		if len(cols) < recordColumns || cols[0] != personID {
			continue
		}
		p := &domain.Person{
			PersonID:  cols[0],
			FirstName: cols[1],
			LastName:  cols[2],
			Address:   cols[3],
			Birthdate: cols[4],
		}
		if len(cols) > recordColumns {
			p.Extra = append([]string(nil), cols[recordColumns:]...)
		}
		return p, nil
	}
	return nil, apperrors.ErrRecordNotFound
}

// SavePerson appends one record line.
func (s *PersonStore) SavePerson(ctx context.Context, person domain.Person) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	line, err := encodeRecord(person, person.Extra)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.appendLine(line); err != nil {
		return err
	}
	s.logger.Debug("record appended", slog.String("person_id", person.PersonID))
	return nil
}

// AppendOffense appends one audit line.
func (s *PersonStore) AppendOffense(ctx context.Context, personID string, points int, date string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkEncodable(personID, date); err != nil {
		return err
	}
	line := personID + fieldSep + demeritPrefix + strconv.Itoa(points) + fieldSep + auditDatePrefix + date

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.appendLine(line); err != nil {
		return err
	}
	s.logger.Debug("offense audited",
		slog.String("person_id", personID),
		slog.Int("points", points),
		slog.String("date", date))
	return nil
}

// RewritePerson replaces every record line stored under currentID and swaps the
// file in atomically. Columns after the fifth come from the stored line. When
// the identifier changes, the audit lines of currentID move to the new
// identifier in the same write.
func (s *PersonStore) RewritePerson(ctx context.Context, currentID string, person domain.Person) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkEncodable(person.PersonID, person.FirstName, person.LastName, person.Address, person.Birthdate); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, trailingNewline, err := s.readLines()
	if err != nil {
		return err
	}

	rekey := person.PersonID != currentID
	replaced, moved := 0, 0
	for i, line := range lines {
		if rec, ok := parseAudit(line); ok {
			if rekey && rec.PersonID == currentID {
				lines[i] = person.PersonID + line[len(currentID):]
				moved++
			}
			continue
		}
		cols := strings.Split(line, fieldSep)
		if len(cols) < recordColumns || cols[0] != currentID {
			continue
		}
		lines[i] = joinRecord(person, cols[recordColumns:])
		replaced++
	}
	if replaced == 0 {
		return apperrors.ErrRecordNotFound
	}

	content := strings.Join(lines, "\n")
	if trailingNewline {
		content += "\n"
	}
	if err := s.writeAtomic([]byte(content)); err != nil {
		return err
	}
	s.logger.Info("record rewritten",
		slog.String("person_id", currentID),
		slog.String("new_person_id", person.PersonID),
		slog.Int("lines", replaced),
		slog.Int("audit_lines_moved", moved))
	return nil
}

// ListOffenses returns the audit lines for personID in file order. Malformed
// audit lines are skipped.
func (s *PersonStore) ListOffenses(ctx context.Context, personID string) ([]domain.OffenseRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, _, err := s.readLines()
	if errors.Is(err, apperrors.ErrRecordNotFound) {
		return []domain.OffenseRecord{}, nil
	}
	if err != nil {
		return nil, err
	}

	records := []domain.OffenseRecord{}
	for _, line := range lines {
		rec, ok := parseAudit(line)
		if !ok || rec.PersonID != personID {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseAudit(line string) (domain.OffenseRecord, bool) {
	cols := strings.Split(line, fieldSep)
	if len(cols) != auditColumns {
		return domain.OffenseRecord{}, false
	}
	pts, ok := strings.CutPrefix(cols[1], demeritPrefix)
	if !ok {
		return domain.OffenseRecord{}, false
	}
	date, ok := strings.CutPrefix(cols[2], auditDatePrefix)
	if !ok {
		return domain.OffenseRecord{}, false
	}
	points, err := strconv.Atoi(pts)
	if err != nil {
		return domain.OffenseRecord{}, false
	}
	return domain.OffenseRecord{PersonID: cols[0], Points: points, Date: date}, true
}

// readLines returns the file split into lines without the final newline.
// A missing file reports ErrRecordNotFound.
func (s *PersonStore) readLines() ([]string, bool, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, apperrors.ErrRecordNotFound
	}
	if err != nil {
		s.logger.Error("read failed", slog.String("path", s.path), slog.String("error", err.Error()))
		return nil, false, fmt.Errorf("%w: read %s: %w", apperrors.ErrIOFailure, s.path, err)
	}
	content := string(data)
	if content == "" {
		return nil, false, nil
	}
	trailing := strings.HasSuffix(content, "\n")
	return strings.Split(strings.TrimSuffix(content, "\n"), "\n"), trailing, nil
}

func (s *PersonStore) appendLine(line string) error {
	f, err := s.fs.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, storeFileMode)
	if err != nil {
		s.logger.Error("open for append failed", slog.String("path", s.path), slog.String("error", err.Error()))
		return fmt.Errorf("%w: open %s: %w", apperrors.ErrIOFailure, s.path, err)
	}
	if _, err := f.WriteString(line + "\n"); err != nil {
		f.Close()
		s.logger.Error("append failed", slog.String("path", s.path), slog.String("error", err.Error()))
		return fmt.Errorf("%w: append %s: %w", apperrors.ErrIOFailure, s.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", apperrors.ErrIOFailure, s.path, err)
	}
	return nil
}

// writeAtomic writes data to a temp file next to the store, syncs it and
// renames it over the store. The temp file takes the store's permissions and
// is removed on any failure.
func (s *PersonStore) writeAtomic(data []byte) error {
	dir, base := filepath.Split(s.path)
	if dir == "" {
		dir = "."
	}
	mode := storeFileMode
	if fi, err := s.fs.Stat(s.path); err == nil {
		mode = fi.Mode().Perm()
	}
	f, err := afero.TempFile(s.fs, dir, "."+base+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %w", apperrors.ErrIOFailure, err)
	}
	tmpPath := f.Name()

	fail := func(op string, err error) error {
		_ = s.fs.Remove(tmpPath)
		s.logger.Error("atomic write failed",
			slog.String("op", op),
			slog.String("path", s.path),
			slog.String("error", err.Error()))
		return fmt.Errorf("%w: %s %s: %w", apperrors.ErrIOFailure, op, tmpPath, err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		return fail("write", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fail("sync", err)
	}
	if err := f.Close(); err != nil {
		return fail("close", err)
	}
	if err := s.fs.Chmod(tmpPath, mode); err != nil {
		return fail("chmod", err)
	}
	if err := s.fs.Rename(tmpPath, s.path); err != nil {
		return fail("rename", err)
	}
	return nil
}

func encodeRecord(p domain.Person, extra []string) (string, error) {
	if err := checkEncodable(p.PersonID, p.FirstName, p.LastName, p.Address, p.Birthdate); err != nil {
		return "", err
	}
	return joinRecord(p, extra), nil
}

// joinRecord builds a record line. Core fields must already be encodable.
func joinRecord(p domain.Person, extra []string) string {
	cols := append([]string{p.PersonID, p.FirstName, p.LastName, p.Address, p.Birthdate}, extra...)
	return strings.Join(cols, fieldSep)
}

func checkEncodable(values ...string) error {
	for _, v := range values {
		if strings.ContainsAny(v, ",\r\n") {
			return fmt.Errorf("%w: %q", apperrors.ErrUnencodableField, v)
		}
	}
	return nil
}
